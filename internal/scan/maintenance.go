package scan

import (
	"context"

	"langtagger/internal/library"
	"langtagger/internal/logging"
	"langtagger/internal/policy"
	"langtagger/internal/services"
	"langtagger/internal/tags"
)

// scopeNonMedia labels the non-media section in reports.
const scopeNonMedia Scope = "non-media"

// RemoveAll strips audio and subtitle language tags from every movie,
// series, season, episode, and collection.
func (o *Orchestrator) RemoveAll(ctx context.Context) (Report, error) {
	p := policy.FromConfig(o.cfg, false, o.logger)
	store := tags.NewStore(o.lib, p.Prefixes())

	return o.run(ctx, operationRemoveTags, ScopeEverything, false, func(ctx context.Context, report *Report) error {
		for _, part := range ScopeEverything.parts() {
			items, err := o.sectionItems(ctx, part)
			section := ScopeReport{Scope: part, Total: len(items), Outcomes: map[string]int{}}
			if err != nil {
				report.Scopes = append(report.Scopes, section)
				return err
			}
			for i := range items {
				if err := ctx.Err(); err != nil {
					report.Scopes = append(report.Scopes, section)
					return err
				}
				item := &items[i]
				had := store.Has(item, tags.Audio) || store.Has(item, tags.Subtitle)
				failed := false
				for _, kind := range tags.Kinds {
					if err := store.Remove(ctx, item, kind); err != nil {
						o.itemFailed(ctx, item, "failed to remove tags", err)
						failed = true
					}
				}
				section.Processed++
				switch {
				case failed:
					section.Outcomes["failed"]++
				case had:
					section.Outcomes["cleared"]++
				}
			}
			report.Scopes = append(report.Scopes, section)
		}
		return nil
	})
}

// TagNonMedia adds the configured non-media tag to items of the configured
// types.
func (o *Orchestrator) TagNonMedia(ctx context.Context) (Report, error) {
	return o.nonMedia(ctx, operationNonMedia, true)
}

// RemoveNonMedia removes the configured non-media tag from items of the
// configured types.
func (o *Orchestrator) RemoveNonMedia(ctx context.Context) (Report, error) {
	return o.nonMedia(ctx, operationRemoveNonMedia, false)
}

func (o *Orchestrator) nonMedia(ctx context.Context, operation string, add bool) (Report, error) {
	tag := o.cfg.NonMedia.Tag
	if tag == "" {
		return Report{}, services.Wrap(services.ErrConfiguration, "scan", operation, "non_media.tag must not be empty", nil)
	}
	p := policy.FromConfig(o.cfg, false, o.logger)
	store := tags.NewStore(o.lib, p.Prefixes())

	return o.run(ctx, operation, scopeNonMedia, false, func(ctx context.Context, report *Report) error {
		items, err := o.lib.ItemsByType(ctx, o.cfg.NonMedia.ItemTypes)
		section := ScopeReport{Scope: scopeNonMedia, Total: len(items), Outcomes: map[string]int{}}
		defer func() { report.Scopes = append(report.Scopes, section) }()
		if err != nil {
			return err
		}
		for i := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := &items[i]
			var (
				changed bool
				err     error
			)
			if add {
				changed, err = store.AddTag(ctx, item, tag)
			} else {
				changed, err = store.RemoveTag(ctx, item, tag)
			}
			section.Processed++
			switch {
			case err != nil:
				o.itemFailed(ctx, item, "failed to update non-media tag", err)
				section.Outcomes["failed"]++
			case changed:
				section.Outcomes["changed"]++
			default:
				section.Outcomes["unchanged"]++
			}
		}
		return nil
	})
}

// sectionItems flattens one library section for maintenance passes. Branch
// listing failures are logged and skipped.
func (o *Orchestrator) sectionItems(ctx context.Context, part Scope) ([]library.Item, error) {
	switch part {
	case ScopeMovies:
		return o.listOrSkip(ctx, "movies", func() ([]library.Item, error) { return o.lib.Movies(ctx) })
	case ScopeCollections:
		return o.listOrSkip(ctx, "collections", func() ([]library.Item, error) { return o.lib.Collections(ctx) })
	}

	series, err := o.listOrSkip(ctx, "series", func() ([]library.Item, error) { return o.lib.Series(ctx) })
	if err != nil {
		return nil, err
	}
	items := append([]library.Item(nil), series...)
	for _, show := range series {
		seasons, err := o.listOrSkip(ctx, "seasons", func() ([]library.Item, error) { return o.lib.Seasons(ctx, show.ID) })
		if err != nil {
			return nil, err
		}
		items = append(items, seasons...)
		for _, season := range seasons {
			episodes, err := o.listOrSkip(ctx, "episodes", func() ([]library.Item, error) { return o.lib.Episodes(ctx, season.ID) })
			if err != nil {
				return nil, err
			}
			items = append(items, episodes...)
		}
	}
	return items, nil
}

func (o *Orchestrator) listOrSkip(ctx context.Context, what string, list func() ([]library.Item, error)) ([]library.Item, error) {
	items, err := list()
	if err == nil {
		return items, nil
	}
	if services.AbortsPass(err) {
		return nil, err
	}
	logging.WarnWithContext(logging.WithContext(ctx, o.logger), "failed to list "+what, "library_list_failed",
		logging.Error(err),
		logging.String(logging.FieldImpact, what+" skipped"),
	)
	return nil, nil
}

func (o *Orchestrator) itemFailed(ctx context.Context, item *library.Item, msg string, err error) {
	logger := logging.WithContext(services.WithItemID(ctx, item.ID), o.logger)
	logging.ErrorWithContext(logger, msg, "tag_persist_failed",
		logging.String(logging.FieldItemName, item.Label()),
		logging.Error(err),
	)
}
