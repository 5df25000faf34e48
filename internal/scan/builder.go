package scan

import (
	"context"
	"log/slog"

	"langtagger/internal/aggregate"
	"langtagger/internal/library"
	"langtagger/internal/logging"
	"langtagger/internal/services"
)

// rootJob lazily builds one tree. A nil node means the branch was skipped.
type rootJob struct {
	item  library.Item
	build func(ctx context.Context) (*aggregate.Node, error)
}

func (o *Orchestrator) roots(ctx context.Context, part Scope) ([]rootJob, error) {
	var (
		items []library.Item
		err   error
		build func(library.Item) func(context.Context) (*aggregate.Node, error)
	)
	switch part {
	case ScopeMovies:
		items, err = o.lib.Movies(ctx)
		build = func(item library.Item) func(context.Context) (*aggregate.Node, error) {
			return func(context.Context) (*aggregate.Node, error) { return aggregate.NewLeaf(item), nil }
		}
	case ScopeSeries:
		items, err = o.lib.Series(ctx)
		build = func(item library.Item) func(context.Context) (*aggregate.Node, error) {
			return func(ctx context.Context) (*aggregate.Node, error) { return o.seriesTree(ctx, item) }
		}
	case ScopeCollections:
		items, err = o.lib.Collections(ctx)
		build = func(item library.Item) func(context.Context) (*aggregate.Node, error) {
			return func(ctx context.Context) (*aggregate.Node, error) { return o.collectionTree(ctx, item) }
		}
	default:
		return nil, services.Wrap(services.ErrConfiguration, "scan", "roots", "unsupported section "+string(part), nil)
	}
	if err != nil {
		return nil, err
	}
	jobs := make([]rootJob, 0, len(items))
	for _, item := range items {
		jobs = append(jobs, rootJob{item: item, build: build(item)})
	}
	return jobs, nil
}

func (o *Orchestrator) seriesTree(ctx context.Context, series library.Item) (*aggregate.Node, error) {
	logger := o.branchLogger(ctx, series)
	seasons, err := o.lib.Seasons(ctx, series.ID)
	if err != nil {
		return nil, o.branchFailed(logger, "failed to list seasons", err)
	}
	var children []*aggregate.Node
	for _, season := range seasons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		episodes, err := o.lib.Episodes(ctx, season.ID)
		if err != nil {
			if abort := o.branchFailed(o.branchLogger(ctx, season), "failed to list episodes", err); abort != nil {
				return nil, abort
			}
			continue
		}
		if len(episodes) == 0 {
			logging.WarnWithContext(o.branchLogger(ctx, season), "season has no episodes", "aggregation_empty_branch",
				logging.String(logging.FieldImpact, "season skipped"),
				logging.String(logging.FieldErrorHint, "refresh the library if episodes are missing"),
			)
			continue
		}
		leaves := make([]*aggregate.Node, 0, len(episodes))
		for _, episode := range episodes {
			leaves = append(leaves, aggregate.NewLeaf(episode))
		}
		children = append(children, aggregate.NewContainer(season, leaves...))
	}
	if len(children) == 0 {
		logging.WarnWithContext(logger, "series has no episodes", "aggregation_empty_branch",
			logging.String(logging.FieldImpact, "series skipped"),
			logging.String(logging.FieldErrorHint, "refresh the library if episodes are missing"),
		)
		return nil, nil
	}
	return aggregate.NewContainer(series, children...), nil
}

func (o *Orchestrator) collectionTree(ctx context.Context, collection library.Item) (*aggregate.Node, error) {
	logger := o.branchLogger(ctx, collection)
	movies, err := o.lib.CollectionMovies(ctx, collection.ID)
	if err != nil {
		return nil, o.branchFailed(logger, "failed to list collection movies", err)
	}
	if len(movies) == 0 {
		logging.WarnWithContext(logger, "collection has no movies", "aggregation_empty_branch",
			logging.String(logging.FieldImpact, "collection skipped"),
			logging.String(logging.FieldErrorHint, "check the collection contents in the library"),
		)
		return nil, nil
	}
	leaves := make([]*aggregate.Node, 0, len(movies))
	for _, movie := range movies {
		leaves = append(leaves, aggregate.NewLeaf(movie))
	}
	return aggregate.NewContainer(collection, leaves...), nil
}

// branchFailed logs a listing failure and returns it only when it must end
// the pass.
func (o *Orchestrator) branchFailed(logger *slog.Logger, msg string, err error) error {
	if services.AbortsPass(err) {
		return err
	}
	logging.WarnWithContext(logger, msg, "aggregation_branch_failed",
		logging.Error(err),
		logging.String(logging.FieldImpact, "branch skipped"),
		logging.String(logging.FieldErrorHint, "check library connectivity"),
	)
	return nil
}

func (o *Orchestrator) branchLogger(ctx context.Context, item library.Item) *slog.Logger {
	return logging.WithContext(services.WithItemID(ctx, item.ID), o.logger).With(
		logging.String(logging.FieldItemName, item.Label()),
		logging.String("item_type", string(item.Type)),
	)
}
