package aggregate

import (
	"context"
	"errors"
	"log/slog"

	"langtagger/internal/extract"
	"langtagger/internal/language"
	"langtagger/internal/logging"
	"langtagger/internal/policy"
	"langtagger/internal/services"
	"langtagger/internal/tags"
)

// Extractor discovers language codes for one video item.
type Extractor interface {
	Extract(ctx context.Context, path string, sidecars []string) (extract.Result, error)
	External(ctx context.Context, sidecars []string) []string
}

// Mode selects what a pass recomputes.
type Mode int

const (
	// ModeTracks tags audio and (when enabled) subtitle kinds from ffmpeg
	// output and sidecar files.
	ModeTracks Mode = iota
	// ModeSidecars merges sidecar-derived subtitle languages into existing
	// subtitle tags without running ffmpeg.
	ModeSidecars
)

// Engine tags the trees of one pass. Build a new Engine per pass so the
// memo and tally start empty.
type Engine struct {
	extractor Extractor
	store     *tags.Store
	policy    policy.Policy
	mode      Mode
	memo      *Memo
	tally     *Tally
	logger    *slog.Logger
}

// NewEngine builds an engine for one pass.
func NewEngine(extractor Extractor, store *tags.Store, p policy.Policy, mode Mode, logger *slog.Logger) *Engine {
	return &Engine{
		extractor: extractor,
		store:     store,
		policy:    p,
		mode:      mode,
		memo:      NewMemo(),
		tally:     NewTally(),
		logger:    logging.NewComponentLogger(logger, "aggregate"),
	}
}

// WithMemo makes the engine share memo with other engines of the same pass,
// so a leaf tagged in one section is not inspected again in another.
func (e *Engine) WithMemo(memo *Memo) *Engine {
	if memo != nil {
		e.memo = memo
	}
	return e
}

// Tally exposes the outcome counts recorded so far.
func (e *Engine) Tally() *Tally { return e.tally }

// Kinds returns the tag kinds this pass maintains.
func (e *Engine) Kinds() []tags.Kind {
	if e.mode == ModeSidecars {
		return []tags.Kind{tags.Subtitle}
	}
	kinds := make([]tags.Kind, 0, 2)
	for _, kind := range []tags.Kind{tags.Audio, tags.Subtitle} {
		if e.policy.Enabled(kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Tag folds one tree and returns the root's Contribution. Only cancellation
// and configuration errors are returned; item failures are logged and counted.
func (e *Engine) Tag(ctx context.Context, root *Node) (Contribution, error) {
	parallelism := e.policy.Workers
	if e.policy.Synchronous {
		parallelism = 1
	}
	return Fold(ctx, root, FoldFuncs[Contribution]{
		Leaf:      e.leaf,
		Container: e.container,
	}, parallelism)
}

func (e *Engine) leaf(ctx context.Context, node *Node) (Contribution, error) {
	item := node.Item
	contribution, shared, err := e.memo.Do(item.ID, func() (Contribution, error) {
		ctx := services.WithItemID(ctx, item.ID)
		if e.mode == ModeSidecars {
			return e.mergeSidecars(ctx, node)
		}
		return e.tagLeaf(ctx, node)
	})
	if err == nil && shared {
		e.itemLogger(ctx, node).Debug("reusing languages computed earlier in this pass")
	}
	return contribution, err
}

func (e *Engine) tagLeaf(ctx context.Context, node *Node) (Contribution, error) {
	item := node.Item
	logger := e.itemLogger(ctx, node)
	defer e.tally.leafDone()

	var (
		contribution Contribution
		pending      []tags.Kind
	)
	for _, kind := range e.Kinds() {
		if !e.policy.FullRefresh && e.store.Has(item, kind) {
			contribution.set(kind, union(e.store.Get(item, kind)))
			e.tally.record(kind, Skipped)
			continue
		}
		pending = append(pending, kind)
	}
	if len(pending) == 0 {
		logger.Debug("existing language tags kept")
		return contribution, nil
	}

	result, err := e.extractor.Extract(ctx, item.Path, item.Sidecars)
	if err != nil {
		if services.AbortsPass(err) {
			return Contribution{}, err
		}
		logging.WarnWithContext(logger, "language extraction failed", "extraction_failed",
			logging.Error(err),
			logging.String("path", item.Path),
			logging.String(logging.FieldErrorHint, "check that the file exists and ffmpeg can read it"),
			logging.String(logging.FieldImpact, "item tags left unchanged"),
		)
		for _, kind := range pending {
			e.tally.record(kind, Failed)
		}
		return contribution, nil
	}

	for _, kind := range pending {
		codes := result.Audio
		if kind == tags.Subtitle {
			codes = result.Subtitles()
		}
		names := e.languageNames(logger, codes)
		written, outcome := e.write(ctx, logger, node, kind, names)
		e.tally.record(kind, outcome)
		contribution.set(kind, written)
	}
	return contribution, nil
}

// mergeSidecars adds sidecar languages to the existing subtitle tags of a
// leaf. A lone undetermined tag is dropped once a real language is known.
func (e *Engine) mergeSidecars(ctx context.Context, node *Node) (Contribution, error) {
	item := node.Item
	logger := e.itemLogger(ctx, node)
	defer e.tally.leafDone()

	existing := union(e.store.Get(item, tags.Subtitle))
	found := e.languageNames(logger, e.extractor.External(ctx, item.Sidecars))
	merged := union(existing, found)
	if len(merged) == len(existing) {
		e.tally.record(tags.Subtitle, Skipped)
		return Contribution{Subtitle: existing}, nil
	}
	written, err := e.store.Replace(ctx, item, tags.Subtitle, merged)
	if err != nil {
		e.persistFailed(logger, err)
		e.tally.record(tags.Subtitle, Failed)
		return Contribution{Subtitle: merged}, nil
	}
	logger.Info("sidecar subtitle languages merged", logging.Strings("languages", written))
	e.tally.record(tags.Subtitle, Tagged)
	return Contribution{Subtitle: written}, nil
}

func (e *Engine) container(ctx context.Context, node *Node, children []Contribution) (Contribution, error) {
	ctx = services.WithItemID(ctx, node.Item.ID)
	logger := e.itemLogger(ctx, node)

	var contribution Contribution
	for _, kind := range e.Kinds() {
		lists := make([][]string, 0, len(children))
		for _, child := range children {
			lists = append(lists, child.For(kind))
		}
		written, outcome := e.write(ctx, logger, node, kind, union(lists...))
		e.tally.record(kind, outcome)
		contribution.set(kind, written)
	}
	return contribution, nil
}

// write replaces the tags of kind with names, or with the undetermined
// fallback when names is empty. It returns the names to contribute.
func (e *Engine) write(ctx context.Context, logger *slog.Logger, node *Node, kind tags.Kind, names []string) ([]string, Outcome) {
	item := node.Item
	kindLogger := logger.With(logging.String(logging.FieldKind, kind.String()))
	if len(names) == 0 {
		if e.policy.DisableUndeterminedTag {
			if err := e.store.Remove(ctx, item, kind); err != nil {
				e.persistFailed(kindLogger, err)
				return nil, Failed
			}
			kindLogger.Debug("no languages found; tags cleared")
			return nil, Untagged
		}
		if _, err := e.store.Replace(ctx, item, kind, []string{language.Undetermined}); err != nil {
			e.persistFailed(kindLogger, err)
			return nil, Failed
		}
		kindLogger.Info("no languages found; tagged undetermined")
		return nil, Fallback
	}

	written, err := e.store.Replace(ctx, item, kind, names)
	if err != nil {
		e.persistFailed(kindLogger, err)
		return names, Failed
	}
	kindLogger.Info("language tags written", logging.Strings("languages", written))
	return written, Tagged
}

// languageNames canonicalizes codes, applies the whitelist, and maps the
// survivors to registry names. Unknown codes and the undetermined code are
// dropped. Codes sharing a name collapse into one.
func (e *Engine) languageNames(logger *slog.Logger, codes []string) []string {
	canonical := make([]string, 0, len(codes))
	for _, code := range codes {
		c := language.Canonical3(code)
		if c == "" || c == language.Undetermined {
			continue
		}
		canonical = append(canonical, c)
	}
	filtered := policy.Filter(logger, canonical, e.policy.Whitelist)
	names := make([]string, 0, len(filtered))
	for _, code := range filtered {
		if name, ok := language.Name(code); ok {
			names = append(names, name)
		}
	}
	return union(names)
}

func (e *Engine) persistFailed(logger *slog.Logger, err error) {
	if errors.Is(err, context.Canceled) {
		logger.Debug("tag update interrupted", logging.Error(err))
		return
	}
	logging.ErrorWithContext(logger, "failed to persist tags", "tag_persist_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check library connectivity and permissions"),
	)
}

func (e *Engine) itemLogger(ctx context.Context, node *Node) *slog.Logger {
	return logging.WithContext(ctx, e.logger).With(
		logging.String(logging.FieldItemName, node.Item.Label()),
		logging.String("item_type", string(node.Item.Type)),
	)
}

func isUndetermined(name string) bool {
	return tags.EqualFold(name, language.Undetermined)
}
