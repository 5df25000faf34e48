package aggregate_test

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"testing"

	"langtagger/internal/aggregate"
	"langtagger/internal/extract"
	"langtagger/internal/library"
	"langtagger/internal/logging"
	"langtagger/internal/policy"
	"langtagger/internal/tags"
	"langtagger/internal/testsupport"
)

type fakeExtractor struct {
	mu       sync.Mutex
	results  map[string]extract.Result
	errs     map[string]error
	external map[string][]string
	calls    map[string]int
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{
		results:  map[string]extract.Result{},
		errs:     map[string]error{},
		external: map[string][]string{},
		calls:    map[string]int{},
	}
}

func (f *fakeExtractor) Extract(_ context.Context, path string, _ []string) (extract.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	if err := f.errs[path]; err != nil {
		return extract.Result{}, err
	}
	return f.results[path], nil
}

func (f *fakeExtractor) External(_ context.Context, sidecars []string) []string {
	var out []string
	for _, sidecar := range sidecars {
		out = append(out, f.external[sidecar]...)
	}
	return out
}

func (f *fakeExtractor) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func basePolicy() policy.Policy {
	return policy.Policy{
		IncludeSubtitleTags: true,
		AudioPrefix:         "language_",
		SubtitlePrefix:      "subtitle_language_",
		Workers:             4,
	}
}

func movie(id string, tagList ...string) library.Item {
	return library.Item{ID: id, Name: id, Type: library.TypeMovie, Path: "/media/" + id + ".mkv", Tags: tagList}
}

func newEngine(lib *testsupport.FakeLibrary, ex *fakeExtractor, p policy.Policy, mode aggregate.Mode) *aggregate.Engine {
	store := tags.NewStore(lib, p.Prefixes())
	return aggregate.NewEngine(ex, store, p, mode, logging.NewNop())
}

func sorted(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}

func TestLeafWritesLanguageNames(t *testing.T) {
	lib := testsupport.NewFakeLibrary().Add(movie("heat", "favorite"))
	ex := newFakeExtractor()
	ex.results["/media/heat.mkv"] = extract.Result{Audio: []string{"eng", "ger"}, Embedded: []string{"fre"}, Inspected: true}

	engine := newEngine(lib, ex, basePolicy(), aggregate.ModeTracks)
	movies, _ := lib.Movies(context.Background())
	contribution, err := engine.Tag(context.Background(), aggregate.NewLeaf(movies[0]))
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	want := []string{"favorite", "language_English", "language_German", "subtitle_language_French"}
	if got := sorted(lib.Tags("heat")); !reflect.DeepEqual(got, want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(contribution.Audio, []string{"English", "German"}) {
		t.Fatalf("audio contribution = %v", contribution.Audio)
	}
	if engine.Tally().Count(tags.Audio, aggregate.Tagged) != 1 {
		t.Fatalf("expected one tagged audio outcome")
	}
}

func TestLeafDropsUnknownAndUndeterminedCodes(t *testing.T) {
	lib := testsupport.NewFakeLibrary().Add(movie("m"))
	ex := newFakeExtractor()
	ex.results["/media/m.mkv"] = extract.Result{Audio: []string{"und", "qqq", "eng", "ENG"}}

	p := basePolicy()
	p.IncludeSubtitleTags = false
	engine := newEngine(lib, ex, p, aggregate.ModeTracks)
	movies, _ := lib.Movies(context.Background())
	if _, err := engine.Tag(context.Background(), aggregate.NewLeaf(movies[0])); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if got := lib.Tags("m"); !reflect.DeepEqual(got, []string{"language_English"}) {
		t.Fatalf("tags = %v", got)
	}
}

func TestLeafFallbackAndDisabledFallback(t *testing.T) {
	for _, disable := range []bool{false, true} {
		lib := testsupport.NewFakeLibrary().Add(movie("m", "language_French"))
		ex := newFakeExtractor()
		ex.results["/media/m.mkv"] = extract.Result{}

		p := basePolicy()
		p.FullRefresh = true
		p.IncludeSubtitleTags = false
		p.DisableUndeterminedTag = disable
		engine := newEngine(lib, ex, p, aggregate.ModeTracks)
		movies, _ := lib.Movies(context.Background())
		contribution, err := engine.Tag(context.Background(), aggregate.NewLeaf(movies[0]))
		if err != nil {
			t.Fatalf("Tag: %v", err)
		}
		if len(contribution.Audio) != 0 {
			t.Fatalf("fallback must contribute nothing, got %v", contribution.Audio)
		}
		want := []string{"language_und"}
		outcome := aggregate.Fallback
		if disable {
			want = nil
			outcome = aggregate.Untagged
		}
		if got := lib.Tags("m"); !reflect.DeepEqual(got, want) {
			t.Fatalf("disable=%v tags = %v, want %v", disable, got, want)
		}
		if engine.Tally().Count(tags.Audio, outcome) != 1 {
			t.Fatalf("disable=%v expected outcome %s", disable, outcome)
		}
	}
}

func TestIncrementalReusesExistingTags(t *testing.T) {
	lib := testsupport.NewFakeLibrary().Add(movie("m", "language_English", "language_und", "subtitle_language_German"))
	ex := newFakeExtractor()

	engine := newEngine(lib, ex, basePolicy(), aggregate.ModeTracks)
	movies, _ := lib.Movies(context.Background())
	contribution, err := engine.Tag(context.Background(), aggregate.NewLeaf(movies[0]))
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if ex.callCount("/media/m.mkv") != 0 {
		t.Fatalf("incremental pass must not inspect tagged items")
	}
	if !reflect.DeepEqual(contribution.Audio, []string{"English"}) || !reflect.DeepEqual(contribution.Subtitle, []string{"German"}) {
		t.Fatalf("unexpected contribution %+v", contribution)
	}
	if lib.TotalUpdates() != 0 {
		t.Fatalf("skipped items must not be rewritten")
	}
}

func TestFullRefreshReplacesStaleTags(t *testing.T) {
	lib := testsupport.NewFakeLibrary().Add(movie("m", "language_French"))
	ex := newFakeExtractor()
	ex.results["/media/m.mkv"] = extract.Result{Audio: []string{"jpn"}}

	p := basePolicy()
	p.FullRefresh = true
	p.IncludeSubtitleTags = false
	engine := newEngine(lib, ex, p, aggregate.ModeTracks)
	movies, _ := lib.Movies(context.Background())
	if _, err := engine.Tag(context.Background(), aggregate.NewLeaf(movies[0])); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if got := lib.Tags("m"); !reflect.DeepEqual(got, []string{"language_Japanese"}) {
		t.Fatalf("tags = %v", got)
	}
}

func TestWhitelistFiltersLanguages(t *testing.T) {
	lib := testsupport.NewFakeLibrary().Add(movie("m"))
	ex := newFakeExtractor()
	ex.results["/media/m.mkv"] = extract.Result{Audio: []string{"eng", "jpn"}}

	p := basePolicy()
	p.IncludeSubtitleTags = false
	p.Whitelist = policy.ParseWhitelist(nil, "en")
	engine := newEngine(lib, ex, p, aggregate.ModeTracks)
	movies, _ := lib.Movies(context.Background())
	if _, err := engine.Tag(context.Background(), aggregate.NewLeaf(movies[0])); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if got := lib.Tags("m"); !reflect.DeepEqual(got, []string{"language_English"}) {
		t.Fatalf("tags = %v", got)
	}
}

func TestUnknownOnlyWhitelistFallsBackToUndetermined(t *testing.T) {
	lib := testsupport.NewFakeLibrary().Add(movie("m"))
	ex := newFakeExtractor()
	ex.results["/media/m.mkv"] = extract.Result{Audio: []string{"eng", "ger"}}

	p := basePolicy()
	p.IncludeSubtitleTags = false
	p.Whitelist = policy.ParseWhitelist(nil, "xx1,zzq")
	engine := newEngine(lib, ex, p, aggregate.ModeTracks)
	movies, _ := lib.Movies(context.Background())
	if _, err := engine.Tag(context.Background(), aggregate.NewLeaf(movies[0])); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if got := lib.Tags("m"); !reflect.DeepEqual(got, []string{"language_und"}) {
		t.Fatalf("tags = %v", got)
	}
	if engine.Tally().Count(tags.Audio, aggregate.Fallback) != 1 {
		t.Fatalf("expected fallback outcome")
	}
}

func TestExtractionFailureLeavesTagsUntouched(t *testing.T) {
	lib := testsupport.NewFakeLibrary().Add(movie("m", "language_French"))
	ex := newFakeExtractor()
	ex.errs["/media/m.mkv"] = &extract.ExtractionError{Path: "/media/m.mkv", Err: errors.New("boom")}

	p := basePolicy()
	p.FullRefresh = true
	engine := newEngine(lib, ex, p, aggregate.ModeTracks)
	movies, _ := lib.Movies(context.Background())
	contribution, err := engine.Tag(context.Background(), aggregate.NewLeaf(movies[0]))
	if err != nil {
		t.Fatalf("extraction errors must not abort: %v", err)
	}
	if len(contribution.Audio) != 0 || len(contribution.Subtitle) != 0 {
		t.Fatalf("failed leaf must contribute nothing, got %+v", contribution)
	}
	if got := lib.Tags("m"); !reflect.DeepEqual(got, []string{"language_French"}) {
		t.Fatalf("tags changed on failure: %v", got)
	}
	if engine.Tally().Count(tags.Audio, aggregate.Failed) != 1 || engine.Tally().Count(tags.Subtitle, aggregate.Failed) != 1 {
		t.Fatalf("expected failed outcomes for both kinds")
	}
}

func TestCancellationDuringExtractionAborts(t *testing.T) {
	lib := testsupport.NewFakeLibrary().Add(movie("m"))
	ex := newFakeExtractor()
	ex.errs["/media/m.mkv"] = context.Canceled

	engine := newEngine(lib, ex, basePolicy(), aggregate.ModeTracks)
	movies, _ := lib.Movies(context.Background())
	if _, err := engine.Tag(context.Background(), aggregate.NewLeaf(movies[0])); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestSeriesAggregation(t *testing.T) {
	series := library.Item{ID: "s", Name: "Dark", Type: library.TypeSeries}
	season1 := library.Item{ID: "s1", Type: library.TypeSeason, ParentID: "s"}
	season2 := library.Item{ID: "s2", Type: library.TypeSeason, ParentID: "s"}
	e1 := library.Item{ID: "e1", Type: library.TypeEpisode, ParentID: "s1", Path: "/tv/e1.mkv"}
	e2 := library.Item{ID: "e2", Type: library.TypeEpisode, ParentID: "s1", Path: "/tv/e2.mkv"}
	e3 := library.Item{ID: "e3", Type: library.TypeEpisode, ParentID: "s2", Path: "/tv/e3.mkv"}
	lib := testsupport.NewFakeLibrary().Add(series, season1, season2, e1, e2, e3)

	ex := newFakeExtractor()
	ex.results["/tv/e1.mkv"] = extract.Result{Audio: []string{"eng"}}
	ex.results["/tv/e2.mkv"] = extract.Result{Audio: []string{"eng", "spa"}}
	ex.results["/tv/e3.mkv"] = extract.Result{}

	p := basePolicy()
	p.IncludeSubtitleTags = false
	engine := newEngine(lib, ex, p, aggregate.ModeTracks)
	root := aggregate.NewContainer(series,
		aggregate.NewContainer(season1, aggregate.NewLeaf(e1), aggregate.NewLeaf(e2)),
		aggregate.NewContainer(season2, aggregate.NewLeaf(e3)),
	)
	contribution, err := engine.Tag(context.Background(), root)
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	checks := map[string][]string{
		"e1": {"language_English"},
		"e2": {"language_English", "language_Spanish"},
		"e3": {"language_und"},
		"s1": {"language_English", "language_Spanish"},
		"s2": {"language_und"},
		"s":  {"language_English", "language_Spanish"},
	}
	for id, want := range checks {
		if got := sorted(lib.Tags(id)); !reflect.DeepEqual(got, want) {
			t.Fatalf("%s tags = %v, want %v", id, got, want)
		}
	}
	if !reflect.DeepEqual(sorted(contribution.Audio), []string{"English", "Spanish"}) {
		t.Fatalf("series contribution = %v", contribution.Audio)
	}
	if engine.Tally().Leaves() != 3 {
		t.Fatalf("Leaves = %d", engine.Tally().Leaves())
	}
}

func TestSharedMovieExtractedOnce(t *testing.T) {
	heat := movie("heat")
	set := library.Item{ID: "set", Type: library.TypeBoxSet, ProviderIDs: map[string]string{"Tmdb": "1"}}
	lib := testsupport.NewFakeLibrary().Add(heat, set)
	ex := newFakeExtractor()
	ex.results["/media/heat.mkv"] = extract.Result{Audio: []string{"eng"}}

	p := basePolicy()
	p.FullRefresh = true
	p.IncludeSubtitleTags = false
	engine := newEngine(lib, ex, p, aggregate.ModeTracks)
	ctx := context.Background()
	if _, err := engine.Tag(ctx, aggregate.NewLeaf(heat)); err != nil {
		t.Fatalf("Tag movie: %v", err)
	}
	if _, err := engine.Tag(ctx, aggregate.NewContainer(set, aggregate.NewLeaf(heat))); err != nil {
		t.Fatalf("Tag collection: %v", err)
	}
	if n := ex.callCount("/media/heat.mkv"); n != 1 {
		t.Fatalf("movie extracted %d times, want 1", n)
	}
	if got := lib.Tags("set"); !reflect.DeepEqual(got, []string{"language_English"}) {
		t.Fatalf("collection tags = %v", got)
	}
}

func TestSidecarModeMergesSubtitleTags(t *testing.T) {
	m := movie("m", "language_English", "subtitle_language_und")
	m.Sidecars = []string{"/media/m.fr.srt"}
	other := movie("o", "subtitle_language_German")
	set := library.Item{ID: "set", Type: library.TypeBoxSet, Tags: []string{"subtitle_language_und"}}
	lib := testsupport.NewFakeLibrary().Add(m, other, set)
	ex := newFakeExtractor()
	ex.external["/media/m.fr.srt"] = []string{"fra"}

	p := basePolicy()
	p.IncludeSubtitleTags = false
	engine := newEngine(lib, ex, p, aggregate.ModeSidecars)
	root := aggregate.NewContainer(set, aggregate.NewLeaf(m), aggregate.NewLeaf(other))
	if _, err := engine.Tag(context.Background(), root); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if got := sorted(lib.Tags("m")); !reflect.DeepEqual(got, []string{"language_English", "subtitle_language_French"}) {
		t.Fatalf("movie tags = %v", got)
	}
	if got := lib.Updates("o"); got != 0 {
		t.Fatalf("movie without sidecars should not be rewritten, updates=%d", got)
	}
	if got := sorted(lib.Tags("set")); !reflect.DeepEqual(got, []string{"subtitle_language_French", "subtitle_language_German"}) {
		t.Fatalf("collection tags = %v", got)
	}
	if len(ex.calls) != 0 {
		t.Fatalf("sidecar mode must not run ffmpeg")
	}
}

func TestPersistFailureCountsAsFailed(t *testing.T) {
	lib := testsupport.NewFakeLibrary().Add(movie("m"))
	lib.FailUpdates("m", errors.New("read-only"))
	ex := newFakeExtractor()
	ex.results["/media/m.mkv"] = extract.Result{Audio: []string{"eng"}}

	p := basePolicy()
	p.IncludeSubtitleTags = false
	engine := newEngine(lib, ex, p, aggregate.ModeTracks)
	movies, _ := lib.Movies(context.Background())
	contribution, err := engine.Tag(context.Background(), aggregate.NewLeaf(movies[0]))
	if err != nil {
		t.Fatalf("persist failures must not abort: %v", err)
	}
	if engine.Tally().Count(tags.Audio, aggregate.Failed) != 1 {
		t.Fatalf("expected failed outcome")
	}
	if !reflect.DeepEqual(contribution.Audio, []string{"English"}) {
		t.Fatalf("extracted languages should still reach the parent, got %v", contribution.Audio)
	}
}
