package testsupport

import (
	"context"
	"strings"
	"sync"

	"langtagger/internal/library"
)

// FakeLibrary is an in-memory library.Library. Items are returned in
// insertion order as clones, so callers never alias stored state.
type FakeLibrary struct {
	mu         sync.Mutex
	items      map[string]*library.Item
	order      []string
	members    map[string][]string
	updates    map[string]int
	failUpdate map[string]error
	failList   map[string]error
}

// NewFakeLibrary returns an empty fake library.
func NewFakeLibrary() *FakeLibrary {
	return &FakeLibrary{
		items:      make(map[string]*library.Item),
		members:    make(map[string][]string),
		updates:    make(map[string]int),
		failUpdate: make(map[string]error),
		failList:   make(map[string]error),
	}
}

var _ library.Library = (*FakeLibrary)(nil)

// Add stores items. RawType defaults to the item type.
func (f *FakeLibrary) Add(items ...library.Item) *FakeLibrary {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		clone := item.Clone()
		if clone.RawType == "" {
			clone.RawType = string(clone.Type)
		}
		if _, exists := f.items[clone.ID]; !exists {
			f.order = append(f.order, clone.ID)
		}
		f.items[clone.ID] = &clone
	}
	return f
}

// AddToCollection records movie membership of a collection.
func (f *FakeLibrary) AddToCollection(collectionID string, movieIDs ...string) *FakeLibrary {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[collectionID] = append(f.members[collectionID], movieIDs...)
	return f
}

// FailUpdates makes UpdateTags for id return err.
func (f *FakeLibrary) FailUpdates(id string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failUpdate[id] = err
}

// FailList makes a listing operation return err. Keys are "movies",
// "series", "collections", "seasons:<seriesID>", "episodes:<seasonID>",
// "members:<collectionID>", and "types".
func (f *FakeLibrary) FailList(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failList[key] = err
}

// Tags returns the stored tags of id.
func (f *FakeLibrary) Tags(id string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item, ok := f.items[id]; ok {
		return append([]string(nil), item.Tags...)
	}
	return nil
}

// Updates returns how many times UpdateTags succeeded for id.
func (f *FakeLibrary) Updates(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates[id]
}

// TotalUpdates returns the number of successful UpdateTags calls.
func (f *FakeLibrary) TotalUpdates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.updates {
		total += n
	}
	return total
}

func (f *FakeLibrary) Movies(context.Context) ([]library.Item, error) {
	return f.filter("movies", func(item *library.Item) bool { return item.Type == library.TypeMovie })
}

func (f *FakeLibrary) Series(context.Context) ([]library.Item, error) {
	return f.filter("series", func(item *library.Item) bool { return item.Type == library.TypeSeries })
}

func (f *FakeLibrary) Seasons(_ context.Context, seriesID string) ([]library.Item, error) {
	return f.filter("seasons:"+seriesID, func(item *library.Item) bool {
		return item.Type == library.TypeSeason && item.ParentID == seriesID
	})
}

func (f *FakeLibrary) Episodes(_ context.Context, seasonID string) ([]library.Item, error) {
	return f.filter("episodes:"+seasonID, func(item *library.Item) bool {
		return item.Type == library.TypeEpisode && item.ParentID == seasonID
	})
}

func (f *FakeLibrary) Collections(context.Context) ([]library.Item, error) {
	return f.filter("collections", func(item *library.Item) bool {
		return item.Type == library.TypeBoxSet && len(item.ProviderIDs) > 0
	})
}

func (f *FakeLibrary) CollectionMovies(_ context.Context, collectionID string) ([]library.Item, error) {
	f.mu.Lock()
	members := make(map[string]struct{}, len(f.members[collectionID]))
	for _, id := range f.members[collectionID] {
		members[id] = struct{}{}
	}
	f.mu.Unlock()
	return f.filter("members:"+collectionID, func(item *library.Item) bool {
		_, ok := members[item.ID]
		return ok
	})
}

func (f *FakeLibrary) Parent(_ context.Context, id string) (library.Item, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok || item.ParentID == "" {
		return library.Item{}, false, nil
	}
	parent, ok := f.items[item.ParentID]
	if !ok {
		return library.Item{}, false, nil
	}
	return parent.Clone(), true, nil
}

func (f *FakeLibrary) ItemsByType(_ context.Context, types []string) ([]library.Item, error) {
	return f.filter("types", func(item *library.Item) bool {
		for _, name := range types {
			if strings.EqualFold(item.RawType, name) {
				return true
			}
		}
		return false
	})
}

func (f *FakeLibrary) UpdateTags(_ context.Context, item *library.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failUpdate[item.ID]; err != nil {
		return err
	}
	stored, ok := f.items[item.ID]
	if !ok {
		return nil
	}
	stored.Tags = append([]string(nil), item.Tags...)
	f.updates[item.ID]++
	return nil
}

func (f *FakeLibrary) filter(key string, keep func(*library.Item) bool) ([]library.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failList[key]; err != nil {
		return nil, err
	}
	var out []library.Item
	for _, id := range f.order {
		if item := f.items[id]; keep(item) {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}
