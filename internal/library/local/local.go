package local

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"langtagger/internal/extract"
	"langtagger/internal/library"
	"langtagger/internal/logging"
	"langtagger/internal/services"
)

const (
	moviesRoot       = "movies"
	tvRoot           = "tv"
	collectionSuffix = " Collection"
)

var videoExtensions = map[string]struct{}{
	".mkv": {}, ".mp4": {}, ".m4v": {}, ".avi": {}, ".mov": {}, ".wmv": {},
	".ts": {}, ".m2ts": {}, ".webm": {}, ".mpg": {}, ".mpeg": {}, ".flv": {},
}

// TagStore persists tag lists by item ID.
type TagStore interface {
	AllTags(ctx context.Context) (map[string][]string, error)
	SetTags(ctx context.Context, itemID string, tags []string) error
}

// Library reads media from the configured directories.
type Library struct {
	moviesDir string
	tvDir     string
	store     TagStore
	logger    *slog.Logger
}

// New builds a local library. Either directory may be empty.
func New(moviesDir, tvDir string, store TagStore, logger *slog.Logger) *Library {
	return &Library{
		moviesDir: moviesDir,
		tvDir:     tvDir,
		store:     store,
		logger:    logging.NewComponentLogger(logger, "library.local"),
	}
}

var _ library.Library = (*Library)(nil)

// Movies returns every movie, including those inside collection folders.
func (l *Library) Movies(ctx context.Context) ([]library.Item, error) {
	tags, err := l.tags(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := l.readDir(l.moviesDir, moviesRoot)
	if err != nil {
		return nil, err
	}
	var movies []library.Item
	for _, entry := range entries {
		if entry.IsDir() && isCollection(entry.Name()) {
			children, err := l.moviesIn(path.Join(moviesRoot, entry.Name()), tags)
			if err != nil {
				return nil, err
			}
			movies = append(movies, children...)
			continue
		}
		if movie, ok := l.movie(moviesRoot, entry, entries, tags); ok {
			movies = append(movies, movie)
		}
	}
	return movies, nil
}

// Series returns the top-level folders of tv_dir.
func (l *Library) Series(ctx context.Context) ([]library.Item, error) {
	tags, err := l.tags(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := l.readDir(l.tvDir, tvRoot)
	if err != nil {
		return nil, err
	}
	var series []library.Item
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		series = append(series, l.container(path.Join(tvRoot, entry.Name()), library.TypeSeries, "", tags))
	}
	return series, nil
}

// Seasons returns the folders of one series.
func (l *Library) Seasons(ctx context.Context, seriesID string) ([]library.Item, error) {
	tags, err := l.tags(ctx)
	if err != nil {
		return nil, err
	}
	dir, err := l.resolve(seriesID)
	if err != nil {
		return nil, err
	}
	entries, err := l.readDir(dir, seriesID)
	if err != nil {
		return nil, err
	}
	var seasons []library.Item
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		seasons = append(seasons, l.container(path.Join(seriesID, entry.Name()), library.TypeSeason, seriesID, tags))
	}
	return seasons, nil
}

// Episodes returns the video files of one season folder.
func (l *Library) Episodes(ctx context.Context, seasonID string) ([]library.Item, error) {
	tags, err := l.tags(ctx)
	if err != nil {
		return nil, err
	}
	dir, err := l.resolve(seasonID)
	if err != nil {
		return nil, err
	}
	entries, err := l.readDir(dir, seasonID)
	if err != nil {
		return nil, err
	}
	var episodes []library.Item
	for _, entry := range entries {
		if entry.IsDir() || !isVideo(entry.Name()) {
			continue
		}
		episodes = append(episodes, l.video(path.Join(seasonID, entry.Name()), library.TypeEpisode, seasonID, entries, tags))
	}
	return episodes, nil
}

// Collections returns the " Collection" folders of movies_dir. The folder
// path serves as the external identifier.
func (l *Library) Collections(ctx context.Context) ([]library.Item, error) {
	tags, err := l.tags(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := l.readDir(l.moviesDir, moviesRoot)
	if err != nil {
		return nil, err
	}
	var collections []library.Item
	for _, entry := range entries {
		if !entry.IsDir() || !isCollection(entry.Name()) {
			continue
		}
		id := path.Join(moviesRoot, entry.Name())
		item := l.container(id, library.TypeBoxSet, "", tags)
		item.Name = strings.TrimSpace(strings.TrimSuffix(entry.Name(), collectionSuffix))
		item.ProviderIDs = map[string]string{"Local": id}
		collections = append(collections, item)
	}
	return collections, nil
}

// CollectionMovies returns the movies inside one collection folder.
func (l *Library) CollectionMovies(ctx context.Context, collectionID string) ([]library.Item, error) {
	tags, err := l.tags(ctx)
	if err != nil {
		return nil, err
	}
	return l.moviesIn(collectionID, tags)
}

// Parent resolves the containing series, season, or collection of id.
func (l *Library) Parent(ctx context.Context, id string) (library.Item, bool, error) {
	parentID := parentOf(id)
	if parentID == "" {
		return library.Item{}, false, nil
	}
	tags, err := l.tags(ctx)
	if err != nil {
		return library.Item{}, false, err
	}
	dir, err := l.resolve(parentID)
	if err != nil {
		return library.Item{}, false, err
	}
	if _, err := os.Stat(dir); err != nil {
		return library.Item{}, false, nil
	}
	segments := strings.Split(parentID, "/")
	switch {
	case segments[0] == moviesRoot && isCollection(segments[len(segments)-1]):
		item := l.container(parentID, library.TypeBoxSet, "", tags)
		item.Name = strings.TrimSpace(strings.TrimSuffix(item.Name, collectionSuffix))
		item.ProviderIDs = map[string]string{"Local": parentID}
		return item, true, nil
	case segments[0] == tvRoot && len(segments) == 2:
		return l.container(parentID, library.TypeSeries, "", tags), true, nil
	case segments[0] == tvRoot && len(segments) == 3:
		return l.container(parentID, library.TypeSeason, parentOf(parentID), tags), true, nil
	}
	return library.Item{}, false, nil
}

// ItemsByType matches raw type names against every known item. Directory
// libraries only hold video items and their containers.
func (l *Library) ItemsByType(ctx context.Context, types []string) ([]library.Item, error) {
	wanted := make(map[library.Type]struct{}, len(types))
	for _, name := range types {
		if t := library.ParseType(name); t != library.TypeOther {
			wanted[t] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return nil, nil
	}
	var out []library.Item
	add := func(items []library.Item, err error) error {
		if err != nil {
			return err
		}
		for _, item := range items {
			if _, ok := wanted[item.Type]; ok {
				out = append(out, item)
			}
		}
		return nil
	}
	if err := add(l.Movies(ctx)); err != nil {
		return nil, err
	}
	if err := add(l.Collections(ctx)); err != nil {
		return nil, err
	}
	series, err := l.Series(ctx)
	if err := add(series, err); err != nil {
		return nil, err
	}
	for _, show := range series {
		seasons, err := l.Seasons(ctx, show.ID)
		if err := add(seasons, err); err != nil {
			return nil, err
		}
		for _, season := range seasons {
			if err := add(l.Episodes(ctx, season.ID)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// UpdateTags persists item.Tags in the state store.
func (l *Library) UpdateTags(ctx context.Context, item *library.Item) error {
	if l.store == nil {
		return services.Wrap(services.ErrConfiguration, "library.local", "update tags", "no state store configured", nil)
	}
	if err := l.store.SetTags(ctx, item.ID, item.Tags); err != nil {
		return services.Wrap(services.ErrLibrary, "library.local", "update tags", item.ID, err)
	}
	return nil
}

func (l *Library) tags(ctx context.Context) (map[string][]string, error) {
	if l.store == nil {
		return nil, nil
	}
	tags, err := l.store.AllTags(ctx)
	if err != nil {
		return nil, services.Wrap(services.ErrLibrary, "library.local", "load tags", "read state store", err)
	}
	return tags, nil
}

func (l *Library) moviesIn(collectionID string, tags map[string][]string) ([]library.Item, error) {
	dir, err := l.resolve(collectionID)
	if err != nil {
		return nil, err
	}
	entries, err := l.readDir(dir, collectionID)
	if err != nil {
		return nil, err
	}
	var movies []library.Item
	for _, entry := range entries {
		if movie, ok := l.movie(collectionID, entry, entries, tags); ok {
			movie.ParentID = collectionID
			movies = append(movies, movie)
		}
	}
	return movies, nil
}

// movie turns a movies_dir entry into an item. A folder yields its first
// video file (sorted by name); the item ID stays the folder path.
func (l *Library) movie(parentID string, entry os.DirEntry, siblings []os.DirEntry, tags map[string][]string) (library.Item, bool) {
	id := path.Join(parentID, entry.Name())
	if !entry.IsDir() {
		if !isVideo(entry.Name()) {
			return library.Item{}, false
		}
		return l.video(id, library.TypeMovie, "", siblings, tags), true
	}
	dir := l.abs(id)
	entries, err := l.readDir(dir, id)
	if err != nil {
		return library.Item{}, false
	}
	for _, child := range entries {
		if child.IsDir() || !isVideo(child.Name()) {
			continue
		}
		item := l.video(path.Join(id, child.Name()), library.TypeMovie, "", entries, tags)
		item.ID = id
		item.Name = entry.Name()
		item.Tags = append([]string(nil), tags[id]...)
		return item, true
	}
	logging.WarnWithContext(l.logger, "movie folder has no video file", "library_movie_empty",
		logging.String(logging.FieldItemID, id),
		logging.String(logging.FieldImpact, "folder is not tagged"),
	)
	return library.Item{}, false
}

func (l *Library) video(id string, kind library.Type, parentID string, siblings []os.DirEntry, tags map[string][]string) library.Item {
	name := path.Base(id)
	return library.Item{
		ID:       id,
		Name:     strings.TrimSuffix(name, filepath.Ext(name)),
		Type:     kind,
		RawType:  string(kind),
		Path:     l.abs(id),
		Tags:     append([]string(nil), tags[id]...),
		Sidecars: sidecars(filepath.Dir(l.abs(id)), name, siblings),
		ParentID: parentID,
	}
}

func (l *Library) container(id string, kind library.Type, parentID string, tags map[string][]string) library.Item {
	return library.Item{
		ID:       id,
		Name:     path.Base(id),
		Type:     kind,
		RawType:  string(kind),
		Tags:     append([]string(nil), tags[id]...),
		ParentID: parentID,
	}
}

// resolve maps an item ID to its directory, rejecting IDs that escape the
// library roots.
func (l *Library) resolve(id string) (string, error) {
	clean := path.Clean(id)
	if clean != id || strings.HasPrefix(clean, "../") || strings.Contains(clean, "/../") {
		return "", services.Wrap(services.ErrNotFound, "library.local", "resolve", fmt.Sprintf("invalid item id %q", id), nil)
	}
	root, _, _ := strings.Cut(clean, "/")
	if (root == moviesRoot && l.moviesDir == "") || (root == tvRoot && l.tvDir == "") || (root != moviesRoot && root != tvRoot) {
		return "", services.Wrap(services.ErrNotFound, "library.local", "resolve", fmt.Sprintf("unknown item %q", id), nil)
	}
	return l.abs(clean), nil
}

func (l *Library) abs(id string) string {
	root, rest, _ := strings.Cut(id, "/")
	base := l.moviesDir
	if root == tvRoot {
		base = l.tvDir
	}
	return filepath.Join(base, filepath.FromSlash(rest))
}

// readDir lists visible entries in name order. A missing or unset library
// root reads as empty.
func (l *Library) readDir(dir, id string) ([]os.DirEntry, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) && (id == moviesRoot || id == tvRoot) {
			return nil, nil
		}
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "library.local", "read dir", id, err)
		}
		return nil, services.Wrap(services.ErrLibrary, "library.local", "read dir", id, err)
	}
	visible := entries[:0]
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), ".") {
			visible = append(visible, entry)
		}
	}
	return visible, nil
}

// sidecars returns subtitle files next to video whose names start with the
// video's base name. Names are compared in NFC so decomposed and precomposed
// spellings match.
func sidecars(dir, video string, siblings []os.DirEntry) []string {
	base := norm.NFC.String(strings.TrimSuffix(video, filepath.Ext(video)))
	var out []string
	for _, entry := range siblings {
		if entry.IsDir() || !extract.IsSubtitleFile(entry.Name()) {
			continue
		}
		if !strings.HasPrefix(norm.NFC.String(entry.Name()), base) {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	return out
}

func parentOf(id string) string {
	idx := strings.LastIndex(id, "/")
	if idx <= 0 {
		return ""
	}
	parent := id[:idx]
	if parent == moviesRoot || parent == tvRoot {
		return ""
	}
	return parent
}

func isCollection(name string) bool {
	return strings.HasSuffix(name, collectionSuffix)
}

func isVideo(name string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
