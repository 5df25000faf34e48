package library

import (
	"context"
	"strings"
)

// Type is the kind of a library item.
type Type string

const (
	TypeMovie   Type = "Movie"
	TypeSeries  Type = "Series"
	TypeSeason  Type = "Season"
	TypeEpisode Type = "Episode"
	TypeBoxSet  Type = "BoxSet"
	TypeOther   Type = "Other"
)

// IsVideo reports whether items of this type are backed by a media file.
func (t Type) IsVideo() bool {
	return t == TypeMovie || t == TypeEpisode
}

// ParseType maps a type name case-insensitively; unknown names yield TypeOther.
func ParseType(name string) Type {
	for _, t := range []Type{TypeMovie, TypeSeries, TypeSeason, TypeEpisode, TypeBoxSet} {
		if strings.EqualFold(string(t), strings.TrimSpace(name)) {
			return t
		}
	}
	return TypeOther
}

// Item is one library entry. Video items carry a Path; containers do not.
type Item struct {
	ID          string
	Name        string
	Type        Type
	RawType     string
	Path        string
	Tags        []string
	Sidecars    []string
	ParentID    string
	ProviderIDs map[string]string
}

// Label returns a human-readable name for logs.
func (i *Item) Label() string {
	if i == nil {
		return ""
	}
	if strings.TrimSpace(i.Name) != "" {
		return i.Name
	}
	return i.ID
}

// Clone returns a deep copy so callers can mutate tags without aliasing.
func (i Item) Clone() Item {
	out := i
	out.Tags = append([]string(nil), i.Tags...)
	out.Sidecars = append([]string(nil), i.Sidecars...)
	if i.ProviderIDs != nil {
		out.ProviderIDs = make(map[string]string, len(i.ProviderIDs))
		for k, v := range i.ProviderIDs {
			out.ProviderIDs[k] = v
		}
	}
	return out
}

// TagUpdater persists an item's current tag list.
type TagUpdater interface {
	UpdateTags(ctx context.Context, item *Item) error
}

// Library is the collaborator the scan pipeline reads items from and writes
// tags through. Implementations must be safe for concurrent use.
type Library interface {
	TagUpdater
	Movies(ctx context.Context) ([]Item, error)
	Series(ctx context.Context) ([]Item, error)
	Seasons(ctx context.Context, seriesID string) ([]Item, error)
	Episodes(ctx context.Context, seasonID string) ([]Item, error)
	// Collections returns box sets that carry an external identifier.
	Collections(ctx context.Context) ([]Item, error)
	CollectionMovies(ctx context.Context, collectionID string) ([]Item, error)
	Parent(ctx context.Context, id string) (Item, bool, error)
	// ItemsByType returns items whose raw type name matches one of types.
	ItemsByType(ctx context.Context, types []string) ([]Item, error)
}
