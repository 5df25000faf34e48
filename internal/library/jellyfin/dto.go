package jellyfin

import "langtagger/internal/library"

type itemsPage struct {
	Items            []itemDTO `json:"Items"`
	TotalRecordCount int       `json:"TotalRecordCount"`
}

type itemDTO struct {
	ID           string            `json:"Id"`
	Name         string            `json:"Name"`
	Type         string            `json:"Type"`
	Path         string            `json:"Path"`
	Tags         []string          `json:"Tags"`
	ParentID     string            `json:"ParentId"`
	SeasonID     string            `json:"SeasonId"`
	SeriesID     string            `json:"SeriesId"`
	ProviderIDs  map[string]string `json:"ProviderIds"`
	MediaStreams []streamDTO       `json:"MediaStreams"`
}

type streamDTO struct {
	Type       string `json:"Type"`
	Language   string `json:"Language"`
	IsExternal bool   `json:"IsExternal"`
	Path       string `json:"Path"`
}

func (d itemDTO) toItem() library.Item {
	kind := library.ParseType(d.Type)
	parent := d.ParentID
	switch kind {
	case library.TypeEpisode:
		if d.SeasonID != "" {
			parent = d.SeasonID
		}
	case library.TypeSeason:
		if d.SeriesID != "" {
			parent = d.SeriesID
		}
	}
	var sidecars []string
	for _, stream := range d.MediaStreams {
		if stream.IsExternal && stream.Path != "" && stream.Type == "Subtitle" {
			sidecars = append(sidecars, stream.Path)
		}
	}
	return library.Item{
		ID:          d.ID,
		Name:        d.Name,
		Type:        kind,
		RawType:     d.Type,
		Path:        d.Path,
		Tags:        append([]string(nil), d.Tags...),
		Sidecars:    sidecars,
		ParentID:    parent,
		ProviderIDs: d.ProviderIDs,
	}
}
