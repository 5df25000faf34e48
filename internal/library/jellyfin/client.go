package jellyfin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"langtagger/internal/config"
	"langtagger/internal/library"
	"langtagger/internal/logging"
	"langtagger/internal/services"
)

const itemFields = "Tags,Path,ProviderIds,MediaStreams,ParentId"

// HTTPDoer describes the HTTP client used by the Jellyfin library.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Jellyfin REST API.
type Client struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
	logger  *slog.Logger

	// season ID -> series ID, filled by Seasons so Episodes can use the
	// show endpoint.
	seasonSeries sync.Map
}

var _ library.Library = (*Client)(nil)

// NewFromConfig builds a client from the [jellyfin] section.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.Jellyfin.URL) == "" || strings.TrimSpace(cfg.Jellyfin.APIKey) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "jellyfin", "configure", "jellyfin.url and jellyfin.api_key are required", nil)
	}
	timeout := time.Duration(cfg.Jellyfin.TimeoutSeconds) * time.Second
	return New(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, &http.Client{Timeout: timeout}, logger), nil
}

// New constructs a client. A nil doer uses http.DefaultClient.
func New(baseURL, apiKey string, client HTTPDoer, logger *slog.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
		logger:  logging.NewComponentLogger(logger, "library.jellyfin"),
	}
}

// Movies returns every movie in the server.
func (c *Client) Movies(ctx context.Context) ([]library.Item, error) {
	return c.itemsOfType(ctx, "movies", "Movie")
}

// Series returns every series in the server.
func (c *Client) Series(ctx context.Context) ([]library.Item, error) {
	return c.itemsOfType(ctx, "series", "Series")
}

// Seasons returns the seasons of one series.
func (c *Client) Seasons(ctx context.Context, seriesID string) ([]library.Item, error) {
	query := url.Values{"Fields": {itemFields}}
	seasons, err := c.list(ctx, "seasons", "/Shows/"+url.PathEscape(seriesID)+"/Seasons", query)
	if err != nil {
		return nil, err
	}
	for i := range seasons {
		if seasons[i].ParentID == "" {
			seasons[i].ParentID = seriesID
		}
		c.seasonSeries.Store(seasons[i].ID, seriesID)
	}
	return seasons, nil
}

// Episodes returns the episodes of one season.
func (c *Client) Episodes(ctx context.Context, seasonID string) ([]library.Item, error) {
	query := url.Values{"Fields": {itemFields}}
	if seriesID, ok := c.seasonSeries.Load(seasonID); ok {
		query.Set("seasonId", seasonID)
		return c.list(ctx, "episodes", "/Shows/"+url.PathEscape(seriesID.(string))+"/Episodes", query)
	}
	query.Set("ParentId", seasonID)
	query.Set("IncludeItemTypes", "Episode")
	query.Set("Recursive", "true")
	return c.list(ctx, "episodes", "/Items", query)
}

// Collections returns box sets that carry at least one provider identifier.
func (c *Client) Collections(ctx context.Context) ([]library.Item, error) {
	boxSets, err := c.itemsOfType(ctx, "collections", "BoxSet")
	if err != nil {
		return nil, err
	}
	collections := boxSets[:0]
	for _, item := range boxSets {
		if hasProviderID(item.ProviderIDs) {
			collections = append(collections, item)
		}
	}
	return collections, nil
}

// CollectionMovies returns the movies contained in one box set.
func (c *Client) CollectionMovies(ctx context.Context, collectionID string) ([]library.Item, error) {
	query := url.Values{
		"ParentId":         {collectionID},
		"IncludeItemTypes": {"Movie"},
		"Fields":           {itemFields},
	}
	return c.list(ctx, "collection movies", "/Items", query)
}

// Parent resolves the season of an episode or the series of a season.
func (c *Client) Parent(ctx context.Context, id string) (library.Item, bool, error) {
	item, ok, err := c.item(ctx, id)
	if err != nil || !ok {
		return library.Item{}, false, err
	}
	if item.Type != library.TypeEpisode && item.Type != library.TypeSeason {
		return library.Item{}, false, nil
	}
	if item.ParentID == "" {
		return library.Item{}, false, nil
	}
	return c.item(ctx, item.ParentID)
}

// ItemsByType returns items whose Jellyfin type is one of types.
func (c *Client) ItemsByType(ctx context.Context, types []string) ([]library.Item, error) {
	if len(types) == 0 {
		return nil, nil
	}
	return c.itemsOfType(ctx, "items by type", strings.Join(types, ","))
}

// UpdateTags replaces the server-side tag list of item with item.Tags.
func (c *Client) UpdateTags(ctx context.Context, item *library.Item) error {
	raw, err := c.rawItem(ctx, item.ID)
	if err != nil {
		return err
	}
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	encodedTags, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	raw["Tags"] = encodedTags
	body, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/Items/"+url.PathEscape(item.ID), nil, bytes.NewReader(body))
	if err != nil {
		return services.Wrap(services.ErrLibrary, "jellyfin", "update tags", item.ID, err)
	}
	defer resp.Body.Close()
	if err := statusError("update tags", item.ID, resp); err != nil {
		return err
	}
	c.logger.Debug("jellyfin tags updated",
		logging.String(logging.FieldItemID, item.ID),
		logging.Strings("tags", tags),
	)
	return nil
}

func (c *Client) itemsOfType(ctx context.Context, operation, types string) ([]library.Item, error) {
	query := url.Values{
		"IncludeItemTypes": {types},
		"Recursive":        {"true"},
		"Fields":           {itemFields},
	}
	return c.list(ctx, operation, "/Items", query)
}

func (c *Client) item(ctx context.Context, id string) (library.Item, bool, error) {
	query := url.Values{"Ids": {id}, "Fields": {itemFields}}
	items, err := c.list(ctx, "item", "/Items", query)
	if err != nil {
		return library.Item{}, false, err
	}
	if len(items) == 0 {
		return library.Item{}, false, nil
	}
	return items[0], true, nil
}

func (c *Client) rawItem(ctx context.Context, id string) (map[string]json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, "/Items", url.Values{"Ids": {id}, "Fields": {itemFields}}, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrLibrary, "jellyfin", "fetch item", id, err)
	}
	defer resp.Body.Close()
	if err := statusError("fetch item", id, resp); err != nil {
		return nil, err
	}
	var page struct {
		Items []map[string]json.RawMessage `json:"Items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, services.Wrap(services.ErrLibrary, "jellyfin", "fetch item", "decode response", err)
	}
	if len(page.Items) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "jellyfin", "fetch item", id, nil)
	}
	return page.Items[0], nil
}

func (c *Client) list(ctx context.Context, operation, path string, query url.Values) ([]library.Item, error) {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrLibrary, "jellyfin", operation, "request failed", err)
	}
	defer resp.Body.Close()
	if err := statusError(operation, path, resp); err != nil {
		return nil, err
	}
	var page itemsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, services.Wrap(services.ErrLibrary, "jellyfin", operation, "decode response", err)
	}
	items := make([]library.Item, 0, len(page.Items))
	for _, dto := range page.Items {
		items = append(items, dto.toItem())
	}
	return items, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build jellyfin request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.client.Do(req)
}

func statusError(operation, subject string, resp *http.Response) error {
	if resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	message := fmt.Sprintf("%s returned %d", subject, resp.StatusCode)
	if text := strings.TrimSpace(string(snippet)); text != "" {
		message += ": " + text
	}
	marker := services.ErrLibrary
	if resp.StatusCode == http.StatusNotFound {
		marker = services.ErrNotFound
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		marker = services.ErrConfiguration
	}
	return services.Wrap(marker, "jellyfin", operation, message, nil)
}

func hasProviderID(ids map[string]string) bool {
	for _, value := range ids {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}
