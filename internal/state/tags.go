package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Tags returns the stored tag list of itemID. The boolean is false when the
// item has never been tagged.
func (s *Store) Tags(ctx context.Context, itemID string) ([]string, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT tags_json FROM item_tags WHERE item_id = ?`, itemID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load tags for %s: %w", itemID, err)
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, false, fmt.Errorf("decode tags for %s: %w", itemID, err)
	}
	return tags, true, nil
}

// AllTags returns every stored tag list keyed by item ID.
func (s *Store) AllTags(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT item_id, tags_json FROM item_tags`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return nil, fmt.Errorf("decode tags for %s: %w", id, err)
		}
		out[id] = tags
	}
	return out, rows.Err()
}

// SetTags stores the full tag list of itemID. An empty list deletes the row.
func (s *Store) SetTags(ctx context.Context, itemID string, tags []string) error {
	if len(tags) == 0 {
		if _, err := s.execWithRetry(ctx, `DELETE FROM item_tags WHERE item_id = ?`, itemID); err != nil {
			return fmt.Errorf("clear tags for %s: %w", itemID, err)
		}
		return nil
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	_, err = s.execWithRetry(ctx,
		`INSERT INTO item_tags (item_id, tags_json, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(item_id) DO UPDATE SET tags_json = excluded.tags_json, updated_at = excluded.updated_at`,
		itemID, string(encoded), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store tags for %s: %w", itemID, err)
	}
	return nil
}
