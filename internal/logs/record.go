package logs

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Record is one parsed log line.
type Record struct {
	Time      time.Time
	Level     string
	Message   string
	Component string
	ScanID    string
	ItemID    string
	EventType string
	Fields    map[string]any
	Raw       string
}

var reservedKeys = map[string]struct{}{
	"ts": {}, "level": {}, "msg": {}, "component": {}, "scan_id": {}, "item_id": {}, "event_type": {},
}

// ParseRecord decodes a JSON log line. Lines that are not JSON objects are
// returned with only Message and Raw set.
func ParseRecord(line string) Record {
	record := Record{Message: line, Raw: line}
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		return record
	}
	str := func(key string) string {
		if value, ok := payload[key].(string); ok {
			return value
		}
		return ""
	}
	record.Level = strings.ToLower(str("level"))
	record.Message = str("msg")
	record.Component = str("component")
	record.ScanID = str("scan_id")
	record.ItemID = str("item_id")
	record.EventType = str("event_type")
	if ts, err := time.Parse(time.RFC3339, str("ts")); err == nil {
		record.Time = ts
	}
	for key, value := range payload {
		if _, reserved := reservedKeys[key]; reserved {
			continue
		}
		if record.Fields == nil {
			record.Fields = make(map[string]any)
		}
		record.Fields[key] = value
	}
	return record
}

// Filter narrows records. Zero fields match everything.
type Filter struct {
	ScanID    string
	ItemID    string
	Component string
	MinLevel  string
}

// IsZero reports whether the filter matches every record.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether r passes the filter.
func (f Filter) Match(r Record) bool {
	if f.ScanID != "" && r.ScanID != f.ScanID {
		return false
	}
	if f.ItemID != "" && r.ItemID != f.ItemID {
		return false
	}
	if f.Component != "" && !strings.EqualFold(r.Component, f.Component) {
		return false
	}
	if f.MinLevel != "" && levelRank(r.Level) < levelRank(f.MinLevel) {
		return false
	}
	return true
}

func levelRank(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return 0
	case "info", "":
		return 1
	case "warn", "warning":
		return 2
	case "error":
		return 3
	default:
		return 1
	}
}

// Format renders r as a single console line.
func (r Record) Format() string {
	if r.Level == "" && r.Time.IsZero() {
		return r.Raw
	}
	var b strings.Builder
	if !r.Time.IsZero() {
		b.WriteString(r.Time.Local().Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s", strings.ToUpper(r.Level))
	if r.Component != "" {
		fmt.Fprintf(&b, " [%s]", r.Component)
	}
	b.WriteByte(' ')
	b.WriteString(r.Message)
	if r.ItemID != "" {
		fmt.Fprintf(&b, " item=%s", r.ItemID)
	}
	keys := make([]string, 0, len(r.Fields))
	for key := range r.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%v", key, r.Fields[key])
	}
	return b.String()
}
