package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"langtagger/internal/logs"
)

const sampleLog = `{"ts":"2026-03-01T10:00:00Z","level":"info","msg":"pass started","component":"scan","scan_id":"run-1"}
{"ts":"2026-03-01T10:00:01Z","level":"warn","msg":"language extraction failed","component":"aggregate","scan_id":"run-1","item_id":"m1","path":"/media/heat.mkv"}
{"ts":"2026-03-01T10:00:02Z","level":"info","msg":"language tags written","component":"aggregate","scan_id":"run-1","item_id":"m2"}
plain text line
{"ts":"2026-03-01T11:00:00Z","level":"info","msg":"pass started","component":"scan","scan_id":"run-2"}
`

func writeLog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "langtagger.log")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestTailLastRecords(t *testing.T) {
	path := writeLog(t, sampleLog)

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 2})
	if err != nil {
		t.Fatalf("tail returned error: %v", err)
	}
	if len(result.Records) != 2 || result.Records[0].Raw != "plain text line" || result.Records[1].ScanID != "run-2" {
		t.Fatalf("unexpected records: %#v", result.Records)
	}
	if result.Offset == 0 {
		t.Fatal("expected offset to advance")
	}
}

func TestTailFiltersByScanAndLevel(t *testing.T) {
	path := writeLog(t, sampleLog)

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{
		Offset: -1,
		Limit:  10,
		Filter: logs.Filter{ScanID: "run-1", MinLevel: "warn"},
	})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected one record, got %#v", result.Records)
	}
	record := result.Records[0]
	if record.ItemID != "m1" || record.Fields["path"] != "/media/heat.mkv" {
		t.Fatalf("unexpected record: %#v", record)
	}
}

func TestTailMissingFile(t *testing.T) {
	result, err := logs.Tail(context.Background(), filepath.Join(t.TempDir(), "none.log"), logs.TailOptions{Offset: -1, Limit: 5})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(result.Records) != 0 || result.Offset != 0 {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestTailFollowWaits(t *testing.T) {
	path := writeLog(t, `{"level":"info","msg":"start"}`+"\n")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	result, err := logs.Tail(ctx, path, logs.TailOptions{Offset: -1, Limit: 1})
	if err != nil {
		t.Fatalf("initial tail: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected initial record, got %#v", result.Records)
	}

	done := make(chan struct{})
	go func(offset int64) {
		defer close(done)
		res, err := logs.Tail(ctx, path, logs.TailOptions{Offset: offset, Follow: true, Wait: 5 * time.Second})
		if err != nil {
			t.Errorf("follow tail error: %v", err)
			return
		}
		if len(res.Records) != 1 || res.Records[0].Message != "later" {
			t.Errorf("unexpected follow records: %#v", res.Records)
		}
	}(result.Offset)

	time.Sleep(200 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	if _, err := f.WriteString(`{"level":"info","msg":"later"}` + "\n"); err != nil {
		t.Fatalf("append log: %v", err)
	}
	_ = f.Close()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("tail follow did not return")
	}
}

func TestRecordFormat(t *testing.T) {
	record := logs.ParseRecord(`{"ts":"2026-03-01T10:00:01Z","level":"warn","msg":"failed","component":"aggregate","item_id":"m1","kind":"audio"}`)
	got := record.Format()
	for _, want := range []string{"WARN", "[aggregate]", "failed", "item=m1", "kind=audio"} {
		if !strings.Contains(got, want) {
			t.Fatalf("Format() = %q, missing %q", got, want)
		}
	}
	if plain := logs.ParseRecord("not json").Format(); plain != "not json" {
		t.Fatalf("plain Format() = %q", plain)
	}
}
