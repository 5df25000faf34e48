package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"langtagger/internal/config"
	"langtagger/internal/scan"
	"langtagger/internal/state"
)

const userAgent = "langtagger/0.1.0"

// Service defines the notification surface used by the daemon.
type Service interface {
	NotifyPassFinished(ctx context.Context, report scan.Report, trigger string) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:      topic,
		client:        &http.Client{Timeout: timeout},
		notifySuccess: cfg.Notifications.NotifySuccess,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint      string
	client        *http.Client
	notifySuccess bool
}

func (n *ntfyService) NotifyPassFinished(ctx context.Context, report scan.Report, trigger string) error {
	label := report.Operation
	if label == "scan" || label == "" {
		label = "scan " + string(report.Scope)
	}
	if report.FullRefresh {
		label += " (full refresh)"
	}

	duration := report.Duration().Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	data := payload{tags: []string{"langtagger", report.Operation}}
	switch report.Status {
	case state.RunCompleted:
		if !n.notifySuccess {
			return nil
		}
		data.title = "langtagger - Pass Complete"
		data.message = fmt.Sprintf("%s finished in %s: %d processed", label, duration, report.Processed())
		data.tags = append(data.tags, "completed")
	case state.RunCancelled:
		data.title = "langtagger - Pass Cancelled"
		data.message = fmt.Sprintf("%s cancelled after %s: %d processed", label, duration, report.Processed())
		data.tags = append(data.tags, "cancelled")
	default:
		data.title = "langtagger - Pass Failed"
		data.message = fmt.Sprintf("%s failed after %s: %s", label, duration, strings.TrimSpace(report.Error))
		data.tags = append(data.tags, "failed")
		data.priority = "high"
	}
	if summary := outcomeSummary(report); summary != "" {
		data.message += "\n" + summary
	}
	if trigger != "" {
		data.tags = append(data.tags, trigger)
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "langtagger - Error",
		message:  builder.String(),
		tags:     []string{"langtagger", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "langtagger - Test",
		message:  "Notification system test",
		tags:     []string{"langtagger", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// outcomeSummary renders per-scope outcome counts on one line, scopes in pass
// order and outcomes sorted by name.
func outcomeSummary(report scan.Report) string {
	parts := make([]string, 0, len(report.Scopes))
	for _, section := range report.Scopes {
		keys := make([]string, 0, len(section.Outcomes))
		for key, count := range section.Outcomes {
			if count > 0 {
				keys = append(keys, key)
			}
		}
		if len(keys) == 0 {
			continue
		}
		sort.Strings(keys)
		counts := make([]string, 0, len(keys))
		for _, key := range keys {
			counts = append(counts, fmt.Sprintf("%s=%d", key, section.Outcomes[key]))
		}
		parts = append(parts, fmt.Sprintf("%s: %s", section.Scope, strings.Join(counts, " ")))
	}
	return strings.Join(parts, "; ")
}

type noopService struct{}

func (noopService) NotifyPassFinished(context.Context, scan.Report, string) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error              { return nil }
func (noopService) TestNotification(context.Context) error                        { return nil }
