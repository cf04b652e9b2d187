package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"summerpool/internal/config"
	"summerpool/internal/standings"
)

const userAgent = "summerpool/0.1.0"

// Service defines the notification surface used by the CLI.
type Service interface {
	NotifyStandingsPublished(ctx context.Context, st *standings.Standings) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:  topic,
		client:    &http.Client{Timeout: timeout},
		standings: cfg.Notifications.Standings,
		errors:    cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint  string
	client    *http.Client
	standings bool
	errors    bool
}

func (n *ntfyService) NotifyStandingsPublished(ctx context.Context, st *standings.Standings) error {
	if !n.standings || st == nil {
		return nil
	}
	var builder strings.Builder
	if leader, ok := st.Leader(); ok {
		fmt.Fprintf(&builder, "🏆 %s leads with %d points", leader.Name, leader.Points)
	} else {
		builder.WriteString("No entries scored yet")
	}
	fmt.Fprintf(&builder, "\n%d entries scored", len(st.Results))
	if len(st.Movies) > 0 {
		fmt.Fprintf(&builder, "\n🎬 #1 movie: %s", st.Movies[0].Title)
	}
	if len(st.Distributors) > 0 {
		fmt.Fprintf(&builder, "\n🎞️ #1 distributor: %s", st.Distributors[0].Name)
	}
	data := payload{
		title:   "Summer Pool - Standings Updated",
		message: builder.String(),
		tags:    []string{"summerpool", "standings", "updated"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("❌ Error")
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
		title:    "Summer Pool - Error",
		message:  builder.String(),
		tags:     []string{"summerpool", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Summer Pool - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"summerpool", "test"},
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

type noopService struct{}

func (noopService) NotifyStandingsPublished(context.Context, *standings.Standings) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error                     { return nil }
func (noopService) TestNotification(context.Context) error                               { return nil }
