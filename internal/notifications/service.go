package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "Trackarr/0.1.0"

// Service defines the notification surface exposed to the runner and
// daemon.
type Service interface {
	NotifyRunStarted(ctx context.Context, files int) error
	NotifyRunCompleted(ctx context.Context, modified, errored, total int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when a topic URL
// is configured. Without one, a noop implementation is returned.
func NewService(topicURL string, requestTimeout time.Duration) Service {
	topic := strings.TrimSpace(topicURL)
	if topic == "" {
		return noopService{}
	}
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunStarted(ctx context.Context, files int) error {
	data := payload{
		title:   "Trackarr - Run Started",
		message: fmt.Sprintf("Checking %d files", files),
		tags:    []string{"trackarr", "run", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, modified, errored, total int, duration time.Duration) error {
	data := payload{
		title: "Trackarr - Run Complete",
		message: fmt.Sprintf("Checked %d files: %d modified, %d errors in %s",
			total, modified, errored, duration.Round(time.Second)),
		tags: []string{"trackarr", "run", "completed"},
	}
	if errored > 0 {
		data.priority = "high"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, errContext string) error {
	errContext = strings.TrimSpace(errContext)
	message := fmt.Sprintf("Error: %v", err)
	if errContext != "" {
		message = fmt.Sprintf("Error in %s: %v", errContext, err)
	}
	data := payload{
		title:    "Trackarr - Error",
		message:  message,
		tags:     []string{"trackarr", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:   "Trackarr - Test",
		message: "Notifications are configured correctly",
		tags:    []string{"trackarr", "test"},
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

func (noopService) NotifyRunStarted(context.Context, int) error                          { return nil }
func (noopService) NotifyRunCompleted(context.Context, int, int, int, time.Duration) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error                     { return nil }
func (noopService) TestNotification(context.Context) error                               { return nil }
