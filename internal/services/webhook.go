package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/synergysphere/synergysphere/internal/metrics"
	"github.com/synergysphere/synergysphere/internal/models"
)

type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Color       int                 `json:"color"`
	Fields      []DiscordEmbedField `json:"fields"`
	Footer      *DiscordFooter      `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorBlue = 3447003 // #3498DB

	WebhookUsername = "SynergySphere"
)

// Activity is a one-line summary of something that happened in a project.
type Activity struct {
	Kind       string
	Summary    string
	Recipients int
	At         time.Time
}

// WebhookNotifier posts project activity to the project's Slack and Discord
// webhooks, if configured.
type WebhookNotifier struct {
	client  *http.Client
	log     zerolog.Logger
	metrics *metrics.Metrics
}

func NewWebhookNotifier(timeout time.Duration, log zerolog.Logger, m *metrics.Metrics) *WebhookNotifier {
	return &WebhookNotifier{
		client:  &http.Client{Timeout: timeout},
		log:     log,
		metrics: m,
	}
}

// Send delivers the activity to every configured webhook. Both providers
// are attempted; their errors are joined.
func (w *WebhookNotifier) Send(ctx context.Context, project models.Project, activity Activity) error {
	var errs []error

	if project.DiscordWebhook != "" {
		err := w.post(ctx, project.DiscordWebhook, discordActivity(project, activity))
		w.record("discord", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("discord: %w", err))
		}
	}

	if project.SlackWebhook != "" {
		err := w.post(ctx, project.SlackWebhook, slackActivity(project, activity))
		w.record("slack", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("slack: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (w *WebhookNotifier) record(provider string, err error) {
	if w.metrics != nil {
		w.metrics.WebhookDeliveries.WithLabelValues(provider, strconv.FormatBool(err == nil)).Inc()
	}
}

func HasWebhook(project models.Project) bool {
	return project.DiscordWebhook != "" || project.SlackWebhook != ""
}

func discordActivity(project models.Project, activity Activity) DiscordWebhookRequest {
	return DiscordWebhookRequest{
		Username: WebhookUsername,
		Embeds: []DiscordEmbed{
			{
				Title:       fmt.Sprintf("**%s**", project.Title),
				Description: activity.Summary,
				Color:       ColorBlue,
				Fields: []DiscordEmbedField{
					{Name: "Event", Value: activity.Kind, Inline: true},
					{Name: "Notified", Value: strconv.Itoa(activity.Recipients), Inline: true},
				},
				Footer: &DiscordFooter{
					Text: fmt.Sprintf("Project: %s | SynergySphere", project.Title),
				},
				Timestamp: activity.At.Format(time.RFC3339),
			},
		},
	}
}

func slackActivity(project models.Project, activity Activity) SlackWebhookRequest {
	return SlackWebhookRequest{
		Username: WebhookUsername,
		Text:     fmt.Sprintf("*%s*", project.Title),
		Attachments: []SlackAttachment{
			{
				Color: "#3498DB",
				Title: activity.Summary,
				Fields: []SlackField{
					{Title: "Event", Value: activity.Kind, Short: true},
					{Title: "Notified", Value: strconv.Itoa(activity.Recipients), Short: true},
				},
				Footer:    fmt.Sprintf("Project: %s", project.Title),
				Timestamp: activity.At.Unix(),
			},
		},
	}
}

func (w *WebhookNotifier) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
