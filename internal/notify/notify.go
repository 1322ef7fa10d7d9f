// Package notify posts project events to Slack. A nil *Notifier is valid
// and silently drops every event, so callers never branch on whether
// notifications are configured.
package notify

import (
	"fmt"
	"log"

	"github.com/adrianrdguez/projects-buddy/internal/models"
	slackapi "github.com/slack-go/slack"
)

// Attachment colors per event kind.
const (
	colorCompleted = "#36a64f"
	colorGenerated = "#4a90d9"
	colorExecuting = "#f2c744"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Notifier posts messages to a fixed channel.
type Notifier struct {
	client    slackClient
	channelID string
}

// Opts holds parameters for creating a Notifier.
type Opts struct {
	BotToken  string
	ChannelID string
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// New creates a Notifier. An empty bot token with no injected client
// returns nil, nil: notifications disabled.
func New(opts Opts) (*Notifier, error) {
	if opts.Client == nil && opts.BotToken == "" {
		return nil, nil
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("notify: channel ID is required")
	}

	client := opts.Client
	if client == nil {
		client = slackapi.New(opts.BotToken)
	}
	return &Notifier{client: client, channelID: opts.ChannelID}, nil
}

// TaskCompleted announces a finished task.
func (n *Notifier) TaskCompleted(project *models.Project, task *models.Task) {
	n.post(fmt.Sprintf("Task completed in *%s*", project.Name), slackapi.Attachment{
		Title:    task.Title,
		Text:     task.Description,
		Color:    colorCompleted,
		Fallback: task.Title,
		Fields: []slackapi.AttachmentField{
			{Title: "Priority", Value: task.Priority, Short: true},
			{Title: "Estimated", Value: task.EstimatedTime, Short: true},
		},
	})
}

// TasksGenerated announces a fresh task batch.
func (n *Notifier) TasksGenerated(project *models.Project, count int) {
	n.post(fmt.Sprintf("Generated %d tasks for *%s*", count, project.Name), slackapi.Attachment{
		Title:    project.Name,
		Text:     project.Description,
		Color:    colorGenerated,
		Fallback: project.Name,
	})
}

// ExecutionStarted announces that a task was dispatched to the editor.
func (n *Notifier) ExecutionStarted(project *models.Project, task *models.Task) {
	n.post(fmt.Sprintf("Executing task in *%s*", project.Name), slackapi.Attachment{
		Title:    task.Title,
		Text:     task.AIPrompt,
		Color:    colorExecuting,
		Fallback: task.Title,
	})
}

// post delivers one message. Failures are logged, never surfaced: a Slack
// outage must not fail the operation being announced.
func (n *Notifier) post(text string, att slackapi.Attachment) {
	if n == nil {
		return
	}
	_, _, err := n.client.PostMessage(n.channelID,
		slackapi.MsgOptionText(text, false),
		slackapi.MsgOptionAttachments(att),
	)
	if err != nil {
		log.Printf("notify: post message: %v", err)
	}
}
