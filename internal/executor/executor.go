// Package executor dispatches a task to the local editor automation: it
// marks the task in progress, opens the project in the configured editor,
// and forwards the task prompt to a companion HTTP service when one is
// configured. Any dispatch failure reverts the task to ready so it can be
// retried.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/exec"
	"time"

	"github.com/adrianrdguez/projects-buddy/internal/graph"
	"github.com/adrianrdguez/projects-buddy/internal/store"
	"gorm.io/gorm"
)

// DefaultEditorBinary is used when no editor is configured.
const DefaultEditorBinary = "cursor"

// companionTimeout bounds the forward to the companion service.
const companionTimeout = 10 * time.Second

// Dispatcher owns the editor automation configuration.
type Dispatcher struct {
	EditorBinary string // defaults to DefaultEditorBinary
	CompanionURL string // empty disables the forward
	HTTPClient   *http.Client

	// Spawn launches the editor; tests substitute it. Nil uses exec.
	Spawn func(binary, projectPath string) error
}

// Result reports what a dispatch did.
type Result struct {
	TaskID   string `json:"taskId"`
	Status   string `json:"status"` // in_progress, or ready after a revert
	Editor   string `json:"editor"`
	FilePath string `json:"filePath,omitempty"` // file the companion opened, when reported
}

// companionRequest is the payload forwarded to the companion service.
type companionRequest struct {
	TaskID      string `json:"taskId"`
	Prompt      string `json:"prompt"`
	ProjectPath string `json:"projectPath"`
}

// companionResponse is the optional body the companion answers with.
type companionResponse struct {
	FilePath string `json:"filePath"`
}

// Dispatch executes a task: transition to in_progress, open the editor,
// forward the prompt. On failure after the transition the task reverts to
// ready and the error is returned with Result.Status reflecting the revert.
func (d *Dispatcher) Dispatch(ctx context.Context, db *gorm.DB, taskID string) (*Result, error) {
	task, err := store.GetTask(db, taskID)
	if err != nil {
		return nil, err
	}
	project, err := store.GetProject(db, task.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := store.UpdateTask(db, taskID, map[string]interface{}{
		"status": graph.StatusInProgress,
	}); err != nil {
		return nil, err
	}

	binary := d.EditorBinary
	if binary == "" {
		binary = DefaultEditorBinary
	}
	result := &Result{TaskID: taskID, Status: graph.StatusInProgress, Editor: binary}

	filePath, err := d.dispatch(ctx, binary, project.ProjectPath, task.ID, taskPrompt(task.AIPrompt, task.Title, task.Description))
	if err != nil {
		result.Status = revert(db, taskID)
		return result, fmt.Errorf("executor: dispatch %s: %w", taskID, err)
	}
	result.FilePath = filePath
	return result, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, binary, projectPath, taskID, prompt string) (string, error) {
	spawn := d.Spawn
	if spawn == nil {
		spawn = spawnEditor
	}
	if err := spawn(binary, projectPath); err != nil {
		return "", fmt.Errorf("open editor: %w", err)
	}

	if d.CompanionURL == "" {
		return "", nil
	}
	return d.forward(ctx, companionRequest{
		TaskID:      taskID,
		Prompt:      prompt,
		ProjectPath: projectPath,
	})
}

// forward posts the task prompt to the companion service and returns the
// file path from its response, when it reports one.
func (d *Dispatcher) forward(ctx context.Context, payload companionRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode companion payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, companionTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.CompanionURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build companion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("forward to companion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("companion returned %s", resp.Status)
	}

	// The body is optional; a companion that sends nothing back is fine.
	var answer companionResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return "", nil
	}
	return answer.FilePath, nil
}

// spawnEditor launches the editor detached; it does not wait for exit.
func spawnEditor(binary, projectPath string) error {
	args := []string{}
	if projectPath != "" {
		args = append(args, projectPath)
	}
	cmd := exec.Command(binary, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", binary, err)
	}
	return cmd.Process.Release()
}

// revert returns the task to ready after a failed dispatch. If even the
// revert fails the stored in_progress status is reported so the caller
// sees the true state.
func revert(db *gorm.DB, taskID string) string {
	if err := store.UpdateTask(db, taskID, map[string]interface{}{
		"status": graph.StatusReady,
	}); err != nil {
		return graph.StatusInProgress
	}
	return graph.StatusReady
}

// taskPrompt picks the stored AI prompt, falling back to a summary built
// from the title and description.
func taskPrompt(aiPrompt, title, description string) string {
	if aiPrompt != "" {
		return aiPrompt
	}
	if description == "" {
		return title
	}
	return fmt.Sprintf("%s\n\n%s", title, description)
}
