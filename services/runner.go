package services

import (
	"context"
	"fmt"
	"time"

	"flowsync_server/models"
)

// CodeRunner executes a snippet and returns its output.
type CodeRunner interface {
	Run(ctx context.Context, snippet *models.CodeSnippet) (string, error)
}

// EchoRunner pretends to run code and reports the language and time.
type EchoRunner struct {
	Now func() time.Time
}

func (r EchoRunner) Run(_ context.Context, snippet *models.CodeSnippet) (string, error) {
	if snippet == nil {
		return "", fmt.Errorf("Run: nil snippet")
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return fmt.Sprintf("Execution result:\nHello, World!\nLanguage: %s\nExecuted at: %s",
		snippet.Language, now().UTC().Format(time.RFC3339)), nil
}
