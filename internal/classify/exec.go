package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/jeduden/arastat/internal/config"
)

// request is written to the command's stdin.
type request struct {
	Text string `json:"text"`
}

// response is read from the command's stdout.
type response struct {
	Label    string   `json:"label"`
	Entities []Entity `json:"entities"`
	Error    string   `json:"error,omitempty"`
}

// ExecClassifier runs an external command once per text. The command
// reads {"text": ...} on stdin and writes {"label": ...} on stdout.
type ExecClassifier struct {
	name    string
	command []string
}

// NewExecClassifier returns a classifier backed by command.
func NewExecClassifier(name string, command []string) (*ExecClassifier, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("classifier %q: empty command", name)
	}
	return &ExecClassifier{name: name, command: command}, nil
}

// Name returns the configured classifier name.
func (c *ExecClassifier) Name() string {
	return c.name
}

// Predict returns the label the command assigns to text.
func (c *ExecClassifier) Predict(ctx context.Context, text string) (string, error) {
	resp, err := run(ctx, c.command, text)
	if err != nil {
		return "", err
	}
	return resp.Label, nil
}

// ExecRecognizer runs an external command once per text. The command
// reads {"text": ...} on stdin and writes
// {"entities": [{"word": ..., "entity": ...}]} on stdout.
type ExecRecognizer struct {
	name    string
	command []string
}

// NewExecRecognizer returns an entity recognizer backed by command.
func NewExecRecognizer(name string, command []string) (*ExecRecognizer, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("recognizer %q: empty command", name)
	}
	return &ExecRecognizer{name: name, command: command}, nil
}

// Name returns the configured recognizer name.
func (r *ExecRecognizer) Name() string {
	return r.name
}

// Recognize returns the entities the command finds in text.
func (r *ExecRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	resp, err := run(ctx, r.command, text)
	if err != nil {
		return nil, err
	}
	return resp.Entities, nil
}

func run(ctx context.Context, command []string, text string) (response, error) {
	payload, err := json.Marshal(request{Text: text})
	if err != nil {
		return response{}, fmt.Errorf("marshal request: %w", err)
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return response{}, fmt.Errorf("running %s: %w: %s", command[0], err, msg)
		}
		return response{}, fmt.Errorf("running %s: %w", command[0], err)
	}

	var resp response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return response{}, fmt.Errorf("decoding %s output: %w", command[0], err)
	}
	if resp.Error != "" {
		return response{}, fmt.Errorf("%s", resp.Error)
	}
	return resp, nil
}

// FromConfig builds the classifiers listed in cfg. Entries with
// Entities set become entity recognizers adapted with Entities.
func FromConfig(cfgs []config.Classifier) ([]Classifier, error) {
	out := make([]Classifier, 0, len(cfgs))
	for _, c := range cfgs {
		if c.Entities {
			r, err := NewExecRecognizer(c.Name, c.Command)
			if err != nil {
				return nil, err
			}
			out = append(out, Entities(r))
			continue
		}
		cl, err := NewExecClassifier(c.Name, c.Command)
		if err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, nil
}
