// Package prompt holds the system prompt sent with every chat completion.
package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
)

//go:embed system_prompt.txt
var defaultPrompt string

// ErrEmptyPrompt is returned when a prompt file has no usable content.
var ErrEmptyPrompt = errors.New("system prompt is empty")

// Prompt is an immutable system prompt. The zero value is not usable; build
// one with Default, Load or New.
type Prompt struct {
	text string
}

// New wraps text as a Prompt after trimming surrounding whitespace.
func New(text string) (Prompt, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Prompt{}, ErrEmptyPrompt
	}
	return Prompt{text: text}, nil
}

// Default returns the embedded biography prompt.
func Default() Prompt {
	return Prompt{text: strings.TrimSpace(defaultPrompt)}
}

// Load reads the prompt from path, or returns Default when path is empty.
func Load(path string) (Prompt, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to read system prompt: %w", err)
	}

	p, err := New(string(data))
	if err != nil {
		return Prompt{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// String returns the prompt text.
func (p Prompt) String() string {
	return p.text
}
