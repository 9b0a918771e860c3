package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrGenerationFailed is the single error every adapter failure wraps:
// missing credentials, transport errors, empty output and malformed JSON.
var ErrGenerationFailed = errors.New("generation failed")

// Adapter-side role names. Persisted chat roles are mapped onto these by
// the chat service.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one prior message handed to Converse.
type Turn struct {
	Role string
	Text string
}

// Generator is the single-call interface to the text generation service.
type Generator interface {
	// Generate returns the raw model text. With expectStructured the
	// service is asked for a single JSON value; the caller decodes it.
	Generate(ctx context.Context, prompt string, expectStructured bool) (string, error)

	// Converse answers message given the ordered history of the conversation.
	Converse(ctx context.Context, history []Turn, message string) (string, error)
}

// DecodeStructured strictly decodes structured output into out. The text is
// not repaired; any decode error is a generation failure.
func DecodeStructured(text string, out any) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: empty structured output", ErrGenerationFailed)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: malformed structured output: %v", ErrGenerationFailed, err)
	}
	return nil
}

func failed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGenerationFailed, fmt.Sprintf(format, args...))
}
