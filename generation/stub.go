package generation

import (
	"context"
	"sync"
)

// Stub is a scripted Generator. Responses are returned in order; once they
// run out, or when Err is set, calls fail with ErrGenerationFailed.
type Stub struct {
	mu        sync.Mutex
	Responses []string
	Err       error

	Prompts    []string
	Structured []bool
	Histories  [][]Turn
}

func NewStub(responses ...string) *Stub {
	return &Stub{Responses: responses}
}

func (s *Stub) Generate(ctx context.Context, prompt string, expectStructured bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	s.Structured = append(s.Structured, expectStructured)
	return s.next()
}

func (s *Stub) Converse(ctx context.Context, history []Turn, message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, message)
	s.Histories = append(s.Histories, append([]Turn(nil), history...))
	return s.next()
}

func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}

func (s *Stub) next() (string, error) {
	if s.Err != nil {
		return "", failed("%v", s.Err)
	}
	if len(s.Responses) == 0 {
		return "", failed("stub has no scripted response")
	}
	out := s.Responses[0]
	s.Responses = s.Responses[1:]
	return out, nil
}
