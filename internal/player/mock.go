// internal/player/mock.go
package player

import (
	"context"
	"sync"
)

// Step is one scripted Poll result.
type Step struct {
	Status *Status
	Err    error
}

// Mock is a test double for Source. It replays scripted steps and then
// keeps returning the last one.
type Mock struct {
	mu    sync.Mutex
	name  string
	steps []Step
	polls int
}

// NewMock creates a mock source that replays the given steps.
func NewMock(name string, steps ...Step) *Mock {
	return &Mock{name: name, steps: steps}
}

func (m *Mock) Name() string { return m.name }

func (m *Mock) Poll(_ context.Context) (*Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls++
	if len(m.steps) == 0 {
		return nil, nil
	}
	step := m.steps[0]
	if len(m.steps) > 1 {
		m.steps = m.steps[1:]
	}
	if step.Status == nil {
		return nil, step.Err
	}
	s := *step.Status
	return &s, step.Err
}

// Push appends scripted steps.
func (m *Mock) Push(steps ...Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, steps...)
}

// Polls returns the number of Poll calls so far.
func (m *Mock) Polls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.polls
}
