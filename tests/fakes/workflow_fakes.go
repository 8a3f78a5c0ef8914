package fakes

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/systmms/gwconfig/pkg/exec"
)

// Write records one call to MemoryStore.Put
type Write struct {
	Name  string
	Value string
}

// MemoryStore is an in-memory store.Store
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string

	// Writes records every Put in call order
	Writes []Write
	// Fetches records every fetched name in call order
	Fetches []string
	// FetchErrors maps names to errors returned by Fetch
	FetchErrors map[string]error
	// PutErrors maps names to errors returned by Put
	PutErrors map[string]error
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:      make(map[string]string),
		FetchErrors: make(map[string]error),
		PutErrors:   make(map[string]error),
	}
}

// Set seeds a value without recording a write
func (m *MemoryStore) Set(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = value
}

// Value returns the stored value of name
func (m *MemoryStore) Value(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[name]
	return v, ok
}

// Fetch implements store.Store
func (m *MemoryStore) Fetch(ctx context.Context, name string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetches = append(m.Fetches, name)
	if err, ok := m.FetchErrors[name]; ok {
		return "", false, err
	}
	v, ok := m.values[name]
	return v, ok, nil
}

// Put implements store.Store
func (m *MemoryStore) Put(ctx context.Context, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.PutErrors[name]; ok {
		return err
	}
	m.values[name] = value
	m.Writes = append(m.Writes, Write{Name: name, Value: value})
	return nil
}

// ScriptedConsole answers prompts from a fixed list and records everything
// shown to the operator. Once the answers run out every prompt gets "".
type ScriptedConsole struct {
	answers []string
	Prompts []string
	Said    []string
	// Err is returned by Ask when set
	Err error
}

// NewScriptedConsole creates a console that replies with answers in order
func NewScriptedConsole(answers ...string) *ScriptedConsole {
	return &ScriptedConsole{answers: answers}
}

// Ask implements console.Console
func (s *ScriptedConsole) Ask(prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.answers) == 0 {
		return "", nil
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Say implements console.Console
func (s *ScriptedConsole) Say(format string, args ...interface{}) {
	s.Said = append(s.Said, fmt.Sprintf(format, args...))
}

// Remaining returns the number of unused answers
func (s *ScriptedConsole) Remaining() int {
	return len(s.answers)
}

// Transcript joins every prompt and message in the order they were recorded
// per kind, for substring assertions.
func (s *ScriptedConsole) Transcript() string {
	return strings.Join(s.Prompts, "\n") + "\n" + strings.Join(s.Said, "\n")
}

// RunCall records one call to FakeRunner.Run
type RunCall struct {
	Name string
	Args []string
}

// FakeRunner is an exec.Runner returning a canned result
type FakeRunner struct {
	Result exec.Result
	Err    error
	Calls  []RunCall
}

// Run implements exec.Runner
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (exec.Result, error) {
	f.Calls = append(f.Calls, RunCall{Name: name, Args: args})
	return f.Result, f.Err
}
