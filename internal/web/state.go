package web

import (
	"sync"

	"github.com/ziadkadry99/malabomap/internal/boot"
)

// State holds the outcome of the latest startup run. A failed run is kept
// as its error so every route can answer with the generic failure.
type State struct {
	mu     sync.RWMutex
	result *boot.Result
	err    error
}

// NewState returns a state holding the given startup outcome.
func NewState(res *boot.Result, err error) *State {
	return &State{result: res, err: err}
}

// Set replaces the startup outcome.
func (s *State) Set(res *boot.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result, s.err = res, err
}

// Current returns the startup outcome.
func (s *State) Current() (*boot.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.err
}
