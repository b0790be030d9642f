package config

import (
	"sync"
)

// Store holds the live settings. Readers get a copy; writers go through Update
// so validation runs before anything observes the change.
type Store struct {
	mu        sync.RWMutex
	current   Settings
	listeners []func(Settings)
}

// NewStore wraps already validated settings.
func NewStore(s Settings) *Store {
	return &Store{current: s}
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Update applies fn to a copy, validates it and publishes it to subscribers.
// The stored settings are left untouched when validation fails.
func (s *Store) Update(fn func(*Settings)) error {
	s.mu.Lock()
	next := s.current.clone()
	fn(&next)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = next
	listeners := append([]func(Settings){}, s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(next.clone())
	}
	return nil
}

// Replace swaps the whole settings value, used on file reload.
func (s *Store) Replace(next Settings) error {
	return s.Update(func(cur *Settings) { *cur = next })
}

// Subscribe registers fn to be called after every successful update.
func (s *Store) Subscribe(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s Settings) clone() Settings {
	out := s
	out.Progress.Milestones = append([]int(nil), s.Progress.Milestones...)
	out.Webhook.URLs = append([]string(nil), s.Webhook.URLs...)
	return out
}
