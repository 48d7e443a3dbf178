// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package session captures drawing calls per output session and hands
// them to the pipeline with clear-after-read semantics.
package session

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/aclements/go-a11ychart/callog"
)

// ErrCorrupt is returned when stored calls cannot be decoded.
var ErrCorrupt = errors.New("session store corrupt")

// A Store is the capture port. Calls are appended during chart
// construction and read back by session.
type Store interface {
	// Record appends c to the log of c.Session.
	Record(ctx context.Context, c *callog.Call) error

	// Calls returns the calls of a session in capture order.
	Calls(ctx context.Context, session string) ([]*callog.Call, error)

	// Drain returns the calls of a session and clears them.
	Drain(ctx context.Context, session string) ([]*callog.Call, error)

	// Clear discards the calls of a session.
	Clear(ctx context.Context, session string) error
}

// MemoryStore is a Store backed by a map. The zero value is ready to
// use.
type MemoryStore struct {
	mu    sync.Mutex
	calls map[string][]*callog.Call
}

func (s *MemoryStore) Record(ctx context.Context, c *callog.Call) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string][]*callog.Call)
	}
	s.calls[c.Session] = append(s.calls[c.Session], c)
	return nil
}

func (s *MemoryStore) Calls(ctx context.Context, session string) ([]*callog.Call, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*callog.Call(nil), s.calls[session]...), nil
}

func (s *MemoryStore) Drain(ctx context.Context, session string) ([]*callog.Call, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := s.calls[session]
	delete(s.calls, session)
	return calls, nil
}

func (s *MemoryStore) Clear(ctx context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.calls, session)
	return nil
}
