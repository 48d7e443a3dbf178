// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/aclements/go-a11ychart/callog"
)

// A Session is one output session. Its lifecycle is Open, any number
// of Record calls, then one Process, which always leaves the session
// empty.
type Session struct {
	ID    string
	store Store
	seq   int
	now   func() time.Time
}

// Open starts a session on store. An empty id is replaced with a new
// UUID.
func Open(store Store, id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{ID: id, store: store, now: time.Now}
}

// Record captures one drawing call. Each arg is "value" or
// "name=value", as in the call log format.
func (s *Session) Record(ctx context.Context, fn string, args ...string) (*callog.Call, error) {
	c, err := callog.NewCall(fn, args...)
	if err != nil {
		return nil, err
	}
	s.seq++
	c.Seq = s.seq
	c.Session = s.ID
	c.Time = s.now()
	if err := s.store.Record(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RecordCall captures an already-built call.
func (s *Session) RecordCall(ctx context.Context, c *callog.Call) error {
	cc := *c
	s.seq++
	cc.Seq = s.seq
	cc.Session = s.ID
	return s.store.Record(ctx, &cc)
}

// Process drains the session's calls and passes them to fn. The
// session is cleared whether or not fn succeeds.
func (s *Session) Process(ctx context.Context, fn func([]*callog.Call) error) (err error) {
	defer func() {
		if cerr := s.store.Clear(ctx, s.ID); cerr != nil && err == nil {
			err = cerr
		}
		s.seq = 0
	}()
	calls, err := s.store.Drain(ctx, s.ID)
	if err != nil {
		return errors.Wrapf(err, "draining session %s", s.ID)
	}
	return fn(calls)
}
