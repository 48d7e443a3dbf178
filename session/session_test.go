// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-a11ychart/callog"
)

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := new(MemoryStore)
	a := Open(store, "a")
	b := Open(store, "b")

	_, err := a.Record(ctx, "barplot", "height=3,5,7")
	require.NoError(t, err)
	_, err = b.Record(ctx, "hist", "1,2,3")
	require.NoError(t, err)
	_, err = a.Record(ctx, "lines", "x=1,2,3", "y=4,6,5")
	require.NoError(t, err)

	calls, err := store.Calls(ctx, "a")
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, "barplot", calls[0].Func)
	assert.Equal(t, 1, calls[0].Seq)
	assert.Equal(t, 2, calls[1].Seq)
	assert.Equal(t, "a", calls[1].Session)

	var seen []string
	require.NoError(t, a.Process(ctx, func(calls []*callog.Call) error {
		for _, c := range calls {
			seen = append(seen, c.Func)
		}
		return nil
	}))
	assert.Equal(t, []string{"barplot", "lines"}, seen)

	left, err := store.Calls(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, left)
	left, err = store.Calls(ctx, "b")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestProcessClearsOnError(t *testing.T) {
	ctx := context.Background()
	store := new(MemoryStore)
	s := Open(store, "")
	require.NotEmpty(t, s.ID)

	_, err := s.Record(ctx, "plot", "x=1,2", "y=3,4")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Process(ctx, func([]*callog.Call) error {
		// A late record must not outlive the session either.
		_, err := s.Record(ctx, "points", "x=1", "y=1")
		require.NoError(t, err)
		return boom
	})
	assert.True(t, errors.Is(err, boom))

	left, err := store.Calls(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	// Sequence numbers restart for the next chart.
	c, err := s.Record(ctx, "hist", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Seq)
}

func TestRecordBadArgument(t *testing.T) {
	s := Open(new(MemoryStore), "x")
	_, err := s.Record(context.Background(), "barplot", "height=[1,2;3]")
	assert.Error(t, err)
}
