// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aclements/go-a11ychart/callog"
)

const schema = `
CREATE TABLE IF NOT EXISTS calls (
	session TEXT NOT NULL,
	seq     INTEGER NOT NULL,
	func    TEXT NOT NULL,
	raw     TEXT NOT NULL,
	ts      INTEGER NOT NULL,
	PRIMARY KEY (session, seq)
)`

// SQLiteStore is a Store that persists calls in a SQLite database,
// so calls captured by one process can be processed by another.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at dsn.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", dsn)
	}
	s, err := NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore wraps an open database and creates the calls table.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "creating calls table")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Record(ctx context.Context, c *callog.Call) error {
	var ts int64
	if !c.Time.IsZero() {
		ts = c.Time.UnixNano()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calls (session, seq, func, raw, ts) VALUES (?, ?, ?, ?, ?)`,
		c.Session, c.Seq, c.Func, c.Format(), ts)
	return errors.Wrapf(err, "recording %s", c.Func)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (s *SQLiteStore) Calls(ctx context.Context, session string) ([]*callog.Call, error) {
	return readCalls(ctx, s.db, session)
}

// Drain reads and deletes a session's calls in one transaction.
func (s *SQLiteStore) Drain(ctx context.Context, session string) ([]*callog.Call, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin drain")
	}
	calls, err := readCalls(ctx, tx, session)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM calls WHERE session = ?`, session); err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "clearing session")
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit drain")
	}
	return calls, nil
}

func (s *SQLiteStore) Clear(ctx context.Context, session string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM calls WHERE session = ?`, session)
	return errors.Wrap(err, "clearing session")
}

func readCalls(ctx context.Context, q querier, session string) ([]*callog.Call, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT seq, func, raw, ts FROM calls WHERE session = ? ORDER BY seq`, session)
	if err != nil {
		return nil, errors.Wrap(err, "reading calls")
	}
	defer rows.Close()

	var calls []*callog.Call
	for rows.Next() {
		var (
			seq       int
			fn, raw   string
			timestamp int64
		)
		if err := rows.Scan(&seq, &fn, &raw, &timestamp); err != nil {
			return nil, errors.Wrap(err, "reading calls")
		}
		parsed, err := callog.Parse(strings.NewReader(raw))
		if err != nil || len(parsed) != 1 || parsed[0].Func != fn {
			return nil, errors.Mark(errors.Newf("session %s call %d: undecodable %q", session, seq, raw), ErrCorrupt)
		}
		c := parsed[0]
		c.Seq = seq
		c.Session = session
		if timestamp != 0 {
			c.Time = time.Unix(0, timestamp)
		}
		calls = append(calls, c)
	}
	return calls, errors.Wrap(rows.Err(), "reading calls")
}
