// This file is part of Rawmacro.
//
// Rawmacro is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rawmacro is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Rawmacro.  If not, see <https://www.gnu.org/licenses/>.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rawmacro/rawmacro/curated"
)

// DefaultFilename is the name of the database in the resource directory.
const DefaultFilename = "history.db"

// Kind of session.
type Kind string

// List of valid Kind values.
const (
	Record Kind = "record"
	Play   Kind = "play"
)

// Entry is a single session in the journal.
type Entry struct {
	ID      string
	Kind    Kind
	Macro   string
	Started time.Time

	// zero if the session has not ended
	Ended time.Time

	Events  int
	Outcome string
}

// Open returns true if the session has not ended.
func (e Entry) Open() bool {
	return e.Ended.IsZero()
}

func (e Entry) String() string {
	started := e.Started.Local().Format("2006-01-02 15:04:05")
	if e.Open() {
		return fmt.Sprintf("%s  %-6s  %s  (not ended)", started, e.Kind, e.Macro)
	}
	return fmt.Sprintf("%s  %-6s  %s  %d events  %s (%.1fs)", started, e.Kind, e.Macro,
		e.Events, e.Outcome, e.Ended.Sub(e.Started).Seconds())
}

// Journal is the session database.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open the journal at the path. The database is created if necessary.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, curated.Errorf("history: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, curated.Errorf("history: %v", err)
	}

	// a single connection serialises writes from the recorder and playback
	db.SetMaxOpenConns(1)

	jnl := &Journal{db: db, now: time.Now}
	if err := jnl.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return jnl, nil
}

func (jnl *Journal) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  macro TEXT NOT NULL,
  started_at INTEGER NOT NULL,
  ended_at INTEGER,
  events INTEGER NOT NULL DEFAULT 0,
  outcome TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
`
	if _, err := jnl.db.ExecContext(ctx, ddl); err != nil {
		return curated.Errorf("history: create sessions table: %v", err)
	}
	return nil
}

// Close the database.
func (jnl *Journal) Close() error {
	if err := jnl.db.Close(); err != nil {
		return curated.Errorf("history: %v", err)
	}
	return nil
}

// Begin a new session. Returns the ID of the session.
func (jnl *Journal) Begin(ctx context.Context, kind Kind, macro string) (string, error) {
	id := uuid.NewString()

	const stmt = `
INSERT INTO sessions (id, kind, macro, started_at)
VALUES (?, ?, ?, ?);
`
	if _, err := jnl.db.ExecContext(ctx, stmt, id, string(kind), macro, jnl.now().UnixMicro()); err != nil {
		return "", curated.Errorf("history: begin session: %v", err)
	}
	return id, nil
}

// End the session with the ID. The macro name can be updated if it wasn't
// known when the session began. An empty string leaves the name unchanged.
func (jnl *Journal) End(ctx context.Context, id string, macro string, events int, outcome string) error {
	const stmt = `
UPDATE sessions
SET ended_at = ?, events = ?, outcome = ?, macro = COALESCE(NULLIF(?, ''), macro)
WHERE id = ?;
`
	res, err := jnl.db.ExecContext(ctx, stmt, jnl.now().UnixMicro(), events, outcome, macro, id)
	if err != nil {
		return curated.Errorf("history: end session: %v", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return curated.Errorf("history: end session: %v", err)
	}
	if n == 0 {
		return curated.Errorf("history: end session: no session (%s)", id)
	}
	return nil
}

// Recent returns the most recent sessions, newest first.
func (jnl *Journal) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 20
	}

	rows, err := jnl.db.QueryContext(ctx, `
SELECT id, kind, macro, started_at, ended_at, events, outcome
FROM sessions
ORDER BY started_at DESC, rowid DESC
LIMIT ?;
`, n)
	if err != nil {
		return nil, curated.Errorf("history: list sessions: %v", err)
	}
	defer rows.Close()

	out := make([]Entry, 0, n)
	for rows.Next() {
		var e Entry
		var kind string
		var started int64
		var ended sql.NullInt64
		if err := rows.Scan(&e.ID, &kind, &e.Macro, &started, &ended, &e.Events, &e.Outcome); err != nil {
			return nil, curated.Errorf("history: scan session: %v", err)
		}
		e.Kind = Kind(kind)
		e.Started = time.UnixMicro(started)
		if ended.Valid {
			e.Ended = time.UnixMicro(ended.Int64)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, curated.Errorf("history: iterate sessions: %v", err)
	}

	return out, nil
}
