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

package history_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rawmacro/rawmacro/history"
	"github.com/rawmacro/rawmacro/test"
)

func TestJournal(t *testing.T) {
	ctx := context.Background()
	fn := filepath.Join(t.TempDir(), "sub", history.DefaultFilename)

	jnl, err := history.Open(fn)
	test.DemandSuccess(t, err)

	now := time.UnixMicro(1712345678000000)
	jnl.SetClock(func() time.Time { return now })

	rec, err := jnl.Begin(ctx, history.Record, "")
	test.DemandSuccess(t, err)
	now = now.Add(130 * time.Second)
	test.DemandSuccess(t, jnl.End(ctx, rec, "mineracao1.json", 250, "segment"))

	now = now.Add(time.Second)
	ply, err := jnl.Begin(ctx, history.Play, "mineracao1.json")
	test.DemandSuccess(t, err)
	test.ExpectInequality(t, ply, rec)

	entries, err := jnl.Recent(ctx, 10)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(entries), 2)

	// newest first
	test.ExpectEquality(t, entries[0].ID, ply)
	test.ExpectEquality(t, entries[0].Kind, history.Play)
	test.ExpectEquality(t, entries[0].Open(), true)
	test.ExpectEquality(t, strings.Contains(entries[0].String(), "not ended"), true)

	test.ExpectEquality(t, entries[1].Kind, history.Record)
	test.ExpectEquality(t, entries[1].Macro, "mineracao1.json")
	test.ExpectEquality(t, entries[1].Events, 250)
	test.ExpectEquality(t, entries[1].Outcome, "segment")
	test.ExpectEquality(t, entries[1].Ended.Sub(entries[1].Started), 130*time.Second)

	// macro name is not replaced by an empty string
	test.DemandSuccess(t, jnl.End(ctx, ply, "", 10, "stopped"))
	entries, err = jnl.Recent(ctx, 1)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(entries), 1)
	test.ExpectEquality(t, entries[0].Macro, "mineracao1.json")
	test.ExpectEquality(t, entries[0].Outcome, "stopped")

	test.ExpectFailure(t, jnl.End(ctx, "no-such-id", "", 0, ""))
	test.DemandSuccess(t, jnl.Close())

	// journal persists
	jnl, err = history.Open(fn)
	test.DemandSuccess(t, err)
	defer jnl.Close()
	entries, err = jnl.Recent(ctx, 0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(entries), 2)
}
