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

package hotkey_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rawmacro/rawmacro/hotkey"
	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/test"
	"github.com/rawmacro/rawmacro/userinput"
	"github.com/rawmacro/rawmacro/userinput/dryrun"
)

func TestDispatch(t *testing.T) {
	dsp := hotkey.NewDispatcher()

	var crit sync.Mutex
	var calls []string
	record := func(s string) func() {
		return func() {
			crit.Lock()
			defer crit.Unlock()
			calls = append(calls, s)
		}
	}

	test.DemandSuccess(t, dsp.Bind("F9", record("start")))
	test.DemandSuccess(t, dsp.Bind("F10", record("stop")))
	test.DemandSuccess(t, dsp.Bind("F11", func() { panic("oops") }))
	test.ExpectFailure(t, dsp.Bind("f9", record("again")))
	test.ExpectFailure(t, dsp.Bind("nokey", record("none")))

	test.ExpectEquality(t, dsp.Bound(keymap.MustLookup("F9")), true)
	test.ExpectEquality(t, dsp.Bound(keymap.MustLookup("F12")), false)

	src := dryrun.NewSource()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- dsp.Run(ctx, src)
	}()

	test.ExpectEquality(t, waitFor(func() bool { return src.Subscribers() == 1 }), true)

	f9 := keymap.MustLookup("F9")
	f10 := keymap.MustLookup("F10")
	f11 := keymap.MustLookup("F11")

	src.Push(userinput.Input{Kind: userinput.KeyEdge, ScanCode: f9, Down: true})
	src.Push(userinput.Input{Kind: userinput.KeyEdge, ScanCode: f9, Down: true, Repeat: true})
	src.Push(userinput.Input{Kind: userinput.KeyEdge, ScanCode: f9, Down: false})
	src.Push(userinput.Input{Kind: userinput.KeyEdge, ScanCode: f11, Down: true})
	src.Push(userinput.Input{Kind: userinput.MouseMotion, DX: 1})
	src.Push(userinput.Input{Kind: userinput.KeyEdge, ScanCode: f10, Down: true})

	ok := waitFor(func() bool {
		crit.Lock()
		defer crit.Unlock()
		return len(calls) == 2
	})
	test.ExpectEquality(t, ok, true)

	cancel()
	test.ExpectSuccess(t, <-done)

	crit.Lock()
	defer crit.Unlock()
	test.DemandEquality(t, len(calls), 2)
	test.ExpectEquality(t, calls[0], "start")
	test.ExpectEquality(t, calls[1], "stop")
}

func TestRunSubscribeFailure(t *testing.T) {
	dsp := hotkey.NewDispatcher()
	err := dsp.Run(context.Background(), userinput.Unavailable("keyboard"))
	test.ExpectFailure(t, err)
}

func waitFor(f func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return f()
}
