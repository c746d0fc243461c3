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

package userinput_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/test"
	"github.com/rawmacro/rawmacro/userinput"
	"github.com/rawmacro/rawmacro/userinput/dryrun"
)

func TestTap(t *testing.T) {
	inj := dryrun.NewCapture()
	test.DemandSuccess(t, userinput.Tap(inj, keymap.MustLookup("q")))
	test.ExpectEquality(t, strings.Join(inj.Strings(), "; "), "press q; release q")
}

func TestType(t *testing.T) {
	inj := dryrun.NewCapture()
	test.DemandSuccess(t, userinput.Type(inj, "/Mi"))
	test.ExpectEquality(t, strings.Join(inj.Strings(), "; "),
		"press /; release /; press shift; press m; release m; release shift; press i; release i")

	test.ExpectFailure(t, userinput.Type(inj, "ç"))
}

func TestTapFailure(t *testing.T) {
	inj := dryrun.NewCapture()
	inj.FailAfter = 1
	test.ExpectFailure(t, userinput.Tap(inj, keymap.Enter))
	test.ExpectEquality(t, len(inj.Actions()), 1)
}

func TestSerialise(t *testing.T) {
	inj := dryrun.NewCapture()
	s := userinput.Serialise(inj)

	// serialising a serialised injector returns the same injector
	test.ExpectEquality(t, userinput.Serialise(s), s)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = s.MoveMouse(1, 1)
				_ = userinput.Tap(s, keymap.Space)
			}
		}()
	}
	wg.Wait()

	test.ExpectEquality(t, len(inj.Actions()), 4*50*3)
	test.ExpectSuccess(t, s.Close())
	test.ExpectEquality(t, inj.Closed(), true)
	test.ExpectFailure(t, s.MoveMouse(1, 1))
}

func TestParseButton(t *testing.T) {
	for _, b := range []userinput.Button{userinput.ButtonLeft, userinput.ButtonRight, userinput.ButtonMiddle, userinput.ButtonNone} {
		p, err := userinput.ParseButton(b.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, p, b)
	}
	_, err := userinput.ParseButton("thumb")
	test.ExpectFailure(t, err)
}

func TestMulti(t *testing.T) {
	a := dryrun.NewSource()
	b := dryrun.NewSource()

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan userinput.Input, 2)
	test.DemandSuccess(t, userinput.Multi(a, b).Subscribe(ctx, ch))
	test.ExpectEquality(t, a.Subscribers(), 1)
	test.ExpectEquality(t, b.Subscribers(), 1)

	a.Push(userinput.Input{Kind: userinput.MouseMotion, DX: 1})
	b.Push(userinput.Input{Kind: userinput.KeyEdge, ScanCode: 16, Down: true})
	test.ExpectEquality(t, (<-ch).Kind, userinput.MouseMotion)
	test.ExpectEquality(t, (<-ch).Kind, userinput.KeyEdge)

	cancel()
	test.ExpectEquality(t, waitFor(func() bool { return a.Subscribers() == 0 && b.Subscribers() == 0 }), true)
}

func TestMultiRollback(t *testing.T) {
	a := dryrun.NewSource()
	b := dryrun.NewSource()
	b.Fail = errors.New("no device")

	ch := make(chan userinput.Input)
	err := userinput.Multi(a, b).Subscribe(context.Background(), ch)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, waitFor(func() bool { return a.Subscribers() == 0 }), true)
}

func TestUnavailable(t *testing.T) {
	err := userinput.Unavailable("capture").Subscribe(context.Background(), nil)
	test.ExpectEquality(t, curated.Is(err, userinput.Unsupported), true)
}
