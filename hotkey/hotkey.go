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

// Package hotkey calls functions in response to global key presses.
//
// A Dispatcher subscribes to a keyboard source and calls the action bound to
// a key when the key is pressed. Key repeats and releases are ignored.
// Actions are called one at a time, in the order the keys were pressed.
package hotkey

import (
	"context"
	"sync"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/logger"
	"github.com/rawmacro/rawmacro/userinput"
)

// Dispatcher binds keys to actions.
type Dispatcher struct {
	crit     sync.Mutex
	bindings map[keymap.ScanCode]binding
}

type binding struct {
	name   string
	action func()
}

// NewDispatcher is the preferred method of initialisation for the
// Dispatcher type.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		bindings: make(map[keymap.ScanCode]binding),
	}
}

// Bind the action to the named key. A key can have only one action.
func (dsp *Dispatcher) Bind(name string, action func()) error {
	sc, ok := keymap.Lookup(name)
	if !ok {
		return curated.Errorf("hotkey: unknown key name (%s)", name)
	}

	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if b, ok := dsp.bindings[sc]; ok {
		return curated.Errorf("hotkey: %s is already bound (%s)", name, b.name)
	}
	dsp.bindings[sc] = binding{name: name, action: action}

	return nil
}

// Bound returns true if the scan code has an action.
func (dsp *Dispatcher) Bound(sc keymap.ScanCode) bool {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()
	_, ok := dsp.bindings[sc]
	return ok
}

// Run the dispatcher until the context is cancelled. Returns an error if the
// source cannot be subscribed to.
func (dsp *Dispatcher) Run(ctx context.Context, src userinput.Source) error {
	ch := make(chan userinput.Input, 16)
	if err := src.Subscribe(ctx, ch); err != nil {
		return curated.Errorf("hotkey: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case in := <-ch:
			dsp.dispatch(in)
		}
	}
}

func (dsp *Dispatcher) dispatch(in userinput.Input) {
	if in.Kind != userinput.KeyEdge || !in.Down || in.Repeat {
		return
	}

	dsp.crit.Lock()
	b, ok := dsp.bindings[in.ScanCode]
	dsp.crit.Unlock()
	if !ok {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Logf(logger.Allow, "hotkey", "%s: panic: %v", b.name, r)
		}
	}()

	logger.Logf(logger.Allow, "hotkey", "%s", b.name)
	b.action()
}
