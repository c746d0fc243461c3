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

package dryrun

import (
	"fmt"
	"sync"
	"time"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/logger"
	"github.com/rawmacro/rawmacro/userinput"
)

// Op is the operation of an Injector method.
type Op int

// List of valid Op values.
const (
	MoveMouse Op = iota
	KeyPress
	KeyRelease
	ButtonPress
	ButtonRelease
)

// Action is a single injection.
type Action struct {
	Op       Op
	DX       int
	DY       int
	ScanCode keymap.ScanCode
	Button   userinput.Button
	Time     time.Time
}

func (a Action) String() string {
	switch a.Op {
	case MoveMouse:
		return fmt.Sprintf("move %d,%d", a.DX, a.DY)
	case KeyPress:
		return fmt.Sprintf("press %s", keymap.Name(a.ScanCode))
	case KeyRelease:
		return fmt.Sprintf("release %s", keymap.Name(a.ScanCode))
	case ButtonPress:
		return fmt.Sprintf("press %s button", a.Button)
	case ButtonRelease:
		return fmt.Sprintf("release %s button", a.Button)
	}
	return "unknown action"
}

// Injector implements the userinput.Injector interface.
type Injector struct {
	crit    sync.Mutex
	keep    bool
	quiet   bool
	actions []Action
	closed  bool

	// if FailAfter is greater than zero then every injection after that
	// number of injections returns an error
	FailAfter int
	count     int
}

// NewInjector is the preferred method of initialisation for the Injector
// type. Injections are written to the log.
func NewInjector() *Injector {
	return &Injector{}
}

// NewCapture returns an Injector that keeps a list of injections. Injections
// are not written to the log.
func NewCapture() *Injector {
	return &Injector{keep: true, quiet: true}
}

func (inj *Injector) add(a Action) error {
	inj.crit.Lock()
	defer inj.crit.Unlock()

	if inj.closed {
		return curated.Errorf("dryrun: injector is closed")
	}

	inj.count++
	if inj.FailAfter > 0 && inj.count > inj.FailAfter {
		return curated.Errorf("dryrun: injection failed (%s)", a)
	}

	a.Time = time.Now()
	if inj.keep {
		inj.actions = append(inj.actions, a)
	}
	if !inj.quiet {
		logger.Log(logger.Allow, "dryrun", a.String())
	}
	return nil
}

// MoveMouse implements the userinput.Injector interface.
func (inj *Injector) MoveMouse(dx int, dy int) error {
	return inj.add(Action{Op: MoveMouse, DX: dx, DY: dy})
}

// KeyPress implements the userinput.Injector interface.
func (inj *Injector) KeyPress(sc keymap.ScanCode) error {
	return inj.add(Action{Op: KeyPress, ScanCode: sc})
}

// KeyRelease implements the userinput.Injector interface.
func (inj *Injector) KeyRelease(sc keymap.ScanCode) error {
	return inj.add(Action{Op: KeyRelease, ScanCode: sc})
}

// ButtonPress implements the userinput.Injector interface.
func (inj *Injector) ButtonPress(b userinput.Button) error {
	return inj.add(Action{Op: ButtonPress, Button: b})
}

// ButtonRelease implements the userinput.Injector interface.
func (inj *Injector) ButtonRelease(b userinput.Button) error {
	return inj.add(Action{Op: ButtonRelease, Button: b})
}

// Close implements the userinput.Injector interface.
func (inj *Injector) Close() error {
	inj.crit.Lock()
	defer inj.crit.Unlock()
	inj.closed = true
	return nil
}

// Closed returns true if Close() has been called.
func (inj *Injector) Closed() bool {
	inj.crit.Lock()
	defer inj.crit.Unlock()
	return inj.closed
}

// Actions returns a copy of the injections received so far. Always empty
// unless the Injector was created with NewCapture().
func (inj *Injector) Actions() []Action {
	inj.crit.Lock()
	defer inj.crit.Unlock()
	return append([]Action(nil), inj.actions...)
}

// Strings returns the result of Actions() as a list of strings.
func (inj *Injector) Strings() []string {
	a := inj.Actions()
	s := make([]string, len(a))
	for i := range a {
		s[i] = a[i].String()
	}
	return s
}
