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

package userinput

import (
	"fmt"
	"sync"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/keymap"
)

// Button is a mouse button.
type Button int

// List of valid Button values. ButtonNone is used to indicate that no button
// should be used and is never sent to an Injector.
const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return "none"
}

// ParseButton is the reverse of Button.String().
func ParseButton(s string) (Button, error) {
	switch s {
	case "left":
		return ButtonLeft, nil
	case "right":
		return ButtonRight, nil
	case "middle":
		return ButtonMiddle, nil
	case "none", "":
		return ButtonNone, nil
	}
	return ButtonNone, fmt.Errorf("userinput: unknown button (%s)", s)
}

// Injector is implemented by anything that can send synthetic input to the
// foreground application.
type Injector interface {
	MoveMouse(dx int, dy int) error
	KeyPress(sc keymap.ScanCode) error
	KeyRelease(sc keymap.ScanCode) error
	ButtonPress(b Button) error
	ButtonRelease(b Button) error
	Close() error
}

// Tap presses and releases a key.
func Tap(inj Injector, sc keymap.ScanCode) error {
	if err := inj.KeyPress(sc); err != nil {
		return err
	}
	return inj.KeyRelease(sc)
}

// Type the text by tapping the keys for each character. Upper case and
// other shifted characters are typed with the shift key held.
func Type(inj Injector, text string) error {
	strokes, err := keymap.Strokes(text)
	if err != nil {
		return curated.Errorf("userinput: %v", err)
	}

	for _, s := range strokes {
		if s.Shift {
			if err := inj.KeyPress(keymap.Shift); err != nil {
				return err
			}
		}
		if err := Tap(inj, s.ScanCode); err != nil {
			return err
		}
		if s.Shift {
			if err := inj.KeyRelease(keymap.Shift); err != nil {
				return err
			}
		}
	}

	return nil
}

// Serialise returns an Injector that can be used by more than one goroutine.
// Each call to the underlying Injector is completed before the next one
// begins.
func Serialise(inj Injector) Injector {
	if s, ok := inj.(*serialised); ok {
		return s
	}
	return &serialised{inj: inj}
}

type serialised struct {
	crit sync.Mutex
	inj  Injector
}

func (s *serialised) MoveMouse(dx int, dy int) error {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.inj.MoveMouse(dx, dy)
}

func (s *serialised) KeyPress(sc keymap.ScanCode) error {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.inj.KeyPress(sc)
}

func (s *serialised) KeyRelease(sc keymap.ScanCode) error {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.inj.KeyRelease(sc)
}

func (s *serialised) ButtonPress(b Button) error {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.inj.ButtonPress(b)
}

func (s *serialised) ButtonRelease(b Button) error {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.inj.ButtonRelease(b)
}

func (s *serialised) Close() error {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.inj.Close()
}
