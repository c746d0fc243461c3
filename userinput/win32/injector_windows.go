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

//go:build windows

package win32

import (
	"golang.org/x/sys/windows"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/userinput"
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	procKeybdEvent = user32.NewProc("keybd_event")
	procMouseEvent = user32.NewProc("mouse_event")
)

// Injector implements the userinput.Injector interface.
type Injector struct{}

// NewInjector checks that the user32 functions are available.
func NewInjector() (*Injector, error) {
	if err := procKeybdEvent.Find(); err != nil {
		return nil, curated.Errorf("win32: %v", err)
	}
	if err := procMouseEvent.Find(); err != nil {
		return nil, curated.Errorf("win32: %v", err)
	}
	return &Injector{}, nil
}

func (inj *Injector) key(sc keymap.ScanCode, down bool) error {
	f := keyFlags(down)
	if sc > 0xff {
		f |= keyeventfExtendedKey
	}
	// neither function reports an error
	procKeybdEvent.Call(0, uintptr(sc&0xff), uintptr(f), 0)
	return nil
}

// MoveMouse implements the userinput.Injector interface.
func (inj *Injector) MoveMouse(dx int, dy int) error {
	procMouseEvent.Call(mouseeventfMove, delta(dx), delta(dy), 0, 0)
	return nil
}

// KeyPress implements the userinput.Injector interface.
func (inj *Injector) KeyPress(sc keymap.ScanCode) error {
	return inj.key(sc, true)
}

// KeyRelease implements the userinput.Injector interface.
func (inj *Injector) KeyRelease(sc keymap.ScanCode) error {
	return inj.key(sc, false)
}

func (inj *Injector) button(b userinput.Button, down bool) error {
	f, ok := buttonFlags(b, down)
	if !ok {
		return curated.Errorf(userinput.Unsupported, b.String()+" button")
	}
	procMouseEvent.Call(uintptr(f), 0, 0, 0, 0)
	return nil
}

// ButtonPress implements the userinput.Injector interface.
func (inj *Injector) ButtonPress(b userinput.Button) error {
	return inj.button(b, true)
}

// ButtonRelease implements the userinput.Injector interface.
func (inj *Injector) ButtonRelease(b userinput.Button) error {
	return inj.button(b, false)
}

// Close implements the userinput.Injector interface.
func (inj *Injector) Close() error {
	return nil
}
