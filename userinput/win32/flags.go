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

package win32

import "github.com/rawmacro/rawmacro/userinput"

// flags for keybd_event()
const (
	keyeventfExtendedKey = 0x0001
	keyeventfKeyUp       = 0x0002
	keyeventfScanCode    = 0x0008
)

// flags for mouse_event()
const (
	mouseeventfMove       = 0x0001
	mouseeventfLeftDown   = 0x0002
	mouseeventfLeftUp     = 0x0004
	mouseeventfRightDown  = 0x0008
	mouseeventfRightUp    = 0x0010
	mouseeventfMiddleDown = 0x0020
	mouseeventfMiddleUp   = 0x0040
)

// keyFlags returns the flags for a key edge
func keyFlags(down bool) uint32 {
	f := uint32(keyeventfScanCode)
	if !down {
		f |= keyeventfKeyUp
	}
	return f
}

// buttonFlags returns the mouse_event() flags for a button edge
func buttonFlags(b userinput.Button, down bool) (uint32, bool) {
	switch b {
	case userinput.ButtonLeft:
		if down {
			return mouseeventfLeftDown, true
		}
		return mouseeventfLeftUp, true
	case userinput.ButtonRight:
		if down {
			return mouseeventfRightDown, true
		}
		return mouseeventfRightUp, true
	case userinput.ButtonMiddle:
		if down {
			return mouseeventfMiddleDown, true
		}
		return mouseeventfMiddleUp, true
	}
	return 0, false
}

// signed movement is passed in an unsigned DWORD
func delta(v int) uintptr {
	return uintptr(uint32(int32(v)))
}
