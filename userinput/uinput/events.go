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

package uinput

import (
	"encoding/binary"

	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/userinput"
)

// event types and codes from linux/input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02

	synReport = 0x00

	relX = 0x00
	relY = 0x01

	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112

	// highest key code enabled on the virtual device
	keyMax = 0xff
)

// ioctl requests from linux/uinput.h
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiDevSetup   = 0x405c5503
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetRelBit  = 0x40045566
)

// size of input_event on 64-bit platforms
const eventSize = 24

// size of uinput_setup. input_id, name[80] and ff_effects_max
const setupSize = 92

const deviceName = "Rawmacro virtual input"

// encode a single input_event. the kernel sets the time field
func encode(buf []byte, typ uint16, code uint16, value int32) []byte {
	var ev [eventSize]byte
	binary.LittleEndian.PutUint16(ev[16:], typ)
	binary.LittleEndian.PutUint16(ev[18:], code)
	binary.LittleEndian.PutUint32(ev[20:], uint32(value))
	return append(buf, ev[:]...)
}

// setup returns the uinput_setup structure for the virtual device
func setup() [setupSize]byte {
	var s [setupSize]byte
	binary.LittleEndian.PutUint16(s[0:], 0x06) // BUS_VIRTUAL
	binary.LittleEndian.PutUint16(s[2:], 0x1209)
	binary.LittleEndian.PutUint16(s[4:], 0x0001)
	binary.LittleEndian.PutUint16(s[6:], 0x0001)
	copy(s[8:88], deviceName)
	return s
}

func buttonCode(b userinput.Button) (uint16, bool) {
	switch b {
	case userinput.ButtonLeft:
		return btnLeft, true
	case userinput.ButtonRight:
		return btnRight, true
	case userinput.ButtonMiddle:
		return btnMiddle, true
	}
	return 0, false
}

// events for a relative mouse movement
func moveEvents(dx int, dy int) []byte {
	var b []byte
	if dx != 0 {
		b = encode(b, evRel, relX, int32(dx))
	}
	if dy != 0 {
		b = encode(b, evRel, relY, int32(dy))
	}
	return encode(b, evSyn, synReport, 0)
}

// events for a key or button edge
func keyEvents(code uint16, down bool) []byte {
	var v int32
	if down {
		v = 1
	}
	return encode(encode(nil, evKey, code, v), evSyn, synReport, 0)
}

func keyCode(sc keymap.ScanCode) uint16 {
	return uint16(sc)
}
