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

package evdev

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/userinput"
)

// size of input_event on 64-bit platforms. a struct timeval followed by
// type, code and value
const eventSize = 24

// event types and codes from linux/input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02

	synReport  = 0x00
	synDropped = 0x03

	relX = 0x00
	relY = 0x01

	// key codes at or above this value are buttons
	btnMisc = 0x100
)

// key values
const (
	keyUp     = 0
	keyDown   = 1
	keyRepeat = 2
)

type rawEvent struct {
	sec   int64
	usec  int64
	typ   uint16
	code  uint16
	value int32
}

func (r rawEvent) time() time.Time {
	return time.Unix(r.sec, r.usec*1000)
}

// Decoder reads input_event records and produces userinput.Input values.
type Decoder struct {
	r   io.Reader
	buf [eventSize]byte

	// accumulated movement since the last report
	dx, dy int

	// events are discarded until the next report after a SYN_DROPPED
	dropping bool

	// decoded inputs that have not yet been returned by Next()
	pending []userinput.Input
}

// NewDecoder is the preferred method of initialisation for the Decoder type.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

func (d *Decoder) read() (rawEvent, error) {
	_, err := io.ReadFull(d.r, d.buf[:])
	if err != nil {
		return rawEvent{}, err
	}
	return rawEvent{
		sec:   int64(binary.LittleEndian.Uint64(d.buf[0:])),
		usec:  int64(binary.LittleEndian.Uint64(d.buf[8:])),
		typ:   binary.LittleEndian.Uint16(d.buf[16:]),
		code:  binary.LittleEndian.Uint16(d.buf[18:]),
		value: int32(binary.LittleEndian.Uint32(d.buf[20:])),
	}, nil
}

// Next returns the next input from the device. Returns the error from the
// underlying io.Reader if there is no more input.
func (d *Decoder) Next() (userinput.Input, error) {
	for len(d.pending) == 0 {
		ev, err := d.read()
		if err != nil {
			return userinput.Input{}, err
		}
		d.decode(ev)
	}

	in := d.pending[0]
	d.pending = d.pending[1:]
	return in, nil
}

func (d *Decoder) decode(ev rawEvent) {
	switch ev.typ {
	case evSyn:
		switch ev.code {
		case synReport:
			if d.dropping {
				d.dropping = false
				d.dx, d.dy = 0, 0
				return
			}
			if d.dx != 0 || d.dy != 0 {
				d.pending = append(d.pending, userinput.Input{
					Kind: userinput.MouseMotion,
					DX:   d.dx,
					DY:   d.dy,
					Time: ev.time(),
				})
				d.dx, d.dy = 0, 0
			}
		case synDropped:
			d.dropping = true
		}

	case evRel:
		if d.dropping {
			return
		}
		switch ev.code {
		case relX:
			d.dx += int(ev.value)
		case relY:
			d.dy += int(ev.value)
		}

	case evKey:
		if d.dropping || ev.code >= btnMisc {
			return
		}
		d.pending = append(d.pending, userinput.Input{
			Kind:     userinput.KeyEdge,
			ScanCode: keymap.ScanCode(ev.code),
			Down:     ev.value != keyUp,
			Repeat:   ev.value == keyRepeat,
			Time:     ev.time(),
		})
	}
}
