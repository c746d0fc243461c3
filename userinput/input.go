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
	"context"
	"fmt"
	"time"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/keymap"
)

// Sentinel error returned when a Source or Injector is not available on the
// current platform.
const Unsupported = "userinput: %s not supported on this platform"

// Kind of Input.
type Kind int

// List of valid Kind values.
const (
	MouseMotion Kind = iota
	KeyEdge
)

func (k Kind) String() string {
	switch k {
	case MouseMotion:
		return "mouse"
	case KeyEdge:
		return "key"
	}
	return "unknown"
}

// Input is a single piece of received input. DX and DY are used by
// MouseMotion. ScanCode, Down and Repeat are used by KeyEdge.
//
// Time is the time the input was captured. It may be the zero value if the
// source does not know the time, in which case the receiver should use the
// time it was received.
type Input struct {
	Kind     Kind
	DX       int
	DY       int
	ScanCode keymap.ScanCode
	Down     bool
	Repeat   bool
	Time     time.Time
}

func (in Input) String() string {
	switch in.Kind {
	case MouseMotion:
		return fmt.Sprintf("mouse %d,%d", in.DX, in.DY)
	case KeyEdge:
		s := "up"
		if in.Down {
			s = "down"
			if in.Repeat {
				s = "repeat"
			}
		}
		return fmt.Sprintf("key %s %s", keymap.Name(in.ScanCode), s)
	}
	return "unknown input"
}

// Source is implemented by anything that can deliver Input.
type Source interface {
	// Subscribe begins delivery of input on the channel. If delivery cannot
	// begin an error is returned and nothing is sent on the channel.
	// Delivery continues until the context is cancelled. The channel is
	// never closed by the Source.
	Subscribe(ctx context.Context, ch chan<- Input) error
}

// Multi returns a Source which delivers input from all the sources to the
// same channel. If any of the sources fail to subscribe then the sources
// which have already subscribed are cancelled.
func Multi(sources ...Source) Source {
	return multi(sources)
}

type multi []Source

func (m multi) Subscribe(ctx context.Context, ch chan<- Input) error {
	sub, cancel := context.WithCancel(ctx)
	for _, s := range m {
		if err := s.Subscribe(sub, ch); err != nil {
			cancel()
			return curated.Errorf("userinput: %v", err)
		}
	}
	context.AfterFunc(ctx, cancel)
	return nil
}

// Unavailable is a source that always fails with the Unsupported error.
type Unavailable string

// Subscribe implements the Source interface.
func (u Unavailable) Subscribe(_ context.Context, _ chan<- Input) error {
	return curated.Errorf(Unsupported, string(u))
}
