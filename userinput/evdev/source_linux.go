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

//go:build linux

package evdev

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/logger"
	"github.com/rawmacro/rawmacro/userinput"
)

// Source implements the userinput.Source interface for a list of event
// devices.
type Source struct {
	devices []string
}

// NewSource is the preferred method of initialisation for the Source type.
func NewSource(devices ...string) *Source {
	return &Source{devices: devices}
}

func (src *Source) String() string {
	return strings.Join(src.devices, ", ")
}

// Subscribe implements the userinput.Source interface. Every device is opened
// before Subscribe() returns.
func (src *Source) Subscribe(ctx context.Context, ch chan<- userinput.Input) error {
	if len(src.devices) == 0 {
		return curated.Errorf("evdev: no devices")
	}

	var files []*os.File
	for _, d := range src.devices {
		f, err := os.Open(d)
		if err != nil {
			for _, f := range files {
				f.Close()
			}
			return curated.Errorf("evdev: %v", err)
		}
		files = append(files, f)
	}

	// closing the files causes the blocked reads to return
	context.AfterFunc(ctx, func() {
		for _, f := range files {
			f.Close()
		}
	})

	for _, f := range files {
		go read(ctx, f, ch)
	}

	return nil
}

func read(ctx context.Context, f *os.File, ch chan<- userinput.Input) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logf(logger.Allow, "evdev", "%s: %v", f.Name(), r)
		}
	}()

	dec := NewDecoder(f)
	for {
		in, err := dec.Next()
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, os.ErrClosed) && !errors.Is(err, io.EOF) {
				logger.Logf(logger.Allow, "evdev", "%s: %v", f.Name(), err)
			}
			return
		}

		select {
		case ch <- in:
		case <-ctx.Done():
			return
		}
	}
}
