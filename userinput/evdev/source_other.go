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

//go:build !linux

package evdev

import (
	"context"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/userinput"
)

// Source implements the userinput.Source interface. Event devices are only
// available on Linux.
type Source struct {
	devices []string
}

// NewSource is the preferred method of initialisation for the Source type.
func NewSource(devices ...string) *Source {
	return &Source{devices: devices}
}

// Subscribe implements the userinput.Source interface.
func (src *Source) Subscribe(_ context.Context, _ chan<- userinput.Input) error {
	return curated.Errorf(userinput.Unsupported, "evdev")
}
