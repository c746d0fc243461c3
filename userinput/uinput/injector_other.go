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

package uinput

import (
	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/userinput"
)

// NewInjector always fails. Virtual devices are only available on Linux.
func NewInjector() (userinput.Injector, error) {
	return nil, curated.Errorf(userinput.Unsupported, "uinput")
}
