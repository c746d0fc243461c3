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

import (
	"testing"

	"github.com/rawmacro/rawmacro/test"
	"github.com/rawmacro/rawmacro/userinput"
)

func TestKeyFlags(t *testing.T) {
	test.ExpectEquality(t, keyFlags(true), uint32(0x08))
	test.ExpectEquality(t, keyFlags(false), uint32(0x0a))
}

func TestButtonFlags(t *testing.T) {
	f, ok := buttonFlags(userinput.ButtonLeft, true)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, f, uint32(0x02))
	f, _ = buttonFlags(userinput.ButtonLeft, false)
	test.ExpectEquality(t, f, uint32(0x04))
	f, _ = buttonFlags(userinput.ButtonMiddle, false)
	test.ExpectEquality(t, f, uint32(0x40))
	_, ok = buttonFlags(userinput.ButtonNone, true)
	test.ExpectEquality(t, ok, false)
}

func TestDelta(t *testing.T) {
	test.ExpectEquality(t, delta(5), uintptr(5))
	test.ExpectEquality(t, delta(-1), uintptr(0xffffffff))
}
