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

// Package keymap translates between key names, characters and PC set-1 scan
// codes.
//
// Scan codes are the unit of keyboard input throughout Rawmacro. They are
// what the macro file stores and what the injectors send. For the range
// covered by this package, Linux evdev key codes have the same value as the
// set-1 scan code, so a macro recorded on one platform replays on another.
//
// Key names are case insensitive. Function keys are named "F1" to "F12".
// Printable keys are named with the character they produce when unshifted,
// for example "t", "1" or "/". Other keys have descriptive names, for
// example "enter", "space" or "shift".
package keymap
