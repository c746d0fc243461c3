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

// Package console is the interactive front-end. Single key presses are
// mapped to session operations and notices are printed as they arrive.
//
// When the input is a terminal it is put into cbreak mode so that keys act
// immediately. Otherwise, and on Windows, the console reads lines and each
// line is treated as a sequence of key presses.
package console
