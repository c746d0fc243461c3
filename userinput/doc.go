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

// Package userinput defines how Rawmacro receives input from the user and
// how it sends synthetic input to the game.
//
// Received input is represented by the Input type and delivered on a channel
// by a Source. The mouse variant of Input is a relative movement, not a
// cursor position, so capture is unaffected by a game that has locked or
// hidden the pointer.
//
// Synthetic input is sent with an Injector. Keys are always identified by
// their scan code.
//
// Implementations for specific platforms are in sub-packages. The dryrun
// package provides an Injector that writes to the log and sends nothing.
package userinput
