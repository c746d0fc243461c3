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

// Package win32 injects input on Windows with the keybd_event() and
// mouse_event() functions in user32.dll.
//
// Keys are sent by scan code, not by virtual key, which is what games that
// read DirectInput or raw input expect. Mouse movement is relative.
//
// Capture of raw input on Windows requires a window and a message loop and
// is not provided by this package.
package win32
