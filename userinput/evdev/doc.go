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

// Package evdev captures input from the Linux event devices in /dev/input.
//
// Reading an event device requires permission, normally by membership of
// the "input" group. Events are read from the device regardless of which
// window has focus and before any pointer acceleration is applied, so mouse
// movement is the raw movement of the device.
//
// The Decoder type converts the stream of input_event records read from a
// device into userinput.Input values. Relative X and Y movements are
// combined into a single Input for each synchronisation report. Key codes
// for mouse and joystick buttons are ignored.
//
// Only the 64-bit layout of the input_event record is supported.
package evdev
