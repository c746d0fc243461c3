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

// Package uinput injects input on Linux by creating a virtual input device
// with /dev/uinput.
//
// The virtual device looks like any other keyboard and mouse to the rest of
// the system, so the injected input reaches the foreground application
// under both X11 and Wayland. Writing to /dev/uinput requires permission,
// normally granted by a udev rule or membership of the "input" group.
//
// Key events are sent with the evdev key code equal to the set-1 scan code.
package uinput
