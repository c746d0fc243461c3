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

// Package dryrun provides an Injector that sends no input. Each injection is
// written to the log instead, which is useful for checking a macro without
// affecting the foreground application.
//
// The Injector can also keep a list of the injections it has received, and
// the package provides a Source that delivers input pushed to it by the
// program. Together these allow the recording and playback of macros to be
// driven without any input devices.
package dryrun
