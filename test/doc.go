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

// Package test contains helper functions that make writing tests less
// repetitive.
//
// The Expect*() functions report a failure with t.Errorf() and allow the test
// to continue. The Demand*() functions use t.Fatalf() and end the test
// immediately. Use Demand*() when continuing the test would only produce
// noise, for example when a file could not be opened.
//
// Success and failure are interpreted according to the type of the value:
//
//	bool  -> true is success
//	error -> nil is success
//
// An untyped nil is considered a success. This matches how errors are usually
// returned, even though it isn't always how nil should be read.
//
// CompareWriter is an io.Writer that captures output so that it can be
// compared against an expected string.
package test
