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

// Package curated is a helper package for the plain Go error type. Curated
// errors are created with Errorf(), which takes a pattern and values in the
// same way as fmt.Errorf().
//
// The pattern is remembered and can be tested for with the Is() and Has()
// functions. Patterns that callers are expected to test for should be stored
// as a named const string in the package that creates them. For example, the
// macro package declares:
//
//	const NoMacro = "macro: no macro found (%s%s)"
//
// and callers can check for it like this:
//
//	if curated.Is(err, macro.NoMacro) {
//		...
//	}
//
// Has() is similar to Is() but looks for the pattern anywhere in the error
// chain:
//
//	err := curated.Errorf("session: %v", curated.Errorf(macro.NoMacro, dir, base))
//	curated.Has(err, macro.NoMacro) // true
//	curated.Is(err, macro.NoMacro)  // false
//
// The Error() function normalises the message so that adjacent duplicate
// parts are removed. Parts are separated by ": ". This means that a function
// can wrap an error in its own prefix without worrying whether the callee has
// done the same:
//
//	curated.Errorf("recorder: %v", curated.Errorf("recorder: no sources"))
//
// prints as
//
//	recorder: no sources
//
// Curated errors also implement Unwrap() so that the standard library
// errors.Is() and errors.As() functions can see through them to any wrapped
// uncurated error, such as an *os.PathError.
package curated
