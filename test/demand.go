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

package test

import "testing"

// DemandEquality is like ExpectEquality but the test ends immediately on
// failure.
func DemandEquality[T comparable](t *testing.T, v T, expectedValue T) {
	t.Helper()
	if v != expectedValue {
		t.Fatalf("equality test of type %T failed: '%v' does not equal '%v'", v, v, expectedValue)
	}
}

// DemandSuccess is like ExpectSuccess but the test ends immediately on
// failure.
func DemandSuccess(t *testing.T, v any) {
	t.Helper()
	ok, handled := success(t, v)
	if !handled {
		t.Fatalf("unsupported type (%T) for demand testing", v)
	}
	if !ok {
		if err, isErr := v.(error); isErr {
			t.Fatalf("a success value is demanded (error: %v)", err)
		}
		t.Fatalf("a success value is demanded for type %T", v)
	}
}

// DemandFailure is like ExpectFailure but the test ends immediately on
// failure.
func DemandFailure(t *testing.T, v any) {
	t.Helper()
	ok, handled := success(t, v)
	if !handled {
		t.Fatalf("unsupported type (%T) for demand testing", v)
	}
	if ok {
		t.Fatalf("a failure value is demanded for type %T", v)
	}
}
