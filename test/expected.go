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

import (
	"testing"
	"time"
)

// returns true if the value is considered a success value. see package
// documentation for the rules
func success(t *testing.T, v any) (bool, bool) {
	t.Helper()

	switch v := v.(type) {
	case nil:
		return true, true
	case bool:
		return v, true
	case error:
		return v == nil, true
	}
	return false, false
}

// ExpectEquality compares a value with an expected value of the same type.
func ExpectEquality[T comparable](t *testing.T, v T, expectedValue T) bool {
	t.Helper()
	if v != expectedValue {
		t.Errorf("equality test of type %T failed: '%v' does not equal '%v'", v, v, expectedValue)
		return false
	}
	return true
}

// ExpectInequality is the reverse of ExpectEquality.
func ExpectInequality[T comparable](t *testing.T, v T, unexpectedValue T) bool {
	t.Helper()
	if v == unexpectedValue {
		t.Errorf("inequality test of type %T failed: '%v' equals '%v'", v, v, unexpectedValue)
		return false
	}
	return true
}

// ExpectSuccess tests whether the value indicates success.
func ExpectSuccess(t *testing.T, v any) bool {
	t.Helper()
	ok, handled := success(t, v)
	if !handled {
		t.Fatalf("unsupported type (%T) for expectation testing", v)
		return false
	}
	if !ok {
		if err, isErr := v.(error); isErr {
			t.Errorf("expected success (error: %v)", err)
		} else {
			t.Errorf("expected success (%T)", v)
		}
		return false
	}
	return true
}

// ExpectFailure tests whether the value indicates failure.
func ExpectFailure(t *testing.T, v any) bool {
	t.Helper()
	ok, handled := success(t, v)
	if !handled {
		t.Fatalf("unsupported type (%T) for expectation testing", v)
		return false
	}
	if ok {
		t.Errorf("expected failure (%T)", v)
		return false
	}
	return true
}

// ExpectDuration tests whether the duration d is within tolerance of the
// expected duration.
func ExpectDuration(t *testing.T, d time.Duration, expected time.Duration, tolerance time.Duration) bool {
	t.Helper()
	diff := d - expected
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		t.Errorf("duration test failed: %v is not within %v of %v", d, tolerance, expected)
		return false
	}
	return true
}
