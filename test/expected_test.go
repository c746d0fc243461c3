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

package test_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rawmacro/rawmacro/test"
)

func TestExpectedSuccess(t *testing.T) {
	test.ExpectSuccess(t, true)
	test.ExpectSuccess(t, nil)

	var err error
	test.ExpectSuccess(t, err)
}

func TestExpectedFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test"))
}

func TestExpectDuration(t *testing.T) {
	test.ExpectDuration(t, 505*time.Millisecond, 500*time.Millisecond, 20*time.Millisecond)
	test.ExpectDuration(t, 490*time.Millisecond, 500*time.Millisecond, 20*time.Millisecond)
}

func TestCompareWriter(t *testing.T) {
	tw := &test.CompareWriter{}
	_, _ = tw.Write([]byte("foo"))
	test.ExpectSuccess(t, tw.Compare("foo"))
	tw.Clear()
	test.ExpectSuccess(t, tw.Compare(""))
}
