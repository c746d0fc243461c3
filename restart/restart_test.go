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

package restart_test

import (
	"errors"
	"testing"

	"github.com/rawmacro/rawmacro/restart"
	"github.com/rawmacro/rawmacro/test"
)

func TestFunc(t *testing.T) {
	var called bool
	var r restart.Restarter = restart.Func(func() error {
		called = true
		return nil
	})
	test.ExpectSuccess(t, r.Restart())
	test.ExpectEquality(t, called, true)

	r = restart.Func(func() error { return errors.New("nope") })
	test.ExpectFailure(t, r.Restart())
}
