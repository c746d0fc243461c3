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

// Package restart replaces the running process with a new instance of the
// same program.
//
// A restart clears every piece of state held by the process, including any
// input hooks or devices that have not been released cleanly.
package restart

import (
	"os"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/logger"
)

// Restarter is implemented by anything that can restart the program.
type Restarter interface {
	Restart() error
}

// Exec implements the Restarter interface by executing the program again
// with the same arguments. On success Restart() does not return.
type Exec struct {
	// arguments for the new process. if nil the arguments of the current
	// process are used
	Args []string

	// called immediately before the process is replaced. the function should
	// release anything that will not be released by the operating system
	Cleanup func()
}

// Restart implements the Restarter interface.
func (e Exec) Restart() error {
	exe, err := os.Executable()
	if err != nil {
		return curated.Errorf("restart: %v", err)
	}

	args := e.Args
	if args == nil {
		args = os.Args
	}

	logger.Logf(logger.Allow, "restart", "restarting %s", exe)

	if e.Cleanup != nil {
		e.Cleanup()
	}

	if err := replace(exe, args); err != nil {
		return curated.Errorf("restart: %v", err)
	}
	return nil
}

// Func is an adaptor that allows a function to be used as a Restarter.
type Func func() error

// Restart implements the Restarter interface.
func (f Func) Restart() error {
	return f()
}
