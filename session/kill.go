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

package session

import (
	"os/exec"
	"runtime"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/logger"
)

// kill all processes with the image name. on windows the kill is forced
func kill(name string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("taskkill", "/F", "/IM", name)
	} else {
		cmd = exec.Command("pkill", "-x", name)
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return curated.Errorf("session: kill: %v: %s", err, out)
	}
	logger.Logf(logger.Allow, "session", "killed %s", name)
	return nil
}
