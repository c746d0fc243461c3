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

package evdev

import (
	"path/filepath"
	"sort"

	"github.com/rawmacro/rawmacro/curated"
)

// directory containing the persistent device names
const byID = "/dev/input/by-id"

// Detect returns the event devices for keyboards and mice. The devices are
// found by their persistent name in /dev/input/by-id.
func Detect() (keyboards []string, mice []string, err error) {
	return detect(byID)
}

func detect(dir string) ([]string, []string, error) {
	kbd, err := filepath.Glob(filepath.Join(dir, "*-event-kbd"))
	if err != nil {
		return nil, nil, curated.Errorf("evdev: %v", err)
	}
	mouse, err := filepath.Glob(filepath.Join(dir, "*-event-mouse"))
	if err != nil {
		return nil, nil, curated.Errorf("evdev: %v", err)
	}
	sort.Strings(kbd)
	sort.Strings(mouse)
	return kbd, mouse, nil
}
