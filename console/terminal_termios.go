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

//go:build !windows

package console

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/rawmacro/rawmacro/curated"
)

type termiosTerminal struct {
	input   *os.File
	canAttr unix.Termios
}

// returns nil if the file is not a terminal
func openTerminal(f *os.File) terminal {
	t := &termiosTerminal{input: f}
	if err := termios.Tcgetattr(f.Fd(), &t.canAttr); err != nil {
		return nil
	}
	return t
}

func (t *termiosTerminal) cbreak() error {
	attr := t.canAttr
	termios.Cfmakecbreak(&attr)
	if err := termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &attr); err != nil {
		return curated.Errorf("console: cbreak mode: %v", err)
	}
	return nil
}

func (t *termiosTerminal) restore() error {
	if err := termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr); err != nil {
		return curated.Errorf("console: canonical mode: %v", err)
	}
	return nil
}
