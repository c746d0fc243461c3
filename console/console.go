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

package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/rawmacro/rawmacro/logger"
	"github.com/rawmacro/rawmacro/notifications"
)

// Controller is implemented by session.Controller.
type Controller interface {
	StartRecording() error
	StopRecording() error
	Load(filename string) error
	Play() error
	StopPlaying()
	Shutdown()
	String() string
}

// the terminal is put into cbreak mode while the console is running
type terminal interface {
	cbreak() error
	restore() error
}

const help = `  r  start recording
  s  stop recording
  l  load a macro
  p  play
  x  stop playing
  h  help
  q  quit
`

const (
	keyBackspace = 8
	keyDelete    = 127
)

// Console reads commands from the input and writes to the output.
type Console struct {
	in   io.Reader
	term terminal
	ctl  Controller

	// extra help text, printed after the list of console keys
	Help string

	crit   sync.Mutex
	out    io.Writer
	cbreak bool

	// styles are rendered as plain text if the output is not a terminal
	styles struct {
		info    lipgloss.Style
		active  lipgloss.Style
		warning lipgloss.Style
	}
}

// NewConsole is the preferred method of initialisation for the Console type.
// If in is a terminal then cbreak mode is used.
func NewConsole(in io.Reader, out io.Writer, ctl Controller) *Console {
	con := &Console{
		in:  in,
		out: out,
		ctl: ctl,
	}
	if f, ok := in.(*os.File); ok {
		con.term = openTerminal(f)
	}

	r := lipgloss.NewRenderer(out)
	con.styles.info = r.NewStyle().Faint(true)
	con.styles.active = r.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	con.styles.warning = r.NewStyle().Foreground(lipgloss.Color("9"))

	return con
}

// Printf writes to the console output. Safe to call from any goroutine.
func (con *Console) Printf(format string, a ...any) {
	con.crit.Lock()
	defer con.crit.Unlock()
	fmt.Fprintf(con.out, format, a...)
}

// Release returns the terminal to the mode it was in before Run() was
// called. Safe to call more than once and from any goroutine.
func (con *Console) Release() {
	con.crit.Lock()
	defer con.crit.Unlock()
	if !con.cbreak {
		return
	}
	con.cbreak = false
	if err := con.term.restore(); err != nil {
		logger.Logf(logger.Allow, "console", "%v", err)
	}
}

// Notify implements the notifications.Notify interface.
func (con *Console) Notify(notice notifications.Notice, detail string) {
	style := con.styles.info

	var msg string
	switch notice {
	case notifications.NotifyRecordingStarted:
		msg = fmt.Sprintf("recording (%s)", detail)
		style = con.styles.active
	case notifications.NotifyCountdown:
		msg = fmt.Sprintf("recording ends in %ss", detail)
	case notifications.NotifyRecordingSaved:
		msg = detail
	case notifications.NotifySegmentExpired:
		msg = fmt.Sprintf("segment time elapsed: %s", detail)
	case notifications.NotifyMacroLoaded:
		msg = fmt.Sprintf("loaded %s", detail)
	case notifications.NotifyPlaybackStarted:
		msg = fmt.Sprintf("playing %s", detail)
		style = con.styles.active
	case notifications.NotifyPlaybackEnded:
		msg = detail
	case notifications.NotifyNoMacro:
		msg = fmt.Sprintf("no macro found (%s)", detail)
		style = con.styles.warning
	case notifications.NotifyRestart:
		msg = fmt.Sprintf("restart: %s", detail)
	default:
		msg = fmt.Sprintf("%s %s", notice, detail)
	}

	con.Printf("%s\n", style.Render(msg))
}

// Run the console until the q key is pressed or the context is cancelled.
// Shutdown() is called on the controller when q is pressed.
//
// If the input reaches EOF the console stops reading but Run() does not
// return until the context is cancelled.
func (con *Console) Run(ctx context.Context) error {
	if con.term != nil {
		if err := con.term.cbreak(); err != nil {
			logger.Logf(logger.Allow, "console", "%v", err)
			con.term = nil
		} else {
			con.crit.Lock()
			con.cbreak = true
			con.crit.Unlock()
			defer con.Release()
		}
	}

	keys := make(chan rune)
	go func() {
		defer close(keys)
		r := bufio.NewReader(con.in)
		for {
			k, _, err := r.ReadRune()
			if err != nil {
				if err != io.EOF {
					logger.Logf(logger.Allow, "console", "%v", err)
				}
				return
			}
			select {
			case keys <- k:
			case <-ctx.Done():
				return
			}
		}
	}()

	con.Printf("%s. press h for help\n", con.ctl)

	next := func() (rune, bool) {
		select {
		case k, ok := <-keys:
			return k, ok
		case <-ctx.Done():
			return 0, false
		}
	}

	for {
		k, ok := next()
		if !ok {
			if ctx.Err() == nil {
				logger.Log(logger.Allow, "console", "input closed")
				<-ctx.Done()
			}
			return nil
		}

		if quit := con.command(k, next); quit {
			con.ctl.Shutdown()
			return nil
		}
	}
}

// perform the command for key k. returns true if the console should quit
func (con *Console) command(k rune, next func() (rune, bool)) bool {
	var err error

	switch k {
	case 'r', 'R':
		err = con.ctl.StartRecording()
	case 's', 'S':
		err = con.ctl.StopRecording()
	case 'l', 'L':
		con.Printf("filename: ")
		fn := con.line(next)
		if fn != "" {
			err = con.ctl.Load(fn)
		}
	case 'p', 'P':
		err = con.ctl.Play()
	case 'x', 'X':
		con.ctl.StopPlaying()
	case 'h', 'H', '?':
		con.Printf("%s", help)
		if con.Help != "" {
			con.Printf("%s", con.Help)
		}
	case 'q', 'Q':
		return true
	case '\n', '\r', ' ', '\t':
	default:
		con.Printf("unrecognised key (%q). press h for help\n", k)
	}

	if err != nil {
		con.Printf("%s\n", con.styles.warning.Render(err.Error()))
	}

	return false
}

// read a line of input. in cbreak mode the characters are echoed by the
// console
func (con *Console) line(next func() (rune, bool)) string {
	echo := con.term != nil

	var b strings.Builder
	for {
		k, ok := next()
		if !ok {
			break
		}

		switch k {
		case '\n', '\r':
			if echo {
				con.Printf("\n")
			}
			// in line mode the command key is followed by the end of its
			// own line and the filename is on the next line
			if b.Len() == 0 && !echo {
				continue
			}
			return strings.TrimSpace(b.String())
		case keyBackspace, keyDelete:
			s := []rune(b.String())
			if len(s) > 0 {
				b.Reset()
				b.WriteString(string(s[:len(s)-1]))
				if echo {
					con.Printf("\b \b")
				}
			}
		default:
			b.WriteRune(k)
			if echo {
				con.Printf("%c", k)
			}
		}
	}

	return strings.TrimSpace(b.String())
}
