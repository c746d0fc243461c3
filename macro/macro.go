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

package macro

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/rawmacro/rawmacro/curated"
)

// Kind of event.
type Kind string

// List of valid Kind values.
const (
	Mouse Kind = "mouse"
	Key   Kind = "key"
)

// Edge of a key event.
type Edge string

// List of valid Edge values.
const (
	Down Edge = "down"
	Up   Edge = "up"
)

// Event is a single captured input. DX and DY are used by Mouse events.
// ScanCode and Edge are used by Key events.
type Event struct {
	Kind     Kind
	DX       int
	DY       int
	ScanCode int
	Edge     Edge
	Time     time.Time
}

func (ev Event) String() string {
	switch ev.Kind {
	case Mouse:
		return fmt.Sprintf("mouse %d,%d", ev.DX, ev.DY)
	case Key:
		return fmt.Sprintf("key %d %s", ev.ScanCode, ev.Edge)
	}
	return fmt.Sprintf("unknown event (%s)", ev.Kind)
}

// the form of an event in the file. pointer fields are omitted when nil
type wireEvent struct {
	Type     string   `json:"type"`
	DX       *int     `json:"dx,omitempty"`
	DY       *int     `json:"dy,omitempty"`
	ScanCode *int     `json:"scan_code,omitempty"`
	Edge     *string  `json:"event_type,omitempty"`
	Time     *float64 `json:"time"`
}

// timestamps are stored with microsecond resolution
func toSeconds(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}

func fromSeconds(s float64) time.Time {
	return time.UnixMicro(int64(math.Round(s * 1e6)))
}

// MarshalJSON implements the json.Marshaler interface.
func (ev Event) MarshalJSON() ([]byte, error) {
	t := toSeconds(ev.Time)
	w := wireEvent{
		Type: string(ev.Kind),
		Time: &t,
	}

	switch ev.Kind {
	case Mouse:
		w.DX = &ev.DX
		w.DY = &ev.DY
	case Key:
		e := string(ev.Edge)
		w.ScanCode = &ev.ScanCode
		w.Edge = &e
	default:
		return nil, fmt.Errorf("macro: unknown event type (%s)", ev.Kind)
	}

	return json.Marshal(w)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (ev *Event) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	if w.Time == nil {
		return fmt.Errorf("macro: event has no time")
	}

	*ev = Event{
		Kind: Kind(w.Type),
		Time: fromSeconds(*w.Time),
	}

	switch ev.Kind {
	case Mouse:
		if w.DX != nil {
			ev.DX = *w.DX
		}
		if w.DY != nil {
			ev.DY = *w.DY
		}
	case Key:
		if w.ScanCode == nil {
			return fmt.Errorf("macro: key event has no scan code")
		}
		ev.ScanCode = *w.ScanCode
		if w.Edge == nil {
			return fmt.Errorf("macro: key event has no event type")
		}
		ev.Edge = Edge(*w.Edge)
		if ev.Edge != Down && ev.Edge != Up {
			return fmt.Errorf("macro: unknown key event type (%s)", ev.Edge)
		}
	default:
		return fmt.Errorf("macro: unknown event type (%s)", w.Type)
	}

	return nil
}

// Log is a list of events in capture order.
type Log []Event

// Duration between the first and last event in the log.
func (l Log) Duration() time.Duration {
	if len(l) < 2 {
		return 0
	}
	return l[len(l)-1].Time.Sub(l[0].Time)
}

// Count the number of mouse and key events in the log.
func (l Log) Count() (mouse int, key int) {
	for _, ev := range l {
		switch ev.Kind {
		case Mouse:
			mouse++
		case Key:
			key++
		}
	}
	return mouse, key
}

// Write log to io.Writer.
func Write(w io.Writer, l Log) error {
	// an empty log is written as an empty array and not as null
	if l == nil {
		l = Log{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return curated.Errorf("macro: %v", err)
	}
	return nil
}

// Read log from io.Reader.
func Read(r io.Reader) (Log, error) {
	var l Log
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, curated.Errorf("macro: %v", err)
	}
	if l == nil {
		l = Log{}
	}
	return l, nil
}

// Load log from the named file.
func Load(filename string) (Log, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("macro: %v", err)
	}
	defer f.Close()

	l, err := Read(f)
	if err != nil {
		return nil, curated.Errorf("macro: %s: %v", filename, err)
	}
	return l, nil
}
