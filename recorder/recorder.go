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

package recorder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/logger"
	"github.com/rawmacro/rawmacro/macro"
	"github.com/rawmacro/rawmacro/userinput"
)

// size of the channel between the source and the recorder
const inputBuffer = 256

// Saver is implemented by macro.Store.
type Saver interface {
	Save(l macro.Log) (string, error)
}

// Saved describes the result of a recording.
type Saved struct {
	Filename string
	Events   int

	// the recording was ended by the segment time elapsing
	Segment bool
}

func (s Saved) String() string {
	return fmt.Sprintf("%d events saved to %s", s.Events, s.Filename)
}

// Options for a new Recorder. Source and Saver must be specified.
type Options struct {
	Source userinput.Source
	Saver  Saver

	// recording ends automatically after this duration. a value of zero
	// means there is no segment time
	Segment time.Duration

	// keys for which Exclude returns true are not recorded
	Exclude func(sc keymap.ScanCode) bool

	// called once a second with the number of whole seconds remaining until
	// the segment time elapses
	Countdown func(remaining int)

	// called after the segment time has elapsed and the log has been saved
	OnSegment func(saved Saved, err error)

	Clock Clock
}

// Recorder captures input to a log.
type Recorder struct {
	opts Options

	crit      sync.Mutex
	recording bool
	log       macro.Log
	held      map[keymap.ScanCode]bool
	deadline  time.Time
	cancel    context.CancelFunc
	consumed  chan struct{}
	segment   *time.Timer

	// incremented on every call to Start(). used to identify the recording
	// to which a segment timer belongs
	generation int
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type.
func NewRecorder(opts Options) (*Recorder, error) {
	if opts.Source == nil {
		return nil, curated.Errorf("recorder: no input source")
	}
	if opts.Saver == nil {
		return nil, curated.Errorf("recorder: no macro store")
	}
	if opts.Clock == nil {
		opts.Clock = WallClock
	}
	return &Recorder{opts: opts}, nil
}

// IsRecording returns true if recording is in progress.
func (rec *Recorder) IsRecording() bool {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	return rec.recording
}

// Remaining returns the time until the segment time elapses. Returns zero if
// not recording or if there is no segment time.
func (rec *Recorder) Remaining() time.Duration {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	if !rec.recording || rec.deadline.IsZero() {
		return 0
	}
	return max(rec.deadline.Sub(rec.opts.Clock.Now()), 0)
}

// Len returns the number of events recorded so far.
func (rec *Recorder) Len() int {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	return len(rec.log)
}

// Start recording. Does nothing if recording is already in progress. An
// error is returned if the input source cannot be subscribed to, in which
// case recording does not start.
func (rec *Recorder) Start() error {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	if rec.recording {
		return nil
	}

	rec.log = macro.Log{}
	rec.held = make(map[keymap.ScanCode]bool)

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan userinput.Input, inputBuffer)

	if err := rec.opts.Source.Subscribe(ctx, ch); err != nil {
		cancel()
		return curated.Errorf("recorder: %v", err)
	}

	rec.recording = true
	rec.cancel = cancel
	rec.consumed = make(chan struct{})
	rec.generation++

	go rec.consume(ctx, ch, rec.consumed, rec.generation)

	if rec.opts.Segment > 0 {
		rec.deadline = rec.opts.Clock.Now().Add(rec.opts.Segment)
		gen := rec.generation
		rec.segment = time.AfterFunc(rec.opts.Segment, func() {
			rec.expire(gen)
		})
		if rec.opts.Countdown != nil {
			go rec.countdown(ctx, rec.deadline)
		}
	} else {
		rec.deadline = time.Time{}
	}

	logger.Log(logger.Allow, "recorder", "recording started")

	return nil
}

// consume input until the context is cancelled. input already in the channel
// when the context is cancelled is also consumed
//
// a panic ends the recording without saving
func (rec *Recorder) consume(ctx context.Context, ch chan userinput.Input, done chan struct{}, gen int) {
	defer close(done)
	defer guard("recorder", nil, func() {
		rec.abandon(gen)
	})

	for {
		select {
		case in := <-ch:
			rec.add(in)
		case <-ctx.Done():
			for {
				select {
				case in := <-ch:
					rec.add(in)
				default:
					return
				}
			}
		}
	}
}

func (rec *Recorder) add(in userinput.Input) {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	t := in.Time
	if t.IsZero() {
		t = rec.opts.Clock.Now()
	}

	switch in.Kind {
	case userinput.MouseMotion:
		rec.log = append(rec.log, macro.Event{
			Kind: macro.Mouse,
			DX:   in.DX,
			DY:   in.DY,
			Time: t,
		})

	case userinput.KeyEdge:
		if rec.opts.Exclude != nil && rec.opts.Exclude(in.ScanCode) {
			return
		}

		edge := macro.Up
		if in.Down {
			if in.Repeat || rec.held[in.ScanCode] {
				return
			}
			rec.held[in.ScanCode] = true
			edge = macro.Down
		} else {
			delete(rec.held, in.ScanCode)
		}

		rec.log = append(rec.log, macro.Event{
			Kind:     macro.Key,
			ScanCode: int(in.ScanCode),
			Edge:     edge,
			Time:     t,
		})
	}
}

// end the recording with the generation number without saving
func (rec *Recorder) abandon(gen int) {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	if !rec.recording || gen != rec.generation {
		return
	}
	rec.recording = false
	rec.cancel()
	if rec.segment != nil {
		rec.segment.Stop()
		rec.segment = nil
	}
	logger.Logf(logger.Allow, "recorder", "recording abandoned with %d events", len(rec.log))
}

func (rec *Recorder) countdown(ctx context.Context, deadline time.Time) {
	defer guard("recorder", nil, nil)

	for {
		rem := int(deadline.Sub(rec.opts.Clock.Now()).Seconds())
		if rem <= 0 {
			return
		}
		rec.opts.Countdown(rem)
		if !rec.opts.Clock.Sleep(ctx, time.Second) {
			return
		}
	}
}

// called by the segment timer
func (rec *Recorder) expire(gen int) {
	defer guard("recorder", nil, nil)

	saved, stopped, err := rec.stop(gen)
	if !stopped {
		return
	}
	saved.Segment = true

	logger.Log(logger.Allow, "recorder", "segment time elapsed")

	if rec.opts.OnSegment != nil {
		rec.opts.OnSegment(saved, err)
	}
}

// Stop recording and save the log. Does nothing if recording is not in
// progress, in which case the returned Saved value is empty.
func (rec *Recorder) Stop() (Saved, error) {
	saved, _, err := rec.stop(0)
	return saved, err
}

// stop recording. if gen is not zero then recording is only stopped if it is
// the recording with that generation number. returns true if recording was
// stopped by this call
func (rec *Recorder) stop(gen int) (Saved, bool, error) {
	rec.crit.Lock()
	if !rec.recording || (gen != 0 && gen != rec.generation) {
		rec.crit.Unlock()
		return Saved{}, false, nil
	}
	rec.recording = false
	rec.cancel()
	if rec.segment != nil {
		rec.segment.Stop()
		rec.segment = nil
	}
	consumed := rec.consumed
	rec.crit.Unlock()

	// wait for buffered input to be added to the log
	<-consumed

	rec.crit.Lock()
	log := rec.log
	rec.crit.Unlock()

	fn, err := rec.opts.Saver.Save(log)
	if err != nil {
		return Saved{Events: len(log)}, true, curated.Errorf("recorder: %v", err)
	}

	saved := Saved{Filename: fn, Events: len(log)}
	logger.Logf(logger.Allow, "recorder", "recording stopped: %s", saved)
	return saved, true, nil
}
