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

// Sentinel error returned by Playback.Start() if the log has no events.
const EmptyLog = "playback: empty log (%s)"

// Periodic describes the action performed at a fixed interval during
// playback.
type Periodic struct {
	// a value of zero disables the periodic action
	Interval time.Duration

	// horizontal mouse movement. not scaled by the playback sensitivity
	Turn int

	// key tapped after the movement
	Key keymap.ScanCode
}

// Result describes how playback ended.
type Result struct {
	Name     string
	Total    int
	Injected int
	Duration time.Duration

	// playback was ended by a call to Stop()
	Stopped bool

	// the error that ended playback
	Err error
}

// Completed returns true if playback ended naturally.
func (r Result) Completed() bool {
	return !r.Stopped && r.Err == nil
}

func (r Result) String() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s: failed after %d of %d events: %v", r.Name, r.Injected, r.Total, r.Err)
	case r.Stopped:
		return fmt.Sprintf("%s: stopped after %d of %d events", r.Name, r.Injected, r.Total)
	}
	return fmt.Sprintf("%s: completed %d events in %.1fs", r.Name, r.Injected, r.Duration.Seconds())
}

// PlaybackOptions for a new Playback. Injector must be specified.
type PlaybackOptions struct {
	Injector userinput.Injector

	// mouse movement is multiplied by the sensitivity. the vertical
	// component is inverted. a value of zero is treated as 1
	Sensitivity float64

	Periodic Periodic

	// button held for the duration of the playback
	Hold userinput.Button

	// called when playback ends, for whatever reason. OnFinish must not call
	// Stop()
	OnFinish func(Result)

	Clock Clock
}

// Playback replays a macro.Log.
type Playback struct {
	opts PlaybackOptions
	inj  userinput.Injector

	crit    sync.Mutex
	playing bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPlayback is the preferred method of initialisation for the Playback
// type.
func NewPlayback(opts PlaybackOptions) (*Playback, error) {
	if opts.Injector == nil {
		return nil, curated.Errorf("playback: no injector")
	}
	if opts.Clock == nil {
		opts.Clock = WallClock
	}
	if opts.Sensitivity == 0 {
		opts.Sensitivity = 1
	}
	return &Playback{
		opts: opts,
		inj:  userinput.Serialise(opts.Injector),
	}, nil
}

// IsPlaying returns true if playback is in progress.
func (plb *Playback) IsPlaying() bool {
	plb.crit.Lock()
	defer plb.crit.Unlock()
	return plb.playing
}

// Start playback of the log in a new goroutine. The name is used in the log
// and in the Result. Does nothing if playback is already in progress.
func (plb *Playback) Start(log macro.Log, name string) error {
	if len(log) == 0 {
		return curated.Errorf(EmptyLog, name)
	}

	plb.crit.Lock()
	defer plb.crit.Unlock()

	if plb.playing {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	plb.playing = true
	plb.stopped = false
	plb.cancel = cancel
	plb.done = make(chan struct{})

	go plb.run(ctx, log, name, plb.done)

	logger.Logf(logger.Allow, "playback", "playing %s (%d events)", name, len(log))

	return nil
}

// Stop playback and wait for the playback goroutine to finish. Returns
// false if playback was not in progress.
func (plb *Playback) Stop() bool {
	plb.crit.Lock()
	if !plb.playing {
		plb.crit.Unlock()
		return false
	}
	plb.stopped = true
	plb.cancel()
	done := plb.done
	plb.crit.Unlock()

	<-done
	return true
}

// Wait for the current playback to end. Returns immediately if playback is
// not in progress.
func (plb *Playback) Wait() {
	plb.crit.Lock()
	done := plb.done
	playing := plb.playing
	plb.crit.Unlock()
	if playing {
		<-done
	}
}

func (plb *Playback) run(ctx context.Context, log macro.Log, name string, done chan struct{}) {
	clk := plb.opts.Clock
	start := clk.Now()
	res := Result{Name: name, Total: len(log)}

	// periodic action runs under its own context so that it can be stopped
	// when playback ends naturally
	pctx, pcancel := context.WithCancel(ctx)
	var pwg sync.WaitGroup

	defer func() {
		if r := recover(); r != nil {
			logger.Logf(logger.Allow, "playback", "panic: %v", r)
			res.Err = curated.Errorf(Panicked, "playback", r)
		}

		pcancel()
		pwg.Wait()

		if plb.opts.Hold != userinput.ButtonNone {
			if err := plb.inj.ButtonRelease(plb.opts.Hold); err != nil {
				logger.Logf(logger.Allow, "playback", "%v", err)
			}
		}

		res.Duration = clk.Now().Sub(start)

		plb.crit.Lock()
		res.Stopped = plb.stopped
		plb.playing = false
		plb.cancel()
		plb.crit.Unlock()

		logger.Logf(logger.Allow, "playback", "%s", res)

		defer close(done)
		if plb.opts.OnFinish != nil {
			plb.opts.OnFinish(res)
		}
	}()

	if plb.opts.Hold != userinput.ButtonNone {
		if err := plb.inj.ButtonPress(plb.opts.Hold); err != nil {
			res.Err = curated.Errorf("playback: %v", err)
			return
		}
	}

	if plb.opts.Periodic.Interval > 0 {
		pwg.Add(1)
		go func() {
			defer pwg.Done()
			plb.periodic(pctx)
		}()
	}

	first := log[0].Time
	for _, ev := range log {
		due := start.Add(ev.Time.Sub(first))
		if wait := due.Sub(clk.Now()); wait > 0 {
			if !clk.Sleep(ctx, wait) {
				return
			}
		}

		if ctx.Err() != nil {
			return
		}

		if err := plb.inject(ev); err != nil {
			res.Err = curated.Errorf("playback: %v", err)
			return
		}
		res.Injected++
	}
}

func (plb *Playback) inject(ev macro.Event) error {
	switch ev.Kind {
	case macro.Mouse:
		s := plb.opts.Sensitivity
		dx := int(float64(ev.DX) * s)
		dy := -int(float64(ev.DY) * s)
		return plb.inj.MoveMouse(dx, dy)
	case macro.Key:
		sc := keymap.ScanCode(ev.ScanCode)
		switch ev.Edge {
		case macro.Down:
			return plb.inj.KeyPress(sc)
		case macro.Up:
			return plb.inj.KeyRelease(sc)
		}
		return fmt.Errorf("unknown key event type (%s)", ev.Edge)
	}
	return fmt.Errorf("unknown event (%s)", ev.Kind)
}

func (plb *Playback) periodic(ctx context.Context) {
	defer guard("playback", nil, func() {
		// a failure of the periodic action ends the playback
		plb.crit.Lock()
		defer plb.crit.Unlock()
		if plb.cancel != nil {
			plb.cancel()
		}
	})

	p := plb.opts.Periodic
	for {
		if !plb.opts.Clock.Sleep(ctx, p.Interval) {
			return
		}
		if ctx.Err() != nil {
			return
		}
		if err := plb.inj.MoveMouse(p.Turn, 0); err != nil {
			logger.Logf(logger.Allow, "playback", "periodic: %v", err)
			continue // for loop
		}
		if err := userinput.Tap(plb.inj, p.Key); err != nil {
			logger.Logf(logger.Allow, "playback", "periodic: %v", err)
		}
	}
}
