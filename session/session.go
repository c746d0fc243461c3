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
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rawmacro/rawmacro/chat"
	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/history"
	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/logger"
	"github.com/rawmacro/rawmacro/macro"
	"github.com/rawmacro/rawmacro/notifications"
	"github.com/rawmacro/rawmacro/recorder"
	"github.com/rawmacro/rawmacro/restart"
	"github.com/rawmacro/rawmacro/userinput"
)

// State of the controller.
type State int

// List of valid State values.
const (
	Idle State = iota
	Recording
	Playing
)

func (s State) String() string {
	switch s {
	case Recording:
		return "recording"
	case Playing:
		return "playing"
	}
	return "idle"
}

// Journal is implemented by history.Journal.
type Journal interface {
	Begin(ctx context.Context, kind history.Kind, macro string) (string, error)
	End(ctx context.Context, id string, macro string, events int, outcome string) error
}

// Options for a new Controller. Store, Source and Injector must be
// specified.
type Options struct {
	Store    *macro.Store
	Source   userinput.Source
	Injector userinput.Injector

	// recording
	Segment time.Duration
	Exclude func(sc keymap.ScanCode) bool

	// playback
	Sensitivity float64
	Periodic    recorder.Periodic
	Hold        userinput.Button

	// segment boundary
	Chat         chat.Command
	ForceRestart bool
	Restarter    restart.Restarter
	KillOnStop   string
	Killer       func(name string) error

	// play again after a graceful restart
	Autoplay bool

	Journal Journal
	Notify  notifications.Notify
	Clock   recorder.Clock
}

// Controller is the session state machine.
type Controller struct {
	opts Options
	inj  userinput.Injector
	rec  *recorder.Recorder
	plb  *recorder.Playback

	crit     sync.Mutex
	loaded   string
	playing  string
	recID    string
	playID   string
	shutdown bool

	done     chan struct{}
	doneOnce sync.Once
}

// NewController is the preferred method of initialisation for the
// Controller type.
func NewController(opts Options) (*Controller, error) {
	if opts.Store == nil {
		return nil, curated.Errorf("session: no macro store")
	}
	if opts.Injector == nil {
		return nil, curated.Errorf("session: no injector")
	}
	if opts.Source == nil {
		opts.Source = userinput.Unavailable("input capture")
	}
	if opts.Notify == nil {
		opts.Notify = notifications.Discard
	}
	if opts.Killer == nil {
		opts.Killer = kill
	}
	if opts.Clock == nil {
		opts.Clock = recorder.WallClock
	}

	ctl := &Controller{
		opts: opts,
		inj:  userinput.Serialise(opts.Injector),
		done: make(chan struct{}),
	}

	var err error

	ctl.rec, err = recorder.NewRecorder(recorder.Options{
		Source:  opts.Source,
		Saver:   opts.Store,
		Segment: opts.Segment,
		Exclude: opts.Exclude,
		Countdown: func(remaining int) {
			ctl.opts.Notify.Notify(notifications.NotifyCountdown, strconv.Itoa(remaining))
		},
		OnSegment: ctl.onSegment,
		Clock:     opts.Clock,
	})
	if err != nil {
		return nil, curated.Errorf("session: %v", err)
	}

	ctl.plb, err = recorder.NewPlayback(recorder.PlaybackOptions{
		Injector:    ctl.inj,
		Sensitivity: opts.Sensitivity,
		Periodic:    opts.Periodic,
		Hold:        opts.Hold,
		OnFinish:    ctl.onFinish,
		Clock:       opts.Clock,
	})
	if err != nil {
		return nil, curated.Errorf("session: %v", err)
	}

	return ctl, nil
}

// State returns the current state of the controller.
func (ctl *Controller) State() State {
	if ctl.rec.IsRecording() {
		return Recording
	}
	if ctl.plb.IsPlaying() {
		return Playing
	}
	return Idle
}

// Loaded returns the filename that was loaded with Load(). Returns the empty
// string if no file has been loaded.
func (ctl *Controller) Loaded() string {
	ctl.crit.Lock()
	defer ctl.crit.Unlock()
	return ctl.loaded
}

// Done returns a channel that is closed when the session has ended. The
// session ends when Shutdown() is called or, in autoplay mode, when playback
// is stopped by request.
func (ctl *Controller) Done() <-chan struct{} {
	return ctl.done
}

func (ctl *Controller) end() {
	ctl.doneOnce.Do(func() {
		close(ctl.done)
	})
}

func (ctl *Controller) notify(n notifications.Notice, detail string) {
	ctl.opts.Notify.Notify(n, detail)
}

func (ctl *Controller) journalBegin(kind history.Kind, name string) string {
	if ctl.opts.Journal == nil {
		return ""
	}
	id, err := ctl.opts.Journal.Begin(context.Background(), kind, name)
	if err != nil {
		logger.Logf(logger.Allow, "session", "%v", err)
		return ""
	}
	return id
}

func (ctl *Controller) journalEnd(id string, name string, events int, outcome string) {
	if ctl.opts.Journal == nil || id == "" {
		return
	}
	if err := ctl.opts.Journal.End(context.Background(), id, name, events, outcome); err != nil {
		logger.Logf(logger.Allow, "session", "%v", err)
	}
}

// StartRecording begins a new recording. Does nothing unless the controller
// is idle.
func (ctl *Controller) StartRecording() error {
	ctl.crit.Lock()
	defer ctl.crit.Unlock()

	if ctl.shutdown {
		return nil
	}

	switch ctl.State() {
	case Recording:
		return nil
	case Playing:
		logger.Log(logger.Allow, "session", "stop playback before recording")
		return nil
	}

	if err := ctl.rec.Start(); err != nil {
		return curated.Errorf("session: %v", err)
	}

	ctl.recID = ctl.journalBegin(history.Record, "")

	detail := "no segment time"
	if ctl.opts.Segment > 0 {
		detail = ctl.opts.Segment.String()
	}
	ctl.notify(notifications.NotifyRecordingStarted, detail)

	return nil
}

// StopRecording ends the recording and saves the log. Does nothing if the
// controller is not recording.
func (ctl *Controller) StopRecording() error {
	ctl.crit.Lock()
	defer ctl.crit.Unlock()

	saved, err := ctl.rec.Stop()
	if err != nil {
		ctl.journalEnd(ctl.recID, "", saved.Events, "failed")
		ctl.recID = ""
		return curated.Errorf("session: %v", err)
	}
	if saved.Filename == "" {
		return nil
	}

	ctl.journalEnd(ctl.recID, saved.Filename, saved.Events, "saved")
	ctl.recID = ""
	ctl.notify(notifications.NotifyRecordingSaved, saved.String())

	return nil
}

// called by the recorder when the segment time has elapsed
func (ctl *Controller) onSegment(saved recorder.Saved, err error) {
	ctl.crit.Lock()
	id := ctl.recID
	ctl.recID = ""
	shutdown := ctl.shutdown
	ctl.crit.Unlock()

	if err != nil {
		logger.Logf(logger.Allow, "session", "%v", err)
		ctl.journalEnd(id, "", saved.Events, "failed")
	} else {
		ctl.journalEnd(id, saved.Filename, saved.Events, "segment")
		ctl.notify(notifications.NotifySegmentExpired, saved.String())
	}

	if shutdown {
		return
	}

	ctl.boundary(false)
	ctl.restart(true)
}

// Load sets the file for the next playback.
func (ctl *Controller) Load(filename string) error {
	if _, err := macro.Load(filename); err != nil {
		return curated.Errorf("session: %v", err)
	}

	ctl.crit.Lock()
	defer ctl.crit.Unlock()
	ctl.loaded = filename
	ctl.notify(notifications.NotifyMacroLoaded, filename)

	return nil
}

// Play the loaded macro or, if no macro has been loaded, the newest macro in
// the store. Does nothing unless the controller is idle.
func (ctl *Controller) Play() error {
	ctl.crit.Lock()
	defer ctl.crit.Unlock()

	if ctl.shutdown {
		return nil
	}

	switch ctl.State() {
	case Recording:
		logger.Log(logger.Allow, "session", "stop recording before playing")
		return nil
	case Playing:
		return nil
	}

	fn, err := ctl.opts.Store.Resolve(ctl.loaded)
	if err != nil {
		if curated.Is(err, macro.NoMacro) {
			ctl.notify(notifications.NotifyNoMacro, ctl.opts.Store.String())
		}
		return curated.Errorf("session: %v", err)
	}

	log, err := macro.Load(fn)
	if err != nil {
		return curated.Errorf("session: %v", err)
	}

	if err := ctl.plb.Start(log, fn); err != nil {
		return curated.Errorf("session: %v", err)
	}

	ctl.playing = fn
	ctl.playID = ctl.journalBegin(history.Play, fn)
	ctl.notify(notifications.NotifyPlaybackStarted, fn)

	return nil
}

// StopPlaying ends playback. The segment boundary sequence is complete when
// the function returns. Does nothing if the controller is not playing.
func (ctl *Controller) StopPlaying() {
	// the lock must not be held because the boundary sequence runs before
	// Stop() returns
	ctl.plb.Stop()
}

// called by the playback when it ends for any reason
func (ctl *Controller) onFinish(res recorder.Result) {
	ctl.crit.Lock()
	id := ctl.playID
	ctl.playID = ""
	shutdown := ctl.shutdown
	ctl.crit.Unlock()

	outcome := "completed"
	switch {
	case res.Err != nil:
		outcome = "failed"
	case res.Stopped:
		outcome = "stopped"
	}
	ctl.journalEnd(id, "", res.Injected, outcome)
	ctl.notify(notifications.NotifyPlaybackEnded, res.String())

	if shutdown {
		return
	}

	ctl.boundary(res.Stopped)
	ctl.restart(res.Completed())
}

// chat command and optional kill. runs before every restart
func (ctl *Controller) boundary(stopped bool) {
	if err := ctl.opts.Chat.Send(context.Background(), ctl.inj); err != nil {
		logger.Logf(logger.Allow, "session", "%v", err)
	}

	if stopped && ctl.opts.KillOnStop != "" {
		if err := ctl.opts.Killer(ctl.opts.KillOnStop); err != nil {
			logger.Logf(logger.Allow, "session", "kill %s: %v", ctl.opts.KillOnStop, err)
		}
	}
}

// restart the session. replay is true if autoplay should continue after a
// graceful restart
func (ctl *Controller) restart(replay bool) {
	if ctl.opts.ForceRestart && ctl.opts.Restarter != nil {
		ctl.notify(notifications.NotifyRestart, "replacing process")
		err := ctl.opts.Restarter.Restart()
		if err == nil {
			return
		}
		logger.Logf(logger.Allow, "session", "%v", err)
	}

	ctl.notify(notifications.NotifyRestart, "graceful")

	if !ctl.opts.Autoplay {
		return
	}

	if !replay {
		logger.Log(logger.Allow, "session", "autoplay ended")
		ctl.end()
		return
	}

	if err := ctl.Play(); err != nil {
		logger.Logf(logger.Allow, "session", "autoplay: %v", err)
		ctl.end()
	}
}

// Shutdown ends the session. Recording is stopped and saved, and playback is
// stopped. The chat command is not sent and there is no restart.
func (ctl *Controller) Shutdown() {
	ctl.crit.Lock()
	if ctl.shutdown {
		ctl.crit.Unlock()
		return
	}
	ctl.shutdown = true
	ctl.crit.Unlock()

	saved, err := ctl.rec.Stop()
	if err != nil {
		logger.Logf(logger.Allow, "session", "%v", err)
	}
	if saved.Filename != "" {
		ctl.crit.Lock()
		ctl.journalEnd(ctl.recID, saved.Filename, saved.Events, "saved")
		ctl.recID = ""
		ctl.crit.Unlock()
		ctl.notify(notifications.NotifyRecordingSaved, saved.String())
	}

	ctl.plb.Stop()
	ctl.end()
}

func (ctl *Controller) String() string {
	s := ctl.State()
	ctl.crit.Lock()
	defer ctl.crit.Unlock()
	if s == Playing {
		return fmt.Sprintf("%s %s", s, ctl.playing)
	}
	if ctl.loaded != "" {
		return fmt.Sprintf("%s (loaded %s)", s, ctl.loaded)
	}
	return s.String()
}
