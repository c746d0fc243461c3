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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rawmacro/rawmacro/chat"
	"github.com/rawmacro/rawmacro/config"
	"github.com/rawmacro/rawmacro/console"
	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/history"
	"github.com/rawmacro/rawmacro/hotkey"
	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/logger"
	"github.com/rawmacro/rawmacro/macro"
	"github.com/rawmacro/rawmacro/modalflag"
	"github.com/rawmacro/rawmacro/notifications"
	"github.com/rawmacro/rawmacro/paths"
	"github.com/rawmacro/rawmacro/prefs"
	"github.com/rawmacro/rawmacro/recorder"
	"github.com/rawmacro/rawmacro/restart"
	"github.com/rawmacro/rawmacro/session"
	"github.com/rawmacro/rawmacro/statsview"
	"github.com/rawmacro/rawmacro/userinput"
	"github.com/rawmacro/rawmacro/userinput/dryrun"
	"github.com/rawmacro/rawmacro/userinput/evdev"
	"github.com/rawmacro/rawmacro/version"
)

func main() {
	os.Exit(launch(os.Args[1:]))
}

// launch the program with the command line arguments. returns the exit
// value
func launch(args []string) int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "PLAY", "HISTORY", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "PLAY":
		err = play(md)

	case "HISTORY":
		err = listHistory(md)

	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// flags shared by the RUN and PLAY modes
type common struct {
	config    *string
	dir       *string
	dryrun    *bool
	log       *bool
	prefs     *string
	statsview *bool
}

func addCommon(md *modalflag.Modes) common {
	c := common{
		config: md.AddString("config", config.DefaultFilename, "config file"),
		dir:    md.AddString("dir", ".", "directory for macro files"),
		dryrun: md.AddBool("dryrun", false, "log injected input instead of sending it"),
		log:    md.AddBool("log", false, "echo debugging log to stdout"),
		prefs:  md.AddString("prefs", "", "override config values. eg. \"mouse_sensitivity::5; hold_button::none\""),
	}
	if statsview.Available() {
		c.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return c
}

// apply the common flags and load the config file
func (c common) apply() (*config.Config, error) {
	if *c.log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if c.statsview != nil && *c.statsview {
		statsview.Launch(os.Stdout)
	}

	prefs.PushCommandLineStack(*c.prefs)
	cfg, err := config.Load(*c.config)
	if err != nil {
		return nil, err
	}
	if unused := prefs.PopCommandLineStack(); unused != "" {
		fmt.Printf("* unused prefs: %s\n", unused)
	}

	return cfg, nil
}

func (c common) injector() (userinput.Injector, error) {
	if *c.dryrun {
		return dryrun.NewInjector(), nil
	}
	inj, err := newInjector()
	if err != nil {
		return nil, curated.Errorf("%v (use -dryrun to run without injecting input)", err)
	}
	return inj, nil
}

// sources for recording and for hotkeys. if devices is empty then the input
// devices are detected
func sources(devices string) (userinput.Source, userinput.Source) {
	var keyboards, mice []string

	if devices != "" {
		for _, d := range strings.Split(devices, ",") {
			if d = strings.TrimSpace(d); d != "" {
				keyboards = append(keyboards, d)
			}
		}
	} else {
		var err error
		keyboards, mice, err = evdev.Detect()
		if err != nil {
			logger.Logf(logger.Allow, "rawmacro", "%v", err)
		}
	}

	if len(keyboards) == 0 && len(mice) == 0 {
		return userinput.Unavailable("input capture"), userinput.Unavailable("hotkeys")
	}

	var keys userinput.Source = userinput.Unavailable("hotkeys")
	var capture []userinput.Source
	if len(keyboards) > 0 {
		keys = evdev.NewSource(keyboards...)
		capture = append(capture, evdev.NewSource(keyboards...))
	}
	if len(mice) > 0 {
		capture = append(capture, evdev.NewSource(mice...))
	}

	return userinput.Multi(capture...), keys
}

func playbackOptions(cfg *config.Config) (recorder.Periodic, userinput.Button, error) {
	hold, err := userinput.ParseButton(cfg.HoldButton.String())
	if err != nil {
		return recorder.Periodic{}, hold, err
	}

	periodic := recorder.Periodic{
		Interval: cfg.SideActionPeriod(),
		Turn:     cfg.SideActionTurn.Get().(int),
		Key:      keymap.MustLookup(cfg.SideActionKey.String()),
	}

	return periodic, hold, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	load := md.AddString("load", "", "macro file to play instead of the newest")
	autoplay := md.AddBool("autoplay", false, "play on startup without the console")
	nohistory := md.AddBool("nohistory", false, "do not record sessions in the history database")
	devices := md.AddString("devices", "", "comma separated list of input devices")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	cfg, err := c.apply()
	if err != nil {
		return err
	}
	logger.Logf(logger.Allow, "rawmacro", "%s", cfg)

	store, err := macro.NewStore(*c.dir, cfg.MacroBase.String())
	if err != nil {
		return err
	}

	inj, err := c.injector()
	if err != nil {
		return err
	}
	defer inj.Close()

	periodic, hold, err := playbackOptions(cfg)
	if err != nil {
		return err
	}

	recSrc, keySrc := sources(*devices)

	var jnl session.Journal
	if !*nohistory {
		pth, err := paths.ResourcePath("", history.DefaultFilename)
		if err != nil {
			return err
		}
		h, err := history.Open(pth)
		if err != nil {
			// the history is not essential
			fmt.Printf("* history unavailable: %v\n", err)
		} else {
			defer h.Close()
			jnl = h
		}
	}

	var con *console.Console

	dsp := hotkey.NewDispatcher()

	ctl, err := session.NewController(session.Options{
		Store:       store,
		Source:      recSrc,
		Injector:    inj,
		Segment:     cfg.SegmentDuration(),
		Exclude:     dsp.Bound,
		Sensitivity: cfg.MouseSensitivity.Get().(float64),
		Periodic:    periodic,
		Hold:        hold,
		Chat: chat.Command{
			OpenKey: cfg.ChatOpenKey.String(),
			Text:    cfg.ChatCommand.String(),
		},
		ForceRestart: cfg.ForceRestart.Get().(bool),
		Restarter: restart.Exec{
			Cleanup: func() {
				con.Release()
				inj.Close()
			},
		},
		KillOnStop: cfg.KillOnStop.String(),
		Autoplay:   *autoplay,
		Journal:    jnl,
		Notify: notifications.NotifyFunc(func(notice notifications.Notice, detail string) {
			con.Notify(notice, detail)
		}),
	})
	if err != nil {
		return err
	}
	con = console.NewConsole(os.Stdin, os.Stdout, ctl)

	report := func(err error) {
		if err != nil {
			con.Printf("* %v\n", err)
		}
	}

	bindings := []struct {
		name   string
		help   string
		action func()
	}{
		{cfg.RecordStartHotkey.String(), "start recording", func() { report(ctl.StartRecording()) }},
		{cfg.RecordStopHotkey.String(), "stop recording", func() { report(ctl.StopRecording()) }},
		{cfg.PlayStartHotkey.String(), "play", func() { report(ctl.Play()) }},
		{cfg.PlayStopHotkey.String(), "stop playing", ctl.StopPlaying},
	}

	var help strings.Builder
	help.WriteString("hotkeys:\n")
	for _, b := range bindings {
		if err := dsp.Bind(b.name, b.action); err != nil {
			return err
		}
		fmt.Fprintf(&help, "  %-4s %s\n", b.name, b.help)
	}
	con.Help = help.String()

	if *load != "" {
		if err := ctl.Load(*load); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ctrl-c and termination end the session
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(intChan)
	go func() {
		select {
		case <-intChan:
			fmt.Print("\r")
			cancel()
		case <-ctx.Done():
		}
	}()

	go func() {
		if err := dsp.Run(ctx, keySrc); err != nil {
			con.Printf("* hotkeys unavailable: %v\n", err)
		}
	}()

	if *autoplay {
		if err := ctl.Play(); err != nil {
			ctl.Shutdown()
			return err
		}
	} else {
		go func() {
			if err := con.Run(ctx); err != nil {
				report(err)
			}
		}()
	}

	select {
	case <-ctx.Done():
	case <-ctl.Done():
	}

	ctl.Shutdown()
	cancel()
	con.Release()

	return nil
}

// play a single macro without the session controller. there is no chat
// command and no restart
func play(md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg, err := c.apply()
	if err != nil {
		return err
	}

	var fn string
	switch len(md.RemainingArgs()) {
	case 0:
		store, err := macro.NewStore(*c.dir, cfg.MacroBase.String())
		if err != nil {
			return err
		}
		fn, err = store.Latest()
		if err != nil {
			return err
		}
	case 1:
		fn = md.GetArg(0)
		if !filepath.IsAbs(fn) && *c.dir != "." {
			if _, err := os.Stat(fn); err != nil {
				fn = filepath.Join(*c.dir, fn)
			}
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	log, err := macro.Load(fn)
	if err != nil {
		return err
	}

	inj, err := c.injector()
	if err != nil {
		return err
	}
	defer inj.Close()

	periodic, hold, err := playbackOptions(cfg)
	if err != nil {
		return err
	}

	finished := make(chan recorder.Result, 1)

	plb, err := recorder.NewPlayback(recorder.PlaybackOptions{
		Injector:    inj,
		Sensitivity: cfg.MouseSensitivity.Get().(float64),
		Periodic:    periodic,
		Hold:        hold,
		OnFinish: func(res recorder.Result) {
			finished <- res
		},
	})
	if err != nil {
		return err
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(intChan)

	fmt.Printf("playing %s (%d events, %.1fs)\n", fn, len(log), log.Duration().Seconds())
	if err := plb.Start(log, fn); err != nil {
		return err
	}

	var res recorder.Result
	select {
	case res = <-finished:
	case <-intChan:
		fmt.Print("\r")
		plb.Stop()
		res = <-finished
	}

	fmt.Println(res)
	return res.Err
}

func listHistory(md *modalflag.Modes) error {
	md.NewMode()

	n := md.AddInt("n", 20, "number of sessions to list")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	pth, err := paths.ResourcePath("", history.DefaultFilename)
	if err != nil {
		return err
	}

	jnl, err := history.Open(pth)
	if err != nil {
		return err
	}
	defer jnl.Close()

	entries, err := jnl.Recent(context.Background(), *n)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("no sessions recorded")
		return nil
	}
	for _, e := range entries {
		fmt.Println(e)
	}

	return nil
}
