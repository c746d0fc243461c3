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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rawmacro/rawmacro/macro"
	"github.com/rawmacro/rawmacro/test"
	"github.com/rawmacro/rawmacro/userinput"
)

func TestVersionMode(t *testing.T) {
	test.ExpectEquality(t, launch([]string{"VERSION"}), 0)
	test.ExpectEquality(t, launch([]string{"version"}), 0)
}

func TestHelp(t *testing.T) {
	test.ExpectEquality(t, launch([]string{"-help"}), 0)
	test.ExpectEquality(t, launch([]string{"HISTORY", "-help"}), 0)
}

func TestBadFlag(t *testing.T) {
	// unknown flags at the top level are passed to the default mode
	test.ExpectEquality(t, launch([]string{"-nosuchflag"}), 20)
	test.ExpectEquality(t, launch([]string{"PLAY", "-nosuchflag"}), 20)
}

func TestPlayMode(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "Config.json")

	args := []string{
		"PLAY", "-dryrun",
		"-config", cfg,
		"-dir", dir,
		"-prefs", "hold_button::none",
	}

	// no macro in the directory
	test.ExpectEquality(t, launch(args), 20)

	// the config file is created on first use
	_, err := os.Stat(cfg)
	test.ExpectSuccess(t, err)

	st, err := macro.NewStore(dir, "mineracao")
	test.DemandSuccess(t, err)
	_, err = st.Save(macro.Log{
		{Kind: macro.Mouse, DX: 1, DY: 1, Time: time.Unix(1712345678, 0)},
		{Kind: macro.Key, ScanCode: 30, Edge: macro.Down, Time: time.Unix(1712345678, 10000000)},
		{Kind: macro.Key, ScanCode: 30, Edge: macro.Up, Time: time.Unix(1712345678, 20000000)},
	})
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, launch(args), 0)

	// named file
	test.ExpectEquality(t, launch(append(args, "mineracao1.json")), 0)
	test.ExpectEquality(t, launch(append(args, "mineracao9.json")), 20)
}

func TestRunModeArguments(t *testing.T) {
	test.ExpectEquality(t, launch([]string{"RUN", "unexpected"}), 20)
}

func TestSources(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "event-kbd")

	capture, keys := sources(missing + ", ")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the capture source merges the device sources
	err := capture.Subscribe(ctx, make(chan userinput.Input))
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(err.Error(), "userinput: "))

	err = keys.Subscribe(ctx, make(chan userinput.Input))
	test.ExpectFailure(t, err)
}
