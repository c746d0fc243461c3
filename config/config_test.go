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

package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rawmacro/rawmacro/config"
	"github.com/rawmacro/rawmacro/test"
)

func readRaw(t *testing.T, fn string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	var raw map[string]any
	test.DemandSuccess(t, json.Unmarshal(data, &raw))
	return raw
}

func TestAbsentFileWritesDefaults(t *testing.T) {
	fn := filepath.Join(t.TempDir(), config.DefaultFilename)

	cfg, err := config.Load(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.AutoResetTime.Get().(int), 130)
	test.ExpectEquality(t, cfg.SegmentDuration(), 130*time.Second)
	test.ExpectEquality(t, cfg.MouseSensitivity.Get().(float64), 10.0)
	test.ExpectEquality(t, cfg.RecordStartHotkey.String(), "F9")
	test.ExpectEquality(t, cfg.PlayStopHotkey.String(), "F12")
	test.ExpectEquality(t, cfg.MacroBase.String(), "mineracao")

	raw := readRaw(t, fn)
	test.ExpectEquality(t, raw["auto_reset_time"].(float64), 130.0)
	test.ExpectEquality(t, raw["mouse_sensitivity"].(float64), 10.0)
	test.ExpectEquality(t, raw["record_start_hotkey"].(string), "F9")
	test.ExpectEquality(t, raw["record_stop_hotkey"].(string), "F10")
	test.ExpectEquality(t, raw["play_start_hotkey"].(string), "F11")
	test.ExpectEquality(t, raw["play_stop_hotkey"].(string), "F12")
}

func TestExistingFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), config.DefaultFilename)
	err := os.WriteFile(fn, []byte(`{"auto_reset_time": 60, "mouse_sensitivity": 2.5, "editor": "notepad"}`), 0o600)
	test.DemandSuccess(t, err)

	cfg, err := config.Load(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.AutoResetTime.Get().(int), 60)
	test.ExpectEquality(t, cfg.MouseSensitivity.Get().(float64), 2.5)

	// missing keys keep their defaults
	test.ExpectEquality(t, cfg.ChatCommand.String(), "/mina reset")

	// unknown keys survive a save
	test.DemandSuccess(t, cfg.Save())
	raw := readRaw(t, fn)
	test.ExpectEquality(t, raw["editor"].(string), "notepad")
	test.ExpectEquality(t, raw["auto_reset_time"].(float64), 60.0)
}

func TestCorruptFileUsesDefaults(t *testing.T) {
	fn := filepath.Join(t.TempDir(), config.DefaultFilename)
	corrupt := []byte(`{"auto_reset_time": 60,`)
	test.DemandSuccess(t, os.WriteFile(fn, corrupt, 0o600))

	cfg, err := config.Load(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.AutoResetTime.Get().(int), 130)

	// file is left as it was
	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), string(corrupt))
}

func TestInvalidValueUsesDefaults(t *testing.T) {
	fn := filepath.Join(t.TempDir(), config.DefaultFilename)
	err := os.WriteFile(fn, []byte(`{"auto_reset_time": 60, "record_start_hotkey": "nokey"}`), 0o600)
	test.DemandSuccess(t, err)

	cfg, err := config.Load(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.AutoResetTime.Get().(int), 130)
	test.ExpectEquality(t, cfg.RecordStartHotkey.String(), "F9")
}

func TestValidation(t *testing.T) {
	cfg, err := config.NewConfig(filepath.Join(t.TempDir(), config.DefaultFilename))
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, cfg.AutoResetTime.Set(0))
	test.ExpectFailure(t, cfg.MouseSensitivity.Set(-1.0))
	test.ExpectFailure(t, cfg.MouseSensitivity.Set(0.0))
	test.ExpectFailure(t, cfg.HoldButton.Set("thumb"))
	test.ExpectFailure(t, cfg.MacroBase.Set(""))
	test.ExpectSuccess(t, cfg.HoldButton.Set("none"))
	test.ExpectSuccess(t, cfg.PlayStartHotkey.Set("f5"))
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("RAWMACRO_AUTO_RESET_TIME", "45")
	t.Setenv("RAWMACRO_MOUSE_SENSITIVITY", "1.5")
	t.Setenv("RAWMACRO_FORCE_RESTART", "true")
	t.Setenv("RAWMACRO_MACRO_BASE", "farm")

	fn := filepath.Join(t.TempDir(), config.DefaultFilename)
	cfg, err := config.Load(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.AutoResetTime.Get().(int), 45)
	test.ExpectEquality(t, cfg.MouseSensitivity.Get().(float64), 1.5)
	test.ExpectEquality(t, cfg.ForceRestart.Get().(bool), true)
	test.ExpectEquality(t, cfg.MacroBase.String(), "farm")

	// the file written on first load has the default values
	raw := readRaw(t, fn)
	test.ExpectEquality(t, raw["auto_reset_time"].(float64), 130.0)
}

func TestInvalidEnvironmentIgnored(t *testing.T) {
	t.Setenv("RAWMACRO_AUTO_RESET_TIME", "-5")

	cfg, err := config.Load(filepath.Join(t.TempDir(), config.DefaultFilename))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.AutoResetTime.Get().(int), 130)
}
