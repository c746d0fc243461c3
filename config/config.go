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

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/logger"
	"github.com/rawmacro/rawmacro/prefs"
)

// DefaultFilename is the name of the config file in the working directory.
const DefaultFilename = "Config.json"

// default values
const (
	DefaultRecordStartHotkey  = "F9"
	DefaultRecordStopHotkey   = "F10"
	DefaultPlayStartHotkey    = "F11"
	DefaultPlayStopHotkey     = "F12"
	DefaultAutoResetTime      = 130
	DefaultMouseSensitivity   = 10.0
	DefaultMacroBase          = "mineracao"
	DefaultChatOpenKey        = "t"
	DefaultChatCommand        = "/mina reset"
	DefaultSideActionInterval = 10
	DefaultSideActionTurn     = 1800
	DefaultSideActionKey      = "q"
	DefaultHoldButton         = "left"
	DefaultForceRestart       = false
	DefaultKillOnStop         = ""
)

// Config holds every recognised configuration value.
type Config struct {
	dsk *prefs.Disk

	RecordStartHotkey prefs.String
	RecordStopHotkey  prefs.String
	PlayStartHotkey   prefs.String
	PlayStopHotkey    prefs.String

	// length of a recording segment in seconds
	AutoResetTime    prefs.Int
	MouseSensitivity prefs.Float

	MacroBase   prefs.String
	ChatOpenKey prefs.String
	ChatCommand prefs.String

	// the side action is a horizontal mouse movement of SideActionTurn
	// followed by a tap of SideActionKey, every SideActionInterval seconds
	SideActionInterval prefs.Int
	SideActionTurn     prefs.Int
	SideActionKey      prefs.String

	HoldButton   prefs.String
	ForceRestart prefs.Bool
	KillOnStop   prefs.String
}

// environment variables that override values read from the file. nil fields
// are not set in the environment
type overrides struct {
	AutoResetTime    *int     `env:"AUTO_RESET_TIME"`
	MouseSensitivity *float64 `env:"MOUSE_SENSITIVITY"`
	ForceRestart     *bool    `env:"FORCE_RESTART"`
	MacroBase        *string  `env:"MACRO_BASE"`
}

// prefix for all environment variables
const envPrefix = "RAWMACRO_"

// NewConfig is the preferred method of initialisation for the Config type.
// Values are set to their defaults but the file is not read.
func NewConfig(filename string) (*Config, error) {
	cfg := &Config{}

	var err error
	cfg.dsk, err = prefs.NewDisk(filename)
	if err != nil {
		return nil, curated.Errorf("config: %v", err)
	}

	keyName := func(v prefs.Value) error {
		if _, ok := keymap.Lookup(v.(string)); !ok {
			return fmt.Errorf("unknown key name (%s)", v)
		}
		return nil
	}
	cfg.RecordStartHotkey.SetHookPre(keyName)
	cfg.RecordStopHotkey.SetHookPre(keyName)
	cfg.PlayStartHotkey.SetHookPre(keyName)
	cfg.PlayStopHotkey.SetHookPre(keyName)
	cfg.ChatOpenKey.SetHookPre(keyName)
	cfg.SideActionKey.SetHookPre(keyName)

	positive := func(v prefs.Value) error {
		if v.(int) <= 0 {
			return fmt.Errorf("value must be greater than zero (%d)", v)
		}
		return nil
	}
	cfg.AutoResetTime.SetHookPre(positive)
	cfg.SideActionInterval.SetHookPre(positive)

	cfg.MouseSensitivity.SetHookPre(func(v prefs.Value) error {
		if v.(float64) <= 0 {
			return fmt.Errorf("value must be positive (%v)", v)
		}
		return nil
	})

	cfg.MacroBase.SetHookPre(func(v prefs.Value) error {
		if v.(string) == "" {
			return fmt.Errorf("macro base cannot be empty")
		}
		return nil
	})

	cfg.HoldButton.SetHookPre(func(v prefs.Value) error {
		switch v.(string) {
		case "left", "right", "middle", "none":
			return nil
		}
		return fmt.Errorf("unknown button (%s)", v)
	})

	entries := []struct {
		key string
		p   prefs.Pref
	}{
		{"record_start_hotkey", &cfg.RecordStartHotkey},
		{"record_stop_hotkey", &cfg.RecordStopHotkey},
		{"play_start_hotkey", &cfg.PlayStartHotkey},
		{"play_stop_hotkey", &cfg.PlayStopHotkey},
		{"auto_reset_time", &cfg.AutoResetTime},
		{"mouse_sensitivity", &cfg.MouseSensitivity},
		{"macro_base", &cfg.MacroBase},
		{"chat_open_key", &cfg.ChatOpenKey},
		{"chat_command", &cfg.ChatCommand},
		{"side_action_interval", &cfg.SideActionInterval},
		{"side_action_turn", &cfg.SideActionTurn},
		{"side_action_key", &cfg.SideActionKey},
		{"hold_button", &cfg.HoldButton},
		{"force_restart", &cfg.ForceRestart},
		{"kill_on_stop", &cfg.KillOnStop},
	}
	for _, e := range entries {
		if err := cfg.dsk.Add(e.key, e.p); err != nil {
			return nil, curated.Errorf("config: %v", err)
		}
	}

	if err := cfg.SetDefaults(); err != nil {
		return nil, curated.Errorf("config: %v", err)
	}

	return cfg, nil
}

// SetDefaults reverts all values to their default.
func (cfg *Config) SetDefaults() error {
	set := []struct {
		p prefs.Pref
		v prefs.Value
	}{
		{&cfg.RecordStartHotkey, DefaultRecordStartHotkey},
		{&cfg.RecordStopHotkey, DefaultRecordStopHotkey},
		{&cfg.PlayStartHotkey, DefaultPlayStartHotkey},
		{&cfg.PlayStopHotkey, DefaultPlayStopHotkey},
		{&cfg.AutoResetTime, DefaultAutoResetTime},
		{&cfg.MouseSensitivity, DefaultMouseSensitivity},
		{&cfg.MacroBase, DefaultMacroBase},
		{&cfg.ChatOpenKey, DefaultChatOpenKey},
		{&cfg.ChatCommand, DefaultChatCommand},
		{&cfg.SideActionInterval, DefaultSideActionInterval},
		{&cfg.SideActionTurn, DefaultSideActionTurn},
		{&cfg.SideActionKey, DefaultSideActionKey},
		{&cfg.HoldButton, DefaultHoldButton},
		{&cfg.ForceRestart, DefaultForceRestart},
		{&cfg.KillOnStop, DefaultKillOnStop},
	}
	for _, s := range set {
		if err := s.p.Set(s.v); err != nil {
			return err
		}
	}
	return nil
}

// Filename returns the name of the config file.
func (cfg *Config) Filename() string {
	return cfg.dsk.Path()
}

// Load values from the config file. If the file does not exist it is created
// with the current values. If the file cannot be decoded the default values
// are used and the problem is logged. Environment overrides are applied in
// all cases.
//
// Errors are only returned if a new file could not be created.
func (cfg *Config) Load() error {
	err := cfg.dsk.Load()
	if err != nil {
		switch {
		case curated.Is(err, prefs.NoPrefsFile):
			if err := cfg.dsk.Save(); err != nil {
				return curated.Errorf("config: %v", err)
			}
			logger.Logf(logger.Allow, "config", "%s created with default values", cfg.dsk.Path())
		default:
			logger.Logf(logger.Allow, "config", "%v", err)
			logger.Logf(logger.Allow, "config", "using default values")
			if err := cfg.SetDefaults(); err != nil {
				return curated.Errorf("config: %v", err)
			}
		}
	} else {
		logger.Logf(logger.Allow, "config", "%s loaded", cfg.dsk.Path())
	}

	cfg.applyEnvironment()

	return nil
}

// Save current values to the config file.
func (cfg *Config) Save() error {
	if err := cfg.dsk.Save(); err != nil {
		return curated.Errorf("config: %v", err)
	}
	return nil
}

func (cfg *Config) applyEnvironment() {
	var o overrides
	err := env.ParseWithOptions(&o, env.Options{Prefix: envPrefix})
	if err != nil {
		logger.Logf(logger.Allow, "config", "environment: %v", err)
		return
	}

	apply := func(name string, p prefs.Pref, v prefs.Value) {
		if err := p.Set(v); err != nil {
			logger.Logf(logger.Allow, "config", "%s%s: %v", envPrefix, name, err)
			return
		}
		logger.Logf(logger.Allow, "config", "%s%s overrides file value", envPrefix, name)
	}

	if o.AutoResetTime != nil {
		apply("AUTO_RESET_TIME", &cfg.AutoResetTime, *o.AutoResetTime)
	}
	if o.MouseSensitivity != nil {
		apply("MOUSE_SENSITIVITY", &cfg.MouseSensitivity, *o.MouseSensitivity)
	}
	if o.ForceRestart != nil {
		apply("FORCE_RESTART", &cfg.ForceRestart, *o.ForceRestart)
	}
	if o.MacroBase != nil {
		apply("MACRO_BASE", &cfg.MacroBase, *o.MacroBase)
	}
}

// Load is a convenience function that creates a Config and loads the file.
func Load(filename string) (*Config, error) {
	cfg, err := NewConfig(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SegmentDuration is the AutoResetTime value as a time.Duration.
func (cfg *Config) SegmentDuration() time.Duration {
	return time.Duration(cfg.AutoResetTime.Get().(int)) * time.Second
}

// SideActionPeriod is the SideActionInterval value as a time.Duration.
func (cfg *Config) SideActionPeriod() time.Duration {
	return time.Duration(cfg.SideActionInterval.Get().(int)) * time.Second
}

func (cfg *Config) String() string {
	return fmt.Sprintf("segment=%v sensitivity=%s base=%s force_restart=%s",
		cfg.SegmentDuration(), cfg.MouseSensitivity.String(), cfg.MacroBase.String(), cfg.ForceRestart.String())
}
