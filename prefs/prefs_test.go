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

package prefs_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/logger"
	"github.com/rawmacro/rawmacro/prefs"
	"github.com/rawmacro/rawmacro/test"
)

func TestBool(t *testing.T) {
	var v prefs.Bool
	test.ExpectEquality(t, v.Get().(bool), false)

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectEquality(t, v.String(), "true")
	test.ExpectSuccess(t, v.Set("FALSE"))
	test.ExpectEquality(t, v.Get().(bool), false)
	test.ExpectSuccess(t, v.Set(" True "))
	test.ExpectEquality(t, v.Get().(bool), true)
	test.ExpectFailure(t, v.Set(10))
}

func TestInt(t *testing.T) {
	var v prefs.Int
	test.ExpectSuccess(t, v.Set(130))
	test.ExpectEquality(t, v.Get().(int), 130)
	test.ExpectSuccess(t, v.Set("60"))
	test.ExpectEquality(t, v.Get().(int), 60)
	test.ExpectSuccess(t, v.Set(json.Number("1800")))
	test.ExpectEquality(t, v.Get().(int), 1800)
	test.ExpectSuccess(t, v.Set(float64(20)))
	test.ExpectEquality(t, v.Get().(int), 20)

	test.ExpectFailure(t, v.Set(20.5))
	test.ExpectFailure(t, v.Set("twenty"))
	test.ExpectFailure(t, v.Set(json.Number("2.5")))
	test.ExpectEquality(t, v.Get().(int), 20)
}

func TestFloat(t *testing.T) {
	var v prefs.Float
	test.ExpectSuccess(t, v.Set(10.0))
	test.ExpectEquality(t, v.String(), "10")
	test.ExpectSuccess(t, v.Set("2.5"))
	test.ExpectEquality(t, v.Get().(float64), 2.5)
	test.ExpectSuccess(t, v.Set(4))
	test.ExpectEquality(t, v.Get().(float64), 4.0)
	test.ExpectSuccess(t, v.Set(json.Number("0.25")))
	test.ExpectEquality(t, v.Get().(float64), 0.25)
	test.ExpectFailure(t, v.Set(true))
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var post int

	v.SetHookPre(func(nv prefs.Value) error {
		if nv.(int) < 0 {
			return errors.New("negative")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		post = nv.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(5))
	test.ExpectEquality(t, post, 5)

	// pre hook prevents the change and the post hook is not called
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.Get().(int), 5)
	test.ExpectEquality(t, post, 5)

	// post hook is called even when value is unchanged
	post = 0
	test.ExpectSuccess(t, v.Set(5))
	test.ExpectEquality(t, post, 5)
}

func TestDiskRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs.json")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var b prefs.Bool
	var s prefs.String
	var i prefs.Int
	var f prefs.Float
	test.DemandSuccess(t, dsk.Add("bool", &b))
	test.DemandSuccess(t, dsk.Add("string", &s))
	test.DemandSuccess(t, dsk.Add("int", &i))
	test.DemandSuccess(t, dsk.Add("float", &f))
	test.ExpectFailure(t, dsk.Add("int", &i))

	err = dsk.Load()
	test.ExpectEquality(t, curated.Is(err, prefs.NoPrefsFile), true)

	test.DemandSuccess(t, b.Set(true))
	test.DemandSuccess(t, s.Set("F9"))
	test.DemandSuccess(t, i.Set(130))
	test.DemandSuccess(t, f.Set(10.0))
	test.DemandSuccess(t, dsk.Save())

	test.DemandSuccess(t, b.Reset())
	test.DemandSuccess(t, s.Reset())
	test.DemandSuccess(t, i.Reset())
	test.DemandSuccess(t, f.Reset())

	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectEquality(t, s.String(), "F9")
	test.ExpectEquality(t, i.Get().(int), 130)
	test.ExpectEquality(t, f.Get().(float64), 10.0)
}

func TestDiskPreservesUnknownKeys(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs.json")
	err := os.WriteFile(fn, []byte(`{"unknown": [1, 2, 3], "int": 7}`), 0o600)
	test.DemandSuccess(t, err)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var i prefs.Int
	test.DemandSuccess(t, dsk.Add("int", &i))
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, i.Get().(int), 7)

	test.DemandSuccess(t, i.Set(8))
	test.DemandSuccess(t, dsk.Save())

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	var raw map[string]any
	test.DemandSuccess(t, json.Unmarshal(data, &raw))
	test.ExpectEquality(t, raw["int"].(float64), 8.0)
	test.ExpectEquality(t, len(raw["unknown"].([]any)), 3)
}

func TestDiskInvalidFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs.json")
	err := os.WriteFile(fn, []byte(`{"int": `), 0o600)
	test.DemandSuccess(t, err)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var i prefs.Int
	test.DemandSuccess(t, dsk.Add("int", &i))
	err = dsk.Load()
	test.ExpectEquality(t, curated.Is(err, prefs.InvalidPrefsFile), true)

	// wrong type for key
	err = os.WriteFile(fn, []byte(`{"int": "abc"}`), 0o600)
	test.DemandSuccess(t, err)
	err = dsk.Load()
	test.ExpectEquality(t, curated.Is(err, prefs.InvalidPrefsFile), true)
}

func TestCommandLineStack(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs.json")
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var i prefs.Int
	var f prefs.Float
	test.DemandSuccess(t, dsk.Add("auto_reset_time", &i))
	test.DemandSuccess(t, dsk.Add("mouse_sensitivity", &f))
	test.DemandSuccess(t, i.Set(130))
	test.DemandSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("auto_reset_time::60; bogus; foo::bar")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 1)

	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, i.Get().(int), 60)

	// values are consumed when applied
	ok, _ := prefs.GetCommandLinePref("auto_reset_time")
	test.ExpectEquality(t, ok, false)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestCommandLineInvalidValue(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs.json")
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var i prefs.Int
	test.DemandSuccess(t, dsk.Add("auto_reset_time", &i))
	test.DemandSuccess(t, i.Set(130))
	test.DemandSuccess(t, dsk.Save())

	logger.Clear()
	prefs.PushCommandLineStack("auto_reset_time::soon")
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// the value is rejected and the rejection is logged
	test.ExpectEquality(t, i.Get().(int), 130)

	out := &test.CompareWriter{}
	logger.Write(out)
	test.ExpectSuccess(t, strings.Contains(out.String(), "command line: auto_reset_time"))
}
