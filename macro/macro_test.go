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

package macro_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/macro"
	"github.com/rawmacro/rawmacro/test"
)

// a file as written by the original python tool
const pythonFile = `[
  {
    "type": "mouse",
    "dx": 5,
    "dy": -3,
    "time": 1712345678.123456
  },
  {
    "type": "key",
    "scan_code": 17,
    "event_type": "down",
    "time": 1712345678.5
  },
  {
    "type": "key",
    "scan_code": 17,
    "event_type": "up",
    "time": 1712345679.25
  }
]`

func TestReadCompatible(t *testing.T) {
	l, err := macro.Read(strings.NewReader(pythonFile))
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(l), 3)

	test.ExpectEquality(t, l[0].Kind, macro.Mouse)
	test.ExpectEquality(t, l[0].DX, 5)
	test.ExpectEquality(t, l[0].DY, -3)
	test.ExpectEquality(t, l[0].Time.UnixMicro(), int64(1712345678123456))

	test.ExpectEquality(t, l[1].Kind, macro.Key)
	test.ExpectEquality(t, l[1].ScanCode, 17)
	test.ExpectEquality(t, l[1].Edge, macro.Down)
	test.ExpectEquality(t, l[2].Edge, macro.Up)

	test.ExpectEquality(t, l.Duration(), 1126544*time.Microsecond)

	mouse, key := l.Count()
	test.ExpectEquality(t, mouse, 1)
	test.ExpectEquality(t, key, 2)
}

func TestWriteRead(t *testing.T) {
	start := time.UnixMicro(1712345678000000)
	l := macro.Log{
		{Kind: macro.Mouse, DX: 0, DY: 7, Time: start},
		{Kind: macro.Key, ScanCode: 30, Edge: macro.Down, Time: start.Add(10 * time.Millisecond)},
	}

	var b bytes.Buffer
	test.DemandSuccess(t, macro.Write(&b, l))

	// mouse events with zero delta still have the field
	test.ExpectEquality(t, strings.Contains(b.String(), `"dx": 0`), true)
	test.ExpectEquality(t, strings.Contains(b.String(), `"event_type": "down"`), true)
	test.ExpectEquality(t, strings.Contains(b.String(), "\n  {\n    \"type\""), true)

	r, err := macro.Read(&b)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(r), 2)
	test.ExpectEquality(t, r[0].DY, 7)
	test.ExpectEquality(t, r[0].Time.Equal(start), true)
	test.ExpectEquality(t, r[1].ScanCode, 30)
	test.ExpectEquality(t, r[1].Time.Sub(r[0].Time), 10*time.Millisecond)
}

func TestWriteEmpty(t *testing.T) {
	var b bytes.Buffer
	test.DemandSuccess(t, macro.Write(&b, nil))
	test.ExpectEquality(t, b.String(), "[]\n")

	l, err := macro.Read(&b)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(l), 0)
}

func TestReadRejects(t *testing.T) {
	for _, s := range []string{
		`[{"type": "wheel", "time": 1}]`,
		`[{"type": "key", "scan_code": 1, "event_type": "hold", "time": 1}]`,
		`[{"type": "key", "event_type": "down", "time": 1}]`,
		`[{"type": "mouse", "dx": 1, "dy": 1}]`,
		`{"type": "mouse"}`,
		`[`,
	} {
		_, err := macro.Read(strings.NewReader(s))
		test.ExpectFailure(t, err)
	}
}

func TestStoreVersions(t *testing.T) {
	dir := t.TempDir()
	st, err := macro.NewStore(dir, "mineracao")
	test.DemandSuccess(t, err)

	_, err = st.Latest()
	test.ExpectEquality(t, curated.Is(err, macro.NoMacro), true)

	for i := 1; i <= 3; i++ {
		fn, err := st.Save(macro.Log{})
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, filepath.Base(fn), filepath.Base(st.Filename(i)))
	}

	v, err := st.Versions()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(v), 3)
	test.ExpectEquality(t, v[2], 3)
}

func TestStoreGap(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"mineracao1.json", "mineracao3.json", "mineracaoX.json", "mineracao.json", "other7.json", "mineracao9.txt"} {
		test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, n), []byte("[]"), 0o644))
	}

	st, err := macro.NewStore(dir, "mineracao")
	test.DemandSuccess(t, err)

	next, err := st.Next()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, next, 4)

	latest, err := st.Latest()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, filepath.Base(latest), "mineracao3.json")

	fn, err := st.Save(macro.Log{})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, filepath.Base(fn), "mineracao4.json")
}

func TestStoreLeadingZeros(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"mineracao2.json", "mineracao007.json"} {
		test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, n), []byte("[]"), 0o644))
	}

	st, err := macro.NewStore(dir, "mineracao")
	test.DemandSuccess(t, err)

	// the name of the file on disk is returned
	latest, err := st.Latest()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, filepath.Base(latest), "mineracao007.json")

	_, err = macro.Load(latest)
	test.ExpectSuccess(t, err)

	next, err := st.Next()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, next, 8)
}

func TestStoreFailedSave(t *testing.T) {
	dir := t.TempDir()
	st, err := macro.NewStore(dir, "mineracao")
	test.DemandSuccess(t, err)

	_, err = st.Save(macro.Log{{Kind: macro.Kind("wheel"), Time: time.Now()}})
	test.ExpectFailure(t, err)

	// the incomplete file has been removed
	_, err = os.Stat(st.Filename(1))
	test.ExpectSuccess(t, os.IsNotExist(err))

	_, err = st.Latest()
	test.ExpectSuccess(t, curated.Is(err, macro.NoMacro))
}

func TestStoreResolve(t *testing.T) {
	dir := t.TempDir()
	st, err := macro.NewStore(dir, "mineracao")
	test.DemandSuccess(t, err)

	fn, err := st.Resolve("")
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, fn, "")

	fn, err = st.Resolve("chosen.json")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fn, "chosen.json")

	saved, err := st.Save(macro.Log{{Kind: macro.Mouse, DX: 1, Time: time.Now()}})
	test.DemandSuccess(t, err)
	fn, err = st.Resolve("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fn, saved)

	l, err := macro.Load(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(l), 1)
}

func TestNewStore(t *testing.T) {
	_, err := macro.NewStore(t.TempDir(), "")
	test.ExpectFailure(t, err)
	_, err = macro.NewStore(t.TempDir(), "a/b")
	test.ExpectFailure(t, err)
}
