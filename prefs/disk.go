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

package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/logger"
)

// Sentinel error returned by Disk.Load() when the file does not exist.
const NoPrefsFile = "prefs: no prefs file (%s)"

// Sentinel error returned by Disk.Load() when the file cannot be decoded.
const InvalidPrefsFile = "prefs: invalid prefs file (%s): %v"

// Disk represents preference values as stored on disk. The file is a single
// JSON object.
type Disk struct {
	path    string
	entries map[string]Pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf("prefs: no path for prefs file")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]Pref),
	}, nil
}

// Path returns the filename of the disk.
func (dsk *Disk) Path() string {
	return dsk.path
}

// Add preference value to the disk under the specified key.
func (dsk *Disk) Add(key string, p Pref) error {
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: duplicate key (%s)", key)
	}
	dsk.entries[key] = p
	return nil
}

// Keys returns the keys that have been added to the disk, in sorted order.
func (dsk *Disk) Keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// read prefs file and return the raw values for every key in the file. the
// bool return value is false if the file does not exist.
func (dsk *Disk) read() (map[string]json.RawMessage, bool, error) {
	data, err := os.ReadFile(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, curated.Errorf("prefs: %v", err)
	}

	raw := make(map[string]json.RawMessage)
	err = json.Unmarshal(data, &raw)
	if err != nil {
		return nil, true, curated.Errorf(InvalidPrefsFile, dsk.path, err)
	}

	return raw, true, nil
}

// Load values from disk. Keys in the file that have not been added to the
// disk are ignored. Values for keys that have been added but which are not
// in the file keep their current value.
//
// If the file does not exist then the NoPrefsFile error is returned. Command
// line values are applied in all cases.
func (dsk *Disk) Load() error {
	raw, exists, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		v, ok := raw[k]
		if !ok {
			continue
		}

		var val Value
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		if err := dec.Decode(&val); err != nil {
			return curated.Errorf(InvalidPrefsFile, dsk.path, err)
		}

		if err := p.Set(val); err != nil {
			return curated.Errorf(InvalidPrefsFile, dsk.path, fmt.Errorf("%s: %w", k, err))
		}
	}

	dsk.applyCommandLine()

	if !exists {
		return curated.Errorf(NoPrefsFile, dsk.path)
	}

	return nil
}

// apply any command line values for the keys on this disk
func (dsk *Disk) applyCommandLine() {
	for k, p := range dsk.entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				logger.Logf(logger.Allow, "prefs", "command line: %s: %v", k, err)
			}
		}
	}
}

// Save current values to disk. Keys in the existing file that have not been
// added to this disk are preserved. An existing file that cannot be decoded
// is replaced.
func (dsk *Disk) Save() error {
	raw, _, err := dsk.read()
	if err != nil && !curated.Is(err, InvalidPrefsFile) {
		return err
	}
	if raw == nil {
		raw = make(map[string]json.RawMessage)
	}

	for k, p := range dsk.entries {
		b, err := json.Marshal(p.Get())
		if err != nil {
			return curated.Errorf("prefs: %s: %v", k, err)
		}
		raw[k] = b
	}

	// map keys are sorted by the json package
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	data = append(data, '\n')

	// write to a temporary file in the same directory and rename it. a partial
	// write never replaces a good prefs file
	dir := filepath.Dir(dsk.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(dsk.path)+".*")
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return curated.Errorf("prefs: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	if err := os.Rename(tmp.Name(), dsk.path); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}
