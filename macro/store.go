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

package macro

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/logger"
)

// Sentinel error returned by Store.Latest() when the store contains no
// macro files.
const NoMacro = "macro: no macro found (%s)"

const extension = ".json"

// number of times Save() will try a new version number if another process
// creates the file first
const saveAttempts = 10

// Store is a directory of macro files with a common base name.
type Store struct {
	dir  string
	base string
}

// NewStore is the preferred method of initialisation for the Store type.
func NewStore(dir string, base string) (*Store, error) {
	if base == "" {
		return nil, curated.Errorf("macro: store must have a base name")
	}
	if strings.ContainsAny(base, `/\`) {
		return nil, curated.Errorf("macro: base name cannot contain a path separator (%s)", base)
	}
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir, base: base}, nil
}

func (st *Store) String() string {
	return filepath.Join(st.dir, st.base+"N"+extension)
}

// Filename returns the name of the file for a version number.
func (st *Store) Filename(version int) string {
	return filepath.Join(st.dir, fmt.Sprintf("%s%d%s", st.base, version, extension))
}

// version number of a file name in the store. returns false if the name does
// not match the base name or has no version number
func (st *Store) version(name string) (int, bool) {
	if !strings.HasPrefix(name, st.base) || !strings.HasSuffix(name, extension) {
		return 0, false
	}
	n := strings.TrimSuffix(strings.TrimPrefix(name, st.base), extension)
	if n == "" {
		return 0, false
	}
	for _, c := range n {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(n)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Versions returns the version numbers of the files in the store in
// ascending order.
func (st *Store) Versions() ([]int, error) {
	versions, _, err := st.list()
	return versions, err
}

// list the files in the store. returns the sorted version numbers and the
// directory entry name for each version. the name is not always the same as
// the result of Filename() because the number in a name can have leading
// zeros. if more than one name has the same version then the first in
// directory order is used
func (st *Store) list() ([]int, map[int]string, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, nil, curated.Errorf("macro: %v", err)
	}

	var versions []int
	names := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		v, ok := st.version(e.Name())
		if !ok {
			continue
		}
		if _, ok := names[v]; ok {
			continue
		}
		names[v] = e.Name()
		versions = append(versions, v)
	}
	sort.Ints(versions)

	return versions, names, nil
}

// Next returns the version number that will be used by the next call to
// Save().
func (st *Store) Next() (int, error) {
	versions, err := st.Versions()
	if err != nil {
		return 0, err
	}
	if len(versions) == 0 {
		return 1, nil
	}
	return versions[len(versions)-1] + 1, nil
}

// Save log to a new file in the store. Returns the name of the file.
func (st *Store) Save(l Log) (string, error) {
	next, err := st.Next()
	if err != nil {
		return "", err
	}

	for range saveAttempts {
		fn := st.Filename(next)

		f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				next++
				continue // for loop
			}
			return "", curated.Errorf("macro: %v", err)
		}

		err = Write(f, l)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			// an incomplete file must not be found by Latest()
			if rerr := os.Remove(fn); rerr != nil {
				logger.Logf(logger.Allow, "macro", "%v", rerr)
			}
			return "", curated.Errorf("macro: %s: %v", fn, err)
		}

		return fn, nil
	}

	return "", curated.Errorf("macro: could not create new file in store (%s)", st)
}

// Latest returns the name of the file with the highest version number.
func (st *Store) Latest() (string, error) {
	versions, names, err := st.list()
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", curated.Errorf(NoMacro, st)
	}
	return filepath.Join(st.dir, names[versions[len(versions)-1]]), nil
}

// Resolve returns loaded if it is not empty, otherwise the result of
// Latest().
func (st *Store) Resolve(loaded string) (string, error) {
	if loaded != "" {
		return loaded, nil
	}
	return st.Latest()
}
