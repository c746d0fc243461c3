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

package paths

import (
	"os"
	"path/filepath"
)

// the name of the resource directory when it is found in the working
// directory. use getBasePath() rather than this value directly
const localResourcePath = ".rawmacro"

// the name of the resource directory inside the user's configuration directory
const configResourcePath = "rawmacro"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details. The directory
// part of the path is created if necessary.
func ResourcePath(path string, file string) (string, error) {
	base, err := getBasePath()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(base, path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, file), nil
}

// getBasePath returns localResourcePath if it exists in the working directory.
// otherwise it returns the path in the user's configuration directory.
func getBasePath() (string, error) {
	if info, err := os.Stat(localResourcePath); err == nil && info.IsDir() {
		return localResourcePath, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(cnf, configResourcePath), nil
}
