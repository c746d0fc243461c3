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

// Package paths contains functions to prepare paths to rawmacro resources.
//
// The ResourcePath() function prepends the supplied resource path with the
// appropriate base directory. For example, the history database:
//
//	p, err := paths.ResourcePath("", "history.db")
//
// The policy is simple. If the base resource directory, ".rawmacro", is present
// in the current working directory then that is used. Otherwise the directory
// "rawmacro" in the user's configuration directory is used (see
// os.UserConfigDir() for what that means on each platform). On a modern Linux
// system the path returned by the example above will be:
//
//	/home/user/.config/rawmacro/history.db
//
// The directory part of the path is created if it does not exist. The file
// itself is not created.
//
// Macro files and the Config.json file are not resources in this sense. They
// live in the working directory (or the directory given on the command line)
// so that they are easy to find and copy.
package paths
