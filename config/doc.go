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

// Package config declares the preference values used by Rawmacro and
// associates them with the Config.json file.
//
// The file is created with default values if it does not exist. A file that
// cannot be decoded is reported to the log and the default values are used
// instead. The file is not overwritten in that case, so a hand-edit that has
// gone wrong can be fixed without losing the other values.
//
// After the file has been read, a small number of values can be overridden
// with environment variables. Overridden values are not written back to
// the file unless Save() is called explicitly.
package config
