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

// Package prefs facilitates the storage of preferential values in the
// application. It is used to implement the Config.json file but is general
// enough to be used for any set of key/value pairs.
//
// Preference values are declared with one of the types in the package: Bool,
// String, Int or Float. These types can be set with values of several Go
// types, for example Int can be set with an int, a string or a json.Number,
// which makes them convenient to use with command line arguments and
// decoded files alike.
//
//	var sensitivity prefs.Float
//	err := sensitivity.Set("10.0")
//
// Values are associated with a key on a Disk. The Disk is a JSON object
// stored in a file:
//
//	dsk, err := prefs.NewDisk("Config.json")
//	err = dsk.Add("mouse_sensitivity", &sensitivity)
//	err = dsk.Load()
//	err = dsk.Save()
//
// Saving a Disk does not remove keys from the file that the Disk does not
// know about. This means that two Disk instances can share a file, and that
// hand-edited keys from a newer (or older) version of the program survive.
//
// Every type has a pre and post hook. The hooks are called every time the
// value is set, even if the value hasn't changed. A pre hook can prevent the
// value from being changed by returning an error.
//
// Values can also be set from the command line. The PushCommandLineStack()
// function takes a string of the form:
//
//	"key::value; key::value"
//
// The next call to Load() on any Disk will apply matching values after the
// file has been read. Values are consumed when they are applied.
package prefs
