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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Whereas, with the flag package, you call the Parse()
// function after specifying the flags, with modalflag you call Parse() and
// check the ParseResult:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	dryrun := md.AddBool("dryrun", false, "log injections only")
//
//	r, err := md.Parse()
//	switch r {
//	case modalflag.ParseHelp:
//		os.Exit(0)
//	case modalflag.ParseError:
//		fmt.Println(err)
//		os.Exit(10)
//	}
//
// Modes are added with AddSubModes(). The first mode in the list is the
// default mode. It is selected if the first argument after the flags does
// not name a mode, or if the arguments contain flags that are not defined
// at this level. In the second case the flags are parsed again when the
// flags for the selected mode have been added:
//
//	md.AddSubModes("RUN", "PLAY", "HISTORY", "VERSION")
//	r, err := md.Parse()
//	...
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		autoplay := md.AddBool("autoplay", false, "play on startup")
//		r, err := md.Parse()
//		...
//	}
//
// Mode names are case insensitive on the command line. The Mode() function
// always returns the name in upper case. Path() returns every mode that has
// been selected, separated by a forward slash.
//
// Help is printed to the Output writer when the -help flag is given. It
// lists the flags for the current mode and the available sub-modes.
package modalflag
