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

// Package macro defines the event log that is recorded and replayed by
// Rawmacro, and the Store in which logs are kept.
//
// A log is a list of Event values in the order in which they were captured.
// On disk it is a JSON array, written with two space indentation:
//
//	[
//	  {
//	    "type": "mouse",
//	    "dx": 3,
//	    "dy": -1,
//	    "time": 1712345678.123456
//	  },
//	  {
//	    "type": "key",
//	    "scan_code": 17,
//	    "event_type": "down",
//	    "time": 1712345678.2
//	  }
//	]
//
// The time field is the capture time in seconds since the Unix epoch. Only
// the difference between times is meaningful during playback.
//
// Files in a Store are named with a base name and a version number, for
// example "mineracao3.json". The next file saved has a version number one
// greater than the highest version already in the Store.
package macro
