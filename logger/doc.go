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

// Package logger is the central log for the application. Log entries are
// tagged with a short string, usually the name of the package or component
// making the entry:
//
//	logger.Logf(logger.Allow, "recorder", "saved %d events to %s", n, filename)
//
// Consecutive entries that are identical are collapsed into a single entry
// with a repeat count. The log holds a maximum number of entries, older
// entries being forgotten as new ones are added.
//
// Every log call takes a Permission argument. This allows the caller to make
// logging conditional without wrapping every call in an if statement. The
// Allow value can be used when an entry should always be made.
//
// Entries can be echoed to an io.Writer as they are made with SetEcho(). This
// is how the -log command line flag is implemented.
package logger
