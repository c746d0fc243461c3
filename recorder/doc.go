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

// Package recorder captures user input to a macro.Log and plays a macro.Log
// back with an injector.
//
// Recorder subscribes to a userinput.Source and appends every mouse movement
// and key edge to a log, with the time of capture. Recording ends when
// Stop() is called or when the segment time elapses, whichever is first. The
// log is always saved when recording ends.
//
// Playback replays a log with the same relative timing as it was recorded.
// The time of each event is measured from the first event in the log and is
// scheduled from the moment playback started. An event that is already late
// is injected immediately, which means that a delay in one part of playback
// is caught up and does not accumulate.
//
// While playback is running a periodic action can be performed, which is a
// horizontal mouse movement followed by a key tap. A mouse button can also
// be held down for the duration of the playback.
//
// Both types are safe to use from more than one goroutine. The goroutines
// started by the types are protected from panics. A panic is logged and ends
// the recording or playback in the same way as an error.
package recorder
