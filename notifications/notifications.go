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

package notifications

// Notice describes events that the user might want to know about.
type Notice string

// List of defined notifications.
const (
	// recording has started. detail is the segment duration
	NotifyRecordingStarted Notice = "NotifyRecordingStarted"

	// once per second during recording. detail is the number of seconds
	// remaining before the segment expires
	NotifyCountdown Notice = "NotifyCountdown"

	// recording has been saved. detail is the filename
	NotifyRecordingSaved Notice = "NotifyRecordingSaved"

	// the segment deadline was reached and the recording was saved. detail is
	// the filename
	NotifySegmentExpired Notice = "NotifySegmentExpired"

	// a macro file has been loaded for the next playback. detail is the
	// filename
	NotifyMacroLoaded Notice = "NotifyMacroLoaded"

	// playback has begun. detail is the filename
	NotifyPlaybackStarted Notice = "NotifyPlaybackStarted"

	// playback has finished, either naturally or because it was stopped.
	// detail is a short description of the outcome
	NotifyPlaybackEnded Notice = "NotifyPlaybackEnded"

	// no macro could be found when play was requested
	NotifyNoMacro Notice = "NotifyNoMacro"

	// the session is being reset. either gracefully or by process
	// replacement. detail says which
	NotifyRestart Notice = "NotifyRestart"
)

// Notify is implemented by anything that wants to be told about notices.
type Notify interface {
	Notify(notice Notice, detail string)
}

// NotifyFunc adapts a function literal to the Notify interface.
type NotifyFunc func(notice Notice, detail string)

// Notify implements the Notify interface.
func (f NotifyFunc) Notify(notice Notice, detail string) {
	f(notice, detail)
}

// Discard is an implementation of Notify that ignores everything.
var Discard Notify = NotifyFunc(func(Notice, string) {})
