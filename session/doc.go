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

// Package session coordinates recording and playback. The Controller type
// is the only way the front-ends (console, hotkeys and autoplay) start and
// stop either activity.
//
// Recording and playback are mutually exclusive. A request that is not valid
// for the current state is ignored.
//
// The end of a recording segment and the end of a playback are segment
// boundaries. At a boundary the chat command is sent to the game and the
// session is restarted. By default the restart is graceful: the controller
// returns to the idle state and, in autoplay mode, playback begins again.
// A forced restart replaces the process instead. If playback was stopped by
// request then an external process can also be killed before the restart.
package session
