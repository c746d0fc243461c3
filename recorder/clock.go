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

package recorder

import (
	"context"
	"time"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/logger"
)

// Clock is the source of time for the recorder and for playback.
type Clock interface {
	Now() time.Time

	// Sleep for the duration. Returns false if the context was cancelled
	// before the duration elapsed.
	Sleep(ctx context.Context, d time.Duration) bool
}

// WallClock is the Clock used when no other Clock is specified.
var WallClock Clock = wallClock{}

type wallClock struct{}

func (wallClock) Now() time.Time {
	return time.Now()
}

func (wallClock) Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Sentinel error used when a goroutine has recovered from a panic.
const Panicked = "recorder: %s: panic: %v"

// guard is deferred at the start of every goroutine. the error pointer can be
// nil in which case the panic is only logged
func guard(tag string, err *error, after func()) {
	if r := recover(); r != nil {
		logger.Logf(logger.Allow, tag, "panic: %v", r)
		if err != nil {
			*err = curated.Errorf(Panicked, tag, r)
		}
		if after != nil {
			after()
		}
	}
}
