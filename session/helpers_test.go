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

package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rawmacro/rawmacro/history"
	"github.com/rawmacro/rawmacro/notifications"
)

// instantClock never waits
type instantClock struct {
	crit sync.Mutex
	now  time.Time
}

func (c *instantClock) Now() time.Time {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.now
}

func (c *instantClock) Sleep(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	c.crit.Lock()
	defer c.crit.Unlock()
	c.now = c.now.Add(d)
	return true
}

// stuckClock waits until the context is cancelled
type stuckClock struct{}

func (stuckClock) Now() time.Time {
	return time.Unix(1712345678, 0)
}

func (stuckClock) Sleep(ctx context.Context, _ time.Duration) bool {
	<-ctx.Done()
	return false
}

type notices struct {
	crit sync.Mutex
	list []notifications.Notice
}

func (n *notices) Notify(notice notifications.Notice, _ string) {
	n.crit.Lock()
	defer n.crit.Unlock()
	n.list = append(n.list, notice)
}

func (n *notices) count(notice notifications.Notice) int {
	n.crit.Lock()
	defer n.crit.Unlock()
	var c int
	for _, l := range n.list {
		if l == notice {
			c++
		}
	}
	return c
}

type journal struct {
	crit   sync.Mutex
	next   int
	begun  []history.Kind
	ending []string
}

func (j *journal) Begin(_ context.Context, kind history.Kind, _ string) (string, error) {
	j.crit.Lock()
	defer j.crit.Unlock()
	j.next++
	j.begun = append(j.begun, kind)
	return fmt.Sprintf("id%d", j.next), nil
}

func (j *journal) End(_ context.Context, id string, _ string, events int, outcome string) error {
	j.crit.Lock()
	defer j.crit.Unlock()
	if id == "" {
		return errors.New("no id")
	}
	j.ending = append(j.ending, fmt.Sprintf("%s %d %s", id, events, outcome))
	return nil
}

func (j *journal) ended() []string {
	j.crit.Lock()
	defer j.crit.Unlock()
	return append([]string(nil), j.ending...)
}

func waitFor(f func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return f()
}
