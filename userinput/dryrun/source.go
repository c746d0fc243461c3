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

package dryrun

import (
	"context"
	"sync"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/userinput"
)

// Source implements the userinput.Source interface. Input is delivered to
// every current subscriber when it is pushed.
type Source struct {
	crit sync.Mutex
	subs map[*subscription]bool

	// if Fail is not nil then Subscribe() will return it
	Fail error
}

type subscription struct {
	ctx context.Context
	ch  chan<- userinput.Input
}

// NewSource is the preferred method of initialisation for the Source type.
func NewSource() *Source {
	return &Source{
		subs: make(map[*subscription]bool),
	}
}

// Subscribe implements the userinput.Source interface.
func (src *Source) Subscribe(ctx context.Context, ch chan<- userinput.Input) error {
	src.crit.Lock()
	defer src.crit.Unlock()

	if src.Fail != nil {
		return curated.Errorf("dryrun: %v", src.Fail)
	}

	sub := &subscription{ctx: ctx, ch: ch}
	src.subs[sub] = true

	context.AfterFunc(ctx, func() {
		src.crit.Lock()
		defer src.crit.Unlock()
		delete(src.subs, sub)
	})

	return nil
}

// Subscribers returns the number of active subscriptions.
func (src *Source) Subscribers() int {
	src.crit.Lock()
	defer src.crit.Unlock()
	return len(src.subs)
}

// Push input to all subscribers. Blocks until every subscriber has received
// the input or has been cancelled.
func (src *Source) Push(in userinput.Input) {
	src.crit.Lock()
	subs := make([]*subscription, 0, len(src.subs))
	for s := range src.subs {
		subs = append(subs, s)
	}
	src.crit.Unlock()

	for _, s := range subs {
		select {
		case s.ch <- in:
		case <-s.ctx.Done():
		}
	}
}
