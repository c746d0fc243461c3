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

// Package chat sends a command to the game by opening the chat prompt,
// typing the command and pressing enter.
package chat

import (
	"context"
	"time"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/logger"
	"github.com/rawmacro/rawmacro/userinput"
)

// the game needs time to open the prompt and to act on the command
const settle = 100 * time.Millisecond

// Command is the chat command sent at the end of a segment.
type Command struct {
	// name of the key that opens the chat prompt
	OpenKey string

	// text typed into the prompt
	Text string

	// wait between opening the prompt and typing, and after pressing enter.
	// the default is used if the value is zero
	Settle time.Duration
}

func (cmd Command) settle() time.Duration {
	if cmd.Settle == 0 {
		return settle
	}
	return cmd.Settle
}

// Send the command with the injector. The context interrupts the waits but
// the command is not interrupted once the text has begun to be typed.
func (cmd Command) Send(ctx context.Context, inj userinput.Injector) error {
	if cmd.Text == "" {
		return nil
	}

	sc, ok := keymap.Lookup(cmd.OpenKey)
	if !ok {
		return curated.Errorf("chat: unknown key name (%s)", cmd.OpenKey)
	}

	if err := userinput.Tap(inj, sc); err != nil {
		return curated.Errorf("chat: %v", err)
	}

	if !sleep(ctx, cmd.settle()) {
		return curated.Errorf("chat: %v", ctx.Err())
	}

	if err := userinput.Type(inj, cmd.Text); err != nil {
		return curated.Errorf("chat: %v", err)
	}
	if err := userinput.Tap(inj, keymap.Enter); err != nil {
		return curated.Errorf("chat: %v", err)
	}

	sleep(ctx, cmd.settle())
	logger.Logf(logger.Allow, "chat", "sent %s", cmd.Text)

	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
