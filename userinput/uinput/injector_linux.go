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

//go:build linux

package uinput

import (
	"fmt"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/rawmacro/rawmacro/curated"
	"github.com/rawmacro/rawmacro/keymap"
	"github.com/rawmacro/rawmacro/logger"
	"github.com/rawmacro/rawmacro/userinput"
)

const devicePath = "/dev/uinput"

// the desktop needs time to recognise a new device before events sent to
// it are delivered
const settleTime = 250 * time.Millisecond

// Injector implements the userinput.Injector interface with a virtual
// device.
type Injector struct {
	f *os.File
}

func ioctl(fd uintptr, req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlPtr(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// NewInjector creates the virtual device.
func NewInjector() (*Injector, error) {
	f, err := os.OpenFile(devicePath, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, curated.Errorf("uinput: %v", err)
	}

	fd := f.Fd()

	enable := func(req uintptr, v uintptr) error {
		if err := ioctl(fd, req, v); err != nil {
			return fmt.Errorf("ioctl %#x %#x: %w", req, v, err)
		}
		return nil
	}

	err = func() error {
		for _, ev := range []uintptr{evSyn, evKey, evRel} {
			if err := enable(uiSetEvBit, ev); err != nil {
				return err
			}
		}
		for k := uintptr(1); k <= keyMax; k++ {
			if err := enable(uiSetKeyBit, k); err != nil {
				return err
			}
		}
		for _, b := range []uintptr{btnLeft, btnRight, btnMiddle} {
			if err := enable(uiSetKeyBit, b); err != nil {
				return err
			}
		}
		for _, r := range []uintptr{relX, relY} {
			if err := enable(uiSetRelBit, r); err != nil {
				return err
			}
		}

		s := setup()
		if err := ioctlPtr(fd, uiDevSetup, unsafe.Pointer(&s)); err != nil {
			return fmt.Errorf("device setup: %w", err)
		}
		if err := ioctl(fd, uiDevCreate, 0); err != nil {
			return fmt.Errorf("device create: %w", err)
		}
		return nil
	}()
	if err != nil {
		f.Close()
		return nil, curated.Errorf("uinput: %v", err)
	}

	time.Sleep(settleTime)
	logger.Logf(logger.Allow, "uinput", "created %s", deviceName)

	return &Injector{f: f}, nil
}

func (inj *Injector) write(b []byte) error {
	if inj.f == nil {
		return curated.Errorf("uinput: device is closed")
	}
	if _, err := inj.f.Write(b); err != nil {
		return curated.Errorf("uinput: %v", err)
	}
	return nil
}

// MoveMouse implements the userinput.Injector interface.
func (inj *Injector) MoveMouse(dx int, dy int) error {
	return inj.write(moveEvents(dx, dy))
}

// KeyPress implements the userinput.Injector interface.
func (inj *Injector) KeyPress(sc keymap.ScanCode) error {
	return inj.write(keyEvents(keyCode(sc), true))
}

// KeyRelease implements the userinput.Injector interface.
func (inj *Injector) KeyRelease(sc keymap.ScanCode) error {
	return inj.write(keyEvents(keyCode(sc), false))
}

// ButtonPress implements the userinput.Injector interface.
func (inj *Injector) ButtonPress(b userinput.Button) error {
	c, ok := buttonCode(b)
	if !ok {
		return curated.Errorf(userinput.Unsupported, b.String()+" button")
	}
	return inj.write(keyEvents(c, true))
}

// ButtonRelease implements the userinput.Injector interface.
func (inj *Injector) ButtonRelease(b userinput.Button) error {
	c, ok := buttonCode(b)
	if !ok {
		return curated.Errorf(userinput.Unsupported, b.String()+" button")
	}
	return inj.write(keyEvents(c, false))
}

// Close destroys the virtual device.
func (inj *Injector) Close() error {
	if inj.f == nil {
		return nil
	}
	err := ioctl(inj.f.Fd(), uiDevDestroy, 0)
	inj.f.Close()
	inj.f = nil
	if err != nil {
		return curated.Errorf("uinput: %v", err)
	}
	return nil
}
