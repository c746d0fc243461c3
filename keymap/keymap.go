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

package keymap

import (
	"fmt"
	"strings"
)

// ScanCode is a PC set-1 scan code.
type ScanCode uint16

// Commonly used scan codes.
const (
	Escape    ScanCode = 1
	Backspace ScanCode = 14
	Tab       ScanCode = 15
	Enter     ScanCode = 28
	Control   ScanCode = 29
	Shift     ScanCode = 42
	Alt       ScanCode = 56
	Space     ScanCode = 57
)

// names of keys that don't produce a character
var named = map[string]ScanCode{
	"esc":        Escape,
	"escape":     Escape,
	"backspace":  Backspace,
	"tab":        Tab,
	"enter":      Enter,
	"return":     Enter,
	"ctrl":       Control,
	"control":    Control,
	"shift":      Shift,
	"rshift":     54,
	"alt":        Alt,
	"space":      Space,
	"capslock":   58,
	"numlock":    69,
	"scrolllock": 70,
	"f1":         59,
	"f2":         60,
	"f3":         61,
	"f4":         62,
	"f5":         63,
	"f6":         64,
	"f7":         65,
	"f8":         66,
	"f9":         67,
	"f10":        68,
	"f11":        87,
	"f12":        88,
}

// unshifted and shifted characters for each printable scan code. US layout
var printable = []struct {
	sc      ScanCode
	plain   rune
	shifted rune
}{
	{2, '1', '!'}, {3, '2', '@'}, {4, '3', '#'}, {5, '4', '$'},
	{6, '5', '%'}, {7, '6', '^'}, {8, '7', '&'}, {9, '8', '*'},
	{10, '9', '('}, {11, '0', ')'}, {12, '-', '_'}, {13, '=', '+'},
	{16, 'q', 'Q'}, {17, 'w', 'W'}, {18, 'e', 'E'}, {19, 'r', 'R'},
	{20, 't', 'T'}, {21, 'y', 'Y'}, {22, 'u', 'U'}, {23, 'i', 'I'},
	{24, 'o', 'O'}, {25, 'p', 'P'}, {26, '[', '{'}, {27, ']', '}'},
	{30, 'a', 'A'}, {31, 's', 'S'}, {32, 'd', 'D'}, {33, 'f', 'F'},
	{34, 'g', 'G'}, {35, 'h', 'H'}, {36, 'j', 'J'}, {37, 'k', 'K'},
	{38, 'l', 'L'}, {39, ';', ':'}, {40, '\'', '"'}, {41, '`', '~'},
	{43, '\\', '|'}, {44, 'z', 'Z'}, {45, 'x', 'X'}, {46, 'c', 'C'},
	{47, 'v', 'V'}, {48, 'b', 'B'}, {49, 'n', 'N'}, {50, 'm', 'M'},
	{51, ',', '<'}, {52, '.', '>'}, {53, '/', '?'},
}

// Stroke is the key and shift state needed to type a character.
type Stroke struct {
	ScanCode ScanCode
	Shift    bool
}

var (
	byName = make(map[string]ScanCode)
	byCode = make(map[ScanCode]string)
	byRune = make(map[rune]Stroke)
)

func init() {
	for _, p := range printable {
		byName[string(p.plain)] = p.sc
		byCode[p.sc] = string(p.plain)
		byRune[p.plain] = Stroke{ScanCode: p.sc}
		byRune[p.shifted] = Stroke{ScanCode: p.sc, Shift: true}
	}
	for n, sc := range named {
		byName[n] = sc
	}

	// preferred names for the reverse lookup
	for _, n := range []string{"esc", "backspace", "tab", "enter", "ctrl",
		"shift", "rshift", "alt", "space", "capslock", "numlock", "scrolllock"} {
		byCode[named[n]] = n
	}
	for i := 1; i <= 12; i++ {
		n := fmt.Sprintf("f%d", i)
		byCode[named[n]] = strings.ToUpper(n)
	}

	byRune[' '] = Stroke{ScanCode: Space}
	byRune['\t'] = Stroke{ScanCode: Tab}
	byRune['\n'] = Stroke{ScanCode: Enter}
}

// Lookup returns the scan code for the named key.
func Lookup(name string) (ScanCode, bool) {
	n := strings.TrimSpace(name)
	if len(n) > 1 {
		n = strings.ToLower(n)
	}
	sc, ok := byName[n]
	if !ok && len(n) == 1 {
		// single upper case letters are accepted as their key name
		sc, ok = byName[strings.ToLower(n)]
	}
	return sc, ok
}

// MustLookup is like Lookup but panics if the name is not known. Only
// suitable for names that are known to be valid.
func MustLookup(name string) ScanCode {
	sc, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("keymap: unknown key name (%s)", name))
	}
	return sc
}

// Name returns the name of the key with the scan code. Scan codes without a
// name are returned as a number prefixed with a hash.
func Name(sc ScanCode) string {
	if n, ok := byCode[sc]; ok {
		return n
	}
	return fmt.Sprintf("#%d", sc)
}

// Char returns the keystroke required to type the character.
func Char(r rune) (Stroke, bool) {
	s, ok := byRune[r]
	return s, ok
}

// Strokes returns the keystrokes required to type the text. Characters
// that cannot be typed are returned as an error.
func Strokes(text string) ([]Stroke, error) {
	s := make([]Stroke, 0, len(text))
	for _, r := range text {
		k, ok := byRune[r]
		if !ok {
			return nil, fmt.Errorf("keymap: cannot type character (%q)", r)
		}
		s = append(s, k)
	}
	return s, nil
}
