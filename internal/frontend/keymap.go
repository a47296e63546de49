package frontend

import "unicode"

// keyLayout maps the hex keypad to the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var keyLayout = [16]rune{
	0x0: 'x',
	0x1: '1',
	0x2: '2',
	0x3: '3',
	0x4: 'q',
	0x5: 'w',
	0x6: 'e',
	0x7: 'a',
	0x8: 's',
	0x9: 'd',
	0xA: 'z',
	0xB: 'c',
	0xC: '4',
	0xD: 'r',
	0xE: 'f',
	0xF: 'v',
}

// KeyForRune returns the hex key that the keyboard character is mapped to.
func KeyForRune(r rune) (byte, bool) {
	r = unicode.ToLower(r)
	for key, mapped := range keyLayout {
		if mapped == r {
			return byte(key), true
		}
	}
	return 0, false
}

// RuneForKey returns the keyboard character of a hex key.
func RuneForKey(key byte) rune {
	return keyLayout[key&0xF]
}
