package keyboard

// Standard Linux evdev keycodes, per linux/input-event-codes.h, for the
// subset of keys the on-screen keyboard can inject.
const (
	keyEsc        = 1
	key1          = 2
	key2          = 3
	key3          = 4
	key4          = 5
	key5          = 6
	key6          = 7
	key7          = 8
	key8          = 9
	key9          = 10
	key0          = 11
	keyMinus      = 12
	keyEqual      = 13
	keyBackspace  = 14
	keyTab        = 15
	keyQ          = 16
	keyW          = 17
	keyE          = 18
	keyR          = 19
	keyT          = 20
	keyY          = 21
	keyU          = 22
	keyI          = 23
	keyO          = 24
	keyP          = 25
	keyLeftBrace  = 26
	keyRightBrace = 27
	keyEnter      = 28
	keyA          = 30
	keyS          = 31
	keyD          = 32
	keyF          = 33
	keyG          = 34
	keyH          = 35
	keyJ          = 36
	keyK          = 37
	keyL          = 38
	keySemicolon  = 39
	keyApostrophe = 40
	keyGrave      = 41
	keyLeftShift  = 42
	keyBackslash  = 43
	keyZ          = 44
	keyX          = 45
	keyC          = 46
	keyV          = 47
	keyB          = 48
	keyN          = 49
	keyM          = 50
	keyComma      = 51
	keyDot        = 52
	keySlash      = 53
	keyRightShift = 54
	keySpace      = 57
)

// keyMapEntry is one unshifted/shifted character pair for an evdev code.
type keyMapEntry struct {
	code         uint32
	plain, shift rune
}

var keyTable = []keyMapEntry{
	{key1, '1', '!'},
	{key2, '2', '@'},
	{key3, '3', '#'},
	{key4, '4', '$'},
	{key5, '5', '%'},
	{key6, '6', '^'},
	{key7, '7', '&'},
	{key8, '8', '*'},
	{key9, '9', '('},
	{key0, '0', ')'},
	{keyMinus, '-', '_'},
	{keyEqual, '=', '+'},
	{keyTab, '\t', '\t'},
	{keyQ, 'q', 'Q'},
	{keyW, 'w', 'W'},
	{keyE, 'e', 'E'},
	{keyR, 'r', 'R'},
	{keyT, 't', 'T'},
	{keyY, 'y', 'Y'},
	{keyU, 'u', 'U'},
	{keyI, 'i', 'I'},
	{keyO, 'o', 'O'},
	{keyP, 'p', 'P'},
	{keyLeftBrace, '[', '{'},
	{keyRightBrace, ']', '}'},
	{keyA, 'a', 'A'},
	{keyS, 's', 'S'},
	{keyD, 'd', 'D'},
	{keyF, 'f', 'F'},
	{keyG, 'g', 'G'},
	{keyH, 'h', 'H'},
	{keyJ, 'j', 'J'},
	{keyK, 'k', 'K'},
	{keyL, 'l', 'L'},
	{keySemicolon, ';', ':'},
	{keyApostrophe, '\'', '"'},
	{keyGrave, '`', '~'},
	{keyBackslash, '\\', '|'},
	{keyZ, 'z', 'Z'},
	{keyX, 'x', 'X'},
	{keyC, 'c', 'C'},
	{keyV, 'v', 'V'},
	{keyB, 'b', 'B'},
	{keyN, 'n', 'N'},
	{keyM, 'm', 'M'},
	{keyComma, ',', '<'},
	{keyDot, '.', '>'},
	{keySlash, '/', '?'},
	{keySpace, ' ', ' '},
}

// charToCode and codeToChar are built once from keyTable.
var (
	charToCode = map[rune]struct {
		code  uint32
		shift bool
	}{}
	codeToChar = map[uint32]struct{ plain, shift rune }{}
)

func init() {
	for _, e := range keyTable {
		charToCode[e.plain] = struct {
			code  uint32
			shift bool
		}{e.code, false}
		if e.shift != e.plain {
			charToCode[e.shift] = struct {
				code  uint32
				shift bool
			}{e.code, true}
		}
		codeToChar[e.code] = struct{ plain, shift rune }{e.plain, e.shift}
	}
	charToCode['\n'] = struct {
		code  uint32
		shift bool
	}{keyEnter, false}
	codeToChar[keyEnter] = struct{ plain, shift rune }{'\n', '\n'}
	charToCode['\b'] = struct {
		code  uint32
		shift bool
	}{keyBackspace, false}
	codeToChar[keyBackspace] = struct{ plain, shift rune }{'\b', '\b'}
}

// CharToEvdev maps a character to its evdev keycode and whether shift is
// required to produce it. Non-ASCII and unmapped characters report ok=false.
func CharToEvdev(ch rune) (code uint32, shift bool, ok bool) {
	e, ok := charToCode[ch]
	if !ok {
		return 0, false, false
	}
	return e.code, e.shift, true
}

// EvdevToChar maps an evdev keycode back to the character it produces,
// selecting the shifted or plain variant. Unmapped codes report ok=false.
func EvdevToChar(code uint32, shift bool) (ch rune, ok bool) {
	e, ok := codeToChar[code]
	if !ok {
		return 0, false
	}
	if shift {
		return e.shift, true
	}
	return e.plain, true
}

// ShiftLeftCode and ShiftRightCode are the modifier keycodes used when
// synthesizing a shifted key press.
const (
	ShiftLeftCode  = keyLeftShift
	ShiftRightCode = keyRightShift
	BackspaceCode  = keyBackspace
	EnterCode      = keyEnter
	SpaceCode      = keySpace
)
