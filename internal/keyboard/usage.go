package keyboard

// HID keyboard page usage IDs referenced by the US keymap.
const (
	KeyNone        uint8 = 0x00
	KeyErrRollOver uint8 = 0x01
	KeyA           uint8 = 0x04
	KeyZ           uint8 = 0x1d
	Key1           uint8 = 0x1e
	Key9           uint8 = 0x26
	Key0           uint8 = 0x27
	KeyEnter       uint8 = 0x28
	KeyEscape      uint8 = 0x29
	KeyBackspace   uint8 = 0x2a
	KeyTab         uint8 = 0x2b
	KeySpace       uint8 = 0x2c
	KeyMinus       uint8 = 0x2d
	KeyEqual       uint8 = 0x2e
	KeyBracketL    uint8 = 0x2f
	KeyBracketR    uint8 = 0x30
	KeyBackslash   uint8 = 0x31
	KeyEurope1     uint8 = 0x32
	KeySemicolon   uint8 = 0x33
	KeyApostrophe  uint8 = 0x34
	KeyGrave       uint8 = 0x35
	KeyComma       uint8 = 0x36
	KeyPeriod      uint8 = 0x37
	KeySlash       uint8 = 0x38
	KeyCapsLock    uint8 = 0x39
	KeyF1          uint8 = 0x3a
	KeyRight       uint8 = 0x4f
	KeyLeft        uint8 = 0x50
	KeyDown        uint8 = 0x51
	KeyUp          uint8 = 0x52
	KeyNumLock     uint8 = 0x53
	KeyKPDivide    uint8 = 0x54
	KeyKPMultiply  uint8 = 0x55
	KeyKPSubtract  uint8 = 0x56
	KeyKPAdd       uint8 = 0x57
	KeyKPEnter     uint8 = 0x58
	KeyKP1         uint8 = 0x59
	KeyKP2         uint8 = 0x5a
	KeyKP4         uint8 = 0x5c
	KeyKP6         uint8 = 0x5e
	KeyKP8         uint8 = 0x60
	KeyKP0         uint8 = 0x62
	KeyKPDecimal   uint8 = 0x63
)

// LED output report bits, as mirrored by the decoder.
const (
	LEDNumLock  uint8 = 1 << 0
	LEDCapsLock uint8 = 1 << 1
)
