package keyboard

// Decoder turns successive boot reports into key codes for newly pressed keys.
type Decoder struct {
	layout Layout
	prev   Report

	ledsDirty bool
}

// NewDecoder creates a decoder for layout.
func NewDecoder(layout Layout) *Decoder {
	return &Decoder{layout: layout}
}

// Decode processes r and returns the codes of keys present in r but absent
// from the previous report, in slot order. A rollover report returns
// ErrRollover and leaves the decoder untouched.
func (d *Decoder) Decode(r Report) ([]byte, error) {
	d.ledsDirty = false
	if r.Rollover() {
		return nil, ErrRollover
	}

	st := KeyState{
		Shift:    r.Modifier.HasShift(),
		Ctrl:     r.Modifier.HasCtrl(),
		Alt:      r.Modifier.HasAlt(),
		NumLock:  d.prev.Reserved&LEDNumLock != 0,
		CapsLock: d.prev.Reserved&LEDCapsLock != 0,
	}

	var codes []byte
	for _, key := range r.Keys {
		if key == KeyNone || d.prev.Contains(key) {
			continue
		}

		switch {
		case key == KeyNumLock:
			st.NumLock = !st.NumLock
		case key == KeyCapsLock && (st.Shift || !d.layout.CapsNeedsShift):
			st.CapsLock = !st.CapsLock
		case key == KeyCapsLock:
		default:
			if code, ok := d.layout.Keymap.Lookup(key, st); ok {
				codes = append(codes, code)
			}
		}
	}

	leds := ledMask(st.NumLock, st.CapsLock)
	d.ledsDirty = leds != d.prev.Reserved

	d.prev = r
	d.prev.Reserved = leds
	return codes, nil
}

// LEDs returns the current lock LED mask.
func (d *Decoder) LEDs() uint8 {
	return d.prev.Reserved
}

// LEDsDirty reports whether the last decode changed the LED mask.
func (d *Decoder) LEDsDirty() bool {
	return d.ledsDirty
}

// Reset forgets the previous report and lock state.
func (d *Decoder) Reset() {
	d.prev = Report{}
	d.ledsDirty = false
}

func ledMask(num, caps bool) uint8 {
	var m uint8
	if num {
		m |= LEDNumLock
	}
	if caps {
		m |= LEDCapsLock
	}
	return m
}
