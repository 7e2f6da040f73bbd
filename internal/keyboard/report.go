package keyboard

// ReportSize is the length of a boot keyboard report.
const ReportSize = 8

// Report is a boot protocol keyboard report.
//
// In the decoder's stored previous report the reserved byte holds the lock
// LED mask, so a single value carries both the held keys and the lock state.
type Report struct {
	Modifier Modifier
	Reserved uint8
	Keys     [6]uint8
}

// ParseReport decodes the first 8 bytes of data.
func ParseReport(data []byte) (Report, error) {
	if len(data) < ReportSize {
		return Report{}, ErrShortReport
	}
	r := Report{
		Modifier: Modifier(data[0]),
		Reserved: data[1],
	}
	copy(r.Keys[:], data[2:ReportSize])
	return r, nil
}

// Bytes encodes the report in boot layout.
func (r Report) Bytes() []byte {
	b := make([]byte, ReportSize)
	b[0] = byte(r.Modifier)
	b[1] = r.Reserved
	copy(b[2:], r.Keys[:])
	return b
}

// Contains reports whether key is held in any slot.
func (r Report) Contains(key uint8) bool {
	for _, k := range r.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Rollover reports whether the keyboard signalled too many keys: at least
// two slots carry the rollover error usage.
func (r Report) Rollover() bool {
	n := 0
	for _, k := range r.Keys {
		if k == KeyErrRollOver {
			n++
		}
	}
	return n >= 2
}

// NewReport builds a report with the given modifiers and held keys. Keys past
// the sixth are ignored.
func NewReport(mod Modifier, keys ...uint8) Report {
	r := Report{Modifier: mod}
	copy(r.Keys[:], keys)
	return r
}
