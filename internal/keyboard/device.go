package keyboard

import "fmt"

// Device identifies one HID interface on the bus.
type Device struct {
	Addr     uint8
	Instance uint8
}

// String implements fmt.Stringer.
func (d Device) String() string {
	return fmt.Sprintf("%d:%d", d.Addr, d.Instance)
}

// Protocol is the HID interface protocol reported at mount time.
type Protocol uint8

// HID boot interface protocols.
const (
	ProtocolNone     Protocol = 0
	ProtocolKeyboard Protocol = 1
	ProtocolMouse    Protocol = 2
)

// String implements fmt.Stringer.
func (p Protocol) String() string {
	switch p {
	case ProtocolNone:
		return "none"
	case ProtocolKeyboard:
		return "keyboard"
	case ProtocolMouse:
		return "mouse"
	default:
		return fmt.Sprintf("protocol(%d)", uint8(p))
	}
}

// Transport is the HID host side the pipeline talks back to.
type Transport interface {
	// RequestReport asks for the next input report from dev.
	RequestReport(dev Device) error
	// SetLEDs sends the lock LED output report to dev.
	SetLEDs(dev Device, mask uint8) error
}

type nopTransport struct{}

func (nopTransport) RequestReport(Device) error { return nil }
func (nopTransport) SetLEDs(Device, uint8) error { return nil }
