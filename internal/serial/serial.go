// Package serial opens the serial link to the emulated machine's console.
package serial

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jacobsa/go-serial/serial"
)

// ErrNoPort is returned when Options has no port name.
var ErrNoPort = errors.New("serial: no port")

// ErrParity is returned for a parity name other than none, odd or even.
var ErrParity = errors.New("serial: unknown parity")

// Options describe the port.
type Options struct {
	Port     string
	BaudRate uint
	DataBits uint
	StopBits uint
	Parity   string
	// RTSCTS enables hardware flow control.
	RTSCTS bool
}

// DefaultOptions returns 115200 8N1 on port.
func DefaultOptions(port string) Options {
	return Options{
		Port:     port,
		BaudRate: 115200,
		DataBits: 8,
		StopBits: 1,
		Parity:   "none",
	}
}

// openOptions maps o onto the driver's options. Reads block until at least one
// byte arrives.
func (o Options) openOptions() (serial.OpenOptions, error) {
	if o.Port == "" {
		return serial.OpenOptions{}, ErrNoPort
	}

	var parity serial.ParityMode
	switch strings.ToLower(o.Parity) {
	case "", "none":
		parity = serial.PARITY_NONE
	case "odd":
		parity = serial.PARITY_ODD
	case "even":
		parity = serial.PARITY_EVEN
	default:
		return serial.OpenOptions{}, fmt.Errorf("%w: %q", ErrParity, o.Parity)
	}

	return serial.OpenOptions{
		PortName:          o.Port,
		BaudRate:          o.BaudRate,
		DataBits:          o.DataBits,
		StopBits:          o.StopBits,
		ParityMode:        parity,
		RTSCTSFlowControl: o.RTSCTS,
		MinimumReadSize:   1,
	}, nil
}

// Open opens the port.
func Open(o Options) (io.ReadWriteCloser, error) {
	opts, err := o.openOptions()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", o.Port, err)
	}
	return port, nil
}
