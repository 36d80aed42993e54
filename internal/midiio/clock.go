package midiio

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// System realtime status bytes.
const (
	statusClock    = 0xF8
	statusStart    = 0xFA
	statusContinue = 0xFB
	statusStop     = 0xFC
)

// ClockHandler receives transport events from the listener goroutine.
type ClockHandler interface {
	OnClockPulse()
	OnStart()
	OnStop()
}

// ClockListener subscribes to an input port and forwards timing clock and
// transport messages to a handler.
type ClockListener struct {
	port drivers.In
	stop func()
}

// InPortNames lists the available MIDI input ports.
func InPortNames() []string {
	var names []string
	for _, in := range midi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// NewClockListener opens the first input port whose name contains name
// (case-insensitive, empty matches the first port) and starts forwarding
// realtime messages to h.
func NewClockListener(name string, h ClockHandler) (*ClockListener, error) {
	ins := midi.GetInPorts()
	if len(ins) == 0 {
		return nil, fmt.Errorf("no MIDI input ports found")
	}

	var port drivers.In
	for _, in := range ins {
		if name == "" || strings.Contains(strings.ToLower(in.String()), strings.ToLower(name)) {
			port = in
			break
		}
	}
	if port == nil {
		return nil, fmt.Errorf("no MIDI input port matching %q", name)
	}

	if err := port.Open(); err != nil {
		return nil, fmt.Errorf("failed to open port %s: %w", port.String(), err)
	}

	stop, err := port.Listen(func(data []byte, timestamp int32) {
		dispatchRealtime(data, h)
	}, drivers.ListenConfig{TimeCode: true})
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to listen on port %s: %w", port.String(), err)
	}

	return &ClockListener{port: port, stop: stop}, nil
}

// dispatchRealtime routes one raw MIDI message to the handler. Continue is
// treated as a Start so the tempo estimator re-anchors to the new stream.
func dispatchRealtime(data []byte, h ClockHandler) {
	if len(data) < 1 {
		return
	}
	switch data[0] {
	case statusClock:
		h.OnClockPulse()
	case statusStart, statusContinue:
		h.OnStart()
	case statusStop:
		h.OnStop()
	}
}

// Port returns the name of the open input port.
func (l *ClockListener) Port() string {
	if l.port == nil {
		return ""
	}
	return l.port.String()
}

// Close stops the listener and releases the port.
func (l *ClockListener) Close() error {
	if l.stop != nil {
		l.stop()
		l.stop = nil
	}
	if l.port == nil {
		return nil
	}
	err := l.port.Close()
	l.port = nil
	return err
}
