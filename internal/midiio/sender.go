// Package midiio connects the engine to real MIDI ports: note output on a
// chosen out port and transport-clock input from a chosen in port.
package midiio

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// CloseDriver shuts down the underlying MIDI driver. Call once on exit,
// after every port is closed.
func CloseDriver() {
	midi.CloseDriver()
}

// Sender delivers the engine's note events to one MIDI output port on a
// fixed channel.
type Sender struct {
	port    drivers.Out
	send    func(msg midi.Message) error
	channel uint8
}

// OutPortNames lists the available MIDI output ports.
func OutPortNames() []string {
	var names []string
	for _, out := range midi.GetOutPorts() {
		names = append(names, out.String())
	}
	return names
}

// NewSender opens the first output port whose name contains name
// (case-insensitive). An empty name opens the first available port.
func NewSender(name string, channel uint8) (*Sender, error) {
	outs := midi.GetOutPorts()
	if len(outs) == 0 {
		return nil, fmt.Errorf("no MIDI output ports found")
	}

	var port drivers.Out
	for _, out := range outs {
		if name == "" || strings.Contains(strings.ToLower(out.String()), strings.ToLower(name)) {
			port = out
			break
		}
	}
	if port == nil {
		return nil, fmt.Errorf("no MIDI output port matching %q", name)
	}

	send, err := midi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("failed to open port %s: %w", port.String(), err)
	}

	return &Sender{port: port, send: send, channel: channel % 16}, nil
}

// Port returns the name of the open output port.
func (s *Sender) Port() string {
	if s.port == nil {
		return ""
	}
	return s.port.String()
}

func (s *Sender) NoteOn(note, velocity uint8) {
	if s.send != nil {
		_ = s.send(midi.NoteOn(s.channel, note, velocity))
	}
}

func (s *Sender) NoteOff(note uint8) {
	if s.send != nil {
		_ = s.send(midi.NoteOff(s.channel, note))
	}
}

// AllNotesOff sends CC 123 so nothing downstream is left hanging.
func (s *Sender) AllNotesOff() {
	if s.send != nil {
		_ = s.send(midi.ControlChange(s.channel, 123, 0))
	}
}

// Close flushes hanging notes and releases the port.
func (s *Sender) Close() error {
	if s.port == nil {
		return nil
	}
	s.AllNotesOff()
	err := s.port.Close()
	s.port = nil
	s.send = nil
	return err
}
