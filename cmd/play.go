package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/icco/padsynth/internal/audio"
	"github.com/icco/padsynth/internal/engine"
	"github.com/icco/padsynth/internal/midiio"
	"github.com/icco/padsynth/internal/scales"
	"github.com/icco/padsynth/internal/tui"
)

var (
	midiOutName string
	clockInName string
	midiChannel int
	swingAmount float64
	rootNote    int
	scaleName   string
	riffProfile bool
	chordStyle  bool
	boogieMode  bool
	noAudio     bool
	noMidi      bool
	debugLog    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the live performance engine",
	Long: `Start the live performance engine with the keyboard standing in for the pad.

Notes go to the built-in synthesizer and, when available, to a MIDI output
port. Point --clock-in at a port carrying MIDI timing clock to sync boogie
mode to an external sequencer or drum machine.

Example:
  padsynth play --clock-in "Drum Machine" --boogie --swing 0.4
`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&midiOutName, "midi-out", "", "MIDI output port name (substring match, first port if empty)")
	playCmd.Flags().StringVar(&clockInName, "clock-in", "", "MIDI input port for timing clock (substring match)")
	playCmd.Flags().IntVar(&midiChannel, "channel", 0, "MIDI output channel (0-15)")
	playCmd.Flags().Float64Var(&swingAmount, "swing", 0, "swing amount for boogie mode (0-1)")
	playCmd.Flags().IntVar(&rootNote, "root", 60, "scale root MIDI note")
	playCmd.Flags().StringVar(&scaleName, "scale", "major", "scale mode (major, minor, harmonic-minor, melodic-minor, lydian, mixolydian, dorian)")
	playCmd.Flags().BoolVar(&riffProfile, "riff", false, "start in the riff note profile")
	playCmd.Flags().BoolVar(&chordStyle, "chords", false, "start in the chord playstyle")
	playCmd.Flags().BoolVar(&boogieMode, "boogie", false, "start in rhythmic boogie mode")
	playCmd.Flags().BoolVar(&noAudio, "no-audio", false, "disable the built-in synthesizer")
	playCmd.Flags().BoolVar(&noMidi, "no-midi", false, "disable MIDI note output")
	playCmd.Flags().BoolVar(&debugLog, "debug", false, "write debug logs to padsynth.log")
	rootCmd.AddCommand(playCmd)
}

// newLogger routes logs away from the terminal: the TUI owns the screen, so
// debug output goes to a file and everything else is discarded.
func newLogger() (*slog.Logger, func()) {
	if !debugLog {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.Create("padsynth.log")
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { _ = f.Close() }
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	mode, err := scales.ParseMode(scaleName)
	if err != nil {
		return err
	}
	if midiChannel < 0 || midiChannel > 15 {
		return fmt.Errorf("channel %d out of range 0-15", midiChannel)
	}

	var ports tui.Ports

	var sender engine.NoteSender
	if !noMidi {
		s, err := midiio.NewSender(midiOutName, uint8(midiChannel))
		if err != nil {
			if midiOutName != "" {
				return err
			}
			logger.Warn("MIDI output unavailable", "err", err)
		} else {
			defer s.Close()
			sender = s
			ports.Out = s.Port()
		}
	}
	defer midiio.CloseDriver()

	var voices engine.VoiceBank
	if !noAudio {
		synth, err := audio.NewSynth()
		if err != nil {
			return fmt.Errorf("failed to initialize audio: %w", err)
		}
		defer synth.Close()
		voices = synth
	}

	eng := engine.New(engine.Config{
		Midi:   sender,
		Voices: voices,
		Scale:  scales.New(rootNote, 0, mode),
		Logger: logger,
	})
	eng.SetSwing(swingAmount)
	if riffProfile {
		eng.SetProfile(engine.ProfileRiff)
	}
	if chordStyle {
		eng.SetStyle(engine.StyleChord)
	}
	eng.SetRhythmic(boogieMode)

	listener, err := midiio.NewClockListener(clockInName, eng)
	if err != nil {
		if clockInName != "" {
			return err
		}
		logger.Warn("no MIDI clock input", "err", err)
	} else {
		defer listener.Close()
		ports.Clock = listener.Port()
	}

	p := tea.NewProgram(tui.New(eng, ports), tea.WithAltScreen())

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	eng.Silence()
	return nil
}
