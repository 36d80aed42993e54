package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "padsynth",
	Short: "A game-pad rhythmic MIDI performance engine",
	Long: `padsynth turns a handful of buttons into a live MIDI instrument.

Ten note buttons play scales, chords or a canned riff through a built-in
synthesizer and any MIDI output. An external MIDI clock can drive the boogie
mode, which locks onto the incoming tempo and schedules notes on swung or
triplet subdivisions of the beat.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
