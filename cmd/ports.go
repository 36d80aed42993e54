package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icco/padsynth/internal/midiio"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List available MIDI ports",
	Long:  `List the MIDI input and output ports usable with --clock-in and --midi-out.`,
	Run:   runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) {
	defer midiio.CloseDriver()

	fmt.Println("MIDI inputs:")
	ins := midiio.InPortNames()
	if len(ins) == 0 {
		fmt.Println("  (none)")
	}
	for _, name := range ins {
		fmt.Printf("  %s\n", name)
	}

	fmt.Println("MIDI outputs:")
	outs := midiio.OutPortNames()
	if len(outs) == 0 {
		fmt.Println("  (none)")
	}
	for _, name := range outs {
		fmt.Printf("  %s\n", name)
	}
}
