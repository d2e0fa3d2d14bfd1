package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/lilyscore/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Lists the notes of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

func inspect(w io.Writer, path string) error {
	mf, err := midi.ReadFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "tracks: %v\n", len(mf.Tracks))
	for _, n := range midi.Notes(mf) {
		fmt.Fprintf(w, "track %d ch %d key %3d start %6d len %5d\n", n.Track, n.Channel, n.Key, n.Start, n.Length)
	}
	return nil
}
