package cmd

import (
	"bytes"
	"path/filepath"

	"github.com/jsphweid/lilyscore/constants"
	"github.com/jsphweid/lilyscore/logger"
	"github.com/jsphweid/lilyscore/midi"
	"github.com/jsphweid/lilyscore/scorefile"
	"github.com/jsphweid/lilyscore/util"
	"github.com/spf13/cobra"
)

var (
	midiOut      string
	midiTempo    float64
	midiVelocity uint8
)

func init() {
	midiCmd.Flags().StringVarP(&midiOut, "out", "o", "", "output .mid path (defaults to the out dir)")
	midiCmd.Flags().Float64Var(&midiTempo, "tempo", constants.DefaultTempo, "quarter notes per minute")
	midiCmd.Flags().Uint8Var(&midiVelocity, "velocity", constants.DefaultVelocity, "note-on velocity")
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi <score.yaml|score.json>",
	Short: "Exports a score file as a Standard MIDI File",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := midiOut
		if out == "" {
			out = filepath.Join(constants.GetOutDir(), util.ReplaceExt(filepath.Base(args[0]), ".mid"))
		}
		opts := midi.DefaultExportOptions()
		opts.Tempo = midiTempo
		opts.Velocity = midiVelocity
		return exportMidi(args[0], out, opts)
	},
}

func exportMidi(in string, out string, opts midi.ExportOptions) error {
	s, err := scorefile.LoadFile(in)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := midi.WriteScore(&buf, s, opts); err != nil {
		return err
	}
	if err := util.WriteFile(out, buf.Bytes()); err != nil {
		return err
	}
	logger.L().Info("midi.written", "in", in, "out", out, "bytes", buf.Len())
	return nil
}
