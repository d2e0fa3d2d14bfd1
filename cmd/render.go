package cmd

import (
	"fmt"

	"github.com/jsphweid/lilyscore/constants"
	"github.com/jsphweid/lilyscore/lilypond"
	"github.com/jsphweid/lilyscore/logger"
	"github.com/jsphweid/lilyscore/model"
	"github.com/jsphweid/lilyscore/scorefile"
	"github.com/jsphweid/lilyscore/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	out      string
	absolute bool
	language string
	version  string
}

var renderOpts renderFlags

func init() {
	addRenderFlags(renderCmd, &renderOpts)
	rootCmd.AddCommand(renderCmd)
}

func addRenderFlags(c *cobra.Command, f *renderFlags) {
	c.Flags().StringVarP(&f.out, "out", "o", "", "output .ly path (stdout when empty)")
	c.Flags().BoolVar(&f.absolute, "absolute", false, "write absolute octaves instead of \\relative")
	c.Flags().StringVar(&f.language, "language", "english", "note name language: english or nederlands")
	c.Flags().StringVar(&f.version, "lilypond-version", constants.GetLilyPondVersion(), "version for the \\version statement")
}

var renderCmd = &cobra.Command{
	Use:   "render <score.yaml|score.json>",
	Short: "Renders a score file to LilyPond source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := renderOpts.options()
		if err != nil {
			return err
		}
		if renderOpts.out == "" {
			source, _, err := renderFile(args[0], opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), source)
			return err
		}
		return renderToFile(args[0], renderOpts.out, opts)
	},
}

func (f renderFlags) options() (lilypond.Options, error) {
	return renderOptions(f.absolute, f.language, f.version)
}

func renderOptions(absolute bool, language string, version string) (lilypond.Options, error) {
	opts := lilypond.DefaultOptions()
	lang, err := lilypond.ParseLanguage(language)
	if err != nil {
		return opts, err
	}
	opts.Language = lang
	if absolute {
		opts.Mode = lilypond.Absolute
	}
	if version != "" {
		opts.Version = version
	}
	return opts, nil
}

func renderFile(path string, opts lilypond.Options) (string, model.Score, error) {
	s, err := scorefile.LoadFile(path)
	if err != nil {
		return "", s, err
	}
	source, err := lilypond.RenderWithOptions(s, opts)
	if err != nil {
		return "", s, errors.Wrapf(err, "could not render %s", path)
	}
	return source, s, nil
}

func renderToFile(in string, out string, opts lilypond.Options) error {
	source, s, err := renderFile(in, opts)
	if err != nil {
		return err
	}
	if err := util.WriteFile(out, []byte(source)); err != nil {
		return err
	}
	logger.L().Info("render.written", "in", in, "out", out, "voices", len(s.Voices), "mode", opts.Mode.String())
	return nil
}
