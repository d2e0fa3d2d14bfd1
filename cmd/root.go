package cmd

import (
	"github.com/jsphweid/lilyscore/logger"
	"github.com/spf13/cobra"
)

var (
	debug   bool
	jsonLog bool
)

var rootCmd = &cobra.Command{
	Use:   "lilyscore",
	Short: "Typed scores to LilyPond source",
	Long: `lilyscore turns scores written as YAML or JSON into LilyPond .ly
source and Standard MIDI Files, and can serve the same over HTTP.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(logger.Config{Debug: debug, JSON: jsonLog})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "log as JSON")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
