package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/lilyscore/constants"
	"github.com/jsphweid/lilyscore/lilypond"
	"github.com/jsphweid/lilyscore/logger"
	"github.com/jsphweid/lilyscore/util"
	"github.com/spf13/cobra"
)

var (
	watchOpts     renderFlags
	watchInterval time.Duration
	watchSettle   time.Duration
)

func init() {
	addRenderFlags(watchCmd, &watchOpts)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 250*time.Millisecond, "how often to check the score file")
	watchCmd.Flags().DurationVar(&watchSettle, "debounce", 300*time.Millisecond, "quiet period before re-rendering")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <score.yaml|score.json>",
	Short: "Re-renders a score file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := watchOpts.options()
		if err != nil {
			return err
		}
		out := watchOpts.out
		if out == "" {
			out = filepath.Join(constants.GetOutDir(), util.ReplaceExt(filepath.Base(args[0]), ".ly"))
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watch(ctx, args[0], out, opts, watchInterval, watchSettle)
	},
}

// watch polls in for modification and renders it to out once changes have
// been quiet for settle. It returns when ctx is done.
func watch(ctx context.Context, in string, out string, opts lilypond.Options, interval time.Duration, settle time.Duration) error {
	rerender := func() {
		if err := renderToFile(in, out, opts); err != nil {
			logger.L().Error("watch.render_failed", "in", in, "err", err)
		}
	}
	debounced := debounce.New(settle)

	var last time.Time
	if st, err := os.Stat(in); err == nil {
		last = st.ModTime()
	}
	rerender()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			st, err := os.Stat(in)
			if err != nil {
				logger.L().Warn("watch.stat_failed", "in", in, "err", err)
				continue
			}
			if !st.ModTime().Equal(last) {
				last = st.ModTime()
				logger.L().Debug("watch.changed", "in", in)
				debounced(rerender)
			}
		}
	}
}
