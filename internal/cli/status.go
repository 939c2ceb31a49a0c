package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/artpar/apitester/internal/app"
	"github.com/artpar/apitester/internal/core"
	"github.com/artpar/apitester/internal/poller"
	"github.com/spf13/cobra"
)

// StatusOptions holds options for the status command.
type StatusOptions struct {
	Watch    bool
	Interval time.Duration
}

// NewStatusCommand creates the status command.
func NewStatusCommand(global *globalOptions) *cobra.Command {
	opts := &StatusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check backend health",
		Long: `Check the backend health endpoint once and print the badge text.

With --watch the check repeats on the poll interval until interrupted,
printing a line each time the status changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, global, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Keep polling until interrupted")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "Poll interval (default from config)")

	return cmd
}

func runStatus(cmd *cobra.Command, global *globalOptions, opts *StatusOptions) error {
	cfg, err := loadConfig(cmd, global)
	if err != nil {
		return err
	}
	if opts.Interval > 0 {
		cfg.PollInterval = opts.Interval
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, closer, err := newLogger(cfg, global, false, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	out := cmd.OutOrStdout()

	if !opts.Watch {
		application := app.New(cfg, app.WithLogger(logger))
		application.Poller().Tick(cmd.Context())
		fmt.Fprintln(out, application.Badge().Text())
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	application := app.New(cfg,
		app.WithLogger(logger),
		app.WithPollerOptions(poller.OnResult(func(r poller.Result) {
			if !r.Changed {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			printTransition(out, r)
		})),
	)
	return watch(ctx, application.Poller())
}

func watch(ctx context.Context, p *poller.Poller) error {
	handle := p.Start(ctx)
	<-handle.Done()
	return nil
}

func printTransition(out io.Writer, r poller.Result) {
	line := fmt.Sprintf("%s  %s", r.CheckedAt.UTC().Format(core.TimestampLayout), r.Availability.BadgeText())
	if r.Err != nil && r.Availability == core.AvailabilityOffline {
		line += "  (" + r.Err.Error() + ")"
	}
	fmt.Fprintln(out, line)
}
