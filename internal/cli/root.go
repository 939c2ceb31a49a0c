package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/artpar/apitester/internal/app"
	"github.com/artpar/apitester/internal/config"
	"github.com/artpar/apitester/internal/logging"
	"github.com/artpar/apitester/internal/poller"
	"github.com/artpar/apitester/internal/tui/views"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	ConfigFile string
	BaseURL    string
	LogLevel   string
	LogFormat  string
	LogFile    string
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "apitester",
		Short:         "apitester - a terminal API tester",
		Long:          "apitester sends requests to a demo REST backend and shows its health.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "Config file (default: .apitester.yaml, then the user config dir)")
	flags.StringVar(&opts.BaseURL, "base-url", "", "Backend base URL")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.LogFormat, "log-format", "", "Log format: text, json")
	flags.StringVar(&opts.LogFile, "log-file", "", "Append logs to this file")

	cmd.AddCommand(NewSendCommand(opts))
	cmd.AddCommand(NewEndpointsCommand())
	cmd.AddCommand(NewStatusCommand(opts))

	return cmd
}

// loadConfig resolves the config files and applies flags set on cmd.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	flags := &config.Config{}
	if cmd.Flags().Changed("base-url") {
		flags.BaseURL = opts.BaseURL
	}
	if cmd.Flags().Changed("log-level") {
		flags.LogLevel = opts.LogLevel
	}
	if cmd.Flags().Changed("log-format") {
		flags.LogFormat = opts.LogFormat
	}
	config.Merge(cfg, flags, config.SourceFlag)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger for a command. Interactive sessions own the
// terminal, so they only log when --log-file is given.
func newLogger(cfg *config.Config, opts *globalOptions, interactive bool, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	lc := cfg.Logging()
	if opts.LogFile != "" {
		return logging.OpenFile(opts.LogFile, lc)
	}
	if interactive {
		return logging.Nop(), io.NopCloser(nil), nil
	}
	lc.Output = stderr
	return logging.New(lc), io.NopCloser(nil), nil
}

// tuiModel wraps the MainView for bubbletea
type tuiModel struct {
	view *views.MainView
}

func (m tuiModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.view.Update(msg)
	m.view = updated.(*views.MainView)
	return m, cmd
}

func (m tuiModel) View() string {
	return m.view.View()
}

// runTUI starts the interactive tester with the status poller running.
func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, opts, true, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	statuses := make(chan poller.Result, 8)
	application := app.New(cfg,
		app.WithLogger(logger),
		app.WithPollerOptions(poller.OnResult(func(r poller.Result) {
			// The badge already holds the state; a dropped message only
			// delays the repaint.
			select {
			case statuses <- r:
			default:
			}
		})),
	)

	program := tea.NewProgram(tuiModel{view: views.NewMainView(application.Widget())}, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	handle := application.Poller().Start(ctx)
	defer handle.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case r := <-statuses:
				program.Send(views.StatusMsg{Result: r})
			}
		}
	}()

	logger.Info("starting", "baseUrl", cfg.BaseURL, "pollInterval", cfg.PollInterval)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
