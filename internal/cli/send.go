package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/artpar/apitester/internal/app"
	"github.com/artpar/apitester/internal/core"
	"github.com/spf13/cobra"
)

// SendOptions holds options for the send command.
type SendOptions struct {
	Body    string
	Timeout time.Duration
}

// NewSendCommand creates the send command.
func NewSendCommand(global *globalOptions) *cobra.Command {
	opts := &SendOptions{}

	cmd := &cobra.Command{
		Use:   "send METHOD PATH",
		Short: "Send one request and print the result",
		Long: `Send one request to a catalog endpoint and print the rendered result.

POST and PUT send the example body unless --body is given. The command
succeeds whatever the backend answers; it fails only on bad arguments.`,
		Example: `  apitester send GET /api/users/1
  apitester send POST /api/users --body '{"name": "Ada"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, global, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.Body, "body", "d", "", "Request body for POST and PUT")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Request timeout (default from config)")

	return cmd
}

func runSend(cmd *cobra.Command, global *globalOptions, opts *SendOptions, methodArg, path string) error {
	method, err := core.ParseMethod(methodArg)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("body") && !method.HasBody() {
		return fmt.Errorf("--body is only valid for POST and PUT, not %s", method)
	}

	cfg, err := loadConfig(cmd, global)
	if err != nil {
		return err
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}

	logger, closer, err := newLogger(cfg, global, false, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	w := app.New(cfg, app.WithLogger(logger)).Widget()
	if err := w.SelectMethod(method); err != nil {
		return err
	}
	if err := w.SelectEndpoint(path); err != nil {
		if errors.Is(err, core.ErrUnknownEndpoint) {
			return fmt.Errorf("%w (see 'apitester endpoints %s')", err, method)
		}
		return err
	}
	if cmd.Flags().Changed("body") {
		w.SetBody(opts.Body)
	}

	out := w.Send(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), out.Text())
	return nil
}
