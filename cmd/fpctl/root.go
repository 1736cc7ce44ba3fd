package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	userapp "flexible-project/application/user"
	"flexible-project/infrastructure/persistence"
	apperrors "flexible-project/pkg/errors"
	"flexible-project/pkg/logger"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2

	defaultTimeout = time.Minute
)

var errUsage = errors.New("usage")

// opener builds the use cases for a config path and returns a release func.
type opener func(ctx context.Context, configPath string) (*userapp.ApplicationService, func(), error)

type cli struct {
	open       opener
	configPath string
	outputJSON bool
	noColor    bool
	verbose    bool
	timeout    time.Duration

	users   *userapp.ApplicationService
	release func()
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func newRootCmd(open opener) (*cobra.Command, *cli) {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:           "fpctl",
		Short:         "Manage flexible-project users",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.noColor {
				color.NoColor = true
			}
			if cmd.Name() == "help" {
				return nil
			}
			cmd.SetContext(persistence.ContextWithRequestID(cmd.Context(), uuid.NewString()))
			users, release, err := c.open(cmd.Context(), c.configPath)
			if err != nil {
				return fmt.Errorf("startup failed: %w", err)
			}
			c.users, c.release = users, release
			if c.verbose {
				logger.UpdateLevel("debug")
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.close()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Config file path")
	root.PersistentFlags().BoolVar(&c.outputJSON, "json", false, "Output in JSON format")
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log debug output to stderr")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", defaultTimeout, "Timeout for the whole command")

	root.AddCommand(newCreateCmd(c))
	root.AddCommand(newGetCmd(c))
	root.AddCommand(newListCmd(c))
	root.AddCommand(newUpdateCmd(c))
	root.AddCommand(newDeleteCmd(c))
	return root, c
}

// close is safe to call more than once; PersistentPostRun is skipped when
// RunE fails.
func (c *cli) close() {
	if c.release != nil {
		c.release()
		c.release = nil
	}
}

func run(args []string, stdout, stderr io.Writer, open opener) int {
	root, c := newRootCmd(open)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer c.close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage), strings.HasPrefix(err.Error(), "unknown command"):
		fmt.Fprintln(stderr, errorColor.Sprint("error: ")+err.Error())
		fmt.Fprintln(stderr, "Run 'fpctl --help' for usage.")
		return exitUsage
	default:
		c.renderError(stderr, err)
		return exitFailure
	}
}

// withTimeout bounds a subcommand by --timeout.
func (c *cli) withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout := c.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(cmd.Context(), timeout)
}

func (c *cli) renderError(w io.Writer, err error) {
	appErr := apperrors.MapError(err)
	if c.outputJSON {
		_ = json.NewEncoder(w).Encode(appErr)
		return
	}
	msg := fmt.Sprintf("%s %s", errorColor.Sprint(string(appErr.Code)), appErr.Message)
	if appErr.Field != "" {
		msg += " (field " + appErr.Field + ")"
	}
	if appErr.Err != nil {
		msg += ": " + appErr.Err.Error()
	}
	fmt.Fprintln(w, msg)
}
