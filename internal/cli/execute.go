// Package cli builds the redcell command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"redcell/internal/logging"
)

// Exit codes returned by Execute.
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitInvalidUsage = 2
)

// Ops is the operation surface the commands call. *manager.Manager
// implements it; tests substitute fakes.
type Ops interface {
	Start(ctx context.Context, name, imageTag, profileName string) error
	Stop(ctx context.Context, name string) error
	Install(ctx context.Context, tag, buildDir string) error
	Update(ctx context.Context, tag string) error
	Uninstall(ctx context.Context, tag string) error
	Remove(ctx context.Context, name string) error
	Exec(ctx context.Context, name string, cmd []string, background, temporary bool) error
	Info(ctx context.Context) error
}

// OpsFactory builds the operation surface once the verbosity flags are
// parsed, so the logger level is fixed before any work starts. The
// returned closer releases the manager's resources.
type OpsFactory func(level logging.Level) (Ops, func(), error)

// Execute runs the CLI and returns the process exit code. Errors are
// reported on errOut.
func Execute(ctx context.Context, args []string, newOps OpsFactory, versionText string, errOut io.Writer) int {
	cmd := NewRootCommand(newOps, versionText)
	cmd.SetArgs(args)
	cmd.SetErr(errOut)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "[ERROR] %s\n", err)
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			return ExitInvalidUsage
		}
		return ExitRuntimeError
	}
	return ExitSuccess
}

// NewRootCommand builds the root command tree.
func NewRootCommand(newOps OpsFactory, versionText string) *cobra.Command {
	var verbosity int
	var ops Ops
	var closeOps func()

	root := &cobra.Command{
		Use:           "redcell",
		Short:         "Containerized pentesting environments",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			var err error
			ops, closeOps, err = newOps(verbosityLevel(verbosity))
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if closeOps != nil {
				closeOps()
			}
		},
	}
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase output detail (-v verbose, -vv debug)")

	opsRef := func() Ops { return ops }
	root.AddCommand(
		newStartCommand(opsRef),
		newStopCommand(opsRef),
		newInstallCommand(opsRef),
		newUpdateCommand(opsRef),
		newUninstallCommand(opsRef),
		newRemoveCommand(opsRef),
		newExecCommand(opsRef),
		newInfoCommand(opsRef),
		newVersionCommand(versionText),
	)
	return root
}

func verbosityLevel(verbosity int) logging.Level {
	switch {
	case verbosity >= 2:
		return logging.LevelDebug
	case verbosity == 1:
		return logging.LevelVerbose
	default:
		return logging.LevelInfo
	}
}

type usageError struct {
	err error
}

func (u *usageError) Error() string {
	if u.err == nil {
		return "invalid usage"
	}
	return u.err.Error()
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > n {
			return &usageError{err: fmt.Errorf("accepts at most %d argument(s)", n)}
		}
		return nil
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func newVersionCommand(versionText string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  maxArgs(0),
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(versionText)
		},
	}
}
