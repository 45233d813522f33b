package cli

import (
	"github.com/spf13/cobra"
)

func newStartCommand(ops func() Ops) *cobra.Command {
	var imageTag, profileName string
	cmd := &cobra.Command{
		Use:   "start [container]",
		Short: "Start an environment and attach a shell, creating it if needed",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops().Start(cmd.Context(), firstArg(args), imageTag, profileName)
		},
	}
	cmd.Flags().StringVar(&imageTag, "image", "", "image tag for a new container")
	cmd.Flags().StringVar(&profileName, "profile", "", "creation profile for a new container")
	return cmd
}

func newStopCommand(ops func() Ops) *cobra.Command {
	return &cobra.Command{
		Use:   "stop [container]",
		Short: "Stop a running environment",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops().Stop(cmd.Context(), firstArg(args))
		},
	}
}

func newInstallCommand(ops func() Ops) *cobra.Command {
	var buildDir string
	cmd := &cobra.Command{
		Use:   "install [tag]",
		Short: "Pull an environment image, or build one locally",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops().Install(cmd.Context(), firstArg(args), buildDir)
		},
	}
	cmd.Flags().StringVar(&buildDir, "build", "", "build a local image from this directory instead of pulling")
	return cmd
}

func newUpdateCommand(ops func() Ops) *cobra.Command {
	return &cobra.Command{
		Use:   "update [tag]",
		Short: "Update an installed image from the registry",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops().Update(cmd.Context(), firstArg(args))
		},
	}
}

func newUninstallCommand(ops func() Ops) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall [tag]",
		Short: "Remove an installed image",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops().Uninstall(cmd.Context(), firstArg(args))
		},
	}
}

func newRemoveCommand(ops func() Ops) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [container]",
		Short: "Remove an environment container",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops().Remove(cmd.Context(), firstArg(args))
		},
	}
}

func newExecCommand(ops func() Ops) *cobra.Command {
	var background, temporary bool
	var containerName string
	cmd := &cobra.Command{
		Use:   "exec [command...]",
		Short: "Run a command inside an environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops().Exec(cmd.Context(), containerName, args, background, temporary)
		},
	}
	cmd.Flags().StringVarP(&containerName, "container", "c", "", "target container (prompted when omitted)")
	cmd.Flags().BoolVarP(&background, "background", "b", false, "detach and return immediately")
	cmd.Flags().BoolVar(&temporary, "tmp", false, "run in a disposable container")
	// Everything after the first positional is the command to run, flags
	// included.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newInfoCommand(ops func() Ops) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show host, image and container status",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ops().Info(cmd.Context())
		},
	}
}
