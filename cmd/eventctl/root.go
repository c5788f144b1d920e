package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SeaCloudHub/eventhandler/adapters/event"
	"github.com/SeaCloudHub/eventhandler/internal/scenario"
	"github.com/SeaCloudHub/eventhandler/pkg/config"
	"github.com/SeaCloudHub/eventhandler/pkg/sentry"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func newRootCmd(cfg *config.Config, logger *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:           "eventctl",
		Short:         "Drive an in-process event registry from scenario files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(cfg, logger), newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the eventctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func newRunCmd(cfg *config.Config, logger *zap.SugaredLogger) *cobra.Command {
	var (
		verbose  bool
		tolerate bool
	)

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Register, bind and fire the events described in a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(cfg.Events.Output, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeOut()

			opts := event.ParseFromConfig(cfg, out)
			opts = append(opts, event.WithLogger(logger), event.WithFailureReporter(sentry.FailureReporter()))
			opts = append(opts, s.Options()...)
			if cmd.Flags().Changed("verbose") {
				opts = append(opts, event.WithVerbose(verbose))
			}
			if cmd.Flags().Changed("tolerate") {
				opts = append(opts, event.WithTolerateExceptions(tolerate))
			}

			registry, err := event.New(opts...)
			if err != nil {
				return err
			}

			report, err := s.Run(cmd.Context(), registry, logger)
			if report != nil {
				for _, f := range report.Fired {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", f.Event, f.OK)
				}
			}
			if err != nil {
				return err
			}

			logger.Debugw("scenario finished", "registry", registry.String())

			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "write diagnostics to the output sink")
	cmd.Flags().BoolVarP(&tolerate, "tolerate", "t", false, "keep firing when a callback fails")

	return cmd
}

// openOutput resolves EVENTS_OUTPUT: stdout, stderr (or empty) or a file path
// opened for appending.
func openOutput(target string, stderr io.Writer) (io.Writer, func(), error) {
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "", "stderr":
		return stderr, func() {}, nil
	case "stdout":
		return os.Stdout, func() {}, nil
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open output %s", target)
	}

	return f, func() { _ = f.Close() }, nil
}
