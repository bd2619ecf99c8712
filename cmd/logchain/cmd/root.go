package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/logchain/pkg/core/version"
)

// newRootCmd builds the command tree around a fresh app
func newRootCmd() (*cobra.Command, *app) {
	opts := &appOptions{}
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "logchain",
		Short: "logchain - Severity-Kette mit Befehlswarteschlange",
		Long: `logchain leitet Log-Nachrichten durch eine Kette von Handlern.

Jeder Handler ist für genau eine Severity zuständig:
  info   - INFO-Nachrichten
  debug  - DEBUG-Nachrichten
  error  - ERROR-Nachrichten

Der erste passende Handler gibt die Nachricht als "<SEVERITY>: <Nachricht>"
aus. Nachrichten ohne passenden Handler werden still verworfen.
Nachrichten können gesammelt und später in Reihenfolge ausgeführt werden.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	rootCmd.SetVersionTemplate(version.String() + "\n")
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Config-Datei (.toml, .yaml, .json5; default: $LOGCHAIN_CONFIG oder ./configs/logchain.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose Output")

	rootCmd.AddCommand(
		newRunCmd(a),
		newDispatchCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)

	return rootCmd, a
}

// Execute runs the CLI with signal-aware context
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, a := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)

	if cerr := a.close(context.Background()); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		printError(rootCmd.ErrOrStderr(), "logchain", err)
	}
	return err
}

func printError(w io.Writer, msg string, err error) {
	fmt.Fprintf(w, "Fehler: %s: %v\n", msg, err)
}
