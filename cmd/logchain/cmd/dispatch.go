package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/logchain/internal/chain"
)

func newDispatchCmd(a *app) *cobra.Command {
	var (
		severity string
		entry    string
		without  []string
	)

	dispatchCmd := &cobra.Command{
		Use:   "dispatch MESSAGE...",
		Short: "Sendet eine einzelne Nachricht durch die Kette",
		Long: `Sendet eine Nachricht sofort durch die Handler-Kette.

Mit --entry beginnt die Nachricht bei einem bestimmten Handler; Handler
davor sehen sie nicht. Mit --without werden Handler für diesen Aufruf
entfernt. Findet sich kein passender Handler, wird die Nachricht verworfen.

Beispiele:
  logchain dispatch --severity INFO System gestartet
  logchain dispatch --severity ERROR --entry debug Verbindung verloren
  logchain dispatch --severity DEBUG --without debug wird verworfen`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sev, err := chain.ParseSeverity(severity)
			if err != nil {
				return err
			}

			target, err := a.entry(entry)
			if err != nil {
				return fmt.Errorf("Einstiegspunkt: %w", err)
			}
			for _, name := range without {
				if !target.Remove(strings.ToLower(name)) {
					return fmt.Errorf("--without: %w: %s", chain.ErrHandlerNotFound, name)
				}
			}

			q := a.newQueue()
			c := q.Enqueue(target, strings.Join(args, " "), sev)
			if _, err := q.RunAll(cmd.Context()); err != nil {
				return err
			}

			if !c.Handled() {
				a.logger.Info("Message dropped, no handler accepted it",
					"severity", sev.String(),
					"handlers", strings.Join(target.Handlers(), ","))
			}
			return nil
		},
	}

	dispatchCmd.Flags().StringVar(&severity, "severity", "INFO", "Severity der Nachricht (INFO, DEBUG, ERROR)")
	dispatchCmd.Flags().StringVar(&entry, "entry", "", "Handler, bei dem die Nachricht einsteigt (info, debug, error)")
	dispatchCmd.Flags().StringSliceVar(&without, "without", nil, "Handler, die für diesen Aufruf entfernt werden")

	return dispatchCmd
}
