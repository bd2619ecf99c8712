package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/logchain/internal/chain"
	"github.com/msto63/logchain/internal/command"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		scriptFile  string
		skipStartup bool
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Führt die Startnachrichten und ein optionales Skript aus",
		Long: `Sammelt Nachrichten in der Befehlswarteschlange und führt sie
anschließend in Einfügereihenfolge genau einmal aus.

Zuerst werden die Startnachrichten aus der Konfiguration ([[startup]])
eingereiht, danach die Zeilen des Skripts. Das Skript verwendet dasselbe
Format wie die Ausgabe:

  # Kommentar
  INFO: System gestartet
  ERROR: Fehler in Modul X

Schlägt ein Handler fehl, bricht die Ausführung ab und der Exit-Code ist 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := a.newQueue()

			if !skipStartup {
				if err := a.enqueueStartup(q); err != nil {
					return err
				}
			}

			if scriptFile != "" {
				if err := a.enqueueScript(q, scriptFile, cmd.InOrStdin()); err != nil {
					return err
				}
			}

			n, err := q.RunAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("Ausführung nach %d Befehlen abgebrochen: %w", n, err)
			}

			a.logger.Info("Queue executed", "commands", n)
			return nil
		},
	}

	runCmd.Flags().StringVarP(&scriptFile, "script", "s", "", "Skript-Datei mit \"<SEVERITY>: <Nachricht>\" Zeilen (- für stdin)")
	runCmd.Flags().BoolVar(&skipStartup, "no-startup", false, "Startnachrichten aus der Konfiguration überspringen")

	return runCmd
}

// enqueueStartup queues the configured startup messages at their entry points
func (a *app) enqueueStartup(q *command.Queue) error {
	for i, msg := range a.cfg.Startup {
		sev, err := chain.ParseSeverity(msg.Severity)
		if err != nil {
			return fmt.Errorf("Startnachricht %d: %w", i+1, err)
		}
		target, err := a.entry(msg.Entry)
		if err != nil {
			return fmt.Errorf("Startnachricht %d: %w", i+1, err)
		}
		q.Enqueue(target, msg.Message, sev)
	}
	return nil
}

// enqueueScript queues every script line at the head of the chain
func (a *app) enqueueScript(q *command.Queue, path string, stdin io.Reader) error {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("Skript öffnen: %w", err)
		}
		defer f.Close()
		r = f
	}

	entries, err := command.ParseScript(r)
	if err != nil {
		return fmt.Errorf("Skript %s: %w", path, err)
	}

	for _, e := range entries {
		q.Enqueue(a.chain, e.Message, e.Severity)
	}
	a.logger.Debug("Script loaded", "path", path, "entries", len(entries))
	return nil
}
