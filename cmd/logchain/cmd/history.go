package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/logchain/internal/chain"
	"github.com/msto63/logchain/internal/store"
	"github.com/msto63/logchain/internal/tui/historyviewer"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		severity string
		handler  string
		since    time.Duration
		limit    int
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Zeigt den Verlauf verarbeiteter Nachrichten",
		Long: `Zeigt die von Handlern verarbeiteten Nachrichten aus dem
SQLite-Verlauf an, neueste zuerst. Verworfene Nachrichten erscheinen nicht.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.requireStore()
			if err != nil {
				return err
			}

			filter := store.Filter{Handler: strings.ToLower(handler), Limit: limit}
			if severity != "" {
				sev, err := chain.ParseSeverity(severity)
				if err != nil {
					return err
				}
				filter.Severity = sev.String()
			}
			if since > 0 {
				filter.Since = time.Now().Add(-since)
			}

			entries, err := s.Query(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("Verlauf lesen: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Keine Einträge gefunden.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-5s  %-5s  %s\n",
					e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Severity, e.Handler, e.Message)
			}
			return nil
		},
	}

	historyCmd.Flags().StringVar(&severity, "severity", "", "Nur diese Severity anzeigen")
	historyCmd.Flags().StringVar(&handler, "handler", "", "Nur Einträge dieses Handlers anzeigen")
	historyCmd.Flags().DurationVar(&since, "since", 0, "Nur Einträge der letzten Dauer (z.B. 1h)")
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximale Anzahl an Einträgen")

	historyCmd.AddCommand(
		newHistoryStatsCmd(a),
		newHistoryPruneCmd(a),
		newHistoryViewCmd(a),
	)

	return historyCmd
}

func newHistoryStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Zeigt die Anzahl der Einträge pro Severity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.requireStore()
			if err != nil {
				return err
			}

			stats, err := s.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("Statistik lesen: %w", err)
			}

			names := make([]string, 0, len(stats))
			for _, sev := range chain.AllSeverities() {
				names = append(names, sev.String())
			}
			for name := range stats {
				if _, err := chain.ParseSeverity(name); err != nil {
					names = append(names, name)
				}
			}
			sort.Strings(names[len(chain.AllSeverities()):])

			out := cmd.OutOrStdout()
			var total int64
			for _, name := range names {
				fmt.Fprintf(out, "%-6s %d\n", name, stats[name])
				total += stats[name]
			}
			fmt.Fprintf(out, "%-6s %d\n", "Gesamt", total)
			return nil
		},
	}
}

func newHistoryPruneCmd(a *app) *cobra.Command {
	var olderThan time.Duration

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Löscht alte Einträge aus dem Verlauf",
		Long: `Löscht Einträge, die älter als --older-than sind.
Ohne Angabe gilt store.retention aus der Konfiguration (Standard: 720h).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.requireStore()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("older-than") {
				olderThan = a.cfg.Store.Retention.Duration
			}
			if olderThan <= 0 {
				return fmt.Errorf("--older-than muss positiv sein: %s", olderThan)
			}

			n, err := s.Prune(cmd.Context(), olderThan)
			if err != nil {
				return fmt.Errorf("Verlauf bereinigen: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d Einträge gelöscht (älter als %s)\n", n, olderThan)
			return nil
		},
	}

	pruneCmd.Flags().DurationVar(&olderThan, "older-than", 0, "Einträge älter als diese Dauer löschen (z.B. 168h)")
	return pruneCmd
}

func newHistoryViewCmd(a *app) *cobra.Command {
	var maxEntries int

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Startet den interaktiven Verlaufs-Viewer",
		Long: `Startet den interaktiven Verlaufs-Viewer.

Tastenkuerzel:
  1-3         Severity togglen (1=INFO, 2=DEBUG, 3=ERROR)
  0           Alle Severities anzeigen
  p / Space   Pause/Resume
  r           Refresh
  a           Auto-Scroll togglen
  g / G       Zum Anfang / Ende springen
  PgUp/PgDn   Scrollen
  q / Ctrl+C  Beenden`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.requireStore()
			if err != nil {
				return err
			}

			cfg := historyviewer.DefaultConfig(s)
			cfg.MaxEntries = maxEntries
			return historyviewer.Run(cfg)
		},
	}

	viewCmd.Flags().IntVar(&maxEntries, "max-entries", 1000, "Maximale Anzahl der angezeigten Einträge")
	return viewCmd
}
