// ============================================================================
// logchain - Severity Dispatch Chain
// ============================================================================
//
// Package:     historyviewer
// Description: Bubbletea model for browsing the dispatch history
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package historyviewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/logchain/internal/chain"
	"github.com/msto63/logchain/internal/store"
	"github.com/msto63/logchain/pkg/core/version"
)

// Model is the main Bubbletea model for the history viewer
type Model struct {
	// State
	width      int
	height     int
	ready      bool
	loading    bool
	paused     bool
	autoScroll bool
	err        error

	// Components
	viewport viewport.Model
	spinner  spinner.Model

	// History state
	allEntries      []*store.Entry
	filteredEntries []*store.Entry
	severityFilter  map[chain.Severity]bool
	bySeverity      map[string]int64

	// Configuration
	store           store.Store
	maxEntries      int
	refreshInterval time.Duration
}

// Config holds history viewer configuration
type Config struct {
	Store           store.Store
	MaxEntries      int
	RefreshInterval time.Duration
}

// DefaultConfig returns default configuration for the given store
func DefaultConfig(s store.Store) Config {
	return Config{
		Store:           s,
		MaxEntries:      1000,
		RefreshInterval: 2 * time.Second,
	}
}

// New creates a new history viewer model
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1000
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 2 * time.Second
	}

	return Model{
		spinner:         sp,
		loading:         true,
		autoScroll:      true,
		severityFilter:  allSeveritiesEnabled(),
		bySeverity:      make(map[string]int64),
		store:           cfg.Store,
		maxEntries:      cfg.MaxEntries,
		refreshInterval: cfg.RefreshInterval,
	}
}

func allSeveritiesEnabled() map[chain.Severity]bool {
	filter := make(map[chain.Severity]bool)
	for _, sev := range chain.AllSeverities() {
		filter[sev] = true
	}
	return filter
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadEntries,
		m.loadStats,
		m.tick(),
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title + filter bar
		footerHeight := 4 // Status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case entriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.allEntries = msg.entries
			m.applyFilters()
			m.updateViewportContent()
			if m.autoScroll {
				m.viewport.GotoBottom()
			}
		}

	case statsLoadedMsg:
		if msg.err == nil {
			m.bySeverity = msg.bySeverity
		}

	case tickMsg:
		if !m.paused {
			cmds = append(cmds, m.loadEntries, m.loadStats)
		}
		cmds = append(cmds, m.tick())
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyRunes:
		key := string(msg.Runes)
		switch key {
		case "1", "2", "3":
			sev := chain.AllSeverities()[key[0]-'1']
			m.severityFilter[sev] = !m.severityFilter[sev]
			m.applyFilters()
			m.updateViewportContent()
			return m, nil

		case "0":
			m.severityFilter = allSeveritiesEnabled()
			m.applyFilters()
			m.updateViewportContent()
			return m, nil

		case "q":
			return m, tea.Quit

		case "p", " ":
			m.paused = !m.paused
			return m, nil

		case "r":
			m.loading = true
			return m, tea.Batch(m.loadEntries, m.loadStats)

		case "a":
			m.autoScroll = !m.autoScroll
			if m.autoScroll {
				m.viewport.GotoBottom()
			}
			return m, nil

		case "g":
			m.viewport.GotoTop()
			m.autoScroll = false
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			m.autoScroll = true
			return m, nil
		}

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		m.autoScroll = false
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil

	case tea.KeyUp:
		m.viewport.LineUp(1)
		m.autoScroll = false
		return m, nil

	case tea.KeyDown:
		m.viewport.LineDown(1)
		return m, nil
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade Verlauf..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(PanelStyle.Width(m.width - 2).Height(m.viewport.Height + 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return b.String()
}

func (m Model) renderHeader() string {
	header := LogoStyle.Render(Logo)
	if m.paused {
		header += "   " + StatusPausedStyle.Render("PAUSIERT")
	}
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderFilterBar renders the severity filter bar
func (m Model) renderFilterBar() string {
	filters := make([]string, 0, len(chain.AllSeverities()))
	for i, sev := range chain.AllSeverities() {
		filters = append(filters, fmt.Sprintf("%d:%s", i+1, RenderFilterStatus(sev.String(), m.severityFilter[sev])))
	}

	content := strings.Join(filters, "  ") + "  " +
		HelpDescStyle.Render(fmt.Sprintf("[%d/%d Einträge]", len(m.filteredEntries), len(m.allEntries)))
	if m.autoScroll {
		content += "  " + FilterActiveStyle.Render("[Auto-Scroll]")
	}

	return FilterBarStyle.Width(m.width - 2).Render(content)
}

// renderStatusBar renders per-severity totals and the load state
func (m Model) renderStatusBar() string {
	counts := make([]string, 0, len(chain.AllSeverities()))
	var total int64
	for _, sev := range chain.AllSeverities() {
		n := m.bySeverity[sev.String()]
		total += n
		counts = append(counts, fmt.Sprintf("%s %d", sev, n))
	}
	left := HelpDescStyle.Render(fmt.Sprintf("Gesamt: %d (%s)", total, strings.Join(counts, ", ")))

	var right string
	switch {
	case m.loading:
		right = m.spinner.View() + " Lade..."
	case m.err != nil:
		right = StatusErrorStyle.Render("Fehler: " + m.err.Error())
	default:
		right = HelpDescStyle.Render("v" + version.Version)
	}

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if padding < 2 {
		padding = 2
	}

	return StatusBarStyle.Width(m.width - 2).Render(left + strings.Repeat(" ", padding) + right)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("1-3", "Severity"),
		RenderKeyHint("0", "Alle"),
		RenderKeyHint("p", "Pause"),
		RenderKeyHint("r", "Refresh"),
		RenderKeyHint("a", "AutoScroll"),
		RenderKeyHint("g/G", "Top/Bottom"),
		RenderKeyHint("q", "Beenden"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent updates the viewport with filtered entries
func (m *Model) updateViewportContent() {
	var content strings.Builder

	for _, e := range m.filteredEntries {
		content.WriteString(formatEntry(e))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// formatEntry renders one row: [TIME] [SEVERITY] [HANDLER] message
func formatEntry(e *store.Entry) string {
	return fmt.Sprintf("%s %s %s %s",
		TimestampStyle.Render(e.Timestamp.Local().Format("15:04:05")),
		RenderSeverityBadge(e.Severity),
		HandlerStyle.Render(fmt.Sprintf("[%-5s]", e.Handler)),
		MessageStyle.Render(e.Message),
	)
}

// applyFilters filters entries based on the severity toggles
func (m *Model) applyFilters() {
	m.filteredEntries = make([]*store.Entry, 0, len(m.allEntries))

	for _, e := range m.allEntries {
		sev, err := chain.ParseSeverity(e.Severity)
		if err == nil && !m.severityFilter[sev] {
			continue
		}
		m.filteredEntries = append(m.filteredEntries, e)
	}
}

// loadEntries loads the newest entries and orders them oldest first
func (m Model) loadEntries() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := m.store.Query(ctx, store.Filter{Limit: m.maxEntries})
	if err != nil {
		return entriesLoadedMsg{err: err}
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entriesLoadedMsg{entries: entries}
}

// loadStats loads per-severity counts
func (m Model) loadStats() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := m.store.Stats(ctx)
	return statsLoadedMsg{bySeverity: stats, err: err}
}

// Run starts the history viewer TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
