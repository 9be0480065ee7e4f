package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/jots/internal/files"
	"github.com/faizmokh/jots/internal/jots"
	"github.com/faizmokh/jots/internal/notes"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	addStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Model browses daily notes one day at a time and collects them on demand.
type Model struct {
	ctx     context.Context
	service *notes.Service
	keys    keyMap
	help    help.Model

	currentDate time.Time
	result      notes.Result
	missing     bool
	selected    int

	mode     mode
	showDiff bool
	force    bool

	loading    bool
	statusLine string
	errorLine  string
}

type mode uint8

const (
	modeNormal mode = iota
	modeConfirmCollect
)

type noteLoadedMsg struct {
	date    time.Time
	result  notes.Result
	missing bool
	err     error
}

type collectResultMsg struct {
	date   time.Time
	result notes.Result
	err    error
}

// NewModel seeds a Bubble Tea model with required collaborators.
func NewModel(ctx context.Context, service *notes.Service) Model {
	return Model{
		ctx:         ctx,
		service:     service,
		keys:        defaultKeys(),
		help:        help.New(),
		currentDate: today(),
		mode:        modeNormal,
		loading:     true,
		statusLine:  "Loading today's note...",
	}
}

// Init loads the note for the initial date.
func (m Model) Init() tea.Cmd {
	return m.loadNoteCmd(m.currentDate)
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case noteLoadedMsg:
		return m.handleNoteLoaded(msg)
	case collectResultMsg:
		return m.handleCollectResult(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeConfirmCollect {
		switch msg.String() {
		case "y", "Y", "enter":
			return m.collect()
		case "n", "N", "esc":
			m.mode = modeNormal
			m.statusLine = "Collect cancelled."
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	entries := m.result.Report.Entries
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(entries)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Prev):
		return m.gotoDate(m.currentDate.AddDate(0, 0, -1))
	case key.Matches(msg, m.keys.Next):
		return m.gotoDate(m.currentDate.AddDate(0, 0, 1))
	case key.Matches(msg, m.keys.Today):
		return m.gotoDate(today())
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Diff):
		m.showDiff = !m.showDiff
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Collect):
		return m.beginCollect(false)
	case key.Matches(msg, m.keys.Force):
		return m.beginCollect(true)
	}
	return m, nil
}

func (m Model) beginCollect(force bool) (tea.Model, tea.Cmd) {
	if m.loading || m.missing {
		return m, nil
	}
	if !force && !m.result.Changed {
		m.statusLine = "Nothing to collect."
		m.errorLine = ""
		return m, nil
	}
	if force && !m.result.Report.HasSection && !m.result.Changed {
		m.statusLine = "No section to re-sort."
		m.errorLine = ""
		return m, nil
	}
	m.mode = modeConfirmCollect
	m.force = force
	m.statusLine = ""
	m.errorLine = ""
	return m, nil
}

func (m Model) collect() (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.loading = true
	m.statusLine = "Collecting..."
	m.errorLine = ""
	return m, m.collectCmd(m.currentDate, m.force)
}

func (m Model) handleNoteLoaded(msg noteLoadedMsg) (tea.Model, tea.Cmd) {
	// Ignore stale results for dates we no longer display.
	if !sameDay(m.currentDate, msg.date) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load %s: %v", msg.date.Format("2006-01-02"), msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.result = msg.result
	m.missing = msg.missing
	if m.selected >= len(m.result.Report.Entries) {
		m.selected = max(len(m.result.Report.Entries)-1, 0)
	}

	switch {
	case msg.missing:
		m.statusLine = fmt.Sprintf("No daily note for %s.", msg.date.Format("2006-01-02"))
	case msg.result.Changed:
		m.statusLine = fmt.Sprintf("%d entr%s to collect.", msg.result.Moved, plural(msg.result.Moved))
	default:
		m.statusLine = "Up to date."
	}
	return m, nil
}

func (m Model) handleCollectResult(msg collectResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loading = false
		m.errorLine = fmt.Sprintf("Collect failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}
	m.statusLine = fmt.Sprintf("Collected %d entr%s.", msg.result.Moved, plural(msg.result.Moved))
	m.force = false
	return m, m.loadNoteCmd(msg.date)
}

func (m Model) gotoDate(date time.Time) (tea.Model, tea.Cmd) {
	if sameDay(m.currentDate, date) {
		return m.reload()
	}

	m.currentDate = date
	m.result = notes.Result{}
	m.missing = false
	m.selected = 0
	m.loading = true
	m.statusLine = fmt.Sprintf("Loading %s...", date.Format("2006-01-02"))
	m.errorLine = ""
	return m, m.loadNoteCmd(date)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.statusLine = fmt.Sprintf("Refreshing %s...", m.currentDate.Format("2006-01-02"))
	m.errorLine = ""
	return m, m.loadNoteCmd(m.currentDate)
}

// loadNoteCmd previews a collect so the view can show pending entries and
// the diff without writing.
func (m Model) loadNoteCmd(date time.Time) tea.Cmd {
	service := m.service
	ctx := m.ctx
	return func() tea.Msg {
		res, err := service.CollectDaily(ctx, date, notes.CollectOptions{DryRun: true})
		if err != nil {
			if errors.Is(err, files.ErrNoteNotFound) {
				return noteLoadedMsg{date: date, result: res, missing: true}
			}
			return noteLoadedMsg{date: date, err: err}
		}
		return noteLoadedMsg{date: date, result: res}
	}
}

func (m Model) collectCmd(date time.Time, force bool) tea.Cmd {
	service := m.service
	ctx := m.ctx
	return func() tea.Msg {
		res, err := service.CollectDaily(ctx, date, notes.CollectOptions{Force: force})
		return collectResultMsg{date: date, result: res, err: err}
	}
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	header := m.currentDate.Format("Monday, 02 January 2006")
	b.WriteString(titleStyle.Render(header))
	b.WriteByte('\n')
	if m.result.Path != "" {
		b.WriteString(mutedStyle.Render(m.service.Manager().Rel(m.result.Path)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case m.missing:
		b.WriteString("(no note)\n")
	default:
		b.WriteString(m.sectionLine())
		b.WriteByte('\n')
		m.writeEntries(&b)
	}

	if m.showDiff && m.result.Diff != "" && !m.loading {
		b.WriteByte('\n')
		writeDiff(&b, m.result.Diff)
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	if m.mode == modeConfirmCollect {
		b.WriteString("\n")
		if m.force {
			b.WriteString("Re-sort the section? (y/n)")
		} else {
			b.WriteString(fmt.Sprintf("Collect %d entr%s? (y/n)", m.result.Moved, plural(m.result.Moved)))
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteByte('\n')

	return b.String()
}

func (m Model) sectionLine() string {
	report := m.result.Report
	if !report.HasSection {
		return mutedStyle.Render("No collection section yet.")
	}
	line := fmt.Sprintf("Section %q (%s)", report.Section.Name, report.Section.Fold)
	if report.HeaderRewrite {
		line += pendingStyle.Render(" refold to " + m.service.Config().SectionFormat.Fold().String())
	}
	return line
}

func (m Model) writeEntries(b *strings.Builder) {
	entries := m.result.Report.Entries
	if len(entries) == 0 {
		b.WriteString("(no tagged entries)\n")
		return
	}
	for i, entry := range entries {
		cursor := " "
		if i == m.selected {
			cursor = ">"
		}
		b.WriteString(cursor)
		b.WriteByte(' ')
		b.WriteString(formatEntry(entry))
		b.WriteByte('\n')
	}
}

func writeDiff(b *strings.Builder, diff string) {
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+ "):
			b.WriteString(addStyle.Render(line))
		case strings.HasPrefix(line, "- "):
			b.WriteString(errorStyle.Render(line))
		default:
			b.WriteString(mutedStyle.Render(line))
		}
		b.WriteByte('\n')
	}
}

func today() time.Time {
	now := time.Now().In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func plural(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}

func formatEntry(entry jots.Entry) string {
	var builder strings.Builder
	builder.Grow(16 + len(entry.Content))
	builder.WriteString(entry.Content)

	switch {
	case entry.InSection:
		builder.WriteString(mutedStyle.Render("  in section"))
	case entry.Callout != "":
		builder.WriteString(pendingStyle.Render("  from " + entry.Callout))
	default:
		builder.WriteString(pendingStyle.Render("  pending"))
	}
	return builder.String()
}
