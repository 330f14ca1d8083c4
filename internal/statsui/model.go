// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sin1227488801/rct/internal/model"
	"github.com/sin1227488801/rct/internal/stats"
	"github.com/sin1227488801/rct/internal/store"
)

const (
	tabOverview = iota
	tabLanguages
	tabAttempts
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store  *store.Store
	filter model.StatsFilter
	opts   stats.Options

	report stats.Report
	errMsg string

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	langTable    table.Model
	attemptTable table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, filter model.StatsFilter, opts stats.Options) *Model {
	m := &Model{
		store:  st,
		filter: filter,
		opts:   opts,
		tabs:   []string{"Overview", "Languages", "Attempts"},
	}
	m.initInputs()
	m.langTable = newStatsTable(langColumns())
	m.attemptTable = newStatsTable(attemptColumns())
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		m.syncTableFocus()
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.filter.CurveWindow = nextCurveWindow(m.filter.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "-":
			m.filter.CurveWindow = prevCurveWindow(m.filter.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if tbl := m.activeTable(); tbl != nil {
				tbl.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if tbl := m.activeTable(); tbl != nil {
				tbl.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if tbl := m.activeTable(); tbl != nil {
				var cmd tea.Cmd
				*tbl, cmd = tbl.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) activeTable() *table.Model {
	switch m.activeTab {
	case tabLanguages:
		return &m.langTable
	case tabAttempts:
		return &m.attemptTable
	}
	return nil
}

func (m *Model) syncTableFocus() {
	m.langTable.Blur()
	m.attemptTable.Blur()
	if tbl := m.activeTable(); tbl != nil {
		tbl.Focus()
	}
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("User: "),
		newFilterInput("Lang: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Curve window: "),
		newFilterInput("Quality only (y/n): "),
	}
	m.setInputsFromFilter()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromFilter() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[0].SetValue(strings.TrimSpace(m.filter.UserID))
	m.filterInputs[1].SetValue(strings.TrimSpace(m.filter.Lang))
	if m.filter.Since != nil {
		m.filterInputs[2].SetValue(m.filter.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[2].SetValue("")
	}
	if m.filter.Last > 0 {
		m.filterInputs[3].SetValue(strconv.Itoa(m.filter.Last))
	} else {
		m.filterInputs[3].SetValue("")
	}
	m.filterInputs[4].SetValue(strconv.Itoa(m.filter.CurveWindow))
	if m.filter.QualityOnly {
		m.filterInputs[5].SetValue("y")
	} else {
		m.filterInputs[5].SetValue("")
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.langTable.SetWidth(m.width)
	m.langTable.SetHeight(maxInt(1, bodyHeight-1))
	m.attemptTable.SetWidth(m.width)
	m.attemptTable.SetHeight(maxInt(1, bodyHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.syncTableFocus()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	lang := m.filter.Lang
	if lang == "" {
		lang = "any"
	}
	since := "any"
	if m.filter.Since != nil {
		since = m.filter.Since.Format("2006-01-02")
	}
	last := "all"
	if m.filter.Last > 0 {
		last = strconv.Itoa(m.filter.Last)
	}
	quality := "off"
	if m.filter.QualityOnly {
		quality = "on"
	}
	summary := fmt.Sprintf("Filters: user=%s  lang=%s  since=%s  last=%s  window=%d  quality=%s",
		m.filter.UserID, lang, since, last, m.filter.CurveWindow, quality)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Filters: /  Quit: q")
}

func (m *Model) renderFilterHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel  quit: q")
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.renderFilterHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filters (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if tbl := m.activeTable(); tbl != nil {
		if len(m.report.Entries) == 0 {
			return fitLines("No attempts found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(tbl.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.filter, m.opts)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.langTable.SetRows(langRows(report.Summary))
	m.attemptTable.SetRows(attemptRows(report.Entries))
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 || m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.filter.CurveWindow, width))
}

func renderOverview(report stats.Report, window, width int) string {
	if report.Summary.TotalAttempts == 0 {
		return "No attempts found."
	}
	cards := renderSummaryCards(report.Summary, width)
	curves := renderCurves(report, window, width)
	return strings.TrimRight(cards+"\n\n"+curves, "\n")
}

func renderSummaryCards(summary stats.Summary, width int) string {
	cards := []string{
		metricCard("Attempts", fmt.Sprintf("%d", summary.TotalAttempts)),
		metricCard("Sessions", fmt.Sprintf("%d", summary.SessionCount)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", summary.AverageWPM)),
		metricCard("Best WPM", fmt.Sprintf("%.1f", summary.BestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.2f%%", summary.AverageAccuracy)),
		metricCard("Best Acc", fmt.Sprintf("%.2f%%", summary.BestAccuracy)),
		metricCard("Time", summary.TotalDuration.String()),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2], cards[3])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4], cards[5], cards[6])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderCurves(report stats.Report, window, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, report, window, width); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func newStatsTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(1),
	)
	t.SetStyles(statsTableStyles())
	return t
}

func langColumns() []table.Column {
	return []table.Column{
		{Title: "Lang", Width: 12},
		{Title: "Attempts", Width: 8},
		{Title: "Avg Accuracy", Width: 13},
		{Title: "", Width: 8},
	}
}

func langRows(summary stats.Summary) []table.Row {
	rows := make([]table.Row, 0, len(summary.Languages))
	for _, lang := range summary.Languages {
		marker := ""
		if lang.Lang == summary.BestLanguage && summary.BestLanguage != summary.WorstLanguage {
			marker = "best"
		}
		if lang.Lang == summary.WorstLanguage && summary.BestLanguage != summary.WorstLanguage {
			marker = "worst"
		}
		rows = append(rows, table.Row{
			lang.Lang,
			fmt.Sprintf("%d", lang.Attempts),
			fmt.Sprintf("%.2f%%", lang.AverageAccuracy),
			marker,
		})
	}
	return rows
}

func attemptColumns() []table.Column {
	return []table.Column{
		{Title: "Started", Width: 19},
		{Title: "Lang", Width: 8},
		{Title: "WPM", Width: 7},
		{Title: "Accuracy", Width: 9},
		{Title: "Duration", Width: 9},
	}
}

func attemptRows(entries []model.LogEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	// Most recent first.
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		wpm, acc := "-", "-"
		if result, ok := stats.EntryResult(entry); ok {
			wpm = fmt.Sprintf("%.1f", result.WordsPerMinute())
			acc = fmt.Sprintf("%.2f%%", result.Accuracy())
		}
		rows = append(rows, table.Row{
			entry.StartedAt.Local().Format("2006-01-02 15:04:05"),
			entry.Lang,
			wpm,
			acc,
			fmt.Sprintf("%.1fs", float64(entry.DurationMs)/1000),
		})
	}
	return rows
}

func statsTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromFilter()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	user := strings.TrimSpace(m.filterInputs[0].Value())
	lang := strings.TrimSpace(m.filterInputs[1].Value())

	sinceInput := strings.TrimSpace(m.filterInputs[2].Value())
	var since *time.Time
	if sinceInput != "" {
		parsed, err := time.ParseInLocation("2006-01-02", sinceInput, time.Local)
		if err != nil {
			return fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		since = &parsed
	}

	lastInput := strings.TrimSpace(m.filterInputs[3].Value())
	last := 0
	if lastInput != "" {
		parsed, err := strconv.Atoi(lastInput)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	windowInput := strings.TrimSpace(m.filterInputs[4].Value())
	window := 0
	if windowInput != "" {
		parsed, err := strconv.Atoi(windowInput)
		if err != nil {
			return fmt.Errorf("invalid curve window (use integer)")
		}
		if parsed < 1 {
			return fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		window = parsed
	}

	qualityInput := strings.ToLower(strings.TrimSpace(m.filterInputs[5].Value()))
	quality := false
	switch qualityInput {
	case "", "n", "no":
	case "y", "yes":
		quality = true
	default:
		return fmt.Errorf("invalid quality flag (use y or n)")
	}

	m.filter = model.StatsFilter{
		UserID:      user,
		Lang:        lang,
		Since:       since,
		Last:        last,
		CurveWindow: window,
		QualityOnly: quality,
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
