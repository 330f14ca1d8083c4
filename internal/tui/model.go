package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sin1227488801/rct/internal/model"
	"github.com/sin1227488801/rct/internal/snippet"
	"github.com/sin1227488801/rct/internal/stats"
	"github.com/sin1227488801/rct/internal/store"
	"github.com/sin1227488801/rct/internal/typing"
)

var (
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(typing.DefaultTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the practice screen: it runs one attempt at a time against a
// picked snippet and records every finished attempt.
type Model struct {
	cfg     model.PracticeConfig
	store   *store.Store
	picker  *snippet.Picker
	items   []model.StudyItem
	weights map[string]float64
	policy  typing.QualityPolicy
	opts    stats.Options

	item    model.StudyItem
	target  []rune
	input   []rune
	session typing.Session
	started bool

	lastResult  *typing.Result
	lastQuality bool
	allTime     stats.Summary

	width  int
	height int
	err    error
}

// NewModel prepares a practice run over the given snippets. Weights bias the
// picker toward snippets the user struggles with; nil means uniform.
func NewModel(cfg model.PracticeConfig, st *store.Store, items []model.StudyItem, weights map[string]float64, policy typing.QualityPolicy, opts stats.Options) (*Model, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no snippets to practice")
	}
	m := &Model{
		cfg:     cfg,
		store:   st,
		picker:  snippet.NewPicker(),
		items:   items,
		weights: weights,
		policy:  policy,
		opts:    opts,
	}
	if err := m.loadAllTime(); err != nil {
		return nil, err
	}
	m.nextAttempt()
	return m, nil
}

func (m *Model) loadAllTime() error {
	entries, err := m.store.ListEntries(context.Background(), model.StatsFilter{
		UserID: m.cfg.UserID,
		Lang:   m.cfg.Lang,
	})
	if err != nil {
		return fmt.Errorf("failed to load past attempts: %w", err)
	}
	m.allTime = stats.Aggregate(entries, m.opts)
	return nil
}

func (m *Model) nextAttempt() {
	m.item = m.picker.PickWeighted(m.items, m.weights)
	m.target = []rune(m.item.Text)
	m.input = m.input[:0]
	m.started = false
}

func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		// Re-render on a steady cadence so elapsed time and live pace
		// keep moving even without keystrokes.
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		// Abandon the attempt without recording it.
		m.nextAttempt()
		return m, nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyEnter:
		return m.typeRune('\n')
	case tea.KeySpace:
		return m.typeRune(' ')
	case tea.KeyRunes:
		var res tea.Model = m
		var cmd tea.Cmd
		for _, r := range msg.Runes {
			res, cmd = m.typeRune(r)
			// A paste can finish the snippet mid-batch; drop the rest
			// so it never types into the next attempt.
			if !m.started {
				break
			}
		}
		return res, cmd
	}
	return m, nil
}

func (m *Model) typeRune(r rune) (tea.Model, tea.Cmd) {
	now := time.Now()
	if !m.started {
		session, err := typing.StartSession(uuid.NewString(), m.cfg.UserID, m.item.ID, now)
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.session = session
		m.started = true
	}
	m.input = append(m.input, r)

	fb := typing.Snapshot(string(m.input), m.item.Text)
	if fb.Done {
		if err := m.finishAttempt(now); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.nextAttempt()
	}
	return m, nil
}

func (m *Model) finishAttempt(now time.Time) error {
	duration := m.session.CurrentDuration(now)
	result, err := typing.ResultFromComparison(string(m.input), m.item.Text, duration)
	if err != nil {
		return fmt.Errorf("failed to score attempt: %w", err)
	}
	completed, err := m.session.CompleteWithResult(result, now)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	endedAt, _ := completed.CompletedAt()
	entry := model.LogEntry{
		AttemptID:   completed.ID(),
		UserID:      completed.UserID(),
		Lang:        m.item.Lang,
		StudyItemID: completed.StudyItemID(),
		StartedAt:   completed.StartedAt(),
		EndedAt:     endedAt,
		Total:       result.Total(),
		Correct:     result.Correct(),
		DurationMs:  duration.Milliseconds(),
	}
	if _, err := m.store.InsertEntry(context.Background(), entry); err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	m.lastResult = &result
	m.lastQuality = result.MeetsQuality(m.policy)
	if err := m.loadAllTime(); err != nil {
		return err
	}
	if m.cfg.FocusWeak {
		m.refreshWeights()
	}
	return nil
}

func (m *Model) refreshWeights() {
	aggs, err := m.store.ListSnippetAggregates(context.Background(), m.cfg.WeakWindow, m.cfg.UserID, m.cfg.Lang)
	if err != nil {
		// Weighting is an optimization; keep practicing on failure.
		return
	}
	m.weights = stats.SnippetWeights(aggs, m.cfg.WeakFactor)
}

// Err reports the error that terminated the practice loop, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	contentWidth := m.width * 7 / 10
	if contentWidth < 20 {
		contentWidth = m.width
	}

	header := headerStyle.Render(fmt.Sprintf("%s · %s", m.item.Lang, m.item.Title))

	cursor := len(m.input)
	styled := buildStyledRunes(m.target, m.input, cursor)
	body := wrapStyledRunes(styled, contentWidth)

	block := lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", m.footerView())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

func (m *Model) footerView() string {
	segments := []string{liveSegment(string(m.input), m.item.Text, m.session, m.started)}
	if m.lastResult != nil {
		segments = append(segments, lastSegment(*m.lastResult, m.lastQuality))
	}
	if m.allTime.TotalAttempts > 0 {
		segments = append(segments, allTimeSegment(m.allTime))
	}
	return footerStyle.Render(strings.Join(segments, "   "))
}

func liveSegment(typed, target string, session typing.Session, started bool) string {
	fb := typing.Snapshot(typed, target)
	if !started {
		return fmt.Sprintf("%3.0f%% · start typing", fb.Progress*100)
	}
	elapsed := session.CurrentDuration(time.Now())
	return fmt.Sprintf("%3.0f%% · %.1f wpm · %.1f%% acc · %s",
		fb.Progress*100, typing.LiveWPM(fb, elapsed), fb.Accuracy, elapsed)
}

func lastSegment(result typing.Result, meetsQuality bool) string {
	s := fmt.Sprintf("last: %.1f wpm · %.2f%% acc", result.WordsPerMinute(), result.Accuracy())
	if !meetsQuality {
		return s + " " + warnStyle.Render("(below standard)")
	}
	return s
}

func allTimeSegment(summary stats.Summary) string {
	return fmt.Sprintf("all-time: %.1f wpm · %.2f%% acc · %d attempts",
		summary.AverageWPM, summary.AverageAccuracy, summary.TotalAttempts)
}
