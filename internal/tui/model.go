// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/telaffuz/internal/model"
	"github.com/verte-zerg/telaffuz/internal/pronounce"
	"github.com/verte-zerg/telaffuz/internal/sentences"
	"github.com/verte-zerg/telaffuz/internal/session"
	statsPkg "github.com/verte-zerg/telaffuz/internal/stats"
)

// Capture records one take from the microphone.
type Capture interface {
	Start() error
	Stop() ([]float32, error)
	IsRecording() bool
	SampleRate() int
}

type phase int

const (
	phaseIdle phase = iota
	phaseRecording
	phaseAnalyzing
	phaseResult
)

const recordPollInterval = 200 * time.Millisecond

type analysisDoneMsg struct {
	result session.Result
	err    error
}

type recordPollMsg struct{}

// Options configures a practice Model.
type Options struct {
	Config        model.Config
	Runner        *session.Runner
	Capture       Capture
	Sentences     []string
	Picker        *sentences.Picker
	WeakSet       map[rune]struct{}
	RecordingPath func(time.Time) string
	Log           zerolog.Logger
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	config        model.Config
	runner        *session.Runner
	capture       Capture
	sentences     []string
	picker        *sentences.Picker
	weakSet       map[rune]struct{}
	recordingPath func(time.Time) string
	log           zerolog.Logger

	width  int
	height int

	phase     phase
	target    string
	startedAt time.Time
	result    *session.Result
	notice    string

	spinner  spinner.Model
	viewport viewport.Model

	lastScore float64
	hasLast   bool
	allScore  float64
	allCount  int
}

var (
	correctStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	missingStyle    = incorrectStyle.Copy().Strikethrough(true)
	pendingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	weakVowelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	recordingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	feedbackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#BFBFBF"))
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	scoreLabelStyle = lipgloss.NewStyle().Bold(true)
)

// NewModel constructs a practice TUI model.
func NewModel(opts Options) *Model {
	m := &Model{
		config:        opts.Config,
		runner:        opts.Runner,
		capture:       opts.Capture,
		sentences:     opts.Sentences,
		picker:        opts.Picker,
		weakSet:       opts.WeakSet,
		recordingPath: opts.RecordingPath,
		log:           opts.Log,
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport:      viewport.New(0, 0),
	}
	if m.picker == nil {
		m.picker = sentences.NewPicker()
	}
	if m.weakSet == nil {
		m.weakSet = map[rune]struct{}{}
	}
	m.nextSentence()
	m.loadFooterStats()
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
		m.resizeViewport()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case recordPollMsg:
		if m.phase != phaseRecording {
			return m, nil
		}
		if !m.capture.IsRecording() {
			return m, m.stopRecording()
		}
		return m, pollRecording()
	case analysisDoneMsg:
		m.finishAnalysis(msg)
		return m, nil
	case spinner.TickMsg:
		if m.phase != phaseAnalyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.abortRecording()
		return m, tea.Quit
	case tea.KeyEnter:
		switch m.phase {
		case phaseIdle, phaseResult:
			return m, m.startRecording()
		case phaseRecording:
			return m, m.stopRecording()
		}
		return m, nil
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			if m.phase == phaseAnalyzing {
				return m, nil
			}
			m.abortRecording()
			return m, tea.Quit
		case "n":
			if m.phase == phaseIdle || m.phase == phaseResult {
				m.nextSentence()
			}
		}
		return m, nil
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		if m.phase == phaseResult {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) startRecording() tea.Cmd {
	if m.capture == nil {
		m.notice = "no microphone available"
		return nil
	}
	if err := m.capture.Start(); err != nil {
		m.log.Error().Err(err).Msg("failed to start recording")
		m.notice = fmt.Sprintf("could not start recording: %v", err)
		return nil
	}
	m.phase = phaseRecording
	m.startedAt = time.Now()
	m.result = nil
	m.notice = ""
	return pollRecording()
}

func (m *Model) stopRecording() tea.Cmd {
	samples, err := m.capture.Stop()
	if err != nil {
		if len(samples) == 0 {
			m.log.Error().Err(err).Msg("failed to stop recording")
			m.notice = fmt.Sprintf("recording failed: %v", err)
			m.phase = phaseIdle
			return nil
		}
		m.notice = err.Error()
	}
	if len(samples) == 0 {
		m.notice = "nothing was recorded"
		m.phase = phaseIdle
		return nil
	}
	m.phase = phaseAnalyzing
	return tea.Batch(m.spinner.Tick, m.analyzeCmd(samples))
}

func (m *Model) abortRecording() {
	if m.phase != phaseRecording || m.capture == nil {
		return
	}
	// Best-effort stop on quit.
	_, _ = m.capture.Stop()
}

func (m *Model) analyzeCmd(samples []float32) tea.Cmd {
	runner := m.runner
	sampleRate := m.capture.SampleRate()
	path := m.recordingPath(m.startedAt)
	req := session.Request{
		Target:    m.target,
		Source:    model.SourcePractice,
		StartedAt: m.startedAt,
	}
	return func() tea.Msg {
		res, err := runner.RunSamples(context.Background(), samples, sampleRate, path, req)
		return analysisDoneMsg{result: res, err: err}
	}
}

func (m *Model) finishAnalysis(msg analysisDoneMsg) {
	if msg.err != nil && msg.result.AudioPath == "" {
		m.log.Error().Err(msg.err).Msg("analysis failed")
		m.notice = fmt.Sprintf("analysis failed: %v", msg.err)
		m.phase = phaseIdle
		return
	}
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("analysis not saved")
		m.notice = msg.err.Error()
	}
	res := msg.result
	m.result = &res
	m.phase = phaseResult

	score := res.Report.OverallScore
	m.lastScore = score
	m.hasLast = true
	m.allScore = (m.allScore*float64(m.allCount) + score) / float64(m.allCount+1)
	m.allCount++

	m.viewport.SetContent(renderFeedback(res.Report))
	m.viewport.GotoTop()
	m.resizeViewport()

	if m.config.FocusWeak && res.Saved {
		m.refreshWeakSet()
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.target == "" {
		return "No sentences to practice.\n"
	}
	content := m.renderBody()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderBody() string {
	width := m.contentWidth()
	var sentence string
	if m.phase == phaseResult && m.result != nil {
		sentence = wrapStyledRunes(buildResultRunes(m.result.Report.Words), width)
	} else {
		sentence = wrapStyledRunes(buildTargetRunes(pronounce.Normalize(m.target), m.weakSet), width)
	}

	parts := []string{sentence, ""}
	switch m.phase {
	case phaseIdle:
		parts = append(parts, footerStyle.Render("Press Enter and read the sentence aloud."))
	case phaseRecording:
		elapsed := time.Since(m.startedAt).Truncate(100 * time.Millisecond)
		parts = append(parts, recordingStyle.Render(fmt.Sprintf("● Recording %s (Enter to stop)", elapsed)))
	case phaseAnalyzing:
		parts = append(parts, m.spinner.View()+" Analyzing...")
	case phaseResult:
		if m.result != nil {
			parts = append(parts, scoreLabelStyle.Render(fmt.Sprintf("Score %.0f%%", m.result.Report.OverallScore*100)))
			parts = append(parts, m.viewport.View())
		}
	}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, "\n"))
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) resizeViewport() {
	m.viewport.Width = m.contentWidth()
	h := m.height / 3
	if h < 3 {
		h = 3
	}
	m.viewport.Height = h
}

func renderFeedback(report pronounce.Report) string {
	lines := make([]string, 0, len(report.Feedback))
	for _, line := range report.Feedback {
		lines = append(lines, feedbackStyle.Render(line))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f%%", m.lastScore*100))
	}
	if m.allCount > 0 {
		segments = append(segments, fmt.Sprintf("All-time %.1f%% · %d takes", m.allScore*100, m.allCount))
	}
	if len(m.weakSet) > 0 {
		segments = append(segments, "Focus "+weakLabel(m.weakSet))
	}
	segments = append(segments, "enter record · n next · q quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func weakLabel(set map[rune]struct{}) string {
	var b strings.Builder
	for _, p := range pronounce.Phonemes() {
		if _, ok := set[p.Symbol]; ok {
			b.WriteRune(p.Symbol)
		}
	}
	return b.String()
}

func (m *Model) nextSentence() {
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		m.target = m.picker.NextWeighted(m.sentences, m.weakSet, m.config.WeakFactor)
	} else {
		m.target = m.picker.Next(m.sentences)
	}
	m.phase = phaseIdle
	m.result = nil
	m.notice = ""
}

func (m *Model) loadFooterStats() {
	if m.runner == nil || m.runner.Store == nil {
		return
	}
	sessions, err := m.runner.Store.ListSessions(context.Background(), model.StatsConfig{Source: model.SourcePractice})
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to load session stats")
		return
	}
	if len(sessions) == 0 {
		return
	}
	m.lastScore = sessions[len(sessions)-1].OverallScore
	m.hasLast = true
	var sum float64
	for _, s := range sessions {
		sum += s.OverallScore
	}
	m.allScore = sum / float64(len(sessions))
	m.allCount = len(sessions)
}

func (m *Model) refreshWeakSet() {
	aggs, err := m.runner.Store.GetWeakPhonemes(context.Background(), m.config.WeakWindow)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to load weak vowels")
		return
	}
	m.weakSet = statsPkg.SelectWeakPhonemes(aggs, m.config.WeakTop)
}

func pollRecording() tea.Cmd {
	return tea.Tick(recordPollInterval, func(time.Time) tea.Msg {
		return recordPollMsg{}
	})
}
