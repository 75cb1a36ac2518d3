// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyze

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/nutrisense-tui/internal/capture"
	"github.com/jeranaias/nutrisense-tui/internal/model"
	"github.com/jeranaias/nutrisense-tui/internal/narrate"
	"github.com/jeranaias/nutrisense-tui/internal/session"
	"github.com/jeranaias/nutrisense-tui/internal/ui/components"
	"github.com/jeranaias/nutrisense-tui/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the whole application.
type Model struct {
	theme *styles.Theme
	keys  KeyMap

	width  int
	height int

	backend Backend
	timeout time.Duration

	// Input
	mode        capture.Mode
	camera      capture.Camera
	cameraReady bool
	capturing   bool

	profile model.Profile
	// analyzedProfile is the profile the in-flight or displayed result was
	// requested with; cycling the selector later must not relabel it.
	analyzedProfile model.Profile

	// Analysis lifecycle and downstream state
	session  *session.Session
	thread   *model.Thread
	narrator *narrate.Controller

	// Components
	textInput     textinput.Model
	questionInput textinput.Model
	filePicker    filepicker.Model
	viewport      viewport.Model
	spin          components.Spinner
	banner        components.ErrorBanner

	renderer *glamour.TermRenderer
}

// New creates the application model. The backend, camera, and speaker are
// injected so tests can substitute fakes.
func New(backend Backend, camera capture.Camera, speaker narrate.Speaker, timeout time.Duration) Model {
	theme := styles.NewTheme()

	ti := textinput.New()
	ti.Placeholder = "Paste ingredients here..."
	ti.CharLimit = 2000
	ti.Focus()

	qi := textinput.New()
	qi.Placeholder = "Type your question..."
	qi.CharLimit = 500

	fp := filepicker.New()
	fp.AllowedTypes = capture.AllowedExtensions
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	return Model{
		theme:         theme,
		keys:          DefaultKeyMap(),
		backend:       backend,
		timeout:       timeout,
		mode:          capture.ModeText,
		camera:        camera,
		profile:       model.DefaultProfile,
		session:       session.New(),
		thread:        model.NewThread(),
		narrator:      narrate.NewController(speaker),
		textInput:     ti,
		questionInput: qi,
		filePicker:    fp,
		viewport:      viewport.New(0, 0),
		spin:          components.NewSpinner(theme),
	}
}

// Init starts cursor blinking and the file picker's directory read.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.filePicker.Init())
}

// =============================================================================
// UPDATE
// =============================================================================

// Update is the single entry point for all state transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case AnalysisCompletedMsg:
		return m.completeAnalysis(msg)

	case CaptureCompletedMsg:
		return m.completeCapture(msg)

	case ChatAnsweredMsg:
		return m.completeChat(msg)

	case NarrationFinishedMsg:
		m.narrator.Finish(msg.Generation)
		return m, nil

	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next
	}

	// Spinner animation while a request is in flight.
	if m.session.Pending() {
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Route remaining messages to whichever component is live.
	switch {
	case m.session.State() == session.StateSucceeded:
		var cmd tea.Cmd
		m.questionInput, cmd = m.questionInput.Update(msg)
		cmds = append(cmds, cmd)
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case m.mode == capture.ModeText:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)

	case m.mode == capture.ModeFileUpload && !m.session.Pending():
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)
		cmds = append(cmds, cmd)

		if ok, path := m.filePicker.DidSelectFile(msg); ok {
			if sub, err := capture.ReadImageFile(path); err != nil {
				m.banner.Show("Could not read that image.")
			} else {
				cmds = append(cmds, m.beginAnalysis(sub))
			}
		}
		if ok, _ := m.filePicker.DidSelectDisabledFile(msg); ok {
			m.banner.Show("Only JPEG, PNG, and WebP images are supported.")
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard shortcuts. handled is false when the key
// should flow through to the live input component instead.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.narrator.Stop()
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Reset):
		m.resetCycle()
		return m, nil, true

	case key.Matches(msg, m.keys.CycleProfile):
		// Effective for subsequent requests only; an in-flight request
		// keeps the profile it was issued with.
		m.profile = m.profile.Next()
		return m, nil, true
	}

	if m.session.State() == session.StateSucceeded {
		return m.handleResultKey(msg)
	}
	return m.handleCaptureKey(msg)
}

// handleResultKey covers the verdict screen: narration and follow-up
// questions.
func (m Model) handleResultKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Narrate):
		gen, run := m.narrator.Begin(narrate.VerdictText(m.session.Result()))
		return m, NarrateCmd(gen, run), true

	case key.Matches(msg, m.keys.StopSpeech):
		m.narrator.Stop()
		return m, nil, true

	case key.Matches(msg, m.keys.Submit):
		question, ok := m.thread.AppendQuestion(m.questionInput.Value())
		if !ok {
			// Blank question: no entry, no request, input left as-is.
			return m, nil, true
		}
		m.questionInput.Reset()
		m.refreshViewport()
		// Snapshot the context now; a profile change after this keypress
		// must not drift into an outstanding question.
		snapshot := contextSnapshot(m.session.Result())
		return m, AskCmd(m.backend, question, snapshot, m.profile, m.timeout), true
	}
	return m, nil, false
}

// handleCaptureKey covers the input phase: mode switching and submission.
func (m Model) handleCaptureKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.NextMode):
		m.switchMode(m.mode.Next())
		return m, nil, true

	case key.Matches(msg, m.keys.PrevMode):
		m.switchMode(m.mode.Prev())
		return m, nil, true

	case key.Matches(msg, m.keys.Submit):
		// Submissions are disabled while a request is in flight. The
		// session would reject the Begin anyway; stop it here so the UI
		// never even tries.
		if m.session.Pending() || m.capturing {
			return m, nil, true
		}

		switch m.mode {
		case capture.ModeText:
			sub, err := model.NewTextSubmission(m.textInput.Value())
			if err != nil {
				// Blank input: no-op, no request issued.
				return m, nil, true
			}
			m.textInput.Reset()
			return m, m.beginAnalysis(sub), true

		case capture.ModeLiveCapture:
			if !m.ensureCamera() {
				// Device unavailable: the mode stays selectable, the
				// action is inert until the camera appears.
				return m, nil, true
			}
			m.capturing = true
			return m, CaptureCmd(m.camera, m.timeout), true
		}
		// ModeFileUpload: enter belongs to the file picker.
		return m, nil, false
	}
	return m, nil, false
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// beginAnalysis starts a new analysis cycle for the submission. Downstream
// state scoped to the previous result is cleared before the request leaves.
func (m *Model) beginAnalysis(sub *model.Submission) tea.Cmd {
	requestID, err := m.session.Begin(sub)
	if err != nil {
		return nil
	}

	m.banner.Clear()
	m.thread.Clear()
	m.narrator.Stop()
	m.analyzedProfile = m.profile
	m.spin.SetMessage("Analyzing for " + m.profile.Label())

	return tea.Batch(m.spin.Tick(), AnalyzeCmd(m.backend, sub, m.profile, requestID, m.timeout))
}

// completeAnalysis applies an analysis outcome. Stale responses (tag no
// longer current) are dropped by the session.
func (m Model) completeAnalysis(msg AnalysisCompletedMsg) (tea.Model, tea.Cmd) {
	if !m.session.Resolve(msg.RequestID, msg.Result, msg.Err) {
		return m, nil
	}

	switch m.session.State() {
	case session.StateSucceeded:
		m.textInput.Blur()
		m.questionInput.Focus()
		m.refreshViewport()
		return m, textinput.Blink

	case session.StateFailed:
		m.banner.Show(m.session.Failure())
	}
	return m, nil
}

// completeCapture applies a camera grab outcome. The device is released
// immediately after a successful one-shot capture.
func (m Model) completeCapture(msg CaptureCompletedMsg) (tea.Model, tea.Cmd) {
	m.capturing = false

	if msg.Err != nil {
		m.banner.Show("Capture failed. Check your camera.")
		return m, nil
	}

	m.camera.Release()
	m.cameraReady = false
	return m, m.beginAnalysis(msg.Submission)
}

// completeChat appends the answer for one outstanding question, in
// completion order. If the result was reset while the request was in flight
// the thread is gone and the answer is dropped with it.
func (m Model) completeChat(msg ChatAnsweredMsg) (tea.Model, tea.Cmd) {
	if m.session.State() != session.StateSucceeded {
		return m, nil
	}

	answer := msg.Answer
	if msg.Err != nil || strings.TrimSpace(answer) == "" {
		answer = FallbackAnswer
	}
	m.thread.AppendAnswer(answer)
	m.refreshViewport()
	return m, nil
}

// resetCycle returns the whole system to the input phase with no leftover
// state from the prior cycle.
func (m *Model) resetCycle() {
	m.session.Reset()
	m.thread.Clear()
	m.narrator.Stop()
	m.banner.Clear()
	m.capturing = false
	m.questionInput.Reset()
	m.questionInput.Blur()
	m.textInput.Reset()
	m.textInput.Focus()
}

// switchMode activates an input mode; the others go inert. Partial input is
// discarded, and leaving live capture releases the camera.
func (m *Model) switchMode(next capture.Mode) {
	if next == m.mode {
		return
	}

	if m.mode == capture.ModeLiveCapture {
		m.camera.Release()
		m.cameraReady = false
	}

	m.textInput.Reset()
	m.banner.Clear()
	m.mode = next

	if next == capture.ModeLiveCapture {
		m.ensureCamera()
	}
}

// ensureCamera acquires the device if it is not already held.
func (m *Model) ensureCamera() bool {
	if m.cameraReady {
		return true
	}
	m.cameraReady = m.camera.Acquire() == nil
	return m.cameraReady
}

// resize propagates the terminal dimensions.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.textInput.Width = max(20, width-8)
	m.questionInput.Width = max(20, width-8)
	m.filePicker.Height = max(5, height-12)

	m.viewport.Width = width
	m.viewport.Height = max(5, height-6)

	wrap := max(20, width-8)
	if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap)); err == nil {
		m.renderer = r
	}
	if m.session.State() == session.StateSucceeded {
		m.refreshViewport()
	}
}

// refreshViewport re-renders the result screen into the viewport and keeps
// the latest conversation turn visible.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.resultContent())
	m.viewport.GotoBottom()
}
