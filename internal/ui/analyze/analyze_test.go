// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyze

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/nutrisense-tui/internal/api"
	"github.com/jeranaias/nutrisense-tui/internal/session"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeBackend struct {
	result *api.AnalysisResult
	err    error

	answer  string
	chatErr error

	analyzed []string
	images   [][]byte
	asked    []string
	contexts []string
	profiles []string
}

func (f *fakeBackend) Analyze(_ context.Context, text, profile string) (*api.AnalysisResult, error) {
	f.analyzed = append(f.analyzed, text)
	f.profiles = append(f.profiles, profile)
	return f.result, f.err
}

func (f *fakeBackend) AnalyzeImage(_ context.Context, image []byte, _, profile string) (*api.AnalysisResult, error) {
	f.images = append(f.images, image)
	f.profiles = append(f.profiles, profile)
	return f.result, f.err
}

func (f *fakeBackend) Chat(_ context.Context, question, contextData, profile string) (string, error) {
	f.asked = append(f.asked, question)
	f.contexts = append(f.contexts, contextData)
	f.profiles = append(f.profiles, profile)
	return f.answer, f.chatErr
}

type fakeCamera struct {
	acquireErr error
	captureErr error
	frame      []byte

	acquired bool
	releases int
}

func (f *fakeCamera) Acquire() error {
	if f.acquireErr != nil {
		return f.acquireErr
	}
	f.acquired = true
	return nil
}

func (f *fakeCamera) Capture(context.Context) ([]byte, string, error) {
	if f.captureErr != nil {
		return nil, "", f.captureErr
	}
	return f.frame, "image/jpeg", nil
}

func (f *fakeCamera) Release() {
	f.acquired = false
	f.releases++
}

type fakeSpeaker struct {
	spoken []string
	stops  int
}

func (f *fakeSpeaker) Speak(_ context.Context, text string) error {
	f.spoken = append(f.spoken, text)
	return nil
}

func (f *fakeSpeaker) Stop() {
	f.stops++
}

// =============================================================================
// HARNESS
// =============================================================================

func newTestModel(backend *fakeBackend, camera *fakeCamera, speaker *fakeSpeaker) tea.Model {
	return New(backend, camera, speaker, time.Second)
}

// drain runs a command tree to completion, feeding every produced message
// back into the model. Animation frames are dropped so the loop terminates.
func drain(m tea.Model, cmd tea.Cmd) tea.Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		msg := c()
		switch msg := msg.(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, cursor.BlinkMsg:
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

func step(m tea.Model, msg tea.Msg) tea.Model {
	next, cmd := m.Update(msg)
	return drain(next, cmd)
}

func typeText(m tea.Model, text string) tea.Model {
	return step(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func press(m tea.Model, keyType tea.KeyType) tea.Model {
	return step(m, tea.KeyMsg{Type: keyType})
}

func goodResult() *api.AnalysisResult {
	return &api.AnalysisResult{
		OverallRisk: "Caution",
		Summary:     "High in added sugar.",
		IngredientsBreakdown: []api.IngredientFinding{
			{Name: "Sugar", Function: "Sweetener", RiskLevel: "Caution", Reasoning: "Added sugar."},
		},
	}
}

// =============================================================================
// ANALYSIS CYCLE
// =============================================================================

func TestTextSubmitSuccess(t *testing.T) {
	backend := &fakeBackend{result: goodResult()}
	m := newTestModel(backend, &fakeCamera{}, &fakeSpeaker{})

	m = typeText(m, "  sugar, salt  ")
	m = press(m, tea.KeyEnter)

	am := m.(Model)
	if got := am.session.State(); got != session.StateSucceeded {
		t.Fatalf("state = %v, want Succeeded", got)
	}
	if am.session.Result() == nil {
		t.Fatal("result not stored")
	}
	if am.banner.Visible() {
		t.Error("banner visible after success")
	}
	if !am.thread.IsEmpty() {
		t.Error("thread not empty for fresh result")
	}

	if len(backend.analyzed) != 1 || backend.analyzed[0] != "sugar, salt" {
		t.Errorf("analyzed = %q, want trimmed input", backend.analyzed)
	}
	if backend.profiles[0] != "General Healthy" {
		t.Errorf("profile = %q, want default wire id", backend.profiles[0])
	}
}

func TestBlankTextSubmitIsNoop(t *testing.T) {
	backend := &fakeBackend{result: goodResult()}
	m := newTestModel(backend, &fakeCamera{}, &fakeSpeaker{})

	m = typeText(m, "   ")
	m = press(m, tea.KeyEnter)

	am := m.(Model)
	if got := am.session.State(); got != session.StateIdle {
		t.Fatalf("state = %v, want Idle", got)
	}
	if len(backend.analyzed) != 0 {
		t.Errorf("backend called %d times for blank input", len(backend.analyzed))
	}
}

func TestAnalysisFailureThenRetry(t *testing.T) {
	backend := &fakeBackend{err: errors.New("connection refused")}
	m := newTestModel(backend, &fakeCamera{}, &fakeSpeaker{})

	m = typeText(m, "aspartame")
	m = press(m, tea.KeyEnter)

	am := m.(Model)
	if got := am.session.State(); got != session.StateFailed {
		t.Fatalf("state = %v, want Failed", got)
	}
	if !am.banner.Visible() || am.banner.Message() != session.FailureMessage {
		t.Errorf("banner = %q, want stable failure message", am.banner.Message())
	}
	if am.session.Result() != nil {
		t.Error("failed cycle stored a result")
	}

	// The system stays usable: a corrected backend and a new submission
	// succeed, and the stale banner goes away.
	backend.err = nil
	backend.result = goodResult()
	m = typeText(m, "aspartame")
	m = press(m, tea.KeyEnter)

	am = m.(Model)
	if got := am.session.State(); got != session.StateSucceeded {
		t.Fatalf("state after retry = %v, want Succeeded", got)
	}
	if am.banner.Visible() {
		t.Error("failure banner survived a successful retry")
	}
}

func TestSubmitWhilePendingIsRejected(t *testing.T) {
	backend := &fakeBackend{result: goodResult()}
	m := newTestModel(backend, &fakeCamera{}, &fakeSpeaker{})

	m = typeText(m, "salt")
	pending, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	pm := pending.(Model)
	if !pm.session.Pending() {
		t.Fatal("session not pending after submit")
	}

	// A second enter while the first request is in flight must not issue
	// another request.
	pending = typeText(pending, "pepper")
	pending, _ = pending.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m = drain(pending, cmd)
	if got := len(backend.analyzed); got != 1 {
		t.Errorf("backend called %d times, want 1", got)
	}
	if got := m.(Model).session.State(); got != session.StateSucceeded {
		t.Errorf("state = %v, want Succeeded", got)
	}
}

func TestStaleResponseAfterResetIsDiscarded(t *testing.T) {
	backend := &fakeBackend{result: goodResult()}
	m := newTestModel(backend, &fakeCamera{}, &fakeSpeaker{})

	m = typeText(m, "salt")
	pending, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Reset while the request is in flight, then let the response arrive.
	pending = step(pending, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = drain(pending, cmd)

	am := m.(Model)
	if got := am.session.State(); got != session.StateIdle {
		t.Errorf("state = %v, want Idle after reset", got)
	}
	if am.session.Result() != nil {
		t.Error("stale response landed after reset")
	}
	if am.banner.Visible() {
		t.Error("stale response raised a banner after reset")
	}
}

func TestProfileCycleAffectsNextRequest(t *testing.T) {
	backend := &fakeBackend{result: goodResult()}
	m := newTestModel(backend, &fakeCamera{}, &fakeSpeaker{})

	m = press(m, tea.KeyCtrlP)
	m = typeText(m, "salt")
	m = press(m, tea.KeyEnter)

	if backend.profiles[0] != "Diabetic" {
		t.Errorf("profile = %q, want Diabetic", backend.profiles[0])
	}
}

// =============================================================================
// CAPTURE MODES
// =============================================================================

func TestModeSwitchManagesCamera(t *testing.T) {
	camera := &fakeCamera{}
	m := newTestModel(&fakeBackend{}, camera, &fakeSpeaker{})

	m = press(m, tea.KeyTab) // Type -> Scan
	if !camera.acquired {
		t.Fatal("camera not acquired on entering live capture")
	}

	m = press(m, tea.KeyTab) // Scan -> Upload
	if camera.acquired {
		t.Error("camera still held after leaving live capture")
	}
	if camera.releases != 1 {
		t.Errorf("releases = %d, want 1", camera.releases)
	}

	_ = press(m, tea.KeyShiftTab) // Upload -> Scan, shift+tab walks backwards
	if !camera.acquired {
		t.Error("camera not re-acquired on returning to live capture")
	}
}

func TestLiveCaptureSubmitsFrame(t *testing.T) {
	backend := &fakeBackend{result: goodResult()}
	camera := &fakeCamera{frame: []byte{0xff, 0xd8, 0xff}}
	m := newTestModel(backend, camera, &fakeSpeaker{})

	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyEnter)

	am := m.(Model)
	if got := am.session.State(); got != session.StateSucceeded {
		t.Fatalf("state = %v, want Succeeded", got)
	}
	if len(backend.images) != 1 || len(backend.images[0]) != 3 {
		t.Errorf("image payload = %v, want captured frame", backend.images)
	}
	if camera.acquired {
		t.Error("device still held after a one-shot capture")
	}
}

func TestCaptureWithoutDeviceIsInert(t *testing.T) {
	backend := &fakeBackend{result: goodResult()}
	camera := &fakeCamera{acquireErr: errors.New("no device")}
	m := newTestModel(backend, camera, &fakeSpeaker{})

	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyEnter)

	am := m.(Model)
	if got := am.session.State(); got != session.StateIdle {
		t.Errorf("state = %v, want Idle", got)
	}
	if len(backend.images)+len(backend.analyzed) != 0 {
		t.Error("request issued with no camera available")
	}
}

func TestCaptureFailureShowsBanner(t *testing.T) {
	camera := &fakeCamera{captureErr: errors.New("grab failed")}
	m := newTestModel(&fakeBackend{}, camera, &fakeSpeaker{})

	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyEnter)

	am := m.(Model)
	if got := am.session.State(); got != session.StateIdle {
		t.Errorf("state = %v, want Idle", got)
	}
	if !am.banner.Visible() {
		t.Error("no banner after capture failure")
	}
	if camera.releases != 0 {
		t.Error("device released after a failed capture")
	}
}

// =============================================================================
// FOLLOW-UP CHAT
// =============================================================================

func succeededModel(t *testing.T, backend *fakeBackend) tea.Model {
	t.Helper()
	backend.result = goodResult()
	m := newTestModel(backend, &fakeCamera{}, &fakeSpeaker{})
	m = typeText(m, "sugar")
	m = press(m, tea.KeyEnter)
	if got := m.(Model).session.State(); got != session.StateSucceeded {
		t.Fatalf("setup: state = %v, want Succeeded", got)
	}
	return m
}

func TestAskAppendsQuestionAndAnswer(t *testing.T) {
	backend := &fakeBackend{answer: "Yes, in moderation."}
	m := succeededModel(t, backend)

	m = typeText(m, "Can kids eat this?")
	m = press(m, tea.KeyEnter)

	am := m.(Model)
	entries := am.thread.Entries()
	if len(entries) != 2 {
		t.Fatalf("thread has %d entries, want question and answer", len(entries))
	}
	if entries[0].Text != "Can kids eat this?" || entries[1].Text != "Yes, in moderation." {
		t.Errorf("thread = %+v", entries)
	}
	if am.thread.Waiting() {
		t.Error("thread still waiting after the answer landed")
	}

	// The question carries the verdict it was asked against.
	if len(backend.contexts) != 1 || !strings.Contains(backend.contexts[0], "High in added sugar.") {
		t.Errorf("chat context = %q, want verdict snapshot", backend.contexts)
	}
}

func TestBlankQuestionIsNoop(t *testing.T) {
	backend := &fakeBackend{}
	m := succeededModel(t, backend)

	m = typeText(m, "   ")
	m = press(m, tea.KeyEnter)

	am := m.(Model)
	if !am.thread.IsEmpty() {
		t.Error("blank question created a thread entry")
	}
	if len(backend.asked) != 0 {
		t.Error("blank question issued a request")
	}
}

func TestChatFailureGetsFallbackAnswer(t *testing.T) {
	backend := &fakeBackend{chatErr: errors.New("timeout")}
	m := succeededModel(t, backend)

	m = typeText(m, "Is this vegan?")
	m = press(m, tea.KeyEnter)

	entries := m.(Model).thread.Entries()
	if len(entries) != 2 {
		t.Fatalf("thread has %d entries, want 2", len(entries))
	}
	if entries[1].Text != FallbackAnswer {
		t.Errorf("answer = %q, want fallback", entries[1].Text)
	}
}

func TestLateAnswerAfterResetIsDropped(t *testing.T) {
	backend := &fakeBackend{answer: "Sure."}
	m := succeededModel(t, backend)

	m = typeText(m, "Really?")
	pending, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	pending = step(pending, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = drain(pending, cmd)

	am := m.(Model)
	if !am.thread.IsEmpty() {
		t.Error("answer for a cleared thread was appended")
	}
	if got := am.session.State(); got != session.StateIdle {
		t.Errorf("state = %v, want Idle", got)
	}
}

// =============================================================================
// NARRATION
// =============================================================================

func TestNarrateSpeaksVerdict(t *testing.T) {
	speaker := &fakeSpeaker{}
	backend := &fakeBackend{result: goodResult()}
	m := newTestModel(backend, &fakeCamera{}, speaker)
	m = typeText(m, "sugar")
	m = press(m, tea.KeyEnter)

	m = press(m, tea.KeyCtrlS)

	if len(speaker.spoken) != 1 {
		t.Fatalf("spoke %d times, want 1", len(speaker.spoken))
	}
	want := "Verdict is Caution. High in added sugar."
	if speaker.spoken[0] != want {
		t.Errorf("spoken = %q, want %q", speaker.spoken[0], want)
	}
	if m.(Model).narrator.Speaking() {
		t.Error("narrator still speaking after playback finished")
	}
}

func TestNarrateRestartStopsPrevious(t *testing.T) {
	speaker := &fakeSpeaker{}
	backend := &fakeBackend{result: goodResult()}
	m := newTestModel(backend, &fakeCamera{}, speaker)
	m = typeText(m, "sugar")
	m = press(m, tea.KeyEnter)

	m = press(m, tea.KeyCtrlS)
	m = press(m, tea.KeyCtrlS)

	if len(speaker.spoken) != 2 {
		t.Errorf("spoke %d times, want 2", len(speaker.spoken))
	}

	// Stop with nothing playing stays harmless.
	m = press(m, tea.KeyCtrlX)
	_ = press(m, tea.KeyCtrlX)
}

func TestResetSilencesNarration(t *testing.T) {
	speaker := &fakeSpeaker{}
	backend := &fakeBackend{result: goodResult()}
	m := newTestModel(backend, &fakeCamera{}, speaker)
	m = typeText(m, "sugar")
	m = press(m, tea.KeyEnter)

	// Start narration without letting the playback run to completion, so it
	// is still active when the reset arrives.
	playing, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !playing.(Model).narrator.Speaking() {
		t.Fatal("narrator not speaking after start")
	}

	stopsBefore := speaker.stops
	m = step(playing, tea.KeyMsg{Type: tea.KeyCtrlR})

	if speaker.stops <= stopsBefore {
		t.Error("reset did not stop the speaker")
	}
	if m.(Model).narrator.Speaking() {
		t.Error("narrator speaking after reset")
	}

	// The interrupted playback's completion arrives late with a superseded
	// generation; it must not change state.
	m = step(m, NarrationFinishedMsg{Generation: 1})
	if m.(Model).narrator.Speaking() {
		t.Error("stale playback completion changed narration state")
	}
}

// =============================================================================
// RESET
// =============================================================================

func TestResetRestoresInputPhase(t *testing.T) {
	backend := &fakeBackend{answer: "Sure."}
	m := succeededModel(t, backend)
	m = typeText(m, "A question")
	m = press(m, tea.KeyEnter)

	m = press(m, tea.KeyCtrlR)

	am := m.(Model)
	if got := am.session.State(); got != session.StateIdle {
		t.Errorf("state = %v, want Idle", got)
	}
	if am.session.Result() != nil || am.session.Submission() != nil {
		t.Error("session kept payload across reset")
	}
	if !am.thread.IsEmpty() {
		t.Error("thread survived reset")
	}
	if am.textInput.Value() != "" || am.questionInput.Value() != "" {
		t.Error("inputs not cleared by reset")
	}

	// New cycle works immediately.
	m = typeText(m, "fresh input")
	m = press(m, tea.KeyEnter)
	if got := m.(Model).session.State(); got != session.StateSucceeded {
		t.Errorf("state after reset+resubmit = %v, want Succeeded", got)
	}
}

// =============================================================================
// VIEW SMOKE
// =============================================================================

func TestViewKeepsSubmissionPreview(t *testing.T) {
	backend := &fakeBackend{result: goodResult()}
	m := newTestModel(backend, &fakeCamera{}, &fakeSpeaker{})
	m = step(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = typeText(m, "sugar, palm oil")
	m = press(m, tea.KeyEnter)

	if out := m.View(); !strings.Contains(out, "sugar, palm oil") {
		t.Error("result view missing submission preview")
	}

	backend = &fakeBackend{err: errors.New("connection refused")}
	m = newTestModel(backend, &fakeCamera{}, &fakeSpeaker{})
	m = typeText(m, "palm oil")
	m = press(m, tea.KeyEnter)

	if out := m.View(); !strings.Contains(out, "palm oil") {
		t.Error("failure view missing submission preview")
	}
}

func TestViewRendersEveryPhase(t *testing.T) {
	backend := &fakeBackend{result: goodResult()}
	m := newTestModel(backend, &fakeCamera{}, &fakeSpeaker{})
	m = step(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	if out := m.View(); !strings.Contains(out, "NutriSense") {
		t.Error("input phase view missing header")
	}

	m = typeText(m, "sugar")
	pending, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if out := pending.View(); !strings.Contains(out, "Analyzing") {
		t.Error("pending view missing progress text")
	}

	m = drain(pending, cmd)
	out := m.View()
	if !strings.Contains(out, "High in added sugar.") {
		t.Error("result view missing summary")
	}
	if !strings.Contains(out, "Sugar") {
		t.Error("result view missing ingredient findings")
	}
}
