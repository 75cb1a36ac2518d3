// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyze

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/nutrisense-tui/internal/api"
	"github.com/jeranaias/nutrisense-tui/internal/capture"
	"github.com/jeranaias/nutrisense-tui/internal/model"
	"github.com/jeranaias/nutrisense-tui/internal/narrate"
	"github.com/jeranaias/nutrisense-tui/internal/session"
	"github.com/jeranaias/nutrisense-tui/internal/ui/components"
	"github.com/jeranaias/nutrisense-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole screen for the current state.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.banner.Visible() {
		b.WriteString(m.banner.View(m.theme))
		b.WriteString("\n")
	}
	if m.session.State() == session.StateFailed {
		if sub := m.session.Submission(); sub != nil {
			b.WriteString(" " + m.theme.Preview.Render(sub.Preview))
			b.WriteString("\n")
		}
	}

	switch m.session.State() {
	case session.StateSucceeded:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(m.theme.InputContainer.Render(m.questionInput.View()))
		b.WriteString("\n")

	case session.StatePending:
		b.WriteString(m.viewTabs())
		b.WriteString("\n\n")
		b.WriteString(m.viewPending())
		b.WriteString("\n")

	default:
		b.WriteString(m.viewTabs())
		b.WriteString("\n")
		b.WriteString(m.viewProfiles())
		b.WriteString("\n\n")
		b.WriteString(m.viewCaptureArea())
		b.WriteString("\n")
	}

	b.WriteString(m.viewStatusBar())
	return b.String()
}

func (m Model) viewHeader() string {
	title := m.theme.HeaderTitle.Render("NutriSense")
	subtitle := m.theme.HeaderSubtitle.Render("ingredient risk analysis")
	return m.theme.Header.Render(title + "  " + subtitle)
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(capture.Modes))
	for _, mode := range capture.Modes {
		style := m.theme.TabInactive
		if mode == m.mode {
			style = m.theme.TabActive
		}
		tabs = append(tabs, style.Render(mode.String()))
	}
	return " " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewProfiles() string {
	chips := make([]string, 0, len(model.Profiles))
	for _, p := range model.Profiles {
		style := m.theme.ProfileInactive
		if p == m.profile {
			style = m.theme.ProfileActive
		}
		chips = append(chips, style.Render(p.Label()))
	}
	return " " + m.theme.ProfileLabel.Render("Profile:") + " " +
		lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m Model) viewCaptureArea() string {
	switch m.mode {
	case capture.ModeLiveCapture:
		return m.viewLiveCapture()
	case capture.ModeFileUpload:
		return m.filePicker.View()
	default:
		hint := m.theme.ChatHint.Render("enter to analyze")
		return " " + m.theme.InputContainer.Render(m.textInput.View()) + "\n " + hint
	}
}

func (m Model) viewLiveCapture() string {
	if m.capturing {
		return " " + m.theme.PendingText.Render("Capturing frame...")
	}
	if !m.cameraReady {
		return " " + m.theme.Placeholder.Render("No camera available. Connect a device and press enter to retry.")
	}
	return " " + m.theme.PendingText.Render("Camera ready.") + " " +
		m.theme.ChatHint.Render("enter to capture and analyze")
}

func (m Model) viewPending() string {
	lines := []string{" " + m.spin.View()}
	if sub := m.session.Submission(); sub != nil {
		lines = append(lines, " "+m.theme.Preview.Render(sub.Preview))
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// RESULT SCREEN
// =============================================================================

// resultContent renders the verdict, findings, recommendations, and chat
// thread into one scrollable block.
func (m Model) resultContent() string {
	result := m.session.Result()
	if result == nil {
		return ""
	}

	var b strings.Builder
	if sub := m.session.Submission(); sub != nil {
		b.WriteString(m.theme.Preview.Render(sub.Preview))
		b.WriteString("\n")
	}
	b.WriteString(m.viewVerdict(result))
	b.WriteString("\n")

	if len(result.IngredientsBreakdown) > 0 {
		b.WriteString(m.viewIngredients(result.IngredientsBreakdown))
		b.WriteString("\n")
	}
	if rec := m.viewRecommendations(result); rec != "" {
		b.WriteString(rec)
		b.WriteString("\n")
	}

	b.WriteString(m.viewThread())
	return b.String()
}

func (m Model) viewVerdict(result *api.AnalysisResult) string {
	risk := api.ParseRisk(result.OverallRisk)
	badge := components.RiskBadge(m.theme, risk)

	inner := m.theme.VerdictTitle.Render("Verdict ") + badge + "\n" +
		m.theme.VerdictSummary.Render(result.Summary) + "\n" +
		m.theme.ChatHint.Render("Analyzed for: "+m.analyzedProfile.Label())
	card := m.theme.VerdictStyle(string(risk)).Render(inner)

	if m.narrator.Speaking() {
		card += "\n" + m.theme.PendingText.Render(" speaking... (ctrl+x to stop)")
	}
	return card
}

func (m Model) viewIngredients(findings []api.IngredientFinding) string {
	var b strings.Builder
	b.WriteString(m.theme.VerdictTitle.Render("Ingredients"))
	b.WriteString("\n")

	for _, f := range findings {
		glyph := components.RiskGlyph(api.ParseRisk(f.RiskLevel))
		b.WriteString(fmt.Sprintf(" %s %s %s\n",
			glyph,
			m.theme.IngredientName.Render(f.Name),
			m.theme.IngredientFunction.Render(f.Function)))
		if f.Reasoning != "" {
			b.WriteString("   " + m.theme.IngredientReason.Render(f.Reasoning) + "\n")
		}
	}
	return b.String()
}

// viewRecommendations renders the alternative-product and recipe cards.
// Nothing is suggested for a Safe verdict.
func (m Model) viewRecommendations(result *api.AnalysisResult) string {
	if api.ParseRisk(result.OverallRisk) == api.RiskSafe {
		return ""
	}

	var cards []string

	if result.AlternativeProductName != "" {
		body := m.theme.RecommendTitle.Render("Try instead") + "\n" +
			result.AlternativeProductName
		if result.BuyLinkQuery != "" {
			body += "\n" + m.theme.ChatHint.Render("search: "+result.BuyLinkQuery)
		}
		cards = append(cards, m.theme.RecommendCard.Render(body))
	}
	if result.RecipeName != "" {
		body := m.theme.RecommendTitle.Render("Make it yourself") + "\n" +
			result.RecipeName
		if result.RecipeSteps != "" {
			body += "\n" + result.RecipeSteps
		}
		cards = append(cards, m.theme.RecommendCard.Render(body))
	}

	if len(cards) == 0 {
		return ""
	}
	return strings.Join(cards, "\n")
}

func (m Model) viewThread() string {
	var b strings.Builder
	b.WriteString(m.theme.VerdictTitle.Render("Questions"))
	b.WriteString("\n")

	if m.thread.IsEmpty() {
		b.WriteString(m.theme.ChatHint.Render(" Try: \"Is this okay for kids?\"  \"What should I eat instead?\""))
		b.WriteString("\n")
		return b.String()
	}

	for _, entry := range m.thread.Entries() {
		switch entry.Role {
		case model.RoleUser:
			b.WriteString(" " + m.theme.UserBubble.Render("You") + " " + entry.Text + "\n")
		case model.RoleAssistant:
			b.WriteString(" " + m.theme.AssistantBubble.Render("NutriSense") + " " +
				m.renderMarkdown(entry.Text) + "\n")
		}
	}
	if m.thread.Waiting() {
		b.WriteString(" " + m.theme.PendingText.Render("thinking...") + "\n")
	}
	return b.String()
}

// renderMarkdown pretty-prints an assistant answer; falls back to the raw
// text when the renderer is unavailable.
func (m Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

// =============================================================================
// STATUS BAR
// =============================================================================

func (m Model) viewStatusBar() string {
	var parts []string

	key := func(k, desc string) string {
		return m.theme.ShortcutKey.Render(k) + " " + desc
	}

	switch m.session.State() {
	case session.StateSucceeded:
		parts = append(parts, key("enter", "ask"), key("ctrl+s", "speak"))
		if m.narrator.State() == narrate.StateSpeaking {
			parts = append(parts, key("ctrl+x", "stop"))
		}
		parts = append(parts, key("ctrl+r", "scan another item"))
	case session.StatePending:
		parts = append(parts, key("ctrl+r", "cancel"))
	default:
		parts = append(parts, key("tab", "mode"), key("ctrl+p", "profile"), key("enter", "go"))
	}
	parts = append(parts, key("ctrl+c", "quit"))

	bar := strings.Join(parts, "  ")
	if m.width > 0 {
		bar = util.TruncateWidth(bar, m.width)
	}
	return m.theme.StatusBar.Render(bar)
}
