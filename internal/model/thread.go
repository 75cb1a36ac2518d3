// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain data structures for nutrisense-tui.
package model

import "strings"

// =============================================================================
// CONVERSATION ROLES
// =============================================================================

// Role identifies the author of a conversation entry.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
)

// String returns the display name of the role.
func (r Role) String() string {
	if r == RoleAssistant {
		return "assistant"
	}
	return "user"
}

// =============================================================================
// CONVERSATION THREAD
// =============================================================================

// Entry is one turn half in the follow-up conversation. Entries are never
// mutated after append.
type Entry struct {
	Role Role
	Text string
}

// Thread is the append-only question/answer log scoped to one analysis
// result. Entries are appended in the order their events occur on the update
// loop: user questions synchronously on submit, assistant answers in the
// order their requests complete.
type Thread struct {
	entries []Entry

	// outstanding counts chat requests issued but not yet answered. The user
	// may queue further questions while one is in flight.
	outstanding int
}

// NewThread creates an empty conversation thread.
func NewThread() *Thread {
	return &Thread{}
}

// AppendQuestion validates and appends a user question. Blank or
// whitespace-only questions are rejected: the thread is unchanged and ok is
// false. On success the outstanding counter is incremented and the trimmed
// question is returned for the request.
func (t *Thread) AppendQuestion(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	t.entries = append(t.entries, Entry{Role: RoleUser, Text: trimmed})
	t.outstanding++
	return trimmed, true
}

// AppendAnswer appends an assistant answer and decrements the outstanding
// counter. Failed requests append their fallback text through the same path;
// a turn is never silently dropped.
func (t *Thread) AppendAnswer(text string) {
	t.entries = append(t.entries, Entry{Role: RoleAssistant, Text: text})
	if t.outstanding > 0 {
		t.outstanding--
	}
}

// Entries returns the chronological entry log.
func (t *Thread) Entries() []Entry {
	return t.entries
}

// Len returns the number of entries.
func (t *Thread) Len() int {
	return len(t.entries)
}

// IsEmpty reports whether the thread has no entries.
func (t *Thread) IsEmpty() bool {
	return len(t.entries) == 0
}

// Waiting reports whether at least one chat request is outstanding.
func (t *Thread) Waiting() bool {
	return t.outstanding > 0
}

// Clear removes all entries and forgets outstanding requests. Called whenever
// the owning analysis result is cleared or replaced.
func (t *Thread) Clear() {
	t.entries = nil
	t.outstanding = 0
}
