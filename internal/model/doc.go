// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain data structures for nutrisense-tui:
// health profiles, analysis submissions, and the follow-up conversation
// thread.
//
// Everything here is plain data with no I/O. The api package owns the wire
// types; the session package owns the analysis lifecycle; this package is
// shared by both and by the UI.
package model
