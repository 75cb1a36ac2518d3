// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces for nutrisense-tui: the
// loading spinner, the error banner, and risk badge rendering.
package components
