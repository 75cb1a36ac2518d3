// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for nutrisense-tui.
//
// The configuration surface is deliberately small: the backend endpoint and
// timeout, plus optional overrides for the external capture and narration
// commands. TOML file with environment variable overrides, validated on
// load.
package config
