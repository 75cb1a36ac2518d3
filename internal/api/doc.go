// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the NutriSense
// backend.
//
// The backend exposes three operations:
//   - POST /analyze        — JSON {text, profile} -> AnalysisResult
//   - POST /analyze-image  — multipart file+profile -> AnalysisResult
//   - POST /chat           — JSON {question, context, profile} -> {answer}
//
// All failures (network errors, non-success statuses, undecodable bodies)
// are returned as *ClientError values categorized by ErrorType. Callers are
// expected to map these to stable user-facing messages; raw transport detail
// never reaches the interface.
package api
