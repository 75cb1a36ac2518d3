// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package capture produces analysis submissions from the three input modes:
// typed text, a one-shot camera frame, and an uploaded image file.
//
// The camera is an explicitly owned resource. It is acquired only while the
// live-capture mode is active and released on mode exit or immediately after
// a capture; there is no continuous streaming. The default implementation
// shells out to a platform still-grabber (fswebcam/ffmpeg on Unix, ffmpeg
// dshow on Windows); tests substitute a fake through the Camera interface.
package capture
