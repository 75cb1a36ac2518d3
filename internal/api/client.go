// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the NutriSense
// backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the NutriSense backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeServiceError
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "backend is unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsUnreachable checks if an error indicates the backend cannot be reached.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return errors.Is(err, ErrUnreachable)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API base URL, including the version prefix
	// (default: http://127.0.0.1:8000/api/v1)
	BaseURL string

	// Timeout for analyze/chat requests (default: 60s; vision analysis of a
	// photographed label routinely takes tens of seconds)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000/api/v1",
		Timeout: 60 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the NutriSense backend API.
//
// The Client is safe for concurrent use.
//
// Example:
//
//	client := api.NewClient()
//	result, err := client.Analyze(ctx, "sugar, palm oil, salt", "Diabetic")
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000/api/v1"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// ANALYZE OPERATIONS
// =============================================================================

// Analyze submits free-form ingredient text for the given profile and returns
// the structured verdict.
func (c *Client) Analyze(ctx context.Context, text, profile string) (*AnalysisResult, error) {
	body, err := json.Marshal(AnalyzeRequest{Text: text, Profile: profile})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doAnalysis(req)
}

// AnalyzeImage submits a captured or uploaded label image for the given
// profile and returns the structured verdict. The image is sent as a
// multipart form with fields "file" (binary) and "profile".
func (c *Client) AnalyzeImage(ctx context.Context, image []byte, mimeType, profile string) (*AnalysisResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filenameFor(mimeType))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build multipart body", Cause: err}
	}
	if _, err := part.Write(image); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build multipart body", Cause: err}
	}
	if err := w.WriteField("profile", profile); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build multipart body", Cause: err}
	}
	if err := w.Close(); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build multipart body", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/analyze-image", &buf)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.doAnalysis(req)
}

// doAnalysis executes an analyze request and decodes the verdict.
func (c *Client) doAnalysis(req *http.Request) (*AnalysisResult, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError("analysis request failed", resp)
	}

	var result AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode verdict", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// CHAT OPERATION
// =============================================================================

// Chat asks a follow-up question grounded in a serialized verdict and returns
// the answer text.
func (c *Client) Chat(ctx context.Context, question, contextData, profile string) (string, error) {
	body, err := json.Marshal(ChatRequest{Question: question, Context: contextData, Profile: profile})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError("chat request failed", resp)
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode answer", Cause: err}
	}

	return result.Answer, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// statusError converts a non-200 response into a ClientError, preferring the
// backend's error envelope when one is present.
func (c *Client) statusError(op string, resp *http.Response) *ClientError {
	var svcErr backendError
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&svcErr); err == nil && svcErr.Detail != "" {
		return &ClientError{Type: ErrTypeServiceError, Message: svcErr.Detail}
	}
	return &ClientError{Type: ErrTypeServiceError, Message: op + ": " + resp.Status}
}

// filenameFor picks a multipart filename matching the image MIME type. The
// backend routes on the file extension when sniffing fails.
func filenameFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "capture.png"
	case "image/webp":
		return "capture.webp"
	default:
		return "capture.jpg"
	}
}
