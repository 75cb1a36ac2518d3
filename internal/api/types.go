// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the NutriSense
// backend.
package api

import "strings"

// =============================================================================
// RISK LEVELS
// =============================================================================

// RiskLevel is the risk classification assigned by the backend, either to a
// whole product or to a single ingredient.
type RiskLevel string

const (
	RiskSafe    RiskLevel = "Safe"
	RiskCaution RiskLevel = "Caution"
	RiskAvoid   RiskLevel = "Avoid"
	RiskUnknown RiskLevel = "Unknown"
)

// ParseRisk normalizes a backend risk string into one of the known levels.
// Matching is case-insensitive; anything unrecognized maps to RiskUnknown.
func ParseRisk(s string) RiskLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return RiskSafe
	case "caution":
		return RiskCaution
	case "avoid":
		return RiskAvoid
	default:
		return RiskUnknown
	}
}

// =============================================================================
// ANALYSIS RESULT
// =============================================================================

// IngredientFinding is one entry of the per-ingredient breakdown.
type IngredientFinding struct {
	Name      string `json:"name"`
	Function  string `json:"function"`
	RiskLevel string `json:"risk_level"`
	Reasoning string `json:"reasoning"`
}

// Risk returns the normalized risk level of the finding.
func (f IngredientFinding) Risk() RiskLevel {
	return ParseRisk(f.RiskLevel)
}

// AnalysisResult is the structured verdict returned by the analyze endpoints.
// Unknown fields in the response body are ignored.
type AnalysisResult struct {
	OverallRisk string `json:"overall_risk"`
	Summary     string `json:"summary"`

	// Recommendation fields, present only when the backend has something
	// better to suggest.
	AlternativeProductName string `json:"alternative_product_name,omitempty"`
	BuyLinkQuery           string `json:"buy_link_query,omitempty"`
	RecipeName             string `json:"recipe_name,omitempty"`
	RecipeSteps            string `json:"recipe_steps,omitempty"`

	IngredientsBreakdown []IngredientFinding `json:"ingredients_breakdown"`
}

// Risk returns the normalized overall risk level of the verdict.
func (r *AnalysisResult) Risk() RiskLevel {
	return ParseRisk(r.OverallRisk)
}

// HasAlternative reports whether the verdict carries a product alternative.
func (r *AnalysisResult) HasAlternative() bool {
	return r.AlternativeProductName != ""
}

// HasRecipe reports whether the verdict carries a DIY recipe suggestion.
func (r *AnalysisResult) HasRecipe() bool {
	return r.RecipeName != ""
}

// =============================================================================
// REQUEST / RESPONSE BODIES
// =============================================================================

// AnalyzeRequest is the JSON body for the text analyze endpoint.
type AnalyzeRequest struct {
	Text    string `json:"text"`
	Profile string `json:"profile"`
}

// ChatRequest is the JSON body for the chat endpoint. Context carries the
// serialized AnalysisResult the question is grounded in.
type ChatRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
	Profile  string `json:"profile"`
}

// ChatResponse is the JSON body returned by the chat endpoint.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// backendError is the error envelope some backend failures carry.
type backendError struct {
	Detail string `json:"detail"`
}
