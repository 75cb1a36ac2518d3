// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain data structures for nutrisense-tui.
package model

// =============================================================================
// HEALTH PROFILES
// =============================================================================

// Profile is the health-context filter applied to every analysis and chat
// request. The set is closed; exactly one profile is active at a time.
type Profile int

const (
	ProfileGeneral Profile = iota
	ProfileDiabetic
	ProfileVegan
	ProfileHypertension
	ProfileAthlete
)

// DefaultProfile is the profile active at startup.
const DefaultProfile = ProfileGeneral

// Profiles lists all selectable profiles in display order.
var Profiles = []Profile{
	ProfileGeneral,
	ProfileDiabetic,
	ProfileVegan,
	ProfileHypertension,
	ProfileAthlete,
}

// String returns the wire identifier sent to the backend. These match the
// identifiers the backend was trained against and must not be renamed.
func (p Profile) String() string {
	switch p {
	case ProfileDiabetic:
		return "Diabetic"
	case ProfileVegan:
		return "Vegan"
	case ProfileHypertension:
		return "Hypertension"
	case ProfileAthlete:
		return "Gym/Athlete"
	default:
		return "General Healthy"
	}
}

// Label returns the short display label for the profile selector.
func (p Profile) Label() string {
	switch p {
	case ProfileDiabetic:
		return "Diabetic"
	case ProfileVegan:
		return "Vegan"
	case ProfileHypertension:
		return "BP/Heart"
	case ProfileAthlete:
		return "Gym/Pro"
	default:
		return "General"
	}
}

// Next returns the next profile in display order, wrapping around.
func (p Profile) Next() Profile {
	return Profile((int(p) + 1) % len(Profiles))
}

// Prev returns the previous profile in display order, wrapping around.
func (p Profile) Prev() Profile {
	return Profile((int(p) + len(Profiles) - 1) % len(Profiles))
}
