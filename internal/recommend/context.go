// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package recommend

// Energy levels a request may declare.
const (
	EnergyLow  = "low"
	EnergyHigh = "high"
)

// Platforms a request may target.
const (
	PlatformWindows = "windows"
	PlatformMac     = "mac"
	PlatformLinux   = "linux"
)

// Social modes a request may declare.
const (
	SocialSolo   = "solo"
	SocialSocial = "social"
	SocialAny    = "any"
)

// Bounds applied to the requested time budget.
const (
	minTimeAvailable     = 10
	maxTimeAvailable     = 300
	defaultTimeAvailable = 45
)

// Context is the ephemeral per-request recommendation context. It is
// captured once at request start and treated as read-only during scoring.
type Context struct {
	// TimeAvailableMin is the user's session budget in minutes,
	// clamped to [10, 300].
	TimeAvailableMin int `json:"time_available_min"`

	// EnergyLevel is "low" or "high".
	EnergyLevel string `json:"energy_level"`

	// Platform is "windows", "mac" or "linux".
	Platform string `json:"platform"`

	// SocialMode is "solo", "social" or "any".
	SocialMode string `json:"social_mode"`

	// PreferInstalled biases toward already-installed titles.
	PreferInstalled bool `json:"prefer_installed"`

	// FriendsOnline is the number of the user's friends currently online.
	FriendsOnline int `json:"friends_online_count"`
}

// ValidEnergyLevel reports whether v is a known energy level.
func ValidEnergyLevel(v string) bool {
	return v == EnergyLow || v == EnergyHigh
}

// ValidPlatform reports whether v is a known platform.
func ValidPlatform(v string) bool {
	return v == PlatformWindows || v == PlatformMac || v == PlatformLinux
}

// ValidSocialMode reports whether v is a known social mode.
func ValidSocialMode(v string) bool {
	return v == SocialSolo || v == SocialSocial || v == SocialAny
}

// ClampTimeAvailable bounds a requested time budget, substituting the
// default for non-positive values.
func ClampTimeAvailable(minutes int) int {
	if minutes <= 0 {
		minutes = defaultTimeAvailable
	}
	if minutes < minTimeAvailable {
		return minTimeAvailable
	}
	if minutes > maxTimeAvailable {
		return maxTimeAvailable
	}
	return minutes
}
