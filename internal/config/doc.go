// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

// Package config loads and validates the server configuration.
//
// Configuration is layered with koanf: built-in defaults, then an optional
// YAML file, then PLAYPICK_* environment variables, later layers winning.
package config
