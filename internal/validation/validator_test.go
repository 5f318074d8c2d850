// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package validation

import (
	"strings"
	"testing"
)

type recommendRequest struct {
	TimeAvailableMin int    `validate:"omitempty,gte=0,lte=1440"`
	EnergyLevel      string `validate:"required,energy_level"`
	Platform         string `validate:"required,platform"`
	SocialMode       string `validate:"required,social_mode"`
}

type feedbackRequest struct {
	GameID int64  `validate:"required,gt=0"`
	Action string `validate:"required,feedback_action"`
}

func TestValidateStructPasses(t *testing.T) {
	req := recommendRequest{
		TimeAvailableMin: 45,
		EnergyLevel:      "low",
		Platform:         "linux",
		SocialMode:       "any",
	}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}

func TestCustomEnumValidators(t *testing.T) {
	tests := []struct {
		name      string
		req       recommendRequest
		wantField string
	}{
		{
			"bad energy level",
			recommendRequest{EnergyLevel: "medium", Platform: "windows", SocialMode: "solo"},
			"EnergyLevel",
		},
		{
			"bad platform",
			recommendRequest{EnergyLevel: "low", Platform: "amiga", SocialMode: "solo"},
			"Platform",
		},
		{
			"bad social mode",
			recommendRequest{EnergyLevel: "low", Platform: "windows", SocialMode: "crowd"},
			"SocialMode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if err == nil {
				t.Fatal("invalid request accepted")
			}
			errs := err.Errors()
			if len(errs) != 1 || errs[0].Field() != tt.wantField {
				t.Errorf("errors = %v", err)
			}
			// The message names the allowed values.
			if !strings.Contains(errs[0].Error(), "must be one of") {
				t.Errorf("message = %q", errs[0].Error())
			}
		})
	}
}

func TestFeedbackActionValidator(t *testing.T) {
	if err := ValidateStruct(&feedbackRequest{GameID: 10, Action: "accept"}); err != nil {
		t.Errorf("valid feedback rejected: %v", err)
	}
	if err := ValidateStruct(&feedbackRequest{GameID: 10, Action: "maybe"}); err == nil {
		t.Error("unknown action accepted")
	}
	if err := ValidateStruct(&feedbackRequest{GameID: 0, Action: "accept"}); err == nil {
		t.Error("zero game id accepted")
	}
}

func TestToAPIError(t *testing.T) {
	err := ValidateStruct(&recommendRequest{EnergyLevel: "nope", Platform: "amiga", SocialMode: "solo"})
	if err == nil {
		t.Fatal("invalid request accepted")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "INVALID_INPUT" {
		t.Errorf("code = %q", apiErr.Code)
	}
	if len(err.Errors()) == 2 {
		if _, ok := apiErr.Details["fields"]; !ok {
			t.Errorf("multi-error details = %v", apiErr.Details)
		}
	}
}
