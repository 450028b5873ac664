// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Username string  `json:"username" validate:"required,ig_username"`
	ThreadID string  `json:"thread_id" validate:"omitempty,digits"`
	Amount   int     `query:"amount" validate:"gte=0,lte=100"`
	Filter   string  `query:"selected_filter" validate:"omitempty,oneof=flagged unread"`
	UserIDs  []int64 `json:"user_ids" validate:"max=2"`
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	req := sampleRequest{Username: "jane.doe_1", ThreadID: "340282366841710300949128", Amount: 10, Filter: "unread"}
	if err := ValidateStruct(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       sampleRequest
		wantField string
		wantMsg   string
	}{
		{"missing username", sampleRequest{}, "username", "username is required"},
		{"bad username", sampleRequest{Username: "no spaces"}, "username", "valid Instagram username"},
		{"thread id not digits", sampleRequest{Username: "a", ThreadID: "12x"}, "thread_id", "decimal identifier"},
		{"amount too big", sampleRequest{Username: "a", Amount: 101}, "amount", "less than or equal to 100"},
		{"bad filter", sampleRequest{Username: "a", Filter: "spam"}, "selected_filter", "must be one of"},
		{"too many ids", sampleRequest{Username: "a", UserIDs: []int64{1, 2, 3}}, "user_ids", "at most 2 items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.req)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if len(verr.Errors()) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(verr.Errors()), verr)
			}
			fe := verr.Errors()[0]
			if fe.Field() != tt.wantField {
				t.Errorf("field = %q, want %q", fe.Field(), tt.wantField)
			}
			if !strings.Contains(fe.Error(), tt.wantMsg) {
				t.Errorf("message %q does not contain %q", fe.Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&sampleRequest{Amount: -1})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Errorf("expected fields detail for multiple errors, got %v", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "username is required") {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestValidUsername(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"jane", "j.a_n3", strings.Repeat("a", 30)} {
		if !ValidUsername(ok) {
			t.Errorf("%q should be valid", ok)
		}
	}
	for _, bad := range []string{"", "@jane", "jane/", strings.Repeat("a", 31), "ja ne"} {
		if ValidUsername(bad) {
			t.Errorf("%q should be invalid", bad)
		}
	}
}
