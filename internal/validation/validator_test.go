// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package validation

import (
	"net/http"
	"strings"
	"testing"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/models"
)

func TestValidateStructPasses(t *testing.T) {
	req := models.LoginRequest{UserID: "chris@company.com", Password: "secret"}
	if err := ValidateStruct(&req); err != nil {
		t.Fatalf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructRequiredFields(t *testing.T) {
	req := models.LoginRequest{}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if len(verr.Errors()) != 2 {
		t.Fatalf("got %d field errors, want 2", len(verr.Errors()))
	}
	msg := verr.Error()
	if !strings.Contains(msg, "UserID is required") {
		t.Errorf("message %q does not mention UserID", msg)
	}
	if !strings.Contains(msg, "Password is required") {
		t.Errorf("message %q does not mention Password", msg)
	}
}

func TestValidateStructEmailTag(t *testing.T) {
	req := models.CreateDemoRequest{Name: "Acme", Email: "not-an-email"}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if !strings.Contains(verr.Error(), "valid email address") {
		t.Errorf("message %q does not mention email format", verr.Error())
	}
}

func TestValidateStructOmitempty(t *testing.T) {
	// An absent optional email must not trip the email validator.
	req := models.CreateDemoRequest{Name: "Acme"}
	if verr := ValidateStruct(&req); verr != nil {
		t.Fatalf("ValidateStruct() = %v, want nil", verr)
	}
}

func TestValidateStructMinLength(t *testing.T) {
	req := models.PasswordResetConfirm{Token: "tok", NewPassword: "short"}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if !strings.Contains(verr.Error(), "at least 8 characters") {
		t.Errorf("message %q does not mention minimum length", verr.Error())
	}
}

func TestToAPIError(t *testing.T) {
	req := models.CreateShipmentRequest{}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Kind != apierr.KindValidation {
		t.Errorf("Kind = %q, want %q", apiErr.Kind, apierr.KindValidation)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if !strings.Contains(apiErr.UserDetails, "FromID is required") {
		t.Errorf("UserDetails %q does not mention FromID", apiErr.UserDetails)
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator returned distinct instances")
	}
}
