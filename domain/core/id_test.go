package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestNewSubmissionID tests that submission IDs are time ordered
func TestNewSubmissionID(t *testing.T) {
	first := NewSubmissionID()
	second := NewSubmissionID()
	if first == second {
		t.Fatal("Expected distinct submission IDs")
	}
	if first.String() > second.String() {
		t.Errorf("Expected %s to sort before %s", first, second)
	}
}

// TestErrorClassification tests the errors.Is based helpers
func TestErrorClassification(t *testing.T) {
	if !IsNotFoundError(NewUnknownCategoryError("XX-1")) {
		t.Error("Expected unknown category to be a not-found error")
	}
	if !errors.Is(NewUnknownParameterError("L_param"), ErrUnknownParameter) {
		t.Error("Expected unknown parameter error to wrap ErrUnknownParameter")
	}
	if !IsValidationError(NewInactiveParameterError("Mass_Const", "LS2-1")) {
		t.Error("Expected inactive parameter to be a validation error")
	}
	if !IsValidationError(errors.Join(ErrNoCategory, ErrMissingEmail)) {
		t.Error("Expected joined form errors to be validation errors")
	}
	if IsValidationError(NewCatalogError("duplicate id %s", "LS2-1")) {
		t.Error("Catalog errors must not be reported as validation errors")
	}
	if !IsConfigurationError(NewUnmappedFieldError("Email")) {
		t.Error("Expected unmapped field to be a configuration error")
	}
}
