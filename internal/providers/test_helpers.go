package providers

import (
	"errors"
	"testing"
	"time"

	"forgefit/coach/pkg/providers"
)

// fixedTime keeps stub results structurally identical across calls.
var fixedTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// TestConfig returns a test provider configuration.
func TestConfig(name string) providers.ProviderConfig {
	return providers.ProviderConfig{
		Name:                name,
		BaseURL:             "http://localhost:8080",
		APIKey:              "test-key",
		Model:               "test-model",
		Temperature:         0.2,
		MaxTokens:           1024,
		Timeout:             5 * time.Second,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     30 * time.Second,
	}
}

// TestConfigWithURL returns a test config with a specific base URL.
func TestConfigWithURL(name, baseURL string) providers.ProviderConfig {
	config := TestConfig(name)
	config.BaseURL = baseURL
	return config
}

// TestProfile returns a representative athlete profile.
func TestProfile() providers.UserProfile {
	return providers.UserProfile{
		ID:              "user-1",
		Name:            "Sam",
		Age:             34,
		ExperienceLevel: "intermediate",
		Goals:           []string{"sub-4 marathon"},
		SessionsPerWeek: 5,
		Equipment:       []string{"barbell", "treadmill"},
	}
}

// TestEvent returns a representative target event.
func TestEvent() providers.TargetEvent {
	return providers.TargetEvent{
		Name: "City Marathon",
		Type: "marathon",
		Date: "2025-10-12",
		Goal: "3:55:00",
	}
}

// TestWorkout returns a representative planned workout.
func TestWorkout() providers.Workout {
	return providers.Workout{
		ID:              "workout-1",
		ProgramID:       "program-1",
		Name:            "Lower body strength",
		Type:            "strength",
		DurationMinutes: 60,
		Intensity:       "moderate",
		Exercises: []providers.Exercise{
			{Name: "Back squat", Sets: 4, Reps: "6", Load: "80%"},
			{Name: "Romanian deadlift", Sets: 3, Reps: "8"},
		},
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertOperationError fails the test unless err is an *OperationError for
// the given provider and operation.
func AssertOperationError(t *testing.T, err error, provider, operation string) *providers.OperationError {
	t.Helper()
	var opErr *providers.OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *providers.OperationError, got %T: %v", err, err)
	}
	if opErr.Provider != provider {
		t.Errorf("expected provider %q, got %q", provider, opErr.Provider)
	}
	if opErr.Operation != operation {
		t.Errorf("expected operation %q, got %q", operation, opErr.Operation)
	}
	return opErr
}

// AssertConfigError fails the test unless err is a *ConfigError for field.
func AssertConfigError(t *testing.T, err error, field string) {
	t.Helper()
	var cfgErr *providers.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *providers.ConfigError, got %T: %v", err, err)
	}
	if cfgErr.Field != field {
		t.Errorf("expected field %q, got %q", field, cfgErr.Field)
	}
}
