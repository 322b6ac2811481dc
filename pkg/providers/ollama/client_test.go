package ollama

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	testhelpers "forgefit/coach/internal/providers"
	"forgefit/coach/pkg/providers"
)

func TestNewProvider_Validation(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		baseURL   string
		wantField string
	}{
		{name: "missing api key", apiKey: "", baseURL: "", wantField: APIKeyEnv},
		{name: "bare host", apiKey: "k", baseURL: "localhost:11434", wantField: BaseURLEnv},
		{name: "wrong scheme", apiKey: "k", baseURL: "ftp://models.internal", wantField: BaseURLEnv},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(providers.ProviderConfig{APIKey: tt.apiKey, BaseURL: tt.baseURL}, nil)
			testhelpers.AssertConfigError(t, err, tt.wantField)
		})
	}
}

func TestNewProvider_DefaultBaseURL(t *testing.T) {
	provider, err := NewProvider(providers.ProviderConfig{APIKey: "k"}, nil)
	testhelpers.AssertNoError(t, err)

	if got := provider.GetConfig().BaseURL; got != DefaultBaseURL {
		t.Errorf("expected base URL %q, got %q", DefaultBaseURL, got)
	}
	if got := provider.GetConfig().Model; got != DefaultModel {
		t.Errorf("expected model %q, got %q", DefaultModel, got)
	}
}

func TestNewProvider_AcceptsHTTPS(t *testing.T) {
	provider, err := NewProvider(providers.ProviderConfig{APIKey: "k", BaseURL: "https://ollama.com/"}, nil)
	testhelpers.AssertNoError(t, err)

	if got := provider.GetConfig().BaseURL; got != "https://ollama.com" {
		t.Errorf("expected trailing slash trimmed, got %q", got)
	}
}

func TestOllamaProvider_AdaptWorkout(t *testing.T) {
	mock := testhelpers.NewMockServer()
	defer mock.Close()

	mock.SetResponse("/api/chat", testhelpers.MockResponse{
		StatusCode: http.StatusOK,
		Body: testhelpers.MockOllamaResponse(
			"```json\n{\"duration_minutes\": 30, \"intensity\": \"low\", \"adaptation_notes\": \"Hotel gym only\"}\n```",
			"test-model"),
	})

	provider, err := NewProvider(testhelpers.TestConfigWithURL("ollama", mock.URL()), nil)
	testhelpers.AssertNoError(t, err)
	defer provider.Close()

	original := testhelpers.TestWorkout()
	adapted, err := provider.AdaptWorkout(context.Background(), original, providers.WorkoutAdaptationContext{
		TimeAvailableMinutes: 30,
		Traveling:            true,
	})
	testhelpers.AssertNoError(t, err)

	if adapted.DurationMinutes != 30 || adapted.Intensity != "low" {
		t.Errorf("expected model fields to overwrite, got duration %d intensity %q",
			adapted.DurationMinutes, adapted.Intensity)
	}
	if adapted.AdaptationNotes != "Hotel gym only" {
		t.Errorf("unexpected adaptation notes %q", adapted.AdaptationNotes)
	}
	if adapted.ID != original.ID || adapted.Name != original.Name {
		t.Error("expected untouched fields to be kept")
	}
	if !reflect.DeepEqual(adapted.Exercises, original.Exercises) {
		t.Error("expected exercises to be kept")
	}
	if original.DurationMinutes != 60 {
		t.Error("original workout must not be modified")
	}

	body, err := mock.LastRequest().JSON()
	testhelpers.AssertNoError(t, err)

	if body["stream"] != false {
		t.Errorf("expected stream false, got %v", body["stream"])
	}
	if body["format"] != "json" {
		t.Errorf("expected format json, got %v", body["format"])
	}
	if err := testhelpers.ExpectHeader(mock.LastRequest(), "Authorization", "Bearer test-key"); err != nil {
		t.Error(err)
	}
}

func TestOllamaProvider_TransportError(t *testing.T) {
	// Nothing listens on the reserved port.
	provider, err := NewProvider(testhelpers.TestConfigWithURL("ollama", "http://127.0.0.1:1"), nil)
	testhelpers.AssertNoError(t, err)

	_, err = provider.GenerateChallenge(context.Background(), testhelpers.TestProfile(), "")
	testhelpers.AssertOperationError(t, err, "ollama", providers.OpGenerateChallenge)

	if providers.ErrorType(err) != "network" {
		t.Errorf("expected network error type, got %q", providers.ErrorType(err))
	}
}
