package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	testhelpers "forgefit/coach/internal/providers"
	"forgefit/coach/pkg/cli"
	"forgefit/coach/pkg/providers"
	"forgefit/coach/pkg/training"
)

const testAPIKey = "sk-test-0123456789abcdef"

// isolateEnv clears every variable the loader reads and moves into an empty
// directory so no stray .env is picked up.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AI_PROVIDER", "AI_FALLBACK_PROVIDER",
		"COACH_AI_TIMEOUT", "COACH_AI_TEMPERATURE", "COACH_AI_MAX_TOKENS",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"ANTHROPIC_API_KEY", "ANTHROPIC_BASE_URL", "ANTHROPIC_MODEL",
		"OLLAMA_API_KEY", "OLLAMA_BASE_URL", "OLLAMA_MODEL",
		"COACH_TELEMETRY_LOGGING_LEVEL", "COACH_TELEMETRY_LOGGING_FORMAT",
		"COACH_TELEMETRY_METRICS_ENABLED", "COACH_TELEMETRY_METRICS_TEXTFILE_PATH",
		"COACH_TELEMETRY_TRACING_ENABLED", "COACH_TELEMETRY_TRACING_ENDPOINT",
		"COACH_TELEMETRY_TRACING_SAMPLE_RATIO",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

// runCoach executes the CLI with args and returns stdout and stderr.
func runCoach(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// openAIBackend starts a mock OpenAI endpoint replying with content.
func openAIBackend(t *testing.T, content string) *testhelpers.MockServer {
	t.Helper()
	mock := testhelpers.NewMockServer()
	t.Cleanup(mock.Close)
	mock.SetResponse("/v1/chat/completions", testhelpers.MockResponse{
		StatusCode: http.StatusOK,
		Body:       testhelpers.MockOpenAIResponse(content, "gpt-4o"),
	})
	t.Setenv("OPENAI_API_KEY", testAPIKey)
	t.Setenv("OPENAI_BASE_URL", mock.URL()+"/v1")
	return mock
}

func profileFile(t *testing.T) string {
	return writeFile(t, "profile.json", `{"id":"athlete-7","experience_level":"intermediate","sessions_per_week":4}`)
}

func workoutFile(t *testing.T) string {
	return writeFile(t, "workout.yaml", `
id: w-42
name: Back squat day
duration_minutes: 70
intensity: high
exercises:
  - name: Back squat
    sets: 5
    reps: "5"
    load: 80%
`)
}

func TestChallengeCommand_JSON(t *testing.T) {
	isolateEnv(t)
	mock := openAIBackend(t, `{"name":"Plank ladder","target_date":"2025-08-01","description":"Add 10s a day"}`)

	out, _, err := runCoach(t, "", "challenge", "--profile", profileFile(t), "-o", "json")
	if err != nil {
		t.Fatalf("challenge error = %v", err)
	}

	var challenge providers.Challenge
	if err := json.Unmarshal([]byte(out), &challenge); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if challenge.Name != "Plank ladder" || challenge.Type != "general" {
		t.Errorf("challenge = %+v", challenge)
	}

	if err := testhelpers.ExpectHeader(mock.LastRequest(), "Authorization", "Bearer "+testAPIKey); err != nil {
		t.Error(err)
	}
	if mock.LastRequest().Header.Get("Traceparent") != "" {
		t.Error("no trace context expected with tracing disabled")
	}
}

func TestProgramCommand_TextAndMetrics(t *testing.T) {
	isolateEnv(t)
	openAIBackend(t, "```json\n"+`{
  "name": "Spring Half Marathon",
  "duration_weeks": 8,
  "phases": [{"name":"base","weeks":4},{"name":"build","weeks":3},{"name":"taper","weeks":1}],
  "workouts": [{"name":"Long run","scheduled_date":"2025-03-09","duration_minutes":90,"intensity":"easy"}]
}`+"\n```")

	event := writeFile(t, "event.json", `{"name":"City Half","date":"2025-05-04"}`)
	metricsFile := filepath.Join(t.TempDir(), "coach.prom")

	out, _, err := runCoach(t, "", "program", "--profile", profileFile(t), "--event", event, "--metrics-file", metricsFile)
	if err != nil {
		t.Fatalf("program error = %v", err)
	}
	for _, want := range []string{"Spring Half Marathon", "active", "City Half", "base, week 1", "taper", "Long run"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	data, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	want := `coach_ai_provider_requests_total{operation="generate_program",provider="openai",status="success"} 1`
	if !strings.Contains(string(data), want) {
		t.Errorf("metrics missing %q:\n%s", want, data)
	}
}

func TestProgramCommand_YAMLStdin(t *testing.T) {
	isolateEnv(t)
	openAIBackend(t, `{"name":"Base Block"}`)

	event := writeFile(t, "event.json", `{"name":"Gran Fondo"}`)
	out, _, err := runCoach(t, `{"id":"rider-1"}`, "program", "--profile", "-", "--event", event, "-o", "yaml")
	if err != nil {
		t.Fatalf("program error = %v", err)
	}
	for _, want := range []string{"name: Base Block", "user_id: rider-1", "status: active", "phase: base"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAdaptCommand(t *testing.T) {
	isolateEnv(t)
	mock := openAIBackend(t, `{"duration_minutes":40,"intensity":"moderate","adaptation_notes":"Cut to 3 working sets"}`)

	ctxFile := writeFile(t, "ctx.json", `{"time_available_minutes":40,"readiness_score":4}`)
	out, _, err := runCoach(t, "", "adapt", "--workout", workoutFile(t), "--context", ctxFile, "-o", "json")
	if err != nil {
		t.Fatalf("adapt error = %v", err)
	}

	var adapted providers.Workout
	if err := json.Unmarshal([]byte(out), &adapted); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if adapted.ID != "w-42" || adapted.DurationMinutes != 40 || adapted.Intensity != "moderate" || len(adapted.Exercises) != 1 {
		t.Errorf("adapted = %+v", adapted)
	}
	if !strings.Contains(string(mock.LastRequest().Body), "readiness_score") {
		t.Error("adaptation context was not sent")
	}
}

func TestDeloadCommand_WithReason(t *testing.T) {
	isolateEnv(t)
	mock := openAIBackend(t, `{"deload_options":[{"type":"volume","description":"3x5 instead of 5x5","modifications":{"sets":3}}]}`)

	out, _, err := runCoach(t, "", "deload", "--workout", workoutFile(t), "--reason", "poor sleep")
	if err != nil {
		t.Fatalf("deload error = %v", err)
	}
	if !strings.Contains(out, "volume") || !strings.Contains(out, "sets=3") {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(string(mock.LastRequest().Body), "poor sleep") {
		t.Error("reason was not sent")
	}
}

func sessionsFile(t *testing.T, rpe float64) string {
	now := time.Now()
	var logs []providers.SessionLog
	for _, daysAgo := range []int{1, 3, 5, 8} {
		logs = append(logs, providers.SessionLog{
			Date:      now.AddDate(0, 0, -daysAgo).Format(time.DateOnly),
			Completed: true,
			RPE:       rpe,
		})
	}
	data, err := json.Marshal(logs)
	if err != nil {
		t.Fatal(err)
	}
	return writeFile(t, "sessions.json", string(data))
}

func TestDeloadCommand_Check(t *testing.T) {
	isolateEnv(t)
	mock := openAIBackend(t, `{}`)

	out, _, err := runCoach(t, "", "deload", "--logs", sessionsFile(t, 9.5), "--check", "-o", "json")
	if err != nil {
		t.Fatalf("deload --check error = %v", err)
	}

	var assessment training.DeloadAssessment
	if err := json.Unmarshal([]byte(out), &assessment); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if !assessment.Eligible || assessment.Recent.TotalSessions != 4 {
		t.Errorf("assessment = %+v", assessment)
	}
	if mock.GetRequestCount() != 0 {
		t.Error("--check must not call the backend")
	}
}

func TestDeloadCommand_NotDue(t *testing.T) {
	isolateEnv(t)
	mock := openAIBackend(t, `{}`)

	lastDeload := time.Now().AddDate(0, 0, -10).Format(time.DateOnly)
	out, _, err := runCoach(t, "", "deload", "--workout", workoutFile(t), "--logs", sessionsFile(t, 7), "--last-deload", lastDeload)
	if err != nil {
		t.Fatalf("deload error = %v", err)
	}
	if !strings.Contains(out, "Deload due:") || !strings.Contains(out, "no") {
		t.Errorf("output:\n%s", out)
	}
	if mock.GetRequestCount() != 0 {
		t.Error("backend should not be called when no deload is due")
	}
}

func TestDeloadCommand_DueSendsReasons(t *testing.T) {
	isolateEnv(t)
	mock := openAIBackend(t, `{"deload_options":[{"type":"intensity","description":"70% loads"}]}`)

	lastDeload := time.Now().AddDate(0, 0, -40).Format(time.DateOnly)
	_, _, err := runCoach(t, "", "deload", "--workout", workoutFile(t), "--logs", sessionsFile(t, 7), "--last-deload", lastDeload)
	if err != nil {
		t.Fatalf("deload error = %v", err)
	}
	if !strings.Contains(string(mock.LastRequest().Body), "weeks since last deload") {
		t.Errorf("assessment reason was not sent: %s", mock.LastRequest().Body)
	}
}

func TestDeloadCommand_CheckNeedsLogs(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCoach(t, "", "deload", "--check")
	if cli.ExitCode(err) != cli.ExitConfigError {
		t.Errorf("error = %v, want config error", err)
	}
}

func TestAnalyzeCommand_SendsSummary(t *testing.T) {
	isolateEnv(t)
	mock := openAIBackend(t, `{"insights":["Long runs are consistent"],"recommendations":["Add strides"]}`)

	data := writeFile(t, "data.json", `{"period":"last 2 weeks","sessions":[
		{"date":"2025-05-01","completed":true,"duration_minutes":50,"rpe":6},
		{"date":"2025-05-03","completed":false}]}`)
	program := writeFile(t, "program.json", `{"id":"p1","user_id":"athlete-7","name":"Base","status":"active"}`)

	out, _, err := runCoach(t, "", "analyze", "--data", data, "--program", program)
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	if !strings.Contains(out, "Long runs are consistent") || !strings.Contains(out, "Add strides") {
		t.Errorf("output:\n%s", out)
	}

	// The prompt carries the locally computed aggregates.
	body := string(mock.LastRequest().Body)
	for _, want := range []string{training.SummaryCompletionRate, training.SummaryAverageRPE} {
		if !strings.Contains(body, want) {
			t.Errorf("request missing %q", want)
		}
	}
}

func TestOperation_MissingCredential(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCoach(t, "", "challenge", "--profile", profileFile(t))

	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *cli.ConfigError, got %v", err)
	}
	if cli.ExitCode(err) != cli.ExitConfigError {
		t.Errorf("ExitCode() = %d", cli.ExitCode(err))
	}
}

func TestOperation_UpstreamFailure(t *testing.T) {
	isolateEnv(t)
	mock := openAIBackend(t, "")
	mock.SetResponse("/v1/chat/completions", testhelpers.MockServerError())

	out, _, err := runCoach(t, "", "challenge", "--profile", profileFile(t))

	var cmdErr *cli.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Command != "challenge" {
		t.Fatalf("expected CommandError for challenge, got %v", err)
	}
	if providers.ErrorType(err) != "server_error" {
		t.Errorf("ErrorType() = %q, want server_error", providers.ErrorType(err))
	}
	if cli.ExitCode(err) != cli.ExitFailure {
		t.Errorf("ExitCode() = %d", cli.ExitCode(err))
	}
	if out != "" {
		t.Errorf("nothing should be printed on failure, got %q", out)
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("requests = %d, want exactly 1", mock.GetRequestCount())
	}
}

func TestOperation_FallbackToSecondary(t *testing.T) {
	isolateEnv(t)

	mock := testhelpers.NewMockServer()
	t.Cleanup(mock.Close)
	mock.SetResponse("/v1/chat/completions", testhelpers.MockServerError())
	mock.SetResponse("/v1/messages", testhelpers.MockResponse{
		StatusCode: http.StatusOK,
		Body:       testhelpers.MockAnthropicResponse(`{"name":"Hill repeats","type":"endurance"}`, "claude"),
	})
	t.Setenv("OPENAI_API_KEY", testAPIKey)
	t.Setenv("OPENAI_BASE_URL", mock.URL()+"/v1")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("ANTHROPIC_BASE_URL", mock.URL())

	metricsFile := filepath.Join(t.TempDir(), "coach.prom")
	out, _, err := runCoach(t, "", "challenge", "--profile", profileFile(t),
		"--fallback", "--secondary", "anthropic", "--metrics-file", metricsFile, "-o", "json")
	if err != nil {
		t.Fatalf("challenge error = %v", err)
	}
	if !strings.Contains(out, "Hill repeats") {
		t.Errorf("output:\n%s", out)
	}
	if mock.GetRequestCount() != 2 {
		t.Errorf("requests = %d, want 2", mock.GetRequestCount())
	}

	data, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatal(err)
	}
	want := `coach_ai_fallback_total{operation="generate_challenge",primary="openai",secondary="anthropic"} 1`
	if !strings.Contains(string(data), want) {
		t.Errorf("metrics missing %q:\n%s", want, data)
	}
}

func TestOperation_FallbackNotConfigured(t *testing.T) {
	isolateEnv(t)
	openAIBackend(t, `{}`)

	_, _, err := runCoach(t, "", "challenge", "--profile", profileFile(t), "--fallback")

	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "fallback_provider" {
		t.Errorf("expected fallback_provider config error, got %v", err)
	}
}

func TestOperation_BadInputs(t *testing.T) {
	isolateEnv(t)
	openAIBackend(t, `{}`)

	tests := []struct {
		name string
		args []string
	}{
		{"missing required flag", []string{"challenge"}},
		{"unreadable profile", []string{"challenge", "--profile", filepath.Join(t.TempDir(), "nope.json")}},
		{"unknown output format", []string{"challenge", "--profile", profileFile(t), "-o", "xml"}},
		{"unknown provider", []string{"challenge", "--profile", profileFile(t), "-p", "mistral"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCoach(t, "", tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPhaseCommand(t *testing.T) {
	isolateEnv(t)

	program := writeFile(t, "program.json", `{
		"name": "Half build",
		"created_at": "2025-03-03T08:00:00Z",
		"phases": [{"name":"base","weeks":4,"focus":"aerobic"},{"name":"build","weeks":3},{"name":"taper","weeks":1}]
	}`)

	out, _, err := runCoach(t, "", "phase", "--program", program, "--at", "2025-04-02", "-o", "json")
	if err != nil {
		t.Fatalf("phase error = %v", err)
	}

	var status training.PhaseStatus
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if status.Phase != "build" || status.WeekInPhase != 1 || status.ProgramWeek != 5 {
		t.Errorf("status = %+v", status)
	}

	text, _, err := runCoach(t, "", "phase", "--program", program, "--start", "2025-03-03", "--at", "2025-03-04")
	if err != nil {
		t.Fatalf("phase error = %v", err)
	}
	if !strings.Contains(text, "base") || !strings.Contains(text, "aerobic") {
		t.Errorf("output:\n%s", text)
	}
}

func TestPhaseCommand_NoPhases(t *testing.T) {
	isolateEnv(t)

	program := writeFile(t, "program.json", `{"name":"Flat","created_at":"2025-03-03T08:00:00Z"}`)
	if _, _, err := runCoach(t, "", "phase", "--program", program); err == nil {
		t.Error("expected an error for a program without phases")
	}
}

func TestProvidersCommand(t *testing.T) {
	isolateEnv(t)
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("AI_FALLBACK_PROVIDER", "ollama")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("OLLAMA_MODEL", "qwen2.5")

	out, _, err := runCoach(t, "", "providers", "-o", "json")
	if err != nil {
		t.Fatalf("providers error = %v", err)
	}

	var list []backendInfo
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(list) != 3 {
		t.Fatalf("got %d backends, want 3", len(list))
	}
	byName := map[string]backendInfo{}
	for _, b := range list {
		byName[b.Name] = b
	}
	if !byName["anthropic"].Default || byName["anthropic"].Credential != "set" {
		t.Errorf("anthropic = %+v", byName["anthropic"])
	}
	if !byName["ollama"].Fallback || byName["ollama"].Model != "qwen2.5" {
		t.Errorf("ollama = %+v", byName["ollama"])
	}
	if byName["openai"].Credential != "missing" || byName["openai"].Model == "" {
		t.Errorf("openai = %+v", byName["openai"])
	}

	text, _, err := runCoach(t, "", "providers")
	if err != nil {
		t.Fatalf("providers error = %v", err)
	}
	if !strings.Contains(text, "NAME") || !strings.Contains(text, "qwen2.5") {
		t.Errorf("output:\n%s", text)
	}
}

func TestProvidersCheck(t *testing.T) {
	isolateEnv(t)
	t.Setenv("OLLAMA_API_KEY", "ollama-token")

	out, _, err := runCoach(t, "", "providers", "check", "ollama")
	if err != nil {
		t.Fatalf("providers check error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("output:\n%s", out)
	}

	out, _, err = runCoach(t, "", "providers", "check", "-o", "json")
	if err == nil {
		t.Fatal("expected failure for backends without credentials")
	}

	var list []backendInfo
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	for _, b := range list {
		switch b.Name {
		case "ollama":
			if b.Status != "ok" {
				t.Errorf("ollama status = %q", b.Status)
			}
		case "openai":
			if !strings.Contains(b.Status, "OPENAI_API_KEY") {
				t.Errorf("openai status should name the missing credential: %q", b.Status)
			}
		}
	}
}

func TestConfigValidate(t *testing.T) {
	isolateEnv(t)

	good := writeFile(t, "coach.yaml", "ai:\n  provider: ollama\n  timeout: 30s\n")
	out, _, err := runCoach(t, "", "config", "validate", "--config", good)
	if err != nil {
		t.Fatalf("config validate error = %v", err)
	}
	if !strings.Contains(out, "configuration is valid") {
		t.Errorf("output = %q", out)
	}

	bad := writeFile(t, "bad.yaml", "ai:\n  provider: mistral\ntelemetry:\n  logging:\n    level: loud\n")
	_, _, err = runCoach(t, "", "config", "validate", "--config", bad)
	if cli.ExitCode(err) != cli.ExitConfigError {
		t.Fatalf("error = %v, want config error", err)
	}
	for _, want := range []string{"ai.provider", "telemetry.logging.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q: %v", want, err)
		}
	}
}

func TestConfigShow_MasksCredentials(t *testing.T) {
	isolateEnv(t)
	t.Setenv("OPENAI_API_KEY", testAPIKey)

	out, _, err := runCoach(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if strings.Contains(out, testAPIKey) {
		t.Error("API key leaked into output")
	}
	if !strings.Contains(out, "api_key: sk-t***") {
		t.Errorf("expected masked key in output:\n%s", out)
	}
	if !strings.Contains(out, "timeout: 1m0s") {
		t.Errorf("expected defaults in output:\n%s", out)
	}
}

func TestEnvFileFlag(t *testing.T) {
	isolateEnv(t)
	mock := testhelpers.NewMockServer()
	t.Cleanup(mock.Close)
	mock.SetResponse("/api/chat", testhelpers.MockResponse{
		StatusCode: http.StatusOK,
		Body:       testhelpers.MockOllamaResponse(`{"name":"Mobility month"}`, "llama3.1"),
	})

	// godotenv does not override variables that are already set, and
	// isolateEnv set these to empty; unset them so the file applies.
	for _, key := range []string{"AI_PROVIDER", "OLLAMA_API_KEY", "OLLAMA_BASE_URL"} {
		os.Unsetenv(key)
	}
	envFile := writeFile(t, "coach.env", "AI_PROVIDER=ollama\nOLLAMA_API_KEY=local-token\nOLLAMA_BASE_URL="+mock.URL()+"\n")

	out, _, err := runCoach(t, "", "challenge", "--profile", profileFile(t), "--env-file", envFile)
	if err != nil {
		t.Fatalf("challenge error = %v", err)
	}
	if !strings.Contains(out, "Mobility month") {
		t.Errorf("output:\n%s", out)
	}
	if err := testhelpers.ExpectHeader(mock.LastRequest(), "Authorization", "Bearer local-token"); err != nil {
		t.Error(err)
	}
}
