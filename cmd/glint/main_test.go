package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/glint"
	"github.com/zoobzio/glint/dom"
	"github.com/zoobzio/glint/pkg/redis"
)

const signupPage = `<!DOCTYPE html>
<html><body>
<div class="container">
  <div class="points-display">Points available: 13</div>
  <div class="competition-card"><span class="competition-status status-open">open</span></div>
  <form>
    <div class="form-group"><input class="form-control" type="email" name="email" required></div>
    <div class="form-group"><input class="form-control" type="number" id="places" min="1" max="12"></div>
    <div class="form-group"><input class="form-control" type="text" name="club"></div>
    <button class="btn" type="submit">Book</button>
  </form>
</div>
</body></html>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"email=a@b.co", "note=x=y", "empty="})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{"email": "a@b.co", "note": "x=y", "empty": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("assignments mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"email", "=value"} {
		if _, err := parseAssignments([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestCheckPage(t *testing.T) {
	doc, err := dom.ParseString(signupPage)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	page := glint.NewPage(doc)
	defer page.Close()

	results, err := checkPage(page, doc, map[string]string{
		"email":  "not-an-email",
		"places": "4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []checkResult{
		{Name: "email", Kind: glint.KindEmail, Value: "not-an-email", Verdict: glint.Invalid},
		{Name: "places", Kind: glint.KindNumber, Value: "4", Verdict: glint.Valid},
		{Name: "club", Kind: glint.KindText, Value: "", Verdict: glint.Neutral},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	group := doc.Query(".form-group")
	if !group.HasClass(glint.ClassInvalid) {
		t.Error("expected invalid email container to be marked")
	}
}

func TestCheckPage_UnknownControl(t *testing.T) {
	doc, err := dom.ParseString(signupPage)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	page := glint.NewPage(doc)
	defer page.Close()

	if _, err := checkPage(page, doc, map[string]string{"phone": "1"}); err == nil {
		t.Error("expected error for unmatched control")
	}
}

func TestRunCheck(t *testing.T) {
	pagePath := writeFile(t, "page.html", signupPage)

	tests := []struct {
		name    string
		set     []string
		wantErr error
	}{
		{
			name: "all valid",
			set:  []string{"email=club@example.com", "places=2"},
		},
		{
			name:    "required email missing",
			set:     nil,
			wantErr: errInvalidFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValues = tt.set
			t.Cleanup(func() { checkValues = nil })

			var out bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&out)

			err := runCheck(cmd, []string{pagePath})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if !strings.HasPrefix(out.String(), "FIELD") {
				t.Errorf("expected header row, got:\n%s", out.String())
			}
			if !strings.Contains(out.String(), "email") {
				t.Errorf("expected email row, got:\n%s", out.String())
			}
			if tt.wantErr == nil && strings.Contains(out.String(), "invalid") {
				t.Errorf("unexpected invalid row:\n%s", out.String())
			}
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := writeFile(t, "session.yaml", `
viewport: 640
steps:
  - action: input
    target: "input[name=email]"
    value: club@example.com
  - action: wait
    wait_ms: 300
`)
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}
	want := Scenario{
		Viewport: 640,
		Steps: []Step{
			{Action: "input", Target: "input[name=email]", Value: "club@example.com"},
			{Action: "wait", WaitMS: 300},
		},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("scenario mismatch (-want +got):\n%s", diff)
	}

	jsonPath := writeFile(t, "session.json", `{"steps":[{"action":"points","points":4}]}`)
	s, err = LoadScenario(jsonPath)
	if err != nil {
		t.Fatalf("LoadScenario(json) failed: %v", err)
	}
	if len(s.Steps) != 1 || s.Steps[0].Points != 4 {
		t.Errorf("unexpected json scenario: %+v", s)
	}
}

func TestScenarioRun(t *testing.T) {
	doc, err := dom.ParseString(signupPage)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	clock := clockz.NewFakeClock()
	page := glint.NewPage(doc, glint.WithClock(clock))
	defer page.Close()
	if err := page.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	s := Scenario{Steps: []Step{
		{Action: actionInput, Target: "input[name=email]", Value: "club@example.com"},
		{Action: actionNotify, Kind: "error", Message: "Not enough points"},
		{Action: actionPoints, Points: 4},
		{Action: actionStatus, Target: ".competition-card", Status: "closed"},
		{Action: actionProgress, Percent: 40},
		{Action: actionWait, WaitMS: 400},
	}}
	if err := s.Run(page, doc, clock); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !doc.Query(".form-group").HasClass(glint.ClassValid) {
		t.Error("expected email container to be valid")
	}
	if got := doc.Query(".points-display").Text(); got != "Points available: 4" {
		t.Errorf("points text = %q", got)
	}
	if got := doc.Query(".competition-status").ClassName(); got != "competition-status status-closed" {
		t.Errorf("status class = %q", got)
	}
	if doc.Query(".alert-error") == nil {
		t.Error("expected error notice to still be shown at 400ms")
	}
}

func TestScenarioRun_Errors(t *testing.T) {
	doc, err := dom.ParseString(signupPage)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	clock := clockz.NewFakeClock()
	page := glint.NewPage(doc, glint.WithClock(clock))
	defer page.Close()

	tests := []Step{
		{Action: "teleport"},
		{Action: actionClick},
		{Action: actionClick, Target: ".missing"},
		{Action: actionNotify, Kind: "warning"},
	}
	for _, st := range tests {
		if err := (Scenario{Steps: []Step{st}}).Run(page, doc, clock); err == nil {
			t.Errorf("expected error for step %+v", st)
		}
	}
}

func TestRender(t *testing.T) {
	pagePath := writeFile(t, "page.html", signupPage)
	scenarioPath := writeFile(t, "session.yaml", `
steps:
  - action: notify
    message: Great-booking complete!
  - action: wait
    wait_ms: 3000
`)

	out, err := render(context.Background(), pagePath, scenarioPath, glint.DefaultConfig())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, `data-notice-id="notice-1"`) {
		t.Errorf("expected sequential notice id in output:\n%s", out)
	}
	if !strings.Contains(out, "zoom-out") {
		t.Errorf("expected notice to be dismissing at 3000ms:\n%s", out)
	}

	cfg := glint.DefaultConfig()
	cfg.SuccessDelayMS = 100
	out, err = render(context.Background(), pagePath, scenarioPath, cfg)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(out, "Great-booking complete!") {
		t.Errorf("expected notice removed with a short delay:\n%s", out)
	}
}

func TestRunSimulate_WatchNeedsConfig(t *testing.T) {
	simulateWatch = true
	t.Cleanup(func() { simulateWatch = false })

	err := runSimulate(&cobra.Command{}, []string{"page.html", "session.yaml"})
	if err == nil || !strings.Contains(err.Error(), "--config") {
		t.Errorf("expected --config error, got %v", err)
	}
}

func TestRunSimulate_Out(t *testing.T) {
	pagePath := writeFile(t, "page.html", signupPage)
	scenarioPath := writeFile(t, "session.yaml", "steps:\n  - action: hide-progress\n")
	outPath := filepath.Join(t.TempDir(), "out.html")

	simulateOut = outPath
	t.Cleanup(func() { simulateOut = "" })

	if err := runSimulate(&cobra.Command{}, []string{pagePath, scenarioPath}); err != nil {
		t.Fatalf("runSimulate failed: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "points-display") {
		t.Errorf("unexpected output:\n%s", data)
	}
}

func TestWatchSource(t *testing.T) {
	t.Cleanup(func() {
		redisAddr, redisKey, configPath = "", "glint:config", ""
	})

	configPath = "page.json"
	src, name, err := watchSource()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*glint.FileSource); !ok || name != "page.json" {
		t.Errorf("expected file source for page.json, got %T %q", src, name)
	}

	redisAddr, redisKey = "localhost:6379", "pages/booking.yaml"
	src, name, err = watchSource()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*redis.Source); !ok || name != "pages/booking.yaml" {
		t.Errorf("expected redis source, got %T %q", src, name)
	}
}
