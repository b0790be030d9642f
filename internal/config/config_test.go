package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults_MatchDocumentedValues(t *testing.T) {
	s := Defaults()

	if s.Temperature.IntervalSeconds != 5 {
		t.Fatalf("temperature interval: got %d, want 5", s.Temperature.IntervalSeconds)
	}
	if s.Bed.Low != 30 || s.Bed.TargetHoldMinutes != 10 {
		t.Fatalf("bed defaults: got %+v", s.Bed)
	}
	if s.Thermal.RunawayThreshold != 10 || s.Thermal.CooldownSeconds != 14 || s.Thermal.WarmupHotendSeconds != 39 {
		t.Fatalf("thermal defaults: got %+v", s.Thermal)
	}
	if s.Progress.Type != "50" {
		t.Fatalf("progress type: got %q, want 50", s.Progress.Type)
	}
	if s.Push.Timeout.Std() != 10*time.Second {
		t.Fatalf("push timeout: got %v, want 10s", s.Push.Timeout)
	}
	if s.Camera.SnapshotURL == "" {
		t.Fatalf("expected default snapshot url")
	}
}

func TestLoader_ReadsFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := []byte("bed:\n  low: 42\nprogress:\n  type: \"10\"\ncamera:\n  timeout: 2s\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PRINTNOTIFY_THERMAL_RUNAWAY_THRESHOLD", "0")

	s, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Bed.Low != 42 {
		t.Fatalf("bed.low: got %v, want 42", s.Bed.Low)
	}
	if s.Progress.Type != "10" {
		t.Fatalf("progress.type: got %q, want 10", s.Progress.Type)
	}
	if s.Camera.Timeout.Std() != 2*time.Second {
		t.Fatalf("camera.timeout: got %v, want 2s", s.Camera.Timeout)
	}
	if s.Thermal.RunawayThreshold != 0 {
		t.Fatalf("env override not applied: %v", s.Thermal.RunawayThreshold)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Settings)
		want error
	}{
		{"negative bed low", func(s *Settings) { s.Bed.Low = -1 }, ErrInvalidThreshold},
		{"unknown progress mode", func(s *Settings) { s.Progress.Type = "33" }, ErrUnknownProgressMode},
		{"milestone at 100", func(s *Settings) { s.Progress.Milestones = []int{50, 100} }, ErrUnknownProgressMode},
		{"bad sound", func(s *Settings) { s.Push.Sound = "loud" }, ErrInvalidSound},
		{"zero queue", func(s *Settings) { s.Alerts.QueueSize = 0 }, ErrInvalidThreshold},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Defaults()
			tc.mut(&s)
			err := s.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParseProgressPolicy(t *testing.T) {
	cases := []struct {
		mode string
		want ProgressPolicy
	}{
		{"0", ProgressPolicy{Mode: ProgressDisabled}},
		{"100", ProgressPolicy{Mode: ProgressCompletionOnly}},
		{"25", ProgressPolicy{Mode: ProgressMilestones, Milestones: []int{25, 50, 75}}},
		{"50", ProgressPolicy{Mode: ProgressMilestones, Milestones: []int{50}}},
		{"10", ProgressPolicy{Mode: ProgressEveryStep, Step: 10}},
		{" 5 ", ProgressPolicy{Mode: ProgressEveryStep, Step: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.mode, func(t *testing.T) {
			got, err := ParseProgressPolicy(tc.mode, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Mode != tc.want.Mode || got.Step != tc.want.Step || len(got.Milestones) != len(tc.want.Milestones) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestStore_UpdateValidatesAndNotifies(t *testing.T) {
	st := NewStore(Defaults())

	var seen []Settings
	st.Subscribe(func(s Settings) { seen = append(seen, s) })

	if err := st.Update(func(s *Settings) { s.Bed.Low = 45 }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := st.Get().Bed.Low; got != 45 {
		t.Fatalf("bed.low: got %v, want 45", got)
	}
	if len(seen) != 1 || seen[0].Bed.Low != 45 {
		t.Fatalf("listener not called with new settings: %+v", seen)
	}

	err := st.Update(func(s *Settings) { s.Bed.Low = -5 })
	if !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
	if got := st.Get().Bed.Low; got != 45 {
		t.Fatalf("invalid update leaked: got %v", got)
	}
	if len(seen) != 1 {
		t.Fatalf("listener called for rejected update")
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := Defaults()
	s.Webhook.URLs = []string{"generic://example"}
	st := NewStore(s)

	got := st.Get()
	got.Webhook.URLs[0] = "mutated"
	if st.Get().Webhook.URLs[0] != "generic://example" {
		t.Fatalf("store shares slice with caller")
	}
}

func TestDuration_JSON(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{`"1m30s"`, 90 * time.Second, false},
		{`5`, 5 * time.Second, false},
		{`"soon"`, 0, true},
		{`true`, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tc.in), &d)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tc.wantErr)
			}
			if d.Std() != tc.want {
				t.Fatalf("got %v, want %v", d.Std(), tc.want)
			}
		})
	}

	out, err := json.Marshal(Duration(10 * time.Second))
	if err != nil || string(out) != `"10s"` {
		t.Fatalf("marshal: got %s, %v", out, err)
	}
}
