package update

import (
	"context"
	"testing"
)

func TestNewer(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"0.1.0", "0.2.0", true},
		{"v0.1.0", "0.1.1", true},
		{"1.0.0", "1.0.0", false},
		{"1.2.0", "1.1.9", false},
		{"dev", "0.1.0", true},
		{"", "0.1.0", true},
		{"1.0.0", "not-a-version", false},
	}
	for _, tt := range tests {
		if got := Newer(tt.current, tt.latest); got != tt.want {
			t.Errorf("Newer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
		}
	}
}

func TestCheckDevVersion(t *testing.T) {
	// Needs network; skipped when GitHub is unreachable.
	res, err := Check(context.Background(), "dev")
	if err != nil {
		t.Skipf("skipping (likely no network): %v", err)
	}
	if res == nil {
		t.Fatal("expected non-nil result")
	}
	if res.CurrentVersion != "dev" {
		t.Errorf("CurrentVersion = %q, want dev", res.CurrentVersion)
	}
	if res.LatestVersion != "" && !res.UpdateAvailable {
		t.Error("a dev build should always see a release as newer")
	}
}
