package buildinfo

import (
	"strings"
	"testing"
)

func TestGetKeepsLdflags(t *testing.T) {
	old := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = old[0], old[1], old[2] })

	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"
	i := Get()
	if i.Version != "v1.2.3" || i.Commit != "abc123" || i.Date != "2026-01-02T03:04:05Z" {
		t.Errorf("Get() = %+v, want ldflags values", i)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	for _, want := range []string{"{{.Name}}", "version: ", "commit: ", "built: "} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
}
