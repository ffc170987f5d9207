package list

import (
	"bytes"
	"strings"
	"testing"
)

func TestListPrintsSortedNames(t *testing.T) {
	cmd := NewCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 12 || lines[0] != "cssmin" || lines[len(lines)-1] != "yaml" {
		t.Fatalf("unexpected listing: %q", out.String())
	}
}

func TestListJSON(t *testing.T) {
	cmd := NewCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), `["cssmin","dataurl",`) {
		t.Fatalf("unexpected json: %q", out.String())
	}
}
