package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	s := String()
	if !strings.Contains(s, "version: v1.2.3") {
		t.Errorf("String() = %q, missing version", s)
	}
	if !strings.Contains(s, "commit: "+Commit) {
		t.Errorf("String() = %q, missing commit", s)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
}
