package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version "+Version+"\n") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.HasSuffix(got, "built: "+Date+"\n") {
		t.Errorf("Template() = %q, want trailing build date", got)
	}
}

func TestString(t *testing.T) {
	want := "version: " + Version + "\ncommit: " + Commit + "\nbuilt: " + Date
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
