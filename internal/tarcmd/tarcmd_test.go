package tarcmd

import (
	"errors"
	"testing"
)

func TestEngineError_Message(t *testing.T) {
	err := &EngineError{Mode: "create", Archive: "data.tar.gz", ExitCode: 2}
	want := "tar create data.tar.gz: exit status 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestEngineError_AsTarget(t *testing.T) {
	var wrapped error = &EngineError{Mode: "extract", Archive: "a.tar.gz", ExitCode: 1}
	var ee *EngineError
	if !errors.As(wrapped, &ee) {
		t.Fatal("errors.As failed")
	}
	if ee.ExitCode != 1 || ee.Mode != "extract" {
		t.Errorf("unexpected fields: %+v", ee)
	}
}
