package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestExecuteReportsErrorsOnStderr(t *testing.T) {
	// An unopenable video must abort with a message, not a bare exit code.
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"no-such-game.mp4", "--template", "no-such-template.png", "--quiet"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected an error for a missing video file")
	}
	if rootCmd.SilenceErrors {
		t.Fatal("command must let cobra print execution errors")
	}
	got := errOut.String()
	if !strings.Contains(got, "Error:") {
		t.Errorf("stderr output %q should carry the error prefix", got)
	}
	if !strings.Contains(got, err.Error()) {
		t.Errorf("stderr output %q should describe the failure %q", got, err.Error())
	}
}
