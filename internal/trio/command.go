package trio

import (
	"fmt"
	"os/exec"
	"strings"
)

// runCommand executes text as a host shell command, blocking until it
// completes, and returns captured stdout with one trailing newline trimmed.
// Commands run with the interpreter's own privileges; the calling dialect is
// the only gate on what reaches this primitive.
func runCommand(text string) (Value, error) {
	cmd := exec.Command("sh", "-c", text)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return Unit, &TrioError{
				Kind:    ExternalCommandError,
				Message: fmt.Sprintf("command exited with status %d", exitErr.ExitCode()),
				Help:    strings.TrimSpace(string(exitErr.Stderr)),
			}
		}
		return Unit, &TrioError{
			Kind:    ExternalCommandError,
			Message: fmt.Sprintf("failed to start command: %v", err),
		}
	}
	return StrVal(strings.TrimSuffix(string(out), "\n")), nil
}
