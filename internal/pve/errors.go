package pve

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ErrNotFound indicates that a requested resource does not exist in the
// hypervisor registry.
var ErrNotFound = errors.New("resource not found")

// ExitError reports a management command that exited with a non-zero
// status. The original status code is preserved so callers can propagate
// it as the process exit code.
type ExitError struct {
	Cmd    string
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Cmd, e.Code)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// ExitCode extracts the command exit status from err, or -1 if err does
// not carry one.
func ExitCode(err error) int {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return -1
}

// IsNotRunning checks if an error indicates the container was not running.
// Stopping an already-stopped container is harmless during teardown.
func IsNotRunning(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "not running")
}

// isMissingGuest checks if command output indicates the VMID has no
// configuration in the registry.
func isMissingGuest(output string) bool {
	return strings.Contains(output, "does not exist") ||
		strings.Contains(output, "no such")
}

func asExitError(err error, target **ExitError) bool {
	return errors.As(err, target)
}

func isExitError(err error, target **exec.ExitError) bool {
	return errors.As(err, target)
}

func isSSHExitError(err error, target **ssh.ExitError) bool {
	return errors.As(err, target)
}
