package pybuild

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/magefile/mage/sh"
)

// Runner executes external processes. The Invoker and StubCoordinator
// go through this interface so the full pipeline is observable in tests
// without a CMake toolchain installed.
//
// Run executes name in dir and returns combined stdout/stderr. Capture
// executes name with a copy of the current environment and returns the
// two streams separately plus the process exit code.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
	Capture(name string, args ...string) (stdout, stderr string, exit int, err error)
}

// execRunner is the real exec-backed Runner. All waiting is blocking
// process-wait; a hung external process hangs the run.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

func (execRunner) Capture(name string, args ...string) (string, string, int, error) {
	var stdout, stderr bytes.Buffer
	_, err := sh.Exec(nil, &stdout, &stderr, name, args...)
	return stdout.String(), stderr.String(), sh.ExitStatus(err), err
}
