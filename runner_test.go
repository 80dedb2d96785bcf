package pybuild

import (
	"context"
	"fmt"
)

// invocation records one external-process call made through the fake
// runner.
type invocation struct {
	dir  string
	name string
	args []string
}

// fakeRunner stands in for the exec-backed Runner so the pipeline can
// be observed without a CMake toolchain installed.
type fakeRunner struct {
	runs    []invocation
	failRun int // 1-based index of the Run call that fails, 0 = never

	captures      []invocation
	captureStdout string
	captureStderr string
	captureExit   int
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.runs = append(f.runs, invocation{dir: dir, name: name, args: args})
	if f.failRun != 0 && len(f.runs) == f.failRun {
		return []byte("CMake Error: something went wrong"), fmt.Errorf("exit status 2")
	}
	return nil, nil
}

func (f *fakeRunner) Capture(name string, args ...string) (string, string, int, error) {
	f.captures = append(f.captures, invocation{name: name, args: args})
	var err error
	if f.captureExit != 0 {
		err = fmt.Errorf("exit status %d", f.captureExit)
	}
	return f.captureStdout, f.captureStderr, f.captureExit, err
}
