package pybuild

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func testInvoker(runner *fakeRunner) *Invoker {
	return &Invoker{
		cfg: &Config{
			BuildDir: "/tmp/build",
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
		},
		runner: runner,
	}
}

func TestTwoPhaseInvocation(t *testing.T) {
	runner := &fakeRunner{}
	inv := testInvoker(runner)

	desc := ExtensionDescriptor{Name: "kv.umem", SourceDir: "/src/store"}
	bctx := BuildContext{
		OutputDir: "/tmp/out/kv/",
		Flags:     []string{"-DKV_BUILD_SDK_PYTHON=1"},
		Parallel:  4,
	}

	if err := inv.Build(context.Background(), desc, bctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.runs) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(runner.runs))
	}

	configure := runner.runs[0]
	if configure.name != "cmake" || configure.dir != "/tmp/build" {
		t.Errorf("configure: expected cmake in /tmp/build, got %s in %s", configure.name, configure.dir)
	}
	if configure.args[0] != "/src/store" {
		t.Errorf("configure: expected source dir first, got %v", configure.args)
	}
	if configure.args[1] != "-DKV_BUILD_SDK_PYTHON=1" {
		t.Errorf("configure: expected resolved flags after source dir, got %v", configure.args)
	}

	build := runner.runs[1]
	expected := []string{"--build", ".", "--target", "py_umem", "-j4"}
	if strings.Join(build.args, " ") != strings.Join(expected, " ") {
		t.Errorf("build: expected %v, got %v", expected, build.args)
	}
}

func TestNoJobsFlagWhenParallelAbsent(t *testing.T) {
	runner := &fakeRunner{}
	inv := testInvoker(runner)

	desc := ExtensionDescriptor{Name: "kv.leveldb", SourceDir: "/src/store"}
	if err := inv.Build(context.Background(), desc, BuildContext{Parallel: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, arg := range runner.runs[1].args {
		if strings.HasPrefix(arg, "-j") {
			t.Errorf("build phase must not carry -j when parallelism is absent: %v", runner.runs[1].args)
		}
	}
}

func TestConfigureFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{failRun: 1}
	inv := testInvoker(runner)

	desc := ExtensionDescriptor{Name: "kv.umem", SourceDir: "/src/store"}
	err := inv.Build(context.Background(), desc, BuildContext{})
	if err == nil {
		t.Fatal("expected configure failure to surface")
	}
	if len(runner.runs) != 1 {
		t.Errorf("build phase must not run after a failed configure, got %d invocations", len(runner.runs))
	}
	if !strings.Contains(err.Error(), "cmake /src/store") {
		t.Errorf("error should carry the exact command line, got: %v", err)
	}
	if !strings.Contains(err.Error(), "CMake Error") {
		t.Errorf("error should carry the captured output, got: %v", err)
	}
}

func TestBuildPhaseFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{failRun: 2}
	inv := testInvoker(runner)

	desc := ExtensionDescriptor{Name: "kv.umem", SourceDir: "/src/store"}
	err := inv.Build(context.Background(), desc, BuildContext{})
	if err == nil {
		t.Fatal("expected build failure to surface")
	}
	if !strings.Contains(err.Error(), "py_umem") {
		t.Errorf("error should name the failed target, got: %v", err)
	}
}
