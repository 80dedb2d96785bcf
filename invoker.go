package pybuild

import (
	"context"
	"fmt"
	"strings"
)

// Invoker drives the two CMake phases for one extension: configure,
// then build-one-target. Both phases run in Config.BuildDir and are
// exit-status-checked; a nonzero exit from either is fatal for the
// whole run. Output is captured in full and echoed to the diagnostics
// sink, and on failure embedded in the returned error together with
// the exact command line so the invocation can be reproduced by hand.
type Invoker struct {
	cfg    *Config
	runner Runner
}

// Build runs configure then build-target for one extension.
func (inv *Invoker) Build(ctx context.Context, desc ExtensionDescriptor, bctx BuildContext) error {
	confArgs := append([]string{desc.SourceDir}, bctx.Flags...)
	if err := inv.invoke(ctx, "configure "+desc.Name, confArgs); err != nil {
		return err
	}

	buildArgs := []string{"--build", ".", "--target", desc.TargetName()}
	if bctx.Parallel > 0 {
		buildArgs = append(buildArgs, fmt.Sprintf("-j%d", bctx.Parallel))
	}
	return inv.invoke(ctx, "build "+desc.Name, buildArgs)
}

func (inv *Invoker) invoke(ctx context.Context, phase string, args []string) error {
	fmt.Fprintf(inv.cfg.Stderr, "pybuild: %s %s\n", cmakeProgram, strings.Join(args, " "))

	out, err := inv.runner.Run(ctx, inv.cfg.BuildDir, cmakeProgram, args...)
	if len(out) > 0 {
		inv.cfg.Stderr.Write(out)
	}
	if err != nil {
		return invokeError(phase, append([]string{cmakeProgram}, args...), out, err)
	}
	return nil
}
