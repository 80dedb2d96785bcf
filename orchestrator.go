package pybuild

import "context"

// Orchestrator drives the whole extension set through the pipeline.
//
// Extensions are processed strictly in their declared order, one at a
// time: resolve a BuildContext, run configure, run build-target. Only
// after every extension built does the StubCoordinator run, exactly
// once for the batch. When the debug shortcut is active every
// extension is routed through the prebuilt-tree copy instead and stub
// generation is skipped; the two paths are mutually exclusive for a
// run, decided once up front.
//
// The first fatal error from any phase aborts the run. There is no
// retry and no partial-success continuation to later extensions.
type Orchestrator struct {
	cfg        *Config
	extensions []ExtensionDescriptor
}

// New prepares an Orchestrator over the given extension set. Optional
// Config fields (runner, diagnostics sinks, wrapper packages) are
// defaulted here.
func New(cfg *Config, extensions []ExtensionDescriptor) *Orchestrator {
	cfg.normalize()
	return &Orchestrator{cfg: cfg, extensions: extensions}
}

// Run executes the pipeline for every extension.
func (o *Orchestrator) Run(ctx context.Context) error {
	if o.cfg.Debug {
		for _, desc := range o.extensions {
			if err := copyPrebuilt(o.cfg, desc); err != nil {
				return err
			}
		}
		return nil
	}

	inv := &Invoker{cfg: o.cfg, runner: o.cfg.Runner}
	for _, desc := range o.extensions {
		bctx, err := BuildContextFor(desc, o.cfg)
		if err != nil {
			return err
		}
		if err := inv.Build(ctx, desc, bctx); err != nil {
			return err
		}
	}

	stubs := &StubCoordinator{cfg: o.cfg, runner: o.cfg.Runner}
	return stubs.Generate(o.extensions)
}

// RequiredTools lists the external tools a full (non-debug) run needs.
// Callers can preflight these with CheckRequiredTools to fail fast
// before the first configure.
func (o *Orchestrator) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{Name: cmakeProgram, Purpose: "CMake build system"},
		{Name: o.cfg.StubGen, Purpose: "interface stub generator"},
	}
}
