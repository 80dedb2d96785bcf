// Package pybuild orchestrates the CMake build of a key-value store's
// Python extension modules and the generation of their typing stubs.
//
// The store ships four independently buildable native modules: an
// in-memory transactional engine, bindings to the LevelDB and RocksDB
// embedded engines, and an Arrow Flight network client. Each module is
// configured and compiled through CMake; pybuild itself never compiles
// anything, it only drives the external toolchain and checks its exit
// status.
//
// # Pipeline
//
// A full run moves every extension through the same sequence:
//
//	Orchestrator
//	├── BuildContextFor  resolve flags + parallelism per extension
//	├── Invoker          cmake <sourcedir> <flags...>; cmake --build . --target py_<name>
//	└── StubCoordinator  run the stub generator once, write py.typed
//
// Extensions are processed strictly in declared order, one at a time.
// The only parallelism is CMake's own job count, derived once from the
// host CPU count and shared across all targets. The first nonzero exit
// status from any external process aborts the whole run; there is no
// partial-success continuation.
//
// # Basic Usage
//
// Resolve the configuration once at process start, then run:
//
//	cfg := pybuild.ResolveConfig(os.LookupEnv, runtime.GOOS, runtime.NumCPU())
//	cfg.BuildDir = "/tmp/build"
//	cfg.OutputDir = "/tmp/build/lib"
//
//	orch := pybuild.New(&cfg, pybuild.DefaultExtensions("/src/store"))
//	if err := orch.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// No component reads the environment directly; everything an
// invocation needs travels inside Config.
//
// # Debug Shortcut
//
// Setting PYBUILD_DEBUG routes every extension through a recursive copy
// of an already-compiled output tree instead of the CMake pipeline.
// Stub generation is skipped on that path. This exists for fast
// iteration against artifacts produced by an earlier full build.
//
// # Platform Support
//
// Linux and macOS are fully supported, including macOS cross builds via
// ARCHFLAGS. Windows support is limited to the .pyd artifact naming.
package pybuild
