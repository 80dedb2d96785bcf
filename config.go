package pybuild

import (
	"io"
	"os"
)

// Environment variables consumed by ResolveConfig. No other code in
// this package reads the environment.
const (
	// EnvDebug, when set to any value, routes the whole run through
	// the prebuilt-tree copy instead of the CMake pipeline.
	EnvDebug = "PYBUILD_DEBUG"

	// EnvExtraArgs carries extra configure flags as one
	// whitespace-separated string, appended verbatim after the base
	// flag list. Needed e.g. to cross-build for ARM macOS on
	// conda-forge style builders.
	EnvExtraArgs = "CMAKE_ARGS"

	// EnvExtraArgsFile names a file whose contents are treated like
	// EnvExtraArgs. Ignored whenever EnvExtraArgs itself is set.
	EnvExtraArgsFile = "CMAKE_ARGS_F"

	// EnvArchFlags is the macOS architecture selection string in
	// "-arch arm64 -arch x86_64" syntax. Only consulted on Darwin.
	EnvArchFlags = "ARCHFLAGS"

	// EnvParallelLevel is CMake's own parallel-level override. When
	// present the build phase gets no -j argument; the external build
	// system governs its own job count.
	EnvParallelLevel = "CMAKE_BUILD_PARALLEL_LEVEL"
)

const (
	platformDarwin  = "darwin"
	platformWindows = "windows"

	cmakeProgram = "cmake"
)

// Config is the one place environment and platform signals are turned
// into explicit state. ResolveConfig fills the environment-derived
// fields; callers fill the wiring fields before handing the Config to
// New. Components receive the Config and never consult the environment
// themselves.
type Config struct {
	// Environment-derived (see ResolveConfig).
	Debug        bool   // EnvDebug present
	ExtraArgs    string // raw EnvExtraArgs value
	ExtraArgsSet bool   // EnvExtraArgs present, even when empty
	ArgsFile     string // EnvExtraArgsFile value
	ArgsFileSet  bool   // EnvExtraArgsFile present, even when empty
	ArchFlags    string // EnvArchFlags value
	Parallel     int    // -j level; 0 when EnvParallelLevel is set
	Platform     string // GOOS-style platform identifier

	// Wiring.
	BuildDir    string    // working directory for cmake invocations
	OutputDir   string    // root of the build output tree
	Mode        BuildMode // where the stub coordinator finds the package tree
	InPlaceDir  string    // installed platlib path, used by ModeInPlace
	PythonExe   string    // interpreter handed to CMake and stub targets
	StubGen     string    // stub-generator executable
	PrebuiltDir string    // prebuilt tree copied by the debug shortcut

	// WrapperPackages are the pure-Python wrapper packages whose
	// __init__.py files must exist before stub generation. RootPackage
	// is the package the py.typed marker is written into.
	WrapperPackages []string
	RootPackage     string

	// Runner executes external processes. Nil means the real
	// exec-backed runner.
	Runner Runner

	// Diagnostics sinks. Nil means os.Stdout / os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// ResolveConfig reads the process environment exactly once and returns
// the environment-derived portion of a Config. lookup is normally
// os.LookupEnv; platform is normally runtime.GOOS; ncpu is normally
// runtime.NumCPU().
//
// The default build parallelism is half the CPU count, clamped to at
// least one. When the external parallel-level override is present the
// parallelism is recorded as absent and CMake governs its own jobs.
func ResolveConfig(lookup func(string) (string, bool), platform string, ncpu int) Config {
	cfg := Config{Platform: platform}

	if _, ok := lookup(EnvDebug); ok {
		cfg.Debug = true
	}
	// Presence decides precedence between the two flag sources, not
	// emptiness: a present-but-empty EnvExtraArgs still suppresses the
	// file source.
	if v, ok := lookup(EnvExtraArgs); ok {
		cfg.ExtraArgs = v
		cfg.ExtraArgsSet = true
	}
	if v, ok := lookup(EnvExtraArgsFile); ok {
		cfg.ArgsFile = v
		cfg.ArgsFileSet = true
	}
	if platform == platformDarwin {
		if v, ok := lookup(EnvArchFlags); ok {
			cfg.ArchFlags = v
		}
	}

	if _, ok := lookup(EnvParallelLevel); !ok {
		cfg.Parallel = ncpu / 2
		if cfg.Parallel < 1 {
			cfg.Parallel = 1
		}
	}

	return cfg
}

// normalize fills zero-valued optional fields with their defaults.
func (cfg *Config) normalize() {
	if cfg.Runner == nil {
		cfg.Runner = execRunner{}
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.RootPackage == "" {
		cfg.RootPackage = "kv"
	}
	if cfg.WrapperPackages == nil {
		cfg.WrapperPackages = []string{"kv", "kv.networkx", "kv.pandas"}
	}
}
