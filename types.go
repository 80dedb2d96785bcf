package pybuild

import (
	"path/filepath"
	"strings"
)

// ExtensionDescriptor identifies one buildable native module.
//
// Name is a dot-separated logical identifier whose leading segment is
// the Python package the module lives in, e.g. "kv.umem" or
// "kv.flight_client". SourceDir is the absolute path of the CMake
// source tree the module is configured from. Descriptors are created
// once at process start and never mutated.
type ExtensionDescriptor struct {
	Name      string // Logical identifier, e.g. "kv.rocksdb"
	SourceDir string // Absolute path to the CMake source tree
}

// DefaultExtensions returns the store's standard extension set in build
// order. All four share the same CMake source tree.
func DefaultExtensions(sourceDir string) []ExtensionDescriptor {
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		abs = sourceDir
	}
	return []ExtensionDescriptor{
		{Name: "kv.umem", SourceDir: abs},
		{Name: "kv.rocksdb", SourceDir: abs},
		{Name: "kv.leveldb", SourceDir: abs},
		{Name: "kv.flight_client", SourceDir: abs},
	}
}

// TargetName derives the CMake build target from the logical name by
// replacing the leading package segment with the py_ prefix:
// "kv.umem" becomes "py_umem".
func (d ExtensionDescriptor) TargetName() string {
	if i := strings.Index(d.Name, "."); i >= 0 {
		return "py_" + d.Name[i+1:]
	}
	return "py_" + d.Name
}

// packageDir returns the module's package directory relative to the
// output root ("kv.umem" → "kv").
func (d ExtensionDescriptor) packageDir() string {
	parts := strings.Split(d.Name, ".")
	if len(parts) < 2 {
		return ""
	}
	return filepath.Join(parts[:len(parts)-1]...)
}

// ArtifactName returns the platform-specific filename of the compiled
// module ("kv.umem" → "umem.so", or "umem.pyd" on Windows).
func (d ExtensionDescriptor) ArtifactName(platform string) string {
	parts := strings.Split(d.Name, ".")
	base := parts[len(parts)-1]
	if platform == platformWindows {
		return base + ".pyd"
	}
	return base + ".so"
}

// BuildContext carries everything one CMake invocation pair needs.
//
// It is derived per extension by BuildContextFor, handed to the
// Invoker, and discarded afterwards; nothing persists it.
type BuildContext struct {
	// OutputDir is the absolute directory compiled artifacts are
	// written to. It always ends with a path separator; CMake's
	// artifact discovery for auxiliary native libraries requires the
	// trailing separator.
	OutputDir string

	// Flags is the ordered cmake configure argument list.
	Flags []string

	// Parallel is the -j job count for the build phase, or 0 when an
	// external parallel-level override is in effect and no -j flag
	// should be passed.
	Parallel int
}

// BuildMode states where stub generation finds the built package tree.
type BuildMode int

const (
	// ModeOutOfTree reads artifacts from Config.OutputDir, the normal
	// build output directory.
	ModeOutOfTree BuildMode = iota

	// ModeInPlace reads artifacts from Config.InPlaceDir, the
	// installed platform-library location of the package.
	ModeInPlace
)

// StubJob is the versioned document handed to the stub-generator
// subprocess as its single argument. The subprocess is a black box; the
// only contract is this schema plus its exit status.
type StubJob struct {
	Version     int            `yaml:"version"`
	OutputRoot  string         `yaml:"output_root"`
	Mapping     []MappingEntry `yaml:"mapping"`
	StubTargets []string       `yaml:"stub_targets"`
}

// MappingEntry maps one logical name (a wrapper package or an
// extension) to the absolute path of its initializer or compiled
// artifact. Entries keep insertion order: wrapper packages first, then
// extensions in descriptor order.
type MappingEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// stubJobVersion is the current StubJob schema version.
const stubJobVersion = 1
