package pybuild

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Feature toggles passed to every configure invocation. The store's
// CMake tree uses these to select which engines and API surfaces are
// compiled into the bindings.
const (
	flagEngineUMem      = "-DKV_BUILD_ENGINE_UMEM=1"
	flagEngineLevelDB   = "-DKV_BUILD_ENGINE_LEVELDB=1"
	flagEngineRocksDB   = "-DKV_BUILD_ENGINE_ROCKSDB=1"
	flagAPIFlightClient = "-DKV_BUILD_API_FLIGHT_CLIENT=1"
	flagSDKPython       = "-DKV_BUILD_SDK_PYTHON=1"
)

var archPattern = regexp.MustCompile(`-arch (\S+)`)

// BuildContextFor resolves one extension's CMake configuration from the
// descriptor and the already-resolved Config. It is deterministic: the
// only I/O is reading the extra-args file, and only when that variable
// was set.
//
// Flag order is stable: output-directory overrides, interpreter,
// feature toggles, extra args, then the Darwin architecture flag.
// The two extra-args sources are mutually exclusive: a present raw
// variable wins, even when empty, and the file is not consulted. An
// unreadable args file is fatal.
func BuildContextFor(desc ExtensionDescriptor, cfg *Config) (BuildContext, error) {
	outDir, err := filepath.Abs(filepath.Join(cfg.OutputDir, desc.packageDir()))
	if err != nil {
		return BuildContext{}, fmt.Errorf("resolving output directory for %s: %w", desc.Name, err)
	}
	// CMake's discovery of auxiliary native libraries requires the
	// trailing separator.
	if !strings.HasSuffix(outDir, string(os.PathSeparator)) {
		outDir += string(os.PathSeparator)
	}

	flags := []string{
		"-DCMAKE_LIBRARY_OUTPUT_DIRECTORY=" + outDir,
		"-DCMAKE_ARCHIVE_OUTPUT_DIRECTORY=" + outDir,
		"-DPYTHON_EXECUTABLE=" + cfg.PythonExe,
		flagEngineUMem,
		flagEngineLevelDB,
		flagEngineRocksDB,
		flagAPIFlightClient,
		flagSDKPython,
	}

	switch {
	case cfg.ExtraArgsSet:
		flags = append(flags, splitTokens(cfg.ExtraArgs)...)
	case cfg.ArgsFileSet:
		data, err := os.ReadFile(cfg.ArgsFile)
		if err != nil {
			return BuildContext{}, fmt.Errorf("reading %s: %w", EnvExtraArgsFile, err)
		}
		flags = append(flags, splitTokens(string(data))...)
	}

	if cfg.Platform == platformDarwin {
		if archs := darwinArchitectures(cfg.ArchFlags); len(archs) > 0 {
			flags = append(flags, "-DCMAKE_OSX_ARCHITECTURES="+strings.Join(archs, ";"))
		}
	}

	return BuildContext{OutputDir: outDir, Flags: flags, Parallel: cfg.Parallel}, nil
}

// darwinArchitectures extracts the architecture names from an
// ARCHFLAGS-style string ("-arch arm64 -arch x86_64" → arm64, x86_64).
// Strings without -arch tokens yield nothing.
func darwinArchitectures(archFlags string) []string {
	matches := archPattern.FindAllStringSubmatch(archFlags, -1)
	if len(matches) == 0 {
		return nil
	}
	archs := make([]string, len(matches))
	for i, m := range matches {
		archs[i] = m[1]
	}
	return archs
}
