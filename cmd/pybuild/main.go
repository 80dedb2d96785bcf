// Command pybuild builds the key-value store's Python extension
// modules through CMake and generates their typing stubs. It exits
// nonzero on the first fatal error from any phase.
package main

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/contriboss/pybuild-go"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		sourceDir   string
		buildDir    string
		outputDir   string
		inPlaceDir  string
		pythonExe   string
		stubGen     string
		prebuiltDir string
	)

	cmd := &cobra.Command{
		Use:   "pybuild",
		Short: "Build Python extension modules and generate typing stubs",
		Long: `pybuild configures and compiles the store's native extension modules
(umem, rocksdb, leveldb, flight_client) through CMake, then runs the
stub generator over the built artifacts and writes the py.typed marker.

Environment: PYBUILD_DEBUG skips the build and copies a prebuilt tree;
CMAKE_ARGS / CMAKE_ARGS_F append extra configure flags; ARCHFLAGS
selects macOS architectures; CMAKE_BUILD_PARALLEL_LEVEL suppresses the
default -j job count.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := pybuild.ResolveConfig(os.LookupEnv, runtime.GOOS, runtime.NumCPU())

			var err error
			if cfg.BuildDir, err = filepath.Abs(buildDir); err != nil {
				return err
			}
			if cfg.OutputDir, err = filepath.Abs(outputDir); err != nil {
				return err
			}
			cfg.PythonExe = pythonExe
			cfg.StubGen = stubGen
			cfg.PrebuiltDir = prebuiltDir

			cfg.Mode = pybuild.ModeOutOfTree
			if inPlaceDir != "" {
				cfg.Mode = pybuild.ModeInPlace
				if cfg.InPlaceDir, err = filepath.Abs(inPlaceDir); err != nil {
					return err
				}
			}

			orch := pybuild.New(&cfg, pybuild.DefaultExtensions(sourceDir))
			if !cfg.Debug {
				if err := pybuild.CheckRequiredTools(orch.RequiredTools()); err != nil {
					return err
				}
			}
			return orch.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source", ".", "CMake source tree of the store")
	cmd.Flags().StringVar(&buildDir, "build-dir", "build", "working directory for cmake invocations")
	cmd.Flags().StringVar(&outputDir, "output-dir", "build/lib", "root of the build output tree")
	cmd.Flags().StringVar(&inPlaceDir, "in-place", "", "installed platlib path; stubs are generated there instead of the output tree")
	cmd.Flags().StringVar(&pythonExe, "python", "python3", "Python interpreter handed to CMake")
	cmd.Flags().StringVar(&stubGen, "stubgen", "kv-stubgen", "stub generator executable")
	cmd.Flags().StringVar(&prebuiltDir, "prebuilt", "build/lib", "prebuilt tree copied when PYBUILD_DEBUG is set")

	return cmd
}
