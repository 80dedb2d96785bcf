package pybuild

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// markerFile signals to downstream consumers that the package publishes
// machine-checkable typing stubs. It is written if and only if the stub
// generator exited zero.
const markerFile = "py.typed"

// StubCoordinator runs the stub-generator subprocess once, after every
// extension built successfully. It assembles the name→path mapping for
// the wrapper packages and compiled artifacts, serializes it as a
// versioned YAML document, and hands that document to the generator as
// its single argument. The generator is a black box: the only contract
// is the StubJob schema, its exit status, and the stub files it leaves
// under the output root.
type StubCoordinator struct {
	cfg    *Config
	runner Runner
}

// Generate assembles the stub job, runs the generator, and writes the
// typed-package marker on success. The generator's exit code, stdout
// and stderr are printed regardless of outcome; launch failures and
// nonzero exits are fatal and carry the full invocation.
func (c *StubCoordinator) Generate(extensions []ExtensionDescriptor) error {
	root, err := c.outputRoot()
	if err != nil {
		return err
	}

	job := c.assembleJob(root, extensions)
	for _, entry := range job.Mapping[:len(c.cfg.WrapperPackages)] {
		if err := ensureFile(entry.Path); err != nil {
			return fmt.Errorf("wrapper package %s: %w", entry.Name, err)
		}
	}

	doc, err := yaml.Marshal(&job)
	if err != nil {
		return fmt.Errorf("serializing stub job: %w", err)
	}

	fmt.Fprintf(c.cfg.Stderr, "pybuild: %s <job document>\n", c.cfg.StubGen)
	fmt.Fprintf(c.cfg.Stderr, "job document:\n%s", doc)
	stdout, stderr, exit, runErr := c.runner.Capture(c.cfg.StubGen, string(doc))

	fmt.Fprintf(c.cfg.Stdout, "stub generator exit code: %d\n", exit)
	fmt.Fprintln(c.cfg.Stdout, stdout)
	fmt.Fprintln(c.cfg.Stderr, stderr)

	if runErr != nil {
		return fmt.Errorf("stub generation failed: %s %s: %w", c.cfg.StubGen, doc, runErr)
	}

	marker := filepath.Join(root, c.cfg.RootPackage, markerFile)
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", marker, err)
	}
	return nil
}

// outputRoot resolves where the built package tree lives: the installed
// platform-library path for in-place builds, the build output directory
// otherwise.
func (c *StubCoordinator) outputRoot() (string, error) {
	root := c.cfg.OutputDir
	if c.cfg.Mode == ModeInPlace {
		root = c.cfg.InPlaceDir
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving stub output root: %w", err)
	}
	return abs, nil
}

// assembleJob builds the job document deterministically: wrapper
// initializers first, then one artifact entry per extension in
// descriptor order. StubTargets is exactly the extension portion of the
// mapping, in the same order.
func (c *StubCoordinator) assembleJob(root string, extensions []ExtensionDescriptor) StubJob {
	job := StubJob{Version: stubJobVersion, OutputRoot: root}

	for _, pkg := range c.cfg.WrapperPackages {
		dir := filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")))
		job.Mapping = append(job.Mapping, MappingEntry{
			Name: pkg,
			Path: filepath.Join(dir, "__init__.py"),
		})
	}

	for _, desc := range extensions {
		job.Mapping = append(job.Mapping, MappingEntry{
			Name: desc.Name,
			Path: filepath.Join(root, desc.packageDir(), desc.ArtifactName(c.cfg.Platform)),
		})
		job.StubTargets = append(job.StubTargets, desc.Name)
	}

	return job
}

// ensureFile creates an empty file at path unless one already exists.
// Existing contents are left untouched.
func ensureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, nil, 0o644)
}
