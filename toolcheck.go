package pybuild

import (
	"fmt"
	"os/exec"
	"strings"
)

// ToolRequirement describes one external tool the pipeline depends on.
// A requirement is satisfied if the primary name or any alternative
// resolves in PATH; optional tools never fail the check.
type ToolRequirement struct {
	// Name is the primary tool binary name or path (e.g. "cmake").
	Name string

	// Alternatives are other names that can satisfy this requirement,
	// tried in order when Name is not found.
	Alternatives []string

	// Optional marks tools that are nice to have but never fail the
	// preflight check.
	Optional bool

	// Purpose is a human-readable description used in error messages.
	Purpose string
}

// CheckToolAvailable reports whether a tool resolves in PATH (or, for
// names containing a separator, whether that path is executable).
func CheckToolAvailable(tool string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// CheckRequiredTools verifies every required tool before the first
// external invocation, so a missing toolchain fails fast instead of
// half-way through the build. All missing required tools are reported
// in a single error.
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missing []string

	for _, req := range requirements {
		found := CheckToolAvailable(req.Name) == nil

		if !found {
			for _, alt := range req.Alternatives {
				if CheckToolAvailable(alt) == nil {
					found = true
					break
				}
			}
		}

		if !found && !req.Optional {
			if req.Purpose != "" {
				missing = append(missing, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
			} else {
				missing = append(missing, req.Name)
			}
		}
	}

	if len(missing) == 0 {
		return nil
	}
	if len(missing) == 1 {
		return fmt.Errorf("%s not found in PATH", missing[0])
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}
