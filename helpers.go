package pybuild

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/sh"
)

// splitTokens whitespace-splits a raw flag string, dropping empty
// tokens. Used for both the extra-args variable and the extra-args
// file contents.
func splitTokens(raw string) []string {
	return strings.Fields(raw)
}

// invokeError formats an external-process failure with the exact
// command line and the full captured output, so operators can
// reproduce the failure manually.
func invokeError(phase string, argv []string, output []byte, err error) error {
	prefix := fmt.Sprintf("%s failed (exit %d): %s", phase, sh.ExitStatus(err), strings.Join(argv, " "))
	if len(output) > 0 {
		return fmt.Errorf("%s\n\nBuild output:\n%s", prefix, output)
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
