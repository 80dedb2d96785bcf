package pybuild

import (
	"strings"
	"testing"
)

func TestCheckRequiredTools(t *testing.T) {
	if err := CheckRequiredTools(nil); err != nil {
		t.Errorf("no requirements should pass, got %v", err)
	}

	missing := ToolRequirement{Name: "pybuild-no-such-tool", Purpose: "test fixture"}
	err := CheckRequiredTools([]ToolRequirement{missing})
	if err == nil {
		t.Fatal("expected missing tool to be reported")
	}
	if !strings.Contains(err.Error(), "pybuild-no-such-tool") {
		t.Errorf("error should name the missing tool, got %v", err)
	}

	optional := ToolRequirement{Name: "pybuild-no-such-tool", Optional: true}
	if err := CheckRequiredTools([]ToolRequirement{optional}); err != nil {
		t.Errorf("optional tools must not fail the check, got %v", err)
	}

	withAlternative := ToolRequirement{
		Name:         "pybuild-no-such-tool",
		Alternatives: []string{"/bin/sh"},
	}
	if err := CheckRequiredTools([]ToolRequirement{withAlternative}); err != nil {
		t.Errorf("an available alternative should satisfy the requirement, got %v", err)
	}
}

func TestCheckRequiredToolsReportsAllMissing(t *testing.T) {
	err := CheckRequiredTools([]ToolRequirement{
		{Name: "pybuild-missing-one"},
		{Name: "pybuild-missing-two"},
	})
	if err == nil {
		t.Fatal("expected both missing tools to be reported")
	}
	if !strings.Contains(err.Error(), "pybuild-missing-one") || !strings.Contains(err.Error(), "pybuild-missing-two") {
		t.Errorf("error should list every missing tool, got %v", err)
	}
}
