package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

func TestOptionalProjectPath(t *testing.T) {
	cmd := &cobra.Command{Use: "generate [project_path]"}

	if err := OptionalProjectPath(cmd, nil); err != nil {
		t.Errorf("expected nil for no args, got: %v", err)
	}
	if err := OptionalProjectPath(cmd, []string{"."}); err != nil {
		t.Errorf("expected nil for one arg, got: %v", err)
	}

	err := OptionalProjectPath(cmd, []string{"a", "b"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := tierdocs.ExitCodeForError(err); code != tierdocs.ExitUsageError {
		t.Errorf("expected usage exit code, got %d for: %v", code, err)
	}
}

func TestRequireTargetName(t *testing.T) {
	cmd := &cobra.Command{Use: "resolve <target> [project_path]"}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireTargetName(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <target>") {
			t.Errorf("expected error to contain 'missing required argument: <target>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "tierdocs list") {
			t.Errorf("expected error to contain 'tierdocs list', got: %s", err.Error())
		}
		if code := tierdocs.ExitCodeForError(err); code != tierdocs.ExitUsageError {
			t.Errorf("expected usage exit code, got %d", code)
		}
	})

	t.Run("returns nil when args provided", func(t *testing.T) {
		if err := RequireTargetName(cmd, []string{"x86_64-unknown-linux-gnu"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
		if err := RequireTargetName(cmd, []string{"x86_64-unknown-linux-gnu", "./book"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireTargetName(cmd, []string{"a", "b", "c"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts at most 2 arg") {
			t.Errorf("expected error to contain 'accepts at most 2 arg', got: %s", err.Error())
		}
	})
}

func TestRequirePattern(t *testing.T) {
	cmd := &cobra.Command{Use: "new <pattern> [project_path]"}

	err := RequirePattern(cmd, []string{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "missing required argument: <pattern>") {
		t.Errorf("expected error to contain 'missing required argument: <pattern>', got: %s", err.Error())
	}

	if err := RequirePattern(cmd, []string{"arm-*"}); err != nil {
		t.Errorf("expected nil, got: %v", err)
	}

	if err := RequirePattern(cmd, []string{"a", "b", "c"}); err == nil {
		t.Fatal("expected error for too many args")
	}
}
