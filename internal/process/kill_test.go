package process

// Notes:
// - KillProcessGroup: we only test with an invalid PID to verify the function
//   doesn't panic. Cannot test with PID 0 (kills current process group).
// - Bind cancellation is exercised with a real child in bind_unix_test.go.

import (
	"context"
	"os/exec"
	"testing"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

// ---------------------------------------------------------------------------
// TestBind - Command configuration
// ---------------------------------------------------------------------------

func TestBind_ConfiguresCommand(t *testing.T) {
	t.Parallel()

	cmd := exec.CommandContext(context.Background(), "true")
	Bind(cmd)

	if cmd.SysProcAttr == nil {
		t.Fatal("SysProcAttr not set")
	}
	if cmd.Cancel == nil {
		t.Fatal("Cancel not set")
	}
	if cmd.WaitDelay != WaitDelay {
		t.Errorf("WaitDelay = %v, want %v", cmd.WaitDelay, WaitDelay)
	}
	// Cancel before start must be a no-op.
	if err := cmd.Cancel(); err != nil {
		t.Errorf("Cancel() before start = %v, want nil", err)
	}
}
