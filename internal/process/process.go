// Package process ties external commands to context cancellation.
package process

import (
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait blocks on output pipes after the process
// group has been killed.
const WaitDelay = 2 * time.Second

// Bind configures a command created with exec.CommandContext so that
// cancelling its context kills the whole process group rather than only
// the direct child.
func Bind(cmd *exec.Cmd) {
	SetProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = WaitDelay
}
