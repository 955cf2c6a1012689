package cli

import (
	"context"
	"io"
)

// Execute runs the folio command tree with args. Command output goes to
// stdout; logs, spinners and errors go to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := New(stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
