package event

import (
	"sync"
)

// Command pool: sync.Pool keeps per-order gateway allocation off the GC.
//
// Usage:
//
//	cmd := AcquireCommand()
//	cmd.Kind = CmdNewOrder
//	// ... fill and send to the sequencer inbox ...
//	ReleaseCommand(cmd)  // done by the sequencer after processing
var commandPool = sync.Pool{
	New: func() interface{} {
		return &Command{}
	},
}

// AcquireCommand gets a Command from the pool.
// The returned command has zero values and must be initialized.
func AcquireCommand() *Command {
	return commandPool.Get().(*Command)
}

// ReleaseCommand returns a Command to the pool.
// The command is reset to zero values before being pooled.
func ReleaseCommand(cmd *Command) {
	if cmd == nil {
		return
	}
	cmd.Kind = 0
	cmd.ID = 0
	cmd.Side = 0
	cmd.Price = 0
	cmd.Qty = 0

	commandPool.Put(cmd)
}
