package event

import "match_go/pkg/quant"

type CommandKind uint8

const (
	CmdNewOrder CommandKind = iota
	CmdCancelOrder
)

// Command is one input to the sequencer. Gateways acquire commands from
// the pool, the sequencer releases them after processing.
type Command struct {
	Kind  CommandKind
	ID    quant.OrderID
	Side  quant.Side
	Price quant.Price
	Qty   quant.Qty
}
