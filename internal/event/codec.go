package event

import (
	"fmt"
	"strconv"
	"strings"

	"match_go/internal/domain"
	"match_go/pkg/quant"
)

// Textual record format, one event per line:
//
//	NEW_ORDER,<seq>,<id>,BUY|SELL,<price_fixed_point>,<quantity>
//	CANCEL_ORDER,<seq>,<id>
//	TRADE,<seq>,<passive_id>,<aggressive_id>,<price_fixed_point>,<quantity>
//
// All integers decimal; price is the raw scaled integer.

// AppendRecord appends the textual form of e to dst and returns the
// extended slice. strconv.AppendUint keeps the writer allocation-free
// when dst has capacity.
func AppendRecord(dst []byte, e *Event) []byte {
	dst = append(dst, e.Kind.String()...)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, uint64(e.Seq), 10)
	switch e.Kind {
	case KindNewOrder:
		dst = append(dst, ',')
		dst = strconv.AppendUint(dst, uint64(e.ID), 10)
		dst = append(dst, ',')
		dst = append(dst, e.Side.String()...)
		dst = append(dst, ',')
		dst = strconv.AppendInt(dst, int64(e.Price), 10)
		dst = append(dst, ',')
		dst = strconv.AppendUint(dst, uint64(e.Qty), 10)
	case KindCancelOrder:
		dst = append(dst, ',')
		dst = strconv.AppendUint(dst, uint64(e.ID), 10)
	case KindTrade:
		dst = append(dst, ',')
		dst = strconv.AppendUint(dst, uint64(e.PassiveID), 10)
		dst = append(dst, ',')
		dst = strconv.AppendUint(dst, uint64(e.AggressiveID), 10)
		dst = append(dst, ',')
		dst = strconv.AppendInt(dst, int64(e.Price), 10)
		dst = append(dst, ',')
		dst = strconv.AppendUint(dst, uint64(e.Qty), 10)
	}
	return dst
}

// Record renders e as a single line without the trailing newline.
func Record(e *Event) string {
	return string(AppendRecord(nil, e))
}

// ParseRecord parses one line of the textual format. Malformed lines
// yield domain.ErrMalformedRecord (wrapped); callers skip and continue.
func ParseRecord(line string) (Event, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return Event{}, fmt.Errorf("%w: want at least 3 fields, got %d", domain.ErrMalformedRecord, len(fields))
	}

	seq, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("%w: bad seq %q", domain.ErrMalformedRecord, fields[1])
	}

	switch fields[0] {
	case "NEW_ORDER":
		if len(fields) != 6 {
			return Event{}, fmt.Errorf("%w: NEW_ORDER wants 6 fields, got %d", domain.ErrMalformedRecord, len(fields))
		}
		id, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%w: bad id %q", domain.ErrMalformedRecord, fields[2])
		}
		side, err := quant.ParseSide(fields[3])
		if err != nil {
			return Event{}, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
		}
		price, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%w: bad price %q", domain.ErrMalformedRecord, fields[4])
		}
		qty, err := strconv.ParseUint(fields[5], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%w: bad quantity %q", domain.ErrMalformedRecord, fields[5])
		}
		return NewOrder(quant.Seq(seq), quant.OrderID(id), side, quant.Price(price), quant.Qty(qty)), nil

	case "CANCEL_ORDER":
		if len(fields) != 3 {
			return Event{}, fmt.Errorf("%w: CANCEL_ORDER wants 3 fields, got %d", domain.ErrMalformedRecord, len(fields))
		}
		id, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%w: bad id %q", domain.ErrMalformedRecord, fields[2])
		}
		return CancelOrder(quant.Seq(seq), quant.OrderID(id)), nil

	case "TRADE":
		if len(fields) != 6 {
			return Event{}, fmt.Errorf("%w: TRADE wants 6 fields, got %d", domain.ErrMalformedRecord, len(fields))
		}
		passive, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%w: bad passive id %q", domain.ErrMalformedRecord, fields[2])
		}
		aggressive, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%w: bad aggressive id %q", domain.ErrMalformedRecord, fields[3])
		}
		price, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%w: bad price %q", domain.ErrMalformedRecord, fields[4])
		}
		qty, err := strconv.ParseUint(fields[5], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%w: bad quantity %q", domain.ErrMalformedRecord, fields[5])
		}
		return Trade(quant.Seq(seq), quant.OrderID(passive), quant.OrderID(aggressive), quant.Price(price), quant.Qty(qty)), nil
	}

	return Event{}, fmt.Errorf("%w: unknown kind %q", domain.ErrMalformedRecord, fields[0])
}
