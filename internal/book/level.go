package book

import "match_go/pkg/quant"

// level is the FIFO queue of orders resting at one price. The chain is
// the orders' own prev/next links; the level never owns a record.
//
// Invariants: empty ⇔ head==nil ⇔ tail==nil ⇔ count==0 ⇔ volume==0;
// volume is the sum of remaining quantities over the chain.
type level struct {
	price  quant.Price
	head   *Order
	tail   *Order
	volume quant.Qty
	count  uint32
}

// pushBack appends o at the tail in O(1).
func (l *level) pushBack(o *Order) {
	o.prev = l.tail
	o.next = nil
	if l.tail != nil {
		l.tail.next = o
	} else {
		l.head = o
	}
	l.tail = o
	l.volume += o.Remaining
	l.count++
}

// front returns the head record, nil when empty.
func (l *level) front() *Order {
	return l.head
}

// popFront detaches the head in O(1).
func (l *level) popFront() *Order {
	o := l.head
	if o == nil {
		return nil
	}
	l.head = o.next
	if l.head != nil {
		l.head.prev = nil
	} else {
		l.tail = nil
	}
	o.prev = nil
	o.next = nil
	l.volume -= o.Remaining
	l.count--
	return o
}

// unlink removes o from anywhere in the chain in O(1). This is the
// cancel-path primitive; o must be on this level.
func (l *level) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.prev = nil
	o.next = nil
	l.volume -= o.Remaining
	l.count--
}

// reduce lowers the aggregate volume when the head is partially filled
// in place.
func (l *level) reduce(delta quant.Qty) {
	l.volume -= delta
}

func (l *level) empty() bool {
	return l.count == 0
}
