package ledger

import (
	"time"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/event"
)

// Frame is the execution context of one call: the open unit of work, the
// authenticated sender and the call's timestamp. Events emitted on a frame
// are buffered and only published by the caller after commit.
type Frame struct {
	Tx     Tx
	Sender account.Address
	Time   time.Time

	log *eventLog
}

type eventLog struct {
	events []event.Event
}

// NewFrame opens a frame for sender over tx.
func NewFrame(tx Tx, sender account.Address, at time.Time) *Frame {
	return &Frame{Tx: tx, Sender: sender, Time: at, log: &eventLog{}}
}

// As returns a frame for a nested call made by sender. The nested frame
// shares the transaction, clock and event buffer.
func (f *Frame) As(sender account.Address) *Frame {
	return &Frame{Tx: f.Tx, Sender: sender, Time: f.Time, log: f.log}
}

// Emit buffers a notification about tokenID.
func (f *Frame) Emit(kind event.Kind, tokenID uint64, data any) {
	f.log.events = append(f.log.events, event.New(kind, tokenID, f.Time, data))
}

// Events returns the buffered notifications in emission order.
func (f *Frame) Events() []event.Event {
	return append([]event.Event(nil), f.log.events...)
}

// Unix returns the frame time as seconds since the epoch, the unit used
// for signature deadlines.
func (f *Frame) Unix() uint64 {
	if f.Time.Unix() < 0 {
		return 0
	}
	return uint64(f.Time.Unix())
}
