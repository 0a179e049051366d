package market

import (
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/revshare"
)

// CurrentAskForToken returns the ask on id, or the zero Ask.
func (m *Market) CurrentAskForToken(tx ledger.Tx, id uint64) (Ask, error) {
	var a Ask
	_, err := ledger.GetGob(tx, bucketAsks, ledger.U64(id), &a)
	return a, err
}

// SetAsk places ask on id. The amount must be nonzero and split cleanly
// across the token's current shares.
func (m *Market) SetAsk(f *ledger.Frame, id uint64, ask Ask) error {
	ok, err := m.mayAsk(f, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOnlyApprovedOrOwner
	}
	return m.setAsk(f, id, ask)
}

// RemoveAsk clears the ask on id. Asks hold no escrow, so nothing is refunded.
func (m *Market) RemoveAsk(f *ledger.Frame, id uint64) error {
	ok, err := m.approved(f, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOnlyApprovedOrOwner
	}
	return m.removeAsk(f, id)
}

// SetAskForBatch places the same ask on every token of ids. Every token
// must be managed by the caller and belong to objKeyHex.
func (m *Market) SetAskForBatch(f *ledger.Frame, ids []uint64, ask Ask, objKeyHex [32]byte) error {
	if len(ids) == 0 {
		return ErrEmptyBatch
	}
	for _, id := range ids {
		ok, err := m.approved(f, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBatchSetNotApproved
		}
		key, err := m.tokens.ObjKeyHex(f.Tx, id)
		if err != nil {
			return err
		}
		if key != objKeyHex {
			return ErrBatchObjKeyMismatch
		}
		if err := m.setAsk(f, id, ask); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAskForBatch clears the ask of every token of ids.
func (m *Market) RemoveAskForBatch(f *ledger.Frame, ids []uint64) error {
	if len(ids) == 0 {
		return ErrEmptyBatch
	}
	for _, id := range ids {
		ok, err := m.approved(f, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBatchRemoveNotApproved
		}
		if err := m.removeAsk(f, id); err != nil {
			return err
		}
	}
	return nil
}

// ClearAsk drops the ask on id without emitting a removal. The media
// registry calls it when ownership changes or the token is burned.
func (m *Market) ClearAsk(f *ledger.Frame, id uint64) error {
	if _, err := m.requireMedia(f); err != nil {
		return err
	}
	return f.Tx.Delete(bucketAsks, ledger.U64(id))
}

func (m *Market) setAsk(f *ledger.Frame, id uint64, ask Ask) error {
	if ask.Amount.IsZero() {
		return ErrAskZero
	}
	shares, err := m.sharesOf(f.Tx, id)
	if err != nil {
		return err
	}
	if !revshare.IsSplittable(&ask.Amount, shares) {
		return ErrAskUnsplittable
	}
	if err := ledger.PutGob(f.Tx, bucketAsks, ledger.U64(id), ask); err != nil {
		return err
	}
	f.Emit(event.AskCreated, id, AskData{Ask: ask})
	return nil
}

func (m *Market) removeAsk(f *ledger.Frame, id uint64) error {
	ask, err := m.CurrentAskForToken(f.Tx, id)
	if err != nil {
		return err
	}
	if err := f.Tx.Delete(bucketAsks, ledger.U64(id)); err != nil {
		return err
	}
	f.Emit(event.AskRemoved, id, AskData{Ask: ask})
	return nil
}
