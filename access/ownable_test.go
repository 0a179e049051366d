package access

import (
	"testing"
	"time"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/fault"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	deployer = account.Address{0xD0}
	other    = account.Address{0x07}
)

func run(t *testing.T, s ledger.Store, sender account.Address, fn func(f *ledger.Frame) error) ([]event.Event, error) {
	t.Helper()
	var events []event.Event
	err := s.Update(func(tx ledger.Tx) error {
		f := ledger.NewFrame(tx, sender, time.Unix(1700000000, 0))
		if err := fn(f); err != nil {
			return err
		}
		events = f.Events()
		return nil
	})
	return events, err
}

func TestOwnable(t *testing.T) {
	s := ledger.NewMemStore()
	o := New("media")

	_, err := run(t, s, deployer, func(f *ledger.Frame) error { return o.Init(f.Tx, deployer) })
	require.NoError(t, err)

	t.Run("non owner rejected", func(t *testing.T) {
		_, err := run(t, s, other, o.RequireOwner)
		assert.ErrorIs(t, err, ErrNotOwner)
		assert.ErrorIs(t, err, fault.Authorization)
	})

	t.Run("init does not overwrite", func(t *testing.T) {
		_, err := run(t, s, other, func(f *ledger.Frame) error { return o.Init(f.Tx, other) })
		require.NoError(t, err)
		_, err = run(t, s, deployer, o.RequireOwner)
		assert.NoError(t, err)
	})

	t.Run("transfer", func(t *testing.T) {
		_, err := run(t, s, deployer, func(f *ledger.Frame) error { return o.TransferOwnership(f, account.Zero) })
		assert.ErrorIs(t, err, ErrZeroOwner)

		events, err := run(t, s, deployer, func(f *ledger.Frame) error { return o.TransferOwnership(f, other) })
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, OwnershipTransferred{Component: "media", Previous: deployer, Next: other}, events[0].Data)

		_, err = run(t, s, other, o.RequireOwner)
		assert.NoError(t, err)
		_, err = run(t, s, deployer, o.RequireOwner)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("renounce", func(t *testing.T) {
		_, err := run(t, s, other, o.RenounceOwnership)
		require.NoError(t, err)

		_, err = run(t, s, other, o.RequireOwner)
		assert.ErrorIs(t, err, ErrNotOwner)

		_, err = run(t, s, other, func(f *ledger.Frame) error { return o.Init(f.Tx, other) })
		require.NoError(t, err)
		_, err = run(t, s, other, o.RequireOwner)
		assert.ErrorIs(t, err, ErrNotOwner, "renounced slot must stay empty")
	})
}
