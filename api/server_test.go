package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/decimal"
	"github.com/bitfsorg/armarket-go/engine"
	"github.com/bitfsorg/armarket-go/market"
	"github.com/bitfsorg/armarket-go/media"
	"github.com/bitfsorg/armarket-go/registry"
)

// mockBackend overrides the methods a test expects; any other call panics
// on the nil embedded interface.
type mockBackend struct {
	Backend
	mock.Mock
}

func (m *mockBackend) Burn(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error) {
	args := m.Called(ctx, caller, id)
	rc, _ := args.Get(0).(*engine.Receipt)
	return rc, args.Error(1)
}

func (m *mockBackend) TransferOwnership(ctx context.Context, caller account.Address, component string, next account.Address) (*engine.Receipt, error) {
	args := m.Called(ctx, caller, component, next)
	rc, _ := args.Get(0).(*engine.Receipt)
	return rc, args.Error(1)
}

func (m *mockBackend) Fund(ctx context.Context, caller, holder account.Address, amount *uint256.Int) (*engine.Receipt, error) {
	args := m.Called(ctx, caller, holder, amount)
	rc, _ := args.Get(0).(*engine.Receipt)
	return rc, args.Error(1)
}

func (m *mockBackend) CurrentAsk(ctx context.Context, id uint64) (market.Ask, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(market.Ask), args.Error(1)
}

var (
	alice = account.Address{0xA1}
	bob   = account.Address{0xB0}
)

func do(t *testing.T, h http.Handler, method, path string, caller account.Address, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if !caller.IsZero() {
		req.Header.Set(CallerHeader, caller.Hex())
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func errorOf(t *testing.T, rr *httptest.ResponseRecorder) Error {
	t.Helper()
	var e Error
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&e))
	return e
}

func TestMutationRequiresCaller(t *testing.T) {
	b := new(mockBackend)
	h := New(b, nil, nil).Handler()

	rr := do(t, h, http.MethodPost, "/v1/tokens/1/burn", account.Zero, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	e := errorOf(t, rr)
	assert.Equal(t, "authorization", e.Kind)
	assert.Equal(t, ErrMissingCaller.Error(), e.Error)
	b.AssertNotCalled(t, "Burn", mock.Anything, mock.Anything, mock.Anything)
}

func TestMalformedCallerHeader(t *testing.T) {
	h := New(new(mockBackend), nil, nil).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/tokens/1/burn", nil)
	req.Header.Set(CallerHeader, "0x1234")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "validation", errorOf(t, rr).Kind)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"authorization", media.ErrOnlyApprovedOrOwner, http.StatusForbidden, "authorization"},
		{"validation", decimal.ErrOverflow, http.StatusBadRequest, "validation"},
		{"replay", media.ErrContentHashUsed, http.StatusConflict, "replay"},
		{"expiry", media.ErrPermitExpired, http.StatusGone, "expiry"},
		{"not_found", registry.ErrNonexistentToken, http.StatusNotFound, "not_found"},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := new(mockBackend)
			b.On("Burn", mock.Anything, alice, uint64(7)).Return(nil, tt.err).Once()
			h := New(b, nil, nil).Handler()

			rr := do(t, h, http.MethodPost, "/v1/tokens/7/burn", alice, nil)
			assert.Equal(t, tt.status, rr.Code)
			e := errorOf(t, rr)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.err.Error(), e.Error)
			b.AssertExpectations(t)
		})
	}
}

func TestBadTokenID(t *testing.T) {
	b := new(mockBackend)
	h := New(b, nil, nil).Handler()

	rr := do(t, h, http.MethodPost, "/v1/tokens/abc/burn", alice, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/v1/tokens/-1/ask", account.Zero, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	b.AssertNotCalled(t, "Burn", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferOwnershipDecodesBody(t *testing.T) {
	b := new(mockBackend)
	b.On("TransferOwnership", mock.Anything, alice, "market", bob).
		Return(&engine.Receipt{}, nil).Once()
	h := New(b, nil, nil).Handler()

	rr := do(t, h, http.MethodPost, "/v1/owners/market/transfer", alice, map[string]any{"new_owner": bob.Hex()})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var rc Receipt
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&rc))
	assert.Empty(t, rc.Events)
	b.AssertExpectations(t)
}

func TestUnknownFieldRejected(t *testing.T) {
	b := new(mockBackend)
	h := New(b, nil, nil).Handler()

	rr := do(t, h, http.MethodPost, "/v1/owners/market/transfer", alice, `{"owner":"0x00"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	b.AssertNotCalled(t, "TransferOwnership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFundParsesLargeAmount(t *testing.T) {
	want := "123456789012345678901234567890"
	b := new(mockBackend)
	b.On("Fund", mock.Anything, alice, bob, mock.MatchedBy(func(v *uint256.Int) bool {
		return v.ToBig().String() == want
	})).Return(&engine.Receipt{}, nil).Once()
	h := New(b, nil, nil).Handler()

	rr := do(t, h, http.MethodPost, "/v1/currency/fund", alice, map[string]any{
		"holder": bob.Hex(),
		"amount": want,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	b.AssertExpectations(t)
}

func TestFundRejectsBadAmount(t *testing.T) {
	b := new(mockBackend)
	h := New(b, nil, nil).Handler()

	for _, amt := range []string{"-5", "1.5", "abc"} {
		rr := do(t, h, http.MethodPost, "/v1/currency/fund", alice, map[string]any{
			"holder": bob.Hex(),
			"amount": amt,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code, amt)
		assert.Equal(t, "validation", errorOf(t, rr).Kind, amt)
	}
	b.AssertNotCalled(t, "Fund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAskAmountIsString(t *testing.T) {
	b := new(mockBackend)
	b.On("CurrentAsk", mock.Anything, uint64(3)).
		Return(market.Ask{Currency: bob, Amount: *decimal.Coins(2)}, nil).Once()
	h := New(b, nil, nil).Handler()

	rr := do(t, h, http.MethodGet, "/v1/tokens/3/ask", account.Zero, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "2000000000000000000", got["amount"])
	assert.Equal(t, bob.Hex(), got["currency"])
}

func TestEventFeedDisabled(t *testing.T) {
	h := New(new(mockBackend), nil, nil).Handler()

	rr := do(t, h, http.MethodGet, "/v1/events", account.Zero, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, ErrEventsDisabled.Error(), errorOf(t, rr).Error)
}

func TestHex32RoundTrip(t *testing.T) {
	var h Hex32
	h[0], h[31] = 0xAB, 0x01
	text, err := h.MarshalText()
	require.NoError(t, err)

	var back Hex32
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, h, back)

	assert.ErrorIs(t, back.UnmarshalText([]byte("0xabcd")), ErrBadRequest)
	assert.ErrorIs(t, back.UnmarshalText([]byte("0xzz")), ErrBadRequest)
}
