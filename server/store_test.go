package server

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoe5466/Gudiee-sub001/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "guidee.db") + "?_pragma=foreign_keys(1)"
	s, err := OpenStore(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() }) //nolint:errcheck
	return s
}

func TestRebind(t *testing.T) {
	q := "UPDATE t SET a = ?, b = ? WHERE id = ?"
	assert.Equal(t, q, rebind("sqlite", q))
	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3", rebind("postgres", q))
}

func TestOpenStore_CgoSQLite(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(ctx, "sqlite3", filepath.Join(t.TempDir(), "guidee3.db"))
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("go-sqlite3 needs cgo")
	}
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck

	res, err := s.CreateUser(ctx, types.RegisterRequest{
		Name: "陳小華", Email: "hua@example.com", Phone: "0987654321", Password: "Passw0rd!", Role: types.RoleCustomer,
	})
	require.NoError(t, err)
	got, err := s.GetUser(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "hua@example.com", got.Email)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), "mysql", "")
	require.Error(t, err)
}

func TestStore_UsersAndSessions(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	res, err := s.CreateUser(ctx, types.RegisterRequest{
		Name: "林小明", Email: "Guide@Example.com", Phone: "0912345678", Password: "Passw0rd!", Role: types.RoleGuide,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "guide@example.com", res.User.Email)

	_, err = s.CreateUser(ctx, types.RegisterRequest{Name: "x", Email: "guide@example.com", Password: "Passw0rd!", Role: types.RoleCustomer})
	assert.True(t, errors.Is(err, ErrConflict), "duplicate email: %v", err)

	id, err := s.UserIDForToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id)

	_, err = s.Authenticate(ctx, "guide@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	login, err := s.Authenticate(ctx, "GUIDE@example.com", "Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, res.Token, login.Token)

	_, err = s.UserIDForToken(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestStore_UpdateUser(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	res, err := s.CreateUser(ctx, types.RegisterRequest{Name: "林小明", Email: "g@example.com", Phone: "0912345678", Password: "Passw0rd!", Role: types.RoleGuide})
	require.NoError(t, err)

	u, err := s.UpdateUser(ctx, types.UpdateUserRequest{
		ID:        res.User.ID,
		Location:  "台北市",
		IDNumber:  "a123456789",
		Bio:       "在地導遊",
		Languages: []string{"中文", "English"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", u.KYCStatus)

	got, err := s.GetUser(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "林小明", got.Name)
	assert.Equal(t, "台北市", got.Location)
	assert.Equal(t, []string{"中文", "English"}, got.Languages)

	_, err = s.UpdateUser(ctx, types.UpdateUserRequest{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	order, err := s.CreateOrder(ctx, "", types.CreateOrderRequest{
		ServiceID: "svc-jiufen", Date: "2026-11-01", StartTime: "09:00", Participants: 2,
		Customer: types.Customer{Name: "Alice", Email: "a@example.com", Phone: "0912345678"},
	}, 800)
	require.NoError(t, err)
	assert.Equal(t, int64(1848), order.Pricing.Total)
	assert.Equal(t, types.OrderPending, order.Status)

	paid, err := s.PayOrder(ctx, order.ID, types.PaymentRequest{PaymentMethod: types.PaymentLinePay, PaymentToken: "tok_1"})
	require.NoError(t, err)
	assert.Equal(t, types.OrderPaid, paid.Status)
	assert.Equal(t, types.PaymentLinePay, paid.PaymentMethod)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, "Alice", paid.Customer.Name)
	assert.Equal(t, 2, paid.Pricing.Participants)

	_, err = s.PayOrder(ctx, order.ID, types.PaymentRequest{PaymentMethod: types.PaymentCreditCard, PaymentToken: "tok_2"})
	assert.ErrorIs(t, err, ErrConflict)

	again, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, types.PaymentLinePay, again.PaymentMethod, "first payment must stand")

	_, err = s.PayOrder(ctx, "missing", types.PaymentRequest{PaymentMethod: types.PaymentCreditCard, PaymentToken: "t"})
	assert.ErrorIs(t, err, ErrNotFound)
}
