package flows

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/zoe5466/Gudiee-sub001/pricing"
	"github.com/zoe5466/Gudiee-sub001/types"
)

type fakeAuth struct {
	mu        sync.Mutex
	registers []types.RegisterRequest
	updates   []types.UpdateUserRequest
	err       error
}

func (f *fakeAuth) Register(ctx context.Context, req types.RegisterRequest) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers = append(f.registers, req)
	if f.err != nil {
		return nil, f.err
	}
	return &types.User{ID: "u-1", Name: req.Name, Email: req.Email, Role: req.Role}, nil
}

func (f *fakeAuth) UpdateUser(ctx context.Context, req types.UpdateUserRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, req)
	return f.err
}

type fakeOrders struct {
	mu      sync.Mutex
	created []types.CreateOrderRequest
	paid    []string
	payReqs []types.PaymentRequest
	price   int64

	createErr error
	payErrs   []error // consumed one per Pay call
}

func (f *fakeOrders) CreateOrder(ctx context.Context, req types.CreateOrderRequest) (*types.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &types.Order{
		ID:           "ord-" + string(rune('0'+len(f.created))),
		ServiceID:    req.ServiceID,
		Participants: req.Participants,
		Customer:     req.Customer,
		Pricing:      pricing.Calculate(f.price, req.Participants),
		Status:       types.OrderPending,
	}, nil
}

func (f *fakeOrders) Pay(ctx context.Context, orderID string, req types.PaymentRequest) (*types.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paid = append(f.paid, orderID)
	f.payReqs = append(f.payReqs, req)
	if len(f.payErrs) > 0 {
		err := f.payErrs[0]
		f.payErrs = f.payErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &types.Order{ID: orderID, Status: types.OrderPaid, Pricing: pricing.Calculate(f.price, 2)}, nil
}

type fakeCatalog map[string]types.Service

func (c fakeCatalog) GetService(ctx context.Context, id string) (*types.Service, error) {
	svc, ok := c[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &svc, nil
}

// fixClock pins the package clock for the duration of a test.
func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func testService() types.Service {
	return types.Service{
		ID:              "svc-1",
		Title:           "九份老街與金瓜石導覽",
		Description:     "## 行程\n漫步九份老街。",
		Location:        "新北市",
		Price:           800,
		DurationHours:   4,
		MaxParticipants: 8,
		GuideID:         "g-1",
	}
}
