package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoe5466/Gudiee-sub001/types"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		var req types.CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "svc-1", req.ServiceID)
		assert.Equal(t, 2, req.Participants)
		assert.Equal(t, "0912345678", req.Customer.Phone)

		writeEnvelope(t, w, http.StatusCreated, map[string]any{
			"success": true,
			"data":    map[string]any{"id": "ord-1", "serviceId": "svc-1", "status": "pending", "participants": 2},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", WithToken("tok-1"))
	order, err := c.CreateOrder(context.Background(), types.CreateOrderRequest{
		ServiceID:    "svc-1",
		Date:         "2026-11-01",
		StartTime:    "09:00",
		Participants: 2,
		Customer:     types.Customer{Name: "Wang", Email: "a@b.com", Phone: "0912345678"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, types.OrderPending, order.Status)
}

func TestClient_EnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusBadRequest, map[string]any{"success": false, "error": "此時段已額滿"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateOrder(context.Background(), types.CreateOrderRequest{})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "此時段已額滿", wizard.Message(err, "預訂失敗"))
}

func TestClient_ErrorWithoutMessageUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetOrder(context.Background(), "ord-1")
	require.Error(t, err)
	assert.Equal(t, "預訂失敗", wizard.Message(err, "預訂失敗"))
}

func TestClient_SuccessFalseWith200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, map[string]any{"success": false, "error": "付款失敗"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Pay(context.Background(), "ord-1", types.PaymentRequest{PaymentMethod: "credit_card"})
	require.Error(t, err)
	assert.Equal(t, "付款失敗", wizard.Message(err, ""))
}

func TestClient_GetServiceBareData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services/svc-9", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{"id": "svc-9", "title": "九份老街導覽", "price": 800, "maxParticipants": 8},
		})
	}))
	defer srv.Close()

	svc, err := NewClient(srv.URL).GetService(context.Background(), "svc-9")
	require.NoError(t, err)
	assert.Equal(t, "九份老街導覽", svc.Title)
	assert.EqualValues(t, 800, svc.Price)
	assert.Equal(t, 8, svc.MaxParticipants)
}

func TestClient_RegisterKeepsToken(t *testing.T) {
	var sawAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/register":
			var req types.RegisterRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, types.RoleGuide, req.Role)
			writeEnvelope(t, w, http.StatusCreated, map[string]any{
				"success": true,
				"data":    map[string]any{"token": "tok-new", "user": map[string]any{"id": "u-1", "name": req.Name, "role": req.Role}},
			})
		case "/api/users/u-1":
			sawAuth = r.Header.Get("Authorization")
			assert.Equal(t, http.MethodPut, r.Method)
			writeEnvelope(t, w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": "u-1"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	u, err := c.Register(context.Background(), types.RegisterRequest{Name: "Lin", Email: "lin@b.com", Role: types.RoleGuide})
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "tok-new", c.Token())
	require.NotNil(t, c.User())

	require.NoError(t, c.UpdateUser(context.Background(), types.UpdateUserRequest{ID: "u-1", Bio: "hi"}))
	assert.Equal(t, "Bearer tok-new", sawAuth)
}

func TestClient_UpdateUserRequiresID(t *testing.T) {
	err := NewClient("http://127.0.0.1:0").UpdateUser(context.Background(), types.UpdateUserRequest{})
	require.Error(t, err)
}

func TestClient_ConnectionErrorUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, WithTimeout(2*time.Second)).ListServices(context.Background())
	require.Error(t, err)
	assert.Equal(t, wizard.DefaultFallback, wizard.Message(err, ""))
}

func TestClient_ListServices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []map[string]any{{"id": "a"}, {"id": "b"}},
		})
	}))
	defer srv.Close()

	svcs, err := NewClient(srv.URL).ListServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, svcs, 2)
}
