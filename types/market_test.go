package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCreateOrderRequest_WireKeys(t *testing.T) {
	req := CreateOrderRequest{
		ServiceID:    "svc-1",
		Date:         "2026-11-01",
		StartTime:    "09:00",
		Participants: 2,
		Customer:     Customer{Name: "Alice", Email: "a@b.com", Phone: "0912345678"},
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"serviceId":"svc-1"`, `"startTime":"09:00"`, `"participants":2`, `"customer":{`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("payload %s missing %s", data, key)
		}
	}
}

func TestEnvelope_Decode(t *testing.T) {
	var env Envelope[Service]
	body := `{"success":true,"data":{"id":"svc-1","title":"九份","price":800,"duration":4}}`
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Success || env.Data.Price != 800 || env.Data.DurationHours != 4 {
		t.Errorf("envelope = %+v", env)
	}
}
