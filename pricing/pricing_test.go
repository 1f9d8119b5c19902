package pricing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		price        int64
		participants int
		want         Breakdown
	}{
		{
			name:         "two participants",
			price:        800,
			participants: 2,
			want:         Breakdown{BasePrice: 800, Participants: 2, Subtotal: 1600, ServiceFee: 160, Tax: 88, Total: 1848},
		},
		{
			name:         "single participant",
			price:        1500,
			participants: 1,
			want:         Breakdown{BasePrice: 1500, Participants: 1, Subtotal: 1500, ServiceFee: 150, Tax: 83, Total: 1733},
		},
		{
			// fee 0.5 rounds up to 1, tax (5+1)*0.05=0.3 rounds to 0
			name:         "half rounds up",
			price:        5,
			participants: 1,
			want:         Breakdown{BasePrice: 5, Participants: 1, Subtotal: 5, ServiceFee: 1, Tax: 0, Total: 6},
		},
		{
			// tax on rounded sum: (1234+123)*0.05 = 67.85 -> 68
			name:         "tax on rounded fee",
			price:        1234,
			participants: 1,
			want:         Breakdown{BasePrice: 1234, Participants: 1, Subtotal: 1234, ServiceFee: 123, Tax: 68, Total: 1425},
		},
		{
			name:         "zero participants",
			price:        800,
			participants: 0,
			want:         Breakdown{BasePrice: 800},
		},
		{
			name:         "negative participants clamp to zero",
			price:        800,
			participants: -3,
			want:         Breakdown{BasePrice: 800},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.price, tt.participants)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Calculate(%d, %d) mismatch (-want +got):\n%s", tt.price, tt.participants, diff)
			}
			if got.Total != got.Subtotal+got.ServiceFee+got.Tax {
				t.Errorf("total %d != subtotal+fee+tax", got.Total)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := map[int64]string{
		0:       "NT$0",
		88:      "NT$88",
		1848:    "NT$1,848",
		1000000: "NT$1,000,000",
		-2500:   "-NT$2,500",
	}
	for in, want := range tests {
		if got := Format(in); got != want {
			t.Errorf("Format(%d) = %q, want %q", in, got, want)
		}
	}
}
