package dto

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain digits", input: "45000000", want: 45000000},
		{name: "currency and separators", input: "₦45,000,000", want: 45000000},
		{name: "decimal", input: "1250000.50", want: 1250000.50},
		{name: "surrounding text", input: "NGN 2,500,000 total", want: 2500000},
		{name: "negative rejected", input: "-500", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "symbols only", input: "₦,,", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPrice) {
					t.Fatalf("ParsePrice(%q) error = %v, want ErrInvalidPrice", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePrice(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParsePrice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPriceUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    float64
		wantErr bool
	}{
		{name: "number", payload: `{"price": 75000000}`, want: 75000000},
		{name: "display string", payload: `{"price": "₦75,000,000"}`, want: 75000000},
		{name: "numeric string", payload: `{"price": "75000000"}`, want: 75000000},
		{name: "negative number", payload: `{"price": -1}`, wantErr: true},
		{name: "negative string", payload: `{"price": "-1"}`, wantErr: true},
		{name: "garbage", payload: `{"price": "no digits here"}`, wantErr: true},
		{name: "bool", payload: `{"price": true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Price Price `json:"price"`
			}
			err := json.Unmarshal([]byte(tt.payload), &body)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("unmarshal %s succeeded, want error", tt.payload)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s failed: %v", tt.payload, err)
			}
			if float64(body.Price) != tt.want {
				t.Fatalf("price = %v, want %v", float64(body.Price), tt.want)
			}
		})
	}
}
