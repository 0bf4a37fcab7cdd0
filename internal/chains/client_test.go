package chains

import (
	"math/big"
	"testing"
)

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		decimals int
		places   int
		want     string
	}{
		{"one_xrp_in_drops", "1000000", 6, 6, "1.000000"},
		{"fractional_drops", "1500000", 6, 6, "1.500000"},
		{"sub_unit", "123", 6, 6, "0.000123"},
		{"zero", "0", 6, 6, "0.000000"},
		{"wei_truncated", "1234567890123456789", 18, 6, "1.234567"},
		{"usdt_six_decimals", "2500000000", 6, 6, "2500.000000"},
		{"large_balance", "99999999999999", 6, 6, "99999999.999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := new(big.Int).SetString(tt.value, 10)
			if !ok {
				t.Fatalf("bad test value %s", tt.value)
			}
			if got := formatUnits(v, tt.decimals, tt.places); got != tt.want {
				t.Errorf("formatUnits(%s, %d, %d) = %s, want %s", tt.value, tt.decimals, tt.places, got, tt.want)
			}
		})
	}
}

func TestFormatFloat(t *testing.T) {
	if got := formatFloat(1.5, 6); got != "1.500000" {
		t.Errorf("expected 1.500000, got %s", got)
	}
	if got := formatFloat(0.123456789, 8); got != "0.12345679" {
		t.Errorf("expected 0.12345679, got %s", got)
	}
}
