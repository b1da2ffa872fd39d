package inputs

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		provided bool
	}{
		{"Brazilian currency", "R$ 1.234,56", 1234.56, true},
		{"Brazilian currency without space", "R$1.234,56", 1234.56, true},
		{"Percent with comma", "1,45%", 1.45, true},
		{"Plain dot decimal", "0.0145", 0.0145, true},
		{"US thousands", "1,234.50", 1234.5, true},
		{"Multiple dot thousands", "1.234.567", 1234567, true},
		{"Multiple comma thousands", "1,234,567", 1234567, true},
		{"Negative comma decimal", "-3,5", -3.5, true},
		{"Padded integer", "  12  ", 12, true},
		{"Non-breaking space", "R$\u00a0900,00", 900, true},
		{"Currency with dot grouping", "R$ 1.500", 1500, true},
		{"Currency with dot decimal", "R$ 1.50", 1.5, true},
		{"Plain single dot stays decimal", "1.500", 1.5, true},
		{"Empty", "", 0, false},
		{"Only decoration", "R$ %", 0, false},
		{"Garbage", "abc", 0, false},
		{"Mixed separators out of order", "1.234,56.7", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseNumber(tt.input)
			if result.IsProvided() != tt.provided {
				t.Fatalf("ParseNumber(%q).IsProvided() = %v, expected %v", tt.input, result.IsProvided(), tt.provided)
			}
			if math.Abs(result.OrZero()-tt.expected) > 1e-9 {
				t.Errorf("ParseNumber(%q) = %v, expected %v", tt.input, result.OrZero(), tt.expected)
			}
		})
	}
}

func TestParseMoneyAndPercent(t *testing.T) {
	if got := ParseMoney("R$ 10,00").OrZero(); got != 10 {
		t.Errorf("ParseMoney() = %v, expected 10", got)
	}
	moneyTests := map[string]float64{
		"R$ 1.500":    1500,
		"1.500":       1500,
		"R$ 1.500,00": 1500,
		"1.234.567":   1234567,
		"12.5":        12.5,
		"-2.000":      -2000,
	}
	for input, want := range moneyTests {
		if got := ParseMoney(input).OrZero(); got != want {
			t.Errorf("ParseMoney(%q) = %v, expected %v", input, got, want)
		}
	}
	if got := ParsePercent("0,3%").OrZero(); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("ParsePercent() = %v, expected 0.3", got)
	}
}

func TestValueAccessors(t *testing.T) {
	empty := Empty()
	if empty.IsProvided() || empty.OrZero() != 0 || empty.String() != "" {
		t.Errorf("unexpected empty value %+v", empty)
	}

	zero := Of(0)
	if !zero.IsProvided() {
		t.Errorf("zero must count as provided")
	}

	if Of(math.NaN()).IsProvided() || Of(math.Inf(1)).IsProvided() {
		t.Errorf("non-finite numbers must be stored as empty")
	}

	if got := Of(1.5).String(); got != "1.5" {
		t.Errorf("String() = %q, expected 1.5", got)
	}
}

func TestValueJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Value
	}{
		{"Null", `null`, Empty()},
		{"Number", `12.5`, Of(12.5)},
		{"Zero", `0`, Of(0)},
		{"Empty string", `""`, Empty()},
		{"Locale string", `"1.000,50"`, Of(1000.5)},
		{"Garbage string", `"n/a"`, Empty()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tt.input), &v); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if v != tt.expected {
				t.Errorf("Unmarshal(%s) = %+v, expected %+v", tt.input, v, tt.expected)
			}
		})
	}

	data, err := json.Marshal(struct {
		A Value `json:"a"`
		B Value `json:"b"`
	}{A: Empty(), B: Of(3)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"a":null,"b":3}` {
		t.Errorf("Marshal() = %s", data)
	}

	var v Value
	if err := json.Unmarshal([]byte(`true`), &v); err == nil {
		t.Errorf("expected an error decoding a boolean")
	}
}

func TestValueFromInterface(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected Value
		ok       bool
	}{
		{"Nil", nil, Empty(), false},
		{"Float", 2.5, Of(2.5), true},
		{"Int", 7, Of(7), true},
		{"Int64", int64(8), Of(8), true},
		{"JSON number", json.Number("9.25"), Of(9.25), true},
		{"String", "1,5", Of(1.5), true},
		{"Blank string", " ", Empty(), false},
		{"Bool", true, Empty(), false},
		{"NaN", math.NaN(), Empty(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ValueFromInterface(tt.input)
			if ok != tt.ok || v != tt.expected {
				t.Errorf("ValueFromInterface(%v) = (%+v, %v), expected (%+v, %v)", tt.input, v, ok, tt.expected, tt.ok)
			}
		})
	}
}
