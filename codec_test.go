package deci

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"encoding/xml"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestDeci_Text(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []string{"0", "-1.5", "123456789012345678901234567890.000000000000000000001"}
		for _, s := range tests {
			d := MustParse(s)
			text, err := d.MarshalText()
			if err != nil {
				t.Errorf("%q.MarshalText() failed: %v", d, err)
				continue
			}
			var got Deci
			if err := got.UnmarshalText(text); err != nil {
				t.Errorf("UnmarshalText(%q) failed: %v", text, err)
				continue
			}
			if !got.Equal(d) {
				t.Errorf("UnmarshalText(%q) = %q, want %q", text, got, d)
			}
		}
	})

	t.Run("failsafe", func(t *testing.T) {
		for _, s := range []string{"", "abc", "1e5", "--1"} {
			got := MustParse("7")
			if err := got.UnmarshalText([]byte(s)); err != nil {
				t.Errorf("UnmarshalText(%q) failed: %v", s, err)
			}
			if !got.IsZero() {
				t.Errorf("UnmarshalText(%q) = %q, want 0", s, got)
			}
		}
	})
}

type payment struct {
	ID     string `json:"id" yaml:"id" xml:"id"`
	Amount Deci   `json:"amount" yaml:"amount" xml:"amount"`
}

func TestDeci_JSON(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		tests := []struct {
			d    string
			want string
		}{
			{"0", `{"id":"p1","amount":"0"}`},
			{"123.45", `{"id":"p1","amount":"123.45"}`},
			{"-0.0001", `{"id":"p1","amount":"-0.0001"}`},
		}
		for _, tt := range tests {
			got, err := json.Marshal(payment{ID: "p1", Amount: MustParse(tt.d)})
			if err != nil {
				t.Errorf("json.Marshal(%q) failed: %v", tt.d, err)
				continue
			}
			if string(got) != tt.want {
				t.Errorf("json.Marshal(%q) = %s, want %s", tt.d, got, tt.want)
			}
		}
	})

	t.Run("unmarshal", func(t *testing.T) {
		tests := []struct {
			data string
			want string
		}{
			{`{"amount":"123.45"}`, "123.45"},
			{`{"amount":"1,50"}`, "1.5"},
			{`{"amount":123.45}`, "123.45"},
			{`{"amount":-7}`, "-7"},
			{`{"amount":"garbage"}`, "0"},
			{`{"amount":""}`, "0"},
			{`{"amount":1e3}`, "0"},
			{`{"amount":true}`, "0"},
			{`{"amount":null}`, "42"},
			{`{}`, "42"},
		}
		for _, tt := range tests {
			got := payment{Amount: MustParse("42")}
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Errorf("json.Unmarshal(%s) failed: %v", tt.data, err)
				continue
			}
			if got.Amount.String() != tt.want {
				t.Errorf("json.Unmarshal(%s) = %q, want %q", tt.data, got.Amount, tt.want)
			}
		}
	})
}

func TestDeci_YAML(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		got, err := yaml.Marshal(payment{ID: "p1", Amount: MustParse("-12.50")})
		if err != nil {
			t.Fatalf("yaml.Marshal failed: %v", err)
		}
		want := "id: p1\namount: \"-12.5\"\n"
		if diff := cmp.Diff(want, string(got)); diff != "" {
			t.Errorf("yaml.Marshal mismatch (-want, +got):\n%s", diff)
		}
	})

	t.Run("unmarshal", func(t *testing.T) {
		tests := []struct {
			data string
			want string
		}{
			{`amount: "123.45"`, "123.45"},
			{`amount: 123.45`, "123.45"},
			{`amount: '0,5'`, "0.5"},
			{`amount: garbage`, "0"},
			{`amount: [1, 2]`, "0"},
			{`amount: {a: 1}`, "0"},
			{`id: x`, "42"},
		}
		for _, tt := range tests {
			got := payment{Amount: MustParse("42")}
			if err := yaml.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Errorf("yaml.Unmarshal(%q) failed: %v", tt.data, err)
				continue
			}
			if got.Amount.String() != tt.want {
				t.Errorf("yaml.Unmarshal(%q) = %q, want %q", tt.data, got.Amount, tt.want)
			}
		}
	})
}

func TestDeci_XML(t *testing.T) {
	in := payment{ID: "p1", Amount: MustParse("99.99")}
	data, err := xml.Marshal(in)
	if err != nil {
		t.Fatalf("xml.Marshal failed: %v", err)
	}
	want := "<payment><id>p1</id><amount>99.99</amount></payment>"
	if string(data) != want {
		t.Errorf("xml.Marshal = %s, want %s", data, want)
	}
	var got payment
	if err := xml.Unmarshal(data, &got); err != nil {
		t.Fatalf("xml.Unmarshal failed: %v", err)
	}
	if !got.Amount.Equal(in.Amount) {
		t.Errorf("xml.Unmarshal = %q, want %q", got.Amount, in.Amount)
	}
}

func TestDeci_Gob(t *testing.T) {
	in := MustParse("-0.000000000000000000000000000000000000001")
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(in); err != nil {
		t.Fatalf("gob encoding failed: %v", err)
	}
	var got Deci
	if err := gob.NewDecoder(&buf).Decode(&got); err != nil {
		t.Fatalf("gob decoding failed: %v", err)
	}
	if !got.Equal(in) {
		t.Errorf("gob round trip = %q, want %q", got, in)
	}
}

func TestDeci_Scan(t *testing.T) {
	t.Run("float64", func(t *testing.T) {
		tests := []struct {
			f    float64
			want string
		}{
			{1e-5, "0.00001"},
			{1e-1, "0.1"},
			{1e0, "1"},
			{1e18, "1000000000000000000"},
			{-2.5, "-2.5"},
		}
		for _, tt := range tests {
			got := Deci{}
			err := got.Scan(tt.f)
			if err != nil {
				t.Errorf("Scan(%v) failed: %v", tt.f, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("Scan(%v) = %v, want %v", tt.f, got, tt.want)
			}
		}
	})

	t.Run("int64", func(t *testing.T) {
		tests := []struct {
			i    int64
			want string
		}{
			{math.MinInt64, "-9223372036854775808"},
			{0, "0"},
			{math.MaxInt64, "9223372036854775807"},
		}
		for _, tt := range tests {
			got := Deci{}
			err := got.Scan(tt.i)
			if err != nil {
				t.Errorf("Scan(%v) failed: %v", tt.i, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("Scan(%v) = %v, want %v", tt.i, got, tt.want)
			}
		}
	})

	t.Run("text", func(t *testing.T) {
		tests := []struct {
			v    any
			want string
		}{
			{[]byte("-9223372036854775809.5"), "-9223372036854775809.5"},
			{"12.30", "12.3"},
			{[]byte("garbage"), "0"},
			{"", "0"},
		}
		for _, tt := range tests {
			got := MustParse("1")
			err := got.Scan(tt.v)
			if err != nil {
				t.Errorf("Scan(%v) failed: %v", tt.v, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("Scan(%v) = %v, want %v", tt.v, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []any{
			int8(123),
			int32(123),
			int(123),
			uint64(123),
			float32(123),
			true,
			math.NaN(),
			nil,
		}
		for _, tt := range tests {
			got := Deci{}
			err := got.Scan(tt)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Scan(%v) error = %v, want %v", tt, err, ErrValidation)
			}
		}
	})
}

func TestDeci_Value(t *testing.T) {
	got, err := MustParse("-1.250").Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	if got != "-1.25" {
		t.Errorf("Value() = %v, want %v", got, "-1.25")
	}
	got, err = MustParse("1.5").MustSetScale(3, RoundDown).Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	if got != "1.500" {
		t.Errorf("Value() = %v, want %v", got, "1.500")
	}
}

func TestNullDeci(t *testing.T) {
	t.Run("scan", func(t *testing.T) {
		var n NullDeci
		if err := n.Scan("3.14"); err != nil {
			t.Fatalf("Scan(\"3.14\") failed: %v", err)
		}
		if !n.Valid || n.Deci.String() != "3.14" {
			t.Errorf("Scan(\"3.14\") = %+v", n)
		}
		if err := n.Scan(nil); err != nil {
			t.Fatalf("Scan(nil) failed: %v", err)
		}
		if n.Valid || !n.Deci.IsZero() {
			t.Errorf("Scan(nil) = %+v, want invalid", n)
		}
		if err := n.Scan(true); err == nil {
			t.Errorf("Scan(true) did not fail")
		}
		if n.Valid {
			t.Errorf("Scan(true) left the value valid")
		}
	})

	t.Run("value", func(t *testing.T) {
		got, err := NullDeci{}.Value()
		if err != nil || got != nil {
			t.Errorf("NullDeci{}.Value() = (%v, %v), want (nil, nil)", got, err)
		}
		got, err = NullDeci{Deci: MustParse("2"), Valid: true}.Value()
		if err != nil || got != "2" {
			t.Errorf("Value() = (%v, %v), want (2, nil)", got, err)
		}
	})
}
