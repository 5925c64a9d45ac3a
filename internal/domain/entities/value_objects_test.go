package entities

import (
	"errors"
	"testing"
)

func TestMoney(t *testing.T) {
	t.Run("from float rounds to cents", func(t *testing.T) {
		m, err := NewMoneyFromFloat(49.999)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Cents() != 5000 || m.String() != "50.00" {
			t.Fatalf("expected 50.00, got %s (%d)", m, m.Cents())
		}
	})

	t.Run("negative rejected", func(t *testing.T) {
		if _, err := NewMoneyFromCents(-1); !errors.Is(err, ErrNegativeMoney) {
			t.Fatalf("expected ErrNegativeMoney, got %v", err)
		}
		if _, err := NewMoneyFromFloat(-0.5); !errors.Is(err, ErrNegativeMoney) {
			t.Fatalf("expected ErrNegativeMoney, got %v", err)
		}
	})

	t.Run("parse", func(t *testing.T) {
		cases := map[string]int64{"50": 5000, "50.00": 5000, "79,90": 7990, " 0.5 ": 50}
		for in, want := range cases {
			m, err := ParseMoney(in)
			if err != nil {
				t.Fatalf("parse %q: %v", in, err)
			}
			if m.Cents() != want {
				t.Fatalf("parse %q: expected %d, got %d", in, want, m.Cents())
			}
		}
		if _, err := ParseMoney("abc"); !errors.Is(err, ErrInvalidMoney) {
			t.Fatalf("expected ErrInvalidMoney, got %v", err)
		}
		if _, err := ParseMoney(""); !errors.Is(err, ErrInvalidMoney) {
			t.Fatalf("expected ErrInvalidMoney, got %v", err)
		}
	})

	t.Run("float64 and equal", func(t *testing.T) {
		a, _ := NewMoneyFromCents(1234)
		b, _ := NewMoneyFromFloat(12.34)
		if !a.Equal(b) || a.Float64() != 12.34 {
			t.Fatalf("expected equal 12.34, got %v %v", a, b)
		}
	})
}

func TestEmail(t *testing.T) {
	e, err := NewEmail("  Maria@Example.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.String() != "maria@example.com" {
		t.Fatalf("expected lower-cased email, got %q", e)
	}
	for _, bad := range []string{"", "maria", "maria@", "Maria <maria@example.com>", "maria@localhost"} {
		if _, err := NewEmail(bad); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("expected ErrInvalidEmail for %q, got %v", bad, err)
		}
	}
}

func TestPhone(t *testing.T) {
	cases := map[string]string{
		"(11) 98765-4321":   "11987654321",
		"+55 11 98765-4321": "11987654321",
		"21 3333-4444":      "2133334444",
	}
	for in, want := range cases {
		p, err := NewPhone(in)
		if err != nil {
			t.Fatalf("phone %q: %v", in, err)
		}
		if p.String() != want {
			t.Fatalf("phone %q: expected %s, got %s", in, want, p)
		}
	}
	for _, bad := range []string{"", "1234", "01 98765-4321", "123456789012345"} {
		if _, err := NewPhone(bad); !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("expected ErrInvalidPhone for %q, got %v", bad, err)
		}
	}
}
