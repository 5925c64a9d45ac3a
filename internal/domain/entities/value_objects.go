package entities

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
)

var (
	ErrInvalidEmail  = errors.New("invalid email")
	ErrInvalidPhone  = errors.New("invalid phone")
	ErrNegativeMoney = errors.New("money amount cannot be negative")
	ErrInvalidMoney  = errors.New("invalid money amount")
)

// Money is a non-negative BRL amount stored in cents.
//
// Prices come from the server-side price table only; clients never supply an amount.
type Money struct {
	cents int64
}

func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromFloat rounds to the nearest cent.
func NewMoneyFromFloat(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{}, ErrInvalidMoney
	}
	return NewMoneyFromCents(int64(math.Round(v * 100)))
}

// ParseMoney accepts "50", "50.0", "50.00" and "50,00".
func ParseMoney(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return Money{}, ErrInvalidMoney
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}
	return NewMoneyFromFloat(v)
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Float64() float64 { return float64(m.cents) / 100 }

func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) Equal(o Money) bool { return m.cents == o.cents }

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// Email is a validated, lower-cased e-mail address.
type Email string

func NewEmail(raw string) (Email, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw || !strings.Contains(raw[strings.LastIndex(raw, "@"):], ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return Email(raw), nil
}

func (e Email) String() string { return string(e) }

// Phone is a Brazilian phone number kept as digits only: DDD + 8 or 9 digits,
// optionally prefixed with the country code 55.
type Phone string

func NewPhone(raw string) (Phone, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "55") && (len(digits) == 12 || len(digits) == 13) {
		digits = digits[2:]
	}
	if len(digits) != 10 && len(digits) != 11 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	if digits[0] == '0' {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return Phone(digits), nil
}

func (p Phone) String() string { return string(p) }
