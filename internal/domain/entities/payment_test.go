package entities

import "testing"

func TestPaymentStatus_CanMoveTo(t *testing.T) {
	cases := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentStatusPending, PaymentStatusApproved, true},
		{PaymentStatusPending, PaymentStatusRejected, true},
		{PaymentStatusApproved, PaymentStatusApproved, true},
		{PaymentStatusApproved, PaymentStatusRefunded, true},
		{PaymentStatusApproved, PaymentStatusPending, false},
		{PaymentStatusRejected, PaymentStatusPending, false},
		{PaymentStatusCancelled, PaymentStatusApproved, false},
	}
	for _, c := range cases {
		if got := c.from.CanMoveTo(c.to); got != c.want {
			t.Fatalf("expected %s -> %s to be %v, got %v", c.from, c.to, c.want, got)
		}
	}
}
