package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"go.uber.org/mock/gomock"
)

func TestPaymentUseCase_ProcessWebhook_Guards(t *testing.T) {
	t.Run("missing data id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newPaymentUseCaseWithMocks(ctrl)

		_, err := uc.ProcessWebhook(context.Background(), WebhookNotification{Topic: "payment"})
		if !errors.Is(err, ErrInvalidWebhook) {
			t.Fatalf("expected ErrInvalidWebhook, got %v", err)
		}
	})

	t.Run("non payment topic is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newPaymentUseCaseWithMocks(ctrl)

		m.gateway.EXPECT().VerifyWebhookSignature(gomock.Any()).Return(nil)

		res, err := uc.ProcessWebhook(context.Background(), WebhookNotification{Topic: "merchant_order", DataID: "123"})
		if err != nil || !res.Ignored {
			t.Fatalf("expected ignored, got %+v %v", res, err)
		}
	})

	t.Run("event claimed elsewhere", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newPaymentUseCaseWithMocks(ctrl)

		m.gateway.EXPECT().VerifyWebhookSignature(interfaces.WebhookSignature{Header: "ts=1,v1=ab", RequestID: "x-1", DataID: "123"}).Return(nil)
		m.gateway.EXPECT().GetStatus(gomock.Any(), "123").Return(interfaces.GatewayPaymentStatus{ExternalID: "123", Status: "approved"}, nil)
		m.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.WebhookEvent, staleBefore time.Time) (entities.WebhookEvent, interfaces.ClaimResult, error) {
				if ev.ExternalEventID != "payment:123:approved" {
					t.Fatalf("expected derived event id, got %s", ev.ExternalEventID)
				}
				if !staleBefore.Before(ev.ClaimedAt) {
					t.Fatalf("expected staleBefore before claim time")
				}
				return ev, interfaces.ClaimBusy, nil
			})

		_, err := uc.ProcessWebhook(context.Background(), WebhookNotification{
			Topic: "payment", Action: "payment.updated", DataID: "123", SignatureHeader: "ts=1,v1=ab", RequestID: "x-1",
		})
		if !errors.Is(err, ErrWebhookBusy) {
			t.Fatalf("expected ErrWebhookBusy, got %v", err)
		}
	})

	t.Run("status lookup fails before claiming", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newPaymentUseCaseWithMocks(ctrl)

		m.gateway.EXPECT().VerifyWebhookSignature(gomock.Any()).Return(nil)
		m.gateway.EXPECT().GetStatus(gomock.Any(), "123").Return(interfaces.GatewayPaymentStatus{}, errors.New("timeout"))
		m.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.ProcessWebhook(context.Background(), WebhookNotification{Topic: "payment", DataID: "123"})
		if !errors.Is(err, ErrGatewayUnavailable) {
			t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
		}
	})
}

func TestPaymentUseCase_ProcessWebhook_StaleStatusDoesNotRegress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPaymentUseCaseWithMocks(ctrl)

	paidAt := time.Now()
	payment := entities.Payment{ID: "pay-1", RequestID: "req-1", Status: entities.PaymentStatusApproved, ExternalID: entities.StringPtr("mp-1"), PaidAt: &paidAt, Version: 3}

	m.gateway.EXPECT().VerifyWebhookSignature(gomock.Any()).Return(nil)
	m.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev entities.WebhookEvent, _ time.Time) (entities.WebhookEvent, interfaces.ClaimResult, error) {
			return ev, interfaces.ClaimAcquired, nil
		})
	m.gateway.EXPECT().GetStatus(gomock.Any(), "mp-1").Return(interfaces.GatewayPaymentStatus{ExternalID: "mp-1", Status: "pending"}, nil)
	m.repo.EXPECT().GetByExternalID(gomock.Any(), "mp-1").Return(payment, nil)
	m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
	m.confirmer.EXPECT().ConfirmPayment(gomock.Any(), "req-1", "pay-1").Return(false, nil)
	m.events.EXPECT().MarkProcessed(gomock.Any(), "evt-old", "").Return(nil)

	res, err := uc.ProcessWebhook(context.Background(), WebhookNotification{EventID: "evt-old", Topic: "payment", DataID: "mp-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PaymentStatus != entities.PaymentStatusApproved {
		t.Fatalf("expected approved to be kept, got %s", res.PaymentStatus)
	}
}

func TestPaymentUseCase_ProcessWebhook_RequestNoLongerPayable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPaymentUseCaseWithMocks(ctrl)

	payment := entities.Payment{ID: "pay-1", RequestID: "req-1", Status: entities.PaymentStatusPending, ExternalID: entities.StringPtr("mp-1")}

	m.gateway.EXPECT().VerifyWebhookSignature(gomock.Any()).Return(nil)
	m.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev entities.WebhookEvent, _ time.Time) (entities.WebhookEvent, interfaces.ClaimResult, error) {
			return ev, interfaces.ClaimAcquired, nil
		})
	m.gateway.EXPECT().GetStatus(gomock.Any(), "mp-1").Return(interfaces.GatewayPaymentStatus{ExternalID: "mp-1", Status: "approved"}, nil)
	m.repo.EXPECT().GetByExternalID(gomock.Any(), "mp-1").Return(payment, nil)
	m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil })
	m.audit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	m.confirmer.EXPECT().ConfirmPayment(gomock.Any(), "req-1", "pay-1").Return(false, ErrIllegalTransition)
	m.events.EXPECT().MarkProcessed(gomock.Any(), "evt-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, processingError string) error {
			if !strings.HasPrefix(processingError, "request can no longer be paid") {
				t.Fatalf("expected terminal processing error, got %q", processingError)
			}
			return nil
		})

	res, err := uc.ProcessWebhook(context.Background(), WebhookNotification{EventID: "evt-1", Topic: "payment", DataID: "mp-1"})
	if err != nil {
		t.Fatalf("expected terminal outcome without error, got %v", err)
	}
	if res.Applied || res.PaymentID != "pay-1" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestPaymentUseCase_ProcessWebhook_ReleasesClaimOnStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPaymentUseCaseWithMocks(ctrl)

	m.gateway.EXPECT().VerifyWebhookSignature(gomock.Any()).Return(nil)
	m.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev entities.WebhookEvent, _ time.Time) (entities.WebhookEvent, interfaces.ClaimResult, error) {
			return ev, interfaces.ClaimAcquired, nil
		})
	m.gateway.EXPECT().GetStatus(gomock.Any(), "mp-1").Return(interfaces.GatewayPaymentStatus{Status: "approved"}, nil)
	m.repo.EXPECT().GetByExternalID(gomock.Any(), "mp-1").Return(entities.Payment{}, errors.New("db"))
	m.events.EXPECT().Release(gomock.Any(), "evt-1").Return(nil)

	_, err := uc.ProcessWebhook(context.Background(), WebhookNotification{EventID: "evt-1", Topic: "payment", DataID: "mp-1"})
	if err == nil || err.Error() != "db" {
		t.Fatalf("expected db error, got %v", err)
	}
}

func TestPaymentUseCase_ProcessWebhook_FallsBackToExternalReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPaymentUseCaseWithMocks(ctrl)

	m.gateway.EXPECT().VerifyWebhookSignature(gomock.Any()).Return(nil)
	m.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev entities.WebhookEvent, _ time.Time) (entities.WebhookEvent, interfaces.ClaimResult, error) {
			return ev, interfaces.ClaimAcquired, nil
		})
	m.gateway.EXPECT().GetStatus(gomock.Any(), "mp-7").Return(interfaces.GatewayPaymentStatus{Status: "rejected", StatusDetail: "cc_rejected_insufficient_amount", ExternalReference: "pay-7"}, nil)
	m.repo.EXPECT().GetByExternalID(gomock.Any(), "mp-7").Return(entities.Payment{}, nil)
	m.repo.EXPECT().GetByID(gomock.Any(), "pay-7").Return(entities.Payment{ID: "pay-7", RequestID: "req-7", Status: entities.PaymentStatusPending}, nil)
	m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			if p.Status != entities.PaymentStatusRejected || p.ExternalID == nil || *p.ExternalID != "mp-7" {
				t.Fatalf("unexpected payment update %+v", p)
			}
			return p, nil
		})
	m.audit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	m.events.EXPECT().MarkProcessed(gomock.Any(), "evt-7", "").Return(nil)

	res, err := uc.ProcessWebhook(context.Background(), WebhookNotification{EventID: "evt-7", Topic: "payment", DataID: "mp-7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PaymentStatus != entities.PaymentStatusRejected {
		t.Fatalf("expected rejected, got %s", res.PaymentStatus)
	}
}
