package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"medrequest_xpto/internal/domain/accesscode"
	"medrequest_xpto/internal/domain/entities"
	mock_interfaces "medrequest_xpto/internal/usecase/interfaces/mocks"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func signedRequest() entities.MedicalRequest {
	signedAt := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	return entities.MedicalRequest{
		ID:          "req-1",
		Type:        entities.RequestTypePrescription,
		Status:      entities.RequestStatusSigned,
		PatientName: "Maria da Silva",
		DoctorName:  entities.StringPtr("Dr. Joao"),
		DoctorCRM:   entities.StringPtr("12345-SP"),
		Medications: []string{"Dipirona"},
		SignedAt:    &signedAt,
		SignatureID: entities.StringPtr("sig-1"),
	}
}

func TestVerificationUseCase_GetPublic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIMedicalRequestRepository(ctrl)
	uc := NewVerificationUseCase(repo, nil, zerolog.Nop())

	repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(signedRequest(), nil)
	view, err := uc.GetPublic(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.PatientInitials != "M. S." || view.DoctorCRM != "12345-SP" || !view.Signed {
		t.Fatalf("unexpected view %+v", view)
	}

	repo.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.MedicalRequest{}, nil)
	if _, err := uc.GetPublic(context.Background(), "nope"); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestVerificationUseCase_GetFull(t *testing.T) {
	t.Run("fallback code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIMedicalRequestRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditLogRepository(ctrl)
		uc := NewVerificationUseCase(repo, NewAuditRecorder(audit, zerolog.Nop()), zerolog.Nop())

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(signedRequest(), nil)
		audit.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.AuditLog) error {
			if e.Action != "verification.full_view" || e.ActorRole != entities.RoleAnonymous || e.ActorID != nil {
				t.Fatalf("unexpected audit entry %+v", e)
			}
			return nil
		})

		full, err := uc.GetFull(context.Background(), "req-1", accesscode.Generate("req-1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if full.PatientName != "Maria da Silva" || full.SignatureID != "sig-1" {
			t.Fatalf("unexpected full view %+v", full)
		}
	})

	t.Run("stored code wins over fallback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIMedicalRequestRepository(ctrl)
		uc := NewVerificationUseCase(repo, nil, zerolog.Nop())

		r := signedRequest()
		r.AccessCode = entities.StringPtr("1234")
		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(r, nil).Times(2)

		// the derived code for req-1 is 0848
		if _, err := uc.GetFull(context.Background(), "req-1", "0848"); !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("expected ErrVerificationFailed for fallback code, got %v", err)
		}
		if _, err := uc.GetFull(context.Background(), "req-1", " 1234 "); err != nil {
			t.Fatalf("expected stored code to pass, got %v", err)
		}
	})

	t.Run("unsigned and unknown look the same", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIMedicalRequestRepository(ctrl)
		uc := NewVerificationUseCase(repo, nil, zerolog.Nop())

		unsigned := signedRequest()
		unsigned.SignedAt = nil
		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(unsigned, nil)
		repo.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.MedicalRequest{}, nil)

		if _, err := uc.GetFull(context.Background(), "req-1", accesscode.Generate("req-1")); !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("expected ErrVerificationFailed, got %v", err)
		}
		if _, err := uc.GetFull(context.Background(), "ghost", "0000"); !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("expected ErrVerificationFailed, got %v", err)
		}
	})
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Maria da Silva":            "M. S.",
		"joão dos santos e souza":   "J. S. S.",
		"  Ana  ":                   "A.",
		"":                          "",
		"Érica De Oliveira Pereira": "É. O. P.",
	}
	for in, want := range cases {
		if got := Initials(in); got != want {
			t.Fatalf("Initials(%q): expected %q, got %q", in, want, got)
		}
	}
}
