package usecase

import (
	"context"
	"errors"
	"testing"

	"medrequest_xpto/internal/domain/entities"
	mock_interfaces "medrequest_xpto/internal/usecase/interfaces/mocks"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func TestPriceUseCase_SetPrice(t *testing.T) {
	price, _ := entities.NewMoneyFromCents(5990)

	t.Run("admin only", func(t *testing.T) {
		uc := NewPriceUseCase(nil, nil, zerolog.Nop())
		if _, err := uc.SetPrice(context.Background(), doctor, entities.RequestTypeExam, "imagem", price); !errors.Is(err, ErrForbiddenRole) {
			t.Fatalf("expected ErrForbiddenRole, got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		uc := NewPriceUseCase(nil, nil, zerolog.Nop())
		if _, err := uc.SetPrice(context.Background(), admin, "other", "x", price); !errors.Is(err, ErrInvalidRequestType) {
			t.Fatalf("expected ErrInvalidRequestType, got %v", err)
		}
		if _, err := uc.SetPrice(context.Background(), admin, entities.RequestTypeExam, "", price); !errors.Is(err, ErrInvalidSubtype) {
			t.Fatalf("expected ErrInvalidSubtype, got %v", err)
		}
		if _, err := uc.SetPrice(context.Background(), admin, entities.RequestTypeExam, "imagem", entities.Money{}); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPriceRepository(ctrl)
		uc := NewPriceUseCase(repo, nil, zerolog.Nop())

		repo.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("db"))
		if _, err := uc.SetPrice(context.Background(), admin, entities.RequestTypeExam, "imagem", price); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPriceRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditLogRepository(ctrl)
		uc := NewPriceUseCase(repo, NewAuditRecorder(audit, zerolog.Nop()), zerolog.Nop())

		repo.EXPECT().Put(gomock.Any(), entities.PriceEntry{ProductType: entities.RequestTypeExam, Subtype: "imagem", Price: price}).Return(nil)
		audit.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.AuditLog) error {
			if e.Action != "price.set" || e.EntityID != "exam#imagem" {
				t.Fatalf("unexpected audit entry %+v", e)
			}
			return nil
		})

		got, err := uc.SetPrice(context.Background(), admin, entities.RequestTypeExam, " Imagem ", price)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Subtype != "imagem" {
			t.Fatalf("expected normalized subtype, got %q", got.Subtype)
		}
	})
}
