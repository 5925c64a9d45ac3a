package interfaces

import (
	"context"

	"medrequest_xpto/internal/domain/entities"
)

// IMedicalRequestRepository persists the request aggregate.
//
// GetByID returns a zero-value request (empty ID) when nothing is found.
// Update writes only when the stored version equals expectedVersion and bumps it by one;
// otherwise it returns ErrVersionConflict.
type IMedicalRequestRepository interface {
	Create(ctx context.Context, r entities.MedicalRequest) (entities.MedicalRequest, error)
	GetByID(ctx context.Context, id string) (entities.MedicalRequest, error)
	Update(ctx context.Context, r entities.MedicalRequest, expectedVersion int64) (entities.MedicalRequest, error)
	ListByPatientID(ctx context.Context, patientID string) ([]entities.MedicalRequest, error)
}
