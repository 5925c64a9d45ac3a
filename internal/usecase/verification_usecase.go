package usecase

import (
	"context"
	"strings"
	"time"
	"unicode"

	"medrequest_xpto/internal/domain/accesscode"
	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

const auditVerificationFullView = "verification.full_view"

// PublicView is what anyone holding the document id may see.
type PublicView struct {
	ID              string
	Type            entities.RequestType
	Status          entities.RequestStatus
	IssuedAt        time.Time
	SignedAt        *time.Time
	Signed          bool
	DoctorName      string
	DoctorCRM       string
	PatientInitials string
}

// FullView requires the access code printed on the document.
type FullView struct {
	PublicView
	PatientName       string
	Medications       []string
	Exams             []string
	Notes             string
	SignedDocumentURL string
	SignatureID       string
}

type IVerificationUseCase interface {
	GetPublic(ctx context.Context, id string) (PublicView, error)
	GetFull(ctx context.Context, id, accessCode string) (FullView, error)
}

type VerificationUseCase struct {
	repo   interfaces.IMedicalRequestRepository
	audit  *AuditRecorder
	logger zerolog.Logger
}

var _ IVerificationUseCase = (*VerificationUseCase)(nil)

func NewVerificationUseCase(repo interfaces.IMedicalRequestRepository, audit *AuditRecorder, logger zerolog.Logger) *VerificationUseCase {
	return &VerificationUseCase{
		repo:   repo,
		audit:  audit,
		logger: logger.With().Str("component", "verification.usecase").Logger(),
	}
}

func (u *VerificationUseCase) GetPublic(ctx context.Context, id string) (PublicView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PublicView{}, ErrRequestNotFound
	}
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return PublicView{}, err
	}
	if r.ID == "" {
		return PublicView{}, ErrRequestNotFound
	}
	return publicView(r), nil
}

// GetFull answers ErrVerificationFailed both for unknown ids and wrong codes so the
// endpoint does not reveal which documents exist. Unsigned requests have no full view.
func (u *VerificationUseCase) GetFull(ctx context.Context, id, code string) (FullView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return FullView{}, ErrVerificationFailed
	}
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return FullView{}, err
	}
	if r.ID == "" || r.SignedAt == nil || !accesscode.Validate(r.AccessCode, code, r.ID) {
		u.logger.Info().Str("request_id", id).Msg("verification failed")
		return FullView{}, ErrVerificationFailed
	}

	u.audit.Record(ctx, AuditEntry{
		Actor:      entities.AnonymousActor,
		Action:     auditVerificationFullView,
		EntityType: entities.AuditEntityRequest,
		EntityID:   r.ID,
	})

	return FullView{
		PublicView:        publicView(r),
		PatientName:       r.PatientName,
		Medications:       r.Medications,
		Exams:             r.Exams,
		Notes:             r.Notes,
		SignedDocumentURL: deref(r.SignedDocumentURL),
		SignatureID:       deref(r.SignatureID),
	}, nil
}

func publicView(r entities.MedicalRequest) PublicView {
	return PublicView{
		ID:              r.ID,
		Type:            r.Type,
		Status:          r.Status,
		IssuedAt:        r.CreatedAt,
		SignedAt:        r.SignedAt,
		Signed:          r.SignedAt != nil,
		DoctorName:      deref(r.DoctorName),
		DoctorCRM:       deref(r.DoctorCRM),
		PatientInitials: Initials(r.PatientName),
	}
}

var nameParticles = map[string]bool{"da": true, "de": true, "do": true, "das": true, "dos": true, "e": true}

// Initials masks a full name: "Maria da Silva" becomes "M. S.".
func Initials(name string) string {
	var parts []string
	for _, w := range strings.Fields(name) {
		if nameParticles[strings.ToLower(w)] {
			continue
		}
		r := []rune(w)
		parts = append(parts, string(unicode.ToUpper(r[0]))+".")
	}
	return strings.Join(parts, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
