package postgres

import (
	"context"
	"errors"
	"fmt"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
)

const requestCols = `id, type, subtype, status, patient_id, patient_name, doctor_id, doctor_name, doctor_crm,
	medications, exams, symptoms, image_urls, notes, price_cents, access_code,
	ai_summary, ai_risk_level, ai_extracted, ai_readable, ai_message,
	signed_at, signature_id, signed_document_url,
	video_room_url, consultation_notes, consultation_started_at, consultation_finished_at,
	rejection_reason, cancellation_reason, version, created_at, updated_at`

type MedicalRequestRepository struct{ db queryable }

var _ interfaces.IMedicalRequestRepository = (*MedicalRequestRepository)(nil)

func (r *MedicalRequestRepository) Create(ctx context.Context, m entities.MedicalRequest) (entities.MedicalRequest, error) {
	if m.Version == 0 {
		m.Version = 1
	}
	_, err := r.db.Exec(ctx, `INSERT INTO medical_requests (`+requestCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33)`,
		requestArgs(m)...)
	if _, ok := uniqueConstraint(err); ok {
		return entities.MedicalRequest{}, interfaces.ErrDuplicateKey
	}
	if err != nil {
		return entities.MedicalRequest{}, fmt.Errorf("insert request: %w", err)
	}
	return m, nil
}

func (r *MedicalRequestRepository) GetByID(ctx context.Context, id string) (entities.MedicalRequest, error) {
	m, err := scanRequest(r.db.QueryRow(ctx, `SELECT `+requestCols+` FROM medical_requests WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.MedicalRequest{}, nil
	}
	return m, err
}

// Update rewrites the aggregate when the stored version matches.
func (r *MedicalRequestRepository) Update(ctx context.Context, m entities.MedicalRequest, expectedVersion int64) (entities.MedicalRequest, error) {
	m.Version = expectedVersion + 1
	args := append(requestArgs(m), expectedVersion)
	tag, err := r.db.Exec(ctx, `UPDATE medical_requests SET
		type=$2, subtype=$3, status=$4, patient_id=$5, patient_name=$6, doctor_id=$7, doctor_name=$8, doctor_crm=$9,
		medications=$10, exams=$11, symptoms=$12, image_urls=$13, notes=$14, price_cents=$15, access_code=$16,
		ai_summary=$17, ai_risk_level=$18, ai_extracted=$19, ai_readable=$20, ai_message=$21,
		signed_at=$22, signature_id=$23, signed_document_url=$24,
		video_room_url=$25, consultation_notes=$26, consultation_started_at=$27, consultation_finished_at=$28,
		rejection_reason=$29, cancellation_reason=$30, version=$31, created_at=$32, updated_at=$33
		WHERE id = $1 AND version = $34`, args...)
	if err != nil {
		return entities.MedicalRequest{}, fmt.Errorf("update request %s: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.MedicalRequest{}, interfaces.ErrVersionConflict
	}
	return m, nil
}

func (r *MedicalRequestRepository) ListByPatientID(ctx context.Context, patientID string) ([]entities.MedicalRequest, error) {
	rows, err := r.db.Query(ctx, `SELECT `+requestCols+` FROM medical_requests WHERE patient_id = $1 ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.MedicalRequest
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func requestArgs(m entities.MedicalRequest) []any {
	var price *int64
	if m.Price != nil {
		c := m.Price.Cents()
		price = &c
	}
	return []any{
		m.ID, string(m.Type), m.Subtype, string(m.Status), m.PatientID, m.PatientName, m.DoctorID, m.DoctorName, m.DoctorCRM,
		m.Medications, m.Exams, m.Symptoms, m.ImageURLs, m.Notes, price, m.AccessCode,
		m.AISummary, m.AIRiskLevel, m.AIExtracted, m.AIReadable, m.AIMessage,
		m.SignedAt, m.SignatureID, m.SignedDocumentURL,
		m.VideoRoomURL, m.ConsultationNotes, m.ConsultationStartedAt, m.ConsultationFinishedAt,
		m.RejectionReason, m.CancellationReason, m.Version, m.CreatedAt, m.UpdatedAt,
	}
}

func scanRequest(row pgx.Row) (entities.MedicalRequest, error) {
	var (
		m           entities.MedicalRequest
		typ, status string
		price       *int64
	)
	err := row.Scan(&m.ID, &typ, &m.Subtype, &status, &m.PatientID, &m.PatientName, &m.DoctorID, &m.DoctorName, &m.DoctorCRM,
		&m.Medications, &m.Exams, &m.Symptoms, &m.ImageURLs, &m.Notes, &price, &m.AccessCode,
		&m.AISummary, &m.AIRiskLevel, &m.AIExtracted, &m.AIReadable, &m.AIMessage,
		&m.SignedAt, &m.SignatureID, &m.SignedDocumentURL,
		&m.VideoRoomURL, &m.ConsultationNotes, &m.ConsultationStartedAt, &m.ConsultationFinishedAt,
		&m.RejectionReason, &m.CancellationReason, &m.Version, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	m.Type = entities.RequestType(typ)
	m.Status = entities.RequestStatus(status)
	if price != nil {
		p, err := entities.NewMoneyFromCents(*price)
		if err != nil {
			return entities.MedicalRequest{}, err
		}
		m.Price = &p
	}
	return m, nil
}
