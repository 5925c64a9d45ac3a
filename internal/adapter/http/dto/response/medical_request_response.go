package response

import (
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase"
)

// MedicalRequestResponse never exposes the access code.
type MedicalRequestResponse struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Subtype     string   `json:"subtype,omitempty"`
	Status      string   `json:"status"`
	PatientID   string   `json:"patient_id"`
	PatientName string   `json:"patient_name"`
	DoctorID    *string  `json:"doctor_id,omitempty"`
	DoctorName  *string  `json:"doctor_name,omitempty"`
	DoctorCRM   *string  `json:"doctor_crm,omitempty"`
	Medications []string `json:"medications,omitempty"`
	Exams       []string `json:"exams,omitempty"`
	Symptoms    string   `json:"symptoms,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Price       *float64 `json:"price,omitempty"`

	AISummary   *string        `json:"ai_summary,omitempty"`
	AIRiskLevel *string        `json:"ai_risk_level,omitempty"`
	AIExtracted map[string]any `json:"ai_extracted,omitempty"`
	AIReadable  *bool          `json:"ai_readable,omitempty"`
	AIMessage   *string        `json:"ai_message,omitempty"`

	SignedAt          *time.Time `json:"signed_at,omitempty"`
	SignatureID       *string    `json:"signature_id,omitempty"`
	SignedDocumentURL *string    `json:"signed_document_url,omitempty"`

	VideoRoomURL           *string    `json:"video_room_url,omitempty"`
	ConsultationNotes      *string    `json:"consultation_notes,omitempty"`
	ConsultationStartedAt  *time.Time `json:"consultation_started_at,omitempty"`
	ConsultationFinishedAt *time.Time `json:"consultation_finished_at,omitempty"`

	RejectionReason    *string `json:"rejection_reason,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromMedicalRequest(m entities.MedicalRequest) MedicalRequestResponse {
	res := MedicalRequestResponse{
		ID:                     m.ID,
		Type:                   string(m.Type),
		Subtype:                m.Subtype,
		Status:                 string(m.Status),
		PatientID:              m.PatientID,
		PatientName:            m.PatientName,
		DoctorID:               m.DoctorID,
		DoctorName:             m.DoctorName,
		DoctorCRM:              m.DoctorCRM,
		Medications:            m.Medications,
		Exams:                  m.Exams,
		Symptoms:               m.Symptoms,
		ImageURLs:              m.ImageURLs,
		Notes:                  m.Notes,
		AISummary:              m.AISummary,
		AIRiskLevel:            m.AIRiskLevel,
		AIExtracted:            m.AIExtracted,
		AIReadable:             m.AIReadable,
		AIMessage:              m.AIMessage,
		SignedAt:               m.SignedAt,
		SignatureID:            m.SignatureID,
		SignedDocumentURL:      m.SignedDocumentURL,
		VideoRoomURL:           m.VideoRoomURL,
		ConsultationNotes:      m.ConsultationNotes,
		ConsultationStartedAt:  m.ConsultationStartedAt,
		ConsultationFinishedAt: m.ConsultationFinishedAt,
		RejectionReason:        m.RejectionReason,
		CancellationReason:     m.CancellationReason,
		Version:                m.Version,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
	if m.Price != nil {
		v := m.Price.Float64()
		res.Price = &v
	}
	return res
}

func FromMedicalRequests(list []entities.MedicalRequest) []MedicalRequestResponse {
	out := make([]MedicalRequestResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMedicalRequest(m))
	}
	return out
}

// SubmitResponse reports AI gate rejection as data, not as an error status.
type SubmitResponse struct {
	Request          MedicalRequestResponse `json:"request"`
	ResubmitRequired bool                   `json:"resubmit_required"`
	Message          string                 `json:"message,omitempty"`
}

func FromSubmitResult(r usecase.SubmitResult) SubmitResponse {
	return SubmitResponse{
		Request:          FromMedicalRequest(r.Request),
		ResubmitRequired: r.ResubmitRequired,
		Message:          r.Message,
	}
}
