package response

import (
	"time"

	"medrequest_xpto/internal/usecase"
)

type VerificationPublicResponse struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	Signed          bool       `json:"signed"`
	IssuedAt        time.Time  `json:"issued_at"`
	SignedAt        *time.Time `json:"signed_at,omitempty"`
	DoctorName      string     `json:"doctor_name,omitempty"`
	DoctorCRM       string     `json:"doctor_crm,omitempty"`
	PatientInitials string     `json:"patient_initials,omitempty"`
}

type VerificationFullResponse struct {
	VerificationPublicResponse
	PatientName       string   `json:"patient_name"`
	Medications       []string `json:"medications,omitempty"`
	Exams             []string `json:"exams,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	SignedDocumentURL string   `json:"signed_document_url,omitempty"`
	SignatureID       string   `json:"signature_id,omitempty"`
}

func FromPublicView(v usecase.PublicView) VerificationPublicResponse {
	return VerificationPublicResponse{
		ID:              v.ID,
		Type:            string(v.Type),
		Status:          string(v.Status),
		Signed:          v.Signed,
		IssuedAt:        v.IssuedAt,
		SignedAt:        v.SignedAt,
		DoctorName:      v.DoctorName,
		DoctorCRM:       v.DoctorCRM,
		PatientInitials: v.PatientInitials,
	}
}

func FromFullView(v usecase.FullView) VerificationFullResponse {
	return VerificationFullResponse{
		VerificationPublicResponse: FromPublicView(v.PublicView),
		PatientName:                v.PatientName,
		Medications:                v.Medications,
		Exams:                      v.Exams,
		Notes:                      v.Notes,
		SignedDocumentURL:          v.SignedDocumentURL,
		SignatureID:                v.SignatureID,
	}
}
