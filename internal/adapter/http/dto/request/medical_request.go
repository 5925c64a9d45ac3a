package request

import (
	"strings"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase"
)

// SubmitRequest is the patient-facing payload for a new medical request.
// The patient id always comes from the authenticated actor.
type SubmitRequest struct {
	Type        string   `json:"type" binding:"required"`
	Subtype     string   `json:"subtype"`
	PatientName string   `json:"patient_name"`
	Medications []string `json:"medications"`
	Exams       []string `json:"exams"`
	Symptoms    string   `json:"symptoms"`
	ImageURLs   []string `json:"image_urls"`
	Notes       string   `json:"notes"`
}

func (r SubmitRequest) ToInput(actor entities.Actor) usecase.SubmitInput {
	name := strings.TrimSpace(r.PatientName)
	if name == "" {
		name = actor.Name
	}
	return usecase.SubmitInput{
		Type:        entities.RequestType(strings.ToLower(strings.TrimSpace(r.Type))),
		Subtype:     strings.TrimSpace(r.Subtype),
		PatientID:   actor.ID,
		PatientName: name,
		Medications: r.Medications,
		Exams:       r.Exams,
		Symptoms:    r.Symptoms,
		ImageURLs:   r.ImageURLs,
		Notes:       r.Notes,
	}
}

type ReanalyzeRequest struct {
	ImageURLs []string `json:"image_urls"`
	Text      string   `json:"text"`
}

func (r ReanalyzeRequest) ToInput() usecase.ReanalyzeInput {
	return usecase.ReanalyzeInput{ImageURLs: r.ImageURLs, Text: r.Text}
}

// ApproveRequest lets the doctor override the name/CRM printed on the document.
type ApproveRequest struct {
	DoctorName string `json:"doctor_name"`
	DoctorCRM  string `json:"doctor_crm"`
}

func (r ApproveRequest) ToInput() usecase.ApproveInput {
	return usecase.ApproveInput{DoctorName: strings.TrimSpace(r.DoctorName), DoctorCRM: strings.TrimSpace(r.DoctorCRM)}
}

// ReasonRequest is shared by reject and cancel.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

type SignRequest struct {
	SignedDocumentURL   string `json:"signed_document_url"`
	SignatureID         string `json:"signature_id"`
	CertificateRef      string `json:"certificate_ref"`
	CertificatePassword string `json:"certificate_password"`
}

func (r SignRequest) ToInput() usecase.SignInput {
	return usecase.SignInput{
		SignedDocumentURL:   strings.TrimSpace(r.SignedDocumentURL),
		SignatureID:         strings.TrimSpace(r.SignatureID),
		CertificateRef:      strings.TrimSpace(r.CertificateRef),
		CertificatePassword: r.CertificatePassword,
	}
}

type FinishConsultationRequest struct {
	Notes string `json:"notes"`
}

type VerifyRequest struct {
	AccessCode string `json:"access_code" binding:"required"`
}
