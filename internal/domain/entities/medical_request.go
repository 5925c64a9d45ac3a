package entities

import "time"

// RequestType identifies the product flow a request follows.
type RequestType string

const (
	RequestTypePrescription RequestType = "prescription"
	RequestTypeExam         RequestType = "exam"
	RequestTypeConsultation RequestType = "consultation"
)

func (t RequestType) Valid() bool {
	switch t {
	case RequestTypePrescription, RequestTypeExam, RequestTypeConsultation:
		return true
	}
	return false
}

// RequestStatus is the position of a request in the lifecycle graph.
//
// Legal moves between statuses live in internal/domain/workflow.
type RequestStatus string

const (
	RequestStatusSubmitted              RequestStatus = "submitted"
	RequestStatusInReview               RequestStatus = "in_review"
	RequestStatusApprovedPendingPayment RequestStatus = "approved_pending_payment"
	RequestStatusPaid                   RequestStatus = "paid"
	RequestStatusSigned                 RequestStatus = "signed"
	RequestStatusDelivered              RequestStatus = "delivered"
	RequestStatusRejected               RequestStatus = "rejected"
	RequestStatusCancelled              RequestStatus = "cancelled"
	RequestStatusSearchingDoctor        RequestStatus = "searching_doctor"
	RequestStatusConsultationReady      RequestStatus = "consultation_ready"
	RequestStatusInConsultation         RequestStatus = "in_consultation"
	RequestStatusConsultationFinished   RequestStatus = "consultation_finished"
)

// AllRequestStatuses lists every status, in lifecycle order.
var AllRequestStatuses = []RequestStatus{
	RequestStatusSubmitted,
	RequestStatusInReview,
	RequestStatusApprovedPendingPayment,
	RequestStatusPaid,
	RequestStatusSigned,
	RequestStatusDelivered,
	RequestStatusRejected,
	RequestStatusCancelled,
	RequestStatusSearchingDoctor,
	RequestStatusConsultationReady,
	RequestStatusInConsultation,
	RequestStatusConsultationFinished,
}

// MedicalRequest is the aggregate root of the lifecycle engine.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (patient_id-index): patient_id
//
// Price is set once (doctor approval, or quote for consultations) and never changes afterwards.
// AccessCode is assigned lazily at signing and never changes afterwards: it is printed on the
// signed document and encoded in its QR code.
type MedicalRequest struct {
	ID      string        `json:"id"`
	Type    RequestType   `json:"type"`
	Subtype string        `json:"subtype"`
	Status  RequestStatus `json:"status"`

	PatientID   string  `json:"patient_id"`
	PatientName string  `json:"patient_name"`
	DoctorID    *string `json:"doctor_id,omitempty"`
	DoctorName  *string `json:"doctor_name,omitempty"`
	DoctorCRM   *string `json:"doctor_crm,omitempty"`

	// Type-specific payload; opaque to the state machine.
	Medications []string `json:"medications,omitempty"`
	Exams       []string `json:"exams,omitempty"`
	Symptoms    string   `json:"symptoms,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
	Notes       string   `json:"notes,omitempty"`

	Price      *Money  `json:"-"`
	AccessCode *string `json:"-"`

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

// Clone returns a deep copy so stores and callers never share mutable state.
func (r MedicalRequest) Clone() MedicalRequest {
	c := r
	c.DoctorID = cloneString(r.DoctorID)
	c.DoctorName = cloneString(r.DoctorName)
	c.DoctorCRM = cloneString(r.DoctorCRM)
	c.Medications = cloneStrings(r.Medications)
	c.Exams = cloneStrings(r.Exams)
	c.ImageURLs = cloneStrings(r.ImageURLs)
	if r.Price != nil {
		p := *r.Price
		c.Price = &p
	}
	c.AccessCode = cloneString(r.AccessCode)
	c.AISummary = cloneString(r.AISummary)
	c.AIRiskLevel = cloneString(r.AIRiskLevel)
	c.AIMessage = cloneString(r.AIMessage)
	if r.AIReadable != nil {
		v := *r.AIReadable
		c.AIReadable = &v
	}
	if r.AIExtracted != nil {
		c.AIExtracted = make(map[string]any, len(r.AIExtracted))
		for k, v := range r.AIExtracted {
			c.AIExtracted[k] = v
		}
	}
	c.SignedAt = cloneTime(r.SignedAt)
	c.SignatureID = cloneString(r.SignatureID)
	c.SignedDocumentURL = cloneString(r.SignedDocumentURL)
	c.VideoRoomURL = cloneString(r.VideoRoomURL)
	c.ConsultationNotes = cloneString(r.ConsultationNotes)
	c.ConsultationStartedAt = cloneTime(r.ConsultationStartedAt)
	c.ConsultationFinishedAt = cloneTime(r.ConsultationFinishedAt)
	c.RejectionReason = cloneString(r.RejectionReason)
	c.CancellationReason = cloneString(r.CancellationReason)
	return c
}

// Snapshot is the audit representation of the fields a transition may touch.
func (r MedicalRequest) Snapshot() map[string]any {
	s := map[string]any{
		"status":  string(r.Status),
		"version": r.Version,
	}
	if r.Price != nil {
		s["price"] = r.Price.String()
	}
	if r.DoctorID != nil {
		s["doctor_id"] = *r.DoctorID
	}
	if r.SignatureID != nil {
		s["signature_id"] = *r.SignatureID
	}
	if r.AIReadable != nil {
		s["ai_readable"] = *r.AIReadable
	}
	return s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// StringPtr is a small helper for optional fields.
func StringPtr(s string) *string { return &s }
