package repository

import (
	"context"
	"fmt"
	"strconv"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/infrastructure/database"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type medicalRequestItem struct {
	ID          string   `dynamodbav:"id"`
	Type        string   `dynamodbav:"type"`
	Subtype     string   `dynamodbav:"subtype"`
	Status      string   `dynamodbav:"status"`
	PatientID   string   `dynamodbav:"patient_id"`
	PatientName string   `dynamodbav:"patient_name"`
	DoctorID    *string  `dynamodbav:"doctor_id,omitempty"`
	DoctorName  *string  `dynamodbav:"doctor_name,omitempty"`
	DoctorCRM   *string  `dynamodbav:"doctor_crm,omitempty"`
	Medications []string `dynamodbav:"medications,omitempty"`
	Exams       []string `dynamodbav:"exams,omitempty"`
	Symptoms    string   `dynamodbav:"symptoms,omitempty"`
	ImageURLs   []string `dynamodbav:"image_urls,omitempty"`
	Notes       string   `dynamodbav:"notes,omitempty"`
	PriceCents  *int64   `dynamodbav:"price_cents,omitempty"`
	AccessCode  *string  `dynamodbav:"access_code,omitempty"`

	AISummary   *string        `dynamodbav:"ai_summary,omitempty"`
	AIRiskLevel *string        `dynamodbav:"ai_risk_level,omitempty"`
	AIExtracted map[string]any `dynamodbav:"ai_extracted,omitempty"`
	AIReadable  *bool          `dynamodbav:"ai_readable,omitempty"`
	AIMessage   *string        `dynamodbav:"ai_message,omitempty"`

	SignedAt          *string `dynamodbav:"signed_at,omitempty"`
	SignatureID       *string `dynamodbav:"signature_id,omitempty"`
	SignedDocumentURL *string `dynamodbav:"signed_document_url,omitempty"`

	VideoRoomURL           *string `dynamodbav:"video_room_url,omitempty"`
	ConsultationNotes      *string `dynamodbav:"consultation_notes,omitempty"`
	ConsultationStartedAt  *string `dynamodbav:"consultation_started_at,omitempty"`
	ConsultationFinishedAt *string `dynamodbav:"consultation_finished_at,omitempty"`

	RejectionReason    *string `dynamodbav:"rejection_reason,omitempty"`
	CancellationReason *string `dynamodbav:"cancellation_reason,omitempty"`

	Version   int64  `dynamodbav:"version"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// MedicalRequestDynamoRepository persists MedicalRequest aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: patient_id-index (PK: patient_id, SK: created_at)
//
// Updates are conditional on the stored version.
type MedicalRequestDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IMedicalRequestRepository = (*MedicalRequestDynamoRepository)(nil)

func NewMedicalRequestDynamoRepository(ddb DynamoAPI, tableName string) *MedicalRequestDynamoRepository {
	return &MedicalRequestDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *MedicalRequestDynamoRepository) Create(ctx context.Context, m entities.MedicalRequest) (entities.MedicalRequest, error) {
	if m.Version == 0 {
		m.Version = 1
	}
	av, err := attributevalue.MarshalMap(toMedicalRequestItem(m))
	if err != nil {
		return entities.MedicalRequest{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.MedicalRequest{}, interfaces.ErrDuplicateKey
		}
		return entities.MedicalRequest{}, err
	}
	return m, nil
}

func (r *MedicalRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.MedicalRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.MedicalRequest{}, nil
	}

	var it medicalRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.MedicalRequest{}, err
	}
	return fromMedicalRequestItem(it), nil
}

func (r *MedicalRequestDynamoRepository) Update(ctx context.Context, m entities.MedicalRequest, expectedVersion int64) (entities.MedicalRequest, error) {
	m.Version = expectedVersion + 1
	av, err := attributevalue.MarshalMap(toMedicalRequestItem(m))
	if err != nil {
		return entities.MedicalRequest{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.MedicalRequest{}, interfaces.ErrVersionConflict
		}
		return entities.MedicalRequest{}, fmt.Errorf("update request %s: %w", m.ID, err)
	}
	return m, nil
}

// ListByPatientID returns the newest requests first.
func (r *MedicalRequestDynamoRepository) ListByPatientID(ctx context.Context, patientID string) ([]entities.MedicalRequest, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.RequestsPatientIndex),
		KeyConditionExpression: aws.String("patient_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: patientID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.MedicalRequest, 0, len(raw))
	for _, av := range raw {
		var it medicalRequestItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		items = append(items, fromMedicalRequestItem(it))
	}
	return items, nil
}

func toMedicalRequestItem(m entities.MedicalRequest) medicalRequestItem {
	it := medicalRequestItem{
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
		AccessCode:             m.AccessCode,
		AISummary:              m.AISummary,
		AIRiskLevel:            m.AIRiskLevel,
		AIExtracted:            m.AIExtracted,
		AIReadable:             m.AIReadable,
		AIMessage:              m.AIMessage,
		SignedAt:               formatTimePtr(m.SignedAt),
		SignatureID:            m.SignatureID,
		SignedDocumentURL:      m.SignedDocumentURL,
		VideoRoomURL:           m.VideoRoomURL,
		ConsultationNotes:      m.ConsultationNotes,
		ConsultationStartedAt:  formatTimePtr(m.ConsultationStartedAt),
		ConsultationFinishedAt: formatTimePtr(m.ConsultationFinishedAt),
		RejectionReason:        m.RejectionReason,
		CancellationReason:     m.CancellationReason,
		Version:                m.Version,
		CreatedAt:              formatTime(m.CreatedAt),
		UpdatedAt:              formatTime(m.UpdatedAt),
	}
	if m.Price != nil {
		cents := m.Price.Cents()
		it.PriceCents = &cents
	}
	return it
}

func fromMedicalRequestItem(it medicalRequestItem) entities.MedicalRequest {
	m := entities.MedicalRequest{
		ID:                     it.ID,
		Type:                   entities.RequestType(it.Type),
		Subtype:                it.Subtype,
		Status:                 entities.RequestStatus(it.Status),
		PatientID:              it.PatientID,
		PatientName:            it.PatientName,
		DoctorID:               it.DoctorID,
		DoctorName:             it.DoctorName,
		DoctorCRM:              it.DoctorCRM,
		Medications:            it.Medications,
		Exams:                  it.Exams,
		Symptoms:               it.Symptoms,
		ImageURLs:              it.ImageURLs,
		Notes:                  it.Notes,
		AccessCode:             it.AccessCode,
		AISummary:              it.AISummary,
		AIRiskLevel:            it.AIRiskLevel,
		AIExtracted:            it.AIExtracted,
		AIReadable:             it.AIReadable,
		AIMessage:              it.AIMessage,
		SignedAt:               parseTimePtr(it.SignedAt),
		SignatureID:            it.SignatureID,
		SignedDocumentURL:      it.SignedDocumentURL,
		VideoRoomURL:           it.VideoRoomURL,
		ConsultationNotes:      it.ConsultationNotes,
		ConsultationStartedAt:  parseTimePtr(it.ConsultationStartedAt),
		ConsultationFinishedAt: parseTimePtr(it.ConsultationFinishedAt),
		RejectionReason:        it.RejectionReason,
		CancellationReason:     it.CancellationReason,
		Version:                it.Version,
		CreatedAt:              parseTime(it.CreatedAt),
		UpdatedAt:              parseTime(it.UpdatedAt),
	}
	if it.PriceCents != nil {
		if price, err := entities.NewMoneyFromCents(*it.PriceCents); err == nil {
			m.Price = &price
		}
	}
	return m
}
