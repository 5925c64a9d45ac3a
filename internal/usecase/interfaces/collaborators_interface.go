package interfaces

import (
	"context"

	"medrequest_xpto/internal/domain/entities"
)

type RenderedDocument struct {
	Content     []byte
	ContentType string
	Extension   string
}

type IDocumentRenderer interface {
	Render(ctx context.Context, r entities.MedicalRequest) (RenderedDocument, error)
}

type SignResult struct {
	SignatureID    string
	SignedDocument []byte
}

// ISigningService applies a digital signature with the doctor's certificate.
type ISigningService interface {
	Sign(ctx context.Context, document []byte, certificateRef, password string) (SignResult, error)
}

// IDocumentStorage stores signed artifacts and returns their URL.
type IDocumentStorage interface {
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
}

// INotificationSender delivers patient notifications. Callers never fail on its errors.
type INotificationSender interface {
	Notify(ctx context.Context, userID, title, body string) error
}

type VideoRoom struct {
	ID  string
	URL string
}

type IVideoRoomProvider interface {
	CreateRoom(ctx context.Context, requestID string) (VideoRoom, error)
}
