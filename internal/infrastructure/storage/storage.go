// Package storage keeps signed documents.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage writes objects to a bucket. URLs are built from publicBaseURL when set,
// otherwise they are s3:// URIs.
type S3Storage struct {
	client        putObjectAPI
	bucket        string
	publicBaseURL string
	logger        zerolog.Logger
}

var _ interfaces.IDocumentStorage = (*S3Storage)(nil)

// NewS3Client builds an S3 client. endpoint is optional (MinIO, LocalStack) and forces path-style addressing.
func NewS3Client(cfg aws.Config, endpoint string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
}

func NewS3Storage(client putObjectAPI, bucket, publicBaseURL string, logger zerolog.Logger) *S3Storage {
	return &S3Storage{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger.With().Str("component", "storage.s3").Logger(),
	}
}

func (s *S3Storage) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("bucket", s.bucket).Str("key", key).Msg("put object failed")
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	s.logger.Info().Str("bucket", s.bucket).Str("key", key).Int("bytes", len(content)).Msg("document stored")
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

type Object struct {
	Content     []byte
	ContentType string
}

// MemoryStorage keeps objects in process memory for development and tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]Object
	baseURL string
}

var _ interfaces.IDocumentStorage = (*MemoryStorage)(nil)

var ErrObjectNotFound = errors.New("object not found")

func NewMemoryStorage(baseURL string) *MemoryStorage {
	if baseURL == "" {
		baseURL = "memory://documents"
	}
	return &MemoryStorage{objects: make(map[string]Object), baseURL: strings.TrimRight(baseURL, "/")}
}

func (m *MemoryStorage) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c := make([]byte, len(content))
	copy(c, content)
	m.mu.Lock()
	m.objects[key] = Object{Content: c, ContentType: contentType}
	m.mu.Unlock()
	return m.baseURL + "/" + key, nil
}

func (m *MemoryStorage) Get(key string) (Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	if !ok {
		return Object{}, ErrObjectNotFound
	}
	return o, nil
}
