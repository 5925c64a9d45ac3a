// Package video provisions consultation rooms.
package video

import (
	"context"
	"errors"
	"strings"

	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrRoomProviderNotConfigured = errors.New("video room base url not configured")

// StaticRoomProvider builds room URLs under a fixed base, one unguessable room per call.
type StaticRoomProvider struct {
	baseURL string
}

var _ interfaces.IVideoRoomProvider = (*StaticRoomProvider)(nil)

func NewStaticRoomProvider(baseURL string) *StaticRoomProvider {
	return &StaticRoomProvider{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

func (p *StaticRoomProvider) CreateRoom(ctx context.Context, requestID string) (interfaces.VideoRoom, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.VideoRoom{}, err
	}
	if p.baseURL == "" {
		return interfaces.VideoRoom{}, ErrRoomProviderNotConfigured
	}
	id := "consulta-" + requestID + "-" + uuid.NewString()[:8]
	return interfaces.VideoRoom{ID: id, URL: p.baseURL + "/" + id}, nil
}
