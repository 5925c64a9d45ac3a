package middleware

import (
	"net/http"
	"strings"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	actorKey = "actor"

	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
	HeaderActorName = "X-Actor-Name"
	HeaderActorCRM  = "X-Actor-CRM"
)

var errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)

// Claims is the token issued by the identity provider in front of this service.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	Name string `json:"name"`
	CRM  string `json:"crm"`
}

type ActorConfig struct {
	// SigningKey validates HS256 bearer tokens. Empty disables token auth.
	SigningKey []byte
	// AllowHeaders accepts X-Actor-* headers. Development only.
	AllowHeaders bool
}

// Actor resolves the caller and stores it on the gin context. Unauthenticated callers
// become the anonymous actor; RequireActor rejects them on protected groups.
func Actor(cfg ActorConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := entities.AnonymousActor

		if header := c.GetHeader("Authorization"); header != "" && len(cfg.SigningKey) > 0 {
			parsed, err := parseBearer(header, cfg.SigningKey)
			if err != nil {
				c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.WithDetails(map[string]any{"reason": "invalid token"}).ToHTTPError())
				return
			}
			actor = parsed
		} else if cfg.AllowHeaders && c.GetHeader(HeaderActorID) != "" {
			actor = entities.Actor{
				ID:   strings.TrimSpace(c.GetHeader(HeaderActorID)),
				Role: entities.Role(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderActorRole)))),
				Name: strings.TrimSpace(c.GetHeader(HeaderActorName)),
				CRM:  strings.TrimSpace(c.GetHeader(HeaderActorCRM)),
			}
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireActor rejects anonymous callers and callers with an unknown role.
// The system role is reserved for the engine and cannot be claimed over HTTP.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor.ID == "" || !actor.Role.Valid() || actor.IsSystem() {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		c.Next()
	}
}

func ActorFrom(c *gin.Context) entities.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(entities.Actor); ok {
			return actor
		}
	}
	return entities.AnonymousActor
}

func parseBearer(header string, key []byte) (entities.Actor, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return entities.Actor{}, jwt.ErrTokenMalformed
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return entities.Actor{}, err
	}
	if !token.Valid {
		return entities.Actor{}, jwt.ErrTokenSignatureInvalid
	}

	return entities.Actor{
		ID:   claims.Subject,
		Role: entities.Role(strings.ToLower(claims.Role)),
		Name: claims.Name,
		CRM:  claims.CRM,
	}, nil
}
