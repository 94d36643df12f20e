package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/pratofeito/pratofeito/internal/domain"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID int         `json:"user_id"`
	Role   domain.Role `json:"role"`
}

type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// BuildToken issues an HS256 token for the given actor, valid for 24 hours.
// The marketplace core does not manage accounts; this exists for local
// development and tests.
func (m *TokenManager) BuildToken(actor domain.Actor) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: actor.ID,
		Role:   actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.New().String(),
		},
	})
	return token.SignedString(m.secret)
}

// ParseToken validates the token string and returns the actor it carries.
func (m *TokenManager) ParseToken(tokenString string) (domain.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secret, nil
		})
	if err != nil {
		return domain.Actor{}, fmt.Errorf("token error: %w", err)
	}
	if !token.Valid {
		return domain.Actor{}, fmt.Errorf("token is not valid")
	}

	switch claims.Role {
	case domain.RoleCustomer, domain.RoleRestaurant, domain.RoleAdmin:
	default:
		return domain.Actor{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	if claims.UserID <= 0 {
		return domain.Actor{}, fmt.Errorf("missing user id")
	}

	return domain.Actor{ID: claims.UserID, Role: claims.Role}, nil
}

type contextKey string

const actorKey contextKey = "actor"

// WithActor stores the authenticated actor on the request context.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext retrieves the actor placed by the auth middleware.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
