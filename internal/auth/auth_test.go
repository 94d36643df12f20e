package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/pratofeito/pratofeito/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret")

	tests := []struct {
		name  string
		actor domain.Actor
	}{
		{"customer", domain.Actor{ID: 7, Role: domain.RoleCustomer}},
		{"restaurant owner", domain.Actor{ID: 99, Role: domain.RoleRestaurant}},
		{"admin", domain.Actor{ID: 1, Role: domain.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := manager.BuildToken(tt.actor)
			if err != nil {
				t.Fatalf("BuildToken() error = %v", err)
			}

			got, err := manager.ParseToken(token)
			if err != nil {
				t.Fatalf("ParseToken() error = %v", err)
			}
			if got != tt.actor {
				t.Errorf("ParseToken() = %+v, want %+v", got, tt.actor)
			}
		})
	}
}

func TestParseTokenRejections(t *testing.T) {
	manager := NewTokenManager("test-secret")
	other := NewTokenManager("other-secret")

	signed := func(m *TokenManager, claims Claims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, err := token.SignedString(m.secret)
		if err != nil {
			t.Fatalf("signing test token: %v", err)
		}
		return s
	}
	validClaims := func() Claims {
		return Claims{
			UserID: 7,
			Role:   domain.RoleCustomer,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ID:        uuid.New().String(),
			},
		}
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", signed(other, validClaims())},
		{"unknown role", signed(manager, func() Claims {
			c := validClaims()
			c.Role = "superuser"
			return c
		}())},
		{"missing user id", signed(manager, func() Claims {
			c := validClaims()
			c.UserID = 0
			return c
		}())},
		{"expired", signed(manager, func() Claims {
			c := validClaims()
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
			return c
		}())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ParseToken(tt.token); err == nil {
				t.Error("ParseToken() accepted an invalid token")
			}
		})
	}
}

func TestActorContextRoundTrip(t *testing.T) {
	actor := domain.Actor{ID: 7, Role: domain.RoleCustomer}

	ctx := WithActor(context.Background(), actor)
	got, ok := ActorFromContext(ctx)
	if !ok || got != actor {
		t.Errorf("ActorFromContext() = %+v, %v; want %+v, true", got, ok, actor)
	}

	if _, ok := ActorFromContext(context.Background()); ok {
		t.Error("ActorFromContext() reported an actor on an empty context")
	}
}
