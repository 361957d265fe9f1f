package utils

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("secret", "64b7f0c2a1b2c3d4e5f60718", KindUser, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ValidateJWT("secret", token)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	if claims.ID != "64b7f0c2a1b2c3d4e5f60718" || claims.Kind != KindUser {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ValidateJWT("other-secret", token); err == nil {
		t.Error("token validated with the wrong secret")
	}
}

func TestValidateJWTRejects(t *testing.T) {
	expired, err := GenerateJWT("secret", "abc", KindUser, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{ID: "abc"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"alg none", none},
		{"garbage", "not.a.token"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateJWT("secret", tt.token); err == nil {
				t.Errorf("ValidateJWT(%s) succeeded", tt.name)
			}
		})
	}

	if _, err := GenerateJWT("", "abc", KindUser, time.Hour); err == nil {
		t.Error("GenerateJWT() with empty secret succeeded")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckPassword(hash, "secret1"); err != nil {
		t.Errorf("CheckPassword() correct password err = %v", err)
	}
	if err := CheckPassword(hash, "secret2"); err == nil {
		t.Error("CheckPassword() accepted the wrong password")
	}
}

func TestGenerateQueryCacheKey(t *testing.T) {
	a := GenerateQueryCacheKey("listings:v1", map[string]string{"type": "rent", "limit": "9"})
	b := GenerateQueryCacheKey("listings:v1", map[string]string{"limit": "9", "type": "rent"})
	if a != b {
		t.Errorf("keys differ for identical params: %s vs %s", a, b)
	}
	if c := GenerateQueryCacheKey("listings:v2", map[string]string{"type": "rent", "limit": "9"}); c == a {
		t.Error("version bump did not change the key")
	}
	if d := GenerateQueryCacheKey("listings:v1", map[string]string{"type": "sale", "limit": "9"}); d == a {
		t.Error("different params produced the same key")
	}
}

func TestRequestValidator(t *testing.T) {
	type request struct {
		Name  string  `json:"name" validate:"required"`
		Type  string  `json:"type" validate:"required,oneof=sale rent"`
		Price float64 `json:"price" validate:"gte=0"`
		Email string  `json:"email" validate:"omitempty,email"`
	}

	tests := []struct {
		name    string
		input   request
		message string
	}{
		{"valid", request{Name: "House", Type: "sale"}, ""},
		{"missing name", request{Type: "sale"}, "name is required"},
		{"bad type", request{Name: "House", Type: "lease"}, "type must be one of: sale rent"},
		{"negative price", request{Name: "House", Type: "rent", Price: -1}, "price must be greater than or equal to 0"},
		{"bad email", request{Name: "House", Type: "rent", Email: "nope"}, "email must be a valid email"},
	}

	v := NewRequestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)
			if tt.message == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			var appErr *AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Validate() error = %v, want *AppError", err)
			}
			if appErr.Status != http.StatusBadRequest || appErr.Message != tt.message {
				t.Errorf("Validate() = %d %q, want 400 %q", appErr.Status, appErr.Message, tt.message)
			}
		})
	}
}
