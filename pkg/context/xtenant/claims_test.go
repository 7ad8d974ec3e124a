package xtenant_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xtenancy/pkg/context/xtenant"
)

type customClaims struct {
	jwt.RegisteredClaims
	Org string
}

func (c customClaims) TenantClaim() string { return c.Org }

func TestJWTClaimsExtractor(t *testing.T) {
	ctx := context.Background()
	ex := xtenant.NewJWTClaimsExtractor()

	tests := []struct {
		name    string
		token   any
		want    string
		wantErr error
	}{
		{"jwt token subdomain", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"subdomain": "acme"}), "acme", nil},
		{"map claims tenant_id fallback", jwt.MapClaims{"tenant_id": "beta"}, "beta", nil},
		{"subdomain wins", jwt.MapClaims{"subdomain": "acme", "tenant_id": "beta"}, "acme", nil},
		{"blank subdomain falls back", jwt.MapClaims{"subdomain": " ", "tenant_id": "beta"}, "beta", nil},
		{"plain map", map[string]any{"subdomain": " acme "}, "acme", nil},
		{"custom claimer", customClaims{Org: "gamma"}, "gamma", nil},
		{"custom claimer in token", jwt.NewWithClaims(jwt.SigningMethodHS256, customClaims{Org: "delta"}), "delta", nil},
		{"custom claimer empty", customClaims{}, "", xtenant.ErrMissingClaim},
		{"non-string claim", jwt.MapClaims{"subdomain": 42}, "", xtenant.ErrMissingClaim},
		{"missing claim", jwt.MapClaims{"sub": "user"}, "", xtenant.ErrMissingClaim},
		{"registered claims", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u"}), "", xtenant.ErrMissingClaim},
		{"nil token", nil, "", xtenant.ErrNoToken},
		{"nil jwt pointer", (*jwt.Token)(nil), "", xtenant.ErrNoToken},
		{"unsupported", "raw-string", "", xtenant.ErrMissingClaim},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ex.TenantClaim(ctx, tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJWTClaimsExtractor_CustomClaimNames(t *testing.T) {
	ex := xtenant.NewJWTClaimsExtractor("org")
	got, err := ex.TenantClaim(context.Background(), jwt.MapClaims{"org": "acme", "subdomain": "other"})
	require.NoError(t, err)
	assert.Equal(t, "acme", got)

	_, err = ex.TenantClaim(context.Background(), jwt.MapClaims{"subdomain": "other"})
	assert.ErrorIs(t, err, xtenant.ErrMissingClaim)
}

func TestClaimExtractorFunc(t *testing.T) {
	fn := xtenant.ClaimExtractorFunc(func(_ context.Context, token any) (string, error) {
		return token.(string), nil
	})
	got, err := fn.TenantClaim(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", got)
}
