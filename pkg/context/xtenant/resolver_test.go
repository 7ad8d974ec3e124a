package xtenant_test

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xtenancy/pkg/context/xtenant"
	"github.com/omeyang/xtenancy/pkg/observability/xlog"
)

func newTestResolver(t *testing.T, opts ...xtenant.ResolverOption) *xtenant.Resolver {
	t.Helper()
	paths := mustPathConfig(t, xtenant.PathRule{
		Prefix:      "/",
		HostPattern: regexp.MustCompile(`^([^.]+)\.example\.com$`),
		TenantGroup: 1,
	})
	return xtenant.NewResolver(paths, nil, opts...)
}

func bearer(tenant string) (string, any) {
	return "Bearer opaque", jwt.MapClaims{"subdomain": tenant}
}

func TestResolve_Table(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     xtenant.Request
		want    xtenant.Resolution
		wantErr error
	}{
		{
			name: "header and token equal",
			req:  xtenant.Request{Path: "/", ForwardedHost: "acme.example.com", Authorization: "Bearer x", Token: jwt.MapClaims{"subdomain": "acme"}},
			want: xtenant.Resolution{TenantID: "acme", Source: xtenant.SourceToken, Authenticated: true},
		},
		{
			name: "equal ignoring case",
			req:  xtenant.Request{Path: "/", ForwardedHost: "ACME.example.com", Authorization: "Bearer x", Token: jwt.MapClaims{"subdomain": "Acme"}},
			want: xtenant.Resolution{TenantID: "acme", Source: xtenant.SourceToken, Authenticated: true},
		},
		{
			name:    "header and token differ",
			req:     xtenant.Request{Path: "/", ForwardedHost: "acme.example.com", Authorization: "Bearer x", Token: jwt.MapClaims{"subdomain": "beta"}},
			wantErr: xtenant.ErrInvalidTenant,
		},
		{
			name: "token only is lower-cased",
			req:  xtenant.Request{Path: "/", Authorization: "Bearer x", Token: jwt.MapClaims{"subdomain": "ACME"}},
			want: xtenant.Resolution{TenantID: "acme", Source: xtenant.SourceToken, Authenticated: true},
		},
		{
			name: "header only",
			req:  xtenant.Request{Path: "/orders", ForwardedHost: "Beta.example.com"},
			want: xtenant.Resolution{TenantID: "beta", Source: xtenant.SourceHeader},
		},
		{
			name: "neither",
			req:  xtenant.Request{Path: "/"},
			want: xtenant.Resolution{},
		},
		{
			name: "blank forwarded host",
			req:  xtenant.Request{Path: "/", ForwardedHost: "   "},
			want: xtenant.Resolution{},
		},
		{
			name: "host not matching pattern",
			req:  xtenant.Request{Path: "/", ForwardedHost: "example.org"},
			want: xtenant.Resolution{},
		},
		{
			name:    "invalid header tenant",
			req:     xtenant.Request{Path: "/", ForwardedHost: "ac_me.example.com"},
			wantErr: xtenant.ErrInvalidTenantFormat,
		},
		{
			name: "lower-case bearer prefix",
			req:  xtenant.Request{Path: "/", Authorization: "bearer x", Token: jwt.MapClaims{"tenant_id": "acme"}},
			want: xtenant.Resolution{TenantID: "acme", Source: xtenant.SourceToken, Authenticated: true},
		},
		{
			name: "non-bearer authorization ignores token",
			req:  xtenant.Request{Path: "/", Authorization: "Basic abc", Token: jwt.MapClaims{"subdomain": "acme"}},
			want: xtenant.Resolution{},
		},
		{
			name:    "bearer without token",
			req:     xtenant.Request{Path: "/", Authorization: "Bearer x"},
			wantErr: xtenant.ErrNoToken,
		},
		{
			name:    "bearer with invalid claim",
			req:     xtenant.Request{Path: "/", Authorization: "Bearer x", Token: jwt.MapClaims{"subdomain": "bad tenant"}},
			wantErr: xtenant.ErrInvalidTenantFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(ctx, tt.req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, xtenant.Resolution{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_ConflictIndependentOfOrder(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	for _, pair := range [][2]string{{"acme", "beta"}, {"beta", "acme"}} {
		auth, tok := bearer(pair[1])
		_, err := r.Resolve(ctx, xtenant.Request{
			Path:          "/",
			ForwardedHost: pair[0] + ".example.com",
			Authorization: auth,
			Token:         tok,
		})
		var conflict *xtenant.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, xtenant.TenantID(pair[0]), conflict.Header)
		assert.Equal(t, xtenant.TenantID(pair[1]), conflict.Token)
	}
}

func TestResolve_TokenFailureIsProtected(t *testing.T) {
	cause := errors.New("claims unavailable")
	r := xtenant.NewResolver(nil, xtenant.ClaimExtractorFunc(func(context.Context, any) (string, error) {
		return "", cause
	}))

	_, err := r.Resolve(context.Background(), xtenant.Request{Authorization: "Bearer x", Token: "t"})
	require.Error(t, err)
	assert.ErrorIs(t, err, xtenant.ErrMissingTenant)
	assert.ErrorIs(t, err, cause)

	var missing *xtenant.MissingTenantError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, xtenant.MissingProtected, missing.Kind)
}

func TestResolve_EmptyClaimIsProtected(t *testing.T) {
	r := xtenant.NewResolver(nil, xtenant.ClaimExtractorFunc(func(context.Context, any) (string, error) {
		return "", nil
	}))
	_, err := r.Resolve(context.Background(), xtenant.Request{Authorization: "Bearer x", Token: "t"})
	assert.ErrorIs(t, err, xtenant.ErrMissingClaim)
	assert.Equal(t, 401, xtenant.HTTPStatus(err))
}

func TestResolve_NoTenantThenRequireIsPublic(t *testing.T) {
	r := newTestResolver(t)
	res, err := r.Resolve(context.Background(), xtenant.Request{Path: "/"})
	require.NoError(t, err)
	assert.False(t, res.HasTenant())

	_, err = res.Require()
	var missing *xtenant.MissingTenantError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, xtenant.MissingPublic, missing.Kind)
	assert.ErrorIs(t, err, xtenant.ErrMissingTenant)
}

func TestResolve_NilPathsIgnoresHeader(t *testing.T) {
	r := xtenant.NewResolver(nil, nil)
	res, err := r.Resolve(context.Background(), xtenant.Request{Path: "/", ForwardedHost: "acme.example.com"})
	require.NoError(t, err)
	assert.Equal(t, xtenant.Resolution{}, res)
}

func TestResolve_LogsConflictAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetFormat("json").SetLevel(xlog.LevelDebug).Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	r := newTestResolver(t, xtenant.WithResolverLogger(logger))
	auth, tok := bearer("beta")
	_, err = r.Resolve(context.Background(), xtenant.Request{
		Path:          "/",
		ForwardedHost: "acme.example.com",
		Authorization: auth,
		Token:         tok,
	})
	require.ErrorIs(t, err, xtenant.ErrInvalidTenant)

	out := buf.String()
	assert.True(t, strings.Contains(out, `"msg":"tenant conflict"`), out)
	assert.Contains(t, out, `"header_tenant":"acme"`)
	assert.Contains(t, out, `"token_tenant":"beta"`)
}

func TestResolution_Require(t *testing.T) {
	id, err := xtenant.Resolution{TenantID: "acme", Source: xtenant.SourceHeader}.Require()
	require.NoError(t, err)
	assert.Equal(t, xtenant.TenantID("acme"), id)

	_, err = xtenant.Resolution{Authenticated: true}.Require()
	var missing *xtenant.MissingTenantError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, xtenant.MissingProtected, missing.Kind)
}

func TestSource_String(t *testing.T) {
	for _, s := range []xtenant.Source{xtenant.SourceNone, xtenant.SourceHeader, xtenant.SourceToken} {
		assert.Equal(t, s, xtenant.ParseSource(s.String()))
	}
	assert.Equal(t, xtenant.SourceNone, xtenant.ParseSource("bogus"))
}
