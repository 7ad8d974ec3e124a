package xtenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/baggage"

	"github.com/omeyang/xtenancy/pkg/context/xctx"
	"github.com/omeyang/xtenancy/pkg/context/xtenant"
)

func TestWithBaggage(t *testing.T) {
	other, err := baggage.NewMemberRaw("region", "eu")
	require.NoError(t, err)
	b, err := baggage.New(other)
	require.NoError(t, err)
	base := baggage.ContextWithBaggage(context.Background(), b)

	ctx, err := xtenant.WithBaggage(base, "acme")
	require.NoError(t, err)
	assert.Equal(t, xtenant.TenantID("acme"), xtenant.TenantIDFromBaggage(ctx))
	assert.Equal(t, "eu", baggage.FromContext(ctx).Member("region").Value())

	cleared := xtenant.WithoutBaggage(ctx)
	assert.Empty(t, xtenant.TenantIDFromBaggage(cleared))
	assert.Equal(t, "eu", baggage.FromContext(cleared).Member("region").Value())

	// 父 context 不受影响
	assert.Empty(t, xtenant.TenantIDFromBaggage(base))
}

func TestWithBaggage_EdgeCases(t *testing.T) {
	ctx := context.Background()

	got, err := xtenant.WithBaggage(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, ctx, got)

	//nolint:staticcheck // 验证 nil ctx
	_, err = xtenant.WithBaggage(nil, "acme")
	assert.ErrorIs(t, err, xctx.ErrNilContext)

	assert.Equal(t, ctx, xtenant.WithoutBaggage(ctx))
	//nolint:staticcheck // 验证 nil ctx
	assert.Nil(t, xtenant.WithoutBaggage(nil))
	//nolint:staticcheck // 验证 nil ctx
	assert.Empty(t, xtenant.TenantIDFromBaggage(nil))
}

func TestTenantIDFromBaggage_RejectsInvalid(t *testing.T) {
	m, err := baggage.NewMemberRaw(xtenant.BaggageKey, "bad tenant")
	require.NoError(t, err)
	b, err := baggage.New(m)
	require.NoError(t, err)

	ctx := baggage.ContextWithBaggage(context.Background(), b)
	assert.Empty(t, xtenant.TenantIDFromBaggage(ctx))
}
