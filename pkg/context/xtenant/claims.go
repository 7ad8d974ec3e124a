package xtenant

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// 默认按顺序读取的租户声明。
const (
	ClaimSubdomain = "subdomain"
	ClaimTenantID  = "tenant_id"
)

// ClaimsExtractor 从上游已验证的 token 中读取租户声明。
// 实现不得校验签名，token 为 nil 时返回 ErrNoToken。
type ClaimsExtractor interface {
	TenantClaim(ctx context.Context, token any) (string, error)
}

// ClaimExtractorFunc 函数适配器。
type ClaimExtractorFunc func(ctx context.Context, token any) (string, error)

// TenantClaim 实现 ClaimsExtractor。
func (f ClaimExtractorFunc) TenantClaim(ctx context.Context, token any) (string, error) {
	return f(ctx, token)
}

// TenantClaimer 由自定义 token/claims 类型实现，直接给出租户声明。
type TenantClaimer interface {
	TenantClaim() string
}

type jwtClaimsExtractor struct {
	claims []string
}

// NewJWTClaimsExtractor 返回读取 golang-jwt token 的 ClaimsExtractor。
//
// 支持 *jwt.Token、jwt.MapClaims、map[string]any 与 TenantClaimer。
// claims 为空时依次读取 "subdomain" 与 "tenant_id"，取第一个非空字符串。
func NewJWTClaimsExtractor(claims ...string) ClaimsExtractor {
	if len(claims) == 0 {
		claims = []string{ClaimSubdomain, ClaimTenantID}
	}
	return &jwtClaimsExtractor{claims: claims}
}

// TenantClaim 实现 ClaimsExtractor。
func (e *jwtClaimsExtractor) TenantClaim(_ context.Context, token any) (string, error) {
	if tok, ok := token.(*jwt.Token); ok {
		if tok == nil {
			return "", ErrNoToken
		}
		token = tok.Claims
	}

	switch c := token.(type) {
	case nil:
		return "", ErrNoToken
	case TenantClaimer:
		return nonEmptyClaim(c.TenantClaim())
	case jwt.MapClaims:
		return e.fromMap(c)
	case map[string]any:
		return e.fromMap(c)
	default:
		return "", fmt.Errorf("%w: unsupported claims type %T", ErrMissingClaim, token)
	}
}

func (e *jwtClaimsExtractor) fromMap(m map[string]any) (string, error) {
	for _, name := range e.claims {
		if s, ok := m[name].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), nil
		}
	}
	return "", fmt.Errorf("%w: %v", ErrMissingClaim, e.claims)
}

func nonEmptyClaim(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrMissingClaim
	}
	return s, nil
}
