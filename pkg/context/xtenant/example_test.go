package xtenant_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/golang-jwt/jwt/v5"

	"github.com/omeyang/xtenancy/pkg/context/xtenant"
)

// ExampleResolver_Resolve 演示 Header 与 token 的合并规则。
func ExampleResolver_Resolve() {
	paths, err := xtenant.NewPathConfig(xtenant.PathRule{
		Prefix:      "/",
		HostPattern: regexp.MustCompile(`^([a-z0-9-]+)\.example\.com$`),
		TenantGroup: 1,
	})
	if err != nil {
		fmt.Println("配置错误:", err)
		return
	}
	resolver := xtenant.NewResolver(paths, xtenant.NewJWTClaimsExtractor())
	ctx := context.Background()

	res, _ := resolver.Resolve(ctx, xtenant.Request{
		Path:          "/orders",
		ForwardedHost: "acme.example.com",
		Authorization: "Bearer <verified>",
		Token:         jwt.MapClaims{"subdomain": "ACME"},
	})
	fmt.Println(res.TenantID, res.Source)

	_, err = resolver.Resolve(ctx, xtenant.Request{
		Path:          "/orders",
		ForwardedHost: "acme.example.com",
		Authorization: "Bearer <verified>",
		Token:         jwt.MapClaims{"subdomain": "beta"},
	})
	fmt.Println(errors.Is(err, xtenant.ErrInvalidTenant), xtenant.HTTPStatus(err))

	// Output:
	// acme token
	// true 400
}

// ExampleRequireTenant 演示匿名请求缺失租户。
func ExampleRequireTenant() {
	ctx, _ := xtenant.Attach(context.Background(), xtenant.Resolution{})
	_, err := xtenant.RequireTenant(ctx)
	fmt.Println(err, xtenant.HTTPStatus(err))

	// Output:
	// xtenant: missing tenant (public) 400
}
