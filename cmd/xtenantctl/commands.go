package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/xtenancy/pkg/context/xtenant"
	"github.com/omeyang/xtenancy/pkg/observability/xlog"
)

// exitError 表示命令已完成输出，只需设置非零退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 表示参数错误。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// =============================================================================
// validate
// =============================================================================

func createValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "校验租户 ID 格式",
		ArgsUsage: "<id>...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdValidate(cmd.Root().Writer, cmd.Args().Slice())
		},
	}
}

func cmdValidate(w io.Writer, ids []string) error {
	if len(ids) == 0 {
		return &usageError{msg: "validate 需要至少一个租户 ID"}
	}
	failed := false
	for _, id := range ids {
		normalized, err := xtenant.NormalizeTenantID(id)
		if err != nil {
			failed = true
			fmt.Fprintf(w, "%q\tinvalid\n", id)
			continue
		}
		fmt.Fprintf(w, "%s\tok\n", normalized)
	}
	if failed {
		return &exitError{code: 1}
	}
	return nil
}

// =============================================================================
// paths
// =============================================================================

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "包含 tenant_paths 的配置文件（yaml/json）",
		Required: true,
	}
}

func createPathsCommand() *cli.Command {
	return &cli.Command{
		Name:  "paths",
		Usage: "列出路径规则（按匹配优先级排序）",
		Flags: []cli.Flag{configFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdPaths(cmd.Root().Writer, cmd.String("config"))
		},
	}
}

func cmdPaths(w io.Writer, path string) error {
	paths, err := xtenant.LoadPathConfig(path)
	if err != nil {
		return err
	}
	for _, rule := range paths.Rules() {
		fmt.Fprintf(w, "%s\t%s\tgroup=%d\n", rule.Prefix, rule.HostPattern, rule.TenantGroup)
	}
	return nil
}

// =============================================================================
// resolve
// =============================================================================

func createResolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "按配置解析一次请求的租户",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "path",
				Usage: "请求路径",
				Value: "/",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "X-Forwarded-Host 头的值",
			},
			&cli.StringFlag{
				Name:  "token-tenant",
				Usage: "模拟已验证 bearer token 中的 subdomain 声明",
			},
			&cli.BoolFlag{
				Name:  "bearer",
				Usage: "携带 bearer 凭证（未指定 --token-tenant 时声明缺失）",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in := resolveInput{
				configPath:  cmd.String("config"),
				path:        cmd.String("path"),
				host:        cmd.String("host"),
				tokenTenant: cmd.String("token-tenant"),
				bearer:      cmd.Bool("bearer") || cmd.IsSet("token-tenant"),
			}
			errw := cmd.Root().ErrWriter
			if errw == nil {
				errw = os.Stderr
			}
			logger, closeLog, err := newLogger(errw, cmd.Root().Bool("verbose"))
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeLog(); cerr != nil {
					fmt.Fprintf(errw, "关闭日志失败: %v\n", cerr)
				}
			}()
			return cmdResolve(ctx, cmd.Root().Writer, logger, in)
		},
	}
}

type resolveInput struct {
	configPath  string
	path        string
	host        string
	tokenTenant string
	bearer      bool
}

func (in resolveInput) request() xtenant.Request {
	req := xtenant.Request{
		Path:          in.path,
		ForwardedHost: in.host,
	}
	if in.bearer {
		req.Authorization = "Bearer xtenantctl"
		claims := jwt.MapClaims{}
		if in.tokenTenant != "" {
			claims[xtenant.ClaimSubdomain] = in.tokenTenant
		}
		req.Token = claims
	}
	return req
}

func cmdResolve(ctx context.Context, w io.Writer, logger xlog.Logger, in resolveInput) error {
	paths, err := xtenant.LoadPathConfig(in.configPath)
	if err != nil {
		return err
	}

	resolver := xtenant.NewResolver(paths, nil, xtenant.WithResolverLogger(logger))
	res, err := resolver.Resolve(ctx, in.request())
	if err != nil {
		fmt.Fprintf(w, "error\t%v\nstatus\t%d\n", err, xtenant.HTTPStatus(err))
		return &exitError{code: 1}
	}

	tenant := res.TenantID.String()
	if tenant == "" {
		tenant = "-"
	}
	fmt.Fprintf(w, "tenant\t%s\nsource\t%s\nauthenticated\t%t\n", tenant, res.Source, res.Authenticated)

	if _, err := res.Require(); err != nil {
		fmt.Fprintf(w, "require\t%v (%d)\n", err, xtenant.HTTPStatus(err))
	}
	return nil
}

// newLogger 创建输出到 w 的文本 logger，返回的 cleanup 须在命令结束时调用。
func newLogger(w io.Writer, verbose bool) (xlog.Logger, func() error, error) {
	level := xlog.LevelWarn
	if verbose {
		level = xlog.LevelDebug
	}
	logger, cleanup, err := xlog.New().SetOutput(w).SetFormat("text").SetLevel(level).Build()
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, cleanup, nil
}
