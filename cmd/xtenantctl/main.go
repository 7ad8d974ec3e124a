// xtenantctl 是租户解析规则的命令行调试工具。
//
// 用法:
//
//	xtenantctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-v, --verbose  输出 Debug 日志到 stderr
//
// 命令:
//
//	validate <id>...   校验租户 ID 格式并输出规范化结果
//	paths              列出配置文件中的路径规则（按匹配优先级排序）
//	resolve            按配置解析一次请求的租户
//
// 退出码:
//
//	0: 成功
//	1: 校验失败或解析失败
//	2: 参数错误
//
// 示例:
//
//	xtenantctl validate acme Beta.Corp bad/id
//	xtenantctl paths -c tenants.yaml
//	xtenantctl resolve -c tenants.yaml --path /api/orders --host acme.example.com
//	xtenantctl resolve -c tenants.yaml --path /api --token-tenant acme
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xtenantctl",
		Usage:   "租户解析规则调试工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "输出 Debug 日志到 stderr",
			},
		},
		Commands: []*cli.Command{
			createValidateCommand(),
			createPathsCommand(),
			createResolveCommand(),
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一映射退出码。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := createApp().Run(ctx, args); err != nil {
		return exitCode(err)
	}
	return 0
}

// exitCode 将命令错误映射为退出码。
func exitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	fmt.Fprintf(os.Stderr, "错误: %v\n", err)
	return 1
}
