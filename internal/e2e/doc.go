// Package e2e 包含跨包的端到端测试，需使用 -tags e2e 运行。
package e2e
