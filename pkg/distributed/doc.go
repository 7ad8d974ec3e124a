// Package distributed 提供分布式协调相关的子包。
//
// 子包列表：
//   - xdlock: 基于 Redis（redsync）的非阻塞分布式锁
//   - xtenantlock: 按租户的临界区互斥，支持进程内与分布式后端
//
// 设计原则：
//   - 只提供非阻塞获取，占用时立即返回
//   - 释放在所有退出路径上执行，包括 panic 与 ctx 取消
package distributed
