// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xkeylock: 基于 key 的进程内非阻塞互斥锁，分片存储，释放即回收
package util
