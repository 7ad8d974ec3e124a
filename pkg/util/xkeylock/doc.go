// Package xkeylock 提供基于 key 的进程内非阻塞互斥锁。
//
// 只提供 TryAcquire：key 空闲时立即获得 Handle，被占用时立即返回
// ErrLockOccupied，从不排队等待，因此本包自身不会造成死锁。
//
// # 与 xdlock 的区别
//
//	特性          xkeylock              xdlock
//	──────────────────────────────────────────
//	范围          进程内                 分布式（Redis）
//	获取方式      TryAcquire            TryLock
//	Handle        Unlock()+Key()       Unlock(ctx)+Extend(ctx)+Key()
//	性能          纳秒级（内存操作）     毫秒级（网络调用）
//
// # 特性
//
//   - 分片 map：xxhash 选择分片，默认 32 分片，减少管理锁争用
//   - 条目只在持有期间存在：Unlock 后删除，内存随持有者数量而非历史 key 数量增长
//   - 同一个从未出现过的 key 被并发获取时，分片锁保证只创建一个条目、只有一个成功
//   - Handle 语义：Unlock 幂等（首次返回 nil，后续返回 ErrLockNotHeld）
//   - WithMaxKeys(n) 可限制同时持有的 key 数
//   - 关闭语义：Close() 拒绝新请求，已持有锁不受影响
package xkeylock
