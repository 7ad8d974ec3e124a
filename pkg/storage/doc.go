// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xbind: 事务资源与租户的绑定，防止同一资源被两个租户使用
//
// 设计原则：
//   - 通过 Resource 接口抽象，不关心资源的持久化细节
//   - 提供 PostgreSQL（pgx）事务级设置的适配
package storage
