package xbind

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/omeyang/xtenancy/pkg/context/xtenant"
)

// DefaultSetting 是默认的 Postgres 自定义设置名，可供 RLS 策略读取：
//
//	USING (tenant_id = current_setting('app.tenant_id'))
const DefaultSetting = "app.tenant_id"

const (
	sqlCurrentSetting = "SELECT current_setting($1, true)"
	sqlSetConfig      = "SELECT set_config($1, $2, true)"
)

// Querier 是 PgxResource 需要的最小 pgx 接口，pgx.Tx 与 *pgx.Conn 都满足。
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxResource 将租户属性保存在事务级 Postgres 设置中。
// set_config 的 is_local 为 true，事务提交或回滚后设置自动失效。
type PgxResource struct {
	q       Querier
	setting string
}

// NewPgxResource 创建 PgxResource，setting 为空时使用 DefaultSetting。
func NewPgxResource(q Querier, setting string) (*PgxResource, error) {
	if q == nil {
		return nil, ErrNilResource
	}
	if setting == "" {
		setting = DefaultSetting
	}
	if !validSetting(setting) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSetting, setting)
	}
	return &PgxResource{q: q, setting: setting}, nil
}

// Setting 返回设置名。
func (r *PgxResource) Setting() string {
	return r.setting
}

// TenantProperty 实现 Resource。设置不存在或为空时视为未绑定。
func (r *PgxResource) TenantProperty(ctx context.Context) (string, bool, error) {
	var v *string
	if err := r.q.QueryRow(ctx, sqlCurrentSetting, r.setting).Scan(&v); err != nil {
		return "", false, fmt.Errorf("current_setting %s: %w", r.setting, err)
	}
	if v == nil || *v == "" {
		return "", false, nil
	}
	return *v, true, nil
}

// SetTenantProperty 实现 Resource。
func (r *PgxResource) SetTenantProperty(ctx context.Context, tenant string) error {
	if _, err := r.q.Exec(ctx, sqlSetConfig, r.setting, tenant); err != nil {
		return fmt.Errorf("set_config %s: %w", r.setting, err)
	}
	return nil
}

// validSetting 要求 "namespace.name" 形式，Postgres 自定义设置必须带命名空间。
func validSetting(s string) bool {
	ns, name, ok := strings.Cut(s, ".")
	if !ok || ns == "" || name == "" {
		return false
	}
	for _, part := range []string{ns, name} {
		for i := 0; i < len(part); i++ {
			c := part[i]
			if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
				return false
			}
		}
	}
	return true
}

// TxBeginner 可开启事务，*pgxpool.Pool 与 *pgx.Conn 都满足。
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTenantTx 开启事务、绑定租户、执行 fn 并提交。
// fn 返回错误或 panic 时回滚；回滚使用不可取消的 context。
func WithTenantTx(ctx context.Context, db TxBeginner, setting string, tenant xtenant.TenantID, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("xbind: begin: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("xbind: rollback: %w", rbErr))
		}
	}()
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	res, err := NewPgxResource(tx, setting)
	if err != nil {
		return err
	}
	if err = Bind(ctx, res, tenant); err != nil {
		return err
	}
	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("xbind: commit: %w", err)
	}
	return nil
}
