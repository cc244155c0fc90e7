package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "course-timetable/backend/pkg/errors"
)

// TxManager 事务执行器
type TxManager interface {
	// Serializable 在 SERIALIZABLE 事务中执行 fn，fn 收到绑定该事务的 Repository。
	// 串行化失败（40001）/ 死锁（40P01）时整体重试，重试耗尽返回 ErrTxConflict。
	Serializable(ctx context.Context, fn func(tx *Repository) error) error
}

const maxTxAttempts = 3

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager 创建基于 GORM 的事务执行器
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Serializable(ctx context.Context, fn func(tx *Repository) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(newScopedRepository(tx))
		}, opts)
		if !IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return pkgerrors.ErrTxConflict
}

// IsRetryable 是否为可重试的并发冲突错误
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return true
	}
	return false
}
