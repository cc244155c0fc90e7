package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"course-timetable/backend/config"
	"course-timetable/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Course    CourseService
	Faculty   FacultyService
	Subject   SubjectService
	Entry     EntryService
	Timetable TimetableService
	Export    ExportService
}

// ExportCache 导出结果缓存（Redis 实现见 pkg/redis），为 nil 时不缓存
type ExportCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Revision(ctx context.Context, scope string) (int64, error)
	BumpRevision(ctx context.Context, scope string) error
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache ExportCache,
	logger *zap.Logger,
) *Service {
	inv := &invalidator{cache: cache, logger: logger}
	timetable := NewTimetableService(cfg, repo, logger)
	return &Service{
		Course:    NewCourseService(repo, inv, logger),
		Faculty:   NewFacultyService(repo, inv, logger),
		Subject:   NewSubjectService(repo, inv, logger),
		Entry:     NewEntryService(repo, inv, logger),
		Timetable: timetable,
		Export:    NewExportService(cfg, timetable, cache, logger),
	}
}

// ── 缓存失效 ──

const globalScope = "global"

func courseScope(courseID string) string { return "course:" + courseID }

// invalidator 写操作后递增修订号，使相关导出缓存键失效
type invalidator struct {
	cache  ExportCache
	logger *zap.Logger
}

// Global 课程 / 教师 / 科目变更影响所有课程的导出
func (i *invalidator) Global(ctx context.Context) {
	i.bump(ctx, globalScope)
}

// Course 课表条目 / 生效日期变更只影响对应课程
func (i *invalidator) Course(ctx context.Context, courseIDs ...string) {
	for _, id := range courseIDs {
		i.bump(ctx, courseScope(id))
	}
}

func (i *invalidator) bump(ctx context.Context, scope string) {
	if i == nil || i.cache == nil {
		return
	}
	if err := i.cache.BumpRevision(ctx, scope); err != nil {
		i.logger.Warn("bump export cache revision failed", zap.String("scope", scope), zap.Error(err))
	}
}

const dateLayout = "2006-01-02"

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
