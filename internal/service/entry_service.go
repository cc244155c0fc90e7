package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-timetable/backend/internal/dto"
	"course-timetable/backend/internal/model"
	"course-timetable/backend/internal/repository"
	pkgerrors "course-timetable/backend/pkg/errors"
)

// ── 课表条目模块业务错误 ──

var (
	ErrEntryNotFound      = errors.New("timetable entry not found")
	ErrEntryKindAmbiguous = errors.New("an entry cannot be both a break and a lab")
	ErrInvalidEntryInput  = errors.New("invalid day or time")
)

// EntryService 课表条目业务接口
//
// 创建与更新都经过冲突校验，校验与写入在同一个 SERIALIZABLE 事务中完成。
type EntryService interface {
	Create(ctx context.Context, req *dto.EntryRequest) (*dto.EntryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EntryResponse, error)
	List(ctx context.Context, req *dto.EntryListRequest) ([]dto.EntryResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEntryRequest) (*dto.EntryResponse, error)
	Delete(ctx context.Context, id string) error
	// Validate 仅校验不落库
	Validate(ctx context.Context, req *dto.ValidateEntryRequest) (*dto.ValidateEntryResponse, error)
}

type entryService struct {
	repo      *repository.Repository
	validator ConflictValidator
	inv       *invalidator
	logger    *zap.Logger
}

// NewEntryService 创建 EntryService 实例
func NewEntryService(repo *repository.Repository, inv *invalidator, logger *zap.Logger) EntryService {
	return &entryService{repo: repo, inv: inv, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *entryService) Create(ctx context.Context, req *dto.EntryRequest) (*dto.EntryResponse, error) {
	var entryID string
	err := s.repo.Tx.Serializable(ctx, func(tx *repository.Repository) error {
		candidate, err := buildCandidate(ctx, tx, req, "")
		if err != nil {
			return err
		}
		if err := s.validator.Validate(ctx, tx, candidate); err != nil {
			return err
		}
		if err := tx.Entry.Create(ctx, candidate); err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
		entryID = candidate.EntryID
		return nil
	})
	if err != nil {
		s.logWriteError("create entry rejected", "", err)
		return nil, err
	}

	entry, err := s.getEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	s.inv.Course(ctx, entry.CourseID)

	return toEntryResponse(entry), nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *entryService) GetByID(ctx context.Context, id string) (*dto.EntryResponse, error) {
	entry, err := s.getEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

func (s *entryService) List(ctx context.Context, req *dto.EntryListRequest) ([]dto.EntryResponse, error) {
	entries, err := s.repo.Entry.List(ctx, repository.EntryFilter{
		CourseID:  req.CourseID,
		Day:       req.Day,
		FacultyID: req.FacultyID,
		IsBreak:   req.IsBreak,
		IsLab:     req.IsLab,
		LabChoice: req.LabChoice,
	})
	if err != nil {
		s.logger.Error("list entries failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toEntryResponse(&entries[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *entryService) Update(ctx context.Context, id string, req *dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	var oldCourseID string
	err := s.repo.Tx.Serializable(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Entry.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}
		if existing.Version != req.Version {
			return pkgerrors.ErrOptimisticLock
		}
		oldCourseID = existing.CourseID

		candidate, err := buildCandidate(ctx, tx, &req.EntryRequest, id)
		if err != nil {
			return err
		}
		candidate.Version = req.Version
		if err := s.validator.Validate(ctx, tx, candidate); err != nil {
			return err
		}
		return tx.Entry.Update(ctx, candidate)
	})
	if err != nil {
		s.logWriteError("update entry rejected", id, err)
		return nil, err
	}

	entry, err := s.getEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	s.inv.Course(ctx, oldCourseID)
	if entry.CourseID != oldCourseID {
		s.inv.Course(ctx, entry.CourseID)
	}

	return toEntryResponse(entry), nil
}

// ────────────────────── Delete ──────────────────────

func (s *entryService) Delete(ctx context.Context, id string) error {
	entry, err := s.getEntry(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Entry.Delete(ctx, id); err != nil {
		s.logger.Error("delete entry failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.inv.Course(ctx, entry.CourseID)
	return nil
}

// ────────────────────── Validate ──────────────────────

func (s *entryService) Validate(ctx context.Context, req *dto.ValidateEntryRequest) (*dto.ValidateEntryResponse, error) {
	candidate, err := buildCandidate(ctx, s.repo, &req.EntryRequest, req.EntryID)
	if err != nil {
		return nil, err
	}

	err = s.validator.Validate(ctx, s.repo, candidate)
	var conflict *ConflictError
	switch {
	case err == nil:
		return &dto.ValidateEntryResponse{Valid: true}, nil
	case errors.As(err, &conflict):
		return &dto.ValidateEntryResponse{
			Valid:   false,
			Kind:    string(conflict.Kind),
			Message: conflict.Message,
		}, nil
	default:
		s.logger.Error("validate entry failed", zap.Error(err))
		return nil, err
	}
}

// ── 内部方法 ──

// buildCandidate 由请求构造候选条目并加载课程 / 科目 / 教师（均须存在）
func buildCandidate(ctx context.Context, repo *repository.Repository, req *dto.EntryRequest, entryID string) (*model.TimetableEntry, error) {
	if req.IsBreak && req.IsLab {
		return nil, ErrEntryKindAmbiguous
	}

	day := model.Weekday(req.Day)
	start, errStart := model.ParseClockTime(req.StartTime)
	end, errEnd := model.ParseClockTime(req.EndTime)
	if !day.Valid() || errStart != nil || errEnd != nil {
		return nil, ErrInvalidEntryInput
	}

	c := &model.TimetableEntry{
		EntryID:   entryID,
		CourseID:  req.CourseID,
		Day:       day,
		StartTime: start,
		EndTime:   end,
		IsBreak:   req.IsBreak,
		IsLab:     req.IsLab,
	}
	if req.LabChoice != nil && *req.LabChoice != "" {
		lc := model.LabChoice(*req.LabChoice)
		if !lc.Valid() {
			return nil, ErrInvalidEntryInput
		}
		c.LabChoice = &lc
	}

	course, err := repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, notFoundAs(err, ErrCourseNotFound)
	}
	c.Course = course

	if req.SubjectID != nil && *req.SubjectID != "" {
		subject, err := repo.Subject.GetByID(ctx, *req.SubjectID)
		if err != nil {
			return nil, notFoundAs(err, ErrSubjectNotFound)
		}
		c.SubjectID = &subject.SubjectID
		c.Subject = subject
	}
	if req.FacultyID != nil && *req.FacultyID != "" {
		faculty, err := repo.Faculty.GetByID(ctx, *req.FacultyID)
		if err != nil {
			return nil, notFoundAs(err, ErrFacultyNotFound)
		}
		c.FacultyID = &faculty.FacultyID
		c.Faculty = faculty
	}

	return c, nil
}

func notFoundAs(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func (s *entryService) getEntry(ctx context.Context, id string) (*model.TimetableEntry, error) {
	entry, err := s.repo.Entry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("get entry failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return entry, nil
}

// logWriteError 业务拒绝记 Info，其余记 Error
func (s *entryService) logWriteError(msg, id string, err error) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		s.logger.Info(msg,
			zap.String("id", id),
			zap.String("kind", string(conflict.Kind)),
			zap.String("day", string(conflict.Day)),
			zap.Stringer("start", conflict.Start),
			zap.Stringer("end", conflict.End),
		)
		return
	}
	if isBusinessError(err) {
		s.logger.Info(msg, zap.String("id", id), zap.Error(err))
		return
	}
	s.logger.Error(msg, zap.String("id", id), zap.Error(err))
}

func isBusinessError(err error) bool {
	for _, target := range []error{
		ErrEntryNotFound, ErrCourseNotFound, ErrSubjectNotFound, ErrFacultyNotFound,
		ErrEntryKindAmbiguous, ErrInvalidEntryInput,
		pkgerrors.ErrOptimisticLock, pkgerrors.ErrTxConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func toEntryResponse(e *model.TimetableEntry) *dto.EntryResponse {
	resp := &dto.EntryResponse{
		ID:        e.EntryID,
		Day:       string(e.Day),
		StartTime: e.StartTime.String(),
		EndTime:   e.EndTime.String(),
		Subject:   toSubjectBrief(e.Subject),
		Faculty:   toFacultyBrief(e.Faculty),
		IsBreak:   e.IsBreak,
		IsLab:     e.IsLab,
		Display:   FormatCell(e),
		Version:   e.Version,
		CreatedAt: formatTimestamp(e.CreatedAt),
		UpdatedAt: formatTimestamp(e.UpdatedAt),
	}
	if e.Course != nil {
		brief := toCourseBrief(e.Course)
		resp.Course = &brief
	}
	if e.LabChoice != nil {
		lc := string(*e.LabChoice)
		resp.LabChoice = &lc
	}
	return resp
}
