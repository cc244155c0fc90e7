package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-timetable/backend/internal/dto"
	"course-timetable/backend/internal/model"
	"course-timetable/backend/internal/repository"
)

// ── 教师模块业务错误 ──

var (
	ErrFacultyNotFound = errors.New("faculty not found")
)

// FacultyService 教师业务接口
type FacultyService interface {
	Create(ctx context.Context, req *dto.CreateFacultyRequest) (*dto.FacultyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.FacultyResponse, error)
	List(ctx context.Context, req *dto.FacultyListRequest) ([]dto.FacultyResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateFacultyRequest) (*dto.FacultyResponse, error)
	Delete(ctx context.Context, id string) error
}

type facultyService struct {
	repo   *repository.Repository
	inv    *invalidator
	logger *zap.Logger
}

// NewFacultyService 创建 FacultyService 实例
func NewFacultyService(repo *repository.Repository, inv *invalidator, logger *zap.Logger) FacultyService {
	return &facultyService{repo: repo, inv: inv, logger: logger}
}

func (s *facultyService) Create(ctx context.Context, req *dto.CreateFacultyRequest) (*dto.FacultyResponse, error) {
	faculty := &model.Faculty{Name: strings.TrimSpace(req.Name)}
	if err := s.repo.Faculty.Create(ctx, faculty); err != nil {
		s.logger.Error("create faculty failed", zap.Error(err))
		return nil, err
	}
	return toFacultyResponse(faculty), nil
}

func (s *facultyService) GetByID(ctx context.Context, id string) (*dto.FacultyResponse, error) {
	faculty, err := s.getFaculty(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFacultyResponse(faculty), nil
}

func (s *facultyService) List(ctx context.Context, req *dto.FacultyListRequest) ([]dto.FacultyResponse, error) {
	faculties, err := s.repo.Faculty.List(ctx, strings.TrimSpace(req.Keyword))
	if err != nil {
		s.logger.Error("list faculties failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.FacultyResponse, 0, len(faculties))
	for i := range faculties {
		result = append(result, *toFacultyResponse(&faculties[i]))
	}
	return result, nil
}

func (s *facultyService) Update(ctx context.Context, id string, req *dto.UpdateFacultyRequest) (*dto.FacultyResponse, error) {
	faculty, err := s.getFaculty(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		faculty.Name = strings.TrimSpace(*req.Name)
	}

	if err := s.repo.Faculty.Update(ctx, faculty); err != nil {
		s.logger.Error("update faculty failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	s.inv.Global(ctx)

	return toFacultyResponse(faculty), nil
}

// Delete 引用该教师的科目与条目保留，faculty 置空
func (s *facultyService) Delete(ctx context.Context, id string) error {
	if _, err := s.getFaculty(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Faculty.Delete(ctx, id); err != nil {
		s.logger.Error("delete faculty failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.inv.Global(ctx)
	return nil
}

func (s *facultyService) getFaculty(ctx context.Context, id string) (*model.Faculty, error) {
	faculty, err := s.repo.Faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		s.logger.Error("get faculty failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return faculty, nil
}

func toFacultyResponse(f *model.Faculty) *dto.FacultyResponse {
	return &dto.FacultyResponse{
		ID:        f.FacultyID,
		Name:      f.Name,
		CreatedAt: formatTimestamp(f.CreatedAt),
		UpdatedAt: formatTimestamp(f.UpdatedAt),
	}
}

func toFacultyBrief(f *model.Faculty) *dto.FacultyBrief {
	if f == nil {
		return nil
	}
	return &dto.FacultyBrief{ID: f.FacultyID, Name: f.Name}
}
