package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"course-timetable/backend/config"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("failed to generate export file")
	ErrExportFormat       = errors.New("unsupported export format")
)

// ExportFormat 导出格式
type ExportFormat string

const (
	FormatPDF   ExportFormat = "pdf"
	FormatExcel ExportFormat = "xlsx"
	FormatICS   ExportFormat = "ics"
)

var exportContentTypes = map[ExportFormat]string{
	FormatPDF:   "application/pdf",
	FormatExcel: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatICS:   "text/calendar; charset=utf-8",
}

// ExportFile 导出结果
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService 导出业务接口
//
// 渲染结果按 (课程, 格式, 全局修订号, 课程修订号) 缓存；
// 写操作递增修订号使旧键自然失效，缓存不可用时直接渲染。
type ExportService interface {
	Export(ctx context.Context, courseID string, format ExportFormat) (*ExportFile, error)
}

type exportService struct {
	timetable TimetableService
	cache     ExportCache
	ttl       time.Duration
	loc       *time.Location
	pdfFont   *PDFFont
	now       func() time.Time
	logger    *zap.Logger
}

// NewExportService 创建 ExportService 实例；cache 可为 nil
func NewExportService(cfg *config.Config, timetable TimetableService, cache ExportCache, logger *zap.Logger) ExportService {
	loc, err := time.LoadLocation(cfg.Export.Timezone)
	if err != nil {
		loc = time.UTC
	}
	var font *PDFFont
	if path := cfg.Export.PDFFont; path != "" {
		if font, err = LoadPDFFont(path); err != nil {
			logger.Warn("load pdf font failed, falling back to Helvetica", zap.String("path", path), zap.Error(err))
		}
	}
	return &exportService{
		timetable: timetable,
		cache:     cache,
		ttl:       cfg.Export.CacheTTL,
		loc:       loc,
		pdfFont:   font,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *exportService) Export(ctx context.Context, courseID string, format ExportFormat) (*ExportFile, error) {
	contentType, ok := exportContentTypes[format]
	if !ok {
		return nil, ErrExportFormat
	}

	key, cacheable := s.cacheKey(ctx, courseID, format)
	if cacheable {
		if body, hit, err := s.cache.GetBytes(ctx, key); err != nil {
			s.logger.Warn("read export cache failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			var cached cachedExport
			if err := cached.decode(body); err == nil {
				return &ExportFile{Filename: cached.filename, ContentType: contentType, Body: cached.body}, nil
			}
		}
	}

	t, err := s.timetable.Load(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var body []byte
	switch format {
	case FormatPDF:
		body, err = RenderPDF(t, s.pdfFont)
	case FormatExcel:
		body, err = RenderExcel(t)
	case FormatICS:
		body, err = RenderICS(t, s.loc, s.now())
	}
	if err != nil {
		s.logger.Error("render export failed",
			zap.String("course_id", courseID),
			zap.String("format", string(format)),
			zap.Error(err),
		)
		return nil, ErrExportGenerateFail
	}

	file := &ExportFile{
		Filename:    ExportFilename(t, format),
		ContentType: contentType,
		Body:        body,
	}

	if cacheable {
		enc := cachedExport{filename: file.Filename, body: body}
		if err := s.cache.SetBytes(ctx, key, enc.encode(), s.ttl); err != nil {
			s.logger.Warn("write export cache failed", zap.String("key", key), zap.Error(err))
		}
	}
	return file, nil
}

// ExportFilename 如 "Timetable_BCA_Sem3.pdf"
func ExportFilename(t *CourseTimetable, format ExportFormat) string {
	return fmt.Sprintf("Timetable_%s_Sem%d.%s", t.Course.Name, t.Course.Semester, format)
}

// cacheKey 读取修订号失败时放弃缓存
func (s *exportService) cacheKey(ctx context.Context, courseID string, format ExportFormat) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	global, err := s.cache.Revision(ctx, globalScope)
	if err != nil {
		s.logger.Warn("read export cache revision failed", zap.Error(err))
		return "", false
	}
	course, err := s.cache.Revision(ctx, courseScope(courseID))
	if err != nil {
		s.logger.Warn("read export cache revision failed", zap.Error(err))
		return "", false
	}
	return fmt.Sprintf("timetable:export:%s:%s:%d:%d", courseID, format, global, course), true
}

// cachedExport 缓存值格式：文件名 + '\n' + 文件内容
type cachedExport struct {
	filename string
	body     []byte
}

func (h cachedExport) encode() []byte {
	out := make([]byte, 0, len(h.filename)+1+len(h.body))
	out = append(out, h.filename...)
	out = append(out, '\n')
	return append(out, h.body...)
}

func (h *cachedExport) decode(b []byte) error {
	for i, c := range b {
		if c == '\n' {
			h.filename = string(b[:i])
			h.body = b[i+1:]
			return nil
		}
	}
	return errors.New("malformed export cache value")
}
