package handler

import "course-timetable/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Course    *CourseHandler
	Faculty   *FacultyHandler
	Subject   *SubjectHandler
	Entry     *EntryHandler
	Timetable *TimetableHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Course:    NewCourseHandler(svc.Course),
		Faculty:   NewFacultyHandler(svc.Faculty),
		Subject:   NewSubjectHandler(svc.Subject),
		Entry:     NewEntryHandler(svc.Entry),
		Timetable: NewTimetableHandler(svc.Timetable),
		Export:    NewExportHandler(svc.Export),
	}
}
