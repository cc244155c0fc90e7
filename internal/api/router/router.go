package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-timetable/backend/config"
	"course-timetable/backend/internal/api/handler"
	"course-timetable/backend/internal/api/middleware"
	"course-timetable/backend/pkg/redis"
	"course-timetable/backend/pkg/validation"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时导出接口不限流
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if err := validation.Register(); err != nil {
		logger.Fatal("register validators failed", zap.Error(err))
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.POST("", h.Course.CreateCourse)
			courses.GET("/:id", h.Course.GetCourse)
			courses.PUT("/:id", h.Course.UpdateCourse)
			courses.DELETE("/:id", h.Course.DeleteCourse)
			courses.GET("/:id/print-date", h.Course.GetPrintDate)
			courses.PUT("/:id/print-date", h.Course.UpsertPrintDate)
		}

		// 教师模块
		faculties := v1.Group("/faculties")
		{
			faculties.GET("", h.Faculty.ListFaculties)
			faculties.POST("", h.Faculty.CreateFaculty)
			faculties.GET("/:id", h.Faculty.GetFaculty)
			faculties.PUT("/:id", h.Faculty.UpdateFaculty)
			faculties.DELETE("/:id", h.Faculty.DeleteFaculty)
		}

		// 科目模块
		subjects := v1.Group("/subjects")
		{
			subjects.GET("", h.Subject.ListSubjects)
			subjects.POST("", h.Subject.CreateSubject)
			subjects.GET("/:id", h.Subject.GetSubject)
			subjects.PUT("/:id", h.Subject.UpdateSubject)
			subjects.DELETE("/:id", h.Subject.DeleteSubject)
		}

		// 课表条目模块
		entries := v1.Group("/entries")
		{
			entries.GET("", h.Entry.ListEntries)
			entries.POST("", h.Entry.CreateEntry)
			entries.POST("/validate", h.Entry.ValidateEntry)
			entries.GET("/:id", h.Entry.GetEntry)
			entries.PUT("/:id", h.Entry.UpdateEntry)
			entries.DELETE("/:id", h.Entry.DeleteEntry)
		}

		// 课表视图与导出
		timetables := v1.Group("/timetables/:course_id")
		{
			timetables.GET("", h.Timetable.GetTimetable)

			export := timetables.Group("")
			export.Use(middleware.RateLimit(rdb, cfg.Export.RateLimit, cfg.Export.RateWindow))
			{
				export.GET("/pdf", h.Export.ExportPDF)
				export.GET("/excel", h.Export.ExportExcel)
				export.GET("/ics", h.Export.ExportICS)
			}
		}
	}

	return r
}
