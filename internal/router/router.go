package router

import (
	"net/http"
	"time"

	"github.com/attendly/attendly-backend/internal/config"
	"github.com/attendly/attendly-backend/internal/handler"
	"github.com/attendly/attendly-backend/internal/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student    *handler.StudentHandler
	Department *handler.DepartmentHandler
	Attendance *handler.AttendanceHandler
	Report     *handler.ReportHandler
}

// SetupRouter configures all Gin routes and shared middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID on every response for tracing.
	router.Use(response.RequestIDMiddleware())

	// Root banner and health check.
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s API", cfg.AppName)
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/departments", handlers.Department.ListDepartments)

		api.GET("/students", handlers.Student.ListStudents)
		api.POST("/students", handlers.Student.CreateStudent)
		api.GET("/students/:rollNo", handlers.Student.GetStudent)
		api.PUT("/students/:rollNo", handlers.Student.UpdateStudent)
		api.DELETE("/students/:rollNo", handlers.Student.DeleteStudent)

		api.POST("/attendance", handlers.Attendance.MarkAttendance)
		api.POST("/send-email", handlers.Report.SendMonthlyReport)
	}

	return router
}
