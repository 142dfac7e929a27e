package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/handler"
	"github.com/noah-isme/school-mgmt-api/internal/middleware"
	"github.com/noah-isme/school-mgmt-api/internal/service"
	"github.com/noah-isme/school-mgmt-api/pkg/config"
	"github.com/noah-isme/school-mgmt-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-mgmt-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-mgmt-api/pkg/middleware/requestid"
	"github.com/noah-isme/school-mgmt-api/pkg/storage"
)

// Deps collects everything the HTTP surface needs.
type Deps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Admins     *handler.AdminHandler
	Students   *handler.StudentHandler
	Teachers   *handler.TeacherHandler
	Classes    *handler.ClassHandler
	Subjects   *handler.SubjectHandler
	Notices    *handler.NoticeHandler
	Complaints *handler.ComplaintHandler
	Metrics    *handler.MetricsHandler
	MetricsSvc *service.MetricsService
	Uploads    *storage.UploadStore
}

// New builds the gin engine with the full route surface. Route names follow
// the API contract the frontend was built against.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(d.MetricsSvc))

	r.GET("/health", d.Metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", d.Metrics.Prometheus)

	if d.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if d.Uploads != nil {
		r.Static(d.Uploads.PublicPath(), d.Uploads.Dir())
	}

	// Admin
	r.POST("/AdminReg", d.Admins.Register)
	r.POST("/AdminLogin", d.Admins.Login)
	r.GET("/Admin/:id", d.Admins.Get)
	r.PUT("/AdminUpdate/:id", d.Admins.Update)

	// Students
	r.POST("/StudentReg", d.Students.Register)
	r.POST("/StudentLogin", d.Students.Login)
	r.GET("/Students/:id", d.Students.ListBySchool)
	r.GET("/Student/:id", d.Students.Get)
	r.PUT("/Student/:id", d.Students.Update)
	r.DELETE("/Student/:id", d.Students.Delete)
	r.DELETE("/Students/:id", d.Students.DeleteBySchool)
	r.DELETE("/StudentsClass/:id", d.Students.DeleteByClass)
	r.PUT("/StudentAttendance/:id", d.Students.MarkAttendance)
	r.PUT("/UpdateExamResult/:id", d.Students.UpdateExamResult)
	r.PUT("/RemoveAllStudentsSubAtten/:id", d.Students.ClearSubjectAttendance)
	r.PUT("/RemoveAllStudentsAtten/:id", d.Students.ClearSchoolAttendance)
	r.PUT("/RemoveStudentSubAtten/:id", d.Students.ClearStudentSubjectAttendance)
	r.PUT("/RemoveStudentAtten/:id", d.Students.ClearStudentAttendance)

	// Teachers
	r.POST("/TeacherReg", d.Teachers.Register)
	r.POST("/TeacherLogin", d.Teachers.Login)
	r.GET("/Teachers/:id", d.Teachers.ListBySchool)
	r.GET("/Teacher/:id", d.Teachers.Get)
	r.PUT("/TeacherUpdate/:id", d.Teachers.Update)
	r.PUT("/TeacherSubject", d.Teachers.AssignSubject)
	r.DELETE("/Teacher/:id", d.Teachers.Delete)
	r.DELETE("/Teachers/:id", d.Teachers.DeleteBySchool)
	r.DELETE("/TeachersClass/:id", d.Teachers.DeleteByClass)
	r.POST("/TeacherAttendance/:id", d.Teachers.MarkAttendance)

	// Classes
	r.POST("/SclassCreate", d.Classes.Create)
	r.GET("/SclassList/:id", d.Classes.ListBySchool)
	r.GET("/Sclass/:id", d.Classes.Get)
	r.GET("/Sclass/Students/:id", d.Classes.ListStudents)
	r.DELETE("/Sclass/:id", d.Classes.Delete)
	r.DELETE("/Sclasses/:id", d.Classes.DeleteBySchool)

	// Subjects
	r.POST("/SubjectCreate", d.Subjects.Create)
	r.GET("/AllSubjects/:id", d.Subjects.ListBySchool)
	r.GET("/ClassSubjects/:id", d.Subjects.ListByClass)
	r.GET("/FreeSubjectList/:id", d.Subjects.ListFreeByClass)
	r.GET("/Subject/:id", d.Subjects.Get)
	r.DELETE("/Subject/:id", d.Subjects.Delete)
	r.DELETE("/Subjects/:id", d.Subjects.DeleteBySchool)
	r.DELETE("/SubjectsClass/:id", d.Subjects.DeleteByClass)

	// Notices
	r.POST("/NoticeCreate", d.Notices.Create)
	r.GET("/NoticeList/:id", d.Notices.ListBySchool)
	r.PUT("/Notice/:id", d.Notices.Update)
	r.DELETE("/Notice/:id", d.Notices.Delete)
	r.DELETE("/Notices/:id", d.Notices.DeleteBySchool)

	// Complaints
	r.POST("/ComplainCreate", d.Complaints.Create)
	r.GET("/ComplainList/:id", d.Complaints.ListBySchool)

	return r
}
