package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/noah-isme/school-mgmt-api/api/swagger"
	"github.com/noah-isme/school-mgmt-api/internal/handler"
	"github.com/noah-isme/school-mgmt-api/internal/repository"
	"github.com/noah-isme/school-mgmt-api/internal/router"
	"github.com/noah-isme/school-mgmt-api/internal/service"
	"github.com/noah-isme/school-mgmt-api/pkg/cache"
	"github.com/noah-isme/school-mgmt-api/pkg/config"
	"github.com/noah-isme/school-mgmt-api/pkg/database"
	"github.com/noah-isme/school-mgmt-api/pkg/hash"
	"github.com/noah-isme/school-mgmt-api/pkg/logger"
	"github.com/noah-isme/school-mgmt-api/pkg/storage"
)

// @title School Management API
// @version 1.0.0
// @description Backend for the school management system.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	uploads, err := storage.NewUploadStore(cfg.Uploads.Dir, cfg.Uploads.PublicPath, cfg.Uploads.MaxFileSize)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare uploads dir", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Redis.Enabled && cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, list cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, cfg.Cache.TTL, metricsSvc, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	validate := validator.New()
	hasher := hash.New(cfg.Security.BcryptCost)

	adminRepo := repository.NewAdminRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	examRepo := repository.NewExamResultRepository(db)

	adminSvc := service.NewAdminService(adminRepo, hasher, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, attendanceRepo, examRepo, hasher, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, subjectRepo, attendanceRepo, hasher, cacheSvc, validate, logr)
	classSvc := service.NewClassService(classRepo, studentRepo, teacherRepo, subjectRepo, studentRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, teacherRepo, attendanceRepo, validate, logr)
	noticeSvc := service.NewNoticeService(noticeRepo, cacheSvc, validate, logr)
	complaintSvc := service.NewComplaintService(complaintRepo, validate, logr)

	engine := router.New(router.Deps{
		Config:     cfg,
		Logger:     logr,
		Admins:     handler.NewAdminHandler(adminSvc, uploads),
		Students:   handler.NewStudentHandler(studentSvc, uploads),
		Teachers:   handler.NewTeacherHandler(teacherSvc, uploads),
		Classes:    handler.NewClassHandler(classSvc),
		Subjects:   handler.NewSubjectHandler(subjectSvc),
		Notices:    handler.NewNoticeHandler(noticeSvc),
		Complaints: handler.NewComplaintHandler(complaintSvc),
		Metrics:    handler.NewMetricsHandler(metricsSvc),
		MetricsSvc: metricsSvc,
		Uploads:    uploads,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := engine.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
