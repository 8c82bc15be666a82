package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/internship-forms-api/internal/handler"
	"github.com/noah-isme/internship-forms-api/internal/middleware"
	"github.com/noah-isme/internship-forms-api/internal/repository"
	"github.com/noah-isme/internship-forms-api/internal/service"
	"github.com/noah-isme/internship-forms-api/pkg/cache"
	"github.com/noah-isme/internship-forms-api/pkg/config"
	"github.com/noah-isme/internship-forms-api/pkg/database"
	"github.com/noah-isme/internship-forms-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/internship-forms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/internship-forms-api/pkg/middleware/requestid"
)

// @title Internship Forms API
// @version 1.0.0
// @description Form I-1 submission and supervisor directory backend
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, serving reads without cache", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close()
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	formRepo := repository.NewFormRepository(db)
	supervisorRepo := repository.NewSupervisorRepository(db)

	formSvc := service.NewFormService(formRepo, cacheRepo, cfg.Cache.TTL, metricsSvc, logr)
	supervisorSvc := service.NewSupervisorService(supervisorRepo, validate, logr, service.SupervisorConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
	})
	exportSvc := service.NewExportService(formRepo)

	formHandler := handler.NewFormHandler(formSvc, exportSvc)
	supervisorHandler := handler.NewSupervisorHandler(supervisorSvc, formSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	forms := r.Group("/form-i-1")
	{
		forms.GET("", formHandler.List)
		forms.POST("/student/:studentId", formHandler.SubmitStudent)
		forms.GET("/student/:studentId", formHandler.GetByStudent)
		forms.POST("/supervisor/:studentId", formHandler.SubmitSupervisor)
		forms.GET("/supervisor/:supervisorEmail", formHandler.ListBySupervisor)
		if cfg.Exports.Enabled {
			forms.GET("/export/csv", formHandler.ExportCSV)
			forms.GET("/student/:studentId/pdf", formHandler.ExportPDF)
		}
	}

	supervisors := r.Group("/supervisor")
	{
		supervisors.GET("", supervisorHandler.List)
		supervisors.POST("/login", supervisorHandler.Login)
		supervisors.GET("/get-student/:id", supervisorHandler.GetStudent)
		supervisors.POST("/add-supervisor", supervisorHandler.AddSupervisor)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
