package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/coursetrack/internal/bitbucket"
	"github.com/alimgiray/coursetrack/internal/cache"
	"github.com/alimgiray/coursetrack/internal/handlers"
	"github.com/alimgiray/coursetrack/internal/middleware"
	"github.com/alimgiray/coursetrack/internal/repositories"
	"github.com/alimgiray/coursetrack/internal/services"
	"github.com/alimgiray/coursetrack/internal/workers"
	"github.com/alimgiray/coursetrack/pkg/config"
	"github.com/alimgiray/coursetrack/pkg/database"
	"github.com/alimgiray/coursetrack/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init(cfg.Log.Level)
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Repositories
	studentRepo := repositories.NewStudentRepository(database.DB)
	teamMemberRepo := repositories.NewTeamMemberRepository(database.DB)
	aliasRepo := repositories.NewContributorAliasRepository(database.DB)

	// Upstream client with its response cache
	responses := cache.New(cfg.Cache.Size, cfg.Cache.TTL, nil)
	bitbucketClient := bitbucket.NewClient(cfg.Bitbucket.APIURL, &http.Client{Timeout: 30 * time.Second}, responses)

	// Services
	rosterService := services.NewRosterService(studentRepo, teamMemberRepo, aliasRepo)
	aliasService := services.NewAliasService(aliasRepo, rosterService)
	dashboardService := services.NewDashboardService(
		bitbucketClient,
		rosterService,
		services.NewContributionStatsService(),
		workers.NewPool("bitbucket", cfg.Bitbucket.Concurrency),
		services.NewOwnerFallbackPolicy(cfg.Policy.OwnerFallback),
	)
	authService := services.NewAuthService(cfg, bitbucketClient, rosterService)
	exportService := services.NewExportService()

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SessionMiddleware())

	setupRoutes(router, rosterService, aliasService, dashboardService, authService, exportService)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Infof("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	rosterService *services.RosterService,
	aliasService *services.AliasService,
	dashboardService *services.DashboardService,
	authService *services.AuthService,
	exportService *services.ExportService,
) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	meHandler := handlers.NewMeHandler(rosterService, dashboardService)
	adminHandler := handlers.NewAdminHandler(rosterService, aliasService, dashboardService, exportService)
	healthHandler := handlers.NewHealthHandler(database.DB)
	notFoundHandler := handlers.NewNotFoundHandler()

	router.GET("/health", healthHandler.Health)

	// Auth routes
	router.GET("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.GET("/auth/bitbucket", authHandler.BitbucketLogin)
	router.GET("/auth/bitbucket/callback", authHandler.BitbucketCallback)

	// Student routes
	me := router.Group("/api/me")
	me.Use(middleware.AuthRequired())
	{
		me.GET("", meHandler.Profile)
		me.PUT("/workspace", meHandler.UpdateWorkspace)
		me.GET("/team-members", meHandler.ListTeamMembers)
		me.POST("/team-members", meHandler.AddTeamMember)
		me.GET("/repositories", meHandler.Repositories)
		me.GET("/repositories/:repo/commits", meHandler.RepositoryCommits)
		me.GET("/repositories/:repo/contributors", meHandler.RepositoryContributors)
		me.GET("/report", meHandler.Report)
		me.GET("/developers/:name/commits", meHandler.DeveloperCommits)
	}

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/students", adminHandler.ListStudents)
		admin.DELETE("/students/:id", adminHandler.DeleteStudent)
		admin.GET("/students/:id/report", adminHandler.StudentReport)
		admin.GET("/students/:id/repositories/:repo/contributors", adminHandler.RepositoryContributors)
		admin.GET("/students/:id/developers/:name/commits", adminHandler.DeveloperCommits)
		admin.GET("/students/:id/aliases", adminHandler.ListAliases)
		admin.POST("/students/:id/aliases", adminHandler.CreateAlias)
		admin.DELETE("/team-members/:id", adminHandler.DeleteTeamMember)
		admin.DELETE("/aliases/:id", adminHandler.DeleteAlias)
		admin.GET("/overview", adminHandler.Overview)
		admin.GET("/overview.xlsx", adminHandler.OverviewWorkbook)
	}

	router.NoRoute(notFoundHandler.NotFound)
}
