package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clarityhq/clarity/pkg/config"
	"github.com/clarityhq/clarity/pkg/db"
	"github.com/clarityhq/clarity/pkg/handler"
	"github.com/clarityhq/clarity/pkg/service"
	"github.com/clarityhq/clarity/pkg/utils"
)

type Server struct {
	ginEngine *gin.Engine
	cfg       *config.AppConfig
	logger    *slog.Logger
	port      int
}

func NewServer(cfg *config.AppConfig) (*Server, error) {
	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery())

	// CORS middleware: allow common localhost dev origins.
	// Note: if you don't need cookies/credentials, keep Allow-Credentials off.
	ginEngine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// If there's no Origin header, it's not a browser CORS request.
		if origin != "" {
			allowed := strings.HasPrefix(origin, "http://localhost") ||
				strings.HasPrefix(origin, "http://127.0.0.1") ||
				strings.HasPrefix(origin, "https://localhost") ||
				strings.HasPrefix(origin, "https://127.0.0.1")

			if allowed {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-User-ID")
			} else {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	server := &Server{
		ginEngine: ginEngine,
		cfg:       cfg,
		logger:    utils.GetLogger(),
		port:      0,
	}

	if err := server.SetupRoutes(); err != nil {
		return nil, err
	}

	return server, nil
}

func (s *Server) Start(ctx context.Context) error {
	// Read port from CLARITY_PORT, falling back to the configured port.
	port := s.cfg.Port()
	if v := os.Getenv("CLARITY_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p <= 65535 {
			port = p
		} else {
			s.logger.Warn("Invalid CLARITY_PORT value, falling back to config", "value", v)
		}
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host(), port)
	srv := &http.Server{Addr: addr, Handler: s.ginEngine}

	// Attempt to listen on port first; if occupied return error immediately
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	if tcpAddr, ok := ln.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	} else {
		s.port = port
	}
	s.logger.Info("Server listening", "addr", ln.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(ln)
	}()

	// Listen for context cancellation for graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	// Non-blocking: if startup fails immediately return error; otherwise return nil to let main continue
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	default:
	}
	return nil
}

func (s *Server) SetupRoutes() error {
	database, err := db.Open(s.cfg.DatabasePath(), s.cfg.DatabaseDSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	// Create service instances
	recordService := service.NewRecordService(database)
	mediaService := service.NewMediaService(database, recordService, s.cfg.UploadsDir())
	historyService := service.NewHistoryService(database)

	for _, migrate := range []func() error{
		recordService.AutoMigrate,
		mediaService.AutoMigrate,
		historyService.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	defaultUser, err := recordService.EnsureDefaultUser()
	if err != nil {
		return fmt.Errorf("ensure default user: %w", err)
	}

	// Binary reads go through an optional Redis cache when configured.
	var binaryStore service.BinaryStore = service.NewFSBinaryStore()
	if addr := s.cfg.RedisAddr(); addr != "" {
		binaryStore = service.NewCachedBinaryStore(binaryStore, addr)
		s.logger.Info("File read cache enabled", "redis_addr", addr)
	}

	contextBuilder := service.NewContextBuilder(binaryStore)
	generator := service.NewGeminiGenerator(
		s.cfg.GeminiAPIKey(),
		s.cfg.GeminiModel(),
		time.Duration(s.cfg.GeminiTimeoutSeconds())*time.Second,
	)
	askService := service.NewAskService(recordService, mediaService, contextBuilder, generator, historyService)

	companyHandler := handler.NewCompanyHandler(recordService, mediaService, s.logger)
	contentHandler := handler.NewContentHandler(recordService, s.logger)
	mediaHandler := handler.NewMediaHandler(mediaService, s.logger)
	aiHandler := handler.NewAIHandler(askService, historyService, defaultUser.ID, s.logger)

	// API group
	// /api
	apiGroup := s.ginEngine.Group("/api")

	apiGroup.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	companyHandler.RegisterRoutes(apiGroup)
	contentHandler.RegisterRoutes(apiGroup)
	mediaHandler.RegisterRoutes(apiGroup)
	aiHandler.RegisterRoutes(apiGroup)

	return nil
}
