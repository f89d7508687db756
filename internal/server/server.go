package server

import (
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"salespulse/internal/api"
	"salespulse/internal/config"
	"salespulse/internal/store"
)

// Server HTTP 服务器
type Server struct {
	router  *gin.Engine
	store   *store.Store
	session *store.Session
	api     *api.Handler
	log     *logrus.Logger
}

// New 创建服务器
func New(cfg *config.AppConfig, log *logrus.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "salespulse.db")

	st, err := store.New(dbPath)
	if err != nil {
		return nil, err
	}

	session := store.NewSession()
	handler := api.NewHandler(st, session, cfg, log)

	s := &Server{
		router:  gin.Default(),
		store:   st,
		session: session,
		api:     handler,
		log:     log,
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	s.router.Use(cors.New(corsCfg))

	group := s.router.Group("/api")
	{
		s.api.RegisterRoutes(group)
	}
}

// Session 当前会话 (启动预加载用)
func (s *Server) Session() *store.Session {
	return s.session
}

// Store 存储层 (启动预加载用)
func (s *Server) Store() *store.Store {
	return s.store
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放资源
func (s *Server) Close() error {
	return s.store.Close()
}
