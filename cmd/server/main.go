package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"urlshort-platform/internal/analytics"
	"urlshort-platform/internal/config"
	"urlshort-platform/internal/geo"
	"urlshort-platform/internal/handler"
	"urlshort-platform/internal/middleware"
	"urlshort-platform/internal/resolver"
	"urlshort-platform/internal/shortcode"
	"urlshort-platform/internal/shortener"
	"urlshort-platform/internal/store"
	"urlshort-platform/internal/telemetry"
	"urlshort-platform/pkg/database"
	"urlshort-platform/pkg/logger"
	"urlshort-platform/pkg/redis"

	_ "urlshort-platform/docs"

	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title urlshort-platform API
// @version 1.0
// @description 短链接服务：批量提交、短码跳转与点击统计
// @host localhost:8080
// @BasePath /

func main() {
	logger.InitLogger()
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		sugaredLogger.Fatalf("配置加载失败: %v", err)
	}

	db, err := database.InitMySQL(cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	sugaredLogger.Info("✅ 数据库连接成功")

	var rdb *redisClient.Client
	if cfg.Cache.Host != "" {
		rdb, err = redis.NewClient(&redis.Config{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		if err != nil {
			sugaredLogger.Warnf("缓存连接失败: %v", err)
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
				}
			}()
			sugaredLogger.Info("✅ 缓存连接成功")
		}
	}

	// 可选的外部协作方：地理位置查询与遥测收集端
	var geoClient *geo.Client
	if cfg.Geo.Enabled && cfg.Geo.Endpoint != "" {
		geoClient = geo.NewClient(cfg.Geo.Endpoint, time.Duration(cfg.Geo.TimeoutMS)*time.Millisecond, sugaredLogger)
		sugaredLogger.Info("✅ 地理位置查询已启用")
	}
	var teleClient *telemetry.Client
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint != "" {
		teleClient = telemetry.NewClient(cfg.Telemetry.Endpoint, cfg.Telemetry.Token, time.Duration(cfg.Telemetry.TimeoutMS)*time.Millisecond)
		sugaredLogger.Info("✅ 遥测上报已启用")
	}

	linkStore := store.NewGormStore(db)
	allocator := shortcode.NewAllocator(cfg.Shortener.CodeLength, sugaredLogger)
	service := shortener.NewService(linkStore, allocator, sugaredLogger)
	linkResolver := resolver.New(linkStore, geoClient, teleClient, rdb, sugaredLogger,
		time.Duration(cfg.Resolver.RedirectDelayMS)*time.Millisecond)
	view := analytics.NewView(linkStore)
	sugaredLogger.Info("✅ 核心组件初始化成功")

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))
	router.Use(middleware.RateLimit(&cfg.RateLimit))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	urlHandler := handler.NewShortLinkHandler(service, linkResolver, view)
	registerRoutes(router, urlHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
	sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugaredLogger.Fatalf("服务启动失败: %v", err)
	}
}

// registerRoutes 注册路由面：根路径提交入口、统计页、其余单段路径一律按短码解析
func registerRoutes(router *gin.Engine, urlHandler *handler.ShortLinkHandler) {
	router.GET("/", urlHandler.IndexPage)
	router.GET("/health", urlHandler.HealthCheck)
	router.GET("/stats", urlHandler.GetStats)
	router.GET("/:code", urlHandler.RedirectToOriginal)

	api := router.Group("/api")
	{
		api.POST("/shorten", urlHandler.Shorten)
		api.GET("/links", urlHandler.GetAllLinks)
		api.GET("/stats", urlHandler.GetStats)
	}
}
