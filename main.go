package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"MenteSanaGo/config"
	"MenteSanaGo/middleware"
	"MenteSanaGo/routes"
	"MenteSanaGo/store"
	"MenteSanaGo/utils"
)

func main() {
	// 初始化日志
	if err := config.InitLogger(); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	defer config.Logger.Sync()

	// 加载配置
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	utils.InitJWT(conf.JWTSecret)

	// 初始化远程数据库（登录模式）
	if err := config.InitDB(conf); err != nil {
		log.Fatalf("无法初始化远程数据库: %v", err)
	}

	// 初始化本地存储（演示模式）
	if err := config.InitLocalDB(conf); err != nil {
		log.Fatalf("无法初始化本地存储: %v", err)
	}

	// 初始化Redis（变更通知总线）
	if err := config.InitRedis(conf); err != nil {
		log.Fatalf("无法初始化Redis: %v", err)
	}

	// 组装存储层
	bus := store.NewRedisBus(config.RedisClient, config.Logger)
	localStore := store.NewLocalStore(config.LocalDB, config.Logger)
	remoteStore := store.NewRemoteStore(config.DB, bus, config.Logger)
	manager := store.NewManager(localStore, remoteStore, config.Logger)

	// 设置Gin模式
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建Gin引擎
	r := gin.New()

	// 设置中间件
	middleware.SetupMiddleware(r)

	// 注册路由
	routes.RegisterRoutes(r, manager)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 在goroutine中启动服务器
	go func() {
		config.Logger.Infow("启动服务器", "port", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Infow("正在关闭服务器...")

	// 创建超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v", err)
	}

	// 关闭全部仓库，撤销所有远程订阅
	manager.Close()
	config.Logger.Infow("服务器已关闭")
}
