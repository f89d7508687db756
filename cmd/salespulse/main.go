package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"salespulse/internal/config"
	"salespulse/internal/loader"
	"salespulse/internal/server"
)

var (
	port     = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode  = flag.Bool("dev", false, "开发模式")
	dataDir  = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	workbook = flag.String("file", "", "启动时预加载的销售工作簿路径 (.xlsx)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  SalesPulse - POS 销售数据分析工具")
	fmt.Println("==========================================")

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Warnf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if cfg.Server.DevMode {
		log.SetLevel(logrus.DebugLevel)
	}

	// 创建服务器
	srv, err := server.New(cfg, log)
	if err != nil {
		log.Fatalf("初始化服务失败: %v", err)
	}
	defer srv.Close()

	// 启动预加载
	if *workbook != "" {
		if err := preload(srv, *workbook, log); err != nil {
			log.Warnf("预加载工作簿失败: %v", err)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	// 启动服务器
	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	fmt.Printf("请访问 http://localhost:%d/api/status\n", cfg.Server.Port)
	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
}

// preload 启动时加载指定工作簿，命中缓存则跳过解析
func preload(srv *server.Server, path string, log *logrus.Logger) error {
	contentKey, err := loader.HashFile(path)
	if err != nil {
		return err
	}

	if cached, err := srv.Store().GetCachedLoad(contentKey); err == nil && cached != nil {
		srv.Session().SetCurrent(cached)
		log.Infof("预加载命中缓存: %s (%d 天)", path, len(cached.Daily.Rows))
		return nil
	}

	result, err := loader.Load(path, log)
	if err != nil {
		return err
	}
	if err := srv.Store().PutCachedLoad(result); err != nil {
		log.Warnf("写入加载缓存失败: %v", err)
	}
	srv.Session().SetCurrent(result)
	log.Infof("预加载完成: %s (%d 天, %d 时段)", path, len(result.Daily.Rows), len(result.Slots.Rows))
	return nil
}
