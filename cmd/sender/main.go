package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/support-line/internal/client"
	"github.com/zhouzirui/support-line/internal/observability"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	host := flag.String("host", "localhost", "接收端主机名")
	port := flag.Int("port", 5000, "接收端端口")
	serverURL := flag.String("url", strings.TrimSpace(os.Getenv("SENDER_SERVER_URL")), "接收端完整地址，设置后忽略 -host/-port")
	connect := flag.Bool("connect", true, "启动时立即连接接收端")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := observability.NewLogger(observability.LogConfig{Level: level, Development: true})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New("", nil)
	if *connect {
		if *serverURL != "" {
			c.SetBaseURL(*serverURL)
		} else if err := c.Connect(*host, *port); err != nil {
			log.Fatalf("invalid server address: %v", err)
		}
	}
	logger.Debug("sender started", zap.String("client_id", c.ClientID()), zap.String("server", c.BaseURL()))

	s := newSession(c, os.Stdout, logger)
	if err := s.run(ctx, os.Stdin); err != nil {
		logger.Error("input error", zap.Error(err))
		os.Exit(1)
	}
}
