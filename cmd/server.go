/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bp4sp4/NMS-System-sub000/internal/api"
	"github.com/bp4sp4/NMS-System-sub000/internal/config"
	"github.com/bp4sp4/NMS-System-sub000/internal/container"
	"github.com/bp4sp4/NMS-System-sub000/internal/metrics"
	"github.com/bp4sp4/NMS-System-sub000/internal/service"
	"github.com/bp4sp4/NMS-System-sub000/internal/websocket"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the NMS Approval API server.
The server will listen on the configured host and port,
and provide REST API interfaces for document approval workflows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. 初始化日志
		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// 3. 初始化链路追踪
		if cfg.Tracing.Enabled {
			if err := api.InitTracing("nms-approval", cfg.Tracing.JaegerEndpoint); err != nil {
				return fmt.Errorf("failed to initialize tracing: %w", err)
			}
		}

		// 4. 初始化容器
		ctr, err := container.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		// 5. 启动 WebSocket Hub
		go ctr.Hub().Run()
		publisher := websocket.NewPublisher(ctr.Hub())

		// 6. 初始化服务
		auditLogSvc := service.NewAuditLogService(ctr.AuditLogs())
		templateSvc := service.NewTemplateService(ctr.Templates(), service.VisibilityRules(cfg.Visibility))
		favoriteSvc := service.NewFavoriteService(ctr.Favorites(), ctr.Templates(), auditLogSvc)
		documentSvc := service.NewDocumentService(
			ctr.DB(),
			ctr.Documents(),
			ctr.Templates(),
			ctr.Histories(),
			ctr.Directory(),
			ctr.Resolver(),
			ctr.Gate(),
			auditLogSvc,
			publisher,
		)

		// 7. 初始化控制器
		controllers := &api.Controllers{
			Document: api.NewDocumentController(documentSvc),
			Template: api.NewTemplateController(templateSvc),
			Favorite: api.NewFavoriteController(favoriteSvc),
		}

		// 8. 设置路由
		router := api.SetupRoutes(cfg, ctr.DB(), ctr.Hub(), ctr.Validator(), ctr.Parties(), controllers)

		// 9. 启动指标采集器
		metrics.Register()
		collectorCtx, stopCollector := context.WithCancel(context.Background())
		defer stopCollector()
		collector := metrics.NewCollector(ctr.DB(), ctr.Documents(), 30*time.Second)
		go collector.Run(collectorCtx)

		// 10. 监听配置变更, 动态调整日志级别
		watcher := config.NewWatcher(cfg, configPath)
		watcher.OnChange(func(updated *config.Config) {
			if level, err := logrus.ParseLevel(updated.Log.Level); err == nil {
				api.SetLoggerLevel(level)
			}
		})
		if err := watcher.Start(); err != nil {
			logger.WithError(err).Warn("config watcher disabled")
		}
		defer watcher.Stop()

		// 11. 启动服务器
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			logger.WithField("addr", addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
		if cfg.Tracing.Enabled {
			if err := api.ShutdownTracing(ctx); err != nil {
				logger.WithError(err).Warn("failed to shutdown tracing")
			}
		}

		logger.Info("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// 服务器配置标志
	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}
