package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-match-go/internal/agent"
	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/api/router"
	"resume-match-go/internal/config"
	"resume-match-go/internal/keyword"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/outbox"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzerolog "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.String("config", "", "配置文件路径，留空时在常见位置查找")
	pflag.Parse()

	initLogger(*configPath)

	// 1. 加载配置文件
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置文件失败")
	}

	// 2. 初始化链路追踪
	ctx := context.Background()
	if cfg.Tracing.Enabled {
		shutdownTracing, err := tracing.InitProvider(ctx, &cfg.Tracing)
		if err != nil {
			logger.Error().Err(err).Msg("初始化链路追踪失败，继续运行但不导出追踪数据")
		} else {
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownTracing(flushCtx); err != nil {
					logger.Error().Err(err).Msg("关闭链路追踪导出器失败")
				}
			}()
		}
	}

	// 3. 初始化存储管理器
	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储管理器失败")
	}
	defer storageManager.Close()

	if storageManager.MySQL == nil {
		logger.Fatal().Msg("MySQL实例未初始化，无法继续")
	}

	// 4. 声明消息拓扑
	if storageManager.RabbitMQ != nil {
		if err := storageManager.SetupMessageTopology(&cfg.RabbitMQ); err != nil {
			logger.Fatal().Err(err).Msg("声明消息拓扑失败")
		}
	}

	// 5. 初始化业务服务
	service, err := processor.NewResumeService(cfg, storageManager, &logger.Logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化简历服务失败")
	}
	logger.Info().Msg("简历服务初始化成功")

	// 6. 启动发件箱中继
	var relay *outbox.MessageRelay
	if storageManager.RabbitMQ != nil {
		relay = outbox.NewMessageRelay(
			storageManager.MySQL,
			storageManager.RabbitMQ,
			log.New(os.Stdout, "[OutboxRelay] ", log.LstdFlags),
		)
		relay.Start()
		defer relay.Stop()
	}

	// 7. 启动队列消费者
	var consumerStops []chan<- struct{}
	if storageManager.RabbitMQ != nil {
		consumerStops, err = startConsumers(cfg, storageManager, service)
		if err != nil {
			logger.Fatal().Err(err).Msg("启动消费者失败")
		}
		defer func() {
			for _, stop := range consumerStops {
				close(stop)
			}
		}()
	}

	// 8. 创建HTTP服务器
	serverOpts := []hertzconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
	}
	var traceCfg *hertztracing.Config
	if cfg.Tracing.Enabled {
		var traceOpt hertzconfig.Option
		traceOpt, traceCfg = hertztracing.NewServerTracer()
		serverOpts = append(serverOpts, traceOpt)
	}
	h := server.Default(serverOpts...)
	if traceCfg != nil {
		h.Use(hertztracing.ServerMiddleware(traceCfg))
	}

	resumeHandler := handler.NewResumeHandler(storageManager, service)

	var jobExtractor handler.JobKeywordExtractor
	if cfg.Ollama.Enabled {
		chatModel := agent.NewOllamaChatModel(cfg.Ollama.Model, cfg.Ollama.APIURL, logger.Logger).
			WithTimeout(time.Duration(cfg.Ollama.TimeoutSeconds) * time.Second)
		jobExtractor = keyword.NewLLMKeywordExtractor(chatModel, keyword.WithLogger(logger.Logger))
	}
	engine := matcher.NewEngine(matcher.WithLogger(logger.Logger))
	jobHandler := handler.NewJobHandler(cfg, storageManager, engine, jobExtractor)

	router.RegisterRoutes(h, resumeHandler, jobHandler)

	// 9. 启动HTTP服务器
	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	// 10. 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}

	logger.Info().Msg("优雅退出完成")
}

// startConsumers 启动两个队列的消费者，按配置的worker数并行
func startConsumers(cfg *config.Config, storageManager *storage.Storage, service processor.ResumeService) ([]chan<- struct{}, error) {
	var stops []chan<- struct{}

	parseWorkers := cfg.RabbitMQ.ConsumerWorkers["parse_consumer_workers"]
	if parseWorkers <= 0 {
		parseWorkers = 1
	}
	for i := 0; i < parseWorkers; i++ {
		stop, err := storageManager.RabbitMQ.StartConsumer(
			cfg.RabbitMQ.RawTextQueue,
			cfg.RabbitMQ.PrefetchCount,
			func(body []byte) bool {
				var msg storage.ResumeSubmittedMessage
				if err := json.Unmarshal(body, &msg); err != nil {
					logger.Error().Err(err).Msg("反序列化提交消息失败，丢弃")
					return true // 畸形消息不重回队列
				}
				if err := service.ProcessRawTextSubmission(context.Background(), msg); err != nil {
					logger.Error().Err(err).Str("submission_uuid", msg.SubmissionUUID).Msg("处理提交消息失败")
					return false
				}
				return true
			},
		)
		if err != nil {
			return stops, fmt.Errorf("启动解析消费者失败: %w", err)
		}
		stops = append(stops, stop)
	}

	keywordWorkers := cfg.RabbitMQ.ConsumerWorkers["keyword_consumer_workers"]
	if keywordWorkers <= 0 {
		keywordWorkers = 1
	}
	for i := 0; i < keywordWorkers; i++ {
		stop, err := storageManager.RabbitMQ.StartConsumer(
			cfg.RabbitMQ.KeywordQueue,
			cfg.RabbitMQ.PrefetchCount,
			func(body []byte) bool {
				var msg storage.ResumeParsedMessage
				if err := json.Unmarshal(body, &msg); err != nil {
					logger.Error().Err(err).Msg("反序列化解析完成消息失败，丢弃")
					return true
				}
				if err := service.ProcessKeywordTask(context.Background(), msg); err != nil {
					logger.Error().Err(err).Str("submission_uuid", msg.SubmissionUUID).Msg("处理关键词任务失败")
					return false
				}
				return true
			},
		)
		if err != nil {
			return stops, fmt.Errorf("启动关键词消费者失败: %w", err)
		}
		stops = append(stops, stop)
	}

	logger.Info().
		Int("parse_workers", parseWorkers).
		Int("keyword_workers", keywordWorkers).
		Msg("队列消费者已启动")
	return stops, nil
}

// initLogger 初始化日志系统
func initLogger(configPath string) {
	isProduction := os.Getenv("ENV") == "production"

	cfg, err := config.LoadConfig(configPath)

	logConfig := logger.Config{
		Level:        "debug",
		Format:       "pretty",
		TimeFormat:   time.RFC3339,
		ReportCaller: true,
	}

	if err == nil && cfg != nil {
		logConfig.Level = cfg.Logger.Level
		logConfig.Format = cfg.Logger.Format
		logConfig.TimeFormat = cfg.Logger.TimeFormat
		logConfig.ReportCaller = cfg.Logger.ReportCaller
	} else if isProduction {
		logConfig.Level = "info"
		logConfig.Format = "json"
		logConfig.ReportCaller = false
	}

	logger.Init(logConfig)

	logger.Logger = logger.Logger.With().
		Str("app", "resume-match-go").
		Logger()

	// 让hertz的框架日志也走zerolog
	hlog.SetLogger(hertzzerolog.New())
}
