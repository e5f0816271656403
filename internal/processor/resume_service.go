package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-match-go/internal/agent"
	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	"resume-match-go/internal/keyword"
	"resume-match-go/internal/logger"
	resumeparser "resume-match-go/internal/parser"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
	"resume-match-go/pkg/utils"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 定义公共错误类型，用于整个服务
var (
	ErrStorageNotInit   = errors.New("storage is not initialized")
	ErrParserNotInit    = errors.New("parser is not initialized")
	ErrDuplicateContent = errors.New("duplicate content detected")
)

// 定义tracer
var tracer = otel.Tracer("processor")

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
type Components struct {
	// 核心组件接口
	TextParser       TextParser       // 启发式文本解析接口
	KeywordAugmenter KeywordAugmenter // 关键词增强接口

	// 存储层依赖
	Storage *storage.Storage // 聚合的存储服务
}

// ResumeService 定义简历处理服务的接口
type ResumeService interface {
	// SubmitRawText 接收原始文本提交，落库并写入发件箱
	SubmitRawText(ctx context.Context, fileName string, rawText string) (string, string, error)

	// ProcessRawTextSubmission 处理提交的原始文本，包括解析和去重
	ProcessRawTextSubmission(ctx context.Context, message storage.ResumeSubmittedMessage) error

	// ProcessKeywordTask 处理关键词增强任务
	ProcessKeywordTask(ctx context.Context, message storage.ResumeParsedMessage) error
}

// resumeServiceImpl 是ResumeService的实现
type resumeServiceImpl struct {
	components Components
	settings   Settings
	config     *config.Config
	logger     *zerolog.Logger
}

// NewResumeService 创建新的简历服务实例
func NewResumeService(cfg *config.Config, storageManager *storage.Storage, log *zerolog.Logger) (ResumeService, error) {
	if log == nil {
		defaultLogger := zerolog.Nop()
		log = &defaultLogger
	}

	components, err := createComponents(cfg, storageManager, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create components: %w", err)
	}

	settings := defaultSettings()
	settings.UseLLM = cfg.Ollama.Enabled
	settings.Debug = cfg.Logger.Level == "debug"

	return &resumeServiceImpl{
		components: components,
		settings:   *settings,
		config:     cfg,
		logger:     log,
	}, nil
}

// NewResumeServiceWithComponents 使用显式组件和设置创建服务实例，测试替换用
func NewResumeServiceWithComponents(cfg *config.Config, log *zerolog.Logger, compOpts []ComponentOpt, setOpts []SettingOpt) ResumeService {
	if log == nil {
		defaultLogger := zerolog.Nop()
		log = &defaultLogger
	}
	components := Components{}
	for _, opt := range compOpts {
		opt(&components)
	}
	settings := defaultSettings()
	for _, opt := range setOpts {
		opt(settings)
	}
	if components.Storage == nil {
		settings.Logger.Println("警告: ResumeService 的 Storage 依赖未初始化，大部分操作将直接失败")
	}
	return &resumeServiceImpl{
		components: components,
		settings:   *settings,
		config:     cfg,
		logger:     log,
	}
}

// effectiveAugmenter UseLLM关闭时强制走降级路径
func (rs *resumeServiceImpl) effectiveAugmenter() KeywordAugmenter {
	if !rs.settings.UseLLM {
		return nil
	}
	return rs.components.KeywordAugmenter
}

// createComponents 创建所有必要的组件
func createComponents(cfg *config.Config, storageManager *storage.Storage, log *zerolog.Logger) (Components, error) {
	components := Components{
		Storage: storageManager,
	}

	// 启发式解析器无外部依赖，总是创建
	parserOpts := []resumeparser.ParserOption{}
	if cfg.ActiveParserVersion != "" {
		parserOpts = append(parserOpts, resumeparser.WithVersion(cfg.ActiveParserVersion))
	}
	components.TextParser = resumeparser.NewResumeParser(parserOpts...)

	// 关键词增强器依赖本地Ollama服务
	if cfg.Ollama.Enabled {
		chatModel := agent.NewOllamaChatModel(cfg.Ollama.Model, cfg.Ollama.APIURL, *log).
			WithTimeout(time.Duration(cfg.Ollama.TimeoutSeconds) * time.Second)
		components.KeywordAugmenter = keyword.NewLLMKeywordExtractor(
			chatModel,
			keyword.WithLogger(*log),
		)
	}

	return components, nil
}

// SubmitRawText 接收一次原始文本提交。
// 生成SubmissionUUID、插入初始记录，并通过发件箱投递解析任务。
func (rs *resumeServiceImpl) SubmitRawText(ctx context.Context, fileName string, rawText string) (string, string, error) {
	ctx, span := tracer.Start(ctx, "SubmitRawText")
	defer span.End()

	if rs.components.Storage == nil || rs.components.Storage.MySQL == nil {
		tracing.RecordError(span, ErrStorageNotInit, tracing.ErrorTypeInternal)
		return "", "", ErrStorageNotInit
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", "", fmt.Errorf("生成SubmissionUUID失败: %w", err)
	}
	submissionUUID := id.String()

	ctx = logger.WithSubmissionUUID(ctx, submissionUUID)
	log := logger.FromContext(ctx)

	span.SetAttributes(
		attribute.String("submission_uuid", submissionUUID),
		attribute.Int("raw_text_length", len(rawText)),
	)

	textMD5 := utils.CalculateMD5([]byte(rawText))
	submittedAt := time.Now()

	message := storage.ResumeSubmittedMessage{
		SubmissionUUID:      submissionUUID,
		SubmissionTimestamp: submittedAt,
		FileName:            fileName,
		RawText:             rawText,
		RawTextMD5:          textMD5,
	}
	payloadBytes, err := json.Marshal(message)
	if err != nil {
		return "", "", fmt.Errorf("序列化提交消息失败: %w", err)
	}

	err = rs.components.Storage.MySQL.Transaction(ctx, func(tx *gorm.DB) error {
		row := models.ResumeRecordRow{
			SubmissionUUID:   submissionUUID,
			FileName:         fileName,
			RawTextMD5:       textMD5,
			ProcessingStatus: constants.StatusPendingParsing,
			SubmittedAt:      submittedAt,
		}
		if err := rs.components.Storage.MySQL.CreateResumeRecordRow(tx, &row); err != nil {
			return NewDatabaseError(submissionUUID, err.Error())
		}

		outboxEntry := models.OutboxMessage{
			AggregateID:      submissionUUID,
			EventType:        storage.EventTypeResumeSubmitted,
			Payload:          string(payloadBytes),
			TargetExchange:   rs.config.RabbitMQ.ResumeEventsExchange,
			TargetRoutingKey: rs.config.RabbitMQ.SubmittedRoutingKey,
		}
		if err := rs.components.Storage.MySQL.CreateOutboxMessage(tx, &outboxEntry); err != nil {
			return NewPublishError(submissionUUID, err.Error())
		}
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return "", "", err
	}

	log.Info().Str("file_name", fileName).Msg("原始文本提交已受理")
	span.SetStatus(codes.Ok, "提交成功")
	return submissionUUID, constants.StatusPendingParsing, nil
}

// ProcessRawTextSubmission 处理提交的原始简历文本
func (rs *resumeServiceImpl) ProcessRawTextSubmission(ctx context.Context, message storage.ResumeSubmittedMessage) error {
	ctx, span := tracer.Start(ctx, "ProcessRawTextSubmission",
		trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()

	span.SetAttributes(
		attribute.String("submission_uuid", message.SubmissionUUID),
		attribute.String("file_name", tracing.SafeAttributeValue("file_name", message.FileName, tracing.DefaultMaxLength)),
	)

	ctx = logger.WithSubmissionUUID(ctx, message.SubmissionUUID)
	log := logger.FromContext(ctx)

	log.Debug().Msg("开始处理原始文本提交")

	if rs.components.Storage == nil || rs.components.Storage.MySQL == nil {
		tracing.RecordError(span, ErrStorageNotInit, tracing.ErrorTypeInternal)
		return ErrStorageNotInit
	}
	if rs.components.TextParser == nil {
		tracing.RecordError(span, ErrParserNotInit, tracing.ErrorTypeInternal)
		return ErrParserNotInit
	}

	rawText, textMD5, err := rs.resolveRawText(ctx, message)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		rs.markParseFailed(ctx, message.SubmissionUUID, err.Error())
		return err
	}
	span.SetAttributes(attribute.Int("text_length", len(rawText)))

	// 去重检查
	ctx, dedupSpan := tracer.Start(ctx, "DeduplicateRawText")
	duplicate, existingUUID, err := rs.checkDuplicate(ctx, textMD5, message.SubmissionUUID)
	if err != nil {
		tracing.RecordError(dedupSpan, err, tracing.ErrorTypeRedis)
	}
	dedupSpan.End()
	if err != nil {
		log.Warn().Err(err).Msg("去重检查失败，继续处理，但文本去重可能失效")
	} else if duplicate && existingUUID != message.SubmissionUUID {
		log.Info().Str("md5", textMD5).Str("existing_uuid", existingUUID).Msg("检测到重复文本，跳过处理")
		span.SetAttributes(
			attribute.Bool("duplicate_content", true),
			attribute.String("md5", textMD5),
		)
		if err := rs.components.Storage.MySQL.UpdateResumeProcessingStatus(ctx, message.SubmissionUUID, constants.StatusDuplicateSkipped); err != nil {
			return NewUpdateError(message.SubmissionUUID, err.Error())
		}
		return nil
	}

	// 启发式解析，解析器对任意输入都返回记录
	ctx, parseSpan := tracer.Start(ctx, "ParseResumeText")
	record := rs.components.TextParser.Parse(rawText, message.FileName)
	parseSpan.End()

	recordJSON, err := json.Marshal(record)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		rs.markParseFailed(ctx, message.SubmissionUUID, err.Error())
		return NewParseError(message.SubmissionUUID, err.Error())
	}

	// 归档原始文本到MinIO，失败不阻断流程
	var rawTextPath string
	if rs.components.Storage.MinIO != nil {
		span.AddEvent("uploading_to_minio")
		rawTextPath, err = rs.components.Storage.MinIO.UploadRawText(ctx, message.SubmissionUUID, rawText)
		if err != nil {
			log.Warn().Err(err).Msg("归档原始文本到MinIO失败")
			rawTextPath = ""
		}
	}

	// 落库并通过发件箱投递关键词任务
	err = rs.components.Storage.MySQL.Transaction(ctx, func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"resume_data_json":  datatypes.JSON(recordJSON),
			"raw_text_md5":      textMD5,
			"processing_status": constants.StatusParsed,
			"parser_version":    rs.config.ActiveParserVersion,
		}
		if rawTextPath != "" {
			updates["raw_text_path_oss"] = rawTextPath
		}
		if err := tx.Model(&models.ResumeRecordRow{}).
			Where("submission_uuid = ?", message.SubmissionUUID).
			Updates(updates).Error; err != nil {
			return NewDatabaseError(message.SubmissionUUID, err.Error())
		}

		parsedMessage := storage.ResumeParsedMessage{
			SubmissionUUID:   message.SubmissionUUID,
			ProcessingStatus: constants.StatusParsed,
			ParserVersion:    rs.config.ActiveParserVersion,
			ProcessingTime:   time.Now().Unix(),
		}

		_, outboxSpan := tracer.Start(ctx, "WriteToOutbox")
		defer outboxSpan.End()
		payloadBytes, err := json.Marshal(parsedMessage)
		if err != nil {
			tracing.RecordError(outboxSpan, err, tracing.ErrorTypeInternal)
			return NewPublishError(message.SubmissionUUID, err.Error())
		}

		outboxEntry := models.OutboxMessage{
			AggregateID:      message.SubmissionUUID,
			EventType:        storage.EventTypeResumeParsed,
			Payload:          string(payloadBytes),
			TargetExchange:   rs.config.RabbitMQ.ResumeEventsExchange,
			TargetRoutingKey: rs.config.RabbitMQ.ParsedRoutingKey,
		}
		if err := rs.components.Storage.MySQL.CreateOutboxMessage(tx, &outboxEntry); err != nil {
			tracing.RecordError(outboxSpan, err, tracing.ErrorTypeDB)
			return NewPublishError(message.SubmissionUUID, err.Error())
		}

		// 出队前的终态
		if err := tx.Model(&models.ResumeRecordRow{}).
			Where("submission_uuid = ?", message.SubmissionUUID).
			Update("processing_status", constants.StatusQueuedForKeywords).Error; err != nil {
			return NewUpdateError(message.SubmissionUUID, err.Error())
		}
		return nil
	})

	if err != nil {
		tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeDB,
			attribute.String("md5", textMD5))
		rs.markParseFailed(ctx, message.SubmissionUUID, err.Error())
		// 失败时释放去重记录，避免困住后续重试
		if rs.components.Storage.Redis != nil {
			if remErr := rs.components.Storage.Redis.RemoveTextMD5(ctx, textMD5); remErr != nil {
				log.Warn().Err(remErr).Msg("回滚MD5去重记录失败")
			}
		}
		return err
	}

	span.SetStatus(codes.Ok, "处理成功")
	log.Info().Msg("原始文本解析完成，已投递关键词任务")
	return nil
}

// resolveRawText 从消息取出原始文本，过大的文本走MinIO间接传递
func (rs *resumeServiceImpl) resolveRawText(ctx context.Context, message storage.ResumeSubmittedMessage) (string, string, error) {
	rawText := message.RawText
	if rawText == "" && message.RawTextPathOSS != "" {
		if rs.components.Storage.MinIO == nil {
			return "", "", NewStoreError(message.SubmissionUUID, "消息仅携带对象路径但MinIO未初始化")
		}
		text, err := rs.components.Storage.MinIO.GetRawText(ctx, message.RawTextPathOSS)
		if err != nil {
			return "", "", NewStoreError(message.SubmissionUUID, err.Error())
		}
		rawText = text
	}

	textMD5 := message.RawTextMD5
	if textMD5 == "" {
		textMD5 = utils.CalculateMD5([]byte(rawText))
	}
	return rawText, textMD5, nil
}

// checkDuplicate 在Redis里检查文本MD5，Redis不可用时退化为MySQL查询
func (rs *resumeServiceImpl) checkDuplicate(ctx context.Context, textMD5 string, submissionUUID string) (bool, string, error) {
	if rs.components.Storage.Redis != nil {
		return rs.components.Storage.Redis.CheckAndSetTextMD5(ctx, textMD5, submissionUUID)
	}

	row, err := rs.components.Storage.MySQL.FindResumeRowByRawTextMD5(ctx, textMD5)
	if err != nil {
		return false, "", err
	}
	if row != nil && row.SubmissionUUID != submissionUUID {
		return true, row.SubmissionUUID, nil
	}
	return false, "", nil
}

// markParseFailed 将记录标记为解析失败并保留错误信息
func (rs *resumeServiceImpl) markParseFailed(ctx context.Context, submissionUUID string, detail string) {
	log := logger.FromContext(ctx)
	err := rs.components.Storage.MySQL.UpdateResumeRecordFields(ctx, submissionUUID, map[string]interface{}{
		"processing_status": constants.StatusParseFailed,
		"error_message":     detail,
	})
	if err != nil {
		log.Error().Err(err).Msg("更新状态为PARSE_FAILED失败")
	}
}

// ProcessKeywordTask 处理关键词增强任务
func (rs *resumeServiceImpl) ProcessKeywordTask(ctx context.Context, message storage.ResumeParsedMessage) error {
	ctx, span := tracer.Start(ctx, "ProcessKeywordTask",
		trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()

	span.SetAttributes(attribute.String("submission_uuid", message.SubmissionUUID))

	ctx = logger.WithSubmissionUUID(ctx, message.SubmissionUUID)
	log := logger.FromContext(ctx)

	if rs.components.Storage == nil || rs.components.Storage.MySQL == nil {
		tracing.RecordError(span, ErrStorageNotInit, tracing.ErrorTypeInternal)
		return ErrStorageNotInit
	}

	err := rs.components.Storage.MySQL.Transaction(ctx, func(tx *gorm.DB) error {
		// 行锁防止同一提交被并发增强
		var row models.ResumeRecordRow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "submission_uuid = ?", message.SubmissionUUID).Error; err != nil {
			return NewDatabaseError(message.SubmissionUUID, err.Error())
		}

		if row.ProcessingStatus == constants.StatusKeywordsCompleted ||
			row.ProcessingStatus == constants.StatusKeywordsFallback {
			log.Debug().Str("status", row.ProcessingStatus).Msg("关键词任务已处理过，跳过")
			return nil
		}

		var record types.ResumeRecord
		if err := json.Unmarshal(row.ResumeDataJSON, &record); err != nil {
			return NewDatabaseError(message.SubmissionUUID, fmt.Sprintf("反序列化简历记录失败: %v", err))
		}

		status := constants.StatusKeywordsCompleted
		augmenter := rs.effectiveAugmenter()
		if augmenter == nil {
			// 增强器未配置或被关闭时直接降级为原始技能列表
			record.CombinedKeywords = append([]string{}, record.Skills...)
			status = constants.StatusKeywordsFallback
		} else {
			if fallback := augmenter.AugmentRecord(ctx, &record); fallback {
				status = constants.StatusKeywordsFallback
			}
		}

		keywordsJSON := utils.ConvertArrayToJSON(record.CombinedKeywords)
		recordJSON, err := json.Marshal(&record)
		if err != nil {
			return NewDatabaseError(message.SubmissionUUID, fmt.Sprintf("序列化增强后的记录失败: %v", err))
		}

		if err := rs.components.Storage.MySQL.UpdateCombinedKeywords(
			tx, message.SubmissionUUID, datatypes.JSON(recordJSON), keywordsJSON, status); err != nil {
			return NewUpdateError(message.SubmissionUUID, err.Error())
		}

		span.SetAttributes(
			attribute.Int("combined_keywords_count", len(record.CombinedKeywords)),
			attribute.String("final_status", status),
		)
		return nil
	})

	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return err
	}

	span.SetStatus(codes.Ok, "处理成功")
	log.Info().Msg("关键词增强任务完成")
	return nil
}
