package keyword

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
)

var tracer = otel.Tracer("keyword")

// LLMKeywordExtractor 关键词增强适配器。
// 这是核心流水线中唯一做阻塞外部 I/O 的环节；任何失败都在边界内
// 降级为原始技能列表，绝不把错误抛给调用方。
type LLMKeywordExtractor struct {
	llmModel model.ChatModel
	logger   zerolog.Logger
}

// ExtractorOption 提取器配置选项
type ExtractorOption func(*LLMKeywordExtractor)

// WithLogger 注入日志器
func WithLogger(logger zerolog.Logger) ExtractorOption {
	return func(x *LLMKeywordExtractor) {
		x.logger = logger
	}
}

// NewLLMKeywordExtractor 创建提取器。chatModel 为 nil 时所有请求直接降级。
func NewLLMKeywordExtractor(chatModel model.ChatModel, opts ...ExtractorOption) *LLMKeywordExtractor {
	x := &LLMKeywordExtractor{
		llmModel: chatModel,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ExtractKeywords 对一段文本调用模型并解码关键词载荷。
// 这是可能失败的底层操作，降级逻辑在 AugmentRecord 里。
func (x *LLMKeywordExtractor) ExtractKeywords(ctx context.Context, content string) (*types.KeywordExtraction, error) {
	raw, err := x.generate(ctx, content)
	if err != nil {
		return nil, err
	}
	extraction, err := decodeExtraction(raw)
	if err != nil {
		return nil, fmt.Errorf("解码关键词响应失败: %w", err)
	}
	return extraction, nil
}

// ExtractJobKeywords 从岗位描述提取两层关键词要求，保留层级结构
func (x *LLMKeywordExtractor) ExtractJobKeywords(ctx context.Context, description string) (*types.JobKeywordRequirement, error) {
	raw, err := x.generate(ctx, description)
	if err != nil {
		return nil, err
	}
	return decodeJobRequirement(raw)
}

// AugmentRecord 用模型提取的关键词填充 CombinedKeywords。
// 失败时回退到简历的原始技能列表。返回值指示本次是否发生了降级。
func (x *LLMKeywordExtractor) AugmentRecord(ctx context.Context, record *types.ResumeRecord) (fallback bool) {
	ctx, span := tracer.Start(ctx, "AugmentKeywords")
	defer span.End()
	span.SetAttributes(
		attribute.String("resume.file_name", tracing.SafeAttributeValue("file_name", record.FileName, tracing.DefaultMaxLength)),
		attribute.Int("resume.content_length", len(record.SearchableOllamaContent)),
		attribute.String("resume.content_preview", tracing.SafeResumeContent(record.SearchableOllamaContent)),
	)

	extraction, err := x.ExtractKeywords(ctx, record.SearchableOllamaContent)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeLLM)
		x.logger.Warn().Err(err).
			Str("file_name", record.FileName).
			Msg("关键词提取失败，回退到原始技能列表")
		record.CombinedKeywords = append([]string(nil), record.Skills...)
		if record.CombinedKeywords == nil {
			record.CombinedKeywords = []string{}
		}
		return true
	}

	record.CombinedKeywords = extraction.Flatten()
	if record.CombinedKeywords == nil {
		record.CombinedKeywords = []string{}
	}
	span.SetAttributes(attribute.Int("keywords.count", len(record.CombinedKeywords)))
	return false
}

// generate 发送提示词并返回模型的原始文本响应
func (x *LLMKeywordExtractor) generate(ctx context.Context, content string) (string, error) {
	if x.llmModel == nil {
		return "", fmt.Errorf("未配置 LLM 模型")
	}
	messages := []*schema.Message{
		schema.UserMessage(extractionPrompt + content),
	}
	resp, err := x.llmModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("LLM Generate 失败: %w", err)
	}
	x.logger.Debug().
		Str("response_preview", tracing.TruncateString(resp.Content, tracing.MaxLLMResponseLength)).
		Msg("收到关键词提取响应")
	return resp.Content, nil
}
