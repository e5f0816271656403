package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-match-go/internal/tracing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("agent")

const (
	defaultOllamaAPIURL    = "http://localhost:11434/api/chat"
	defaultOllamaModelName = "phi4:latest"
	defaultOllamaTimeout   = 120 * time.Second
)

// OllamaChatModel 实现 model.ChatModel 接口，对接本地 Ollama 的 /api/chat。
// 只走非流式路径，Stream 未实现。
type OllamaChatModel struct {
	modelName  string
	apiURL     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewOllamaChatModel 创建 Ollama 聊天模型客户端。
// modelName 或 apiURL 为空时使用默认值。
func NewOllamaChatModel(modelName, apiURL string, logger zerolog.Logger) *OllamaChatModel {
	mn := strings.TrimSpace(modelName)
	if mn == "" {
		mn = defaultOllamaModelName
	}
	url := strings.TrimSpace(apiURL)
	if url == "" {
		url = defaultOllamaAPIURL
	}
	logger.Info().Str("api_url", url).Str("model", mn).Msg("使用 Ollama LLM 客户端")
	return &OllamaChatModel{
		modelName:  mn,
		apiURL:     url,
		httpClient: &http.Client{Timeout: defaultOllamaTimeout},
		logger:     logger,
	}
}

// WithTimeout 覆盖HTTP客户端超时，d<=0时保持默认值
func (o *OllamaChatModel) WithTimeout(d time.Duration) *OllamaChatModel {
	if d > 0 {
		o.httpClient.Timeout = d
	}
	return o
}

// --- Ollama /api/chat 请求/响应结构 ---

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

type ollamaChatResponse struct {
	Model     string            `json:"model"`
	Message   ollamaChatMessage `json:"message"`
	Done      bool              `json:"done"`
	DoneError string            `json:"error,omitempty"`
}

// Generate 实现 model.ChatModel 接口
func (o *OllamaChatModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	ctx, span := tracer.Start(ctx, "OllamaGenerate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", o.modelName),
		attribute.Int("llm.messages", len(messages)),
	)

	for _, opt := range options {
		_ = opt
	}

	reqMessages := make([]ollamaChatMessage, 0, len(messages))
	for _, msg := range messages {
		reqMessages = append(reqMessages, ollamaChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	payload := ollamaChatRequest{
		Model:    o.modelName,
		Messages: reqMessages,
		Stream:   false,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建 HTTP 请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	o.logger.Debug().Str("model", o.modelName).Int("messages", len(reqMessages)).Msg("发送 Ollama 请求")

	httpResp, err := o.httpClient.Do(httpReq)
	if err != nil {
		wrapped := fmt.Errorf("发送 HTTP 请求失败: %w", err)
		if errors.Is(err, context.DeadlineExceeded) {
			tracing.RecordError(span, wrapped, tracing.ErrorTypeTimeout)
		} else {
			tracing.RecordError(span, wrapped, tracing.ErrorTypeLLM)
		}
		return nil, wrapped
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("Ollama API 请求失败，状态 %s: %s", httpResp.Status, tracing.TruncateString(string(bodyBytes), tracing.DefaultMaxLength))
		tracing.RecordHTTPError(span, statusErr, httpResp.StatusCode)
		return nil, statusErr
	}

	var resp ollamaChatResponse
	if err := json.Unmarshal(bodyBytes, &resp); err != nil {
		return nil, fmt.Errorf("反序列化 Ollama 响应失败: %w", err)
	}
	if resp.DoneError != "" {
		return nil, fmt.Errorf("Ollama 返回错误: %s", resp.DoneError)
	}

	return &schema.Message{
		Role:    schema.RoleType(resp.Message.Role),
		Content: resp.Message.Content,
	}, nil
}

// Stream 实现 model.ChatModel 接口，但未针对 Ollama 实现
func (o *OllamaChatModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("OllamaChatModel 的 Stream 方法未实现")
}

// BindTools 实现 model.ChatModel 接口；关键词提取不使用工具调用
func (o *OllamaChatModel) BindTools(tools []*schema.ToolInfo) error {
	if len(tools) > 0 {
		o.logger.Warn().Int("tools", len(tools)).Msg("OllamaChatModel 不支持工具调用，忽略 BindTools")
	}
	return nil
}
