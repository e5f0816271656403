package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// errEmptyResumeText 提交文本为空白时的校验错误
var errEmptyResumeText = errors.New("resume_text 为空白")

// ResumeHandler 简历处理器，负责受理文本提交与查询
type ResumeHandler struct {
	storage *storage.Storage
	service processor.ResumeService
}

// NewResumeHandler 创建一个新的简历处理器
func NewResumeHandler(storage *storage.Storage, service processor.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		storage: storage,
		service: service,
	}
}

// ResumeParseRequest 原始文本提交请求
type ResumeParseRequest struct {
	FileName   string `json:"file_name"`
	ResumeText string `json:"resume_text"`
}

// ResumeParseResponse 提交响应
type ResumeParseResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// HandleParseSubmit 受理一次原始文本提交
// POST /api/v1/resume/parse
func (h *ResumeHandler) HandleParseSubmit(ctx context.Context, c *app.RequestContext) {
	var req ResumeParseRequest
	if err := c.BindJSON(&req); err != nil {
		tracing.RecordError(trace.SpanFromContext(ctx), err, tracing.ErrorTypeValidation)
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体格式错误"})
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		tracing.RecordError(trace.SpanFromContext(ctx), errEmptyResumeText, tracing.ErrorTypeValidation)
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "resume_text 不能为空"})
		return
	}
	if req.FileName == "" {
		req.FileName = "untitled.txt"
	}

	submissionUUID, status, err := h.service.SubmitRawText(ctx, req.FileName, req.ResumeText)
	if err != nil {
		logger.Error().Err(err).Str("file_name", req.FileName).Msg("受理文本提交失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	c.JSON(consts.StatusAccepted, ResumeParseResponse{
		SubmissionUUID: submissionUUID,
		Status:         status,
	})
}

// ResumeDetailResponse 单条简历查询响应
type ResumeDetailResponse struct {
	SubmissionUUID   string          `json:"submission_uuid"`
	FileName         string          `json:"file_name"`
	ProcessingStatus string          `json:"processing_status"`
	ParserVersion    string          `json:"parser_version,omitempty"`
	Record           json.RawMessage `json:"record,omitempty"`
	CombinedKeywords json.RawMessage `json:"combined_keywords,omitempty"`
	ErrorMessage     string          `json:"error_message,omitempty"`
}

// HandleGetResume 查询单条简历记录
// GET /api/v1/resume/:uuid
func (h *ResumeHandler) HandleGetResume(ctx context.Context, c *app.RequestContext) {
	submissionUUID := c.Param("uuid")
	if submissionUUID == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "uuid 不能为空"})
		return
	}

	row, err := h.storage.MySQL.GetResumeRecordRow(ctx, submissionUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(consts.StatusNotFound, map[string]string{"error": "简历记录不存在"})
			return
		}
		logger.Error().Err(err).Str("submission_uuid", submissionUUID).Msg("查询简历记录失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "查询失败"})
		return
	}

	resp := ResumeDetailResponse{
		SubmissionUUID:   row.SubmissionUUID,
		FileName:         row.FileName,
		ProcessingStatus: row.ProcessingStatus,
		ParserVersion:    row.ParserVersion,
		ErrorMessage:     row.ErrorMessage,
	}
	if len(row.ResumeDataJSON) > 0 {
		resp.Record = json.RawMessage(row.ResumeDataJSON)
	}
	if len(row.CombinedKeywordsJSON) > 0 {
		resp.CombinedKeywords = json.RawMessage(row.CombinedKeywordsJSON)
	}

	c.JSON(consts.StatusOK, resp)
}
