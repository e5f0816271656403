package handler

import (
	"context"
	"encoding/json"
	"errors"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/gofrs/uuid/v5"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobKeywordExtractor 从岗位描述提取两层关键词要求
type JobKeywordExtractor interface {
	ExtractJobKeywords(ctx context.Context, description string) (*types.JobKeywordRequirement, error)
}

// JobHandler 负责岗位管理与简历匹配请求
type JobHandler struct {
	cfg       *config.Config
	storage   *storage.Storage
	engine    *matcher.Engine
	extractor JobKeywordExtractor // 可选，未配置时岗位必须显式携带关键词
}

// NewJobHandler 创建一个新的 JobHandler 实例
func NewJobHandler(cfg *config.Config, storage *storage.Storage, engine *matcher.Engine, extractor JobKeywordExtractor) *JobHandler {
	return &JobHandler{
		cfg:       cfg,
		storage:   storage,
		engine:    engine,
		extractor: extractor,
	}
}

// JobCreateRequest 岗位创建请求
type JobCreateRequest struct {
	JobTitle          string              `json:"job_title"`
	JobDescription    string              `json:"job_description"`
	RequiredKeywords  map[string][]string `json:"required_keywords"`
	PreferredKeywords map[string][]string `json:"preferred_keywords"`
}

// JobCreateResponse 岗位创建响应
type JobCreateResponse struct {
	JobID             string              `json:"job_id"`
	JobTitle          string              `json:"job_title"`
	RequiredKeywords  map[string][]string `json:"required_keywords"`
	PreferredKeywords map[string][]string `json:"preferred_keywords"`
	KeywordsExtracted bool                `json:"keywords_extracted"`
}

// HandleCreateJob 创建岗位。
// 未显式携带关键词且配置了LLM时，从岗位描述自动提取。
// POST /api/v1/jobs
func (h *JobHandler) HandleCreateJob(ctx context.Context, c *app.RequestContext) {
	var req JobCreateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体格式错误"})
		return
	}
	if req.JobTitle == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "job_title 不能为空"})
		return
	}

	extracted := false
	if len(req.RequiredKeywords) == 0 && len(req.PreferredKeywords) == 0 {
		if h.extractor == nil || req.JobDescription == "" {
			c.JSON(consts.StatusBadRequest, map[string]string{"error": "缺少岗位关键词，且无法从描述自动提取"})
			return
		}
		requirement, err := h.extractor.ExtractJobKeywords(ctx, req.JobDescription)
		if err != nil {
			logger.Error().Err(err).Str("job_title", req.JobTitle).Msg("从岗位描述提取关键词失败")
			c.JSON(consts.StatusUnprocessableEntity, map[string]string{"error": "关键词提取失败: " + err.Error()})
			return
		}
		req.RequiredKeywords = requirement.Required
		req.PreferredKeywords = requirement.Preferred
		extracted = true
	}

	requiredJSON, err := json.Marshal(req.RequiredKeywords)
	if err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "序列化必备关键词失败"})
		return
	}
	preferredJSON, err := json.Marshal(req.PreferredKeywords)
	if err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "序列化加分关键词失败"})
		return
	}

	id, err := uuid.NewV7()
	if err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "生成JobID失败"})
		return
	}

	job := &models.Job{
		JobID:                 id.String(),
		JobTitle:              req.JobTitle,
		JobDescriptionText:    req.JobDescription,
		RequiredKeywordsJSON:  datatypes.JSON(requiredJSON),
		PreferredKeywordsJSON: datatypes.JSON(preferredJSON),
	}
	if err := h.storage.MySQL.CreateJob(ctx, job); err != nil {
		logger.Error().Err(err).Str("job_title", req.JobTitle).Msg("创建岗位失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "创建岗位失败"})
		return
	}

	c.JSON(consts.StatusCreated, JobCreateResponse{
		JobID:             job.JobID,
		JobTitle:          job.JobTitle,
		RequiredKeywords:  req.RequiredKeywords,
		PreferredKeywords: req.PreferredKeywords,
		KeywordsExtracted: extracted,
	})
}

// HandleGetJob 查询岗位详情
// GET /api/v1/jobs/:job_id
func (h *JobHandler) HandleGetJob(ctx context.Context, c *app.RequestContext) {
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "job_id 不能为空"})
		return
	}

	job, err := h.storage.MySQL.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(consts.StatusNotFound, map[string]string{"error": "岗位不存在"})
			return
		}
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "查询岗位失败"})
		return
	}

	c.JSON(consts.StatusOK, map[string]interface{}{
		"job_id":             job.JobID,
		"job_title":          job.JobTitle,
		"job_description":    job.JobDescriptionText,
		"required_keywords":  json.RawMessage(job.RequiredKeywordsJSON),
		"preferred_keywords": json.RawMessage(job.PreferredKeywordsJSON),
		"status":             job.Status,
	})
}

// JobUpdateRequest 岗位更新请求，未携带的字段保持原值
type JobUpdateRequest struct {
	JobTitle          *string             `json:"job_title"`
	JobDescription    *string             `json:"job_description"`
	RequiredKeywords  map[string][]string `json:"required_keywords"`
	PreferredKeywords map[string][]string `json:"preferred_keywords"`
	Status            *string             `json:"status"`
}

// applyJobUpdate 将请求中携带的字段合并到岗位记录，缺省字段不动
func applyJobUpdate(job *models.Job, req JobUpdateRequest) error {
	if req.JobTitle != nil {
		job.JobTitle = *req.JobTitle
	}
	if req.JobDescription != nil {
		job.JobDescriptionText = *req.JobDescription
	}
	if req.Status != nil {
		job.Status = *req.Status
	}
	if req.RequiredKeywords != nil {
		requiredJSON, err := json.Marshal(req.RequiredKeywords)
		if err != nil {
			return err
		}
		job.RequiredKeywordsJSON = datatypes.JSON(requiredJSON)
	}
	if req.PreferredKeywords != nil {
		preferredJSON, err := json.Marshal(req.PreferredKeywords)
		if err != nil {
			return err
		}
		job.PreferredKeywordsJSON = datatypes.JSON(preferredJSON)
	}
	return nil
}

// HandleUpdateJob 更新岗位。关键词或状态变更后清除该岗位的匹配缓存。
// PUT /api/v1/jobs/:job_id
func (h *JobHandler) HandleUpdateJob(ctx context.Context, c *app.RequestContext) {
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "job_id 不能为空"})
		return
	}

	var req JobUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体格式错误"})
		return
	}

	job, err := h.storage.MySQL.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(consts.StatusNotFound, map[string]string{"error": "岗位不存在"})
			return
		}
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "查询岗位失败"})
		return
	}

	if err := applyJobUpdate(job, req); err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "序列化岗位关键词失败"})
		return
	}

	if err := h.storage.MySQL.UpdateJob(ctx, job); err != nil {
		logger.Error().Err(err).Str("job_id", jobID).Msg("更新岗位失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "更新岗位失败"})
		return
	}

	// 岗位变更后旧匹配结果不再可信，清缓存失败只记日志不阻塞响应
	if h.storage.Redis != nil {
		if err := h.storage.Redis.InvalidateMatchCache(ctx, jobID); err != nil {
			logger.Warn().Err(err).Str("job_id", jobID).Msg("清除岗位匹配缓存失败")
		}
	}

	c.JSON(consts.StatusOK, map[string]interface{}{
		"job_id":             job.JobID,
		"job_title":          job.JobTitle,
		"job_description":    job.JobDescriptionText,
		"required_keywords":  json.RawMessage(job.RequiredKeywordsJSON),
		"preferred_keywords": json.RawMessage(job.PreferredKeywordsJSON),
		"status":             job.Status,
	})
}

// JobMatchRequest 岗位匹配请求
type JobMatchRequest struct {
	// SubmissionUUIDs 可选，为空时对全部可匹配简历计分
	SubmissionUUIDs []string `json:"submission_uuids"`
	Limit           int      `json:"limit"`
}

// HandleMatchJob 按岗位关键词对简历计分排序
// POST /api/v1/jobs/:job_id/match
func (h *JobHandler) HandleMatchJob(ctx context.Context, c *app.RequestContext) {
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "job_id 不能为空"})
		return
	}

	var req JobMatchRequest
	if len(c.Request.Body()) > 0 {
		if err := c.BindJSON(&req); err != nil {
			c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体格式错误"})
			return
		}
	}

	topK := req.Limit
	if topK <= 0 {
		topK = h.cfg.Matcher.DefaultTopK
	}
	if topK <= 0 {
		topK = matcher.DefaultTopK
	}
	if topK > matcher.MaxTopK {
		topK = matcher.MaxTopK
	}

	// 全量匹配时走Redis缓存，指定简历子集的请求不缓存
	cacheable := len(req.SubmissionUUIDs) == 0 && h.storage.Redis != nil
	if cacheable {
		if cached, err := h.storage.Redis.GetCachedMatchResponse(ctx, jobID, topK); err == nil {
			c.JSON(consts.StatusOK, cached)
			return
		} else if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn().Err(err).Str("job_id", jobID).Msg("读取匹配结果缓存失败")
		}
	}

	job, err := h.storage.MySQL.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(consts.StatusNotFound, map[string]string{"error": "岗位不存在"})
			return
		}
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "查询岗位失败"})
		return
	}

	requirement, err := decodeJobRequirement(job)
	if err != nil {
		logger.Error().Err(err).Str("job_id", jobID).Msg("解析岗位关键词失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "岗位关键词格式错误"})
		return
	}

	candidates, err := h.loadCandidates(ctx, req.SubmissionUUIDs)
	if err != nil {
		logger.Error().Err(err).Str("job_id", jobID).Msg("加载候选简历失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "加载候选简历失败"})
		return
	}

	resp := h.engine.Match(requirement, candidates, topK)

	if cacheable {
		if err := h.storage.Redis.CacheMatchResponse(ctx, jobID, topK, resp); err != nil {
			logger.Warn().Err(err).Str("job_id", jobID).Msg("写入匹配结果缓存失败")
		}
	}

	c.JSON(consts.StatusOK, resp)
}

// decodeJobRequirement 把岗位行的两个JSON列还原为关键词要求
func decodeJobRequirement(job *models.Job) (*types.JobKeywordRequirement, error) {
	requirement := &types.JobKeywordRequirement{
		Required:  map[types.KeywordCategory][]string{},
		Preferred: map[types.KeywordCategory][]string{},
	}
	if len(job.RequiredKeywordsJSON) > 0 {
		if err := json.Unmarshal(job.RequiredKeywordsJSON, &requirement.Required); err != nil {
			return nil, err
		}
	}
	if len(job.PreferredKeywordsJSON) > 0 {
		if err := json.Unmarshal(job.PreferredKeywordsJSON, &requirement.Preferred); err != nil {
			return nil, err
		}
	}
	return requirement, nil
}

// loadCandidates 加载可匹配的简历并展开其合并关键词
func (h *JobHandler) loadCandidates(ctx context.Context, uuids []string) ([]matcher.Candidate, error) {
	rows, err := h.storage.MySQL.ListScorableResumeRows(ctx, uuids)
	if err != nil {
		return nil, err
	}

	candidates := make([]matcher.Candidate, 0, len(rows))
	for _, row := range rows {
		var keywords []string
		if len(row.CombinedKeywordsJSON) > 0 {
			if err := json.Unmarshal(row.CombinedKeywordsJSON, &keywords); err != nil {
				logger.Warn().Err(err).Str("submission_uuid", row.SubmissionUUID).Msg("解析合并关键词失败，跳过该简历")
				continue
			}
		}
		candidates = append(candidates, matcher.Candidate{
			SubmissionUUID: row.SubmissionUUID,
			FileName:       row.FileName,
			Keywords:       keywords,
		})
	}
	return candidates, nil
}
