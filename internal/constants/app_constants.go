package constants

import "time"

// 简历提交的处理状态
const (
	// StatusPendingParsing 已接收，等待解析
	StatusPendingParsing = "PENDING_PARSING"
	// StatusParsed 启发式解析完成，记录已落库
	StatusParsed = "PARSED"
	// StatusQueuedForKeywords 已投递到关键词增强队列
	StatusQueuedForKeywords = "QUEUED_FOR_KEYWORDS"
	// StatusKeywordsCompleted 关键词增强成功
	StatusKeywordsCompleted = "KEYWORDS_COMPLETED"
	// StatusKeywordsFallback 关键词增强降级为原始技能列表
	StatusKeywordsFallback = "KEYWORDS_FALLBACK"
	// StatusParseFailed 解析阶段失败
	StatusParseFailed = "PARSE_FAILED"
	// StatusDuplicateSkipped 文本MD5重复，跳过处理
	StatusDuplicateSkipped = "DUPLICATE_SKIPPED"
)

const (
	// MatchCacheDuration 匹配结果缓存时长
	MatchCacheDuration = 10 * time.Minute
)
