package processor

import (
	"context"

	"resume-match-go/internal/types"
)

// TextParser 启发式简历文本解析接口
type TextParser interface {
	// Parse 从原始文本构建结构化简历记录，永不失败
	Parse(resumeText string, fileName string) *types.ResumeRecord
}

// KeywordAugmenter 关键词增强接口
type KeywordAugmenter interface {
	// AugmentRecord 填充记录的CombinedKeywords，返回是否发生降级
	AugmentRecord(ctx context.Context, record *types.ResumeRecord) bool
}
