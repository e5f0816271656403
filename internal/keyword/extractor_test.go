package keyword

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/agent"
	"resume-match-go/internal/types"
)

func TestAugmentRecordCategorizedResponse(t *testing.T) {
	// 1. 模拟两层嵌套形态的响应，外面包了一圈说明文字
	mockResp := `Here is the extraction result:
{
  "required_keywords": {
    "hard_skills": ["Python", "SQL"],
    "tools_and_platforms": ["Docker"]
  },
  "preferred_keywords": {
    "hard_skills": ["Go"],
    "methodologies_and_frameworks": ["Agile"]
  }
}
Hope this helps!`
	extractor := NewLLMKeywordExtractor(agent.NewMockChatClient(mockResp, nil))

	record := &types.ResumeRecord{
		SearchableOllamaContent: "some resume text",
		Skills:                  []string{"fallback-skill"},
	}

	// 2. 增强不应降级，合并关键词按固定类别顺序展开并去重
	fallback := extractor.AugmentRecord(context.Background(), record)
	assert.False(t, fallback)
	assert.Equal(t, []string{"Python", "SQL", "Go", "Docker", "Agile"}, record.CombinedKeywords)
}

func TestAugmentRecordFlatResponse(t *testing.T) {
	extractor := NewLLMKeywordExtractor(agent.NewMockChatClient(`["Go", "Redis", "Go"]`, nil))

	record := &types.ResumeRecord{Skills: []string{"fallback"}}

	fallback := extractor.AugmentRecord(context.Background(), record)
	assert.False(t, fallback)
	assert.Equal(t, []string{"Go", "Redis"}, record.CombinedKeywords)
}

func TestAugmentRecordFallbackOnModelError(t *testing.T) {
	extractor := NewLLMKeywordExtractor(agent.NewMockChatClient("", errors.New("connection refused")))

	record := &types.ResumeRecord{Skills: []string{"Go", "SQL"}}

	// 模型出错时回退到原始技能列表，不向外抛错
	fallback := extractor.AugmentRecord(context.Background(), record)
	assert.True(t, fallback)
	assert.Equal(t, []string{"Go", "SQL"}, record.CombinedKeywords)
}

func TestAugmentRecordFallbackOnGarbageResponse(t *testing.T) {
	extractor := NewLLMKeywordExtractor(agent.NewMockChatClient("sorry, I can not do that", nil))

	record := &types.ResumeRecord{Skills: []string{"Go"}}

	fallback := extractor.AugmentRecord(context.Background(), record)
	assert.True(t, fallback)
	assert.Equal(t, []string{"Go"}, record.CombinedKeywords)
}

func TestAugmentRecordFallbackWithEmptySkills(t *testing.T) {
	extractor := NewLLMKeywordExtractor(nil)

	record := &types.ResumeRecord{}

	// 没有模型也没有技能时合并关键词是空列表而不是 nil
	fallback := extractor.AugmentRecord(context.Background(), record)
	assert.True(t, fallback)
	assert.NotNil(t, record.CombinedKeywords)
	assert.Empty(t, record.CombinedKeywords)
}

func TestExtractJobKeywords(t *testing.T) {
	mockResp := "```json\n" + `{
  "required_keywords": {
    "hard_skills": ["Python"],
    "qualifications": ["PMP"]
  },
  "preferred_keywords": {
    "tools_and_platforms": ["AWS"]
  }
}` + "\n```"
	extractor := NewLLMKeywordExtractor(agent.NewMockChatClient(mockResp, nil))

	req, err := extractor.ExtractJobKeywords(context.Background(), "job description text")
	require.NoError(t, err)
	assert.Equal(t, []string{"Python"}, req.Required[types.CategoryHardSkills])
	assert.Equal(t, []string{"PMP"}, req.Required[types.CategoryQualifications])
	assert.Equal(t, []string{"AWS"}, req.Preferred[types.CategoryToolsAndPlatforms])
}

func TestExtractJobKeywordsEmptyPayload(t *testing.T) {
	extractor := NewLLMKeywordExtractor(agent.NewMockChatClient(`{"required_keywords": {}, "preferred_keywords": {}}`, nil))

	_, err := extractor.ExtractJobKeywords(context.Background(), "text")
	assert.Error(t, err)
}

func TestExtractJSONObjectBraceMatching(t *testing.T) {
	// 嵌套对象按花括号配对截取最外层
	text := `prefix {"a": {"b": 1}} suffix`
	assert.Equal(t, `{"a": {"b": 1}}`, extractJSONObject(text))

	assert.Equal(t, "", extractJSONObject("no braces here"))

	// 未闭合的对象不返回半截文本
	assert.Equal(t, "", extractJSONObject(`{"a": 1`))
}

func TestDecodeExtractionSingleLayerMap(t *testing.T) {
	// 单层类别映射形态
	raw := `{"hard_skills": ["Go"], "domain_knowledge": ["FinTech"], "unknown_key": ["x"]}`

	extraction, err := decodeExtraction(raw)
	require.NoError(t, err)
	assert.Equal(t, types.KeywordPayloadCategorized, extraction.Kind)
	assert.Equal(t, []string{"Go"}, extraction.Categorized[types.CategoryHardSkills])
	assert.Equal(t, []string{"FinTech"}, extraction.Categorized[types.CategoryDomainKnowledge])
	// 未知类别被丢弃
	assert.NotContains(t, extraction.Categorized, "unknown_key")
}
