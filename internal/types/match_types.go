package types

// Tier 岗位关键词的重要性层级
type Tier string

const (
	// TierRequired 必备层
	TierRequired Tier = "required"
	// TierPreferred 加分层
	TierPreferred Tier = "preferred"
)

// KeywordCategory 关键词类别名
type KeywordCategory = string

const (
	CategoryHardSkills           KeywordCategory = "hard_skills"
	CategoryToolsAndPlatforms    KeywordCategory = "tools_and_platforms"
	CategoryMethodologies        KeywordCategory = "methodologies_and_frameworks"
	CategoryDomainKnowledge      KeywordCategory = "domain_knowledge"
	CategoryQualifications       KeywordCategory = "qualifications"
	CategoryExperienceIndicators KeywordCategory = "experience_indicators"
)

// KnownKeywordCategories 关键词增强响应中允许出现的六个类别
var KnownKeywordCategories = []KeywordCategory{
	CategoryHardSkills,
	CategoryToolsAndPlatforms,
	CategoryMethodologies,
	CategoryDomainKnowledge,
	CategoryQualifications,
	CategoryExperienceIndicators,
}

// ScoringCategories 参与计分的三个类别，其余类别仅出现在报告中
var ScoringCategories = []KeywordCategory{
	CategoryHardSkills,
	CategoryToolsAndPlatforms,
	CategoryMethodologies,
}

// JobKeywordRequirement 岗位关键词要求：两个层级，各自按类别分组
type JobKeywordRequirement struct {
	Required  map[KeywordCategory][]string `json:"required"`
	Preferred map[KeywordCategory][]string `json:"preferred"`
}

// TierKeywords 按层级取关键词映射，未知层级返回nil
func (r *JobKeywordRequirement) TierKeywords(tier Tier) map[KeywordCategory][]string {
	switch tier {
	case TierRequired:
		return r.Required
	case TierPreferred:
		return r.Preferred
	}
	return nil
}

// KeywordPayloadKind 关键词增强响应的两种形态
type KeywordPayloadKind string

const (
	// KeywordPayloadFlat 平铺关键词数组
	KeywordPayloadFlat KeywordPayloadKind = "flat"
	// KeywordPayloadCategorized 按类别分组的映射
	KeywordPayloadCategorized KeywordPayloadKind = "categorized"
)

// KeywordExtraction 关键词增强服务的响应，显式标记形态而不是鸭子类型判断
type KeywordExtraction struct {
	Kind KeywordPayloadKind
	// Flat 仅当 Kind == KeywordPayloadFlat 时有效
	Flat []string
	// Categorized 仅当 Kind == KeywordPayloadCategorized 时有效；
	// 层级已合并，键为类别名
	Categorized map[KeywordCategory][]string
}

// Flatten 将响应展开为一个合并关键词列表，保持首次出现顺序并去重
func (e *KeywordExtraction) Flatten() []string {
	var out []string
	seen := make(map[string]struct{})
	push := func(kw string) {
		if kw == "" {
			return
		}
		if _, ok := seen[kw]; ok {
			return
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	switch e.Kind {
	case KeywordPayloadFlat:
		for _, kw := range e.Flat {
			push(kw)
		}
	case KeywordPayloadCategorized:
		// 固定类别遍历顺序，保证展开结果可复现
		for _, cat := range KnownKeywordCategories {
			for _, kw := range e.Categorized[cat] {
				push(kw)
			}
		}
	}
	return out
}

// CategoryMatch 单个类别下命中与缺失的关键词
type CategoryMatch struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// TierBreakdown 单个层级的报告，计分类别与附加类别分开呈现
type TierBreakdown struct {
	ScoringKeywords    map[KeywordCategory]CategoryMatch `json:"scoring_keywords"`
	AdditionalKeywords map[KeywordCategory]CategoryMatch `json:"additional_keywords"`
}

// MatchReport 单份简历的匹配报告
type MatchReport struct {
	SubmissionUUID string                 `json:"submission_uuid"`
	FileName       string                 `json:"file_name"`
	Score          float64                `json:"score"` // [0,1]
	Breakdown      map[Tier]TierBreakdown `json:"breakdown"`
}

// MatchResponse 匹配引擎的整体输出
type MatchResponse struct {
	Results     []MatchReport `json:"results"`
	TotalScored int           `json:"total_scored"`
	// Message 无可计分关键词等空结果场景的说明
	Message string `json:"message,omitempty"`
}
