package keyword

import (
	"encoding/json"
	"fmt"
	"strings"

	"resume-match-go/internal/types"
)

// extractJSONObject 从可能混有说明文字的响应里取出最外层的花括号对象。
// 优先剥掉 markdown 代码栅栏，然后按花括号配对截取；找不到返回空串。
func extractJSONObject(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			text = rest[:end]
		}
	}

	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}
	level := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			level++
		case '}':
			level--
			if level == 0 {
				return strings.TrimSpace(text[start : i+1])
			}
		}
	}
	return ""
}

// extractJSONArray 取出最外层的方括号数组，用于平铺列表形态的响应
func extractJSONArray(text string) string {
	start := strings.Index(text, "[")
	if start == -1 {
		return ""
	}
	level := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '[':
			level++
		case ']':
			level--
			if level == 0 {
				return strings.TrimSpace(text[start : i+1])
			}
		}
	}
	return ""
}

// tieredPayload 提示词约定的两层嵌套形态
type tieredPayload struct {
	RequiredKeywords  map[string][]string `json:"required_keywords"`
	PreferredKeywords map[string][]string `json:"preferred_keywords"`
}

// decodeExtraction 按三种形态依次尝试解码响应文本：
// required/preferred 两层嵌套、单层类别映射、平铺字符串数组。
// 全部失败时返回错误，由调用方降级。
func decodeExtraction(raw string) (*types.KeywordExtraction, error) {
	if obj := extractJSONObject(raw); obj != "" {
		var tiered tieredPayload
		if err := json.Unmarshal([]byte(obj), &tiered); err == nil {
			if merged := mergeTiers(tiered); len(merged) > 0 {
				return &types.KeywordExtraction{
					Kind:        types.KeywordPayloadCategorized,
					Categorized: merged,
				}, nil
			}
		}

		var flat map[string][]string
		if err := json.Unmarshal([]byte(obj), &flat); err == nil {
			if cats := keepKnownCategories(flat); len(cats) > 0 {
				return &types.KeywordExtraction{
					Kind:        types.KeywordPayloadCategorized,
					Categorized: cats,
				}, nil
			}
		}
		return nil, fmt.Errorf("花括号对象里没有可识别的关键词结构")
	}

	if arr := extractJSONArray(raw); arr != "" {
		var list []string
		if err := json.Unmarshal([]byte(arr), &list); err == nil && len(list) > 0 {
			return &types.KeywordExtraction{
				Kind: types.KeywordPayloadFlat,
				Flat: list,
			}, nil
		}
	}

	return nil, fmt.Errorf("响应中找不到可解析的 JSON 载荷")
}

// mergeTiers 把 required/preferred 两层按类别合并成单层映射
func mergeTiers(p tieredPayload) map[types.KeywordCategory][]string {
	merged := make(map[types.KeywordCategory][]string)
	appendTier := func(tier map[string][]string) {
		for _, cat := range types.KnownKeywordCategories {
			if kws := tier[cat]; len(kws) > 0 {
				merged[cat] = append(merged[cat], kws...)
			}
		}
	}
	appendTier(p.RequiredKeywords)
	appendTier(p.PreferredKeywords)
	return merged
}

// keepKnownCategories 过滤单层映射，只保留六个已知类别
func keepKnownCategories(m map[string][]string) map[types.KeywordCategory][]string {
	out := make(map[types.KeywordCategory][]string)
	for _, cat := range types.KnownKeywordCategories {
		if kws := m[cat]; len(kws) > 0 {
			out[cat] = kws
		}
	}
	return out
}

// decodeJobRequirement 把响应解码成岗位关键词要求，保留两层结构
func decodeJobRequirement(raw string) (*types.JobKeywordRequirement, error) {
	obj := extractJSONObject(raw)
	if obj == "" {
		return nil, fmt.Errorf("响应中找不到花括号对象")
	}
	var tiered tieredPayload
	if err := json.Unmarshal([]byte(obj), &tiered); err != nil {
		return nil, fmt.Errorf("解析岗位关键词 JSON 失败: %w", err)
	}
	req := &types.JobKeywordRequirement{
		Required:  keepKnownCategories(tiered.RequiredKeywords),
		Preferred: keepKnownCategories(tiered.PreferredKeywords),
	}
	if len(req.Required) == 0 && len(req.Preferred) == 0 {
		return nil, fmt.Errorf("岗位关键词响应中两层都为空")
	}
	return req, nil
}
