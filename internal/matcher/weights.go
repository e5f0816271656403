package matcher

import "resume-match-go/internal/types"

// Weights 匹配引擎的计分权重表。
// 作为不可变配置注入引擎，便于在测试中替换备用权重。
type Weights struct {
	// Tier 层级组合权重，两层之和应为 1
	Tier map[types.Tier]float64
	// Category 每个层级内三个计分类别的基础权重，
	// 类别缺关键词时在层级内重新归一
	Category map[types.Tier]map[types.KeywordCategory]float64
}

// DefaultWeights 内置权重：必备层 0.8、加分层 0.2；
// 必备层内工具平台类占大头，加分层更向工具平台倾斜。
func DefaultWeights() Weights {
	return Weights{
		Tier: map[types.Tier]float64{
			types.TierRequired:  0.8,
			types.TierPreferred: 0.2,
		},
		Category: map[types.Tier]map[types.KeywordCategory]float64{
			types.TierRequired: {
				types.CategoryHardSkills:        0.2,
				types.CategoryToolsAndPlatforms: 0.6,
				types.CategoryMethodologies:     0.2,
			},
			types.TierPreferred: {
				types.CategoryHardSkills:        0.1,
				types.CategoryToolsAndPlatforms: 0.8,
				types.CategoryMethodologies:     0.1,
			},
		},
	}
}
