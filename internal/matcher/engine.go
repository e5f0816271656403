package matcher

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"resume-match-go/internal/types"
)

const (
	// DefaultTopK 未显式指定返回条数时的默认值
	DefaultTopK = 10
	// MaxTopK 返回条数上限，请求再大也截断到这里
	MaxTopK = 100
)

// NoScorableKeywordsMessage 岗位要求中三个计分类别都没有关键词时的说明
const NoScorableKeywordsMessage = "no scorable keywords found in job requirement"

// Candidate 参与匹配的一份简历：标识、文件名和合并关键词列表
type Candidate struct {
	SubmissionUUID string
	FileName       string
	Keywords       []string
}

// Engine 层级加权匹配引擎。
// 无内部状态修改，单个实例可被并发调用。
type Engine struct {
	weights Weights
	logger  zerolog.Logger
}

// EngineOption 引擎配置选项
type EngineOption func(*Engine)

// WithWeights 替换内置权重表
func WithWeights(w Weights) EngineOption {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithLogger 注入日志器
func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine 创建匹配引擎
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		weights: DefaultWeights(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Match 对一批候选简历计算岗位匹配分，按分数降序返回前 topK 条。
// topK 不大于 0 时取默认值，超过上限时截断到上限。
func (e *Engine) Match(req *types.JobKeywordRequirement, candidates []Candidate, topK int) *types.MatchResponse {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	maxCounts := e.scoringKeywordCounts(req)
	tierWeights, scorable := e.composeTierWeights(maxCounts)
	if !scorable {
		e.logger.Debug().Msg("岗位要求没有任何可计分关键词，返回空结果")
		return &types.MatchResponse{
			Results:     []types.MatchReport{},
			TotalScored: 0,
			Message:     NoScorableKeywordsMessage,
		}
	}
	categoryWeights := e.composeCategoryWeights(maxCounts)

	reports := make([]types.MatchReport, 0, len(candidates))
	for _, cand := range candidates {
		reports = append(reports, e.scoreCandidate(req, cand, maxCounts, tierWeights, categoryWeights))
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Score > reports[j].Score
	})

	total := len(reports)
	if len(reports) > topK {
		reports = reports[:topK]
	}
	return &types.MatchResponse{
		Results:     reports,
		TotalScored: total,
	}
}

// scoringKeywordCounts 统计每个(层级,计分类别)对的岗位关键词数
func (e *Engine) scoringKeywordCounts(req *types.JobKeywordRequirement) map[types.Tier]map[types.KeywordCategory]int {
	counts := make(map[types.Tier]map[types.KeywordCategory]int, 2)
	for _, tier := range []types.Tier{types.TierRequired, types.TierPreferred} {
		counts[tier] = make(map[types.KeywordCategory]int, len(types.ScoringCategories))
		keywords := req.TierKeywords(tier)
		for _, cat := range types.ScoringCategories {
			counts[tier][cat] = len(keywords[cat])
		}
	}
	return counts
}

// composeTierWeights 组合层级权重：仅一层有可计分关键词时该层权重为 1，
// 两层都没有时返回 scorable=false。
func (e *Engine) composeTierWeights(maxCounts map[types.Tier]map[types.KeywordCategory]int) (map[types.Tier]float64, bool) {
	hasKeywords := func(tier types.Tier) bool {
		for _, n := range maxCounts[tier] {
			if n > 0 {
				return true
			}
		}
		return false
	}
	reqHas := hasKeywords(types.TierRequired)
	prefHas := hasKeywords(types.TierPreferred)

	switch {
	case reqHas && prefHas:
		return map[types.Tier]float64{
			types.TierRequired:  e.weights.Tier[types.TierRequired],
			types.TierPreferred: e.weights.Tier[types.TierPreferred],
		}, true
	case reqHas:
		return map[types.Tier]float64{types.TierRequired: 1.0, types.TierPreferred: 0.0}, true
	case prefHas:
		return map[types.Tier]float64{types.TierRequired: 0.0, types.TierPreferred: 1.0}, true
	}
	return nil, false
}

// composeCategoryWeights 层级内丢弃无关键词的类别并把剩余权重归一到 1
func (e *Engine) composeCategoryWeights(maxCounts map[types.Tier]map[types.KeywordCategory]int) map[types.Tier]map[types.KeywordCategory]float64 {
	out := make(map[types.Tier]map[types.KeywordCategory]float64, 2)
	for tier, base := range e.weights.Category {
		kept := make(map[types.KeywordCategory]float64, len(base))
		sum := 0.0
		for cat, w := range base {
			if maxCounts[tier][cat] > 0 {
				kept[cat] = w
				sum += w
			}
		}
		if sum > 0 {
			for cat := range kept {
				kept[cat] /= sum
			}
		}
		out[tier] = kept
	}
	return out
}

// scoreCandidate 为单份简历算分并生成完整的命中/缺失报告
func (e *Engine) scoreCandidate(
	req *types.JobKeywordRequirement,
	cand Candidate,
	maxCounts map[types.Tier]map[types.KeywordCategory]int,
	tierWeights map[types.Tier]float64,
	categoryWeights map[types.Tier]map[types.KeywordCategory]float64,
) types.MatchReport {
	owned := make(map[string]struct{}, len(cand.Keywords))
	for _, kw := range cand.Keywords {
		owned[strings.ToLower(strings.TrimSpace(kw))] = struct{}{}
	}

	score := 0.0
	breakdown := make(map[types.Tier]types.TierBreakdown, 2)
	for _, tier := range []types.Tier{types.TierRequired, types.TierPreferred} {
		tb := types.TierBreakdown{
			ScoringKeywords:    make(map[types.KeywordCategory]types.CategoryMatch),
			AdditionalKeywords: make(map[types.KeywordCategory]types.CategoryMatch),
		}
		tierScore := 0.0
		for cat, keywords := range req.TierKeywords(tier) {
			if len(keywords) == 0 {
				continue
			}
			cm := splitMatched(keywords, owned)
			if isScoringCategory(cat) {
				tb.ScoringKeywords[cat] = cm
				if n := maxCounts[tier][cat]; n > 0 {
					fraction := float64(len(cm.Matched)) / float64(n)
					tierScore += fraction * categoryWeights[tier][cat]
				}
			} else {
				// 非计分类别只进报告，不影响分数
				tb.AdditionalKeywords[cat] = cm
			}
		}
		score += tierScore * tierWeights[tier]
		breakdown[tier] = tb
	}

	return types.MatchReport{
		SubmissionUUID: cand.SubmissionUUID,
		FileName:       cand.FileName,
		Score:          score,
		Breakdown:      breakdown,
	}
}

// splitMatched 把岗位关键词按是否出现在候选人关键词集合里分成命中与缺失
func splitMatched(keywords []string, owned map[string]struct{}) types.CategoryMatch {
	cm := types.CategoryMatch{
		Matched: []string{},
		Missing: []string{},
	}
	for _, kw := range keywords {
		if _, ok := owned[strings.ToLower(strings.TrimSpace(kw))]; ok {
			cm.Matched = append(cm.Matched, kw)
		} else {
			cm.Missing = append(cm.Missing, kw)
		}
	}
	return cm
}

func isScoringCategory(cat types.KeywordCategory) bool {
	for _, c := range types.ScoringCategories {
		if c == cat {
			return true
		}
	}
	return false
}
