package processor

import (
	"log"
	"os"

	"resume-match-go/internal/storage"
)

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	UseLLM bool        // 是否启用LLM关键词增强
	Debug  bool        // 是否开启调试模式
	Logger *log.Logger // 日志记录器
}

// defaultSettings 构造默认设置
func defaultSettings() *Settings {
	return &Settings{
		UseLLM: true,
		Logger: log.New(os.Stdout, "[ResumeService] ", log.LstdFlags),
	}
}

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// ----- 组件选项 -----

// WithcompTextparser 设置文本解析器组件
func WithcompTextparser(parser TextParser) ComponentOpt {
	return func(c *Components) {
		c.TextParser = parser
	}
}

// WithcompKeywordaugmenter 设置关键词增强组件
func WithcompKeywordaugmenter(augmenter KeywordAugmenter) ComponentOpt {
	return func(c *Components) {
		c.KeywordAugmenter = augmenter
	}
}

// WithcompStorage 设置存储组件
func WithcompStorage(storage *storage.Storage) ComponentOpt {
	return func(c *Components) {
		c.Storage = storage
	}
}

// ----- 设置选项 -----

// WithsetDebug 设置调试模式
func WithsetDebug(debug bool) SettingOpt {
	return func(s *Settings) {
		s.Debug = debug
	}
}

// WithsetLogger 设置日志记录器
func WithsetLogger(logger *log.Logger) SettingOpt {
	return func(s *Settings) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithsetUsellm 设置是否启用LLM增强
func WithsetUsellm(useLLM bool) SettingOpt {
	return func(s *Settings) {
		s.UseLLM = useLLM
	}
}
