package processor

import (
	"context"
	"errors"
	"testing"

	"resume-match-go/internal/config"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeProcessError_Formatting(t *testing.T) {
	// 1. 带Detail的错误信息
	err := NewParseError("uuid-123", "unexpected token")
	assert.Contains(t, err.Error(), "uuid-123")
	assert.Contains(t, err.Error(), "unexpected token")
	assert.Contains(t, err.Error(), "parse")

	// 2. errors.Is 应命中基础错误类型
	assert.True(t, errors.Is(err, ErrParseTextFailed))
	assert.False(t, errors.Is(err, ErrDatabaseFailed))

	// 3. Unwrap 还原基础错误
	var procErr *ResumeProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, ErrParseTextFailed, procErr.Unwrap())
}

func TestProcessRawTextSubmission_StorageNotInitialized(t *testing.T) {
	cfg := &config.Config{}
	svc := NewResumeServiceWithComponents(cfg, nil, nil, nil)

	err := svc.ProcessRawTextSubmission(context.Background(), storage.ResumeSubmittedMessage{
		SubmissionUUID: "uuid-1",
		RawText:        "John Doe\nEngineer",
	})
	assert.ErrorIs(t, err, ErrStorageNotInit)
}

func TestProcessKeywordTask_StorageNotInitialized(t *testing.T) {
	cfg := &config.Config{}
	svc := NewResumeServiceWithComponents(cfg, nil, nil, nil)

	err := svc.ProcessKeywordTask(context.Background(), storage.ResumeParsedMessage{
		SubmissionUUID: "uuid-1",
	})
	assert.ErrorIs(t, err, ErrStorageNotInit)
}

func TestSubmitRawText_StorageNotInitialized(t *testing.T) {
	cfg := &config.Config{}
	svc := NewResumeServiceWithComponents(cfg, nil, nil, nil)

	_, _, err := svc.SubmitRawText(context.Background(), "resume.txt", "some text")
	assert.ErrorIs(t, err, ErrStorageNotInit)
}

func TestResolveRawText_InlineText(t *testing.T) {
	rs := &resumeServiceImpl{
		components: Components{Storage: &storage.Storage{}},
		config:     &config.Config{},
	}

	// 1. 消息内联文本，MD5按内容计算
	text, md5Hex, err := rs.resolveRawText(context.Background(), storage.ResumeSubmittedMessage{
		SubmissionUUID: "uuid-1",
		RawText:        "hello resume",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello resume", text)
	assert.Len(t, md5Hex, 32)

	// 2. 消息自带MD5时不重复计算
	_, md5Given, err := rs.resolveRawText(context.Background(), storage.ResumeSubmittedMessage{
		SubmissionUUID: "uuid-2",
		RawText:        "hello resume",
		RawTextMD5:     "precomputed-md5-value",
	})
	require.NoError(t, err)
	assert.Equal(t, "precomputed-md5-value", md5Given)
}

func TestResolveRawText_ObjectPathWithoutMinIO(t *testing.T) {
	rs := &resumeServiceImpl{
		components: Components{Storage: &storage.Storage{}},
		config:     &config.Config{},
	}

	// 消息只携带对象路径但MinIO未初始化，应报归档错误
	_, _, err := rs.resolveRawText(context.Background(), storage.ResumeSubmittedMessage{
		SubmissionUUID: "uuid-1",
		RawTextPathOSS: "resume/uuid-1/raw_text.txt",
	})
	assert.ErrorIs(t, err, ErrStoreTextFailed)
}

func TestComponentOptions(t *testing.T) {
	components := Components{}
	WithcompStorage(&storage.Storage{})(&components)
	assert.NotNil(t, components.Storage)

	settings := Settings{}
	WithsetUsellm(true)(&settings)
	WithsetDebug(true)(&settings)
	assert.True(t, settings.UseLLM)
	assert.True(t, settings.Debug)
}

type stubAugmenter struct{}

func (stubAugmenter) AugmentRecord(ctx context.Context, record *types.ResumeRecord) bool {
	return false
}

func TestEffectiveAugmenter(t *testing.T) {
	cfg := &config.Config{}
	augmenter := stubAugmenter{}

	// 1. UseLLM关闭时即便注入了增强器也只走降级路径
	svc := NewResumeServiceWithComponents(cfg, nil,
		[]ComponentOpt{WithcompKeywordaugmenter(augmenter)},
		[]SettingOpt{WithsetUsellm(false)},
	)
	impl, ok := svc.(*resumeServiceImpl)
	require.True(t, ok)
	assert.Nil(t, impl.effectiveAugmenter())

	// 2. UseLLM打开时返回注入的增强器
	svc = NewResumeServiceWithComponents(cfg, nil,
		[]ComponentOpt{WithcompKeywordaugmenter(augmenter)},
		[]SettingOpt{WithsetUsellm(true)},
	)
	impl, ok = svc.(*resumeServiceImpl)
	require.True(t, ok)
	assert.Equal(t, augmenter, impl.effectiveAugmenter())
}
