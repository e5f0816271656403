package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPII(t *testing.T) {
	// 1. 空值与单字符
	assert.Equal(t, "", MaskPII(""))
	assert.Equal(t, "*", MaskPII("a"))

	// 2. 短值保留首尾
	assert.Equal(t, "a*", MaskPII("ab"))
	assert.Equal(t, "a**d", MaskPII("abcd"))

	// 3. 长值保留首尾各两个字符
	masked := MaskPII("myemail@example.com")
	assert.Equal(t, "my***************om", masked)
	assert.Len(t, masked, len("myemail@example.com"))
}

func TestSafeAttributeValue(t *testing.T) {
	// 1. 属性名包含敏感关键字时掩码，file_name 命中 "name"
	assert.Equal(t, "re********xt", SafeAttributeValue("file_name", "resume01.txt", DefaultMaxLength))
	assert.Equal(t, "13*******99", SafeAttributeValue("phone", "13800000099", DefaultMaxLength))

	// 2. 非敏感属性超长时截断
	long := strings.Repeat("x", 300)
	safe := SafeAttributeValue("sql_hint", long, DefaultMaxLength)
	assert.Contains(t, safe, "...")
	assert.LessOrEqual(t, len(safe), DefaultMaxLength)

	// 3. 非敏感且未超长的值原样返回
	assert.Equal(t, "short", SafeAttributeValue("queue", "short", DefaultMaxLength))
}

func TestTruncateString(t *testing.T) {
	// 1. 不超长原样返回
	assert.Equal(t, "hello", TruncateString("hello", 10))

	// 2. 超长时首尾各留一半并插入省略号
	assert.Equal(t, "ab...yz", TruncateString("abcdefghijklmnopqrstuvwxyz", 7))

	// 3. maxLength过小时只做硬截断
	assert.Equal(t, "abc", TruncateString("abcdef", 3))
}

func TestSafeResumeContent(t *testing.T) {
	content := strings.Repeat("简历内容", 100)
	safe := SafeResumeContent(content)
	assert.Contains(t, safe, "...")
	assert.LessOrEqual(t, len([]rune(safe)), MaxResumeLength)
}
