package storage

import "time"

// ResumeSubmittedMessage 原始文本提交消息，投递到解析队列
type ResumeSubmittedMessage struct {
	SubmissionUUID      string    `json:"submission_uuid"`          // 提交UUID，主键
	SubmissionTimestamp time.Time `json:"submission_timestamp"`     // 提交时间戳
	FileName            string    `json:"file_name,omitempty"`      // 原始文件名
	RawText             string    `json:"raw_text,omitempty"`       // 原始简历文本
	RawTextPathOSS      string    `json:"raw_text_path_oss,omitempty"` // 文本过大时改为MinIO路径传递
	RawTextMD5          string    `json:"raw_text_md5,omitempty"`   // 文本MD5，失败回滚去重记录用
}

// ResumeParsedMessage 解析完成消息，投递到关键词增强队列
type ResumeParsedMessage struct {
	SubmissionUUID   string `json:"submission_uuid"`             // 提交UUID
	ProcessingStatus string `json:"processing_status,omitempty"` // 解析后状态
	ParserVersion    string `json:"parser_version,omitempty"`    // 解析器版本
	ProcessingTime   int64  `json:"processing_time,omitempty"`   // 处理时间戳
	Error            string `json:"error,omitempty"`             // 错误信息
}

// 发件箱事件类型
const (
	EventTypeResumeSubmitted = "resume.submitted"
	EventTypeResumeParsed    = "resume.parsed"
)
