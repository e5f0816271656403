package constants

// Redis Key 前缀和格式常量
// 统一命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// MatchModulePrefix 匹配模块
	MatchModulePrefix = "match"
	// ResumeModulePrefix 简历模块
	ResumeModulePrefix = "resume"

	// EntityResult 匹配结果实体
	EntityResult = "result"
	// EntityDedupSet 去重集合实体
	EntityDedupSet = "dedup_set"
	// EntityMD5ToUUID MD5到UUID的映射实体
	EntityMD5ToUUID = "md5_to_uuid"

	// KeyMatchResult 岗位匹配结果缓存 (STRING, JSON)
	// 格式: app:match:result:{jobID}:{topK}
	KeyMatchResult = AppPrefix + ":" + MatchModulePrefix + ":" + EntityResult + ":%s:%d"

	// KeyResumeTextMD5Set 解析文本MD5集合，用于快速去重 (SET)
	// 格式: app:resume:dedup_set
	KeyResumeTextMD5Set = AppPrefix + ":" + ResumeModulePrefix + ":" + EntityDedupSet

	// KeyResumeMD5ToSubmissionUUID MD5到SubmissionUUID的映射 (STRING)
	// 格式: app:resume:md5_to_uuid:{md5}
	KeyResumeMD5ToSubmissionUUID = AppPrefix + ":" + ResumeModulePrefix + ":" + EntityMD5ToUUID + ":%s"
)
