package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound 键不存在时返回，封装底层的 redis.Nil
var ErrNotFound = redis.Nil

// Redis 封装go-redis客户端
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 创建Redis客户端连接
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}

	client := redis.NewClient(opt)

	// 添加OpenTelemetry钩子，记录所有Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("failed to instrument Redis with OpenTelemetry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping 检查连接可用性
func (r *Redis) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// GetMD5ExpireDuration 返回去重记录的过期时长
func (r *Redis) GetMD5ExpireDuration() time.Duration {
	days := r.config.MD5RecordExpireDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}

// CheckAndSetTextMD5 原子地检查并登记解析文本MD5。
// 返回 (是否已存在, 已存在记录的SubmissionUUID)。
func (r *Redis) CheckAndSetTextMD5(ctx context.Context, md5Hex string, submissionUUID string) (bool, string, error) {
	setKey := constants.KeyResumeTextMD5Set
	mapKey := fmt.Sprintf(constants.KeyResumeMD5ToSubmissionUUID, md5Hex)

	exists, err := r.Client.SIsMember(ctx, setKey, md5Hex).Result()
	if err != nil {
		return false, "", fmt.Errorf("检查MD5是否存在失败: %w", err)
	}
	if exists {
		existingUUID, err := r.Client.Get(ctx, mapKey).Result()
		if err != nil && err != redis.Nil {
			return true, "", fmt.Errorf("获取已存在的submission_uuid失败: %w", err)
		}
		return true, existingUUID, nil
	}

	// MD5不存在，pipeline原子添加
	pipe := r.Client.Pipeline()
	setCmd := pipe.SAdd(ctx, setKey, md5Hex)
	setNXCmd := pipe.SetNX(ctx, mapKey, submissionUUID, r.GetMD5ExpireDuration())
	pipe.Expire(ctx, setKey, r.GetMD5ExpireDuration())
	if _, err := pipe.Exec(ctx); err != nil {
		return false, "", fmt.Errorf("执行原子添加MD5操作失败: %w", err)
	}
	if setCmd.Val() > 0 && setNXCmd.Val() {
		return false, "", nil
	}

	// 极小的并发窗口内被其它进程占先，重新读取归属
	existingUUID, err := r.Client.Get(ctx, mapKey).Result()
	if err != nil {
		return true, "", fmt.Errorf("获取已存在的submission_uuid失败: %w", err)
	}
	return true, existingUUID, nil
}

// RemoveTextMD5 从去重集合中移除MD5记录，处理失败时回滚用
func (r *Redis) RemoveTextMD5(ctx context.Context, md5Hex string) error {
	pipe := r.Client.Pipeline()
	pipe.SRem(ctx, constants.KeyResumeTextMD5Set, md5Hex)
	pipe.Del(ctx, fmt.Sprintf(constants.KeyResumeMD5ToSubmissionUUID, md5Hex))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("移除MD5去重记录失败: %w", err)
	}
	return nil
}

// CacheMatchResponse 缓存岗位匹配结果
func (r *Redis) CacheMatchResponse(ctx context.Context, jobID string, topK int, resp *types.MatchResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("序列化匹配结果失败: %w", err)
	}
	key := fmt.Sprintf(constants.KeyMatchResult, jobID, topK)
	if err := r.Client.Set(ctx, key, data, constants.MatchCacheDuration).Err(); err != nil {
		return fmt.Errorf("写入匹配结果缓存失败: %w", err)
	}
	return nil
}

// GetCachedMatchResponse 读取岗位匹配结果缓存，未命中返回 ErrNotFound
func (r *Redis) GetCachedMatchResponse(ctx context.Context, jobID string, topK int) (*types.MatchResponse, error) {
	key := fmt.Sprintf(constants.KeyMatchResult, jobID, topK)
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var resp types.MatchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("反序列化匹配结果缓存失败: %w", err)
	}
	return &resp, nil
}

// InvalidateMatchCache 在岗位关键词变更后清除其匹配缓存
func (r *Redis) InvalidateMatchCache(ctx context.Context, jobID string) error {
	// 缓存键以topK结尾，按前缀扫描删除
	pattern := constants.AppPrefix + ":" + constants.MatchModulePrefix + ":" + constants.EntityResult + ":" + jobID + ":*"
	iter := r.Client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := r.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
