package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"resume-match-go/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	// UploadRawText 归档某次提交的原始简历文本
	UploadRawText(ctx context.Context, submissionUUID string, text string) (string, error)

	// GetRawText 读取归档的原始简历文本
	GetRawText(ctx context.Context, objectName string) (string, error)

	// DeleteObject 删除对象
	DeleteObject(ctx context.Context, objectName string) error
}

var _ ObjectStorage = (*MinIO)(nil)

// MinIO 提供对象存储功能
type MinIO struct {
	client        *minio.Client
	cfg           *config.MinIOConfig
	rawTextBucket string
	logger        *log.Logger
}

// NewMinIO 创建MinIO客户端
func NewMinIO(cfg *config.MinIOConfig, logger *log.Logger) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	rawTextBucket := cfg.RawTextBucket
	if rawTextBucket == "" {
		rawTextBucket = "resume-raw-text"
	}

	m := &MinIO{
		client:        client,
		cfg:           cfg,
		rawTextBucket: rawTextBucket,
		logger:        logger,
	}

	if err := m.ensureBucketExists(rawTextBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保原始文本存储桶 %s 存在失败: %w", rawTextBucket, err)
	}

	m.logger.Printf("[MinIO] Client initialized for endpoint: %s, bucket: %s", cfg.Endpoint, rawTextBucket)
	return m, nil
}

// ensureBucketExists 确保存储桶存在
func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	ctx := context.Background()
	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", bucketName, err)
	}
	if !exists {
		err = m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			// 并发创建时可能已被其它实例建好
			exists, checkErr := m.client.BucketExists(ctx, bucketName)
			if checkErr == nil && exists {
				return nil
			}
			return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
		}
		m.logger.Printf("[MinIO] Bucket %s created", bucketName)
	}
	return nil
}

// UploadRawText 归档某次提交的原始简历文本
func (m *MinIO) UploadRawText(ctx context.Context, submissionUUID string, text string) (string, error) {
	objectName := fmt.Sprintf("resume/%s/raw_text.txt", submissionUUID)

	_, err := m.client.PutObject(ctx, m.rawTextBucket, objectName,
		strings.NewReader(text), int64(len(text)),
		minio.PutObjectOptions{ContentType: "text/plain"})
	if err != nil {
		return "", fmt.Errorf("上传原始文本 %s 到存储桶 %s 失败: %w", objectName, m.rawTextBucket, err)
	}
	return objectName, nil
}

// GetRawText 读取归档的原始简历文本
func (m *MinIO) GetRawText(ctx context.Context, objectName string) (string, error) {
	obj, err := m.client.GetObject(ctx, m.rawTextBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("获取对象 %s/%s 失败: %w", m.rawTextBucket, objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("读取对象 %s/%s 内容失败: %w", m.rawTextBucket, objectName, err)
	}
	return string(data), nil
}

// DeleteObject 删除对象
func (m *MinIO) DeleteObject(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.rawTextBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("删除对象 %s/%s 失败: %w", m.rawTextBucket, objectName, err)
	}
	return nil
}
