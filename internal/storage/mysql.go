package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/tracing"
	"resume-match-go/pkg/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var mysqlTracer = otel.Tracer("resume-match-go/storage/mysql")

// GormTracingPlugin 是一个GORM插件，向OpenTelemetry上报数据库操作
type GormTracingPlugin struct {
	tracer         trace.Tracer
	dbName         string
	disableErrSkip bool
}

// Name 返回插件名称
func (p *GormTracingPlugin) Name() string {
	return "GormOpenTelemetryPlugin"
}

// Initialize 注册GORM回调以启用追踪
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	// 为所有CRUD操作注册Before和After回调
	if err := cb.Create().Before("gorm:create").Register("otel:before_create", p.before("CREATE")); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("otel:after_create", p.after()); err != nil {
		return err
	}

	if err := cb.Query().Before("gorm:query").Register("otel:before_query", p.before("SELECT")); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("otel:after_query", p.after()); err != nil {
		return err
	}

	if err := cb.Update().Before("gorm:update").Register("otel:before_update", p.before("UPDATE")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("otel:after_update", p.after()); err != nil {
		return err
	}

	if err := cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before("DELETE")); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after()); err != nil {
		return err
	}

	if err := cb.Row().Before("gorm:row").Register("otel:before_row", p.before("ROW")); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("otel:after_row", p.after()); err != nil {
		return err
	}

	return nil
}

// before 返回在GORM操作之前执行的回调函数
func (p *GormTracingPlugin) before(operation string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		if p.disableErrSkip && db.Statement.SkipHooks {
			return
		}

		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}

		tableName := db.Statement.Table
		if tableName == "" {
			tableName = "unknown"
		}

		spanName := fmt.Sprintf("%s %s", operation, tableName)
		opts := []trace.SpanStartOption{
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				semconv.DBSystemMySQL,
				attribute.String("db.name", p.dbName),
				attribute.String("db.operation", operation),
				attribute.String("db.sql.table", tableName),
			),
		}

		newCtx, span := p.tracer.Start(ctx, spanName, opts...)

		// 将span保存在DB上下文中，供after回调取用
		db.Statement.Context = context.WithValue(newCtx, "otel-span", span)
	}
}

// after 返回在GORM操作之后执行的回调函数
func (p *GormTracingPlugin) after() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		span, ok := db.Statement.Context.Value("otel-span").(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
		if sql := db.Statement.SQL.String(); sql != "" {
			span.SetAttributes(attribute.String("db.statement", tracing.SafeSQL(sql)))
		}

		if db.Error != nil {
			if errors.Is(db.Error, gorm.ErrRecordNotFound) {
				// ErrRecordNotFound 属于正常业务分支，不记为错误
				span.SetAttributes(attribute.String("error.type", "record_not_found"))
				span.SetStatus(codes.Ok, "record not found")
			} else {
				span.SetAttributes(attribute.String("error.type", "database_error"))
				span.RecordError(db.Error)
				span.SetStatus(codes.Error, db.Error.Error())
			}
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}
}

// NewGormTracingPlugin 创建一个新的GORM追踪插件
func NewGormTracingPlugin(dbName string) *GormTracingPlugin {
	return &GormTracingPlugin{
		tracer:         mysqlTracer,
		dbName:         dbName,
		disableErrSkip: true,
	}
}

// MySQL 提供关系数据库功能
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	// 构建DSN，附带超时设置
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.ConnectTimeoutSeconds, cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds)

	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = logger.Silent
	case 2:
		logLevel = logger.Error
	case 3:
		logLevel = logger.Warn
	case 4:
		logLevel = logger.Info
	default:
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logLevel),
		PrepareStmt:                              true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	m := &MySQL{
		db:  db,
		cfg: cfg,
	}

	// 注册OpenTelemetry追踪插件
	if err := db.Use(NewGormTracingPlugin(cfg.Database)); err != nil {
		return nil, fmt.Errorf("注册追踪插件失败: %w", err)
	}

	if err := m.autoMigrateSchema(); err != nil {
		if inner, dbErr := db.DB(); dbErr == nil {
			inner.Close()
		}
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	log.Println("成功连接到MySQL并自动迁移数据库结构")
	return m, nil
}

// autoMigrateSchema 使用GORM自动迁移数据库表结构
func (m *MySQL) autoMigrateSchema() error {
	// 迁移阶段关闭SQL日志打印
	silentDB := m.db.Session(&gorm.Session{Logger: logger.Default.LogMode(logger.Silent)})

	err := silentDB.AutoMigrate(
		&models.ResumeRecordRow{},
		&models.Job{},
		&models.OutboxMessage{},
	)
	if err != nil {
		return fmt.Errorf("GORM自动迁移失败: %w", err)
	}
	return nil
}

// DB 返回GORM数据库连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}

// CreateResumeRecordRow 在给定事务中插入新的简历记录，主键冲突时忽略。
// tx为nil时直接走连接池，失去与发件箱写入的原子性。
func (m *MySQL) CreateResumeRecordRow(tx *gorm.DB, row *models.ResumeRecordRow) error {
	if tx == nil {
		tx = m.db
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

// GetResumeRecordRow 按SubmissionUUID查询单条简历记录
func (m *MySQL) GetResumeRecordRow(ctx context.Context, submissionUUID string) (*models.ResumeRecordRow, error) {
	var row models.ResumeRecordRow
	err := m.db.WithContext(ctx).First(&row, "submission_uuid = ?", submissionUUID).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateResumeProcessingStatus 更新简历处理状态
func (m *MySQL) UpdateResumeProcessingStatus(ctx context.Context, submissionUUID string, status string) error {
	return m.db.WithContext(ctx).Model(&models.ResumeRecordRow{}).
		Where("submission_uuid = ?", submissionUUID).
		Update("processing_status", status).Error
}

// UpdateResumeRecordFields 按字段集合更新简历记录
func (m *MySQL) UpdateResumeRecordFields(ctx context.Context, submissionUUID string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return m.db.WithContext(ctx).Model(&models.ResumeRecordRow{}).
		Where("submission_uuid = ?", submissionUUID).
		Updates(updates).Error
}

// UpdateCombinedKeywords 在给定事务中写入增强后的记录与关键词列表并推进状态
func (m *MySQL) UpdateCombinedKeywords(tx *gorm.DB, submissionUUID string, recordJSON datatypes.JSON, keywordsJSON datatypes.JSON, status string) error {
	if tx == nil {
		tx = m.db
	}
	return tx.Model(&models.ResumeRecordRow{}).
		Where("submission_uuid = ?", submissionUUID).
		Updates(map[string]interface{}{
			"resume_data_json":       recordJSON,
			"combined_keywords_json": keywordsJSON,
			"processing_status":      status,
		}).Error
}

// ListScorableResumeRows 列出可参与匹配的简历记录。
// uuids 为空时返回全部已完成关键词增强（含降级）的记录。
func (m *MySQL) ListScorableResumeRows(ctx context.Context, uuids []string) ([]models.ResumeRecordRow, error) {
	var rows []models.ResumeRecordRow
	q := m.db.WithContext(ctx).
		Where("processing_status IN ?", []string{constants.StatusKeywordsCompleted, constants.StatusKeywordsFallback})
	if len(uuids) > 0 {
		q = q.Where("submission_uuid IN ?", uuids)
	}
	if err := q.Order("submitted_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询可匹配简历记录失败: %w", err)
	}
	return rows, nil
}

// FindResumeRowByRawTextMD5 按原始文本MD5查询记录，未命中返回nil
func (m *MySQL) FindResumeRowByRawTextMD5(ctx context.Context, md5Hex string) (*models.ResumeRecordRow, error) {
	var row models.ResumeRecordRow
	err := m.db.WithContext(ctx).First(&row, "raw_text_md5 = ?", md5Hex).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateJob 创建岗位记录
func (m *MySQL) CreateJob(ctx context.Context, job *models.Job) error {
	return m.db.WithContext(ctx).Create(job).Error
}

// GetJobByID 按JobID查询岗位
func (m *MySQL) GetJobByID(ctx context.Context, jobID string) (*models.Job, error) {
	var job models.Job
	err := m.db.WithContext(ctx).First(&job, "job_id = ?", jobID).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob 保存岗位记录变更
func (m *MySQL) UpdateJob(ctx context.Context, job *models.Job) error {
	return m.db.WithContext(ctx).Save(job).Error
}

// CreateOutboxMessage 在给定事务中写入发件箱消息
func (m *MySQL) CreateOutboxMessage(tx *gorm.DB, msg *models.OutboxMessage) error {
	if tx == nil {
		tx = m.db
	}
	return tx.Create(msg).Error
}

// FetchPendingOutboxMessages 在给定事务中按创建时间取出待投递的发件箱消息。
// SKIP LOCKED让多个中继实例互不阻塞地分摊消息。
func (m *MySQL) FetchPendingOutboxMessages(tx *gorm.DB, limit int) ([]models.OutboxMessage, error) {
	if tx == nil {
		tx = m.db
	}
	var msgs []models.OutboxMessage
	err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", models.OutboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("查询待投递发件箱消息失败: %w", err)
	}
	return msgs, nil
}

// MarkOutboxMessageProcessed 在给定事务中标记发件箱消息已投递
func (m *MySQL) MarkOutboxMessageProcessed(tx *gorm.DB, msg *models.OutboxMessage) error {
	if tx == nil {
		tx = m.db
	}
	msg.Status = models.OutboxStatusProcessed
	msg.ProcessedAt = utils.TimePtr(time.Now())
	msg.ErrorMessage = ""
	return tx.Save(msg).Error
}

// MarkOutboxMessageFailed 在给定事务中记录投递失败，超过重试上限后置为FAILED
func (m *MySQL) MarkOutboxMessageFailed(tx *gorm.DB, msg *models.OutboxMessage, errMsg string, maxRetries int) error {
	if tx == nil {
		tx = m.db
	}
	msg.RetryCount++
	msg.ErrorMessage = errMsg
	if msg.RetryCount >= maxRetries {
		msg.Status = models.OutboxStatusFailed
	}
	return tx.Save(msg).Error
}

// Transaction 在事务中执行fn
func (m *MySQL) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
