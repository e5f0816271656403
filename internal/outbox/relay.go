// Package outbox 实现事务发件箱模式的消息中继。
package outbox

import (
	"context"
	"fmt"
	"log"
	"time"

	"resume-match-go/internal/storage"
	"resume-match-go/internal/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultPollingInterval = 5 * time.Second // 轮询 outbox 表的间隔
	defaultBatchSize       = 10              // 每次轮询处理的消息批量大小
	maxRetryCount          = 5               // 消息发布失败的最大重试次数
)

// MessageRelay 轮询 outbox 表并将消息发布到消息代理。
type MessageRelay struct {
	store           *storage.MySQL
	publisher       *storage.RabbitMQ
	logger          *log.Logger
	pollingInterval time.Duration
	batchSize       int
	done            chan struct{}
	tracer          trace.Tracer
}

// NewMessageRelay 创建一个新的 MessageRelay 实例。
func NewMessageRelay(store *storage.MySQL, publisher *storage.RabbitMQ, logger *log.Logger) *MessageRelay {
	return &MessageRelay{
		store:           store,
		publisher:       publisher,
		logger:          logger,
		pollingInterval: defaultPollingInterval,
		batchSize:       defaultBatchSize,
		done:            make(chan struct{}),
		tracer:          otel.Tracer("outbox-relay"),
	}
}

// Start 启动后台轮询。
func (r *MessageRelay) Start() {
	r.logger.Println("MessageRelay starting...")
	ticker := time.NewTicker(r.pollingInterval)

	go func() {
		for {
			select {
			case <-r.done:
				ticker.Stop()
				r.logger.Println("MessageRelay stopped.")
				return
			case <-ticker.C:
				if err := r.processPendingMessages(context.Background()); err != nil {
					r.logger.Printf("Error processing pending messages: %v", err)
				}
			}
		}
	}()
}

// Stop 优雅地停止消息中继服务。
func (r *MessageRelay) Stop() {
	r.logger.Println("MessageRelay stopping...")
	close(r.done)
}

// processPendingMessages 获取并处理一批待投递的发件箱消息。
func (r *MessageRelay) processPendingMessages(ctx context.Context) error {
	// 取消息和改状态放在同一事务里，保证原子性；
	// FOR UPDATE SKIP LOCKED 允许多实例并行消费，跳过已被锁定的行
	tx := r.store.DB().WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	messages, err := r.store.FetchPendingOutboxMessages(tx, r.batchSize)
	if err != nil {
		r.logger.Printf("Failed to fetch pending outbox messages: %v", err)
		return err
	}

	// 空轮询不创建Span，避免噪音
	if len(messages) == 0 {
		return tx.Commit().Error
	}

	ctx, span := r.tracer.Start(ctx, "outbox.ProcessBatch",
		trace.WithAttributes(
			attribute.Int("messaging.batch.message_count", len(messages)),
		),
	)
	defer span.End()

	r.logger.Printf("Fetched %d pending messages to process.", len(messages))

	for i := range messages {
		msg := &messages[i]
		err := r.publisher.PublishMessage(
			ctx,
			msg.TargetExchange,
			msg.TargetRoutingKey,
			[]byte(msg.Payload),
			true, // 持久化投递
		)

		if err != nil {
			r.logger.Printf("Failed to publish message ID %d (AggregateID: %s): %v. Retries: %d", msg.ID, msg.AggregateID, err, msg.RetryCount+1)
			tracing.RecordRabbitMQNack(span, fmt.Sprintf("%d", msg.ID), err.Error())
			if markErr := r.store.MarkOutboxMessageFailed(tx, msg, err.Error(), maxRetryCount); markErr != nil {
				r.logger.Printf("Failed to update outbox message ID %d: %v", msg.ID, markErr)
				return markErr
			}
			continue
		}

		// 更新失败会回滚整个事务，消息在下一轮被重新拾取
		if err := r.store.MarkOutboxMessageProcessed(tx, msg); err != nil {
			r.logger.Printf("Failed to update outbox message ID %d: %v", msg.ID, err)
			return err
		}
	}

	return tx.Commit().Error
}
