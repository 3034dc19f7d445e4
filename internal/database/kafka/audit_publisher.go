package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MorningZephyr/zhen-bot/internal/models"

	"github.com/segmentio/kafka-go"
)

const ProfileAuditTopic = "profile_audit"

// AuditPublisher 封装了向 Kafka 发送画像审计事件的逻辑。
// 画像内部的审计日志是事实来源；Kafka 上的副本仅用于
// 下游的采集与分析，发布失败不影响学习操作本身。
type AuditPublisher struct {
	writer *kafka.Writer
}

// auditEvent 是发布到 Kafka 的审计消息格式。
type auditEvent struct {
	OwnerID string              `json:"owner_id"`
	Entries []models.AuditEntry `json:"entries"`
}

// NewAuditPublisher 创建一个新的 AuditPublisher 实例。
func NewAuditPublisher(client *KafkaClient) *AuditPublisher {
	// 为审计主题创建一个新的 writer 实例配置
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      client.Config.Brokers,
		Topic:        ProfileAuditTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	})
	return &AuditPublisher{writer: writer}
}

// Publish 将一批审计条目序列化为 JSON 并发送到 Kafka。
// 消息按 ownerID 作为 key 分区，保证同一画像的事件有序。
func (p *AuditPublisher) Publish(ctx context.Context, ownerID string, entries []models.AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}

	jsonData, err := json.Marshal(auditEvent{OwnerID: ownerID, Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ownerID),
		Value: jsonData,
	})

	if err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close 关闭底层的 writer 连接。
func (p *AuditPublisher) Close() error {
	return p.writer.Close()
}
