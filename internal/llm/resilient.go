package llm

import (
	"context"
	"time"

	"github.com/MorningZephyr/zhen-bot/internal/models"
	"github.com/MorningZephyr/zhen-bot/pkg/circuitbreaker"
)

// resilientLLM 用熔断器包装一个 LLM 客户端。外部文本生成服务持续失败时，
// 熔断器打开，后续请求快速失败而不是堆积等待。
type resilientLLM struct {
	inner   LLM
	breaker circuitbreaker.CircuitBreaker
}

// WithCircuitBreaker 返回一个带熔断保护的 LLM 客户端。
func WithCircuitBreaker(inner LLM, failureThreshold, successThreshold uint32, timeout time.Duration) LLM {
	return &resilientLLM{
		inner:   inner,
		breaker: circuitbreaker.New(failureThreshold, successThreshold, timeout),
	}
}

func (r *resilientLLM) GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error) {
	res, err := r.breaker.Execute(func() (interface{}, error) {
		return r.inner.GenerateContent(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return res.(*models.GenerateContentResponse), nil
}

// GenerateContentStream 不经过熔断器：流式调用的失败发生在消费过程中，
// 无法在这里归为单次成败。
func (r *resilientLLM) GenerateContentStream(ctx context.Context, req *models.GenerateContentRequest) (<-chan *models.GenerateContentResponse, error) {
	return r.inner.GenerateContentStream(ctx, req)
}
