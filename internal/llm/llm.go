package llm

import (
	"context"
	"fmt"

	"github.com/MorningZephyr/zhen-bot/internal/config"
	"github.com/MorningZephyr/zhen-bot/internal/models"
)

// LLM 定义了所有大型语言模型客户端必须实现的通用接口。
// 画像引擎通过该接口访问外部文本生成服务（事实抽取与代表回答），
// 并且从不盲目信任其输出。
type LLM interface {
	GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, req *models.GenerateContentRequest) (<-chan *models.GenerateContentResponse, error)
}

// NewClient 是一个工厂函数，根据提供的配置创建并返回一个实现了 LLM 接口的客户端。
func NewClient(cfg config.LLMConfig) (LLM, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.Gemini.Model == "" {
			return nil, fmt.Errorf("no model configured for gemini provider")
		}
		return NewGemini(context.Background(), cfg.Gemini.Model, cfg.Gemini.APIKey)
	case "openai":
		if cfg.OpenAI.Model == "" {
			return nil, fmt.Errorf("no model configured for openai provider")
		}
		return NewOpenAI(cfg.OpenAI.Model, cfg.OpenAI.APIKey)
	case "ollama":
		if cfg.Ollama.Model == "" {
			return nil, fmt.Errorf("no model configured for ollama provider")
		}
		return NewOllama(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// TextRequest 构造一个只包含单段用户文本的生成请求。
func TextRequest(text string) *models.GenerateContentRequest {
	return &models.GenerateContentRequest{
		Content: []models.Content{
			{
				Parts: []*models.Part{{Text: text}},
				Role:  models.SpeakerUser,
			},
		},
		Role: models.SpeakerUser,
	}
}
