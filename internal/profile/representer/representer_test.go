package representer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MorningZephyr/zhen-bot/internal/models"
)

type fakeLLM struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error) {
	if len(req.Content) > 0 && len(req.Content[0].Parts) > 0 {
		f.lastPrompt = req.Content[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.GenerateContentResponse{
		Content: []models.Content{
			{Parts: []*models.Part{{Text: f.response}}, Role: models.SpeakerModel},
		},
	}, nil
}

func (f *fakeLLM) GenerateContentStream(ctx context.Context, req *models.GenerateContentRequest) (<-chan *models.GenerateContentResponse, error) {
	ch := make(chan *models.GenerateContentResponse)
	close(ch)
	return ch, nil
}

func snapshotWith(facts map[string]string) *models.Profile {
	p := models.NewProfile()
	for k, v := range facts {
		p.Facts[k] = models.FactRecord{Value: v, Confidence: models.ConfidenceHigh}
		p.Keys = append(p.Keys, k)
	}
	return p
}

func TestAnswerEmbedsFactsInPrompt(t *testing.T) {
	llm := &fakeLLM{response: "Blue, definitely."}
	r := New(llm)

	guest := models.CallerContext{CallerID: "alice", OwnerID: "zhen"}
	snapshot := snapshotWith(map[string]string{"favorite_color": "blue"})

	answer, err := r.Answer(context.Background(), guest, snapshot, "What is your favorite color?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Blue, definitely." {
		t.Errorf("answer must be returned verbatim, got %q", answer)
	}

	if !strings.Contains(llm.lastPrompt, "zhen-Bot") {
		t.Error("prompt should establish the persona")
	}
	if !strings.Contains(llm.lastPrompt, "favorite color: blue") {
		t.Errorf("prompt should list stored facts, got:\n%s", llm.lastPrompt)
	}
	if !strings.Contains(llm.lastPrompt, "talking to 'alice'") {
		t.Error("prompt should name the guest caller")
	}
	if !strings.Contains(llm.lastPrompt, "What is your favorite color?") {
		t.Error("prompt should carry the question")
	}
}

func TestAnswerOwnerGetsOwnerFraming(t *testing.T) {
	llm := &fakeLLM{response: "ok"}
	r := New(llm)

	if _, err := r.Answer(context.Background(), models.CallerContext{CallerID: "zhen", OwnerID: "zhen"},
		snapshotWith(nil), "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(llm.lastPrompt, "talking to the real zhen") {
		t.Errorf("owner framing missing from prompt:\n%s", llm.lastPrompt)
	}
}

func TestAnswerEmptyProfile(t *testing.T) {
	llm := &fakeLLM{response: "I don't know much yet."}
	r := New(llm)

	guest := models.CallerContext{CallerID: "alice", OwnerID: "zhen"}
	if _, err := r.Answer(context.Background(), guest, models.NewProfile(), "who are you?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(llm.lastPrompt, "do not know any facts about zhen yet") {
		t.Errorf("empty-profile framing missing:\n%s", llm.lastPrompt)
	}
}

func TestAnswerPropagatesLLMError(t *testing.T) {
	r := New(&fakeLLM{err: errors.New("quota exceeded")})

	guest := models.CallerContext{CallerID: "alice", OwnerID: "zhen"}
	_, err := r.Answer(context.Background(), guest, models.NewProfile(), "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "representation failed") {
		t.Errorf("unexpected error: %v", err)
	}
}
