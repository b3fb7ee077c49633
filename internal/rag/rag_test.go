package rag

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/speaker"
	chromem "github.com/philippgille/chromem-go"
)

// letterEmbedder maps text to a letter histogram. Close enough for
// similarity ordering in tests.
type letterEmbedder struct {
	err error
}

func (e letterEmbedder) Embed(_ context.Context, _ string, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	vec := make([]float32, 27)
	vec[26] = 1
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			vec[r-'a']++
		}
	}
	return vec, nil
}

type fakeCompleter struct {
	mu     sync.Mutex
	answer string
	err    error
	reqs   []llm.Request
}

func (c *fakeCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reqs = append(c.reqs, req)
	return c.answer, c.err
}

func (c *fakeCompleter) lastPrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.reqs) == 0 {
		return ""
	}
	msgs := c.reqs[len(c.reqs)-1].Messages
	return msgs[len(msgs)-1].Content
}

func testConfig(t *testing.T) Config {
	return Config{
		IndexPath:      t.TempDir(),
		Collection:     "test",
		EmbeddingModel: "fake",
		ChunkSize:      500,
		ChunkOverlap:   50,
		TopK:           2,
	}
}

var meeting = []speaker.Utterance{
	{Speaker: "Julien", Text: "we freeze the budget"},
	{Speaker: "SPEAKER_01", Text: "hiring starts in march"},
	{Speaker: "Julien", Text: "ship the release friday"},
}

func TestSplit(t *testing.T) {
	long := strings.Repeat("word ", 60) // 300 chars

	chunks, err := Split([]speaker.Utterance{
		{Speaker: "A", Text: "first"},
		{Speaker: "B", Text: long},
		{Speaker: "A", Text: "last"},
	}, 100, 10)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	if len(chunks) < 5 {
		t.Fatalf("Split() returned %d chunks, want the long utterance split", len(chunks))
	}
	if chunks[0].Content != "A : first" {
		t.Errorf("first chunk = %q", chunks[0].Content)
	}
	if last := chunks[len(chunks)-1]; last.Content != "A : last" || last.Speaker != "A" {
		t.Errorf("last chunk = %+v", last)
	}

	ids := make(map[string]bool)
	for i, c := range chunks {
		if c.Order != i {
			t.Errorf("chunk %d has order %d", i, c.Order)
		}
		if len([]rune(c.Content)) > 100 {
			t.Errorf("chunk %d too long: %d", i, len(c.Content))
		}
		if ids[c.ID] {
			t.Errorf("duplicate id %s", c.ID)
		}
		ids[c.ID] = true
		if i > 0 && i < len(chunks)-1 && c.Speaker != "B" {
			t.Errorf("chunk %d speaker = %q, want B", i, c.Speaker)
		}
	}
}

func TestSplitEmpty(t *testing.T) {
	chunks, err := Split(nil, 500, 50)
	if err != nil || len(chunks) != 0 {
		t.Errorf("Split(nil) = %v, %v", chunks, err)
	}
}

func TestGenerate(t *testing.T) {
	cfg := testConfig(t)
	completer := &fakeCompleter{answer: "Topic: Budget\nHashtags: #q3"}
	o := New(cfg, completer, letterEmbedder{}, logger.Nop())

	got, err := o.Generate(context.Background(), meeting, "en", "mistral")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != completer.answer {
		t.Errorf("Generate() = %q, want answer verbatim", got)
	}

	if len(completer.reqs) != 1 || completer.reqs[0].Model != "mistral" {
		t.Fatalf("unexpected requests %+v", completer.reqs)
	}
	prompt := completer.lastPrompt()
	if !strings.HasPrefix(strings.TrimSpace(prompt), "You are a smart assistant") {
		t.Errorf("prompt is not the English template: %q", prompt[:60])
	}
	if strings.Contains(prompt, contextSlot) {
		t.Error("context slot left unfilled")
	}
	if n := strings.Count(prompt, " : "); n != cfg.TopK {
		t.Errorf("prompt carries %d chunks, want %d", n, cfg.TopK)
	}
}

func TestGenerateFrench(t *testing.T) {
	completer := &fakeCompleter{answer: "Sujet : Budget"}
	o := New(testConfig(t), completer, letterEmbedder{}, logger.Nop())

	if _, err := o.Generate(context.Background(), meeting[:1], "fr", "mistral"); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	prompt := completer.lastPrompt()
	if !strings.Contains(prompt, "Tu es un assistant intelligent") {
		t.Error("prompt is not the French template")
	}
	if !strings.Contains(prompt, "Julien : we freeze the budget") {
		t.Error("single indexed chunk missing from prompt")
	}
}

func TestGenerateAppendsToIndex(t *testing.T) {
	cfg := testConfig(t)
	completer := &fakeCompleter{answer: "ok"}

	for range 2 {
		o := New(cfg, completer, letterEmbedder{}, logger.Nop())
		if _, err := o.Generate(context.Background(), meeting, "en", "m"); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
	}

	db, err := chromem.NewPersistentDB(cfg.IndexPath, cfg.Compress)
	if err != nil {
		t.Fatalf("reopen index: %v", err)
	}
	coll := db.GetCollection(cfg.Collection, nil)
	if coll == nil {
		t.Fatal("collection not persisted")
	}
	if got := coll.Count(); got != 2*len(meeting) {
		t.Errorf("index holds %d documents, want %d", got, 2*len(meeting))
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		utterances []speaker.Utterance
		embedder   llm.Embedder
		completer  *fakeCompleter
	}{
		{
			name:       "empty transcript",
			utterances: nil,
			embedder:   letterEmbedder{},
			completer:  &fakeCompleter{},
		},
		{
			name:       "embedding fails",
			utterances: meeting,
			embedder:   letterEmbedder{err: errors.New("connection refused")},
			completer:  &fakeCompleter{},
		},
		{
			name:       "completion fails",
			utterances: meeting,
			embedder:   letterEmbedder{},
			completer:  &fakeCompleter{err: llm.ErrTimeout},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New(testConfig(t), tt.completer, tt.embedder, logger.Nop())
			got, err := o.Generate(context.Background(), tt.utterances, "en", "m")
			if !errors.Is(err, ErrGenerationFailed) {
				t.Errorf("Generate() error = %v, want ErrGenerationFailed", err)
			}
			if got != "" {
				t.Errorf("Generate() = %q on failure", got)
			}
		})
	}
}

func TestPromptFor(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"fr", "Tu es un assistant"},
		{"en", "You are a smart assistant"},
		{"de", "You are a smart assistant"},
	}
	for _, tt := range tests {
		if got := promptFor(tt.language); !strings.Contains(got, tt.want) {
			t.Errorf("promptFor(%q) missing %q", tt.language, tt.want)
		}
	}
}

func TestRetrievalQuery(t *testing.T) {
	q := retrievalQuery(promptEN)
	if strings.Contains(q, contextSlot) || !unicode.IsUpper([]rune(q)[0]) {
		t.Errorf("retrievalQuery() = %q", q[:40])
	}
}

func TestIndexWaitsForWriter(t *testing.T) {
	o := New(Config{}, &fakeCompleter{}, letterEmbedder{}, logger.Nop()).(*implOrchestrator)
	o.writes <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chunks := []Chunk{{ID: "1", Content: "A : hi"}}
	if err := o.index(ctx, nil, chunks, "run"); !errors.Is(err, context.Canceled) {
		t.Errorf("index() while another write holds the index = %v, want context.Canceled", err)
	}
}
