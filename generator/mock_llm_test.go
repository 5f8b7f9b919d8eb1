package generator

import (
	"context"
	"strings"
	"testing"
)

func TestMockLLMThroughAgent(t *testing.T) {
	agent, err := NewAgent(MockLLM{}, WithProvider("mock"))
	if err != nil {
		t.Fatal(err)
	}
	res, err := agent.Generate(context.Background(), Request{
		Topic:    "Cats & Dogs",
		Keywords: []string{"pets", "care"},
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !strings.Contains(res.Content, "<h1>Cats &amp; Dogs</h1>") {
		t.Errorf("topic not rendered: %s", res.Content)
	}
	if res.Metrics.KeywordsUsed != 2 {
		t.Errorf("KeywordsUsed = %d, want 2", res.Metrics.KeywordsUsed)
	}
}
