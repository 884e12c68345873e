package tools

import (
	"context"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/algotutor-core/server/internal/agent/model"
	"github.com/algotutor-core/server/internal/cache"
	"github.com/algotutor-core/server/internal/provider/websearch"
)

// fakeKnowledge resolves a fixed concept table by substring match.
type fakeKnowledge struct {
	concepts map[string]string
	err      error
}

func (f *fakeKnowledge) LookupConcept(ctx context.Context, concept string) (*model.Concept, error) {
	if f.err != nil {
		return nil, f.err
	}
	for title, explanation := range f.concepts {
		if strings.Contains(strings.ToLower(concept), strings.ToLower(title)) {
			return &model.Concept{Title: title, Explanation: explanation}, nil
		}
	}
	return nil, nil
}

// fakeSearcher returns scripted results and counts provider calls.
type fakeSearcher struct {
	available bool
	results   []websearch.Result
	err       error
	calls     int
}

func (f *fakeSearcher) Available() bool { return f.available }

func (f *fakeSearcher) Search(ctx context.Context, topic string) ([]websearch.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

// fakeChatModel yields scripted responses in order, one per Generate call.
type fakeChatModel struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	idx := f.calls
	f.calls++
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return schema.AssistantMessage(f.responses[idx], nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	out, err := f.Generate(ctx, in, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{out}), nil
}

// fakeEmbedder mirrors the cache package test helper: fixed vectors per text.
type fakeEmbedder struct {
	vectors map[string][]float64
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float64{0, 0, 1}, nil
}

var _ cache.EmbeddingProvider = (*fakeEmbedder)(nil)
var _ Searcher = (*fakeSearcher)(nil)
var _ einomodel.BaseChatModel = (*fakeChatModel)(nil)
