package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type modelCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeModels struct {
	mu    sync.Mutex
	queue []fakeResponse
	calls []modelCall
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, modelCall{model: model, contents: contents, config: config})
	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.resp, res.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

type recordedWaits struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordedWaits) wait(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
	return nil
}

func newTestGenerator(models *fakeModels, retries int, waits *recordedWaits) *Generator {
	return &Generator{
		models:     models,
		model:      "gemini-test",
		maxRetries: retries,
		logger:     zap.NewNop(),
		wait:       waits.wait,
	}
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(nil, genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"})
	models.enqueue(textResponse("retry", " ok "), nil)

	waits := &recordedWaits{}
	g := newTestGenerator(models, 3, waits)

	output, err := g.GenerateContent(context.Background(), "system", "message")
	require.NoError(t, err)
	assert.Equal(t, "retry\nok", output)

	require.Len(t, models.calls, 3)
	assert.Equal(t, []time.Duration{baseBackoff, 2 * baseBackoff}, waits.delays)

	for _, call := range models.calls {
		assert.Equal(t, "gemini-test", call.model)
		require.NotNil(t, call.config.SystemInstruction)
		assert.Equal(t, "system", call.config.SystemInstruction.Parts[0].Text)
		assert.Equal(t, "application/json", call.config.ResponseMIMEType)
		require.Len(t, call.contents, 1)
		assert.Equal(t, "message", call.contents[0].Parts[0].Text)
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g := newTestGenerator(models, 2, &recordedWaits{})

	_, err := g.GenerateContent(context.Background(), "sys", "msg")
	require.Error(t, err)
	assert.Len(t, models.calls, 2)
}

func TestGeneratorQuotaDelay(t *testing.T) {
	t.Run("short delay is honoured", func(t *testing.T) {
		models := &fakeModels{}
		models.enqueue(nil, genai.APIError{Code: http.StatusTooManyRequests, Message: "Please retry in 1.5s."})
		models.enqueue(textResponse(`{"summary":"ok"}`), nil)

		waits := &recordedWaits{}
		_, err := newTestGenerator(models, 3, waits).GenerateContent(context.Background(), "", "msg")
		require.NoError(t, err)
		assert.Equal(t, []time.Duration{1500 * time.Millisecond}, waits.delays)
		assert.Nil(t, models.calls[0].config.SystemInstruction)
	})

	t.Run("long delay is not retried", func(t *testing.T) {
		models := &fakeModels{}
		models.enqueue(nil, genai.APIError{
			Code:    http.StatusTooManyRequests,
			Status:  "RESOURCE_EXHAUSTED",
			Message: "quota exhausted, retry after 60 seconds",
		})

		_, err := newTestGenerator(models, 3, &recordedWaits{}).GenerateContent(context.Background(), "sys", "msg")
		require.Error(t, err)
		assert.Len(t, models.calls, 1)
	})
}

func TestGeneratorDoesNotRetryClientErrors(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	_, err := newTestGenerator(models, 3, &recordedWaits{}).GenerateContent(context.Background(), "sys", "msg")
	require.Error(t, err)
	assert.Len(t, models.calls, 1)
}

func TestGeneratorStopsWhenWaitIsCancelled(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError})

	g := newTestGenerator(models, 3, &recordedWaits{})
	g.wait = func(context.Context, time.Duration) error { return context.Canceled }

	_, err := g.GenerateContent(context.Background(), "sys", "msg")
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, models.calls, 1)
}

func TestGeneratorRejectsEmptyInput(t *testing.T) {
	_, err := newTestGenerator(&fakeModels{}, 1, &recordedWaits{}).GenerateContent(context.Background(), "sys", "  ")
	require.Error(t, err)

	var nilGen *Generator
	_, err = nilGen.GenerateContent(context.Background(), "sys", "msg")
	require.Error(t, err)
	assert.Empty(t, nilGen.Model())
}

func TestGeneratorEmptyResponse(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("  "), nil)

	_, err := newTestGenerator(models, 1, &recordedWaits{}).GenerateContent(context.Background(), "sys", "msg")
	require.EqualError(t, err, "gemini api returned empty response")
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	_, err := NewGenerator(context.Background(), " ", "", 0, nil)
	require.Error(t, err)
}
