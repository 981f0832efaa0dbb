package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContentPrecedence(t *testing.T) {
	raw := json.RawMessage(`{"content":"second","data":"first","message":"fourth"}`)

	content, found := ExtractContent(raw, overviewExtractors)
	assert.True(t, found)
	assert.Equal(t, "first", content)
}

func TestExtractContentFallsThroughMissingFields(t *testing.T) {
	raw := json.RawMessage(`{"message":"hello"}`)

	content, found := ExtractContent(raw, overviewExtractors)
	assert.True(t, found)
	assert.Equal(t, "hello", content)
}

func TestExtractContentBareString(t *testing.T) {
	raw := json.RawMessage(`"just text"`)

	content, found := ExtractContent(raw, overviewExtractors)
	assert.True(t, found)
	assert.Equal(t, "just text", content)
}

func TestExtractContentStringifiesUnknownShape(t *testing.T) {
	raw := json.RawMessage(`{"unexpected":"shape"}`)

	content, found := ExtractContent(raw, overviewExtractors)
	assert.False(t, found)
	assert.Contains(t, content, "unexpected")
	assert.Contains(t, content, "shape")
}

func TestExtractContentAnalysisField(t *testing.T) {
	raw := json.RawMessage(`{"analysis":"the bill restricts lobbying"}`)

	content, found := ExtractContent(raw, analysisExtractors)
	assert.True(t, found)
	assert.Equal(t, "the bill restricts lobbying", content)

	// The overview extractors do not recognize "analysis".
	_, found = ExtractContent(raw, overviewExtractors)
	assert.False(t, found)
}

func TestOverviewSendsQuestionAndThread(t *testing.T) {
	var got overviewRequest
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, overviewPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"data": "an answer"})
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "/agent/invoke", 5*time.Second)
	content, err := client.Overview(context.Background(), "conv-1", "what is HB121?")

	require.NoError(t, err)
	assert.Equal(t, "an answer", content)
	assert.Equal(t, "what is HB121?", got.Question)
	assert.Equal(t, "conv-1", got.ThreadID)
}

func TestAnalysisSendsBillRef(t *testing.T) {
	var got analysisRequest
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, analysisPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"analysis": "summary"})
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "/agent/invoke", 5*time.Second)
	content, err := client.Analysis(context.Background(), BillRef{Number: "7", Chamber: ChamberSenate}, "summarize")

	require.NoError(t, err)
	assert.Equal(t, "summary", content)
	assert.Equal(t, "7", got.BillNumber)
	assert.Equal(t, ChamberSenate, got.Chamber)
	assert.Equal(t, "summarize", got.Query)
}

func TestTurnNon2xxIsError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "/agent/invoke", 5*time.Second)
	_, err := client.Overview(context.Background(), "conv-1", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestTurnNetworkFailureIsError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "/agent/invoke", 500*time.Millisecond)
	_, err := client.Overview(context.Background(), "conv-1", "hello")
	assert.Error(t, err)
}

func TestTurnEmptyContentIsError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A bare empty string: no usable content anywhere.
		json.NewEncoder(w).Encode("")
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "/agent/invoke", 5*time.Second)
	_, err := client.Overview(context.Background(), "conv-1", "hello")
	assert.Error(t, err)
}

func TestTurnEmptyFieldFallsBackToBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"data": ""})
	}))
	defer backend.Close()

	// An empty recognized field is skipped; the whole body is stringified
	// rather than failing the turn.
	client := NewClient(backend.URL, "/agent/invoke", 5*time.Second)
	content, err := client.Overview(context.Background(), "conv-1", "hello")
	require.NoError(t, err)
	assert.Contains(t, content, "data")
}

func TestHealthy(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == healthPath {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "/agent/invoke", 5*time.Second)
	assert.True(t, client.Healthy(context.Background()))

	down := NewClient("http://127.0.0.1:1", "/agent/invoke", 500*time.Millisecond)
	assert.False(t, down.Healthy(context.Background()))
}

func TestErrorMessageIsReadable(t *testing.T) {
	msg := ErrorMessage("processing your request", assert.AnError)
	assert.Contains(t, msg, "Sorry, I encountered an error while processing your request")
	assert.Contains(t, msg, "Please try again.")
}
