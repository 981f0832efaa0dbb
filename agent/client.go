// Package agent is the adapter to the external legislative agent backend.
// It owns request building, response-content extraction and the streamed
// event parse; callers degrade its errors into user-readable assistant
// messages rather than surfacing them.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/logger"
)

const (
	overviewPath = "/agent_legislative_overview/agent_legislative_overview"
	analysisPath = "/agent_legislative_analysis/agent_legislative_analysis"
	healthPath   = "/healthz"
)

// Content extraction rules, applied in order against the response object.
// The precedence is data first, then the generic fields; the analysis
// endpoint may also answer under "analysis".
var (
	overviewExtractors = []string{"data", "content", "response", "message", "output"}
	analysisExtractors = []string{"data", "content", "response", "message", "output", "analysis"}
)

type Client struct {
	baseURL    string
	streamPath string
	httpClient *http.Client
}

// NewClient builds a client for the backend at baseURL. streamPath is the
// endpoint used by the streamed invoke (typically /agent/invoke or
// /agent/stream).
func NewClient(baseURL, streamPath string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		streamPath: streamPath,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type overviewRequest struct {
	Question string `json:"question"`
	ThreadID string `json:"thread_id"`
}

type analysisRequest struct {
	BillNumber string `json:"bill_number"`
	Chamber    string `json:"chamber"`
	Query      string `json:"query"`
}

// Overview runs one general chat turn: the user's question plus the
// conversation id as the agent's thread id.
func (c *Client) Overview(ctx context.Context, conversationID, question string) (string, error) {
	body := overviewRequest{Question: question, ThreadID: conversationID}
	return c.turn(ctx, overviewPath, body, overviewExtractors)
}

// Analysis runs one bill-specific analysis turn.
func (c *Client) Analysis(ctx context.Context, bill BillRef, query string) (string, error) {
	body := analysisRequest{BillNumber: bill.Number, Chamber: bill.Chamber, Query: query}
	return c.turn(ctx, analysisPath, body, analysisExtractors)
}

func (c *Client) turn(ctx context.Context, path string, body interface{}, extractors []string) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "agent request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Errorf("agent returned HTTP %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", errors.Wrap(err, "failed to decode agent response")
	}

	content, found := ExtractContent(raw, extractors)
	if !found {
		logger.Get().Warn("no recognized content field in agent response, using full body",
			zap.String("path", path))
	}
	if content == "" {
		return "", errors.New("no content received from the agent")
	}
	return content, nil
}

// ExtractContent probes the response body with the ordered extractor list.
// A bare JSON string is returned as-is; when no rule matches, the whole
// body is stringified and found is false.
func ExtractContent(raw json.RawMessage, fields []string) (content string, found bool) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, true
	}

	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asObject); err == nil {
		for _, field := range fields {
			value, ok := asObject[field]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(value, &s); err == nil {
				if s != "" {
					return s, true
				}
				continue
			}
			// Non-string payload under a recognized field: stringify it.
			pretty, err := json.MarshalIndent(value, "", "  ")
			if err == nil {
				return string(pretty), true
			}
		}
	}

	pretty, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return string(raw), false
	}
	return string(pretty), false
}

// Healthy probes the backend health endpoint; any 2xx means healthy.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Get().Warn("agent health check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// ErrorMessage renders a turn failure as the user-facing sentence appended
// to the conversation in place of an answer.
func ErrorMessage(action string, err error) string {
	return fmt.Sprintf("Sorry, I encountered an error while %s: %v. Please try again.", action, err)
}
