package agent

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// StreamChunk is one decoded event from a streamed agent response. Raw
// marks lines that were not valid JSON and are passed through verbatim.
type StreamChunk struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Raw     bool   `json:"raw,omitempty"`
}

// Stream posts a question to the streaming endpoint and invokes onChunk for
// every decoded event. Lines are expected in the "data: {json}" form; each
// data line is decoded independently, and undecodable lines are surfaced as
// raw chunks rather than dropped.
func (c *Client) Stream(ctx context.Context, conversationID, question string, onChunk func(StreamChunk)) error {
	body := overviewRequest{Question: question, ThreadID: conversationID}
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.streamPath, bytes.NewBuffer(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "agent stream request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("agent returned HTTP %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		chunk, ok := ParseStreamLine(line)
		if !ok {
			continue
		}
		onChunk(chunk)
	}
	return errors.Wrap(scanner.Err(), "agent stream read failed")
}

// ParseStreamLine decodes one line of a streamed response. Blank lines and
// empty data payloads yield ok=false.
func ParseStreamLine(line string) (StreamChunk, bool) {
	if !strings.HasPrefix(line, "data: ") {
		if strings.TrimSpace(line) == "" {
			return StreamChunk{}, false
		}
		return StreamChunk{Content: line, Raw: true}, true
	}

	payload := strings.TrimPrefix(line, "data: ")
	if strings.TrimSpace(payload) == "" {
		return StreamChunk{}, false
	}

	var chunk StreamChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return StreamChunk{Content: line, Raw: true}, true
	}
	return chunk, true
}

// CollectStream runs Stream and concatenates the chunks the way the debug
// console renders them: "[type] content" per decoded event, "[RAW] line"
// for passthrough lines.
func (c *Client) CollectStream(ctx context.Context, conversationID, question string) (string, error) {
	var b strings.Builder
	err := c.Stream(ctx, conversationID, question, func(chunk StreamChunk) {
		if chunk.Raw {
			b.WriteString("[RAW] " + chunk.Content + "\n")
			return
		}
		b.WriteString("[" + chunk.Type + "] " + chunk.Content + "\n\n")
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
