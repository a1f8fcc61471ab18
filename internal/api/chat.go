package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/readingchat/internal/errors"
	"github.com/diogo/readingchat/internal/models"
)

// maxErrorDetail limits how much of a failed response body is quoted
const maxErrorDetail = 512

// Chat posts one message to the backend and returns the parsed answer.
// Every failure is returned as a *errors.RequestFailure.
func (c *Client) Chat(ctx context.Context, message string) (*models.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apierrors.ErrEmptyMessage
	}

	payload, err := json.Marshal(models.ChatRequest{
		Message:  message,
		CourseID: c.courseID,
		TenantID: c.tenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.ChatURL(), payload)
	if err != nil {
		return nil, err
	}

	return ParseChatResponse(c.ChatURL(), body)
}

// Health queries the backend health route
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	body, err := c.do(ctx, http.MethodGet, c.HealthURL(), nil)
	if err != nil {
		return nil, err
	}

	return ParseHealthResponse(c.HealthURL(), body)
}

// do sends one request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, apierrors.NewTransportFailure(endpoint, err)
	}

	for key, value := range models.DefaultHeaders() {
		if payload == nil && key == "Content-Type" {
			continue
		}
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("url", endpoint).
			Dur("duration", time.Since(start)).Msg("request failed")
		return nil, apierrors.NewTransportFailure(endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewTransportFailure(endpoint, fmt.Errorf("failed to read response body: %w", err))
	}

	c.logger.Debug().Str("method", method).Str("url", endpoint).Int("status", resp.StatusCode).
		Int("bytes", len(body)).Dur("duration", time.Since(start)).Msg("request complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.NewStatusFailure(endpoint, resp.StatusCode, errorDetail(resp.StatusCode, body))
	}

	return body, nil
}

// errorDetail picks a short description for a failed response: the
// "detail" field FastAPI-style backends send, else the status text.
func errorDetail(statusCode int, body []byte) string {
	if detail := detailFromBody(body); detail != "" {
		if len(detail) > maxErrorDetail {
			detail = detail[:maxErrorDetail] + "..."
		}
		return detail
	}
	return http.StatusText(statusCode)
}
