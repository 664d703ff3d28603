// Package client talks to the CardDemo REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	appErrors "github.com/patilpriyadarshini/migration-repo-sub001/errors"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/contextutil"
	"github.com/patilpriyadarshini/migration-repo-sub001/logging"
)

const (
	HEADER_USER_ID    = "X-User-Id"
	HEADER_USER_TYPE  = "X-User-Type"
	HEADER_REQUEST_ID = "X-Request-Id"

	MAX_ERROR_BODY = 4096

	MSG_NOT_FOUND   = "not found"
	MSG_REJECTED    = "The request was rejected by the server"
	MSG_UNAVAILABLE = "Unable to reach the CardDemo service, please try again"
	MSG_SERVER      = "The CardDemo service failed to process the request"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends one API call. GET requests get exactly one retry on a transport
// failure or a 5xx answer; writes are sent once.
func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = 2
	}

	log := logging.Logger.WithFields(logrus.Fields{
		"trace_id": contextutil.TraceIDFromContext(ctx),
		"method":   method,
		"path":     path,
	})

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		req, err := c.newRequest(ctx, method, target, payload)
		if err != nil {
			return err
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = appErrors.ErrorResponse{Code: appErrors.ErrUnavailable, Message: MSG_UNAVAILABLE}
			log.WithField("attempt", attempt).Warnf("carddemo api call failed: %v", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		lastErr = c.handleResponse(resp, out)
		resp.Body.Close()
		log.WithFields(logrus.Fields{
			"attempt":  attempt,
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
		}).Debug("carddemo api call")

		if resp.StatusCode < http.StatusInternalServerError {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) newRequest(ctx context.Context, method string, target string, payload []byte) (*http.Request, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, target, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HEADER_REQUEST_ID, contextutil.TraceIDFromContext(ctx))
	if session := contextutil.SessionFromContext(ctx); session != nil {
		req.Header.Set(HEADER_USER_ID, session.UserID)
		req.Header.Set(HEADER_USER_TYPE, string(session.Role))
	}
	return req, nil
}

func (c *Client) handleResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrInternal,
				Message: fmt.Sprintf("failed to decode response: %v", err),
				Status:  resp.StatusCode,
			}
		}
		return nil
	}

	serverMsg := readServerMessage(resp.Body)
	return classify(resp.StatusCode, serverMsg)
}

// classify maps an HTTP failure onto the console's error taxonomy. Server
// text is kept for client errors; server faults get a generic message.
func classify(status int, serverMsg string) error {
	withFallback := func(fallback string) string {
		if serverMsg != "" {
			return serverMsg
		}
		return fallback
	}

	switch {
	case status == http.StatusNotFound:
		return appErrors.ErrorResponse{Code: appErrors.ErrNotFound, Message: withFallback(MSG_NOT_FOUND), Status: status}
	case status == http.StatusUnauthorized:
		return appErrors.ErrorResponse{Code: appErrors.ErrAuth, Message: withFallback("Invalid user ID or password"), Status: status}
	case status == http.StatusForbidden:
		return appErrors.ErrorResponse{Code: appErrors.ErrAccessDenied, Message: withFallback("Access denied"), Status: status}
	case status == http.StatusConflict:
		return appErrors.ErrorResponse{Code: appErrors.ErrConflict, Message: withFallback(MSG_REJECTED), Status: status}
	case status >= 400 && status < 500:
		return appErrors.ErrorResponse{Code: appErrors.ErrRejected, Message: withFallback(MSG_REJECTED), Status: status}
	}
	return appErrors.ErrorResponse{Code: appErrors.ErrUnavailable, Message: MSG_SERVER, Status: status}
}

func readServerMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, MAX_ERROR_BODY))
	if err != nil {
		return ""
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return ""
	}
	var parsed errorBody
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		return parsed.Error
	}
	if strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}
