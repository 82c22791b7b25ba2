package claw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Get issues a GET to path with the given query parameters and decodes
// the JSON response into out. Pass nil out to discard the response body.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST to path with body serialized as JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT to path with body serialized as JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE to path with the given query parameters.
func (c *Client) Delete(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, out)
}

// do executes exactly one round trip. It never retries: transport
// failures, node errors, and decode failures are all propagated to the
// caller unchanged (see errors.go for the taxonomy).
//
// path must already carry percent-encoded segments; the resource
// services escape identifiers before building it, and the transport
// never re-encodes a built URL.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	target := c.baseURL + path
	if q := encodeQuery(query, c.listStyle); q != "" {
		target += "?" + q
	}

	var bodyReader io.Reader
	if !isNilBody(body) {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if err := c.setAuth(req); err != nil {
		return err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network-level failure: no response was received. Returned as-is
		// (a *url.Error, or the context error) so callers can tell it
		// apart from a *NodeError.
		return err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	elapsed := time.Since(start)
	if c.metrics != nil {
		c.metrics.observe(method, resp.StatusCode, elapsed)
	}
	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newNodeError(resp.StatusCode, respBytes)
	}

	if out == nil {
		return nil
	}
	if len(respBytes) == 0 {
		return &DecodeError{Status: resp.StatusCode, Err: io.ErrUnexpectedEOF}
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		return &DecodeError{Status: resp.StatusCode, Err: err}
	}
	return nil
}

// isNilBody reports whether body carries no payload. A nil map, slice,
// or pointer inside the any is still nil (it would marshal to the JSON
// literal null, not to an absent body).
func isNilBody(body any) bool {
	if body == nil {
		return true
	}
	v := reflect.ValueOf(body)
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// setAuth attaches the bearer credential, preferring the token source
// over the static API key.
func (c *Client) setAuth(req *http.Request) error {
	if c.tokenSource != nil {
		tok, err := c.tokenSource.Token()
		if err != nil {
			return fmt.Errorf("obtain bearer token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
		return nil
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return nil
}

const upperhex = "0123456789ABCDEF"

// escapeSegment percent-encodes every reserved character in a path
// segment, including ':' and '/', so identifiers such as DIDs embed
// safely. Stricter than url.PathEscape, which leaves sub-delims alone.
func escapeSegment(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			sb.WriteByte(c)
		default:
			sb.WriteByte('%')
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&0xf])
		}
	}
	return sb.String()
}

// encodeQuery percent-encodes query into its canonical string form.
// An empty or nil mapping encodes to "" so no "?" suffix is appended.
func encodeQuery(query url.Values, style QueryListStyle) string {
	if len(query) == 0 {
		return ""
	}
	if style == ListRepeat {
		return query.Encode()
	}

	// Comma-join multi-valued keys, keeping Encode's sorted-key order.
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		vs := query[k]
		if len(vs) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(strings.Join(vs, ",")))
	}
	return sb.String()
}
