package claw

import (
	"encoding/json"
	"fmt"
	"time"
)

// NodeError is a non-success HTTP response from the node. The node's
// error envelope is {"error": {"code", "message", "details"}}; when the
// body does not match that shape, Message carries the raw body text and
// Code is left empty.
type NodeError struct {
	// Status is the HTTP status code.
	Status int
	// Code is the node's machine-readable error code, if any.
	Code string
	// Message is the human-readable error message, or the raw response
	// body when no envelope was present.
	Message string
	// Details is the server-supplied detail payload, if any.
	Details json.RawMessage
}

func (e *NodeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("node error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("node error %d: %s", e.Status, e.Message)
}

// newNodeError maps a non-2xx response body to a NodeError.
func newNodeError(status int, body []byte) *NodeError {
	ne := &NodeError{Status: status, Message: string(body)}

	var envelope struct {
		Error struct {
			Code    string          `json:"code"`
			Message string          `json:"message"`
			Details json.RawMessage `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ne
	}
	if envelope.Error.Message != "" {
		ne.Message = envelope.Error.Message
	}
	ne.Code = envelope.Error.Code
	ne.Details = envelope.Error.Details
	return ne
}

// DecodeError is a success-status response whose body could not be
// decoded as JSON (including an unexpectedly empty body). Endpoints with
// an empty-body success contract should pass a nil out value instead.
type DecodeError struct {
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (status %d): %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SyncTimeoutError is returned by NodeService.WaitForSync when the node
// did not report itself synced within the configured timeout.
type SyncTimeoutError struct {
	Timeout time.Duration
}

func (e *SyncTimeoutError) Error() string {
	return fmt.Sprintf("node did not sync within %s", e.Timeout)
}
