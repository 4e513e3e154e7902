package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/valyala/fasthttp"

	"github.com/hrboard/client/domain"
)

// User-facing messages for failures where no response was received.
const (
	msgTimeout     = "Request timeout. The server is taking too long to respond."
	msgUnreachable = "Network error. Please check your connection and try again."
	msgBlocked     = "Request blocked before reaching the server. Check proxy or firewall settings."
)

// classifyTransport subdivides no-response failures into timeout,
// blocked-locally, and generic unreachable.
func classifyTransport(err error) error {
	switch {
	case isTimeout(err):
		return domain.WrapError(domain.ErrCodeTimeout, msgTimeout, err)
	case isBlocked(err):
		return domain.WrapError(domain.ErrCodeBlocked, msgBlocked, err)
	default:
		return domain.WrapError(domain.ErrCodeUnreachable, msgUnreachable, err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, fasthttp.ErrTimeout) ||
		errors.Is(err, fasthttp.ErrDialTimeout) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isBlocked(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, fasthttp.ErrConnectionClosed)
}

// errorMessage prefers the backend's own message over a generic one.
func errorMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}
