package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorMessageIncludesPath(t *testing.T) {
	err := NewConfigError("cfg.yaml", "bad geometry")
	assert.Equal(t, "config error in cfg.yaml: bad geometry", err.Error())
}

func TestConfigErrorWithoutPath(t *testing.T) {
	err := NewConfigError("", "bad geometry")
	assert.Equal(t, "config error: bad geometry", err.Error())
}

func TestWrapConfigErrorIncludesCauseMessage(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapConfigError("cfg.yaml", cause)
	assert.ErrorContains(t, err, "disk full")
}

func TestTraceErrorFormatsFileAndLine(t *testing.T) {
	err := NewTraceError("trace.txt", 12, "bad hex address")
	assert.Equal(t, "trace error in trace.txt at line 12: bad hex address", err.Error())
}

func TestTraceErrorWithoutLine(t *testing.T) {
	err := NewTraceError("trace.txt", 0, "file not found")
	assert.Equal(t, "trace error in trace.txt: file not found", err.Error())
}

func TestInvariantViolationMessage(t *testing.T) {
	err := NewInvariantViolation("allocation did not yield a present entry")
	assert.Equal(t, "invariant violation: allocation did not yield a present entry", err.Error())
}
