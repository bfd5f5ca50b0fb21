package docstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docbridge/docbridge/pkg/dbcapabilities"
)

func TestStoreErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError(dbcapabilities.Riak, "persist", cause)

	assert.Equal(t, "[riak] persist: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestWrapErrorDoesNotDoubleWrap(t *testing.T) {
	inner := NewStoreError(dbcapabilities.Riak, "persist", errors.New("boom"))

	wrapped := WrapError(dbcapabilities.Riak, "findBy", inner)
	assert.Equal(t, error(inner), wrapped)

	assert.Nil(t, WrapError(dbcapabilities.Riak, "findBy", nil))
}

func TestWrapErrorPreservesSentinels(t *testing.T) {
	err := WrapError(dbcapabilities.Riak, "findAll", ErrStreamTimeout)
	assert.ErrorIs(t, err, ErrStreamTimeout)
	assert.True(t, IsStreamPartial(err))
}

func TestUnsupportedOperationError(t *testing.T) {
	err := NewUnsupportedOperationError(dbcapabilities.Riak, "sorted search", "no sort clause in the query grammar")

	assert.ErrorIs(t, err, ErrOperationNotSupported)
	assert.True(t, IsUnsupported(err))
	assert.Contains(t, err.Error(), "sorted search")
}

func TestConnectionError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewConnectionError(dbcapabilities.Riak, "db1.example.com", 8087, cause)

	assert.ErrorIs(t, err, ErrConnectionFailed)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsConnectionError(err))
	assert.Contains(t, err.Error(), "db1.example.com:8087")
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError(dbcapabilities.Riak, "host", "host is required")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "host")
}

func TestDecodeError(t *testing.T) {
	cause := errors.New("bad syntax")
	err := NewDecodeError("users", "born", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "users.born")
}
