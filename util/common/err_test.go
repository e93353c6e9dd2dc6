package common

import (
	"errors"
	"os"
	"testing"

	"github.com/khoshimi/Pupupu/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	os.Setenv("PUPUPU_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

func TestNewErrorf(t *testing.T) {
	err := NewErrorf("key <%v> missing", "webPort")
	assert.EqualError(t, err, "key <webPort> missing")
}

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine())
	assert.NoError(t, Combine(nil, nil))

	first := errors.New("first")
	second := errors.New("second")
	assert.Equal(t, first, Combine(nil, first, nil))
	assert.EqualError(t, Combine(first, second), "first; second")
}

func TestRecoverStopsPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("test")
		panic("boom")
	})

	// without a panic in flight there is nothing to recover
	assert.Nil(t, Recover(""))
}
