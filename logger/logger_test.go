package logger

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	os.Setenv("PUPUPU_LOG_FOLDER", os.TempDir())
	InitLogger(logging.DEBUG)
	os.Exit(m.Run())
}

func TestGetLogsHonorsCount(t *testing.T) {
	for i := 0; i < 5; i++ {
		Infof("count entry %d", i)
	}

	logs := GetLogs(3, "INFO")
	assert.Len(t, logs, 3)
	// newest first
	assert.Contains(t, logs[0], "count entry 4")
}

func TestGetLogsFiltersByLevel(t *testing.T) {
	Debug("only at debug")

	for _, line := range GetLogs(maxLogBufferSize, "INFO") {
		assert.NotContains(t, line, "only at debug")
	}
	logs := GetLogs(maxLogBufferSize, "DEBUG")
	assert.Contains(t, fmt.Sprint(logs), "only at debug")
}

func TestConcurrentLogging(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Infof("worker %d line %d", n, j)
				GetLogs(10, "INFO")
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, len(GetLogs(maxLogBufferSize, "DEBUG")), maxLogBufferSize)
}
