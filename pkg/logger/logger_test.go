package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesEntries(t *testing.T) {
	log := New("test", "0.0.0")
	log.DisableConsoleOutput()

	ch := log.Subscribe()
	log.Infof("hello %s", "world")

	select {
	case entry := <-ch:
		assert.Equal(t, "INFO", entry.Level)
		assert.Equal(t, "hello world", entry.Message)
	case <-time.After(time.Second):
		t.Fatal("no log entry received")
	}
}

func TestWithFields(t *testing.T) {
	log := New("test", "0.0.0")
	log.DisableConsoleOutput()

	ch := log.Subscribe()
	log.WithFields(map[string]string{"bucket": "users"}).Info("scan done")

	select {
	case entry := <-ch:
		require.NotNil(t, entry.Fields)
		assert.Equal(t, "users", entry.Fields["bucket"])
	case <-time.After(time.Second):
		t.Fatal("no log entry received")
	}
}

func TestFullSubscriberDoesNotBlock(t *testing.T) {
	log := New("test", "0.0.0")
	log.DisableConsoleOutput()

	log.Subscribe()
	for i := 0; i < 200; i++ {
		log.Debug("spam")
	}
	// overflowing a subscriber drops entries instead of blocking the logger
}
