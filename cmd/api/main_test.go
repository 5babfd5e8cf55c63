package main

import (
	"testing"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/config"
)

func TestNewLoggerWithoutLogstash(t *testing.T) {
	logger, closeLogs, err := newLogger(config.Config{AppEnv: "production"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer closeLogs()
	logger.Info().Msg("ready")
}

func TestNewLoggerWithLogstash(t *testing.T) {
	logger, closeLogs, err := newLogger(config.Config{AppEnv: "dev", LogstashTCPAddr: "127.0.0.1:1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	logger.Info().Msg("mirrored")
	closeLogs()
}

func TestNewLoggerRejectsBlankLogstashAddr(t *testing.T) {
	_, closeLogs, err := newLogger(config.Config{LogstashTCPAddr: "   "})
	if err == nil {
		t.Fatal("expected error for blank logstash address")
	}
	closeLogs()
}
