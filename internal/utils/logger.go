package utils

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/user/eazybee/internal/config"
)

// InitLogger 配置标准库 log 的输出，设置了 LOG_FILE 时同时写入滚动日志文件
func InitLogger(cfg *config.Config) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if cfg.LogFile == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	log.Printf("[Logger] 日志同时写入 %s", cfg.LogFile)
	return rotator
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
