package writer

import (
	"fmt"
	"io"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateMode 日志轮转模式
type RotateMode string

const (
	RotateModeTime RotateMode = "time"
	RotateModeSize RotateMode = "size"
)

func timeRotateWriter(config RotateConfig) (io.Writer, error) {
	w, err := rotatelogs.New(
		config.pathWithPattern("%Y%m%d%H%M"),
		rotatelogs.WithLinkName(config.Path()),
		rotatelogs.WithMaxAge(time.Duration(config.ByTime.MaxAge)*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(config.ByTime.RotationTime)*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create time rotate writer: %w", err)
	}
	return w, nil
}

func sizeRotateWriter(config RotateConfig) (io.Writer, error) {
	return &lumberjack.Logger{
		Filename:   config.Path(),
		MaxSize:    config.BySize.MaxSize,
		MaxBackups: config.BySize.MaxBackups,
		MaxAge:     config.BySize.MaxAge,
		Compress:   config.BySize.Compress,
	}, nil
}
