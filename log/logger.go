// Package log is a thin zerolog wrapper with console and rotating file output.
package log

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/crawlerweb/core/tag"
	"github.com/kochabx/crawlerweb/log/writer"
)

// Logger 日志记录器，持有其打开的文件 writer
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// Close 关闭日志记录器，释放资源
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

func newLogger(w io.Writer, opts ...Option) *Logger {
	logger := &Logger{
		Logger: zerolog.New(w).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(logger)
	}
	return logger
}

// New 创建新的 Logger 实例，输出到控制台
func New(opts ...Option) *Logger {
	return newLogger(writer.Console(), opts...)
}

// NewWriter writes JSON lines to w. Mostly useful in tests.
func NewWriter(w io.Writer, opts ...Option) *Logger {
	return newLogger(w, opts...)
}

// NewFile 创建文件输出的 Logger
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := openFile(&c)
	if err != nil {
		return nil, err
	}
	logger := newLogger(fw, opts...)
	logger.closer, _ = fw.(io.Closer)
	return logger, nil
}

// NewMulti 创建同时输出到文件和控制台的 Logger
func NewMulti(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := openFile(&c)
	if err != nil {
		return nil, err
	}
	logger := newLogger(zerolog.MultiLevelWriter(fw, writer.Console()), opts...)
	logger.closer, _ = fw.(io.Closer)
	return logger, nil
}

// NewFromConfig 根据配置创建 Logger
// 未配置 file 时即使 Console 为 false 也输出到控制台
func NewFromConfig(c Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	opts := []Option{WithLevel(level)}
	if c.Caller {
		opts = append(opts, WithCaller())
	}

	switch {
	case c.File == nil:
		return New(opts...), nil
	case c.Console:
		return NewMulti(*c.File, opts...)
	default:
		return NewFile(*c.File, opts...)
	}
}

func openFile(c *FileConfig) (io.Writer, error) {
	if err := tag.ApplyDefaults(c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	w, err := writer.File(c.rotateConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}
	return w, nil
}
