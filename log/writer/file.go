package writer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// RotateConfig 日志轮转配置
type RotateConfig struct {
	Mode   RotateMode
	Dir    string
	Name   string
	Ext    string
	ByTime TimeRotateConfig
	BySize SizeRotateConfig
}

// TimeRotateConfig 按时间轮转配置
type TimeRotateConfig struct {
	MaxAge       int // hours
	RotationTime int // hours
}

// SizeRotateConfig 按大小轮转配置
type SizeRotateConfig struct {
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// File 创建文件输出 writer
func File(config RotateConfig) (io.Writer, error) {
	switch config.Mode {
	case RotateModeTime:
		return timeRotateWriter(config)
	case RotateModeSize, "":
		return sizeRotateWriter(config)
	default:
		return nil, fmt.Errorf("unsupported rotate mode: %q", config.Mode)
	}
}

// Path 返回日志文件的完整路径，例如 log/crawlerweb.log
func (c RotateConfig) Path() string {
	return c.pathWithPattern("")
}

func (c RotateConfig) pathWithPattern(pattern string) string {
	var b strings.Builder
	b.WriteString(c.Name)
	if pattern != "" {
		b.WriteByte('.')
		b.WriteString(pattern)
	}
	b.WriteByte('.')
	b.WriteString(c.Ext)
	return filepath.Join(c.Dir, b.String())
}
