package log

import (
	"github.com/kochabx/crawlerweb/log/writer"
)

// Config is the logging section of the application config.
type Config struct {
	Level   string      `json:"level" mapstructure:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Console bool        `json:"console" mapstructure:"console" default:"true"`
	Caller  bool        `json:"caller" mapstructure:"caller"`
	File    *FileConfig `json:"file" mapstructure:"file"`
}

// FileConfig 日志文件配置，RotateMode 为 "time" 或 "size"
type FileConfig struct {
	Dir        string            `json:"dir" mapstructure:"dir" default:"log"`
	Name       string            `json:"name" mapstructure:"name" default:"crawlerweb"`
	Ext        string            `json:"ext" mapstructure:"ext" default:"log"`
	RotateMode writer.RotateMode `json:"rotate_mode" mapstructure:"rotate_mode" default:"size" validate:"oneof=time size"`
	Rotatelogs RotatelogsConfig  `json:"rotatelogs" mapstructure:"rotatelogs"`
	Lumberjack LumberjackConfig  `json:"lumberjack" mapstructure:"lumberjack"`
}

// RotatelogsConfig 按时间轮转配置，单位为小时
type RotatelogsConfig struct {
	MaxAge       int `json:"max_age" mapstructure:"max_age" default:"24"`
	RotationTime int `json:"rotation_time" mapstructure:"rotation_time" default:"1"`
}

// LumberjackConfig 按大小轮转配置
type LumberjackConfig struct {
	MaxSize    int  `json:"max_size" mapstructure:"max_size" default:"100"`
	MaxBackups int  `json:"max_backups" mapstructure:"max_backups" default:"5"`
	MaxAge     int  `json:"max_age" mapstructure:"max_age" default:"30"`
	Compress   bool `json:"compress" mapstructure:"compress"`
}

func (c *FileConfig) rotateConfig() writer.RotateConfig {
	return writer.RotateConfig{
		Mode: c.RotateMode,
		Dir:  c.Dir,
		Name: c.Name,
		Ext:  c.Ext,
		ByTime: writer.TimeRotateConfig{
			MaxAge:       c.Rotatelogs.MaxAge,
			RotationTime: c.Rotatelogs.RotationTime,
		},
		BySize: writer.SizeRotateConfig{
			MaxSize:    c.Lumberjack.MaxSize,
			MaxBackups: c.Lumberjack.MaxBackups,
			MaxAge:     c.Lumberjack.MaxAge,
			Compress:   c.Lumberjack.Compress,
		},
	}
}
