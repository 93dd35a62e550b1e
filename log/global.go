package log

import (
	"github.com/rs/zerolog"
)

// G 全局日志记录器
var G = New()

func SetGlobalLogger(logger *Logger) {
	G = logger
}

func SetGlobalLevel(level zerolog.Level) {
	G.Logger = G.Logger.Level(level)
}

func Debug() *zerolog.Event {
	return G.Debug()
}

func Info() *zerolog.Event {
	return G.Info()
}

func Warn() *zerolog.Event {
	return G.Warn()
}

// Error 返回 error 级别的日志事件（带堆栈）
func Error() *zerolog.Event {
	return G.Error().Stack()
}

func Fatal() *zerolog.Event {
	return G.Fatal().Stack()
}

func Debugf(format string, args ...any) {
	G.Debug().Msgf(format, args...)
}

func Infof(format string, args ...any) {
	G.Info().Msgf(format, args...)
}

func Warnf(format string, args ...any) {
	G.Warn().Msgf(format, args...)
}

func Errorf(format string, args ...any) {
	G.Error().Stack().Msgf(format, args...)
}

func Fatalf(format string, args ...any) {
	G.Fatal().Stack().Msgf(format, args...)
}
