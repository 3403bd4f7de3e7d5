package memory

import (
	"fmt"
	"io"
	"os"

	"apifiny/pkg/usecase/log"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	Debug = iota
	Info
	Error
)

// Logger ロガー（出力はlogrus）
type Logger struct {
	Level int

	out *logrus.Logger
}

// NewLogger 生成
// file を指定した場合は標準エラーに加えてローテーションするファイルにも出力する。
func NewLogger(level int, file string) *Logger {
	l := logrus.New()
	l.SetLevel(toLogrusLevel(level))
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var w io.Writer = os.Stderr
	if file != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}
	l.SetOutput(w)

	return &Logger{Level: level, out: l}
}

// ParseLevel 文字列からログレベルに変換（不明な値は Info）
func ParseLevel(s string) int {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return Info
	}
	switch {
	case lvl >= logrus.DebugLevel:
		return Debug
	case lvl >= logrus.InfoLevel:
		return Info
	default:
		return Error
	}
}

func toLogrusLevel(level int) logrus.Level {
	switch level {
	case Debug:
		return logrus.DebugLevel
	case Info:
		return logrus.InfoLevel
	default:
		return logrus.ErrorLevel
	}
}

func (l *Logger) logger() *logrus.Logger {
	if l.out == nil {
		l.out = logrus.StandardLogger()
		l.out.SetLevel(toLogrusLevel(l.Level))
	}
	return l.out
}

func (l *Logger) Debug(format string, v ...interface{}) {
	if l.Level > Debug {
		return
	}
	l.logger().Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	if l.Level > Info {
		return
	}
	l.logger().Infof(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	if l.Level > Error {
		return
	}
	l.logger().Error(log.Red("%s", fmt.Sprintf(format, v...)))
}
