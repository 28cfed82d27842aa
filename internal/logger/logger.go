// Package logger 提供统一的日志工具
//
// 后端基于 log/slog，控制台输出使用 tint 着色；组件日志通过 Named 获取，
// 与默认 logger 共享级别和输出目标。
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/lmittmann/tint"
)

// Level 日志级别
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel 解析日志级别字符串
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug", "TRACE", "trace":
		return DEBUG
	case "INFO", "info":
		return INFO
	case "WARN", "warn", "WARNING", "warning":
		return WARN
	case "ERROR", "error":
		return ERROR
	default:
		return INFO
	}
}

// sink 输出目标，所有组件 logger 共享
type sink struct {
	mu       sync.Mutex
	level    Level
	enabled  bool
	console  bool
	file     bool
	filePath string
	fileOut  *os.File
	stdout   io.Writer
	slog     *slog.Logger
}

// Logger 日志记录器
type Logger struct {
	s         *sink
	component string
}

// 全局默认 logger
var defaultLogger = New()

// New 创建新的 Logger 实例
func New() *Logger {
	return newWithConsole(os.Stdout)
}

// NewWithWriter 创建输出到指定 writer 的 Logger（无颜色），主要用于测试
func NewWithWriter(w io.Writer) *Logger {
	return newWithConsole(w)
}

func newWithConsole(w io.Writer) *Logger {
	s := &sink{
		level:   INFO,
		enabled: true,
		console: true,
		stdout:  w,
	}
	s.updateOutput()
	return &Logger{s: s}
}

// Default 获取默认 logger
func Default() *Logger {
	return defaultLogger
}

// Named 返回带组件名的 logger，与当前 logger 共享配置
func (l *Logger) Named(component string) *Logger {
	return &Logger{s: l.s, component: component}
}

// Component 返回组件名
func (l *Logger) Component() string {
	return l.component
}

// SetLevel 设置日志级别
func (l *Logger) SetLevel(level Level) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.level = level
}

// GetLevel 获取日志级别
func (l *Logger) GetLevel() Level {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.s.level
}

// SetEnabled 设置是否启用日志
func (l *Logger) SetEnabled(enabled bool) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.enabled = enabled
}

// SetConsole 设置是否输出到控制台
func (l *Logger) SetConsole(enabled bool) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.console = enabled
	l.s.updateOutput()
}

// SetFile 设置是否输出到文件
func (l *Logger) SetFile(enabled bool, path string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	// 关闭旧文件
	if l.s.fileOut != nil {
		l.s.fileOut.Close()
		l.s.fileOut = nil
	}

	l.s.file = enabled
	l.s.filePath = path

	if enabled && path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("无法打开日志文件: %w", err)
		}
		l.s.fileOut = f
	}

	l.s.updateOutput()
	return nil
}

// updateOutput 重建 slog handler，调用方需持有锁
func (s *sink) updateOutput() {
	var writers []io.Writer

	if s.console && s.stdout != nil {
		writers = append(writers, s.stdout)
	}
	if s.file && s.fileOut != nil {
		writers = append(writers, s.fileOut)
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	// 只有纯控制台输出时才着色
	noColor := s.stdout != os.Stdout || (s.file && s.fileOut != nil)
	s.slog = slog.New(tint.NewHandler(out, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}))
}

// log 内部日志方法
func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if !l.s.enabled || level < l.s.level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if l.component != "" {
		l.s.slog.Log(context.Background(), level.slogLevel(), msg, slog.String("component", l.component))
		return
	}
	l.s.slog.Log(context.Background(), level.slogLevel(), msg)
}

// Debug 输出 DEBUG 级别日志
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info 输出 INFO 级别日志
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn 输出 WARN 级别日志
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error 输出 ERROR 级别日志
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// LogEvent 记录带分类的事件日志
func (l *Logger) LogEvent(category string, ok bool, elapsedMs float64, detail string) {
	if ok {
		l.Info("%-4s | OK | %6.1fms | %s", category, elapsedMs, detail)
	} else {
		l.Error("%-4s | NG | %6.1fms | %s", category, elapsedMs, detail)
	}
}

// Close 关闭 logger，释放资源
func (l *Logger) Close() error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if l.s.fileOut != nil {
		err := l.s.fileOut.Close()
		l.s.fileOut = nil
		l.s.updateOutput()
		return err
	}
	return nil
}

// 包级别便捷函数
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }
func Info(format string, args ...interface{})  { defaultLogger.Info(format, args...) }
func Warn(format string, args ...interface{})  { defaultLogger.Warn(format, args...) }
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
func Named(component string) *Logger           { return defaultLogger.Named(component) }
func LogEvent(category string, ok bool, elapsedMs float64, detail string) {
	defaultLogger.LogEvent(category, ok, elapsedMs, detail)
}
