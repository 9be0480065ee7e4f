package logging

import (
	"fmt"
	"sort"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Config selects the go-logger level and output format.
type Config struct {
	Level  string
	Format string
}

// Provider hands out named loggers backed by go-logger.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the root go-logger. Format is one of console, json or
// pretty; an empty format means console.
func NewProvider(cfg Config) (*Provider, error) {
	options := []glog.Option{}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

// Logger returns the child logger registered under name, or the root logger
// when name is empty.
func (p *Provider) Logger(name string) Logger {
	if p == nil || p.root == nil {
		return NoOp()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return wrap(p.root)
	}
	return wrap(p.root.GetLogger(name))
}

func wrap(inner glog.Logger) Logger {
	if inner == nil {
		return NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

func (l *adapter) WithFields(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		return wrap(with.WithFields(copied))
	}
	return &fieldsAdapter{inner: l.inner, args: sortedArgs(fields)}
}

// fieldsAdapter prepends fixed key/value pairs for loggers without
// WithFields support.
type fieldsAdapter struct {
	inner glog.Logger
	args  []any
}

func (l *fieldsAdapter) Debug(msg string, args ...any) { l.inner.Debug(msg, l.with(args)...) }
func (l *fieldsAdapter) Info(msg string, args ...any)  { l.inner.Info(msg, l.with(args)...) }
func (l *fieldsAdapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, l.with(args)...) }
func (l *fieldsAdapter) Error(msg string, args ...any) { l.inner.Error(msg, l.with(args)...) }

func (l *fieldsAdapter) WithFields(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &fieldsAdapter{inner: l.inner, args: append(append([]any{}, l.args...), sortedArgs(fields)...)}
}

func (l *fieldsAdapter) with(args []any) []any {
	out := make([]any, 0, len(l.args)+len(args))
	out = append(out, l.args...)
	return append(out, args...)
}

func sortedArgs(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}
