package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	logFormatAutoStringConstant          = "auto"
	jsonZapEncodingStringConstant        = "json"
	consoleZapEncodingStringConstant     = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	emptyLogFormatValueConstant          = ""
	logFileMaxSizeMegabytesConstant      = 10
	logFileMaxBackupsConstant            = 3
	logFileMaxAgeDaysConstant            = 28
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
	LogFormatAuto       LogFormat = LogFormat(logFormatAutoStringConstant)
)

// LoggerOutputs carries the loggers produced for a single process invocation.
type LoggerOutputs struct {
	// DiagnosticLogger records structured diagnostics at the configured level.
	DiagnosticLogger *zap.Logger
	// ConsoleLogger renders human-readable lines for interactive sessions.
	ConsoleLogger *zap.Logger
	// ResolvedLogFormat is the concrete format after auto detection.
	ResolvedLogFormat LogFormat
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

var logFormatEncodingMapping = map[LogFormat]string{
	LogFormatStructured: jsonZapEncodingStringConstant,
	LogFormatConsole:    consoleZapEncodingStringConstant,
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// ResolveLogFormat maps the auto format to a concrete encoding based on the stderr terminal state.
func (factory *LoggerFactory) ResolveLogFormat(requestedLogFormat LogFormat) (LogFormat, error) {
	switch requestedLogFormat {
	case LogFormatStructured, LogFormatConsole:
		return requestedLogFormat, nil
	case LogFormatAuto:
		standardErrorDescriptor := os.Stderr.Fd()
		if isatty.IsTerminal(standardErrorDescriptor) || isatty.IsCygwinTerminal(standardErrorDescriptor) {
			return LogFormatConsole, nil
		}
		return LogFormatStructured, nil
	default:
		return LogFormat(emptyLogFormatValueConstant), fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	resolvedLogFormat, formatError := factory.ResolveLogFormat(requestedLogFormat)
	if formatError != nil {
		return nil, formatError
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLogLevel)
	configuration.Encoding = logFormatEncodingMapping[resolvedLogFormat]

	logger, buildError := configuration.Build()
	if buildError != nil {
		return nil, buildError
	}

	return logger, nil
}

// CreateLoggerOutputs produces the diagnostic and console loggers for one invocation.
// A non-empty logFilePath adds a rotating JSON sink alongside the stderr output.
func (factory *LoggerFactory) CreateLoggerOutputs(requestedLogLevel LogLevel, requestedLogFormat LogFormat, logFilePath string) (LoggerOutputs, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return LoggerOutputs{}, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	resolvedLogFormat, formatError := factory.ResolveLogFormat(requestedLogFormat)
	if formatError != nil {
		return LoggerOutputs{}, formatError
	}

	atomicLevel := zap.NewAtomicLevelAt(zapLogLevel)
	standardErrorSyncer := zapcore.Lock(os.Stderr)

	diagnosticCores := []zapcore.Core{
		zapcore.NewCore(factory.buildDiagnosticEncoder(resolvedLogFormat), standardErrorSyncer, atomicLevel),
	}

	trimmedLogFilePath := strings.TrimSpace(logFilePath)
	if len(trimmedLogFilePath) > 0 {
		rotatingLogWriter := &lumberjack.Logger{
			Filename:   trimmedLogFilePath,
			MaxSize:    logFileMaxSizeMegabytesConstant,
			MaxBackups: logFileMaxBackupsConstant,
			MaxAge:     logFileMaxAgeDaysConstant,
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotatingLogWriter),
			atomicLevel,
		)
		diagnosticCores = append(diagnosticCores, fileCore)
	}

	diagnosticLogger := zap.New(
		zapcore.NewTee(diagnosticCores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	consoleLogger := zap.New(zapcore.NewCore(factory.buildConsoleEncoder(), standardErrorSyncer, atomicLevel))

	return LoggerOutputs{
		DiagnosticLogger:  diagnosticLogger,
		ConsoleLogger:     consoleLogger,
		ResolvedLogFormat: resolvedLogFormat,
	}, nil
}

func (factory *LoggerFactory) buildDiagnosticEncoder(resolvedLogFormat LogFormat) zapcore.Encoder {
	if resolvedLogFormat == LogFormatConsole {
		encoderConfiguration := zap.NewDevelopmentEncoderConfig()
		encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewConsoleEncoder(encoderConfiguration)
	}
	return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
}

func (factory *LoggerFactory) buildConsoleEncoder() zapcore.Encoder {
	encoderConfiguration := zap.NewDevelopmentEncoderConfig()
	encoderConfiguration.TimeKey = zapcore.OmitKey
	encoderConfiguration.CallerKey = zapcore.OmitKey
	encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfiguration)
}
