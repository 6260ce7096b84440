package engine

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/restitch/restitch/internal/assistant"
)

// Logger provides structured logging for stream processing.
type Logger struct {
	zap *zap.Logger
}

// NewLogger creates a Logger that appends to a file. An empty path
// disables logging. Development mode uses a readable encoder config;
// otherwise output is production JSON.
func NewLogger(logPath string, development bool) (*Logger, error) {
	if logPath == "" {
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// Close syncs the logger; call on shutdown.
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// ChunkFed logs one buffer extension and the resulting parse.
func (l *Logger) ChunkFed(chunkBytes, bufferBytes, blocks int) {
	l.zap.Info("chunk fed",
		zap.Int("chunk_bytes", chunkBytes),
		zap.Int("buffer_bytes", bufferBytes),
		zap.Int("blocks", blocks),
	)
}

// ToolDispatched logs a completed tool invocation.
func (l *Logger) ToolDispatched(id string, name assistant.ToolName, duration time.Duration, err error) {
	if err != nil {
		l.zap.Info("tool dispatched",
			zap.String("id", id),
			zap.String("tool", string(name)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}
	l.zap.Info("tool dispatched",
		zap.String("id", id),
		zap.String("tool", string(name)),
		zap.Duration("duration", duration),
	)
}

// MarkersRecovered logs malformed diff markers that were auto-corrected.
func (l *Logger) MarkersRecovered(path string, count int) {
	l.zap.Warn("malformed markers recovered",
		zap.String("path", path),
		zap.Int("count", count),
	)
}

// IncompleteToolAtEnd logs a tool use still partial when the stream ended.
// This is routine mid-stream but unexpected at end of stream.
func (l *Logger) IncompleteToolAtEnd(name assistant.ToolName) {
	l.zap.Warn("tool use incomplete at stream end",
		zap.String("tool", string(name)),
	)
}
