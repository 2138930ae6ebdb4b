package graphql

import (
	"time"

	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xzzpig/graph-gateway/internal/core/logger"
)

// OperationLogger logs one line per executed GraphQL operation.
type OperationLogger struct {
	Logger *zap.Logger
}

// NewOperationLogger creates a new operation logger.
func NewOperationLogger() *OperationLogger {
	return &OperationLogger{
		Logger: logger.Named("api.graphql"),
	}
}

// Log records the operation outcome. Query, variables and data are only
// logged at debug level.
func (o *OperationLogger) Log(req *Request, resp *graphql.Response, latency time.Duration) {
	if resp == nil {
		return
	}

	fields := []zap.Field{
		zap.String("operationName", req.OperationName),
		zap.Duration("latency", latency),
	}

	debug := o.Logger.Core().Enabled(zapcore.DebugLevel)
	if debug {
		fields = append(fields,
			zap.String("rawQuery", req.Query),
			zap.Any("variables", req.Variables),
		)
	}

	// PersistedQueryNotFound is part of the APQ handshake, not a failure.
	var errorMsgs []string
	for _, err := range resp.Errors {
		if err.Message == persistedQueryNotFound {
			continue
		}
		errorMsgs = append(errorMsgs, err.Message)
	}

	if len(errorMsgs) > 0 {
		fields = append(fields, zap.Strings("errors", errorMsgs))
		o.Logger.Error("GraphQL operation completed with errors", fields...)
		return
	}

	if debug {
		fields = append(fields, zap.ByteString("data", resp.Data))
	}
	o.Logger.Info("GraphQL operation completed", fields...)
}
