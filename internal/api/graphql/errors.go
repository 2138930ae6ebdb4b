package graphql

import (
	"context"
	"errors"
	"runtime/debug"

	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"go.uber.org/zap"

	"github.com/xzzpig/graph-gateway/internal/aggregate"
	"github.com/xzzpig/graph-gateway/internal/core/errs"
	"github.com/xzzpig/graph-gateway/internal/core/logger"
	"github.com/xzzpig/graph-gateway/internal/i18n"
	"github.com/xzzpig/graph-gateway/internal/loader"
	"github.com/xzzpig/graph-gateway/internal/node"
	"github.com/xzzpig/graph-gateway/internal/paging"
)

// Error codes placed in the "code" extension of every presented error.
const (
	CodeInvalidCursor          = "INVALID_CURSOR"
	CodeMalformedGlobalID      = "MALFORMED_GLOBAL_ID"
	CodeMissingBackendID       = "MISSING_BACKEND_ID"
	CodeAggregationFailed      = "AGGREGATION_FAILED"
	CodeNotFound               = "NOT_FOUND"
	CodeBackendUnavailable     = "BACKEND_UNAVAILABLE"
	CodeBadUserInput           = "BAD_USER_INPUT"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeInternal               = "INTERNAL"
	CodeBadRequest             = "BAD_REQUEST"
	CodePersistedQueryNotFound = "PERSISTED_QUERY_NOT_FOUND"
)

// errorsLog returns a named logger for the graphql errors package.
func errorsLog() *zap.Logger {
	return logger.Named("api.graphql.errors")
}

// classified is the client-facing form of a resolver error.
type classified struct {
	code  string
	msgID string
	data  map[string]interface{}
}

func classify(err error) classified {
	var httpErr *loader.HTTPError

	// Errors that already carry a message and code keep them.
	if i18nErr, ok := i18n.IsI18nError(err); ok && !errors.Is(err, aggregate.ErrAggregation) {
		return classified{code: i18nErr.Code, msgID: i18nErr.MsgID, data: i18nErr.Data}
	}

	switch {
	case errors.Is(err, paging.ErrInvalidCursor):
		return classified{code: CodeInvalidCursor, msgID: i18n.ErrInvalidCursor}
	case errors.Is(err, node.ErrMalformedGlobalID):
		return classified{code: CodeMalformedGlobalID, msgID: i18n.ErrMalformedGlobalID}
	case errors.Is(err, node.ErrMissingBackendID):
		return classified{code: CodeMissingBackendID, msgID: i18n.ErrMissingBackendID}
	case errors.Is(err, aggregate.ErrAggregation):
		return classified{code: CodeAggregationFailed, msgID: i18n.ErrAggregationFailed}
	case errors.Is(err, errs.ErrNotFound):
		return classified{code: CodeNotFound, msgID: i18n.ErrNotFound}
	case errors.Is(err, errs.ErrUnauthorized):
		return classified{code: CodeUnauthorized, msgID: i18n.ErrUnauthorized}
	case errors.As(err, &httpErr):
		return classified{
			code:  CodeBackendUnavailable,
			msgID: i18n.ErrBackendStatus,
			data:  map[string]interface{}{"Backend": httpErr.Backend, "Status": httpErr.StatusCode},
		}
	case errors.Is(err, errs.ErrUnavailable):
		return classified{code: CodeBackendUnavailable, msgID: i18n.ErrBackendUnavailable}
	case errors.Is(err, errs.ErrInvalidInput):
		return classified{code: CodeBadUserInput, msgID: i18n.ErrInvalidInput}
	default:
		return classified{code: CodeInternal, msgID: i18n.ErrGeneric}
	}
}

// PresentErrors rewrites execution errors in place: resolver errors get a
// code extension and a message translated for the request locale, panics
// are masked as INTERNAL. Query and validation errors pass through.
func PresentErrors(ctx context.Context, errList []*gqlerrors.QueryError) []*gqlerrors.QueryError {
	for _, qe := range errList {
		if qe == nil {
			continue
		}
		switch {
		case qe.ResolverError != nil:
			c := classify(qe.ResolverError)
			if c.code == CodeInternal {
				errorsLog().Error("GraphQL resolver failed",
					zap.Any("path", qe.Path),
					zap.Error(qe.ResolverError),
				)
			} else {
				errorsLog().Debug("GraphQL resolver error",
					zap.String("code", c.code),
					zap.Any("path", qe.Path),
					zap.Error(qe.ResolverError),
				)
			}
			qe.Message = i18n.CtxWithData(ctx, c.msgID, c.data)
			setCode(qe, c.code)
		case len(qe.Path) > 0:
			// A path without a resolver error is a recovered panic.
			qe.Message = i18n.Ctx(ctx, i18n.ErrGeneric)
			setCode(qe, CodeInternal)
		}
	}
	return errList
}

func setCode(qe *gqlerrors.QueryError, code string) {
	if qe.Extensions == nil {
		qe.Extensions = make(map[string]interface{})
	}
	qe.Extensions["code"] = code
}

// requestError builds an error for a request that never reached execution.
func requestError(ctx context.Context, msgID, code string) *gqlerrors.QueryError {
	qe := gqlerrors.Errorf("%s", i18n.Ctx(ctx, msgID))
	setCode(qe, code)
	return qe
}

// PanicLogger logs resolver panics with their stack trace.
// graphql-go recovers the panic itself and reports it as an error on the field.
type PanicLogger struct{}

// LogPanic implements log.Logger.
func (PanicLogger) LogPanic(_ context.Context, value interface{}) {
	errorsLog().Error("GraphQL resolver panic recovered",
		zap.Any("panic", value),
		zap.String("stack", string(debug.Stack())),
	)
}
