// Package graphql serves the gateway schema over HTTP.
package graphql

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"

	"github.com/xzzpig/graph-gateway/internal/i18n"
)

const persistedQueryNotFound = "PersistedQueryNotFound"

// DefaultPersistedQueryCacheSize bounds the automatic persisted query cache.
const DefaultPersistedQueryCacheSize = 100

// Request is a GraphQL request as sent over GET or POST.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
	Extensions    struct {
		PersistedQuery *PersistedQuery `json:"persistedQuery"`
	} `json:"extensions"`
}

// PersistedQuery is the automatic persisted query extension.
type PersistedQuery struct {
	Version    int    `json:"version"`
	Sha256Hash string `json:"sha256Hash"`
}

// Handler executes GraphQL requests against a parsed schema.
type Handler struct {
	schema    *graphql.Schema
	persisted *lru.LRU[string]
	log       *OperationLogger
}

// NewHandler creates a new GraphQL handler with automatic persisted queries enabled.
func NewHandler(schema *graphql.Schema) *Handler {
	return &Handler{
		schema:    schema,
		persisted: lru.New[string](DefaultPersistedQueryCacheSize),
		log:       NewOperationLogger(),
	}
}

// ServeGin implements gin.HandlerFunc for GET and POST requests.
func (h *Handler) ServeGin(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := decodeRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, &graphql.Response{
			Errors: []*gqlerrors.QueryError{requestError(ctx, i18n.ErrInvalidRequestBody, CodeBadRequest)},
		})
		return
	}

	start := time.Now()
	resp := h.Execute(ctx, req)
	h.log.Log(req, resp, time.Since(start))

	// Requests that never reached execution carry no data.
	status := http.StatusOK
	if resp.Data == nil && len(resp.Errors) > 0 && resp.Errors[0].Message != persistedQueryNotFound {
		status = http.StatusBadRequest
	}
	c.JSON(status, resp)
}

// Execute resolves persisted queries, runs the operation and presents its errors.
func (h *Handler) Execute(ctx context.Context, req *Request) *graphql.Response {
	if qe := h.resolvePersisted(ctx, req); qe != nil {
		return &graphql.Response{Errors: []*gqlerrors.QueryError{qe}}
	}
	if req.Query == "" {
		return &graphql.Response{
			Errors: []*gqlerrors.QueryError{requestError(ctx, i18n.ErrMissingQuery, CodeBadRequest)},
		}
	}

	resp := h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	resp.Errors = PresentErrors(ctx, resp.Errors)
	return resp
}

// resolvePersisted fills in or registers the query text of an APQ request.
func (h *Handler) resolvePersisted(ctx context.Context, req *Request) *gqlerrors.QueryError {
	pq := req.Extensions.PersistedQuery
	if pq == nil {
		return nil
	}
	if pq.Version != 1 {
		qe := gqlerrors.Errorf("unsupported persisted query version")
		setCode(qe, CodeBadRequest)
		return qe
	}

	if req.Query == "" {
		query, ok := h.persisted.Get(ctx, pq.Sha256Hash)
		if !ok {
			qe := gqlerrors.Errorf(persistedQueryNotFound)
			setCode(qe, CodePersistedQueryNotFound)
			return qe
		}
		req.Query = query
		return nil
	}

	sum := sha256.Sum256([]byte(req.Query))
	if hex.EncodeToString(sum[:]) != pq.Sha256Hash {
		qe := gqlerrors.Errorf("provided sha does not match query")
		setCode(qe, CodeBadRequest)
		return qe
	}
	h.persisted.Add(ctx, pq.Sha256Hash, req.Query)
	return nil
}

func decodeRequest(c *gin.Context) (*Request, error) {
	var req Request
	if c.Request.Method == http.MethodPost {
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	req.Query = c.Query("query")
	req.OperationName = c.Query("operationName")
	if v := c.Query("variables"); v != "" {
		if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
			return nil, err
		}
	}
	if ext := c.Query("extensions"); ext != "" {
		if err := json.Unmarshal([]byte(ext), &req.Extensions); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// PlaygroundHandler returns a handler for GraphiQL playground.
func PlaygroundHandler(endpoint string) gin.HandlerFunc {
	h := playground.Handler("GraphQL Playground", endpoint)
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
