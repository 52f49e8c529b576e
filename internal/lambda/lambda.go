// Package lambda serves the evaluate endpoint behind AWS API Gateway.
package lambda

import (
	"context"
	"encoding/base64"
	"maps"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/promptcheck/internal/api"
	"github.com/abhisek/promptcheck/internal/llm"
)

// Adapter converts API Gateway proxy events into api.Handler calls.
type Adapter struct {
	handler *api.Handler
	logger  zerolog.Logger
}

// NewAdapter creates an Adapter around handler.
func NewAdapter(handler *api.Handler, logger zerolog.Logger) *Adapter {
	return &Adapter{handler: handler, logger: logger}
}

// Handle is the Lambda entry point. Failures are expressed as HTTP
// responses; the returned error is always nil so API Gateway never turns
// them into its own 502.
func (a *Adapter) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx = llm.WithRequestID(ctx, requestID(ctx, req))

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			a.logger.Warn().Err(err).Str("request_id", llm.RequestIDFrom(ctx)).Msg("decode base64 body")
			decoded = nil
		}
		body = decoded
	}

	method := strings.ToUpper(req.HTTPMethod)
	if method == "" {
		method = strings.ToUpper(req.RequestContext.HTTPMethod)
	}

	resp := a.handler.Handle(ctx, method, body)

	headers := maps.Clone(api.Headers)
	headers["X-Request-ID"] = llm.RequestIDFrom(ctx)

	return events.APIGatewayProxyResponse{
		StatusCode: resp.Status,
		Headers:    headers,
		Body:       string(resp.Body),
	}, nil
}

func requestID(ctx context.Context, req events.APIGatewayProxyRequest) string {
	for k, v := range req.Headers {
		if strings.EqualFold(k, "X-Request-ID") && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if req.RequestContext.RequestID != "" {
		return req.RequestContext.RequestID
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
