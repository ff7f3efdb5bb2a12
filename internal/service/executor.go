package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tsma-calendar-client/internal/transport"
	appErrors "github.com/noah-isme/tsma-calendar-client/pkg/errors"
	"github.com/noah-isme/tsma-calendar-client/pkg/middleware/requestid"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Request describes one API call. Token is the session token captured when the
// call was dispatched; it is only sent when RequiresAuth is set.
type Request struct {
	Method       string
	Path         string
	Query        url.Values
	JSONBody     interface{}
	FormBody     url.Values
	RequiresAuth bool
	Token        string
	// Label names the endpoint in metrics and logs; defaults to Path.
	Label string
}

// Executor is the single place HTTP calls go through. It builds the request,
// attaches auth, performs one attempt and classifies every failure.
type Executor struct {
	baseURL   string
	doer      transport.Doer
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewExecutor constructs an Executor bound to the base URL and transport.
func NewExecutor(baseURL string, doer transport.Doer, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if doer == nil {
		doer = transport.NewHTTP(0)
	}
	return &Executor{baseURL: baseURL, doer: doer, validator: validate, metrics: metrics, logger: logger}
}

// Execute performs req and decodes the JSON response into T.
func Execute[T any](ctx context.Context, e *Executor, req Request) (T, error) {
	var out T
	body, err := e.do(ctx, req)
	if err != nil {
		return out, err
	}
	if err := e.decode(body, &out); err != nil {
		e.recordFailure(req, err)
		return out, err
	}
	return out, nil
}

// ExecuteVoid performs req and discards any response body.
func ExecuteVoid(ctx context.Context, e *Executor, req Request) error {
	_, err := e.do(ctx, req)
	return err
}

func (e *Executor) do(ctx context.Context, req Request) ([]byte, error) {
	if req.RequiresAuth && req.Token == "" {
		err := appErrors.Clone(appErrors.ErrNotAuthenticated, "")
		e.recordFailure(req, err)
		return nil, err
	}

	httpReq, err := e.build(ctx, req)
	if err != nil {
		e.recordFailure(req, err)
		return nil, err
	}

	start := time.Now()
	res, err := e.doer.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		e.observe(req, 0, duration)
		e.logger.Debug("api request failed", zap.String("method", httpReq.Method), zap.String("path", e.label(req)), zap.Error(err))
		netErr := appErrors.NetworkError(err)
		e.recordFailure(req, netErr)
		return nil, netErr
	}
	defer res.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(res.Body)
	e.observe(req, res.StatusCode, time.Since(start))
	if err != nil {
		netErr := appErrors.NetworkError(fmt.Errorf("read response body: %w", err))
		e.recordFailure(req, netErr)
		return nil, netErr
	}

	e.logger.Debug("api request",
		zap.String("method", httpReq.Method),
		zap.String("path", e.label(req)),
		zap.Int("status", res.StatusCode),
		zap.Duration("latency", duration),
		zap.String("request_id", httpReq.Header.Get(requestid.Header)),
	)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		srvErr := appErrors.ServerError(res.StatusCode, serverMessage(body))
		e.recordFailure(req, srvErr)
		return nil, srvErr
	}

	return body, nil
}

func (e *Executor) build(ctx context.Context, req Request) (*http.Request, error) {
	base, err := url.Parse(e.baseURL)
	if err != nil {
		return nil, appErrors.InvalidURL(err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, appErrors.InvalidURL(fmt.Errorf("base url %q must be absolute", e.baseURL))
	}

	target := base.JoinPath(req.Path)
	if len(req.Query) > 0 {
		query := target.Query()
		for key, values := range req.Query {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		target.RawQuery = query.Encode()
	}

	var (
		body        io.Reader
		contentType = contentTypeJSON
	)
	switch {
	case req.JSONBody != nil && req.FormBody != nil:
		return nil, appErrors.InvalidURL(errors.New("request cannot carry both json and form bodies"))
	case req.JSONBody != nil:
		payload, err := json.Marshal(req.JSONBody)
		if err != nil {
			return nil, appErrors.InvalidURL(fmt.Errorf("encode request body: %w", err))
		}
		body = bytes.NewReader(payload)
	case req.FormBody != nil:
		body = strings.NewReader(req.FormBody.Encode())
		contentType = contentTypeForm
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, appErrors.InvalidURL(err)
	}
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set(requestid.Header, requestid.FromContext(ctx))
	if req.RequiresAuth {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	return httpReq, nil
}

// decode translates snake_case keys, unmarshals into out and validates the
// result. Any failure is a decoding error.
func (e *Executor) decode(body []byte, out interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return appErrors.DecodingError(errors.New("empty response body"))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return appErrors.DecodingError(err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return appErrors.DecodingError(errors.New("unexpected data after response body"))
	}

	normalized, err := json.Marshal(camelizeKeys(raw))
	if err != nil {
		return appErrors.DecodingError(err)
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return appErrors.DecodingError(err)
	}

	if err := e.validate(out); err != nil {
		return appErrors.DecodingError(err)
	}
	return nil
}

func (e *Executor) validate(out interface{}) error {
	value := reflect.Indirect(reflect.ValueOf(out))
	switch value.Kind() {
	case reflect.Struct:
		return e.validator.Struct(value.Interface())
	case reflect.Slice, reflect.Array:
		if value.Len() == 0 {
			return nil
		}
		elem := value.Type().Elem()
		for elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			return nil
		}
		return e.validator.Var(value.Interface(), "dive")
	}
	return nil
}

func (e *Executor) label(req Request) string {
	if req.Label != "" {
		return req.Label
	}
	return req.Path
}

func (e *Executor) observe(req Request, status int, duration time.Duration) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	e.metrics.ObserveHTTPRequest(method, e.label(req), status, duration)
}

func (e *Executor) recordFailure(req Request, err error) {
	e.metrics.RecordFailure(e.label(req), appErrors.FromError(err).Code)
}

// serverMessage extracts the message of an error envelope, if the body has one.
func serverMessage(body []byte) string {
	var envelope struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return ""
	}
	return envelope.Error.Message
}

// camelizeKeys rewrites object keys from snake_case to camelCase at every depth.
// Keys without underscores are kept as they are.
func camelizeKeys(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for key, child := range val {
			out[snakeToCamel(key)] = camelizeKeys(child)
		}
		return out
	case []interface{}:
		for i, child := range val {
			val[i] = camelizeKeys(child)
		}
		return val
	default:
		return v
	}
}

func snakeToCamel(key string) string {
	if !strings.Contains(key, "_") {
		return key
	}
	parts := strings.Split(key, "_")
	var b strings.Builder
	b.Grow(len(key))
	first := true
	for _, part := range parts {
		if part == "" {
			continue
		}
		if first {
			b.WriteString(part)
			first = false
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	if b.Len() == 0 {
		return key
	}
	return b.String()
}
