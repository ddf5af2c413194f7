package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
)

const (
	DefaultBaseURL        = "https://api.forsign.digital"
	DefaultTimeout        = 30 * time.Second
	DefaultConnectTimeout = 10 * time.Second
	DefaultUserAgent      = "ForSignGoClient/2.0"

	correlationHeader = "X-Correlation-Id"
	idempotencyHeader = "Idempotency-Key"
	jsonContentType   = "application/json"
)

// Options configures a Client. Zero values take the defaults above.
type Options struct {
	BaseURL        string
	Credential     Credential
	Timeout        time.Duration
	ConnectTimeout time.Duration
	UserAgent      string
	HTTPClient     *http.Client // Overrides Timeout and ConnectTimeout
}

// RequestContext carries per-call settings.
type RequestContext struct {
	CorrelationID  string // Falls back to Headers, entity.CorrelationIDFrom(ctx), then a new UUID
	IdempotencyKey string
	Headers        http.Header // Merged after the standard headers
	Query          url.Values
}

// WithHeader returns a copy of r with key set to value.
func (r *RequestContext) WithHeader(key, value string) *RequestContext {
	out := RequestContext{}
	if r != nil {
		out = *r
	}
	if out.Headers == nil {
		out.Headers = http.Header{}
	} else {
		out.Headers = out.Headers.Clone()
	}
	out.Headers.Set(key, value)
	return &out
}

// EnsureCorrelationID returns ctx tagged with the correlation id that calls
// made with it will send, generating one when ctx carries none.
func EnsureCorrelationID(ctx context.Context) (context.Context, string) {
	if id := entity.CorrelationIDFrom(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return entity.WithCorrelationID(ctx, id), id
}

// FileUpload represents a file to be uploaded
type FileUpload struct {
	Filename string
	Content  []byte
}

// RawResponse is a successful response returned without JSON decoding.
type RawResponse struct {
	StatusCode    int
	Header        http.Header
	Body          []byte
	CorrelationID string
}

// APILogSaver interface for saving API logs
type APILogSaver interface {
	Save(ctx context.Context, log *entity.APILog) error
}

type HTTPClient interface {
	Get(ctx context.Context, reqCtx *RequestContext, path string, result any) error
	Post(ctx context.Context, reqCtx *RequestContext, path string, body any, result any) error
	Patch(ctx context.Context, reqCtx *RequestContext, path string, body any, result any) error
	// PostMultipart sends fields and files as multipart/form-data.
	PostMultipart(ctx context.Context, reqCtx *RequestContext, path string, fields map[string]string, files map[string]FileUpload, result any) error
	// Download performs a GET and returns the body undecoded.
	Download(ctx context.Context, reqCtx *RequestContext, path string) (*RawResponse, error)
	SetCredential(cred Credential)
}

// Client executes calls against the ForSign API. It is safe for concurrent use.
type Client struct {
	client      *http.Client
	baseURL     string
	userAgent   string
	apiLogSaver APILogSaver
	logger      *zap.Logger

	mu         sync.RWMutex
	credential Credential
}

// NewClient builds a client from opts. apiLogSaver and logger may be nil.
func NewClient(opts Options, apiLogSaver APILogSaver, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   opts.Timeout,
			Transport: newTransport(opts.ConnectTimeout),
		}
	}

	return &Client{
		client:      httpClient,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		userAgent:   opts.UserAgent,
		apiLogSaver: apiLogSaver,
		logger:      logger,
		credential:  opts.Credential,
	}
}

func newTransport(connectTimeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	t.TLSHandshakeTimeout = connectTimeout
	return t
}

// SetCredential replaces the credential used by subsequent calls.
func (c *Client) SetCredential(cred Credential) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credential = cred
}

func (c *Client) currentCredential() Credential {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credential
}

func (c *Client) Get(ctx context.Context, reqCtx *RequestContext, path string, result any) error {
	return c.call(ctx, reqCtx, http.MethodGet, path, &payload{contentType: jsonContentType}, result)
}

func (c *Client) Post(ctx context.Context, reqCtx *RequestContext, path string, body any, result any) error {
	p, err := jsonPayload(body)
	if err != nil {
		return err
	}
	return c.call(ctx, reqCtx, http.MethodPost, path, p, result)
}

func (c *Client) Patch(ctx context.Context, reqCtx *RequestContext, path string, body any, result any) error {
	p, err := jsonPayload(body)
	if err != nil {
		return err
	}
	return c.call(ctx, reqCtx, http.MethodPatch, path, p, result)
}

func (c *Client) PostMultipart(ctx context.Context, reqCtx *RequestContext, path string, fields map[string]string, files map[string]FileUpload, result any) error {
	p, err := multipartPayload(fields, files)
	if err != nil {
		return err
	}
	return c.call(ctx, reqCtx, http.MethodPost, path, p, result)
}

func (c *Client) Download(ctx context.Context, reqCtx *RequestContext, path string) (*RawResponse, error) {
	raw, rec, err := c.do(ctx, reqCtx, http.MethodGet, path, &payload{contentType: jsonContentType})
	if err != nil {
		return nil, err
	}
	c.record(rec)
	return raw, nil
}

// payload is an encoded request body. logBody is what logs and the audit
// trail see; for multipart it is a summary, never the file content.
type payload struct {
	body        []byte
	contentType string
	logBody     string
}

func jsonPayload(body any) (*payload, error) {
	p := &payload{contentType: jsonContentType}
	if body == nil {
		return p, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	p.body = data
	p.logBody = string(data)
	return p, nil
}

func multipartPayload(fields map[string]string, files map[string]FileUpload) (*payload, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fieldKeys := sortedKeys(fields)
	for _, key := range fieldKeys {
		if err := writer.WriteField(key, fields[key]); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	fileKeys := sortedKeys(files)
	fileSummary := make([]string, 0, len(files))
	for _, fieldName := range fileKeys {
		file := files[fieldName]
		part, err := writer.CreateFormFile(fieldName, file.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file %s: %w", fieldName, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("failed to write file content %s: %w", fieldName, err)
		}
		fileSummary = append(fileSummary, fmt.Sprintf("%s(%s, %d bytes)", fieldName, file.Filename, len(file.Content)))
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return &payload{
		body:        buf.Bytes(),
		contentType: writer.FormDataContentType(),
		logBody: fmt.Sprintf("[multipart] {fields: [%s], files: [%s]}",
			strings.Join(fieldKeys, ", "), strings.Join(fileSummary, ", ")),
	}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Client) call(ctx context.Context, reqCtx *RequestContext, method, path string, p *payload, result any) error {
	raw, rec, err := c.do(ctx, reqCtx, method, path, p)
	if err != nil {
		return err
	}
	defer c.record(rec)

	if len(bytes.TrimSpace(raw.Body)) == 0 {
		return nil
	}
	if result == nil {
		result = new(json.RawMessage)
	}
	if err := json.Unmarshal(raw.Body, result); err != nil {
		apiErr := &apierror.APIError{
			StatusCode:    raw.StatusCode,
			Message:       "Failed to parse response: " + err.Error(),
			Snippet:       bodySnippet(raw.Body),
			CorrelationID: raw.CorrelationID,
			Err:           err,
		}
		rec.err = apiErr
		return apiErr
	}
	return nil
}

// do executes one call. Failures are logged and audited before returning;
// on success the caller finishes the record.
func (c *Client) do(ctx context.Context, reqCtx *RequestContext, method, path string, p *payload) (*RawResponse, *callRecord, error) {
	cred := c.currentCredential()
	if cred == nil {
		return nil, nil, apierror.ErrMissingCredential
	}
	if reqCtx == nil {
		reqCtx = &RequestContext{}
	}

	fullURL := c.baseURL + path
	if len(reqCtx.Query) > 0 {
		fullURL += "?" + reqCtx.Query.Encode()
	}

	var bodyReader io.Reader
	if p.body != nil {
		bodyReader = bytes.NewReader(p.body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	correlationID := reqCtx.CorrelationID
	if correlationID == "" {
		correlationID = reqCtx.Headers.Get(correlationHeader)
	}
	if correlationID == "" {
		correlationID = entity.CorrelationIDFrom(ctx)
	}
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	req.Header.Set("Accept", jsonContentType)
	req.Header.Set("User-Agent", c.userAgent)
	for key, values := range reqCtx.Headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", p.contentType)
	req.Header.Set(correlationHeader, correlationID)
	if reqCtx.IdempotencyKey != "" {
		req.Header.Set(idempotencyHeader, reqCtx.IdempotencyKey)
	}
	if err := cred.Apply(req.Header); err != nil {
		return nil, nil, err
	}

	rec := &callRecord{
		method:        method,
		url:           fullURL,
		correlationID: correlationID,
		reqHeaders:    req.Header.Clone(),
		reqBody:       p.logBody,
	}

	startTime := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, c.transportFailure(rec, startTime, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, c.transportFailure(rec, startTime, fmt.Errorf("failed to read response body: %w", err))
	}

	rec.duration = time.Since(startTime)
	rec.statusCode = resp.StatusCode
	rec.respBody = respBody

	if resp.StatusCode >= http.StatusBadRequest {
		rec.err = classify(resp.StatusCode, respBody, correlationID)
		c.record(rec)
		return nil, nil, rec.err
	}

	return &RawResponse{
		StatusCode:    resp.StatusCode,
		Header:        resp.Header,
		Body:          respBody,
		CorrelationID: correlationID,
	}, rec, nil
}

func (c *Client) transportFailure(rec *callRecord, startTime time.Time, cause error) error {
	rec.duration = time.Since(startTime)
	apiErr := &apierror.APIError{
		Message:       "API request failed: " + cause.Error(),
		CorrelationID: rec.correlationID,
		Err:           cause,
	}
	rec.err = apiErr
	c.record(rec)
	return apiErr
}

// record logs failed calls and audits every call.
func (c *Client) record(rec *callRecord) {
	if rec.err != nil {
		c.logFailure(rec)
	}
	c.saveAPILog(rec)
}
