package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"forsign-esign/internal/domain/entity"
)

const (
	maxBodyLogLength  = 500   // Maximum characters to log for body
	maxAuditBodyBytes = 10000 // Maximum characters stored per audited body
	redacted          = "[REDACTED]"
)

var (
	base64Pattern = regexp.MustCompile(`"([A-Za-z0-9+/=]{100,})"`)

	sensitiveHeaders = map[string]struct{}{
		apiKeyHeader:    {},
		"Authorization": {},
	}
)

// truncateString truncates a string if it exceeds maxLength
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + fmt.Sprintf("... [truncated, total %d chars]", len(s))
}

// truncateBase64InJSON shortens base64-like string values in a JSON document.
func truncateBase64InJSON(jsonStr string, maxLength int) string {
	return base64Pattern.ReplaceAllStringFunc(jsonStr, func(match string) string {
		content := match[1 : len(match)-1]
		if len(content) > maxLength {
			return fmt.Sprintf(`"%s... [base64 truncated, total %d chars]"`, content[:maxLength], len(content))
		}
		return match
	})
}

// formatHeadersForLog renders one "Header Key=Value" line per value, sorted
// by key, with credentials redacted.
func formatHeadersForLog(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		for _, value := range headers[key] {
			if _, ok := sensitiveHeaders[http.CanonicalHeaderKey(key)]; ok {
				value = redacted
			} else if len(value) > 100 {
				value = value[:100] + "..."
			}
			sb.WriteString(fmt.Sprintf("Header %s=%s\n", key, value))
		}
	}
	return sb.String()
}

// callRecord is everything known about one finished call.
type callRecord struct {
	method        string
	url           string
	correlationID string
	reqHeaders    http.Header
	reqBody       string // JSON body or multipart summary
	statusCode    int
	respBody      []byte
	duration      time.Duration
	err           error
}

// logFailure writes a failed call as one error entry.
func (c *Client) logFailure(rec *callRecord) {
	var logBuilder strings.Builder

	logBuilder.WriteString("\n>>> [FORSIGN-ERROR]\n")
	logBuilder.WriteString(fmt.Sprintf("Method: %s\n", rec.method))
	logBuilder.WriteString(fmt.Sprintf("URL: %s\n", rec.url))
	logBuilder.WriteString(fmt.Sprintf("Correlation-Id: %s\n", rec.correlationID))
	logBuilder.WriteString(fmt.Sprintf("Status: %d\n", rec.statusCode))
	logBuilder.WriteString(fmt.Sprintf("Duration: %s\n", rec.duration))
	logBuilder.WriteString(formatHeadersForLog(rec.reqHeaders))

	if rec.reqBody != "" {
		bodyStr := truncateBase64InJSON(rec.reqBody, 100)
		bodyStr = truncateString(bodyStr, maxBodyLogLength)
		logBuilder.WriteString(fmt.Sprintf("REQUEST BODY: %s\n", bodyStr))
	}
	if len(rec.respBody) > 0 {
		logBuilder.WriteString(fmt.Sprintf("RESPONSE BODY: %s\n", truncateString(string(rec.respBody), maxBodyLogLength)))
	}

	fields := []zap.Field{
		zap.String("method", rec.method),
		zap.String("url", rec.url),
		zap.String("correlation_id", rec.correlationID),
		zap.Int("status_code", rec.statusCode),
	}
	if rec.err != nil {
		fields = append(fields, zap.Error(rec.err))
	}
	c.logger.Error(logBuilder.String(), fields...)
}

// saveAPILog hands the call to the audit saver without blocking the caller.
func (c *Client) saveAPILog(rec *callRecord) {
	if c.apiLogSaver == nil {
		return
	}

	reqBodyStr := ""
	if rec.reqBody != "" {
		reqBodyStr = truncateBase64InJSON(rec.reqBody, 100)
		if len(reqBodyStr) > maxAuditBodyBytes {
			reqBodyStr = reqBodyStr[:maxAuditBodyBytes] + "... [truncated]"
		}
	}

	respBodyStr := truncateBase64InJSON(string(rec.respBody), 100)
	if len(respBodyStr) > maxAuditBodyBytes {
		respBodyStr = respBodyStr[:maxAuditBodyBytes] + "... [truncated]"
	}

	apiLog := &entity.APILog{
		CorrelationID: rec.correlationID,
		Endpoint:      rec.url,
		Method:        rec.method,
		RequestBody:   reqBodyStr,
		ResponseBody:  respBodyStr,
		StatusCode:    rec.statusCode,
		Duration:      rec.duration.Milliseconds(),
		CreatedAt:     time.Now(),
	}
	if rec.err != nil {
		apiLog.Error = rec.err.Error()
	}

	go func() {
		if err := c.apiLogSaver.Save(context.Background(), apiLog); err != nil {
			c.logger.Warn("Failed to save API log to database",
				zap.String("endpoint", apiLog.Endpoint),
				zap.String("correlation_id", apiLog.CorrelationID),
				zap.Error(err),
			)
		}
	}()
}
