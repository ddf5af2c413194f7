package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"

	"forsign-esign/internal/domain/apierror"
)

const maxSnippetLength = 800

var statusDescriptions = map[int]string{
	http.StatusBadRequest:          "Bad request. The request was invalid or cannot be processed.",
	http.StatusUnauthorized:        "Authentication failed. Please check your API key.",
	http.StatusPaymentRequired:     "Insufficient credits. Your account does not have enough credits to perform this operation.",
	http.StatusForbidden:           "You don't have permission to perform this operation.",
	http.StatusNotFound:            "Resource not found.",
	http.StatusUnprocessableEntity: "Validation error. The request contains invalid data.",
	http.StatusTooManyRequests:     "Too many requests. You have exceeded the rate limit.",
	http.StatusInternalServerError: "An internal server error occurred.",
}

func describeStatus(status int) string {
	if d, ok := statusDescriptions[status]; ok {
		return d
	}
	return fmt.Sprintf("Error processing request: HTTP %d", status)
}

// classify turns a response with status >= 400 into an APIError, or a
// ValidationError for a 422 carrying a message list.
func classify(status int, body []byte, correlationID string) error {
	messages := extractMessages(body)
	snippet := bodySnippet(body)

	message := describeStatus(status)
	if len(messages) > 0 {
		message += " Details: " + joinMessages(messages)
	} else if snippet != "" {
		message += " Body: " + snippet
	}

	apiErr := apierror.APIError{
		StatusCode:    status,
		Message:       message,
		Messages:      messages,
		Snippet:       snippet,
		CorrelationID: correlationID,
	}
	if status == http.StatusUnprocessableEntity && messages != nil {
		return &apierror.ValidationError{APIError: apiErr}
	}
	return &apiErr
}

// extractMessages returns the first non-null of messages, errors and error.
// A string becomes a one element list; an object keyed by field becomes
// {"key", "value"} entries sorted by field.
func extractMessages(body []byte) []any {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}

	for _, key := range []string{"messages", "errors", "error"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var candidate any
		if err := json.Unmarshal(raw, &candidate); err != nil || candidate == nil {
			continue
		}
		switch v := candidate.(type) {
		case []any:
			return v
		case map[string]any:
			return fieldEntries(v)
		default:
			return []any{v}
		}
	}
	return nil
}

func fieldEntries(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		value := fields[k]
		if list, ok := value.([]any); ok {
			parts := make([]string, 0, len(list))
			for _, item := range list {
				parts = append(parts, fmt.Sprint(item))
			}
			value = strings.Join(parts, ", ")
		}
		out = append(out, map[string]any{"key": k, "value": value})
	}
	return out
}

func joinMessages(messages []any) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		switch v := m.(type) {
		case string:
			parts = append(parts, v)
		case map[string]any:
			key, hasKey := v["key"]
			value, hasValue := v["value"]
			if hasKey && hasValue {
				parts = append(parts, fmt.Sprintf("%v: %v", key, value))
				continue
			}
			raw, _ := json.Marshal(v)
			parts = append(parts, string(raw))
		default:
			raw, _ := json.Marshal(v)
			parts = append(parts, string(raw))
		}
	}
	return strings.Join(parts, " | ")
}

// bodySnippet trims body and cuts it to maxSnippetLength characters,
// ending with an ellipsis when cut.
func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if utf8.RuneCountInString(s) <= maxSnippetLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxSnippetLength-1]) + "…"
}
