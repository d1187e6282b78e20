package tools

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/praxislabs/praxis/pkg/tool"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPToolOptions configures the HTTP request tool.
type HTTPToolOptions struct {
	// Client defaults to one with a 30 second timeout.
	Client *http.Client
	// MaxResponseBytes caps how much of a response body is returned to the
	// model. Defaults to 64 KiB.
	MaxResponseBytes int64
}

var httpAllowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// NewHTTPRequest returns the HTTP client tool.
func NewHTTPRequest(opts HTTPToolOptions) tool.Tool {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	maxBody := opts.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = 64 << 10
	}

	return tool.New(tool.Descriptor{
		Name:        "http_request",
		Description: "Sends an HTTP request to a URL. Supports GET, POST, PUT, DELETE, and PATCH with optional headers and a JSON body. Use it for API calls and fetching data.",
		Category:    tool.CategorySearch,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"url": {
				Type:        "string",
				Description: "The URL to request",
			},
			"method": {
				Type:        "string",
				Description: "HTTP method",
				Enum:        []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
				Default:     "GET",
			},
			"headers": {
				Type:        "object",
				Description: "Request headers (optional)",
			},
			"body": {
				Type:        "object",
				Description: "JSON request body (optional)",
			},
		}, "url"),
	}, func(ctx context.Context, args map[string]any) tool.Result {
		rawURL := strArg(args, "url", "")
		if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
			return tool.Fail("url must start with http:// or https://")
		}
		method := strings.ToUpper(strArg(args, "method", http.MethodGet))
		if !httpAllowedMethods[method] {
			return tool.Fail("unsupported HTTP method %q", method)
		}

		var reqBody io.Reader
		if body := mapArg(args, "body"); len(body) > 0 {
			encoded, err := json.Marshal(body)
			if err != nil {
				return tool.Fail("cannot encode body: %v", err)
			}
			reqBody = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
		if err != nil {
			return tool.Fail("invalid request: %v", err)
		}
		if reqBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range mapArg(args, "headers") {
			if s, ok := v.(string); ok {
				req.Header.Set(k, s)
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			return tool.Fail("request failed: %v", err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		if err != nil {
			return tool.Fail("reading response failed: %v", err)
		}

		// Prefer structured bodies when the response parses as JSON.
		var respBody any
		if err := json.Unmarshal(raw, &respBody); err != nil {
			respBody = string(raw)
		}

		return tool.OkMeta(map[string]any{
			"status_code": resp.StatusCode,
			"body":        respBody,
		}, map[string]any{
			"url":    rawURL,
			"method": method,
		})
	})
}
