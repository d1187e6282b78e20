package tools

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"

	"github.com/praxislabs/praxis/pkg/tool"
)

// NewEncodeDecode returns the encoding tool: base64 and URL encode/decode
// plus MD5 and SHA-256 digests.
func NewEncodeDecode() tool.Tool {
	return tool.New(tool.Descriptor{
		Name:        "encode_decode",
		Description: "Encodes or decodes text. Supports base64 encode/decode, URL encode/decode, and MD5/SHA-256 hash computation.",
		Category:    tool.CategoryUtility,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"operation": {
				Type:        "string",
				Description: "The operation to perform",
				Enum: []string{
					"base64_encode", "base64_decode",
					"url_encode", "url_decode",
					"md5", "sha256",
				},
			},
			"text": {
				Type:        "string",
				Description: "The text to process",
			},
		}, "operation", "text"),
	}, func(_ context.Context, args map[string]any) tool.Result {
		op := strArg(args, "operation", "")
		text := strArg(args, "text", "")

		meta := map[string]any{"operation": op, "input_length": len(text)}
		switch op {
		case "base64_encode":
			return tool.OkMeta(base64.StdEncoding.EncodeToString([]byte(text)), meta)
		case "base64_decode":
			decoded, err := base64.StdEncoding.DecodeString(text)
			if err != nil {
				return tool.Fail("invalid base64 input: %v", err)
			}
			return tool.OkMeta(string(decoded), meta)
		case "url_encode":
			return tool.OkMeta(url.QueryEscape(text), meta)
		case "url_decode":
			decoded, err := url.QueryUnescape(text)
			if err != nil {
				return tool.Fail("invalid url-encoded input: %v", err)
			}
			return tool.OkMeta(decoded, meta)
		case "md5":
			sum := md5.Sum([]byte(text))
			return tool.OkMeta(hex.EncodeToString(sum[:]), meta)
		case "sha256":
			sum := sha256.Sum256([]byte(text))
			return tool.OkMeta(hex.EncodeToString(sum[:]), meta)
		default:
			return tool.Fail("unsupported operation %q", op)
		}
	})
}
