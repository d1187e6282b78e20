package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/praxislabs/praxis/pkg/tool"
)

// DefaultMaxFileBytes caps file reads and writes.
const DefaultMaxFileBytes = 1 << 20 // 1 MiB

// FileToolset builds the file tools confined to a root directory. Paths are
// resolved relative to the root; escaping it is a failure, not an error.
type FileToolset struct {
	Root     string
	MaxBytes int64
}

func (f FileToolset) maxBytes() int64 {
	if f.MaxBytes > 0 {
		return f.MaxBytes
	}
	return DefaultMaxFileBytes
}

// resolve joins the requested path with the root and rejects escapes.
func (f FileToolset) resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path must not be empty")
	}
	root, err := filepath.Abs(f.Root)
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, filepath.Clean("/"+path))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the allowed directory", path)
	}
	return full, nil
}

// ReadFile returns the size-capped file reading tool.
func (f FileToolset) ReadFile() tool.Tool {
	return tool.New(tool.Descriptor{
		Name:        "read_file",
		Description: "Reads a text file from the working directory and returns its content.",
		Category:    tool.CategoryFileOperation,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"file_path": {
				Type:        "string",
				Description: "Path of the file, relative to the working directory",
			},
		}, "file_path"),
	}, func(_ context.Context, args map[string]any) tool.Result {
		path, err := f.resolve(strArg(args, "file_path", ""))
		if err != nil {
			return tool.Fail("%v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return tool.Fail("cannot read file: %v", err)
		}
		if info.Size() > f.maxBytes() {
			return tool.Fail("file is %d bytes, limit is %d", info.Size(), f.maxBytes())
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return tool.Fail("cannot read file: %v", err)
		}
		return tool.OkMeta(string(content), map[string]any{
			"file_path": strArg(args, "file_path", ""),
			"file_size": info.Size(),
		})
	})
}

// WriteFile returns the file writing tool.
func (f FileToolset) WriteFile() tool.Tool {
	return tool.New(tool.Descriptor{
		Name:        "write_file",
		Description: "Writes text content to a file in the working directory, creating or overwriting it. Use mode 'a' to append instead.",
		Category:    tool.CategoryFileOperation,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"file_path": {
				Type:        "string",
				Description: "Path of the file, relative to the working directory",
			},
			"content": {
				Type:        "string",
				Description: "The content to write",
			},
			"mode": {
				Type:        "string",
				Description: "'w' to overwrite (default), 'a' to append",
				Enum:        []string{"w", "a"},
				Default:     "w",
			},
		}, "file_path", "content"),
	}, func(_ context.Context, args map[string]any) tool.Result {
		path, err := f.resolve(strArg(args, "file_path", ""))
		if err != nil {
			return tool.Fail("%v", err)
		}
		content := strArg(args, "content", "")
		if int64(len(content)) > f.maxBytes() {
			return tool.Fail("content is %d bytes, limit is %d", len(content), f.maxBytes())
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return tool.Fail("cannot create directory: %v", err)
		}

		flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		if strArg(args, "mode", "w") == "a" {
			flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		}
		file, err := os.OpenFile(path, flags, 0o644)
		if err != nil {
			return tool.Fail("cannot open file: %v", err)
		}
		defer file.Close()

		n, err := file.WriteString(content)
		if err != nil {
			return tool.Fail("write failed: %v", err)
		}
		return tool.OkMeta(fmt.Sprintf("wrote %d bytes", n), map[string]any{
			"file_path": strArg(args, "file_path", ""),
			"bytes":     n,
		})
	})
}
