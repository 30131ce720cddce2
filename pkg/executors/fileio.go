package executors

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
)

// ReadFileExecutor reads the file at its "path" input, resolved against
// root (sandboxRoot), grounded on original_source's execute_read_file. An
// absolute path, or a relative path that would resolve outside root, is
// rejected rather than silently escaping the sandbox.
type ReadFileExecutor struct {
	Root string
}

func (e ReadFileExecutor) Execute(_ context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, _ *engine.Extensions) (map[string]interface{}, error) {
	path, ok := stringField(inputs, "path")
	if !ok {
		return nil, fmt.Errorf("%w: read-file requires a \"path\" input", ErrMissingInput)
	}

	fullPath, err := resolveSandboxed(e.Root, path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("read-file: %w", err)
	}

	return map[string]interface{}{"content": string(content), "path": fullPath}, nil
}

// WriteFileExecutor writes its "content" input to the file at its "path"
// input, creating parent directories as needed, grounded on
// original_source's execute_write_file.
type WriteFileExecutor struct {
	Root string
}

func (e WriteFileExecutor) Execute(_ context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, _ *engine.Extensions) (map[string]interface{}, error) {
	path, ok := stringField(inputs, "path")
	if !ok {
		return nil, fmt.Errorf("%w: write-file requires a \"path\" input", ErrMissingInput)
	}
	content, ok := stringField(inputs, "content")
	if !ok {
		return nil, fmt.Errorf("%w: write-file requires a \"content\" input", ErrMissingInput)
	}

	fullPath, err := resolveSandboxed(e.Root, path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("write-file: creating directories: %w", err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write-file: %w", err)
	}

	return map[string]interface{}{"success": true, "path": fullPath}, nil
}

// resolveSandboxed joins root and path, rejecting the result if root is
// set and the resolved path does not stay within it.
func resolveSandboxed(root, path string) (string, error) {
	if root == "" {
		return path, nil
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %q is absolute", ErrPathEscapesRoot, path)
	}

	cleanRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving sandbox root: %w", err)
	}
	full := filepath.Join(cleanRoot, path)
	if full != cleanRoot && !strings.HasPrefix(full, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathEscapesRoot, path)
	}
	return full, nil
}
