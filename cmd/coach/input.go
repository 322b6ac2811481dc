package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// stdinPath makes an input flag read standard input.
const stdinPath = "-"

// decodeFile reads a JSON or YAML document into v. Files ending in .yaml or
// .yml are decoded as YAML, everything else (including stdin) as JSON.
func decodeFile(path string, stdin io.Reader, v any) error {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%s is empty", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// decodeOptional decodes path into v when path is set.
func decodeOptional(path string, stdin io.Reader, v any) (bool, error) {
	if path == "" {
		return false, nil
	}
	if err := decodeFile(path, stdin, v); err != nil {
		return false, err
	}
	return true, nil
}
