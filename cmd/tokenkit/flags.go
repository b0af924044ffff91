package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func validateTokensPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("token document is required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve token document path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("token document does not exist: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("token document path %s is a directory", abs)
	}

	return abs, nil
}

func validateOutputDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("output directory is required")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err == nil && !info.IsDir() {
		return "", fmt.Errorf("output path %s is not a directory", abs)
	}

	return abs, nil
}
