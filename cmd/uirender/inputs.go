package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-yaml"
)

var specExtensions = []string{".json", ".yaml", ".yml"}

func isSpecFile(path string) bool {
	return slices.Contains(specExtensions, strings.ToLower(filepath.Ext(path)))
}

// collectInputs expands directories and glob patterns into a sorted,
// de-duplicated file list
func collectInputs(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			found, err := walkDir(arg)
			if err != nil {
				return nil, fmt.Errorf("walk %s: %w", arg, err)
			}
			for _, path := range found {
				add(path)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", arg, err)
		}
		if len(matches) == 0 {
			// A literal path that does not exist is reported as a read error later
			add(arg)
			continue
		}
		for _, path := range matches {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				continue
			}
			add(path)
		}
	}

	slices.Sort(files)
	return files, nil
}

func walkDir(root string) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isSpecFile(path) {
			return nil
		}
		mu.Lock()
		files = append(files, path)
		mu.Unlock()
		return nil
	})
	return files, err
}

// decode parses a spec file. JSON content goes through sonic, anything
// else is treated as YAML and converted to JSON-shaped values.
func decode(data []byte, decodeJSON func([]byte) (any, error)) (any, error) {
	if mimetype.Detect(data).Is("application/json") {
		return decodeJSON(data)
	}

	var parsed any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	// Re-encode so numbers and maps match what the JSON path produces
	encoded, err := sonic.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("unsupported YAML value: %w", err)
	}
	return decodeJSON(encoded)
}
