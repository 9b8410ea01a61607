// Package prompts loads externalized LLM prompt templates. Templates live in
// JSON files embedded at compile time, keyed by name within each file.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// all maps "filename#key" to the prompt template. Parsed once on first use.
var all = sync.OnceValues(parseAll)

func parseAll() (map[string]string, error) {
	prompts := make(map[string]string)
	entries, err := fs.ReadDir(promptFiles, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded prompts: %w", err)
	}
	for _, entry := range entries {
		data, err := promptFiles.ReadFile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", entry.Name(), err)
		}
		var file map[string]string
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", entry.Name(), err)
		}
		for key, prompt := range file {
			prompts[entry.Name()+"#"+key] = prompt
		}
	}
	return prompts, nil
}

// Get retrieves a prompt template by filename and key.
func Get(filename, key string) (string, error) {
	prompts, err := all()
	if err != nil {
		return "", err
	}
	prompt, exists := prompts[filename+"#"+key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet retrieves a prompt, panicking if it is missing. Use only for
// prompts that are required for the binary to function at all.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces {{.Key}} placeholders in a template with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}
