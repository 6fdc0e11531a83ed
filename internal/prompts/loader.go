// Package prompts provides a loader for externalized LLM prompt templates.
// Prompts are stored as JSON files (key -> template) and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"sync"
)

// RoastFile holds the résumé analysis instructions.
const RoastFile = "roast.json"

// AnalyzeResumeKey is the system prompt that defines the fourteen roast metrics.
const AnalyzeResumeKey = "analyze-resume"

//go:embed *.json
var promptFiles embed.FS

// Store reads prompt files from a filesystem and caches the parsed result.
type Store struct {
	fsys  fs.FS
	mu    sync.RWMutex
	cache map[string]map[string]string
}

// NewStore creates a Store over fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{
		fsys:  fsys,
		cache: make(map[string]map[string]string),
	}
}

var defaultStore = NewStore(promptFiles)

// Get retrieves a prompt by filename and key from the embedded prompt files.
func Get(filename, key string) (string, error) {
	return defaultStore.Get(filename, key)
}

// MustGet retrieves a prompt by filename and key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// List returns the sorted prompt keys in an embedded file.
func List(filename string) ([]string, error) {
	return defaultStore.List(filename)
}

// ClearCache clears the embedded prompt cache. Useful for testing.
func ClearCache() {
	defaultStore.Clear()
}

// Get retrieves a prompt by filename and key.
func (s *Store) Get(filename, key string) (string, error) {
	prompts, err := s.load(filename)
	if err != nil {
		return "", err
	}

	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// List returns the sorted prompt keys in a file.
func (s *Store) List(filename string) ([]string, error) {
	prompts, err := s.load(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear drops every cached file.
func (s *Store) Clear() {
	s.mu.Lock()
	s.cache = make(map[string]map[string]string)
	s.mu.Unlock()
}

func (s *Store) load(filename string) (map[string]string, error) {
	s.mu.RLock()
	prompts, ok := s.cache[filename]
	s.mu.RUnlock()
	if ok {
		return prompts, nil
	}

	data, err := fs.ReadFile(s.fsys, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	s.mu.Lock()
	s.cache[filename] = prompts
	s.mu.Unlock()

	return prompts, nil
}
