// Package state persists the generation history of the CLI.
//
// Every completed generation is appended to a JSON history file in the
// XDG state directory (~/.local/state/codemate/history.json on Linux).
// The file is capped at a maximum number of entries with oldest-first
// eviction, and all writes go through an atomic temp-file rename so a
// crash mid-save never corrupts existing history.
//
// The History manager is safe for concurrent use.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
)

// History manages generation history storage and retrieval.
type History struct {
	historyPath string
	entries     []*HistoryEntry
	maxEntries  int
	mu          sync.RWMutex
}

// HistoryEntry records a single generated component.
type HistoryEntry struct {
	ID         int       `json:"id"`
	Framework  string    `json:"framework"`
	Name       string    `json:"name"`
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	Bytes      int       `json:"bytes"`
	Overwrote  bool      `json:"overwrote,omitempty"`
	WorkingDir string    `json:"working_dir,omitempty"`
	DurationMS int64     `json:"duration_ms,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// HistoryData is the on-disk structure of the history file.
type HistoryData struct {
	History    []*HistoryEntry `json:"history"`
	MaxEntries int             `json:"max_entries"`
	Version    string          `json:"version,omitempty"`
}

const (
	// DefaultMaxHistoryEntries is the default maximum number of history entries.
	DefaultMaxHistoryEntries = 1000

	// HistoryVersion is the current history file format version.
	HistoryVersion = "1.0"
)

// NewHistory creates a history manager backed by the XDG state directory
// for cliName.
func NewHistory(cliName string, maxEntries int) (*History, error) {
	return NewHistoryAt(filepath.Join(xdg.StateHome, cliName, "history.json"), maxEntries)
}

// NewHistoryAt creates a history manager backed by an explicit file path.
// Existing history at that path is loaded; a missing file is not an error.
func NewHistoryAt(path string, maxEntries int) (*History, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxHistoryEntries
	}

	h := &History{
		historyPath: path,
		entries:     make([]*HistoryEntry, 0),
		maxEntries:  maxEntries,
	}

	if err := h.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
	}

	return h, nil
}

// Load loads history from disk.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := os.ReadFile(h.historyPath)
	if err != nil {
		return err
	}

	var historyData HistoryData
	if err := json.Unmarshal(data, &historyData); err != nil {
		return fmt.Errorf("failed to parse history file: %w", err)
	}

	h.entries = historyData.History
	if h.entries == nil {
		h.entries = make([]*HistoryEntry, 0)
	}
	if historyData.MaxEntries > 0 {
		h.maxEntries = historyData.MaxEntries
	}

	// Reassign IDs to ensure they're sequential
	for i, entry := range h.entries {
		entry.ID = i + 1
	}

	return nil
}

// Save saves history to disk.
func (h *History) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.historyPath), 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	historyData := HistoryData{
		History:    h.entries,
		MaxEntries: h.maxEntries,
		Version:    HistoryVersion,
	}

	data, err := json.MarshalIndent(historyData, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	// Write to file with atomic rename
	tmpPath := h.historyPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	if err := os.Rename(tmpPath, h.historyPath); err != nil {
		os.Remove(tmpPath) // Clean up on error
		return fmt.Errorf("failed to save history file: %w", err)
	}

	return nil
}

// Add appends a new entry to the history.
func (h *History) Add(entry *HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) > 0 {
		entry.ID = h.entries[len(h.entries)-1].ID + 1
	} else {
		entry.ID = 1
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	h.entries = append(h.entries, entry)

	// Trim if exceeds max entries
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
		for i, e := range h.entries {
			e.ID = i + 1
		}
	}

	return nil
}

// Get returns a history entry by ID.
func (h *History) Get(id int) (*HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, entry := range h.entries {
		if entry.ID == id {
			return entry, nil
		}
	}

	return nil, fmt.Errorf("history entry %d not found", id)
}

// GetAll returns all history entries.
func (h *History) GetAll() []*HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	// Return a deep copy to prevent external modifications
	entries := make([]*HistoryEntry, len(h.entries))
	for i, entry := range h.entries {
		entryCopy := *entry
		entries[i] = &entryCopy
	}
	return entries
}

// GetRecent returns the most recent N entries in chronological order.
func (h *History) GetRecent(n int) []*HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n <= 0 || n > len(h.entries) {
		n = len(h.entries)
	}

	start := len(h.entries) - n
	entries := make([]*HistoryEntry, n)
	copy(entries, h.entries[start:])
	return entries
}

// Search returns entries whose name, filename, or path contains pattern.
// Matching is case insensitive.
func (h *History) Search(pattern string) []*HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	pattern = strings.ToLower(pattern)
	matches := make([]*HistoryEntry, 0)

	for _, entry := range h.entries {
		if strings.Contains(strings.ToLower(entry.Name), pattern) ||
			strings.Contains(strings.ToLower(entry.Filename), pattern) ||
			strings.Contains(strings.ToLower(entry.Path), pattern) {
			matches = append(matches, entry)
		}
	}

	return matches
}

// Filter filters history entries by criteria.
func (h *History) Filter(fn func(*HistoryEntry) bool) []*HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	matches := make([]*HistoryEntry, 0)

	for _, entry := range h.entries {
		if fn(entry) {
			matches = append(matches, entry)
		}
	}

	return matches
}

// GetByFramework returns entries generated for a specific framework.
func (h *History) GetByFramework(framework string) []*HistoryEntry {
	return h.Filter(func(e *HistoryEntry) bool {
		return e.Framework == framework
	})
}

// GetOverwrites returns entries that replaced an existing file.
func (h *History) GetOverwrites() []*HistoryEntry {
	return h.Filter(func(e *HistoryEntry) bool {
		return e.Overwrote
	})
}

// GetSince returns entries recorded after a specific time.
func (h *History) GetSince(since time.Time) []*HistoryEntry {
	return h.Filter(func(e *HistoryEntry) bool {
		return e.Timestamp.After(since)
	})
}

// Clear removes all history entries. Callers must Save to persist.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = make([]*HistoryEntry, 0)
	return nil
}

// Count returns the number of history entries.
func (h *History) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// GetPath returns the path to the history file.
func (h *History) GetPath() string {
	return h.historyPath
}

// SetMaxEntries sets the maximum number of entries.
func (h *History) SetMaxEntries(max int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
		for i, e := range h.entries {
			e.ID = i + 1
		}
	}
}

// GetMaxEntries returns the maximum number of entries.
func (h *History) GetMaxEntries() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.maxEntries
}

// LastFramework returns the framework of the most recent generation, or ""
// when the history is empty.
func (h *History) LastFramework() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[len(h.entries)-1].Framework
}

// GetRecentNames returns recently generated component names, most recent
// first, without duplicates, up to limit.
func (h *History) GetRecentNames(limit int) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[string]bool)
	names := make([]string, 0)

	for i := len(h.entries) - 1; i >= 0; i-- {
		name := h.entries[i].Name
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
		if limit > 0 && len(names) == limit {
			break
		}
	}

	return names
}

// GetStats returns statistics about the generation history.
func (h *History) GetStats() HistoryStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := HistoryStats{
		TotalGenerations: len(h.entries),
		ByFramework:      make(map[string]int),
	}

	if len(h.entries) == 0 {
		return stats
	}

	var totalDuration int64
	for _, entry := range h.entries {
		if entry.Overwrote {
			stats.Overwrites++
		}
		stats.BytesWritten += int64(entry.Bytes)
		stats.ByFramework[entry.Framework]++
		totalDuration += entry.DurationMS

		if stats.FirstGeneration.IsZero() || entry.Timestamp.Before(stats.FirstGeneration) {
			stats.FirstGeneration = entry.Timestamp
		}
		if stats.LastGeneration.IsZero() || entry.Timestamp.After(stats.LastGeneration) {
			stats.LastGeneration = entry.Timestamp
		}
	}

	if stats.TotalGenerations > 0 {
		stats.AverageDurationMS = totalDuration / int64(stats.TotalGenerations)
	}

	return stats
}

// HistoryStats represents statistics about the generation history.
type HistoryStats struct {
	TotalGenerations  int            `json:"total_generations" yaml:"total_generations"`
	Overwrites        int            `json:"overwrites" yaml:"overwrites"`
	BytesWritten      int64          `json:"bytes_written" yaml:"bytes_written"`
	ByFramework       map[string]int `json:"by_framework" yaml:"by_framework"`
	AverageDurationMS int64          `json:"average_duration_ms" yaml:"average_duration_ms"`
	FirstGeneration   time.Time      `json:"first_generation" yaml:"first_generation"`
	LastGeneration    time.Time      `json:"last_generation" yaml:"last_generation"`
}

// RecordGeneration appends an entry for a completed generation and persists
// the history file. The working directory is captured when not already set.
func (h *History) RecordGeneration(entry *HistoryEntry) error {
	if entry.WorkingDir == "" {
		if wd, err := os.Getwd(); err == nil {
			entry.WorkingDir = wd
		}
	}

	if err := h.Add(entry); err != nil {
		return err
	}

	return h.Save()
}

// GetMostUsedFrameworks returns frameworks ordered by how often they have
// been generated, most used first. A limit of 0 returns all.
func (h *History) GetMostUsedFrameworks(limit int) []FrameworkFrequency {
	h.mu.RLock()
	defer h.mu.RUnlock()

	freqMap := make(map[string]int)
	for _, entry := range h.entries {
		freqMap[entry.Framework]++
	}

	frequencies := make([]FrameworkFrequency, 0, len(freqMap))
	for fw, count := range freqMap {
		frequencies = append(frequencies, FrameworkFrequency{
			Framework: fw,
			Count:     count,
		})
	}

	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].Count != frequencies[j].Count {
			return frequencies[i].Count > frequencies[j].Count
		}
		return frequencies[i].Framework < frequencies[j].Framework
	})

	if limit > 0 && limit < len(frequencies) {
		frequencies = frequencies[:limit]
	}

	return frequencies
}

// FrameworkFrequency represents framework usage frequency.
type FrameworkFrequency struct {
	Framework string `json:"framework" yaml:"framework"`
	Count     int    `json:"count" yaml:"count"`
}
