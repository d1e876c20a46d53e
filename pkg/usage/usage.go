package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToolUsage represents accumulated usage for a single tool
type ToolUsage struct {
	Name                 string        `json:"name"`
	CallCount            int           `json:"call_count"`
	TotalExecutionTime   time.Duration `json:"total_execution_time"`
	AverageExecutionTime time.Duration `json:"average_execution_time"`
	InputBytes           int           `json:"input_bytes"`
	OutputBytes          int           `json:"output_bytes"`
	LastUsed             time.Time     `json:"last_used"`
}

// SessionUsage represents usage for the current server session
type SessionUsage struct {
	SessionID string                `json:"session_id"`
	StartTime time.Time             `json:"start_time"`
	Tools     map[string]*ToolUsage `json:"tools"`
}

// PersistentUsage represents usage persisted across all sessions
type PersistentUsage struct {
	FirstRecorded time.Time             `json:"first_recorded"`
	LastUpdated   time.Time             `json:"last_updated"`
	Tools         map[string]*ToolUsage `json:"tools"`
}

// Manager tracks tool usage for the session and across sessions
type Manager struct {
	session    *SessionUsage
	persistent *PersistentUsage
	filePath   string
	mutex      sync.RWMutex
}

// NewManager creates a usage manager backed by a JSON file
func NewManager(filePath string) (*Manager, error) {
	now := time.Now()
	manager := &Manager{
		session: &SessionUsage{
			SessionID: uuid.NewString(),
			StartTime: now,
			Tools:     make(map[string]*ToolUsage),
		},
		persistent: &PersistentUsage{
			FirstRecorded: now,
			LastUpdated:   now,
			Tools:         make(map[string]*ToolUsage),
		},
		filePath: filePath,
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for usage file: %v", err)
	}

	// Load prior usage if it exists
	if _, err := os.Stat(filePath); err == nil {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read usage file: %v", err)
		}
		if err := json.Unmarshal(data, &manager.persistent); err != nil {
			return nil, fmt.Errorf("failed to parse usage file: %v", err)
		}
	}

	return manager, nil
}

// SessionID returns the identifier assigned to this session
func (m *Manager) SessionID() string {
	return m.session.SessionID
}

// Record records one tool invocation
func (m *Manager) Record(toolName string, executionTime time.Duration, inputBytes, outputBytes int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	record(m.session.Tools, toolName, executionTime, inputBytes, outputBytes)
	record(m.persistent.Tools, toolName, executionTime, inputBytes, outputBytes)
	m.persistent.LastUpdated = time.Now()

	return m.save()
}

func record(tools map[string]*ToolUsage, toolName string, executionTime time.Duration, inputBytes, outputBytes int) {
	entry, ok := tools[toolName]
	if !ok {
		entry = &ToolUsage{Name: toolName}
		tools[toolName] = entry
	}

	entry.CallCount++
	entry.TotalExecutionTime += executionTime
	entry.AverageExecutionTime = entry.TotalExecutionTime / time.Duration(entry.CallCount)
	entry.InputBytes += inputBytes
	entry.OutputBytes += outputBytes
	entry.LastUsed = time.Now()
}

// Session returns a copy of the session usage
func (m *Manager) Session() *SessionUsage {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snapshot := &SessionUsage{
		SessionID: m.session.SessionID,
		StartTime: m.session.StartTime,
		Tools:     make(map[string]*ToolUsage),
	}
	for name, entry := range m.session.Tools {
		entryCopy := *entry
		snapshot.Tools[name] = &entryCopy
	}
	return snapshot
}

// Persistent returns a copy of the all-time usage
func (m *Manager) Persistent() *PersistentUsage {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snapshot := &PersistentUsage{
		FirstRecorded: m.persistent.FirstRecorded,
		LastUpdated:   m.persistent.LastUpdated,
		Tools:         make(map[string]*ToolUsage),
	}
	for name, entry := range m.persistent.Tools {
		entryCopy := *entry
		snapshot.Tools[name] = &entryCopy
	}
	return snapshot
}

// save writes persistent usage to disk; callers hold the lock
func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.persistent, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal usage: %v", err)
	}
	if err := os.WriteFile(m.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write usage file: %v", err)
	}
	return nil
}

// FormatUsage formats session and all-time usage as a text table
func FormatUsage(session *SessionUsage, persistent *PersistentUsage) string {
	result := "Tool Usage Statistics\n\n"

	result += "Current Session:\n"
	result += fmt.Sprintf("Session ID: %s\n", session.SessionID)
	result += fmt.Sprintf("Session started: %s\n\n", session.StartTime.Format(time.RFC3339))
	result += formatTable(session.Tools)

	result += "\nAll-Time:\n"
	result += fmt.Sprintf("First recorded: %s\n", persistent.FirstRecorded.Format(time.RFC3339))
	result += fmt.Sprintf("Last updated: %s\n\n", persistent.LastUpdated.Format(time.RFC3339))
	result += formatTable(persistent.Tools)

	return result
}

func formatTable(tools map[string]*ToolUsage) string {
	if len(tools) == 0 {
		return "No tools used.\n"
	}

	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)

	result := "Tool                  | Calls | Avg Time  | Total Time\n"
	result += "----------------------|-------|-----------|-----------\n"
	for _, name := range names {
		entry := tools[name]
		result += fmt.Sprintf("%-22s| %5d | %9s | %10s\n",
			entry.Name,
			entry.CallCount,
			entry.AverageExecutionTime.Round(time.Millisecond).String(),
			entry.TotalExecutionTime.Round(time.Millisecond).String())
	}
	return result
}
