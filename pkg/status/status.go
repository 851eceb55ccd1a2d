// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"sort"
	"sync"
)

// 📊 State represents the lifecycle position of one transfer
type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateError      State = "error"
	StateSkipped    State = "skipped"
)

// String returns the wire name of the state
func (s State) String() string {
	return string(s)
}

// Terminal reports whether no further transition is expected
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateError || s == StateSkipped
}

// 📄 Entry is the ledger record for a single source file
type Entry struct {
	Source   string // Source path, the ledger key
	Dest     string // Resolved destination path
	Size     int64  // File size in bytes
	Progress int    // 0-100
	State    State  // Current state
	Err      string // Failure message, empty unless State is error
}

// 📈 Summary aggregates transfer and cleanup counts
type Summary struct {
	TotalFiles       int
	Completed        int
	InProgress       int
	Skipped          int
	Errors           int
	TotalBytes       int64
	ProcessedBytes   int64
	EmptyDirsFound   int
	EmptyDirsRemoved int
	CleanupErrors    int
}

// PercentComplete is the byte-weighted completion percentage.
// Zero when no bytes are tracked.
func (s Summary) PercentComplete() float64 {
	if s.TotalBytes == 0 {
		return 0
	}
	return float64(s.ProcessedBytes) / float64(s.TotalBytes) * 100
}

// 🔧 Ledger is a lock-guarded shared table of transfer entries plus
// their aggregate summary. Safe for concurrent use by transfer workers
// and pollers.
type Ledger struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	summary Summary
}

// 🏭 NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		entries: make(map[string]*Entry),
	}
}

// 📝 Track admits a source file at (0, pending) and grows the totals.
// Called once per file before resolution so observers see every
// requested file immediately.
func (l *Ledger) Track(source, dest string, size int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[source] = &Entry{
		Source: source,
		Dest:   dest,
		Size:   size,
		State:  StatePending,
	}
	l.summary.TotalFiles++
	l.summary.TotalBytes += size
}

// 📝 Update sets the entry for source and applies the summary effect of
// the new state, all inside one critical section. Counters are keyed by
// the new state only; leaving a prior state never decrements it.
func (l *Ledger) Update(source string, state State, progress int, bytes int64, errMsg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[source]
	if !ok {
		entry = &Entry{Source: source}
		l.entries[source] = entry
	}
	entry.State = state
	entry.Progress = progress
	entry.Err = errMsg

	switch state {
	case StateInProgress:
		l.summary.InProgress++
		l.summary.ProcessedBytes += bytes
	case StateCompleted:
		l.summary.Completed++
		l.summary.ProcessedBytes += bytes
	case StateError:
		l.summary.Errors++
	case StateSkipped:
		l.summary.Skipped++
	}
}

// 🧹 AddCleanup accumulates empty-directory sweep results
func (l *Ledger) AddCleanup(found, removed, errs int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.summary.EmptyDirsFound += found
	l.summary.EmptyDirsRemoved += removed
	l.summary.CleanupErrors += errs
}

// 🔍 Get returns a copy of the entry for source
func (l *Ledger) Get(source string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.entries[source]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// 📋 Entries returns a snapshot of all entries, sorted by source path
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Source < entries[j].Source
	})
	return entries
}

// 📈 Summary returns a consistent snapshot of the aggregate counts
func (l *Ledger) Summary() Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.summary
}
