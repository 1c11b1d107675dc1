package structure

import (
	"fmt"
	"io"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const recentRecords = 100

type MoveRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Kind       string    `json:"kind"`
	SourcePath string    `json:"source_path"`
	DestPath   string    `json:"dest_path"`
}

// MoveLog appends one line per placed file to a rotating log and keeps
// the most recent records in memory for the web api.
type MoveLog struct {
	mu     sync.Mutex
	out    io.Writer
	recent []MoveRecord
}

func NewMoveLog(filename string, maxsizeMB int, maxbackups int) *MoveLog {
	if maxsizeMB == 0 {
		maxsizeMB = 5
	}
	return &MoveLog{out: &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxsizeMB,
		MaxBackups: maxbackups,
	}}
}

// NewMoveLogWriter is used by tests to capture records without a file.
func NewMoveLogWriter(out io.Writer) *MoveLog {
	return &MoveLog{out: out}
}

func (l *MoveLog) Append(kind string, sourcePath string, destPath string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	record := MoveRecord{Timestamp: time.Now(), Kind: kind, SourcePath: sourcePath, DestPath: destPath}
	fmt.Fprintf(l.out, "%s - %s | %s -> %s\n", record.Timestamp.Format(time.RFC3339), record.Kind, record.SourcePath, record.DestPath)
	l.recent = append(l.recent, record)
	if len(l.recent) > recentRecords {
		l.recent = l.recent[len(l.recent)-recentRecords:]
	}
}

func (l *MoveLog) Recent() []MoveRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]MoveRecord, len(l.recent))
	copy(out, l.recent)
	return out
}
