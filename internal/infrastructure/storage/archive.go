package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// EventArchive пишет события в сжатый JSONL архив: одна JSON строка
// на событие, zstd поверх файла, ротация по часу UTC.
type EventArchive struct {
	baseDir string
	prefix  string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewEventArchive(baseDir string) *EventArchive {
	return &EventArchive{
		baseDir: baseDir,
		prefix:  "events",
	}
}

func (a *EventArchive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closeLocked()
}

func (a *EventArchive) Write(v any) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	hour := time.Now().UTC().Format("2006-01-02-15")
	if hour != a.curHour {
		if err := a.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := a.w.Write(b); err != nil {
		return err
	}
	if err := a.w.WriteByte('\n'); err != nil {
		return err
	}
	return a.w.Flush()
}

func (a *EventArchive) rotateLocked(hour string) error {
	if err := a.closeLocked(); err != nil {
		return err
	}
	path := a.pathForHour(hour)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	a.f = f
	a.enc = enc
	a.w = bufio.NewWriterSize(enc, 128*1024)
	a.curHour = hour
	return nil
}

func (a *EventArchive) closeLocked() error {
	var err1 error
	if a.w != nil {
		_ = a.w.Flush()
	}
	if a.enc != nil {
		err1 = a.enc.Close()
		a.enc = nil
	}
	if a.f != nil {
		_ = a.f.Close()
		a.f = nil
	}
	a.w = nil
	return err1
}

func (a *EventArchive) pathForHour(hour string) string {
	return filepath.Join(a.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", a.prefix, hour))
}
