// Package archive appends JSON records to hourly zstd-compressed files.
package archive

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

// JSONLZstdWriter writes one JSON document per line into
// <dir>/<prefix>-YYYY-MM-DD-HH.jsonl.zst, rotating on the UTC hour.
type JSONLZstdWriter struct {
	dir    string
	prefix string
	now    func() time.Time

	mu   sync.Mutex
	hour string
	f    *os.File
	enc  *zstd.Encoder
	buf  *bufio.Writer
}

func NewJSONLZstdWriter(dir, prefix string) *JSONLZstdWriter {
	if prefix == "" {
		prefix = "events"
	}
	return &JSONLZstdWriter{dir: dir, prefix: prefix, now: time.Now}
}

// Write appends v and flushes it through the encoder. Each flush ends a zstd
// block, so a crash loses at most the record being written.
func (w *JSONLZstdWriter) Write(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := w.now().UTC().Format("2006-01-02-15")
	if hour != w.hour || w.buf == nil {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}
	if _, err := w.buf.Write(raw); err != nil {
		return err
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return err
	}
	if err := w.buf.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

// Path returns the file used for the given hour.
func (w *JSONLZstdWriter) Path(t time.Time) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, t.UTC().Format("2006-01-02-15")))
}

func (w *JSONLZstdWriter) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	name := filepath.Join(w.dir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f, w.enc, w.buf, w.hour = f, enc, bufio.NewWriterSize(enc, 64*1024), hour
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err error
	if w.buf != nil {
		_ = w.buf.Flush()
	}
	if w.enc != nil {
		err = w.enc.Close()
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
	}
	w.f, w.enc, w.buf = nil, nil, nil
	return err
}
