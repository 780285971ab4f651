package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// FileRecorder is the local CSV fallback for completed responses. The header
// row is written once, when the file is created empty.
type FileRecorder struct {
	path string
	mu   sync.Mutex
}

func NewFileRecorder(path string) (*FileRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("init responses file: %w", err)
	}
	_ = f.Close()
	return &FileRecorder{path: path}, nil
}

func (r *FileRecorder) Append(resp Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open append: %w", err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
		}
	}(f)
	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(Header()); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(resp.Row()); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// LoadAll reads back every recorded response in append order. Rows that do
// not parse are skipped.
func (r *FileRecorder) LoadAll() ([]Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open read: %w", err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
		}
	}(f)
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(Header())
	var out []Response
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if first {
			first = false
			if rec[0] == "timestamp" {
				continue
			}
		}
		resp, ok := parseRow(rec)
		if !ok {
			continue
		}
		out = append(out, resp)
	}
	return out, nil
}

func parseRow(rec []string) (Response, bool) {
	if len(rec) != len(Header()) {
		return Response{}, false
	}
	ts, err := time.Parse(time.RFC3339, rec[0])
	if err != nil {
		return Response{}, false
	}
	uid, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return Response{}, false
	}
	return Response{
		Timestamp:     ts,
		UserID:        uid,
		Username:      rec[2],
		Company:       rec[3],
		City:          rec[4],
		FleetSize:     rec[5],
		LeadChannels:  rec[6],
		Features:      rec[7],
		PilotInterest: rec[8],
		ContactName:   rec[9],
		ContactPhone:  rec[10],
	}, true
}
