package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testResponse(uid int64) Response {
	return Response{
		Timestamp:     time.Date(2025, 5, 1, 12, 30, 0, 0, time.UTC),
		UserID:        uid,
		Username:      "@driver",
		Company:       "Парк",
		City:          "Ташкент",
		FleetSize:     "25",
		LeadChannels:  "Instagram, Telegram",
		Features:      "Аналитика и отчёты, API/1C интеграции",
		PilotInterest: "Да",
		ContactName:   "Иван Иванов",
		ContactPhone:  "+998901234567",
	}
}

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "responses.csv")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}

	if err := rec.Append(testResponse(1)); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.Append(testResponse(2)); err != nil {
		t.Fatalf("append2: %v", err)
	}

	loaded, err := rec.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("want 2, got %d", len(loaded))
	}
	if loaded[0].UserID != 1 || loaded[1].UserID != 2 {
		t.Fatalf("order mismatch: %+v", loaded)
	}
	if loaded[0] != testResponse(1) {
		t.Fatalf("roundtrip mismatch:\n got %+v\nwant %+v", loaded[0], testResponse(1))
	}
}

func TestFileRecorder_HeaderWrittenOnce(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "responses.csv")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	if err := rec.Append(testResponse(1)); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.Append(testResponse(2)); err != nil {
		t.Fatalf("append2: %v", err)
	}

	f, err := os.Open(p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want header + 2 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][10] != "contact_phone" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	for _, row := range rows[1:] {
		if row[0] == "timestamp" {
			t.Fatalf("header duplicated")
		}
	}
}

func TestNewResponse_MissingKeysDefaultToEmpty(t *testing.T) {
	answers := map[string]string{
		"company": "Парк",
		"city":    "Ташкент",
	}
	ts := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	r := NewResponse(ts, 77, "", answers)

	row := r.Row()
	if len(row) != len(Header()) {
		t.Fatalf("row has %d cells, header has %d", len(row), len(Header()))
	}
	if row[0] != "2025-05-01T12:00:00Z" {
		t.Fatalf("timestamp = %q", row[0])
	}
	if row[1] != "77" {
		t.Fatalf("user_id = %q", row[1])
	}
	if row[3] != "Парк" || row[4] != "Ташкент" {
		t.Fatalf("answers misplaced: %v", row)
	}
	// every unanswered column is an empty string, not absent
	for _, i := range []int{2, 5, 6, 7, 8, 9, 10} {
		if row[i] != "" {
			t.Fatalf("column %d = %q, want empty", i, row[i])
		}
	}
}
