package analytics

import (
	"strings"
	"testing"
	"time"

	"fleet-survey-bot/internal/storage"
)

func resp(ts time.Time, uid int64, pilot, features, city string) storage.Response {
	return storage.Response{
		Timestamp:     ts,
		UserID:        uid,
		PilotInterest: pilot,
		Features:      features,
		City:          city,
	}
}

func TestAnalyzeDailyResponses(t *testing.T) {
	day := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	responses := []storage.Response{
		resp(day, 1, "Да", "Аналитика и отчёты, API/1C интеграции", "Ташкент"),
		resp(day.Add(2*time.Hour), 2, "Нет", "Аналитика и отчёты", "Самарканд"),
		resp(day.Add(3*time.Hour), 1, "Да", "", "Ташкент"),
		// a day earlier, must be excluded
		resp(day.Add(-24*time.Hour), 3, "Да", "Аналитика и отчёты", "Бухара"),
	}

	stats := AnalyzeDailyResponses(responses, day)
	if stats.Date != "2025-05-01" {
		t.Fatalf("date = %q", stats.Date)
	}
	if stats.TotalResponses != 3 {
		t.Fatalf("total = %d, want 3", stats.TotalResponses)
	}
	if stats.UniqueUsers != 2 {
		t.Fatalf("unique = %d, want 2", stats.UniqueUsers)
	}
	if stats.PilotYes != 2 || stats.PilotNo != 1 {
		t.Fatalf("pilot = %d/%d, want 2/1", stats.PilotYes, stats.PilotNo)
	}
	if stats.FeatureCounts["Аналитика и отчёты"] != 2 {
		t.Fatalf("feature counts: %+v", stats.FeatureCounts)
	}
	if stats.FeatureCounts["API/1C интеграции"] != 1 {
		t.Fatalf("feature counts: %+v", stats.FeatureCounts)
	}
	if stats.Cities["Ташкент"] != 2 {
		t.Fatalf("cities: %+v", stats.Cities)
	}
}

func TestGenerateReportSummary_DeterministicOrder(t *testing.T) {
	day := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	responses := []storage.Response{
		resp(day, 1, "Да", "Б-функция, А-функция", ""),
		resp(day, 2, "Да", "А-функция", ""),
	}
	stats := AnalyzeDailyResponses(responses, day)

	first := stats.GenerateReportSummary()
	for i := 0; i < 10; i++ {
		if got := stats.GenerateReportSummary(); got != first {
			t.Fatalf("summary order is not deterministic")
		}
	}
	// higher count listed first
	idxA := strings.Index(first, "А-функция")
	idxB := strings.Index(first, "Б-функция")
	if idxA < 0 || idxB < 0 || idxA > idxB {
		t.Fatalf("unexpected ordering:\n%s", first)
	}
}

func TestAnalyzeDailyResponses_Empty(t *testing.T) {
	stats := AnalyzeDailyResponses(nil, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	if stats.TotalResponses != 0 || stats.UniqueUsers != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if _, err := stats.ToJSON(); err != nil {
		t.Fatalf("json: %v", err)
	}
}
