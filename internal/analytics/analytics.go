package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"fleet-survey-bot/internal/storage"
)

// DailyStats содержит статистику собранных анкет за день
type DailyStats struct {
	Date           string         `json:"date"`
	TotalResponses int            `json:"total_responses"`
	UniqueUsers    int            `json:"unique_users"`
	PilotYes       int            `json:"pilot_yes"`
	PilotNo        int            `json:"pilot_no"`
	FeatureCounts  map[string]int `json:"feature_counts"`
	Cities         map[string]int `json:"cities"`
}

// AnalyzeDailyResponses собирает статистику по анкетам за указанную дату
func AnalyzeDailyResponses(responses []storage.Response, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{
		Date:          startOfDay.Format("2006-01-02"),
		FeatureCounts: make(map[string]int),
		Cities:        make(map[string]int),
	}

	uniqueUsers := make(map[int64]bool)

	for _, r := range responses {
		if r.Timestamp.Before(startOfDay) || !r.Timestamp.Before(endOfDay) {
			continue
		}
		stats.TotalResponses++
		uniqueUsers[r.UserID] = true

		switch r.PilotInterest {
		case "Да":
			stats.PilotYes++
		case "Нет":
			stats.PilotNo++
		}

		for _, feat := range strings.Split(r.Features, ",") {
			feat = strings.TrimSpace(feat)
			if feat != "" {
				stats.FeatureCounts[feat]++
			}
		}
		if city := strings.TrimSpace(r.City); city != "" {
			stats.Cities[city]++
		}
	}

	stats.UniqueUsers = len(uniqueUsers)
	return stats
}

// GenerateReportSummary создает текстовое резюме для отправки администраторам
func (ds *DailyStats) GenerateReportSummary() string {
	summary := fmt.Sprintf(`Статистика опроса автопарков за %s:

- Заполненных анкет: %d
- Уникальных пользователей: %d
- Готовы к пилоту: %d, не готовы: %d

`, ds.Date, ds.TotalResponses, ds.UniqueUsers, ds.PilotYes, ds.PilotNo)

	if len(ds.FeatureCounts) > 0 {
		summary += "Востребованные функции:\n"
		for _, kv := range sortedCounts(ds.FeatureCounts) {
			summary += fmt.Sprintf("- %s: %d\n", kv.name, kv.count)
		}
		summary += "\n"
	}

	if len(ds.Cities) > 0 {
		summary += "Города:\n"
		for _, kv := range sortedCounts(ds.Cities) {
			summary += fmt.Sprintf("- %s: %d\n", kv.name, kv.count)
		}
	}

	return summary
}

// ToJSON сериализует статистику для детального анализа
func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type countEntry struct {
	name  string
	count int
}

// sortedCounts keeps report ordering deterministic: by count desc, then name.
func sortedCounts(m map[string]int) []countEntry {
	out := make([]countEntry, 0, len(m))
	for name, count := range m {
		out = append(out, countEntry{name: name, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}
