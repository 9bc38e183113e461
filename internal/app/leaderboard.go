package app

import (
	"sort"

	"awareness-training-service/internal/domain"
)

const unknownDepartment = "Unknown"

// Rank orders entries by score (desc) then completion time (desc, most
// recent first) and assigns sequential 1-based ranks. Ties never share a rank.
func Rank(entries []domain.ScoreEntry) []domain.LeaderboardRow {
	sorted := make([]domain.ScoreEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].CompletedAt.After(sorted[j].CompletedAt)
	})

	rows := make([]domain.LeaderboardRow, 0, len(sorted))
	for i, entry := range sorted {
		rows = append(rows, domain.LeaderboardRow{
			Rank:        i + 1,
			Name:        displayName(entry),
			Department:  department(entry),
			Score:       entry.Score,
			Total:       entry.TotalQuestions,
			Percentage:  entry.Percentage,
			CompletedAt: entry.CompletedAt,
		})
	}
	return rows
}

func displayName(entry domain.ScoreEntry) string {
	if entry.UserName != "" {
		return entry.UserName
	}
	id := entry.UserID
	if len(id) > 8 {
		id = id[:8]
	}
	return "User " + id
}

func department(entry domain.ScoreEntry) string {
	if entry.Department != "" {
		return entry.Department
	}
	return unknownDepartment
}
