package history

import (
	"database/sql"
	"errors"
	"time"
)

func scanSummary(scanner interface{ Scan(dest ...any) error }) (RunSummary, error) {
	var (
		summary      RunSummary
		generatedRaw string
		startRaw     sql.NullString
		endRaw       sql.NullString
		leader       sql.NullString
	)
	if err := scanner.Scan(
		&summary.ID,
		&generatedRaw,
		&startRaw,
		&endRaw,
		&summary.Entries,
		&leader,
		&summary.LeaderPoints,
	); err != nil {
		return RunSummary{}, err
	}
	summary.Leader = leader.String
	if generated, err := parseTimeString(generatedRaw); err == nil {
		summary.GeneratedAt = generated
	}
	if start, err := parseTimeString(startRaw.String); err == nil {
		summary.WindowStart = start
	}
	if end, err := parseTimeString(endRaw.String); err == nil {
		summary.WindowEnd = end
	}
	return summary, nil
}

func formatTime(value time.Time) string {
	return value.UTC().Format(timeLayout)
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return formatTime(value)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(timeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}
