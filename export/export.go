// Package export serializes issue snapshots for download. Both projections
// are deterministic and order-preserving; they never re-sort input.
package export

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"cleancity-be/models"
)

const csvHeader = "id,title,category,status,assignedTo,createdAt,dueAt,lat,lng,address"

// ToCSV renders issues as delimited text with a fixed header row. Title and
// address are always wrapped in double quotes with internal quotes doubled;
// numeric and enum fields are never quoted. Timestamps are ISO-8601 UTC.
func ToCSV(issues []models.Issue) string {
	var b strings.Builder
	b.WriteString(csvHeader)

	for _, issue := range issues {
		lat, lng := "", ""
		if issue.Location != nil {
			lat = strconv.FormatFloat(issue.Location.Lat, 'f', -1, 64)
			lng = strconv.FormatFloat(issue.Location.Lng, 'f', -1, 64)
		}

		fields := []string{
			issue.ID,
			quote(issue.Title),
			string(issue.Category),
			string(issue.Status),
			issue.AssignedToWorkerID,
			isoUTC(issue.CreatedAt),
			isoUTC(issue.DueAt),
			lat,
			lng,
			quote(issue.Address),
		}

		b.WriteByte('\n')
		b.WriteString(strings.Join(fields, ","))
	}
	return b.String()
}

// ToJSON renders issues as an indented JSON array of full records.
func ToJSON(issues []models.Issue) (string, error) {
	if issues == nil {
		issues = []models.Issue{}
	}
	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func isoUTC(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")
}
