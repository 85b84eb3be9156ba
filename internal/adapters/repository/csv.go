package repository

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// expected CSV header for leaderboard uploads, in order.
var csvHeader = []string{"email", "name", "points", "rank"}

// ParseCSV decodes an admin leaderboard upload. The first row must be
// the header `email,name,points,rank`; every data row needs a non-empty
// email and numeric points and rank. The first bad row fails the whole
// upload; partial applies are not allowed.
func ParseCSV(data string) ([]Entry, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadCSV, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrBadCSV)
	}

	header := rows[0]
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("%w: expected header %s", ErrBadCSV, strings.Join(csvHeader, ","))
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), csvHeader[i]) {
			return nil, fmt.Errorf("%w: expected header %s", ErrBadCSV, strings.Join(csvHeader, ","))
		}
	}

	entries := make([]Entry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after the header

		email := strings.TrimSpace(row[0])
		if email == "" {
			return nil, fmt.Errorf("%w: row %d: email is required", ErrBadCSV, line)
		}
		points, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: points must be a number", ErrBadCSV, line)
		}
		rank, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: rank must be a number", ErrBadCSV, line)
		}
		if rank < 1 {
			return nil, fmt.Errorf("%w: row %d: rank must be positive", ErrBadCSV, line)
		}

		entries = append(entries, Entry{
			Email:    email,
			UserName: strings.TrimSpace(row[1]),
			Points:   points,
			Rank:     rank,
		})
	}
	return entries, nil
}
