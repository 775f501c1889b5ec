package store

import (
	"fmt"
)

// Summary holds the aggregate record counts by status and direction.
type Summary struct {
	Total      int `json:"total"`
	Opened     int `json:"opened"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Inbound    int `json:"inbound"`
	Outbound   int `json:"outbound"`
}

// ChannelCount is one row of the channel breakdown. The field name "_id"
// matches the API contract inherited from the aggregation output shape.
type ChannelCount struct {
	Name  string `json:"_id"`
	Count int    `json:"count"`
}

// Stats is the full statistics result.
type Stats struct {
	Summary          Summary
	ChannelBreakdown []ChannelCount
}

// Stats computes the summary counts in one pass over the records and the
// per-channel breakdown over the flattened channel entries, sorted by
// descending count. A record with N channels contributes N counts.
func (db *DB) Stats() (*Stats, error) {
	var s Summary
	err := db.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(status = 'opened'), 0),
		       COALESCE(SUM(status = 'inProgress'), 0),
		       COALESCE(SUM(status = 'completed'), 0),
		       COALESCE(SUM(status = 'cancelled'), 0),
		       COALESCE(SUM(direction = 'inbound'), 0),
		       COALESCE(SUM(direction = 'outbound'), 0)
		FROM interactions
	`).Scan(&s.Total, &s.Opened, &s.InProgress, &s.Completed, &s.Cancelled, &s.Inbound, &s.Outbound)
	if err != nil {
		return nil, fmt.Errorf("store: summary stats: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT name, COUNT(*) AS cnt
		FROM interaction_channels
		GROUP BY name
		ORDER BY cnt DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: channel stats: %w", err)
	}
	defer rows.Close()

	breakdown := []ChannelCount{}
	for rows.Next() {
		var c ChannelCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Stats{Summary: s, ChannelBreakdown: breakdown}, nil
}
