package history

import (
	"fmt"
	"time"
)

// Stats summarizes the removal log over a period.
type Stats struct {
	StartDate  time.Time
	EndDate    time.Time
	ByAction   map[string]int
	BytesFreed int64
}

// RecentRemovals returns the newest events first.
func (d *DB) RecentRemovals(limit int) ([]Record, error) {
	return d.queryRemovals(
		`SELECT id, timestamp, action, path, name, size, error_message
		 FROM removals ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
}

// RemovalsByAction filters events by action (REMOVE, DRY_RUN, SKIP, ERROR).
func (d *DB) RemovalsByAction(action string, limit int) ([]Record, error) {
	return d.queryRemovals(
		`SELECT id, timestamp, action, path, name, size, error_message
		 FROM removals WHERE action = ? ORDER BY timestamp DESC, id DESC LIMIT ?`,
		action, limit)
}

// GetStats aggregates the last N days of the log.
func (d *DB) GetStats(days int) (*Stats, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	stats := &Stats{
		StartDate: start,
		EndDate:   end,
		ByAction:  make(map[string]int),
	}

	rows, err := d.db.Query(
		`SELECT action, COUNT(*) FROM removals
		 WHERE timestamp >= ? GROUP BY action`, start)
	if err != nil {
		return nil, fmt.Errorf("query action counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var action string
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, fmt.Errorf("scan action count: %w", err)
		}
		stats.ByAction[action] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = d.db.QueryRow(
		`SELECT COALESCE(SUM(size), 0) FROM removals
		 WHERE action = ? AND timestamp >= ?`, ActionRemove, start,
	).Scan(&stats.BytesFreed)
	if err != nil {
		return nil, fmt.Errorf("query bytes freed: %w", err)
	}

	return stats, nil
}

func (d *DB) queryRemovals(query string, args ...interface{}) ([]Record, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query removals: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var errMsg *string
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Action, &r.Path, &r.Name, &r.Size, &errMsg); err != nil {
			return nil, fmt.Errorf("scan removal record: %w", err)
		}
		if errMsg != nil {
			r.ErrorMessage = *errMsg
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
