package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmforge/interact/internal/models"
	"github.com/tmforge/interact/internal/query"
)

// sortColumns maps API sort field names onto table columns. Unknown names
// fall back to the creation timestamp.
var sortColumns = map[string]string{
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
	"status":          "status",
	"direction":       "direction",
	"priority":        "priority",
	"startDateTime":   "start_at",
	"interactionDate": "start_at",
	"id":              "id",
}

// List returns the page of records matching p plus the total count of
// matches independent of the pagination window.
func (db *DB) List(p query.Params) ([]models.Interaction, int, error) {
	where, args := buildWhere(p.Filter)

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM interactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("store: count records: %w", err)
	}

	col, ok := sortColumns[p.Sort.Field]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if p.Sort.Descending {
		dir = "DESC"
	}

	// Tiebreak on id so LIMIT/OFFSET windows stay stable across pages.
	q := fmt.Sprintf(`SELECT doc FROM interactions%s ORDER BY %s %s, id ASC LIMIT ? OFFSET ?`, where, col, dir)
	rows, err := db.conn.Query(q, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list records: %w", err)
	}
	defer rows.Close()

	var out []models.Interaction
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, 0, err
		}
		var rec models.Interaction
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, 0, fmt.Errorf("store: unmarshal record: %w", err)
		}
		out = append(out, rec)
	}
	return out, total, rows.Err()
}

// buildWhere translates the filter set into a WHERE clause. Array-valued
// paths (channel, party) match via EXISTS on the side tables; the search
// term is a case-insensitive LIKE over description and reason.
func buildWhere(f query.Filter) (string, []any) {
	var conds []string
	var args []any

	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Direction != "" {
		conds = append(conds, "direction = ?")
		args = append(args, f.Direction)
	}
	if f.Priority != "" {
		conds = append(conds, "priority = ?")
		args = append(args, f.Priority)
	}
	if f.Channel != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM interaction_channels c WHERE c.interaction_id = interactions.id AND c.name = ?)")
		args = append(args, f.Channel)
	}
	if f.PartyID != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM interaction_parties p WHERE p.interaction_id = interactions.id AND p.party_id = ?)")
		args = append(args, f.PartyID)
	}
	if f.StartDate != nil {
		conds = append(conds, "start_at >= ?")
		args = append(args, f.StartDate.Unix())
	}
	if f.EndDate != nil {
		conds = append(conds, "start_at <= ?")
		args = append(args, f.EndDate.Unix())
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		conds = append(conds, "(description LIKE ? OR reason LIKE ?)")
		args = append(args, like, like)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
