package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tmforge/interact/internal/apperr"
	"github.com/tmforge/interact/internal/models"
)

// Insert persists a new record: the JSON document, its filter columns, and
// the channel/party side tables, all within one transaction.
func (db *DB) Insert(rec *models.Interaction) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: marshal record: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO interactions (id, status, direction, priority, start_at, description, reason, created_at, updated_at, doc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Status, rec.Direction, rec.Priority,
		rec.InteractionDate.StartDateTime.Unix(),
		rec.Description, rec.Reason,
		rec.CreatedAt.Unix(), rec.UpdatedAt.Unix(), string(doc))
	if err != nil {
		return fmt.Errorf("store: insert record: %w", err)
	}

	if err := writeRefs(tx, rec); err != nil {
		return err
	}
	return tx.Commit()
}

// Update replaces the stored document for rec.ID and rebuilds its side
// tables. Returns apperr.ErrNotFound when no record matches.
func (db *DB) Update(rec *models.Interaction) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: marshal record: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.Exec(`
		UPDATE interactions
		SET status = ?, direction = ?, priority = ?, start_at = ?,
		    description = ?, reason = ?, updated_at = ?, doc = ?
		WHERE id = ?
	`, rec.Status, rec.Direction, rec.Priority,
		rec.InteractionDate.StartDateTime.Unix(),
		rec.Description, rec.Reason,
		rec.UpdatedAt.Unix(), string(doc), rec.ID)
	if err != nil {
		return fmt.Errorf("store: update record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}

	if err := writeRefs(tx, rec); err != nil {
		return err
	}
	return tx.Commit()
}

// Get returns the record matching id, or apperr.ErrNotFound.
func (db *DB) Get(id string) (*models.Interaction, error) {
	var doc string
	err := db.conn.QueryRow(`SELECT doc FROM interactions WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get record: %w", err)
	}
	var rec models.Interaction
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, fmt.Errorf("store: unmarshal record: %w", err)
	}
	return &rec, nil
}

// Delete removes the record and its side-table rows. Returns
// apperr.ErrNotFound when no record matches.
func (db *DB) Delete(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.Exec(`DELETE FROM interactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	_, _ = tx.Exec(`DELETE FROM interaction_channels WHERE interaction_id = ?`, id)
	_, _ = tx.Exec(`DELETE FROM interaction_parties WHERE interaction_id = ?`, id)

	return tx.Commit()
}

// writeRefs replaces the channel and party rows for rec: delete old then
// bulk insert, so the side tables always mirror the stored document.
func writeRefs(tx *sql.Tx, rec *models.Interaction) error {
	_, _ = tx.Exec(`DELETE FROM interaction_channels WHERE interaction_id = ?`, rec.ID)
	_, _ = tx.Exec(`DELETE FROM interaction_parties WHERE interaction_id = ?`, rec.ID)

	if len(rec.RelatedChannel) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO interaction_channels (interaction_id, name) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("store: prepare channel insert: %w", err)
		}
		defer stmt.Close()
		for _, rc := range rec.RelatedChannel {
			if rc.Channel.Name == "" {
				continue
			}
			if _, err := stmt.Exec(rec.ID, string(rc.Channel.Name)); err != nil {
				return fmt.Errorf("store: insert channel: %w", err)
			}
		}
	}

	if len(rec.RelatedParty) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO interaction_parties (interaction_id, party_id) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("store: prepare party insert: %w", err)
		}
		defer stmt.Close()
		for _, rp := range rec.RelatedParty {
			if rp.PartyOrPartyRole.ID == "" {
				continue
			}
			if _, err := stmt.Exec(rec.ID, rp.PartyOrPartyRole.ID); err != nil {
				return fmt.Errorf("store: insert party: %w", err)
			}
		}
	}

	return nil
}
