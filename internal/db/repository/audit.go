package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/adamscao/certauth/internal/models"
)

// AuditRepository handles audit log data access.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create creates a new audit log entry.
func (r *AuditRepository) Create(log *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (action, username, fingerprint, serial, key_id, success, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	success := 0
	if log.Success {
		success = 1
	}

	result, err := r.db.Exec(query,
		log.Action,
		log.Username,
		log.Fingerprint,
		int64(log.Serial),
		log.KeyID,
		success,
		log.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	log.ID = id
	log.Timestamp = time.Now()

	return nil
}

// List lists audit logs with optional filters.
func (r *AuditRepository) List(username string, action string, limit int) ([]*models.AuditLog, error) {
	query := `
		SELECT id, timestamp, action, username, fingerprint, serial, key_id, success, reason
		FROM audit_logs
		WHERE 1=1
	`
	args := []interface{}{}

	if username != "" {
		query += " AND username = ?"
		args = append(args, username)
	}

	if action != "" {
		query += " AND action = ?"
		args = append(args, action)
	}

	query += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	return scanAuditLogs(rows)
}

// ListFailures lists failed authentication decisions since the given time.
func (r *AuditRepository) ListFailures(since time.Time, limit int) ([]*models.AuditLog, error) {
	query := `
		SELECT id, timestamp, action, username, fingerprint, serial, key_id, success, reason
		FROM audit_logs
		WHERE success = 0 AND timestamp >= ?
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list failures: %w", err)
	}
	defer rows.Close()

	return scanAuditLogs(rows)
}

// CountByAction counts audit logs by action type.
func (r *AuditRepository) CountByAction(action string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM audit_logs
		WHERE action = ? AND timestamp >= ?
	`

	var count int
	err := r.db.QueryRow(query, action, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	return count, nil
}

// DeleteOld deletes audit logs older than the given date.
func (r *AuditRepository) DeleteOld(before time.Time) (int64, error) {
	query := `
		DELETE FROM audit_logs
		WHERE timestamp < ?
	`

	result, err := r.db.Exec(query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old audit logs: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return count, nil
}

// scanAuditLogs scans query rows into audit log records.
func scanAuditLogs(rows *sql.Rows) ([]*models.AuditLog, error) {
	var logs []*models.AuditLog

	for rows.Next() {
		log := &models.AuditLog{}
		var success int
		var serial int64
		var username, fingerprint, keyID, reason sql.NullString

		err := rows.Scan(
			&log.ID,
			&log.Timestamp,
			&log.Action,
			&username,
			&fingerprint,
			&serial,
			&keyID,
			&success,
			&reason,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}

		log.Success = success == 1
		log.Serial = uint64(serial)
		if username.Valid {
			log.Username = username.String
		}
		if fingerprint.Valid {
			log.Fingerprint = fingerprint.String
		}
		if keyID.Valid {
			log.KeyID = keyID.String
		}
		if reason.Valid {
			log.Reason = reason.String
		}

		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit logs: %w", err)
	}

	return logs, nil
}
