// Copyright © 2018 Geoff Holden <geoff@geoffholden.com>

package data

import (
	"database/sql"

	_ "github.com/lib/pq"
)

type postgres_driver struct {
}

func init() {
	RegisterDBDriver("postgres", postgres_driver{})
}

func (postgres postgres_driver) OpenDatabase(db *sql.DB) error {
	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS sensor_values (
		datetime    text NOT NULL,
		device      text NOT NULL,
		label       text NOT NULL,
		value       double precision NOT NULL,
		units       text NOT NULL
	)`); err != nil {
		db.Close()
		return err
	}

	return nil
}

func (postgres postgres_driver) Close(db *sql.DB) {
}

func (postgres postgres_driver) PrepareInsert(db *sql.DB) (*sql.Stmt, error) {
	return db.Prepare(`INSERT INTO sensor_values (
		datetime,
		device,
		label,
		value,
		units
	) VALUES ($1, $2, $3, $4, $5)`)
}

func (postgres postgres_driver) QueryRows(db *sql.DB, since string, device string, label string) (*sql.Rows, error) {
	stmt := `SELECT datetime,device,label,value,units FROM sensor_values
		WHERE
			device LIKE $1 AND
			label LIKE $2 AND
			datetime > $3
		ORDER BY datetime`
	return db.Query(stmt, device, label, since)
}
