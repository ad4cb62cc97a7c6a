package data

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // Load SQLite DB driver
)

type sqlite_driver struct {
}

func init() {
	RegisterDBDriver("sqlite3", sqlite_driver{})
}

func (sqlite sqlite_driver) OpenDatabase(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS sensor_values (
		datetime    TEXT NOT NULL,
		device      TEXT NOT NULL,
		label       TEXT NOT NULL,
		value       REAL NOT NULL,
		units       TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return err
	}

	return nil
}

func (sqlite sqlite_driver) Close(db *sql.DB) {
}

func (sqlite sqlite_driver) PrepareInsert(db *sql.DB) (*sql.Stmt, error) {
	return db.Prepare(`INSERT INTO sensor_values (
		datetime,
		device,
		label,
		value,
		units
	) VALUES (?, ?, ?, ?, ?)`)
}

func (sqlite sqlite_driver) QueryRows(db *sql.DB, since string, device string, label string) (*sql.Rows, error) {
	stmt := `SELECT datetime,device,label,value,units FROM sensor_values
		WHERE
			device LIKE ? AND
			label LIKE ? AND
			datetime > ?
		ORDER BY datetime`
	return db.Query(stmt, device, label, since)
}
