// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package data

import (
	"database/sql"
	"fmt"
	"sort"
	"time"
)

type Database struct {
	db     *sql.DB
	driver DBdriver
	insert *sql.Stmt
}

// Row is a reading as read back from the store.
type Row struct {
	DateTime time.Time
	Reading
}

var drivers map[string]DBdriver

type DBdriver interface {
	OpenDatabase(db *sql.DB) error
	Close(db *sql.DB)
	PrepareInsert(db *sql.DB) (*sql.Stmt, error)
	QueryRows(db *sql.DB, since string, device string, label string) (*sql.Rows, error)
}

func init() {
	drivers = make(map[string]DBdriver)
}

func RegisterDBDriver(name string, driver DBdriver) {
	drivers[name] = driver
}

func DBDrivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenDatabase opens the store, creates the readings table if needed and
// prepares the insert statement.
func OpenDatabase(driverName string, dsn string) (*Database, error) {
	driver, ok := drivers[driverName]
	if !ok {
		return nil, fmt.Errorf("unknown database driver %q", driverName)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := driver.OpenDatabase(db); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}

	insert, err := driver.PrepareInsert(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}

	return &Database{db, driver, insert}, nil
}

func (database *Database) Close() {
	database.insert.Close()
	database.driver.Close(database.db)
	database.db.Close()
}

// Store appends one row per reading, all carrying the batch timestamp.
func (database *Database) Store(batch Batch) error {
	tx, err := database.db.Begin()
	if err != nil {
		return err
	}

	stmt := tx.Stmt(database.insert)
	datetime := FormatTime(batch.TimeStamp)
	for _, r := range batch.Readings {
		if _, err := stmt.Exec(datetime, r.Device, r.Label, r.Value, r.Units); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s/%s: %w", r.Device, r.Label, err)
		}
	}
	return tx.Commit()
}

// QueryRows returns the rows stored after since whose device and label
// match the given LIKE patterns, oldest first. A row that can't be read
// fails the whole query.
func (database *Database) QueryRows(since time.Time, device string, label string) ([]Row, error) {
	rows, err := database.driver.QueryRows(database.db, FormatTime(since), device, label)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var datetime string
		var row Row

		if err := rows.Scan(&datetime, &row.Device, &row.Label, &row.Value, &row.Units); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row.DateTime, err = time.Parse(time.RFC3339Nano, datetime)
		if err != nil {
			return nil, fmt.Errorf("row %s/%s: bad datetime: %w", row.Device, row.Label, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
