// Copyright © 2018 Geoff Holden <geoff@geoffholden.com>

package data

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

type mysql_driver struct {
}

func init() {
	RegisterDBDriver("mysql", mysql_driver{})
}

func (mysql mysql_driver) OpenDatabase(db *sql.DB) error {
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS sensor_values (" +
		"`datetime` varchar(64) NOT NULL," +
		"device     varchar(255) NOT NULL," +
		"label      varchar(255) NOT NULL," +
		"value      double NOT NULL," +
		"units      varchar(32) NOT NULL" +
		")"); err != nil {
		db.Close()
		return err
	}

	return nil
}

func (mysql mysql_driver) Close(db *sql.DB) {
}

func (mysql mysql_driver) PrepareInsert(db *sql.DB) (*sql.Stmt, error) {
	return db.Prepare("INSERT INTO sensor_values (`datetime`, device, label, value, units) VALUES (?, ?, ?, ?, ?)")
}

func (mysql mysql_driver) QueryRows(db *sql.DB, since string, device string, label string) (*sql.Rows, error) {
	stmt := "SELECT `datetime`,device,label,value,units FROM sensor_values " +
		"WHERE device LIKE ? AND label LIKE ? AND `datetime` > ? " +
		"ORDER BY `datetime`"
	return db.Query(stmt, device, label, since)
}
