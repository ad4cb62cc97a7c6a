package data

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func openTestDatabase(t *testing.T) (*Database, string) {
	path := filepath.Join(t.TempDir(), "sensors.db")
	db, err := OpenDatabase("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	return db, path
}

func TestStoreAndQuery(t *testing.T) {
	db, _ := openTestDatabase(t)
	defer db.Close()

	ts := time.Date(2026, 10, 16, 12, 0, 0, 500, time.UTC)
	batch := Batch{
		TimeStamp: ts,
		Readings: []Reading{
			{Device: "acpitz-virtual-0", Label: "temp1", Value: 27.8, Units: "°C"},
			{Device: "coretemp-isa-0000", Label: "Core 0", Value: -5.2, Units: "°C"},
		},
	}
	if err := db.Store(batch); err != nil {
		t.Fatal(err)
	}

	rows, err := db.QueryRows(time.Time{}, "%", "%")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if !row.DateTime.Equal(ts) {
			t.Errorf("row %d timestamp: got %v, want %v", i, row.DateTime, ts)
		}
		if !reflect.DeepEqual(row.Reading, batch.Readings[i]) {
			t.Errorf("row %d: got %+v, want %+v", i, row.Reading, batch.Readings[i])
		}
	}
}

func TestQueryFilters(t *testing.T) {
	db, _ := openTestDatabase(t)
	defer db.Close()

	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := db.Store(Batch{
			TimeStamp: base.Add(time.Duration(i) * time.Second),
			Readings: []Reading{
				{Device: "coretemp-isa-0000", Label: "Core 0", Value: float64(40 + i), Units: "°C"},
				{Device: "nct6775-isa-0290", Label: "fan1", Value: 1200, Units: "RPM"},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	rows, err := db.QueryRows(base, "coretemp%", "%")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after %v, got %d", base, len(rows))
	}
	if rows[0].Value != 41 || rows[1].Value != 42 {
		t.Errorf("rows out of order: %+v", rows)
	}

	rows, err = db.QueryRows(time.Time{}, "%", "fan1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("expected 3 fan rows, got %d", len(rows))
	}
}

func TestReopenKeepsRows(t *testing.T) {
	db, path := openTestDatabase(t)
	err := db.Store(Batch{
		TimeStamp: time.Now(),
		Readings:  []Reading{{Device: "d", Label: "l", Value: 1, Units: "V"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = OpenDatabase("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows, err := db.QueryRows(time.Time{}, "%", "%")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 row after reopen, got %d", len(rows))
	}
}

func TestQueryBadDatetime(t *testing.T) {
	db, _ := openTestDatabase(t)
	defer db.Close()

	err := db.Store(Batch{
		TimeStamp: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		Readings:  []Reading{{Device: "d", Label: "good", Value: 1, Units: "V"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.db.Exec("INSERT INTO sensor_values (datetime, device, label, value, units) VALUES (?, ?, ?, ?, ?)",
		"2026-10-16T13:00:00 garbage", "d", "bad", 2.0, "V")
	if err != nil {
		t.Fatal(err)
	}

	rows, err := db.QueryRows(time.Time{}, "%", "%")
	if err == nil {
		t.Errorf("expected an error for a malformed datetime, got %d rows", len(rows))
	}
}

func TestUnknownDriver(t *testing.T) {
	if _, err := OpenDatabase("oracle", "x"); err == nil {
		t.Error("unknown driver should give an error")
	}
}

func TestDBDrivers(t *testing.T) {
	want := []string{"mysql", "postgres", "sqlite3"}
	if got := DBDrivers(); !reflect.DeepEqual(got, want) {
		t.Errorf("DBDrivers() = %v, want %v", got, want)
	}
}

func TestFormatTimeSortsAsText(t *testing.T) {
	a := time.Date(2026, 1, 1, 0, 0, 5, 0, time.UTC)
	b := a.Add(100 * time.Millisecond)
	if !(FormatTime(a) < FormatTime(b)) {
		t.Errorf("%s should sort before %s", FormatTime(a), FormatTime(b))
	}
	if FormatTime(a) != "2026-01-01T00:00:05.000000000Z" {
		t.Errorf("unexpected layout %s", FormatTime(a))
	}
}
