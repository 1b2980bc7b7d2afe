package handler

import (
	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/utils/log"

	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

// MigrateReport is the per table outcome of a store migration.
type MigrateReport struct {
	Table    string
	Inserted int
	Total    int
}

// MigrateStore copies every table from src into dst, best effort.
//
// For each table only the columns present in both the source rows and the
// destination schema are copied, the rest is dropped silently so older
// schemas migrate cleanly. Rows violating destination constraints are
// counted as skipped, a single bad row never aborts the run. Foreign key
// enforcement on dst is suspended for the duration because table order does
// not guarantee parent rows arrive before children.
func MigrateStore(src *gorm.DB, dst *gorm.DB) ([]*MigrateReport, error) {
	restore, err := suspendForeignKeys(dst)
	if err != nil {
		return nil, err
	}
	defer restore()

	var ret []*MigrateReport
	for _, table := range db.Tables {
		report, err := migrateTable(src, dst, table)
		if err != nil {
			return ret, err
		}
		ret = append(ret, report)
	}
	return ret, nil
}

func migrateTable(src *gorm.DB, dst *gorm.DB, table string) (*MigrateReport, error) {
	report := &MigrateReport{Table: table}

	columns, err := dst.Migrator().ColumnTypes(table)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	dstCols := make(map[string]bool, len(columns))
	for _, c := range columns {
		dstCols[c.Name()] = true
	}

	var rows []map[string]any
	if err := src.Table(table).Find(&rows).Error; err != nil {
		return nil, tracerr.Wrap(err)
	}
	report.Total = len(rows)

	for _, row := range rows {
		insert := make(map[string]any, len(row))
		for k, v := range row {
			if dstCols[k] {
				insert[k] = v
			}
		}
		if len(insert) == 0 {
			continue
		}
		if err := dst.Table(table).Create(insert).Error; err != nil {
			// duplicate keys and other per row failures are skipped
			log.NewEntry(tracerr.Wrap(err)).WithField("table", table).Debug("Row skipped")
			continue
		}
		report.Inserted++
	}
	return report, nil
}

// suspendForeignKeys turns FK enforcement off on conn and returns the
// restore function.
func suspendForeignKeys(conn *gorm.DB) (func(), error) {
	var off, on string
	switch conn.Dialector.Name() {
	case "sqlite":
		off, on = "PRAGMA foreign_keys = OFF", "PRAGMA foreign_keys = ON"
	case "mysql":
		off, on = "SET FOREIGN_KEY_CHECKS = 0", "SET FOREIGN_KEY_CHECKS = 1"
	case "postgres":
		off, on = "SET session_replication_role = replica", "SET session_replication_role = DEFAULT"
	default:
		return func() {}, nil
	}
	if err := conn.Exec(off).Error; err != nil {
		return nil, tracerr.Wrap(err)
	}
	return func() {
		if err := conn.Exec(on).Error; err != nil {
			log.NewEntry(err).Error("Failed to restore foreign key checks")
		}
	}, nil
}
