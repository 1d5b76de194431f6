package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// Composite indexes that struct tags do not express.
var indexes = []index{
	// Reconciliation reads future and past meetings of one schedule
	{"meetings", "idx_meetings_schedule_date_time", "schedule_id, date_time"},
	// Team meeting listing
	{"meetings", "idx_meetings_team_date_time", "team_id, date_time"},
	// Active schedule lookup
	{"meeting_schedules", "idx_meeting_schedules_team_active", "team_id, active"},
}

// AddIndexes creates the composite indexes that do not exist yet
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			logrus.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.WithFields(logrus.Fields{
			"index":   idx.name,
			"table":   idx.table,
			"columns": idx.columns,
		}).Info("Created index")
	}

	return nil
}
