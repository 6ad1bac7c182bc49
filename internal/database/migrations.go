package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what AutoMigrate
// derives from struct tags. Postgres only; the existence check uses
// pg_indexes.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task list/filter paths
		{"tasks", "idx_tasks_org_assignee", "organization_id, assignee_id"},
		{"tasks", "idx_tasks_created_at", "created_at"},
		{"tasks", "idx_tasks_status", "status"},

		// Ordered project listing
		{"project_tasks", "idx_project_tasks_project_position", "project_id, position"},

		// Membership lookups by either side of the pair
		{"organization_members", "idx_org_members_user_id", "user_id"},

		// Audit trail reads by entity
		{"activity_logs", "idx_activity_logs_created_at", "created_at"},

		// Comment thread loads
		{"comments", "idx_comments_task_created", "task_id, created_at"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
