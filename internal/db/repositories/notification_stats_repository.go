package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// FlightNotificationCount is the per-flight tally returned by CountByFlight
type FlightNotificationCount struct {
	FlightID string `db:"flight_id" json:"flight_id"`
	Total    int64  `db:"total" json:"total"`
	Unread   int64  `db:"unread" json:"unread"`
}

// NotificationStatsRepository runs read-only aggregate queries over the
// notifications table
type NotificationStatsRepository struct {
	db *sqlx.DB
}

func NewNotificationStatsRepository(db *sqlx.DB) *NotificationStatsRepository {
	return &NotificationStatsRepository{db: db}
}

func (r *NotificationStatsRepository) UnreadCount(ctx context.Context) (int64, error) {
	var n int64
	query := r.db.Rebind(`SELECT COUNT(*) FROM notifications WHERE is_read = ?`)
	err := r.db.GetContext(ctx, &n, query, false)
	return n, err
}

func (r *NotificationStatsRepository) CountByFlight(ctx context.Context) ([]FlightNotificationCount, error) {
	const query = `
		SELECT flight_id,
		       COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN is_read THEN 0 ELSE 1 END), 0) AS unread
		FROM notifications
		WHERE flight_id IS NOT NULL
		GROUP BY flight_id
		ORDER BY flight_id`

	var out []FlightNotificationCount
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, err
	}
	return out, nil
}
