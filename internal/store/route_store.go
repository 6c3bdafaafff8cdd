package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// RouteRow is one row of the list query with the geometry already
// converted to GeoJSON text by the database. Geometry is empty for NULL.
type RouteRow struct {
	ID             int64
	Geometry       string
	Weight         *float64
	EditorName     *string
	EditorDateTime *time.Time
}

// RouteUpdate carries the editable attributes of one route.
type RouteUpdate struct {
	ID             int64
	Weight         float64
	EditorName     string
	EditorDateTime string
}

// RouteStore is the storage side of the routes API.
type RouteStore interface {
	ListRoutes(ctx context.Context) ([]RouteRow, error)
	// UpdateRoute returns the number of rows it changed.
	UpdateRoute(ctx context.Context, upd RouteUpdate) (int64, error)
	Ping(ctx context.Context) error
}

// GormRouteStore runs the route statements on a pooled GORM handle.
// Each call checks out a connection for its own statement only.
type GormRouteStore struct {
	db        *gorm.DB
	table     string
	listQuery string
}

func NewGormRouteStore(db *gorm.DB, table string) *GormRouteStore {
	return &GormRouteStore{
		db:    db,
		table: table,
		listQuery: fmt.Sprintf(`SELECT
	id,
	COALESCE(ST_AsGeoJSON(geom), '') AS geometry,
	weight,
	editor_name,
	editor_date_time
FROM %s
ORDER BY id`, quoteTable(table)),
	}
}

// quoteTable quotes a possibly schema-qualified table name part by part,
// matching how GORM's Table() treats "schema.table".
func quoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

func (s *GormRouteStore) ListRoutes(ctx context.Context) ([]RouteRow, error) {
	rows := []RouteRow{}
	if err := s.db.WithContext(ctx).Raw(s.listQuery).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return rows, nil
}

func (s *GormRouteStore) UpdateRoute(ctx context.Context, upd RouteUpdate) (int64, error) {
	res := s.db.WithContext(ctx).
		Table(s.table).
		Where("id = ?", upd.ID).
		Updates(map[string]interface{}{
			"weight":           upd.Weight,
			"editor_name":      upd.EditorName,
			"editor_date_time": upd.EditorDateTime,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update route %d: %w", upd.ID, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormRouteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
