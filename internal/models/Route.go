package models

import "time"

// Route is a row of the routes table. Rows are created elsewhere; this
// service only reads them and edits the three editor columns.
type Route struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	// Geometry stored natively by PostGIS. Never written by this service.
	Geom []byte `gorm:"column:geom;type:geometry;->" json:"-"`

	Weight         *float64   `json:"weight"`
	EditorName     *string    `json:"editor_name"`
	EditorDateTime *time.Time `gorm:"type:timestamptz" json:"editor_date_time"`
}
