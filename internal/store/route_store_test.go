package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGormRouteStore_QuotesTable(t *testing.T) {
	s := NewGormRouteStore(nil, `routes"; DROP TABLE routes; --`)

	assert.Contains(t, s.listQuery, `FROM "routes""; DROP TABLE routes; --"`)
	assert.Contains(t, s.listQuery, "ST_AsGeoJSON(geom)")
}

func TestNewGormRouteStore_SchemaQualifiedTable(t *testing.T) {
	s := NewGormRouteStore(nil, "public.routes")

	assert.Contains(t, s.listQuery, `FROM "public"."routes"`)
}
