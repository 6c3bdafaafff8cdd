package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"route_editor/internal/store"
)

// RouteController serves the routes API on top of a RouteStore.
type RouteController struct {
	store store.RouteStore
}

func NewRouteController(s store.RouteStore) *RouteController {
	return &RouteController{store: s}
}

// UpdateRouteInput is the body of POST /api/routes/update.
// Weight is a pointer so that 0 counts as present.
type UpdateRouteInput struct {
	FeatureID      int64    `json:"feature_id" binding:"required"`
	Weight         *float64 `json:"weight" binding:"required"`
	EditorName     string   `json:"editor_name" binding:"required"`
	EditorDateTime string   `json:"editor_date_time" binding:"required"`
}

// ListRoutes returns every route as a GeoJSON FeatureCollection.
func (rc *RouteController) ListRoutes(c *gin.Context) {
	rows, err := rc.store.ListRoutes(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("ListRoutes: failed to query routes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load routes"})
		return
	}

	fc, err := toFeatureCollection(rows)
	if err != nil {
		logrus.WithError(err).Error("ListRoutes: failed to decode route geometry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load routes"})
		return
	}

	c.JSON(http.StatusOK, fc)
}

// UpdateRoute sets weight and editor fields of a single route.
func (rc *RouteController) UpdateRoute(c *gin.Context) {
	var input UpdateRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	// A client hanging up must not abort a write that is already underway.
	n, err := rc.store.UpdateRoute(context.WithoutCancel(c.Request.Context()), store.RouteUpdate{
		ID:             input.FeatureID,
		Weight:         *input.Weight,
		EditorName:     input.EditorName,
		EditorDateTime: input.EditorDateTime,
	})
	if err != nil {
		logrus.WithError(err).WithField("feature_id", input.FeatureID).Error("UpdateRoute: failed to update route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update route"})
		return
	}

	switch {
	case n == 0:
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	case n > 1:
		// id is the primary key; more than one row means the table is not what we expect.
		logrus.WithFields(logrus.Fields{"feature_id": input.FeatureID, "rows": n}).Warn("UpdateRoute: updated more than one row")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "updated_id": input.FeatureID})
}

// toFeatureCollection decodes the GeoJSON text of each row and attaches
// the editable attributes as properties.
func toFeatureCollection(rows []store.RouteRow) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(rows))}
	for _, row := range rows {
		f, err := toFeature(row)
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, f)
	}
	return fc, nil
}

func toFeature(row store.RouteRow) (*geojson.Feature, error) {
	var g geom.T
	if row.Geometry != "" {
		if err := geojson.Unmarshal([]byte(row.Geometry), &g); err != nil {
			return nil, fmt.Errorf("route %d: %w", row.ID, err)
		}
	}
	return &geojson.Feature{
		Geometry: g,
		Properties: map[string]interface{}{
			"id":               row.ID,
			"weight":           row.Weight,
			"editor_name":      row.EditorName,
			"editor_date_time": row.EditorDateTime,
		},
	}, nil
}

// bindErrorMessage turns a binding error into a message for the client.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}

	t := reflect.TypeOf(UpdateRouteInput{})
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			name = strings.Split(sf.Tag.Get("json"), ",")[0]
		}
		fields = append(fields, name)
	}
	return "Missing required fields: " + strings.Join(fields, ", ")
}
