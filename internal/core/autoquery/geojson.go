package autoquery

import (
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const geometrySchema = `{
  "definitions": {
    "position": {"type": "array", "minItems": 2, "items": {"type": "number"}},
    "ring": {"type": "array", "minItems": 4, "items": {"$ref": "#/definitions/position"}},
    "line": {"type": "array", "minItems": 2, "items": {"$ref": "#/definitions/position"}},
    "point": {
      "type": "object", "required": ["type", "coordinates"],
      "properties": {"type": {"enum": ["Point"]}, "coordinates": {"$ref": "#/definitions/position"}}
    },
    "multiPoint": {
      "type": "object", "required": ["type", "coordinates"],
      "properties": {"type": {"enum": ["MultiPoint"]}, "coordinates": {"type": "array", "items": {"$ref": "#/definitions/position"}}}
    },
    "lineString": {
      "type": "object", "required": ["type", "coordinates"],
      "properties": {"type": {"enum": ["LineString"]}, "coordinates": {"$ref": "#/definitions/line"}}
    },
    "multiLineString": {
      "type": "object", "required": ["type", "coordinates"],
      "properties": {"type": {"enum": ["MultiLineString"]}, "coordinates": {"type": "array", "items": {"$ref": "#/definitions/line"}}}
    },
    "polygon": {
      "type": "object", "required": ["type", "coordinates"],
      "properties": {"type": {"enum": ["Polygon"]}, "coordinates": {"type": "array", "items": {"$ref": "#/definitions/ring"}}}
    },
    "multiPolygon": {
      "type": "object", "required": ["type", "coordinates"],
      "properties": {"type": {"enum": ["MultiPolygon"]}, "coordinates": {"type": "array", "items": {"type": "array", "items": {"$ref": "#/definitions/ring"}}}}
    },
    "collection": {
      "type": "object", "required": ["type", "geometries"],
      "properties": {"type": {"enum": ["GeometryCollection"]}, "geometries": {"type": "array", "items": {"$ref": "#"}}}
    }
  },
  "oneOf": [
    {"$ref": "#/definitions/point"},
    {"$ref": "#/definitions/multiPoint"},
    {"$ref": "#/definitions/lineString"},
    {"$ref": "#/definitions/multiLineString"},
    {"$ref": "#/definitions/polygon"},
    {"$ref": "#/definitions/multiPolygon"},
    {"$ref": "#/definitions/collection"}
  ]
}`

var (
	geoOnce   sync.Once
	geoSchema *gojsonschema.Schema
)

func schema() *gojsonschema.Schema {
	geoOnce.Do(func() {
		s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(geometrySchema))
		if err != nil {
			panic("autoquery: geometry schema: " + err.Error())
		}
		geoSchema = s
	})
	return geoSchema
}

// ValidGeoJSON reports whether raw is a GeoJSON geometry object
func ValidGeoJSON(raw string) bool {
	res, err := schema().Validate(gojsonschema.NewStringLoader(raw))
	return err == nil && res.Valid()
}
