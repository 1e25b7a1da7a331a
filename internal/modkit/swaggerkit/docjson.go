package swaggerkit

import (
	"encoding/json"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"villagevisits/internal/core/version"

	"github.com/go-chi/chi/v5"
)

// BasePath is where the versioned API is mounted
const BasePath = "/api/v1"

var pathParam = regexp.MustCompile(`\{([^}:]+)(:[^}]*)?\}`)

// serveDocJSON renders the document from whatever is mounted on mux at request time
func serveDocJSON(mux http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Document(mux))
	}
}

// Document builds an OpenAPI 3.0 document from the chi routes under BasePath
// a mux that is not a chi router yields an empty paths object
func Document(mux http.Handler) map[string]any {
	paths := map[string]any{}
	if routes, ok := mux.(chi.Routes); ok {
		_ = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if !strings.HasPrefix(route, BasePath+"/") {
				return nil
			}
			p := strings.TrimPrefix(route, BasePath)
			if len(p) > 1 {
				p = strings.TrimSuffix(p, "/")
			}
			params := pathParams(p)
			p = pathParam.ReplaceAllString(p, "{$1}")

			item, _ := paths[p].(map[string]any)
			if item == nil {
				item = map[string]any{}
				paths[p] = item
			}
			item[strings.ToLower(method)] = operation(method, p, params)
			return nil
		})
	}

	info := version.Info()
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "Village Visits API",
			"version": info.Version,
		},
		"servers":    []any{map[string]any{"url": BasePath}},
		"paths":      paths,
		"security":   []any{map[string]any{"BearerAuth": []any{}}},
		"components": components(),
	}
}

func operation(method, path string, params []string) map[string]any {
	tag := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
	op := map[string]any{
		"tags":        []any{tag},
		"operationId": strings.ToLower(method) + strings.NewReplacer("/", "_", "{", "", "}", "").Replace(path),
		"responses": map[string]any{
			"200":     map[string]any{"description": "OK", "content": envelope("#/components/schemas/Envelope")},
			"default": map[string]any{"description": "Error", "content": envelope("#/components/schemas/ErrorResponse")},
		},
	}
	if len(params) > 0 {
		list := make([]any, 0, len(params))
		for _, name := range params {
			list = append(list, map[string]any{
				"name": name, "in": "path", "required": true,
				"schema": map[string]any{"type": "string", "format": "uuid"},
			})
		}
		op["parameters"] = list
	}
	return op
}

func pathParams(p string) []string {
	var out []string
	for _, m := range pathParam.FindAllStringSubmatch(p, -1) {
		out = append(out, m[1])
	}
	sort.Strings(out)
	return out
}

func envelope(ref string) map[string]any {
	return map[string]any{"application/json": map[string]any{"schema": map[string]any{"$ref": ref}}}
}

// components holds the wire envelopes shared by every operation
func components() map[string]any {
	return map[string]any{
		"securitySchemes": map[string]any{
			"BearerAuth": map[string]any{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
		},
		"schemas": map[string]any{
			"Envelope": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status_code": map[string]any{"type": "integer", "format": "int32"},
					"status":      map[string]any{"type": "string"},
					"request_id":  map[string]any{"type": "string"},
					"data":        map[string]any{},
				},
				"required": []any{"status_code", "status"},
			},
			"FieldError": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"field":   map[string]any{"type": "string"},
					"message": map[string]any{"type": "string"},
				},
			},
			"ErrorResponse": map[string]any{
				"type":        "object",
				"description": "Standard error response",
				"properties": map[string]any{
					"status_code": map[string]any{"type": "integer", "format": "int32"},
					"status":      map[string]any{"type": "string"},
					"error":       map[string]any{"type": "string"},
					"request_id":  map[string]any{"type": "string"},
					"errors": map[string]any{
						"type":  "array",
						"items": map[string]any{"$ref": "#/components/schemas/FieldError"},
					},
				},
				"required": []any{"status_code", "status"},
			},
		},
	}
}
