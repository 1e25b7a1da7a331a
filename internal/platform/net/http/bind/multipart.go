package bind

import (
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	perr "villagevisits/internal/platform/errors"
)

// IsMultipart reports whether r carries a multipart/form-data body
func IsMultipart(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "multipart/form-data"
}

// ParseMultipart decodes the form values of a multipart body into T and validates it like ParseJSON
// nested objects arrive as "parent[child]", "parent.child" or a JSON encoded "parent" value.
// fileField names the optional file part, the returned header is nil when it is absent.
func ParseMultipart[T any](r *http.Request, fileField string, maxBytes int64) (T, *multipart.FileHeader, error) {
	var zero T
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if r.ContentLength > maxBytes {
		return zero, nil, perr.Newf(perr.ErrorCodeTooLarge, "request body too large")
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return zero, nil, perr.Wrap(err, perr.ErrorCodeTooLarge, "request body too large")
		}
		return zero, nil, perr.InvalidArgf("invalid multipart body: %v", err)
	}

	raw, err := json.Marshal(formDocument(r.MultipartForm.Value))
	if err != nil {
		return zero, nil, perr.JSONErrf("invalid form: %v", err)
	}
	var dst T
	if err := json.Unmarshal(raw, &dst); err != nil {
		return zero, nil, perr.JSONErrf("invalid form: %v", err)
	}
	if err := Validate(dst); err != nil {
		return zero, nil, err
	}

	var fh *multipart.FileHeader
	if fileField != "" {
		if files := r.MultipartForm.File[fileField]; len(files) > 0 {
			fh = files[0]
		}
	}
	return dst, fh, nil
}

// formDocument folds flat form keys into a JSON shaped document, first value wins
func formDocument(values map[string][]string) map[string]any {
	doc := map[string]any{}
	for key, vs := range values {
		if len(vs) == 0 {
			continue
		}
		v := vs[0]
		parent, child, nested := splitKey(key)
		if !nested {
			if t := strings.TrimSpace(v); strings.HasPrefix(t, "{") && json.Valid([]byte(t)) {
				if _, taken := doc[key].(map[string]any); !taken {
					doc[key] = json.RawMessage(t)
				}
				continue
			}
			doc[key] = v
			continue
		}
		sub, ok := doc[parent].(map[string]any)
		if !ok {
			sub = map[string]any{}
			doc[parent] = sub
		}
		sub[child] = v
	}
	return doc
}

func splitKey(key string) (parent, child string, nested bool) {
	if i := strings.IndexByte(key, '['); i > 0 && strings.HasSuffix(key, "]") {
		return key[:i], key[i+1 : len(key)-1], true
	}
	if i := strings.IndexByte(key, '.'); i > 0 && i < len(key)-1 {
		return key[:i], key[i+1:], true
	}
	return key, "", false
}
