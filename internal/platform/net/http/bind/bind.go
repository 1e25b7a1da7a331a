// Package bind decodes request bodies and validates them with english,
// per field messages
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	perr "villagevisits/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps bodies when the caller gives no limit
const DefaultMaxBytes = 5 << 20

var (
	nidRe   = regexp.MustCompile(`^\d{16}$`)
	phoneRe = regexp.MustCompile(`^(\d{1,3})?\d{1,14}$`)
)

type checker struct {
	v     *validator.Validate
	trans ut.Translator
}

// domain tags and their messages, {0} is the field
var tags = []struct {
	tag  string
	ok   func(string) bool
	text string
}{
	{"nid", nidRe.MatchString, "{0} must be a 16 digit national id number"},
	{"phone", phoneRe.MatchString, "{0} must be a valid phone number"},
	{"password", StrongPassword, "{0} must be at least 8 characters with an uppercase letter, a lowercase letter and a digit"},
}

var instance = sync.OnceValue(func() *checker {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	translate(v, trans, "min", "{0} must be at least {1}", true)
	translate(v, trans, "max", "{0} must be at most {1}", true)
	for _, t := range tags {
		ok := t.ok
		_ = v.RegisterValidation(t.tag, func(fl validator.FieldLevel) bool { return ok(fl.Field().String()) })
		translate(v, trans, t.tag, t.text, false)
	}
	return &checker{v: v, trans: trans}
})

// jsonName makes messages and details use the wire name of a field
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		name, _, _ = strings.Cut(f.Tag.Get("form"), ",")
	}
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func translate(v *validator.Validate, trans ut.Translator, tag, text string, withParam bool) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			params := []string{fe.Field()}
			if withParam {
				params = append(params, fe.Param())
			}
			msg, _ := t.T(tag, params...)
			return msg
		},
	)
}

// StrongPassword wants 8 or more characters with an upper, a lower and a digit
func StrongPassword(s string) bool {
	var upper, lower, digit bool
	n := 0
	for _, r := range s {
		n++
		upper = upper || unicode.IsUpper(r)
		lower = lower || unicode.IsLower(r)
		digit = digit || unicode.IsDigit(r)
	}
	return n >= 8 && upper && lower && digit
}

// ParseJSON decodes one JSON value into T and validates it. Unknown fields
// are dropped. An empty body is a zero T for GET and DELETE and a JSON error
// otherwise, trailing data after the value is rejected.
func ParseJSON[T any](r *http.Request, maxBytes ...int64) (T, error) {
	var dst T
	limit := int64(DefaultMaxBytes)
	if len(maxBytes) > 0 && maxBytes[0] > 0 {
		limit = maxBytes[0]
	}
	body := http.MaxBytesReader(nil, r.Body, limit)
	defer body.Close()

	dec := json.NewDecoder(body)
	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			return dst, perr.Wrap(err, perr.ErrorCodeTooLarge, "request body too large")
		case errors.Is(err, io.EOF):
			if r.Method == http.MethodGet || r.Method == http.MethodDelete {
				return dst, nil
			}
			return dst, perr.JSONErrf("empty body")
		}
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return dst, perr.JSONErrf("unexpected trailing data")
	}
	return dst, Validate(dst)
}

// Validate checks v's validate tags, every failing field becomes one detail
// of a Validation error. Non struct values pass.
func Validate(v any) error {
	c := instance()
	err := c.v.Struct(v)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// nil, or v is not a struct and has nothing to check
		return nil
	}
	details := make([]perr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		d := perr.FieldError{Field: fe.Field(), Message: fe.Translate(c.trans)}
		if fe.Tag() != "password" {
			d.Value = fe.Value()
		}
		details = append(details, d)
	}
	return perr.WithDetails(perr.Validationf("%s", details[0].Message), details...)
}
