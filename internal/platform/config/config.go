// Package config reads typed settings from the environment under a key prefix
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"villagevisits/internal/platform/logger"
)

// Conf reads env vars under a prefix, New() reads them unprefixed
type Conf struct{ prefix string }

func New() Conf { return Conf{} }

// Prefix scopes c further, New().Prefix("MAIL_").MayInt("PORT", 587) reads MAIL_PORT
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) get(key string) (name, val string) {
	name = c.prefix + key
	return name, strings.TrimSpace(os.Getenv(name))
}

// may parses key, an unset key gives def and so does a bad value, with a warning
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	name, s := c.get(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", name).Str("value", s).Interface("default", def).Msg("invalid env value, using default")
		return def
	}
	return v
}

func (c Conf) missing(name string) {
	logger.Get().Panic().Str("key", name).Msg("missing required env")
}

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	name, s := c.get(key)
	if s == "" {
		c.missing(name)
	}
	return s
}

// Require panics on the first unset key
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if name, s := c.get(k); s == "" {
			c.missing(name)
		}
	}
}

func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, error) { return s, nil })
}

func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration takes Go durations like 250ms or 2s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits on commas and drops blanks, all blank gives def
func (c Conf) MayCSV(key string, def []string) []string {
	_, s := c.get(key)
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum panics when the value is set but not one of allowed, case insensitive
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	name, s := c.get(key)
	if s == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return s
		}
	}
	logger.Get().Panic().Str("key", name).Str("value", s).Strs("allowed", allowed).Msg("invalid env value")
	return ""
}
