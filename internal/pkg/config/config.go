// Package config reads typed runtime settings by dotted key
// (e.g. "modules.account.otp_ttl_minutes").
package config

import (
	"io"
	"time"
)

// Config is the read side of the configuration. Missing keys return the zero
// value of the requested type.
type Config interface {
	io.Closer

	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint64(key string) uint64
	GetFloat64(key string) float64
	GetBool(key string) bool
	GetString(key string) string

	// GetSecond, GetMinute and GetHour read an integer and scale it.
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration

	// GetArray splits a comma separated value, dropping empty items.
	GetArray(key string) []string
}
