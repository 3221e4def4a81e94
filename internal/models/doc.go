// Package models reports which translation directions the configured
// backend can serve, either with a direct opus-mt model or by chaining
// through English.
package models
