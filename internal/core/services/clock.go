package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/fedora-migrate/internal/logger"
)

// xsdDateTimeLayout renders instants the way the legacy repository does.
const xsdDateTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// formatXSDDateTime renders t as an xsd:dateTime lexical value.
func formatXSDDateTime(t time.Time) (string, error) {
	if t.IsZero() || t.Year() < 1 || t.Year() > 9999 {
		return "", fmt.Errorf("cannot represent %v as xsd:dateTime", t)
	}
	return t.Format(xsdDateTimeLayout), nil
}

// currentTimestamp returns the current time as an xsd:dateTime.
// A time that cannot be formatted is logged and reported as absent.
func currentTimestamp(now func() time.Time) (string, bool) {
	ts, err := formatXSDDateTime(now())
	if err != nil {
		logger.Error("Error converting date object to proper format: %v", err)
		return "", false
	}
	return ts, true
}
