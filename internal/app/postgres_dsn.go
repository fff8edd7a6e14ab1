package app

import (
	"net/url"
	"strings"
)

const maxTracedQueryLength = 512

// postgresDSN tags the connection with application_name so save-slot sessions
// show up by service in pg_stat_activity. It accepts URL and key=value forms
// and returns the database name for span attributes.
func postgresDSN(raw, applicationName string) (dsn, dbName string) {
	raw = strings.TrimSpace(raw)

	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		dbName = strings.TrimPrefix(parsed.Path, "/")
		query := parsed.Query()
		if applicationName != "" && query.Get("application_name") == "" {
			query.Set("application_name", applicationName)
			parsed.RawQuery = query.Encode()
		}
		return parsed.String(), dbName
	}

	hasAppName := false
	for _, field := range strings.Fields(raw) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "dbname":
			dbName = strings.Trim(value, `"'`)
		case "application_name":
			hasAppName = true
		}
	}
	if applicationName != "" && !hasAppName {
		raw += " application_name=" + applicationName
	}
	return raw, dbName
}

// traceQuery collapses whitespace in save-slot SQL before it is attached to spans.
func traceQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > maxTracedQueryLength {
		return query[:maxTracedQueryLength] + "..."
	}
	return query
}
