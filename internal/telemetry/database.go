package telemetry

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

// OpenDB opens a *sql.DB whose queries are traced. driverName is "postgres" (lib/pq)
// or "sqlite3".
func OpenDB(driverName, dsn string) (*sql.DB, error) {
	var system attribute.KeyValue
	switch driverName {
	case "postgres":
		system = semconv.DBSystemPostgreSQL
	case "sqlite3":
		system = semconv.DBSystemKey.String("sqlite")
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driverName)
	}

	return otelsql.Open(driverName, dsn,
		otelsql.WithAttributes(system),
		otelsql.WithSpanOptions(otelsql.SpanOptions{OmitConnResetSession: true, OmitRows: true}),
	)
}
