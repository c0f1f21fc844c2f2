package backup

import (
	"context"

	"lifelog/internal/core"
)

// Row is one spreadsheet row, ready for the Sheets values API.
type Row []any

// Appender writes one record row to the backup sheet of its domain.
type Appender interface {
	Append(ctx context.Context, domain core.Domain, row Row) (rowRef string, err error)
}
