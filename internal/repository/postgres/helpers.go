package postgres

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/cockroachdb/errors"
	"github.com/jurisflow/jurisflow/internal/types"
)

// isUniqueViolation reports whether the error is a postgres unique
// constraint violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// isNoRows reports whether the error means the query matched nothing
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// orderClause builds an ORDER BY fragment from the filter, restricted
// to the allowed column set. Anything outside the whitelist falls back
// to created_at so user input can never reach the SQL text.
func orderClause(filter types.BaseFilter, allowed map[string]bool) string {
	sort := filter.GetSort()
	if !allowed[sort] {
		sort = "created_at"
	}
	order := "DESC"
	if filter.GetOrder() == "asc" {
		order = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", sort, order)
}

// paginationClause builds LIMIT/OFFSET from the filter. Unlimited
// filters get no LIMIT.
func paginationClause(filter types.BaseFilter) string {
	if filter.IsUnlimited() {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", filter.GetLimit(), filter.GetOffset())
}

// searchPattern wraps a sanitized term for an escaped ILIKE match
func searchPattern(term string) string {
	return "%" + types.SanitizeSearchTerm(term) + "%"
}
