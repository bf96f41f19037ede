package domain

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Page normaliza paginação: page >= 1, 1 <= limit <= 200 (padrão 50).
func Page(page, limit int) (int, int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return page, limit, (page - 1) * limit
}
