package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/domain"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), domain.ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"})), domain.ErrDuplicate)

	other := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, other, translate(other))

	boom := errors.New("boom")
	assert.Equal(t, boom, translate(boom))
}
