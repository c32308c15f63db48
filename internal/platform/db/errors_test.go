package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil))
	assert.ErrorIs(t, TranslateError(pgx.ErrNoRows), shared.ErrNotFound)
	assert.ErrorIs(t, TranslateError(&pgconn.PgError{Code: "23505"}), shared.ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, TranslateError(other))
}
