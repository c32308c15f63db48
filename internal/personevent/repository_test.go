package personevent

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

func TestRepositorySaveUpserts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO person_event (person_id,year,ignore_mvr,asset_authorized) VALUES ($1,$2,$3,$4) `+
			`ON CONFLICT (person_id, year) DO UPDATE SET ignore_mvr = EXCLUDED.ignore_mvr, asset_authorized = EXCLUDED.asset_authorized RETURNING id`)).
		WithArgs(int64(7), 2024, true, false).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(55)))

	pe := &PersonEvent{PersonID: 7, Year: 2024, IgnoreMVR: true}
	require.NoError(t, NewRepository(mock).Save(context.Background(), pe, []string{"ignore_mvr", "asset_authorized"}))
	assert.EqualValues(t, 55, pe.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM person_event WHERE`).
		WithArgs(int64(7), 2024).
		WillReturnRows(pgxmock.NewRows(columns))

	_, err = NewRepository(mock).Get(context.Background(), 7, 2024)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
