package person

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

func TestRepositoryUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE person SET email = $1, first_name = $2, updated_at = NOW() WHERE id = $3`)).
		WithArgs("new@example.com", "Janet", int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	p := &Person{ID: 7, FirstName: "Janet", Email: "new@example.com", LastName: "ignored"}
	require.NoError(t, NewRepository(mock).Update(context.Background(), p, []string{"first_name", "email"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE person SET").
		WithArgs("Janet", int64(8)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = NewRepository(mock).Update(context.Background(), &Person{ID: 8, FirstName: "Janet"}, []string{"first_name"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRepositoryTeams(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT team.title FROM person_team").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"title"}).AddRow("Green Dot").AddRow("Tech Team"))

	teams, err := NewRepository(mock).Teams(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"Green Dot", "Tech Team"}, teams)
}

func TestRepositoryGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM person WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(columns))

	_, err = NewRepository(mock).Get(context.Background(), 5)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
