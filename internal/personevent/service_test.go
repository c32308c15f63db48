package personevent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/restapi"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

type rowKey struct {
	personID int64
	year     int
}

type stubRepo struct {
	rows   map[rowKey]*PersonEvent
	saved  []string
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{rows: map[rowKey]*PersonEvent{}, nextID: 100}
}

func (s *stubRepo) Get(ctx context.Context, personID int64, year int) (*PersonEvent, error) {
	pe, ok := s.rows[rowKey{personID, year}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *pe
	return &cp, nil
}

func (s *stubRepo) Save(ctx context.Context, pe *PersonEvent, fields []string) error {
	if pe.ID == 0 {
		s.nextID++
		pe.ID = s.nextID
	}
	s.saved = fields
	cp := *pe
	s.rows[rowKey{pe.PersonID, pe.Year}] = &cp
	return nil
}

type actor struct {
	id    int64
	roles filters.RoleSet
}

func (a actor) RequesterID() int64     { return a.id }
func (a actor) Roles() filters.RoleSet { return a.roles }

func as(id int64, roles ...filters.Role) filters.Requester {
	return actor{id: id, roles: filters.NewRoleSet(roles...)}
}

func newService(repo *stubRepo) *Service {
	svc := NewService(repo, restapi.NewCodec(filters.DefaultRegistry()), nil)
	svc.now = func() time.Time { return time.Date(2024, 9, 2, 10, 30, 0, 0, time.UTC) }
	return svc
}

func TestGetBlankRecord(t *testing.T) {
	svc := newService(newStubRepo())
	doc, err := svc.Get(context.Background(), as(7), 7, 2024)
	require.NoError(t, err)
	pid, _ := doc.Get("person_id")
	assert.EqualValues(t, 7, pid)
	year, _ := doc.Get("year")
	assert.EqualValues(t, 2024, year)
	assert.False(t, doc.Has("lms_course_id"))
}

func TestLMSVisibleToAdminOnly(t *testing.T) {
	repo := newStubRepo()
	repo.rows[rowKey{7, 2024}] = &PersonEvent{ID: 1, PersonID: 7, Year: 2024, LMSCourseID: "c-1"}
	svc := newService(repo)

	doc, err := svc.Get(context.Background(), as(1, filters.RoleAdmin), 7, 2024)
	require.NoError(t, err)
	assert.True(t, doc.Has("lms_course_id"))

	doc, err = svc.Get(context.Background(), as(7), 7, 2024)
	require.NoError(t, err)
	assert.False(t, doc.Has("lms_course_id"))
}

func TestOwnerWritesOnlyOwnerGroups(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	_, err := svc.Update(context.Background(), as(7), 7, 2024,
		[]byte(`{"person_event":{"ignore_mvr":true,"asset_authorized":true,"may_request_stickers":true,"timesheet_confirmed":true}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"ignore_mvr", "timesheet_confirmed", "timesheet_confirmed_at"}, repo.saved)
	row := repo.rows[rowKey{7, 2024}]
	require.NotNil(t, row)
	assert.True(t, row.IgnoreMVR)
	assert.False(t, row.AssetAuthorized)
	assert.False(t, row.MayRequestStickers)
	assert.True(t, row.TimesheetConfirmedAt.Valid)
}

func TestFirstWriteByOtherPersonIsNotOwnership(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	_, err := svc.Update(context.Background(), as(9), 7, 2024,
		[]byte(`{"person_event":{"ignore_mvr":true}}`))
	require.NoError(t, err)
	assert.Nil(t, repo.saved)
	assert.Empty(t, repo.rows)
}

func TestAdminAndHQWrites(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	_, err := svc.Update(context.Background(), as(1, filters.RoleAdmin), 7, 2024,
		[]byte(`{"person_event":{"asset_authorized":true,"sandman_affidavit":true}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"sandman_affidavit", "asset_authorized"}, repo.saved)

	_, err = svc.Update(context.Background(), as(2, filters.RoleEventManagement), 7, 2024,
		[]byte(`{"person_event":{"asset_authorized":false,"sandman_affidavit":false}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"asset_authorized"}, repo.saved)
	assert.True(t, repo.rows[rowKey{7, 2024}].SandmanAffidavit)
}

func TestUnconfirmClearsTimestamp(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	ctx := context.Background()
	_, err := svc.Update(ctx, as(7), 7, 2024, []byte(`{"person_event":{"timesheet_confirmed":true}}`))
	require.NoError(t, err)
	_, err = svc.Update(ctx, as(7), 7, 2024, []byte(`{"person_event":{"timesheet_confirmed":false}}`))
	require.NoError(t, err)
	assert.False(t, repo.rows[rowKey{7, 2024}].TimesheetConfirmedAt.Valid)

	_, err = svc.Update(ctx, nil, 7, 2024, []byte(`{"person_event":{}}`))
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}
