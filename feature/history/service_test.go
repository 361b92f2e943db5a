package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"order-reconciler/core/database"
	"order-reconciler/core/reconcile"
	"order-reconciler/feature/fulfillment"
	"order-reconciler/feature/fulfillment/rules"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate())
	return NewService(repo, zap.NewNop())
}

func sampleReports() []fulfillment.PlatformReport {
	return []fulfillment.PlatformReport{
		{
			Platform: rules.Shopee,
			Shipment: reconcile.ComparisonResult{
				Status:         reconcile.SeverityWarning,
				UnmatchedCount: 1,
				Details: []reconcile.DiffRecord{
					{Key: "A002", LeftValue: 150, Diff: -150, Status: reconcile.StatusMissingRight},
				},
			},
			Return:      reconcile.ComparisonResult{Status: reconcile.SeverityOK},
			ProcessedAt: "2024-05-02T08:30:00Z",
		},
	}
}

func TestService_SaveAndGet(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, SaveRequest{TargetDate: "2024-05-01", RunBy: "ops", Results: sampleReports()})
	require.NoError(t, err)
	assert.Len(t, saved.ID, 36)
	assert.Equal(t, StatusOpen, saved.Status)
	assert.Equal(t, reconcile.SeverityWarning, saved.Overall)

	got, err := svc.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", got.TargetDate)
	assert.Equal(t, "ops", got.RunBy)
	assert.Equal(t, sampleReports(), got.Results)
	assert.WithinDuration(t, saved.RunAt, got.RunAt, time.Second)
}

func TestService_SaveValidation(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Save(context.Background(), SaveRequest{TargetDate: "05/01/2024"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, map[string]string{
		"TargetDate": "datetime",
		"Results":    "required",
	}, ValidationFields(verrs))
}

func TestService_ListNewestFirst(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	var ids []string
	for i, date := range []string{"2024-05-01", "2024-05-01", "2024-04-30"} {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		r, err := svc.Save(ctx, SaveRequest{TargetDate: date, Results: sampleReports()})
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}

	all, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{all[0].ID, all[1].ID, all[2].ID})

	byDate, err := svc.List(ctx, Filter{TargetDate: "2024-05-01", Limit: 1})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, ids[1], byDate[0].ID)
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, SaveRequest{TargetDate: "2024-05-01", Results: sampleReports()})
	require.NoError(t, err)

	note := "A002 shipped late, confirmed with warehouse"
	status := StatusResolved
	updated, err := svc.Update(ctx, saved.ID, UpdateRequest{Note: &note, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, note, updated.Note)
	assert.Equal(t, StatusResolved, updated.Status)

	resolved, err := svc.List(ctx, Filter{Status: StatusResolved})
	require.NoError(t, err)
	assert.Len(t, resolved, 1)

	bad := Status("DONE")
	_, err = svc.Update(ctx, saved.ID, UpdateRequest{Status: &bad})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	_, err = svc.Update(ctx, "missing", UpdateRequest{Note: &note})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, saved.ID))
	_, err = svc.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, saved.ID), ErrNotFound)
}

func TestService_Record(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	var rec fulfillment.Recorder = svc
	id, err := rec.Record(ctx, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "scheduler", sampleReports())
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", got.TargetDate)
	assert.Equal(t, "scheduler", got.RunBy)
}

func TestRepository_GetNotFound_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `saved_reports` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "target_date", "run_by", "run_at", "overall", "results", "note", "status"}))

	_, err = NewRepository(db).Get(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpdateUnchangedValue_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	// MySQL reports changed rows, so rewriting the current status affects none.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `saved_reports` SET `status`=\\? WHERE id = \\?").
		WithArgs("OPEN", "existing-id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT \\* FROM `saved_reports` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "target_date", "run_by", "run_at", "overall", "results", "note", "status"}).
			AddRow("existing-id", "2024-05-01", "ops", time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC), "OK", "[]", "", "OPEN"))

	svc := NewService(NewRepository(db), zap.NewNop())
	status := StatusOpen
	report, err := svc.Update(context.Background(), "existing-id", UpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "existing-id", report.ID)
	assert.Equal(t, StatusOpen, report.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
