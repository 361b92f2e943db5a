package health

import (
	"context"
	"errors"
	"testing"

	"order-reconciler/core/cache"
	"order-reconciler/core/database"
	storagemocks "order-reconciler/core/storage/mocks"
	whmocks "order-reconciler/core/warehouse/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type savedReport struct {
	ID   string `gorm:"primaryKey;size:36"`
	Note string `gorm:"type:text"`
}

func (savedReport) TableName() string { return "saved_reports" }

func healthyDeps(t *testing.T) (Deps, *whmocks.Executor, *storagemocks.Client) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&savedReport{}))

	exec := new(whmocks.Executor)
	client := new(storagemocks.Client)
	return Deps{
		Warehouse: exec,
		DB:        db,
		Model:     savedReport{},
		Storage:   client,
		Bucket:    "reports",
		Cache:     cache.NewMemory("test:"),
	}, exec, client
}

func TestCheck_Healthy(t *testing.T) {
	deps, exec, client := healthyDeps(t)
	exec.On("Ping", mock.Anything).Return(nil)
	client.On("BucketExists", mock.Anything, "reports").Return(true, nil)

	report := NewService(deps, zap.NewNop()).Check(context.Background())
	assert.True(t, report.Healthy())
	assert.Len(t, report.Components, 4)
	for name, c := range report.Components {
		assert.Equal(t, StatusOK, c.Status, name)
	}
	require.NotNil(t, report.Components[Database].Schema)
	assert.True(t, report.Components[Database].Schema.Matched)
}

func TestCheck_WarehouseDown(t *testing.T) {
	deps, exec, client := healthyDeps(t)
	exec.On("Ping", mock.Anything).Return(errors.New("invalid credentials"))
	client.On("BucketExists", mock.Anything, "reports").Return(true, nil)

	report := NewService(deps, zap.NewNop()).Check(context.Background())
	assert.False(t, report.Healthy())
	assert.Equal(t, StatusError, report.Components[Warehouse].Status)
	assert.Equal(t, "invalid credentials", report.Components[Warehouse].Error)
	assert.Equal(t, StatusOK, report.Components[Storage].Status)
}

func TestCheck_Disabled(t *testing.T) {
	report := NewService(Deps{}, zap.NewNop()).Check(context.Background())
	assert.True(t, report.Healthy())
	for name, c := range report.Components {
		assert.Equal(t, StatusDisabled, c.Status, name)
	}
}

func TestCheckComponent_SchemaMismatch(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	svc := NewService(Deps{DB: db, Model: savedReport{}}, zap.NewNop())
	c, err := svc.CheckComponent(context.Background(), Database)
	require.NoError(t, err)
	assert.Equal(t, StatusError, c.Status)
	assert.Contains(t, c.Error, "saved_reports")
	require.NotNil(t, c.Schema)
	assert.Equal(t, []string{"id", "note"}, c.Schema.MissingColumns)

	_, err = svc.CheckComponent(context.Background(), "kafka")
	assert.ErrorIs(t, err, ErrUnknownComponent)
}

func TestFixStorage(t *testing.T) {
	client := new(storagemocks.Client)
	client.On("BucketExists", mock.Anything, "reports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "reports", minio.MakeBucketOptions{}).Return(nil)

	svc := NewService(Deps{Storage: client, Bucket: "reports"}, zap.NewNop())
	require.NoError(t, svc.FixStorage(context.Background()))
	client.AssertCalled(t, "MakeBucket", mock.Anything, "reports", minio.MakeBucketOptions{})

	assert.ErrorIs(t, NewService(Deps{}, zap.NewNop()).FixStorage(context.Background()), ErrDisabled)
}
