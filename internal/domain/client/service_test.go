package client

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupClientTest(t *testing.T) *Service {
	t.Helper()

	dsn := "file:client_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Client{}))

	return NewService(db, &config.Config{})
}

func TestClientCRUD(t *testing.T) {
	svc := setupClientTest(t)

	cl, err := svc.Create(&CreateRequest{Name: "Ana", Email: "ana@example.com", Phone: "555-0101"})
	require.NoError(t, err)
	require.NotZero(t, cl.ID)

	got, err := svc.Get(cl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	phone := "555-0202"
	updated, err := svc.Update(cl.ID, &UpdateRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0202", updated.Phone)
	assert.Equal(t, "Ana", updated.Name)

	require.NoError(t, svc.Delete(cl.ID))
	_, err = svc.Get(cl.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(cl.ID), ErrNotFound)
}

func TestClientNotFound(t *testing.T) {
	svc := setupClientTest(t)

	_, err := svc.Get(999)
	assert.ErrorIs(t, err, ErrNotFound)

	name := "Luis"
	_, err = svc.Update(999, &UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}
