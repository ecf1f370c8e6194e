package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradeflow/gradeflow/internal/common"
	"github.com/gradeflow/gradeflow/internal/model"
)

func setupTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := setupTestStorage(t)
	assert.NoError(t, store.Migrate(context.Background()))
}

func TestSaveAndGetStudent(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	student := &model.Student{
		ID:                "s1",
		FirstName:         "Ada",
		LastName:          "Lovelace",
		ExternalStudentID: "ext-1",
	}
	require.NoError(t, store.SaveStudent(ctx, student))

	got, err := store.GetStudent(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, student, got)
}

func TestSaveStudentUpserts(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStudent(ctx, &model.Student{ID: "s1", FirstName: "Ada", LastName: "Lovelace"}))
	require.NoError(t, store.SaveStudent(ctx, &model.Student{ID: "s1", FirstName: "Ada", LastName: "King", ExternalStudentID: "ext-1"}))

	got, err := store.GetStudent(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "King", got.LastName)
	assert.Equal(t, "ext-1", got.ExternalStudentID)

	students, err := store.ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestSaveStudentValidation(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	assert.Error(t, store.SaveStudent(ctx, nil))
	assert.Error(t, store.SaveStudent(ctx, &model.Student{FirstName: "Ada"}))
}

func TestGetStudentNotFound(t *testing.T) {
	store := setupTestStorage(t)

	_, err := store.GetStudent(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListStudentsOrdersByName(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStudent(ctx, &model.Student{ID: "s1", FirstName: "Grace", LastName: "Hopper"}))
	require.NoError(t, store.SaveStudent(ctx, &model.Student{ID: "s2", FirstName: "Alan", LastName: "Turing"}))
	require.NoError(t, store.SaveStudent(ctx, &model.Student{ID: "s3", FirstName: "Ada", LastName: "Hopper"}))

	students, err := store.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 3)

	assert.Equal(t, "s3", students[0].ID) // Ada Hopper
	assert.Equal(t, "s1", students[1].ID) // Grace Hopper
	assert.Equal(t, "s2", students[2].ID) // Alan Turing
}

func TestListStudentsEmpty(t *testing.T) {
	store := setupTestStorage(t)

	students, err := store.ListStudents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestDeleteStudent(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStudent(ctx, &model.Student{ID: "s1", FirstName: "Ada", LastName: "Lovelace"}))
	require.NoError(t, store.DeleteStudent(ctx, "s1"))

	_, err := store.GetStudent(ctx, "s1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.DeleteStudent(ctx, "s1"))
}
