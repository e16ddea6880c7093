package models

import (
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockSlugDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func slugCount(mock sqlmock.Sqlmock, count int64) {
	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func TestUniqueSlugNoCollision(t *testing.T) {
	db, mock, mockDB := newMockSlugDB(t)
	defer mockDB.Close()

	slugCount(mock, 0)

	result, err := uniqueSlug(db, "products", "chair", 0)
	require.NoError(t, err)
	assert.Equal(t, "chair", result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniqueSlugCollisionAppendsSuffix(t *testing.T) {
	db, mock, mockDB := newMockSlugDB(t)
	defer mockDB.Close()

	// a second "Chair" product finds the base taken and retries with the
	// year-based suffix
	slugCount(mock, 1)
	slugCount(mock, 0)

	result, err := uniqueSlug(db, "products", "chair", 0)
	require.NoError(t, err)
	assert.NotEqual(t, "chair", result)
	assert.Contains(t, result, "chair-"+strconv.Itoa(time.Now().Year()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniqueSlugExcludesSelf(t *testing.T) {
	db, mock, mockDB := newMockSlugDB(t)
	defer mockDB.Close()

	// re-saving a row keeps its slug: the row's own id is excluded from the
	// collision count
	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE slug = \$1 AND id <> \$2`).
		WithArgs("chair", 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	result, err := uniqueSlug(db, "products", "chair", 5)
	require.NoError(t, err)
	assert.Equal(t, "chair", result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
