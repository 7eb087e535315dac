package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/vigiamar/operaciones-api/internal/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock
}

// The feed query must count and page on the same predicate: rows with
// cantidad 0 are invisible to both.
func TestMovementRepository_ListRecent_QueryShape(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMovementRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "armado_caja_movimientos" WHERE cantidad <> 0`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery(`SELECT \* FROM "armado_caja_movimientos" WHERE cantidad <> 0 ORDER BY fecha DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id_movimiento"}))

	movements, total, err := repo.ListRecent(utils.PaginationParams{Page: 3, Limit: 10, Offset: 20})
	require.NoError(t, err)
	require.Equal(t, int64(42), total)
	require.Empty(t, movements)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementRepository_FirstMovementTime_NoRows(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMovementRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "armado_caja_movimientos" WHERE armado_id = \$1 ORDER BY fecha ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id_movimiento"}))

	first, err := repo.FirstMovementTime(7)
	require.NoError(t, err)
	require.Nil(t, first)

	require.NoError(t, mock.ExpectationsWereMet())
}
