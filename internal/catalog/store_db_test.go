package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{"id", "title", "price", "description", "category", "image", "rating_rate", "rating_count"}

func setupDB(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresStore(mock), mock
}

func TestPostgresStore_List(t *testing.T) {
	s, mock := setupDB(t)

	rows := pgxmock.NewRows(productCols).
		AddRow(1, "Backpack", "109.95", "d", "men's clothing", "https://img/1.jpg", 3.9, 120).
		AddRow(2, "T-Shirt", "22.30", "d", "men's clothing", "https://img/2.jpg", 4.1, 259)
	mock.ExpectQuery("SELECT (.+) FROM products").WillReturnRows(rows)

	got, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Backpack", got[0].Title)
	assert.Equal(t, "109.95", got[0].Price.String())
	assert.Equal(t, 259, got[1].Rating.Count)
	assert.InDelta(t, 4.1, got[1].Rating.Rate, 1e-9)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListQueryError(t *testing.T) {
	s, mock := setupDB(t)
	mock.ExpectQuery("SELECT (.+) FROM products").WillReturnError(errors.New("connection reset"))

	_, err := s.List(context.Background())
	assert.ErrorContains(t, err, "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get(t *testing.T) {
	s, mock := setupDB(t)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(1, "Backpack", "109.95", "d", "men's clothing", "https://img/1.jpg", 3.9, 120))

	p, ok, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "109.95", p.Price.String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetNotFound(t *testing.T) {
	s, mock := setupDB(t)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
		WithArgs(7).
		WillReturnError(pgx.ErrNoRows)

	_, ok, err := s.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_BadPrice(t *testing.T) {
	s, mock := setupDB(t)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(1, "Backpack", "NaN", "d", "c", "https://img/1.jpg", 3.9, 120))

	_, _, err := s.Get(context.Background(), 1)
	assert.Error(t, err)
}

func TestPostgresStore_Ping(t *testing.T) {
	s, mock := setupDB(t)
	mock.ExpectPing()

	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
