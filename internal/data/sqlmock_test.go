package data

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/reelbase/catalog/internal/biz"
)

// newMockDB opens gorm's postgres dialect over a sqlmock connection so the
// tests can assert the SQL the predicates actually render.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return db, mock
}

func TestMovieWhereRendersOneConjunction(t *testing.T) {
	db, mock := newMockDB(t)
	min, max := 5.0, 9.0

	mock.ExpectQuery(`SELECT count\(\*\) FROM "movies" WHERE \(LOWER\(title\) LIKE LOWER\(\$1\) OR LOWER\(description\) LIKE LOWER\(\$2\)\) AND id IN \(SELECT movie_id FROM movie_ratings WHERE rating >= \$3 AND rating <= \$4\)`).
		WithArgs("%dream%", "%dream%", min, max).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	pred := MovieWhere(biz.MovieFilter{Search: "dream", MinRating: &min, MaxRating: &max})
	var total int64
	require.NoError(t, pred.Apply(db.Model(&Movie{})).Count(&total).Error)
	require.Equal(t, int64(1), total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderAndWindowRender(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "movies" ORDER BY "release_year" DESC LIMIT \$1 OFFSET \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	q := db.Model(&Movie{})
	q = OrderBy("releaseYear", "desc", movieSortColumns, newestFirst).Apply(q)
	q = PageWindow(3, 10).Apply(q)

	var rows []Movie
	require.NoError(t, q.Find(&rows).Error)
	require.NoError(t, mock.ExpectationsWereMet())
}
