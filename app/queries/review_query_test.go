package queries

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistsForDemandeDirection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	demandeID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM reviews WHERE demande_id = $1 AND direction = $2)`)).
		WithArgs(demandeID, models.ReviewOfIntervenant).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	q := ReviewQueries{DB: db}
	exists, err := q.ExistsForDemandeDirection(demandeID, models.ReviewOfIntervenant)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReview(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := &models.Review{
		ID:          uuid.New(),
		DemandeID:   uuid.New(),
		AuthorID:    uuid.New(),
		TargetID:    uuid.New(),
		Direction:   models.ReviewOfIntervenant,
		Ponctualite: 5,
		Proprete:    4,
		Qualite:     5,
		Note:        14.0 / 3,
		CreatedAt:   time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reviews`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	q := ReviewQueries{DB: db}
	require.NoError(t, q.CreateReview(r))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReviewsForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	targetID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "demande_id", "author_id", "target_id", "direction",
		"ponctualite", "proprete", "qualite", "note", "comment", "created_at",
	}).AddRow(uuid.New(), uuid.New(), uuid.New(), targetID, models.ReviewOfIntervenant, 5, 5, 4, 4.67, "Travail soigne", now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reviews WHERE target_id = $1`)).
		WithArgs(targetID).
		WillReturnRows(rows)

	q := ReviewQueries{DB: db}
	reviews, err := q.GetReviewsForUser(targetID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, targetID, reviews[0].TargetID)
}
