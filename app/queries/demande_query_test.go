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

func demandeRows(id, clientID, serviceID uuid.UUID, statut string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "client_id", "service_id", "description", "categories", "date_souhaitee",
		"address", "city", "proposed_price", "statut", "created_at", "updated_at",
	}).AddRow(id, clientID, serviceID, "pose de porte", "{pose_porte}", nil,
		"12 rue des Lilas", "Lyon", 150.0, statut, now, now)
}

func TestGetDemandeByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	clientID := uuid.New()
	serviceID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, client_id, service_id`)).
		WithArgs(id).
		WillReturnRows(demandeRows(id, clientID, serviceID, "en_attente"))

	q := DemandeQueries{DB: db}
	d, err := q.GetDemandeByID(id)
	require.NoError(t, err)
	assert.Equal(t, clientID, d.ClientID)
	assert.Equal(t, "en_attente", d.Statut)
	assert.Equal(t, []string{"pose_porte"}, d.Categories)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDemandeByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, client_id, service_id`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	q := DemandeQueries{DB: db}
	_, err = q.GetDemandeByID(id)
	assert.EqualError(t, err, "demande not found")
}

func TestTransitionStatut(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE demandes SET statut = $1, updated_at = now() WHERE id = $2 AND statut = $3`)).
		WithArgs("accepte", id, "en_attente").
		WillReturnResult(sqlmock.NewResult(0, 1))

	q := DemandeQueries{DB: db}
	require.NoError(t, q.TransitionStatut(id, "en_attente", "accepte"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatutLostRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Another transition already moved the row: zero rows match the
	// conditional WHERE, the update must fail.
	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE demandes SET statut = $1`)).
		WithArgs("accepte", id, "en_attente").
		WillReturnResult(sqlmock.NewResult(0, 0))

	q := DemandeQueries{DB: db}
	err = q.TransitionStatut(id, "en_attente", "accepte")
	assert.EqualError(t, err, "demande statut changed concurrently")
}

func TestCreateDemande(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d := &models.Demande{
		ID:        uuid.New(),
		ClientID:  uuid.New(),
		ServiceID: uuid.New(),
		Address:   "12 rue des Lilas",
		City:      "Lyon",
		Statut:    "en_attente",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO demandes`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	q := DemandeQueries{DB: db}
	require.NoError(t, q.CreateDemande(d))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProviderForDemande(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	demandeID := uuid.New()
	providerID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT s.user_id FROM demandes d JOIN services s`)).
		WithArgs(demandeID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(providerID))

	q := DemandeQueries{DB: db}
	got, err := q.GetProviderForDemande(demandeID)
	require.NoError(t, err)
	assert.Equal(t, providerID, got)
}
