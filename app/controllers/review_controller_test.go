package controllers

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/models"
	"github.com/servicepro/servicepro-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewBody(demandeID uuid.UUID) string {
	return fmt.Sprintf(`{"demande_id":%q,"ponctualite":5,"proprete":4,"qualite":5,"comment":"Travail soigne"}`, demandeID)
}

func expectReviewLookups(mock sqlmock.Sqlmock, demandeID, clientID, providerID uuid.UUID, statut string) {
	mock.ExpectQuery(regexp.QuoteMeta(`FROM demandes WHERE id = $1`)).
		WithArgs(demandeID).
		WillReturnRows(mockDemandeRow(demandeID, clientID, uuid.New(), statut))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT s.user_id FROM demandes d JOIN services s`)).
		WithArgs(demandeID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(providerID))
}

func TestCreateReviewByClient(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	demandeID := uuid.New()
	clientID := uuid.New()
	providerID := uuid.New()

	expectReviewLookups(mock, demandeID, clientID, providerID, utils.StatutTermine)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM reviews`)).
		WithArgs(demandeID, models.ReviewOfIntervenant).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reviews`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET rating`)).
		WithArgs(providerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	token := signToken(t, clientID, utils.RoleClient)
	resp := doRequest(t, app, http.MethodPost, "/reviews", token, reviewBody(demandeID))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewByProvider(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	demandeID := uuid.New()
	clientID := uuid.New()
	providerID := uuid.New()

	// The provider reviews the client: opposite direction, client is rated.
	expectReviewLookups(mock, demandeID, clientID, providerID, utils.StatutTermine)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM reviews`)).
		WithArgs(demandeID, models.ReviewOfClient).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reviews`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET rating`)).
		WithArgs(clientID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	token := signToken(t, providerID, utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPost, "/reviews", token, reviewBody(demandeID))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewDuplicate(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	demandeID := uuid.New()
	clientID := uuid.New()

	expectReviewLookups(mock, demandeID, clientID, uuid.New(), utils.StatutTermine)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM reviews`)).
		WithArgs(demandeID, models.ReviewOfIntervenant).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	token := signToken(t, clientID, utils.RoleClient)
	resp := doRequest(t, app, http.MethodPost, "/reviews", token, reviewBody(demandeID))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewDemandeNotCompleted(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	demandeID := uuid.New()
	clientID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM demandes WHERE id = $1`)).
		WithArgs(demandeID).
		WillReturnRows(mockDemandeRow(demandeID, clientID, uuid.New(), utils.StatutAccepte))

	token := signToken(t, clientID, utils.RoleClient)
	resp := doRequest(t, app, http.MethodPost, "/reviews", token, reviewBody(demandeID))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateReviewNotAParty(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	demandeID := uuid.New()
	expectReviewLookups(mock, demandeID, uuid.New(), uuid.New(), utils.StatutTermine)

	token := signToken(t, uuid.New(), utils.RoleClient)
	resp := doRequest(t, app, http.MethodPost, "/reviews", token, reviewBody(demandeID))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateReviewScoreOutOfRange(t *testing.T) {
	newMockDB(t)
	app := newTestApp()

	body := fmt.Sprintf(`{"demande_id":%q,"ponctualite":6,"proprete":4,"qualite":5}`, uuid.New())
	token := signToken(t, uuid.New(), utils.RoleClient)
	resp := doRequest(t, app, http.MethodPost, "/reviews", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
