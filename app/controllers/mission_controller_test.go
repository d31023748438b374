package controllers

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockDemandeRow(id, clientID, serviceID uuid.UUID, statut string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "client_id", "service_id", "description", "categories", "date_souhaitee",
		"address", "city", "proposed_price", "statut", "created_at", "updated_at",
	}).AddRow(id, clientID, serviceID, "pose de porte", "{}", nil,
		"12 rue des Lilas", "Lyon", 150.0, statut, now, now)
}

// expectTransitionLookups queues the demande fetch and the provider ownership
// lookup every transition handler performs.
func expectTransitionLookups(mock sqlmock.Sqlmock, demandeID, clientID, serviceID, providerID uuid.UUID, statut string) {
	mock.ExpectQuery(regexp.QuoteMeta(`FROM demandes WHERE id = $1`)).
		WithArgs(demandeID).
		WillReturnRows(mockDemandeRow(demandeID, clientID, serviceID, statut))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT s.user_id FROM demandes d JOIN services s`)).
		WithArgs(demandeID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(providerID))
}

func TestAcceptMission(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	demandeID := uuid.New()
	clientID := uuid.New()
	providerID := uuid.New()

	expectTransitionLookups(mock, demandeID, clientID, uuid.New(), providerID, utils.StatutEnAttente)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE demandes SET statut = $1`)).
		WithArgs(utils.StatutAccepte, demandeID, utils.StatutEnAttente).
		WillReturnResult(sqlmock.NewResult(0, 1))

	token := signToken(t, providerID, utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPatch, "/missions/"+demandeID.String()+"/accept", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptMissionAlreadyAccepted(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	demandeID := uuid.New()
	providerID := uuid.New()

	// No UPDATE expected: the transition table rejects accept on accepte.
	expectTransitionLookups(mock, demandeID, uuid.New(), uuid.New(), providerID, utils.StatutAccepte)

	token := signToken(t, providerID, utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPatch, "/missions/"+demandeID.String()+"/accept", token, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptMissionNotProvider(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	demandeID := uuid.New()
	expectTransitionLookups(mock, demandeID, uuid.New(), uuid.New(), uuid.New(), utils.StatutEnAttente)

	token := signToken(t, uuid.New(), utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPatch, "/missions/"+demandeID.String()+"/accept", token, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCompleteMission(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	demandeID := uuid.New()
	providerID := uuid.New()

	expectTransitionLookups(mock, demandeID, uuid.New(), uuid.New(), providerID, utils.StatutAccepte)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE demandes SET statut = $1`)).
		WithArgs(utils.StatutTermine, demandeID, utils.StatutAccepte).
		WillReturnResult(sqlmock.NewResult(0, 1))

	token := signToken(t, providerID, utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPatch, "/missions/"+demandeID.String()+"/complete", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRefusedMission(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	demandeID := uuid.New()
	providerID := uuid.New()
	expectTransitionLookups(mock, demandeID, uuid.New(), uuid.New(), providerID, utils.StatutRefuse)

	token := signToken(t, providerID, utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPatch, "/missions/"+demandeID.String()+"/complete", token, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAcceptMissionLostRace(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	demandeID := uuid.New()
	providerID := uuid.New()

	expectTransitionLookups(mock, demandeID, uuid.New(), uuid.New(), providerID, utils.StatutEnAttente)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE demandes SET statut = $1`)).
		WithArgs(utils.StatutAccepte, demandeID, utils.StatutEnAttente).
		WillReturnResult(sqlmock.NewResult(0, 0))

	token := signToken(t, providerID, utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPatch, "/missions/"+demandeID.String()+"/accept", token, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestMissionRequiresToken(t *testing.T) {
	newMockDB(t)
	app := newTestApp()

	resp := doRequest(t, app, http.MethodPatch, "/missions/"+uuid.New().String()+"/accept", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetMissionsClientForbidden(t *testing.T) {
	newMockDB(t)
	app := newTestApp()

	token := signToken(t, uuid.New(), utils.RoleClient)
	resp := doRequest(t, app, http.MethodGet, "/missions", token, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetMissionsBadStatutFilter(t *testing.T) {
	newMockDB(t)
	app := newTestApp()

	token := signToken(t, uuid.New(), utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodGet, "/missions?statut=annule", token, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
