package controllers

import (
	"fmt"
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

func demandeBody(serviceID uuid.UUID, date string) string {
	return fmt.Sprintf(`{
		"service_id": %q,
		"description": "Pose d'une porte coulissante",
		"date_souhaitee": %q,
		"address": "12 rue des Lilas",
		"city": "Lyon",
		"proposed_price": 150
	}`, serviceID, date)
}

func mockServiceRow(id, userID uuid.UUID, active, archived bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "metier", "sous_service_id", "title", "description",
		"address", "city", "latitude", "longitude", "price", "price_unit",
		"days", "active", "archived", "created_at", "updated_at",
	}).AddRow(id, userID, "menuiserie", uuid.New(), "Pose de portes", "",
		"3 rue du Bois", "Lyon", 45.76, 4.83, 45.0, "heure",
		"{lundi,mardi}", active, archived, now, now)
}

func expectServiceLookup(mock sqlmock.Sqlmock, serviceID, ownerID uuid.UUID, active, archived bool) {
	mock.ExpectQuery(regexp.QuoteMeta(`FROM services WHERE id = $1`)).
		WithArgs(serviceID).
		WillReturnRows(mockServiceRow(serviceID, ownerID, active, archived))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM service_options WHERE service_id = $1`)).
		WithArgs(serviceID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "option_group", "name", "enabled", "price", "unit"}))
}

func TestCreateDemande(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	serviceID := uuid.New()
	expectServiceLookup(mock, serviceID, uuid.New(), true, false)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO demandes`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	token := signToken(t, uuid.New(), utils.RoleClient)
	resp := doRequest(t, app, http.MethodPost, "/demandes", token, demandeBody(serviceID, tomorrow))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDemandeIntervenantForbidden(t *testing.T) {
	newMockDB(t)
	app := newTestApp()

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	token := signToken(t, uuid.New(), utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPost, "/demandes", token, demandeBody(uuid.New(), tomorrow))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateDemandeDateNotInFuture(t *testing.T) {
	newMockDB(t)
	app := newTestApp()

	token := signToken(t, uuid.New(), utils.RoleClient)

	today := time.Now().Format("2006-01-02")
	resp := doRequest(t, app, http.MethodPost, "/demandes", token, demandeBody(uuid.New(), today))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	resp = doRequest(t, app, http.MethodPost, "/demandes", token, demandeBody(uuid.New(), yesterday))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateDemandeNeedsDescriptionOrCategories(t *testing.T) {
	newMockDB(t)
	app := newTestApp()

	body := fmt.Sprintf(`{"service_id":%q,"address":"12 rue des Lilas","city":"Lyon"}`, uuid.New())
	token := signToken(t, uuid.New(), utils.RoleClient)
	resp := doRequest(t, app, http.MethodPost, "/demandes", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateDemandeInactiveService(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	serviceID := uuid.New()
	expectServiceLookup(mock, serviceID, uuid.New(), false, false)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	token := signToken(t, uuid.New(), utils.RoleClient)
	resp := doRequest(t, app, http.MethodPost, "/demandes", token, demandeBody(serviceID, tomorrow))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateDemandeArchivedService(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	serviceID := uuid.New()
	expectServiceLookup(mock, serviceID, uuid.New(), true, true)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	token := signToken(t, uuid.New(), utils.RoleClient)
	resp := doRequest(t, app, http.MethodPost, "/demandes", token, demandeBody(serviceID, tomorrow))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
