package controllers

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceBody(lat, lng float64, options string) string {
	return fmt.Sprintf(`{
		"metier": "menuiserie",
		"sous_service_id": %q,
		"title": "Pose de portes interieures",
		"address": "3 rue du Bois",
		"city": "Lyon",
		"latitude": %g,
		"longitude": %g,
		"price": 45,
		"price_unit": "heure",
		"days": ["lundi", "mardi"],
		"options": %s
	}`, uuid.New(), lat, lng, options)
}

const validMenuiserieOptions = `[
	{"group": "materiau", "name": "chene", "enabled": true, "price": 40, "unit": "m2"},
	{"group": "finition", "name": "vernis", "enabled": true, "price": 15, "unit": "m2"}
]`

func TestCreateService(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM sous_services WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "name", "label"}).
			AddRow(uuid.New(), uuid.New(), "pose_porte", "Pose de porte"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO services`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO service_options`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO service_options`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	token := signToken(t, uuid.New(), utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPost, "/services", token, serviceBody(45.76, 4.83, validMenuiserieOptions))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateServiceClientForbidden(t *testing.T) {
	newMockDB(t)
	app := newTestApp()

	token := signToken(t, uuid.New(), utils.RoleClient)
	resp := doRequest(t, app, http.MethodPost, "/services", token, serviceBody(45.76, 4.83, validMenuiserieOptions))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateServiceLatitudeOutOfRange(t *testing.T) {
	newMockDB(t)
	app := newTestApp()

	token := signToken(t, uuid.New(), utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPost, "/services", token, serviceBody(91, 4.83, validMenuiserieOptions))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/services", token, serviceBody(-90.5, 4.83, validMenuiserieOptions))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateServiceLongitudeOutOfRange(t *testing.T) {
	newMockDB(t)
	app := newTestApp()

	token := signToken(t, uuid.New(), utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPost, "/services", token, serviceBody(45.76, 180.1, validMenuiserieOptions))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateServiceNotOwner(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	// The service belongs to someone else; the update must stop at the
	// ownership check, no UPDATE statement may run.
	serviceID := uuid.New()
	expectServiceLookup(mock, serviceID, uuid.New(), true, false)

	token := signToken(t, uuid.New(), utils.RoleIntervenant)
	body := `{"title": "Hijacked title"}`
	resp := doRequest(t, app, http.MethodPut, "/services/"+serviceID.String(), token, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleServiceNotOwner(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	serviceID := uuid.New()
	expectServiceLookup(mock, serviceID, uuid.New(), true, false)

	token := signToken(t, uuid.New(), utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPatch, "/services/"+serviceID.String()+"/toggle", token, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleServiceOwner(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	serviceID := uuid.New()
	ownerID := uuid.New()
	expectServiceLookup(mock, serviceID, ownerID, true, false)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE services SET active = NOT active`)).
		WithArgs(serviceID).
		WillReturnRows(sqlmock.NewRows([]string{"active"}).AddRow(false))

	token := signToken(t, ownerID, utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPatch, "/services/"+serviceID.String()+"/toggle", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateServiceRejectsBadOptions(t *testing.T) {
	newMockDB(t)
	app := newTestApp()

	// Unknown option group for the metier, rejected before any DB access.
	badOptions := `[{"group": "couleur", "name": "rouge", "enabled": true, "price": 5}]`
	token := signToken(t, uuid.New(), utils.RoleIntervenant)
	resp := doRequest(t, app, http.MethodPost, "/services", token, serviceBody(45.76, 4.83, badOptions))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
