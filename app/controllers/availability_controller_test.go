package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceWeeklyDisponibilitesNotOwner(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	// Owned by someone else: the weekly set must not be touched.
	serviceID := uuid.New()
	expectServiceLookup(mock, serviceID, uuid.New(), true, false)

	token := signToken(t, uuid.New(), utils.RoleIntervenant)
	body := `{"slots": [{"day": "lundi", "start_time": "09:00", "end_time": "12:00"}]}`
	resp := doRequest(t, app, http.MethodPut, "/services/"+serviceID.String()+"/disponibilites/semaine", token, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDateDisponibiliteNotOwner(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp()

	serviceID := uuid.New()
	expectServiceLookup(mock, serviceID, uuid.New(), true, false)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	token := signToken(t, uuid.New(), utils.RoleIntervenant)
	body := fmt.Sprintf(`{"date": %q, "start_time": "09:00", "end_time": "12:00"}`, tomorrow)
	resp := doRequest(t, app, http.MethodPost, "/services/"+serviceID.String()+"/disponibilites/date", token, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
