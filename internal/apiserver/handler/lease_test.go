package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaseBody(unitID, tenantID uint, reference string) gin.H {
	return gin.H{
		"tenant_id":       tenantID,
		"local_id":        unitID,
		"lease_reference": reference,
		"start_date":      "2025-01-01",
		"rent_amount":     "250000",
		"billing_cycle":   "MONTHLY",
	}
}

func TestLeaseLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, unitID, tenantID := env.seedLeaseFixture(t)

	// create
	w := env.doJSON(t, http.MethodPost, "/api/leases", env.admin, leaseBody(unitID, tenantID, "L-001"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	lease := decodeBody[database.Lease](t, w)
	assert.Equal(t, database.LeaseActive, lease.Status)
	require.NotNil(t, lease.Unit)
	require.NotNil(t, lease.Tenant)

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/units/%d", unitID), env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	unit := decodeBody[database.Unit](t, w)
	assert.Equal(t, database.UnitOccupied, unit.Status)

	// a second lease on the same unit conflicts and changes nothing
	w = env.doJSON(t, http.MethodPost, "/api/leases", env.admin, leaseBody(unitID, tenantID, "L-002"))
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodGet, "/api/leases", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	leases := decodeBody[[]database.Lease](t, w)
	require.Len(t, leases, 1)

	// terminate releases the unit
	w = env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/leases/%d/terminate", lease.ID), env.admin, gin.H{"termination_date": "2025-06-30"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	terminated := decodeBody[database.Lease](t, w)
	assert.Equal(t, database.LeaseTerminated, terminated.Status)
	require.NotNil(t, terminated.EndDate)

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/units/%d", unitID), env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	unit = decodeBody[database.Unit](t, w)
	assert.Equal(t, database.UnitAvailable, unit.Status)

	// terminating twice is a conflict, not a no-op
	w = env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/leases/%d/terminate", lease.ID), env.admin, nil)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// the unit is leasable again
	w = env.doJSON(t, http.MethodPost, "/api/leases", env.admin, leaseBody(unitID, tenantID, "L-002"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateLeaseValidation(t *testing.T) {
	env := newTestEnv(t)
	_, unitID, tenantID := env.seedLeaseFixture(t)

	// unknown tenant
	w := env.doJSON(t, http.MethodPost, "/api/leases", env.admin, leaseBody(unitID, 999, "L-001"))
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	// unknown unit
	w = env.doJSON(t, http.MethodPost, "/api/leases", env.admin, leaseBody(999, tenantID, "L-001"))
	require.Equal(t, http.StatusNotFound, w.Code)

	// non-positive rent
	body := leaseBody(unitID, tenantID, "L-001")
	body["rent_amount"] = "0"
	w = env.doJSON(t, http.MethodPost, "/api/leases", env.admin, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// end before start
	body = leaseBody(unitID, tenantID, "L-001")
	body["end_date"] = "2024-12-01"
	w = env.doJSON(t, http.MethodPost, "/api/leases", env.admin, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// malformed date
	body = leaseBody(unitID, tenantID, "L-001")
	body["start_date"] = "01/01/2025"
	w = env.doJSON(t, http.MethodPost, "/api/leases", env.admin, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// nothing got through
	w = env.doJSON(t, http.MethodGet, "/api/leases", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decodeBody[[]database.Lease](t, w))
}

func TestUpdateLeaseTerminatesThroughGenericPath(t *testing.T) {
	env := newTestEnv(t)
	_, unitID, tenantID := env.seedLeaseFixture(t)

	w := env.doJSON(t, http.MethodPost, "/api/leases", env.admin, leaseBody(unitID, tenantID, "L-001"))
	require.Equal(t, http.StatusCreated, w.Code)
	lease := decodeBody[database.Lease](t, w)

	w = env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/leases/%d", lease.ID), env.admin, gin.H{"status": "TERMINATED"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody[database.Lease](t, w)
	assert.Equal(t, database.LeaseTerminated, updated.Status)
	assert.NotNil(t, updated.EndDate)

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/units/%d", unitID), env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	unit := decodeBody[database.Unit](t, w)
	assert.Equal(t, database.UnitAvailable, unit.Status)

	// a terminated lease cannot be reactivated
	w = env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/leases/%d", lease.ID), env.admin, gin.H{"status": "ACTIVE"})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestDeleteTenantBlockedByLease(t *testing.T) {
	env := newTestEnv(t)
	_, unitID, tenantID := env.seedLeaseFixture(t)

	w := env.doJSON(t, http.MethodPost, "/api/leases", env.admin, leaseBody(unitID, tenantID, "L-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/tenants/%d", tenantID), env.admin, nil)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestUnitStatusGuardsOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	_, unitID, tenantID := env.seedLeaseFixture(t)

	w := env.doJSON(t, http.MethodPost, "/api/leases", env.admin, leaseBody(unitID, tenantID, "L-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	// manual status change on an occupied unit is a conflict
	w = env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/units/%d", unitID), env.admin, gin.H{"status": "MAINTENANCE"})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// OCCUPIED is not even a valid request value
	w = env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/units/%d", unitID), env.admin, gin.H{"status": "OCCUPIED"})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}
