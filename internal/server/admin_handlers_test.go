package server

import (
	"fmt"
	"net/http"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRequireAdmin(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)

	user := createHandlerTestUser(t, db, "Ada", "ada@example.com", nil, nil)

	resp := doJSON(t, newAuthedApp(s, user.ID), http.MethodGet, "/api/admin/dashboard", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminBanAndUnbanUser(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)

	admin := createHandlerTestUser(t, db, "Root", "root@example.com", nil, nil)
	require.NoError(t, db.Model(admin).Update("is_admin", true).Error)
	target := createHandlerTestUser(t, db, "Ada", "ada@example.com", nil, nil)

	app := newAuthedApp(s, admin.ID)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/ban", target.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var banned models.User
	decodeBody(t, resp, &banned)
	assert.True(t, banned.IsBanned)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/unban", target.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var unbanned models.User
	decodeBody(t, resp, &unbanned)
	assert.False(t, unbanned.IsBanned)
}

func TestAdminCannotBanAdmin(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)

	admin := createHandlerTestUser(t, db, "Root", "root@example.com", nil, nil)
	require.NoError(t, db.Model(admin).Update("is_admin", true).Error)
	other := createHandlerTestUser(t, db, "Also Root", "root2@example.com", nil, nil)
	require.NoError(t, db.Model(other).Update("is_admin", true).Error)

	resp := doJSON(t, newAuthedApp(s, admin.ID), http.MethodPost,
		fmt.Sprintf("/api/admin/users/%d/ban", other.ID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminDashboard(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)

	admin := createHandlerTestUser(t, db, "Root", "root@example.com", nil, nil)
	require.NoError(t, db.Model(admin).Update("is_admin", true).Error)
	requester := createHandlerTestUser(t, db, "Ada", "ada@example.com", nil, nil)
	provider := createHandlerTestUser(t, db, "Brian", "brian@example.com", nil, nil)

	for _, status := range []models.SwapStatus{
		models.SwapStatusPending, models.SwapStatusCompleted, models.SwapStatusCompleted,
	} {
		swap := &models.Swap{
			RequesterID:  requester.ID,
			ProviderID:   provider.ID,
			SkillOffered: "Guitar",
			SkillWanted:  "Chess",
			Status:       status,
		}
		require.NoError(t, db.Create(swap).Error)
	}

	resp := doJSON(t, newAuthedApp(s, admin.ID), http.MethodGet, "/api/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		TotalUsers    int64                       `json:"total_users"`
		SwapsByStatus map[models.SwapStatus]int64 `json:"swaps_by_status"`
	}
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.SwapsByStatus[models.SwapStatusPending])
	assert.Equal(t, int64(2), stats.SwapsByStatus[models.SwapStatusCompleted])
}
