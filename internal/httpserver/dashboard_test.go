package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"toolboard/internal/models"
)

func seedItem(t *testing.T, db *gorm.DB, userID string) models.DashboardItem {
	t.Helper()
	due := time.Now().Add(48 * time.Hour)
	prio := "high"
	item := models.DashboardItem{
		UserID:      userID,
		Title:       "quarterly report",
		Description: "crunch the numbers",
		Type:        "action_item",
		DueDate:     &due,
		Priority:    &prio,
		Status:      "pending",
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestDashboardItemPartialUpdate(t *testing.T) {
	db, h := setupRouter(t)
	u, token := seedPrincipal(t, db, models.RoleUser)
	item := seedItem(t, db, u.ID)

	rec := doRequest(t, h, http.MethodPut, "/v1/dashboard/items/"+item.ID, token,
		map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored models.DashboardItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, "completed", stored.Status)
	assert.Equal(t, "quarterly report", stored.Title, "untouched fields survive a partial update")
	assert.Equal(t, "crunch the numbers", stored.Description)
	require.NotNil(t, stored.Priority)
	assert.Equal(t, "high", *stored.Priority)
	assert.NotNil(t, stored.DueDate)
}

func TestDashboardItemNullClearsNullableFields(t *testing.T) {
	db, h := setupRouter(t)
	u, token := seedPrincipal(t, db, models.RoleUser)
	item := seedItem(t, db, u.ID)

	rec := doRequest(t, h, http.MethodPut, "/v1/dashboard/items/"+item.ID, token,
		map[string]any{"due_date": nil, "priority": nil})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored models.DashboardItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Nil(t, stored.DueDate)
	assert.Nil(t, stored.Priority)
	assert.Equal(t, "quarterly report", stored.Title)
}

func TestDashboardItemEnumValidation(t *testing.T) {
	db, h := setupRouter(t)
	u, token := seedPrincipal(t, db, models.RoleUser)
	item := seedItem(t, db, u.ID)

	for _, body := range []map[string]any{
		{"status": "done"},
		{"type": "reminder"},
		{"priority": "urgent"},
		{"title": ""},
	} {
		rec := doRequest(t, h, http.MethodPut, "/v1/dashboard/items/"+item.ID, token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %v", body)
	}
}

func TestDashboardItemMetadataMustBeObject(t *testing.T) {
	db, h := setupRouter(t)
	u, token := seedPrincipal(t, db, models.RoleUser)
	item := seedItem(t, db, u.ID)

	for _, meta := range []any{nil, []int{1, 2}, "text", 7} {
		rec := doRequest(t, h, http.MethodPut, "/v1/dashboard/items/"+item.ID, token,
			map[string]any{"metadata": meta})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "metadata %v", meta)
	}

	rec := doRequest(t, h, http.MethodPut, "/v1/dashboard/items/"+item.ID, token,
		map[string]any{"metadata": map[string]any{"color": "red"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored models.DashboardItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.JSONEq(t, `{"color":"red"}`, string(stored.Metadata))
}

func TestDashboardItemOwnershipScoped(t *testing.T) {
	db, h := setupRouter(t)
	owner, _ := seedPrincipal(t, db, models.RoleUser)
	_, otherToken := seedPrincipal(t, db, models.RoleUser)
	item := seedItem(t, db, owner.ID)

	rec := doRequest(t, h, http.MethodPut, "/v1/dashboard/items/"+item.ID, otherToken,
		map[string]any{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, rec.Code, "foreign rows look missing, never forbidden")

	rec = doRequest(t, h, http.MethodDelete, "/v1/dashboard/items/"+item.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.DashboardItem{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "foreign delete must not remove the row")
}

func TestDashboardItemDelete(t *testing.T) {
	db, h := setupRouter(t)
	u, token := seedPrincipal(t, db, models.RoleUser)
	item := seedItem(t, db, u.ID)

	rec := doRequest(t, h, http.MethodDelete, "/v1/dashboard/items/"+item.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	rec = doRequest(t, h, http.MethodDelete, "/v1/dashboard/items/"+item.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardItemsDebug(t *testing.T) {
	db, h := setupRouter(t)
	u, token := seedPrincipal(t, db, models.RoleUser)
	other, _ := seedPrincipal(t, db, models.RoleUser)
	seedItem(t, db, u.ID)
	seedItem(t, db, u.ID)
	seedItem(t, db, other.ID)

	rec := doRequest(t, h, http.MethodGet, "/v1/dashboard/items/debug", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["items"], 2)
}

func TestDashboardKpiUpsert(t *testing.T) {
	db, h := setupRouter(t)
	u, token := seedPrincipal(t, db, models.RoleUser)
	toolID := uuid.NewString()

	rec := doRequest(t, h, http.MethodPost, "/v1/dashboard/kpis", token,
		map[string]any{"toolId": toolID, "kpiKey": "open_tasks", "isEnabled": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	kpi := decodeBody(t, rec)["kpi"].(map[string]any)
	assert.Equal(t, true, kpi["is_enabled"])

	rec = doRequest(t, h, http.MethodPost, "/v1/dashboard/kpis", token,
		map[string]any{"toolId": toolID, "kpiKey": "open_tasks", "isEnabled": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	kpi = decodeBody(t, rec)["kpi"].(map[string]any)
	assert.Equal(t, false, kpi["is_enabled"])

	var count int64
	require.NoError(t, db.Model(&models.UserDashboardKpi{}).
		Where("user_id = ? AND tool_id = ? AND kpi_key = ?", u.ID, toolID, "open_tasks").
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "upsert replaces, never duplicates")
}

func TestDashboardKpiCreatedDisabled(t *testing.T) {
	db, h := setupRouter(t)
	u, token := seedPrincipal(t, db, models.RoleUser)
	toolID := uuid.NewString()

	rec := doRequest(t, h, http.MethodPost, "/v1/dashboard/kpis", token,
		map[string]any{"toolId": toolID, "kpiKey": "open_tasks", "isEnabled": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	kpi := decodeBody(t, rec)["kpi"].(map[string]any)
	assert.Equal(t, false, kpi["is_enabled"])

	var stored models.UserDashboardKpi
	require.NoError(t, db.First(&stored,
		"user_id = ? AND tool_id = ? AND kpi_key = ?", u.ID, toolID, "open_tasks").Error)
	assert.False(t, stored.IsEnabled, "a toggle created disabled must stay disabled")
}

func TestDashboardKpiValidation(t *testing.T) {
	db, h := setupRouter(t)
	_, token := seedPrincipal(t, db, models.RoleUser)
	toolID := uuid.NewString()

	for _, body := range []map[string]any{
		{"kpiKey": "open_tasks", "isEnabled": true},
		{"toolId": toolID, "isEnabled": true},
		{"toolId": toolID, "kpiKey": "open_tasks"},
		{"toolId": "not-a-uuid", "kpiKey": "open_tasks", "isEnabled": true},
	} {
		rec := doRequest(t, h, http.MethodPost, "/v1/dashboard/kpis", token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %v", body)
	}
}

func TestDashboardKpiListFilters(t *testing.T) {
	db, h := setupRouter(t)
	u, token := seedPrincipal(t, db, models.RoleUser)
	other, _ := seedPrincipal(t, db, models.RoleUser)
	toolA, toolB := uuid.NewString(), uuid.NewString()

	seedKpi := func(userID, toolID, key string) {
		kpi := models.UserDashboardKpi{UserID: userID, ToolID: toolID, KpiKey: key, IsEnabled: true, UpdatedAt: time.Now()}
		require.NoError(t, db.Create(&kpi).Error)
	}
	seedKpi(u.ID, toolA, "open_tasks")
	seedKpi(u.ID, toolA, "overdue")
	seedKpi(u.ID, toolB, "open_tasks")
	seedKpi(other.ID, toolA, "open_tasks")

	rec := doRequest(t, h, http.MethodGet, "/v1/dashboard/kpis", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["kpis"], 3, "only the caller's rows")

	rec = doRequest(t, h, http.MethodGet, "/v1/dashboard/kpis?toolId="+toolA, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["kpis"], 2)

	rec = doRequest(t, h, http.MethodGet, "/v1/dashboard/kpis?toolId="+toolA+"&kpiKey=overdue", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["kpis"], 1)
}
