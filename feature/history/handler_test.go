package history

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	svc := setupService(t)
	app := fiber.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(app)
	return app, svc
}

func send(t *testing.T, app *fiber.App, method, url string, body any) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out.Bytes()
}

func TestHandler_Lifecycle(t *testing.T) {
	app, _ := setupApp(t)

	status, body := send(t, app, "POST", "/api/history", SaveRequest{
		TargetDate: "2024-05-01",
		RunBy:      "ops",
		Results:    sampleReports(),
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	var saved SavedReport
	require.NoError(t, json.Unmarshal(body, &saved))
	assert.Equal(t, StatusOpen, saved.Status)

	status, body = send(t, app, "GET", "/api/history?date=2024-05-01", nil)
	require.Equal(t, fiber.StatusOK, status)
	var list []SavedReport
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)

	status, body = send(t, app, "PATCH", "/api/history/"+saved.ID, map[string]string{"status": "REVIEWED", "note": "checked"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	var updated SavedReport
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, StatusReviewed, updated.Status)
	assert.Equal(t, "checked", updated.Note)

	status, _ = send(t, app, "DELETE", "/api/history/"+saved.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = send(t, app, "GET", "/api/history/"+saved.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandler_ValidationErrors(t *testing.T) {
	app, _ := setupApp(t)

	status, body := send(t, app, "POST", "/api/history", map[string]any{"targetDate": "yesterday"})
	require.Equal(t, fiber.StatusBadRequest, status)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Equal(t, "datetime", resp.Fields["TargetDate"])
	assert.Equal(t, "required", resp.Fields["Results"])

	status, _ = send(t, app, "PATCH", "/api/history/unknown", map[string]string{"status": "DONE"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = send(t, app, "PATCH", "/api/history/unknown", map[string]string{"note": "x"})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestFeature(t *testing.T) {
	disabled := NewFeature(nil)
	assert.Equal(t, "history", disabled.Name())
	assert.False(t, disabled.IsEnabled())

	svc := setupService(t)
	f := NewFeature(svc)
	assert.True(t, f.IsEnabled())
	app := fiber.New()
	require.NoError(t, f.Load(app))

	status, _ := send(t, app, "GET", "/api/history", nil)
	assert.Equal(t, fiber.StatusOK, status)
}
