package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/notify"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/testhelpers"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type testApp struct {
	router *gin.Engine
	api    *testhelpers.FakeEdamam
}

func setupTestApp(t *testing.T, client *edamam.Client, api *testhelpers.FakeEdamam) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLiteDatabase(t)
	notifier := notify.ContextNotifier{Logger: zerolog.Nop()}

	recipeService := service.NewRecipeService(client, nil, notifier, zerolog.Nop())
	router := SetupRouter(Dependencies{
		DB:             db,
		Recipes:        recipeService,
		Saved:          service.NewSavedRecipeService(db, nil, notifier, zerolog.Nop()),
		Auth:           service.NewAuthService(db, "test-secret"),
		Logger:         zerolog.Nop(),
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	return &testApp{router: router, api: api}
}

func newApp(t *testing.T, recipes ...edamam.Recipe) *testApp {
	api := testhelpers.NewFakeEdamam(t, recipes...)
	notifier := notify.ContextNotifier{Logger: zerolog.Nop()}
	return setupTestApp(t, api.Client(edamam.WithNotifier(notifier)), api)
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	app := newApp(t)

	w := app.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	w = app.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recipe_finder_http_requests_total")
}

func TestSearchRecipes(t *testing.T) {
	app := newApp(t,
		testhelpers.SampleRecipe("b", "Banana Bread", 900),
		testhelpers.SampleRecipe("a", "apple tart", 300),
	)

	w := app.do(t, http.MethodGet, "/api/v1/recipes?q=baking&sort=alpha-asc&diet=balanced&health=vegan&health=dairy-free", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count         int                   `json:"count"`
		Recipes       []map[string]any      `json:"recipes"`
		Notifications []notify.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, "apple tart", resp.Recipes[0]["label"])
	assert.Equal(t, "a", resp.Recipes[0]["id"])
	assert.Empty(t, resp.Notifications)

	requests := app.api.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, []string{"balanced"}, requests[0]["diet"])
	assert.Equal(t, []string{"vegan", "dairy-free"}, requests[0]["health"])
	assert.Equal(t, "0", requests[0].Get("from"))
	assert.Equal(t, "20", requests[0].Get("to"))
}

func TestSearchRecipes_Errors(t *testing.T) {
	t.Run("invalid input makes no request", func(t *testing.T) {
		app := newApp(t)
		for _, path := range []string{
			"/api/v1/recipes?q=x&sort=by-color",
			"/api/v1/recipes?q=x&from=abc",
			"/api/v1/recipes?q=x&from=10&to=5",
			"/api/v1/recipes?q=x&diet=sugar-rich",
		} {
			w := app.do(t, http.MethodGet, path, nil, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, path)
		}
		assert.Empty(t, app.api.Requests())
	})

	t.Run("upstream failure notifies", func(t *testing.T) {
		app := newApp(t)
		app.api.Fail(http.StatusInternalServerError, "boom")

		w := app.do(t, http.MethodGet, "/api/v1/recipes?q=x", nil, "")
		assert.Equal(t, http.StatusBadGateway, w.Code)

		var body struct {
			Error         string                `json:"error"`
			Notifications []notify.Notification `json:"notifications"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "API error: 500 - boom", body.Error)
		require.Len(t, body.Notifications, 1)
		assert.Equal(t, "Failed to search recipes: API error: 500 - boom", body.Notifications[0].Message)
	})

	t.Run("missing credentials", func(t *testing.T) {
		api := testhelpers.NewFakeEdamam(t)
		client := edamam.NewClient(edamam.Credentials{}, edamam.WithBaseURL(api.URL))
		app := setupTestApp(t, client, api)

		w := app.do(t, http.MethodGet, "/api/v1/recipes?q=x", nil, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Empty(t, api.Requests())
	})
}

func TestGetRecipe(t *testing.T) {
	app := newApp(t, testhelpers.SampleRecipe("abc", "Minestrone", 400))

	w := app.do(t, http.MethodGet, "/api/v1/recipes/abc", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	recipe := decode(t, w)["recipe"].(map[string]interface{})
	assert.Equal(t, "Minestrone", recipe["label"])
	assert.Contains(t, recipe, "ingredients")
	assert.Contains(t, recipe, "nutrition")
	assert.Contains(t, recipe, "details")

	w = app.do(t, http.MethodGet, "/api/v1/recipes/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	app.api.Fail(http.StatusServiceUnavailable, "down")
	w = app.do(t, http.MethodGet, "/api/v1/recipes/abc", nil, "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), edamam.LookupFailedMessage)
}

func TestOptions(t *testing.T) {
	app := newApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/recipes/options", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Filters []struct {
			Category string `json:"category"`
		} `json:"filters"`
		SortOptions []edamam.Option `json:"sort_options"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Filters, len(edamam.Categories))
	assert.Equal(t, "diet", resp.Filters[0].Category)
	assert.Len(t, resp.SortOptions, 5)
	assert.Empty(t, app.api.Requests())
}

func TestSavedRecipesFlow(t *testing.T) {
	app := newApp(t,
		testhelpers.SampleRecipe("r1", "Ratatouille", 350),
		testhelpers.SampleRecipe("r2", "Goulash", 700),
	)

	w := app.do(t, http.MethodGet, "/api/v1/saved", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{Email: "cook@example.com", Password: "password123"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Email: "cook@example.com", Password: "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var auth types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	require.NotEmpty(t, auth.Token)

	for _, id := range []string{"r1", "r2"} {
		w = app.do(t, http.MethodPost, "/api/v1/saved", types.SaveRecipeRequest{ID: id, Notes: "try " + id}, auth.Token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = app.do(t, http.MethodPost, "/api/v1/saved", types.SaveRecipeRequest{ID: "r1"}, auth.Token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/saved", types.SaveRecipeRequest{ID: "nope"}, auth.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/saved?sort=calories-desc", nil, auth.Token)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["recipes"].([]interface{})
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "Goulash", first["label"])
	assert.Equal(t, "try r2", first["notes"])

	before := len(app.api.Requests())
	w = app.do(t, http.MethodGet, "/api/v1/saved/r1", nil, auth.Token)
	require.Equal(t, http.StatusOK, w.Code)
	one := decode(t, w)
	assert.Equal(t, "Ratatouille", one["label"])
	assert.Equal(t, "try r1", one["notes"])
	detail := one["detail"].(map[string]interface{})
	assert.Contains(t, detail, "ingredients")
	assert.Len(t, app.api.Requests(), before, "saved detail is served from the stored snapshot")

	w = app.do(t, http.MethodGet, "/api/v1/saved/r3", nil, auth.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/saved?q=rata", nil, auth.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["recipes"], 1)

	w = app.do(t, http.MethodDelete, "/api/v1/saved/r1", nil, auth.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodDelete, "/api/v1/saved/r1", nil, auth.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuth_Errors(t *testing.T) {
	app := newApp(t)

	w := app.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "not-an-email", "password": "password123"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{Email: "a@example.com", Password: "password123"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = app.do(t, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{Email: "a@example.com", Password: "password123"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Email: "a@example.com", Password: "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "invalid credentials"))
}

func TestMetrics_RecordsRecoveredPanics(t *testing.T) {
	app := newApp(t)
	app.router.GET("/explode", func(c *gin.Context) { panic("boom") })

	w := app.do(t, http.MethodGet, "/explode", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = app.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `recipe_finder_http_requests_total{method="GET",route="/explode",status="500"}`)
}

func TestSearchQuota(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := testhelpers.SetupTestRedis(t)
	db := testhelpers.SetupSQLiteDatabase(t)
	api := testhelpers.NewFakeEdamam(t, testhelpers.SampleRecipe("a", "Apple Pie", 500))

	router := SetupRouter(Dependencies{
		DB:                 db,
		Redis:              rdb,
		Recipes:            service.NewRecipeService(api.Client(), nil, nil, zerolog.Nop()),
		Saved:              service.NewSavedRecipeService(db, nil, nil, zerolog.Nop()),
		Auth:               service.NewAuthService(db, "test-secret"),
		Logger:             zerolog.Nop(),
		AllowedOrigins:     []string{"http://localhost:5173"},
		RateLimitPerMinute: 3,
	})
	app := &testApp{router: router, api: api}

	w := app.do(t, http.MethodGet, "/api/v1/rate-limits/recipe-search", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	quota := decode(t, w)
	assert.Equal(t, float64(3), quota["limit"])
	assert.Equal(t, float64(3), quota["remaining"])
	assert.Equal(t, "1m0s", quota["window"])

	w = app.do(t, http.MethodGet, "/api/v1/recipes?q=pie", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
}
