package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop/internal/app"
	"shop/internal/config"
	"shop/internal/database"
	"shop/internal/models"
	"shop/internal/repositories"
	"shop/internal/storage"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// setupApp builds the shop on an in-memory SQLite database and an in-memory media filesystem.
func setupApp(t *testing.T) (*fiber.App, *storage.MediaStorage) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	media := storage.NewMediaStorage(afero.NewMemMapFs())

	// Each record is stamped one second after the previous one.
	tick := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	fiberApp := app.NewFiberApp(app.Deps{
		Categories: repositories.NewGORMCategoryRepository(db),
		Products:   repositories.NewGORMProductRepository(db),
		Images:     repositories.NewGORMProductImageRepository(db),
		Media:      media,
		Clock:      clock,
	}, config.Config{MaxUploadBytes: 1 << 20})
	return fiberApp, media
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, a *fiber.App, method, url string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func uploadImage(t *testing.T, a *fiber.App, productID, filename string, data []byte) (*http.Response, models.ProductImage) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+productID+"/images", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := a.Test(req, -1)
	require.NoError(t, err)

	var image models.ProductImage
	if resp.StatusCode == http.StatusCreated {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&image))
	}
	resp.Body.Close()
	return resp, image
}

func TestListingWithNoProducts(t *testing.T) {
	a, _ := setupApp(t)

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "No products yet.")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp, err = a.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, `[]`, string(body))
}

func TestCatalogScenario(t *testing.T) {
	a, _ := setupApp(t)

	var tools, stationery models.Category
	assert.Equal(t, http.StatusCreated, doJSON(t, a, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Tools"}, &tools))
	assert.Equal(t, http.StatusCreated, doJSON(t, a, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Stationery"}, &stationery))
	assert.NotEmpty(t, tools.ID)

	var tape models.Product
	status := doJSON(t, a, http.MethodPost, "/api/v1/products",
		map[string]any{"category_id": tools.ID, "name": "Tape", "price": 500}, &tape)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int64(500), tape.Price)

	// Same name in the same category is refused.
	var errBody map[string]string
	status = doJSON(t, a, http.MethodPost, "/api/v1/products",
		map[string]any{"category_id": tools.ID, "name": "Tape", "price": 300}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, errBody["error"], "already exists")

	// Same name in another category is fine.
	var paperTape models.Product
	status = doJSON(t, a, http.MethodPost, "/api/v1/products",
		map[string]any{"category_id": stationery.ID, "name": "Tape", "price": 300}, &paperTape)
	assert.Equal(t, http.StatusCreated, status)

	var products []models.Product
	assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/api/v1/products", nil, &products))
	assert.Len(t, products, 2)

	// The storefront lists both.
	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, strings.Count(string(body), `class="product"`))
	assert.Contains(t, string(body), "Stationery")
}

func TestCreateErrors(t *testing.T) {
	a, _ := setupApp(t)

	var tools models.Category
	require.Equal(t, http.StatusCreated, doJSON(t, a, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Tools"}, &tools))

	tests := []struct {
		name   string
		url    string
		body   any
		status int
	}{
		{"category name too long", "/api/v1/categories", map[string]any{"name": strings.Repeat("n", 21)}, http.StatusBadRequest},
		{"negative price", "/api/v1/products", map[string]any{"category_id": tools.ID, "name": "Saw", "price": -1}, http.StatusBadRequest},
		{"product name too long", "/api/v1/products", map[string]any{"category_id": tools.ID, "name": strings.Repeat("n", 101), "price": 1}, http.StatusBadRequest},
		{"unknown category", "/api/v1/products", map[string]any{"category_id": uuid.New().String(), "name": "Saw", "price": 1}, http.StatusUnprocessableEntity},
		{"malformed body", "/api/v1/products", "not an object", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, doJSON(t, a, http.MethodPost, tc.url, tc.body, nil))
		})
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	a, _ := setupApp(t)

	var tools models.Category
	require.Equal(t, http.StatusCreated, doJSON(t, a, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Tools"}, &tools))
	var tape models.Product
	require.Equal(t, http.StatusCreated, doJSON(t, a, http.MethodPost, "/api/v1/products",
		map[string]any{"category_id": tools.ID, "name": "Tape", "price": 500}, &tape))

	assert.Equal(t, http.StatusConflict, doJSON(t, a, http.MethodDelete, "/api/v1/categories/"+tools.ID, nil, nil))
	assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/api/v1/categories/"+tools.ID, nil, nil))

	assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodDelete, "/api/v1/products/"+tape.ID, nil, nil))
	assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodDelete, "/api/v1/categories/"+tools.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, a, http.MethodGet, "/api/v1/categories/"+tools.ID, nil, nil))
}

func TestProductImages(t *testing.T) {
	a, media := setupApp(t)

	var tools models.Category
	require.Equal(t, http.StatusCreated, doJSON(t, a, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Tools"}, &tools))
	var tape models.Product
	require.Equal(t, http.StatusCreated, doJSON(t, a, http.MethodPost, "/api/v1/products",
		map[string]any{"category_id": tools.ID, "name": "Tape", "price": 500}, &tape))

	resp, first := uploadImage(t, a, tape.ID, "front.png", pngHeader)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, second := uploadImage(t, a, tape.ID, "back.png", pngHeader)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, strings.HasPrefix(first.Image, storage.ProductImageDir+"/"))

	// Newest first.
	var images []models.ProductImage
	require.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/api/v1/products/"+tape.ID+"/images", nil, &images))
	require.Len(t, images, 2)
	assert.Equal(t, second.ID, images[0].ID)
	assert.Equal(t, first.ID, images[1].ID)

	// Stored files are served under /media.
	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/media/"+first.Image, nil), -1)
	require.NoError(t, err)
	served, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, pngHeader, served)

	// Uploads that are not images, or target a missing product, are refused.
	resp, _ = uploadImage(t, a, tape.ID, "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = uploadImage(t, a, uuid.New().String(), "front.png", pngHeader)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Deleting the product cascades to its images and their files.
	require.Equal(t, http.StatusOK, doJSON(t, a, http.MethodDelete, "/api/v1/products/"+tape.ID, nil, nil))
	images = nil
	require.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/api/v1/products/"+tape.ID+"/images", nil, &images))
	assert.Empty(t, images)
	assert.Equal(t, http.StatusNotFound, doJSON(t, a, http.MethodGet, "/api/v1/images/"+first.ID, nil, nil))

	exists, err := media.Exists(first.Image)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteImage(t *testing.T) {
	a, media := setupApp(t)

	var tools models.Category
	require.Equal(t, http.StatusCreated, doJSON(t, a, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Tools"}, &tools))
	var tape models.Product
	require.Equal(t, http.StatusCreated, doJSON(t, a, http.MethodPost, "/api/v1/products",
		map[string]any{"category_id": tools.ID, "name": "Tape", "price": 500}, &tape))
	resp, image := uploadImage(t, a, tape.ID, "front.png", pngHeader)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var fetched models.ProductImage
	assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/api/v1/images/"+image.ID, nil, &fetched))
	assert.Equal(t, tape.ID, fetched.ProductID)

	assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodDelete, "/api/v1/images/"+image.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, a, http.MethodDelete, "/api/v1/images/"+image.ID, nil, nil))

	exists, err := media.Exists(image.Image)
	require.NoError(t, err)
	assert.False(t, exists)
}
