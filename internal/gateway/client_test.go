package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helpfurr/adopt-api/internal/models"
	"github.com/helpfurr/adopt-api/pkg/config"
	appErrors "github.com/helpfurr/adopt-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, zap.NewNop())
}

func TestApprovedListings(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/dogs/approvedPets", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"d1","name":"Rex","age":"5 years","clientEmail":"owner@gmail.com"}]`))
	}))

	listings, err := client.ApprovedListings(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "d1", listings[0].ID)
	assert.Equal(t, "Rex", listings[0].Name)
	assert.Equal(t, "owner@gmail.com", listings[0].OwnerEmail)
}

func TestApprovedListingsUpstreamError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.ApprovedListings(context.Background())
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
}

func TestApproveListingSendsStatusAndModerator(t *testing.T) {
	var gotBody string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/dogs/approving/d1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.WriteHeader(http.StatusOK)
	}))

	err := client.ApproveListing(context.Background(), "d1", "admin-1")
	require.NoError(t, err)
	assert.Contains(t, gotBody, `"status":"Approved"`)
	assert.Contains(t, gotBody, `"userId":"admin-1"`)
}

func TestDeleteListingMaps404ToNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/dogs/delete/d1", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.DeleteListing(context.Background(), "d1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestDeleteApplicationsPath(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/form/delete/many/d1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.DeleteApplications(context.Background(), "d1"))
}

func TestSubmitApplicationMultipartRoundTrip(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/form/save", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "d1", r.FormValue("dogId"))
		assert.Equal(t, "adopter@gmail.com", r.FormValue("email"))
		assert.Equal(t, "Jordan", r.FormValue("adopterName"))
		assert.Equal(t, "yes", r.FormValue("neutering"))

		file, header, err := r.FormFile("image1")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "id-front.png", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "data", string(content))

		w.WriteHeader(http.StatusCreated)
	}))

	app := models.AdoptionApplication{
		ListingID: "d1",
		ApplicationFields: models.ApplicationFields{
			Email:       "adopter@gmail.com",
			AdopterName: "Jordan",
			Neutering:   "yes",
		},
	}
	images := []models.ImageAttachment{
		{FieldName: "image1", Filename: "id-front.png", MimeType: "image/png", Content: strings.NewReader("data")},
	}

	require.NoError(t, client.SubmitApplication(context.Background(), app, images))
}

func TestSubmitApplicationNon2xx(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "validation failed", http.StatusBadRequest)
	}))

	err := client.SubmitApplication(context.Background(), models.AdoptionApplication{ListingID: "d1"}, nil)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
}

func TestFirstUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/users/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"u1","name":"Admin","email":"admin@gmail.com"}`))
	}))

	user, err := client.FirstUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "admin@gmail.com", user.Email)
}

func TestConnectivityFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := New(config.UpstreamConfig{BaseURL: srv.URL, Timeout: time.Second}, zap.NewNop())

	_, err := client.ApprovedListings(context.Background())
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
}
