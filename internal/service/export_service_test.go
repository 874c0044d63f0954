package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helpfurr/adopt-api/internal/models"
	appErrors "github.com/helpfurr/adopt-api/pkg/errors"
)

func newExportFixture(listings []models.Listing) *ExportService {
	gw := &fakeCatalogGateway{listings: listings}
	catalog := NewCatalogService(gw, NewCacheService(nil, nil, time.Minute, zap.NewNop(), false), nil, zap.NewNop())
	return NewExportService(catalog, zap.NewNop())
}

func TestExportRendersCSV(t *testing.T) {
	svc := newExportFixture([]models.Listing{
		{ID: "1", Name: "Rex", Age: "5 years", Gender: "Male", Color: "Brown", Shelter: "Happy Paws", PostedBy: "Sam", OwnerEmail: "owner@gmail.com"},
	})

	file, err := svc.Render(context.Background(), models.FilterCriteria{}, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "available-dogs.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Owner Email")
	assert.Contains(t, lines[1], "Rex")
	assert.Contains(t, lines[1], "owner@gmail.com")
}

func TestExportRespectsViewCriteria(t *testing.T) {
	svc := newExportFixture([]models.Listing{
		{ID: "1", Name: "Rex", Gender: "Male"},
		{ID: "2", Name: "Luna", Gender: "Female"},
	})

	file, err := svc.Render(context.Background(), models.FilterCriteria{Gender: "female"}, ExportFormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(file.Content), "Luna")
	assert.NotContains(t, string(file.Content), "Rex")
}

func TestExportRendersPDF(t *testing.T) {
	svc := newExportFixture([]models.Listing{{ID: "1", Name: "Rex", Age: "5 years"}})

	file, err := svc.Render(context.Background(), models.FilterCriteria{}, ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "available-dogs.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Content), "%PDF"))
}

func TestExportUnknownFormat(t *testing.T) {
	svc := newExportFixture(nil)

	_, err := svc.Render(context.Background(), models.FilterCriteria{}, ExportFormat("xlsx"))
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
