package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/helpfurr/adopt-api/internal/models"
	"github.com/helpfurr/adopt-api/pkg/config"
	appErrors "github.com/helpfurr/adopt-api/pkg/errors"
)

// Client talks to the upstream HelpFurr REST API. Every call runs under
// a bounded timeout; transport failures and non-2xx responses collapse
// into the same connectivity error the workflows surface to users, with
// the upstream status preserved for logs. A 404 on delete endpoints is
// reported as ErrNotFound so callers can treat retried deletes as
// already done.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// New constructs a gateway client from configuration.
func New(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// ApprovedListings fetches the catalog of approved dogs.
func (c *Client) ApprovedListings(ctx context.Context) ([]models.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/dogs/approvedPets", nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build catalog request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.connectivity("fetch approved listings", err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, c.upstreamStatus("fetch approved listings", resp)
	}

	var listings []models.Listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode approved listings")
	}
	return listings, nil
}

// ApproveListing sets a listing's status to Approved, stamping the
// moderator identity the upstream records.
func (c *Client) ApproveListing(ctx context.Context, listingID, moderatorID string) error {
	payload, err := json.Marshal(map[string]string{
		"status": string(models.ListingStatusApproved),
		"userId": moderatorID,
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode approve payload")
	}

	endpoint := c.baseURL + "/dogs/approving/" + url.PathEscape(listingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build approve request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doMutation(req, "approve listing", false)
}

// DeleteListing removes a listing. ErrNotFound is returned for a 404 so
// a retried rejection can treat the step as already complete.
func (c *Client) DeleteListing(ctx context.Context, listingID string) error {
	endpoint := c.baseURL + "/dogs/delete/" + url.PathEscape(listingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build listing delete request")
	}
	return c.doMutation(req, "delete listing", true)
}

// DeleteApplications bulk-deletes every adoption application that
// references the listing. Same 404 contract as DeleteListing.
func (c *Client) DeleteApplications(ctx context.Context, listingID string) error {
	endpoint := c.baseURL + "/form/delete/many/" + url.PathEscape(listingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build applications delete request")
	}
	return c.doMutation(req, "delete applications", true)
}

// SubmitApplication forwards an adoption application as the multipart
// form the upstream expects, attaching up to two identity images.
func (c *Client) SubmitApplication(ctx context.Context, app models.AdoptionApplication, images []models.ImageAttachment) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"email":              app.Email,
		"phoneNo":            app.PhoneNo,
		"adopterName":        app.AdopterName,
		"address":            app.Address,
		"livingSituation":    app.LivingSituation,
		"previousExperience": app.PreviousExperience,
		"familyComposition":  app.FamilyComposition,
		"contactReference":   app.ContactReference,
		"occupation":         app.Occupation,
		"renting":            app.Renting,
		"familyAllergic":     app.FamilyAllergic,
		"neutering":          app.Neutering,
		"dogId":              app.ListingID,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "write form field")
		}
	}

	for _, img := range images {
		part, err := writer.CreateFormFile(img.FieldName, img.Filename)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "attach image")
		}
		if _, err := io.Copy(part, img.Content); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "copy image content")
		}
	}

	if err := writer.Close(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "finalise form body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/form/save", body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build submission request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.doMutation(req, "submit application", false)
}

// FirstUser fetches the upstream user record the moderation view stamps
// approvals with.
func (c *Client) FirstUser(ctx context.Context) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/users/", nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build user request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.connectivity("fetch user", err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, c.upstreamStatus("fetch user", resp)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode user")
	}
	return &user, nil
}

func (c *Client) doMutation(req *http.Request, op string, tolerateNotFound bool) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return c.connectivity(op, err)
	}
	defer resp.Body.Close()

	if success(resp.StatusCode) {
		return nil
	}
	if tolerateNotFound && resp.StatusCode == http.StatusNotFound {
		return appErrors.Clone(appErrors.ErrNotFound, op+": already removed upstream")
	}
	return c.upstreamStatus(op, resp)
}

func (c *Client) connectivity(op string, err error) error {
	c.logger.Warn("upstream call failed",
		zap.String("op", op),
		zap.Error(err),
	)
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
}

func (c *Client) upstreamStatus(op string, resp *http.Response) error {
	// The upstream error body is unstructured; keep a trimmed copy in
	// the developer log only.
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	c.logger.Warn("upstream returned non-2xx",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", snippet),
	)
	return appErrors.Wrap(
		fmt.Errorf("upstream status %d", resp.StatusCode),
		appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message,
	)
}

func success(status int) bool {
	return status >= 200 && status < 300
}
