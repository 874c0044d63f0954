package service

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helpfurr/adopt-api/internal/models"
	appErrors "github.com/helpfurr/adopt-api/pkg/errors"
)

type submissionGateway interface {
	SubmitApplication(ctx context.Context, app models.AdoptionApplication, images []models.ImageAttachment) error
}

type listingFinder interface {
	Find(ctx context.Context, listingID string) (*models.Listing, error)
}

// SubmitApplicationRequest carries one intake form submission.
type SubmitApplicationRequest struct {
	ListingID string `form:"dogId" validate:"required"`
	Fields    models.ApplicationFields
	Images    []models.ImageAttachment
}

// SubmissionResult reports the terminal lifecycle state of a
// submission together with the user-facing notice. RetainedFields
// preserves the entered values when the user should retry; after a
// success it is re-seeded with the applicant's identity defaults, the
// rest of the form cleared.
type SubmissionResult struct {
	SubmissionID   string                    `json:"submissionId"`
	State          models.SubmitState        `json:"state"`
	Code           string                    `json:"code,omitempty"`
	Feedback       models.Feedback           `json:"feedback"`
	RetainedFields *models.ApplicationFields `json:"retainedFields,omitempty"`
}

// SubmissionService owns the adoption application intake workflow:
// self-adoption guard, completeness and email validation, and the
// single multipart create call against the upstream. One submission per
// (listing, applicant) pair may be in flight at a time.
type SubmissionService struct {
	gateway  submissionGateway
	listings listingFinder
	validate *validator.Validate
	metrics  *MetricsService
	logger   *zap.Logger
	emailRe  *regexp.Regexp

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewSubmissionService constructs the service. emailDomain is the only
// mail domain accepted from applicants.
func NewSubmissionService(gw submissionGateway, listings listingFinder, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, emailDomain string) *SubmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if emailDomain == "" {
		emailDomain = "gmail.com"
	}
	svc := &SubmissionService{
		gateway:  gw,
		listings: listings,
		validate: validate,
		metrics:  metrics,
		logger:   logger,
		emailRe:  regexp.MustCompile(`^[a-zA-Z0-9._-]+@` + regexp.QuoteMeta(emailDomain) + `$`),
		inflight: make(map[string]struct{}),
	}
	svc.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return svc
}

// IsCompleteApplication reports whether every required intake field is
// present after trimming. The ID images are not required.
func (s *SubmissionService) IsCompleteApplication(fields models.ApplicationFields) bool {
	return s.validate.Struct(fields) == nil
}

// IsValidEmail applies the site-wide applicant email rule: restricted
// local-part characters and a single accepted mail domain.
func (s *SubmissionService) IsValidEmail(value string) bool {
	return s.emailRe.MatchString(value)
}

// Submit walks an application through the intake lifecycle and returns
// the terminal state. Lifecycle outcomes (invalid form, self-adoption,
// upstream failure) are results, not errors; an error is returned only
// when the request cannot enter the pipeline at all (unknown listing,
// duplicate in-flight submission).
func (s *SubmissionService) Submit(ctx context.Context, actor *models.User, req SubmitApplicationRequest) (*SubmissionResult, error) {
	result := &SubmissionResult{
		SubmissionID: uuid.NewString(),
		State:        models.SubmitStateIdle,
	}
	result.State = nextSubmitState(result.State, eventBegin)

	listing, err := s.listings.Find(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	applicantEmail := strings.TrimSpace(req.Fields.Email)
	ownsListing := applicantEmail != "" && strings.EqualFold(listing.OwnerEmail, applicantEmail)
	if actor != nil && actor.Email != "" {
		ownsListing = ownsListing || strings.EqualFold(listing.OwnerEmail, actor.Email)
	}
	if ownsListing {
		result.State = nextSubmitState(result.State, eventGuardFailed)
		result.Code = appErrors.ErrSelfAdoption.Code
		result.Feedback = models.Feedback{Title: "Error", Message: "You cannot adopt the dog you've posted."}
		result.RetainedFields = &req.Fields
		s.logger.Info("submission blocked by self-adoption guard",
			zap.String("submission_id", result.SubmissionID),
			zap.String("listing_id", req.ListingID),
		)
		return result, nil
	}

	if !s.IsCompleteApplication(req.Fields) {
		result.State = nextSubmitState(result.State, eventFieldsInvalid)
		result.Code = appErrors.ErrValidation.Code
		result.Feedback = models.Feedback{Title: "Error", Message: "Please fill out all fields."}
		result.RetainedFields = &req.Fields
		return result, nil
	}

	if !s.IsValidEmail(req.Fields.Email) {
		result.State = nextSubmitState(result.State, eventFieldsInvalid)
		result.Code = appErrors.ErrValidation.Code
		result.Feedback = models.Feedback{Title: "Error", Message: "Please provide a valid email address."}
		result.RetainedFields = &req.Fields
		return result, nil
	}

	key := submissionKey(req.ListingID, req.Fields.Email)
	if !s.acquire(key) {
		return nil, appErrors.Clone(appErrors.ErrInProgress, "an application for this dog is already being submitted")
	}
	defer s.release(key)

	result.State = nextSubmitState(result.State, eventFieldsValid)

	app := models.AdoptionApplication{
		ListingID:         req.ListingID,
		ApplicationFields: req.Fields,
	}
	if len(req.Images) > 2 {
		req.Images = req.Images[:2]
	}

	start := time.Now()
	submitErr := s.gateway.SubmitApplication(ctx, app, req.Images)
	s.metrics.ObserveUpstreamCall("submit_application", submitErr, time.Since(start))

	if submitErr != nil {
		result.State = nextSubmitState(result.State, eventRejected)
		result.Code = appErrors.ErrUpstream.Code
		result.Feedback = models.Feedback{
			Title:   "Error",
			Message: "There was an issue connecting to the server. Please try again later.",
		}
		result.RetainedFields = &req.Fields
		s.logger.Error("application submission failed",
			zap.String("submission_id", result.SubmissionID),
			zap.String("listing_id", req.ListingID),
			zap.Error(submitErr),
		)
		return result, nil
	}

	result.State = nextSubmitState(result.State, eventAccepted)
	result.Feedback = models.Feedback{
		Title:   "Success",
		Message: "Adoption form for " + listing.Name + " has been submitted. We'll get in touch with you soon.",
	}
	result.RetainedFields = clearedFields(actor)
	s.logger.Info("application submitted",
		zap.String("submission_id", result.SubmissionID),
		zap.String("listing_id", req.ListingID),
	)
	return result, nil
}

// clearedFields resets the form to its initial defaults, re-seeding the
// applicant's own identity fields like the original form did.
func clearedFields(actor *models.User) *models.ApplicationFields {
	fields := &models.ApplicationFields{}
	if actor != nil {
		fields.Email = actor.Email
		fields.AdopterName = actor.Name
	}
	return fields
}

func submissionKey(listingID, email string) string {
	return listingID + "|" + strings.ToLower(strings.TrimSpace(email))
}

func (s *SubmissionService) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *SubmissionService) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}
