package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/helpfurr/adopt-api/internal/models"
	appErrors "github.com/helpfurr/adopt-api/pkg/errors"
)

type moderationGateway interface {
	ApproveListing(ctx context.Context, listingID, moderatorID string) error
	DeleteListing(ctx context.Context, listingID string) error
	DeleteApplications(ctx context.Context, listingID string) error
}

// ActionResult is the single terminal outcome every moderation action
// resolves into.
type ActionResult struct {
	ListingID string                  `json:"listingId"`
	Action    models.ModerationAction `json:"action"`
	Outcome   models.ActionOutcome    `json:"outcome"`
	Feedback  models.Feedback         `json:"feedback"`
}

// ModerationService executes admin actions against a single listing.
// Each (listing, action) pair is guarded against re-entrancy: a
// duplicate of the same action while one is in flight is refused, while
// a different action on the same listing may still proceed, mirroring
// the per-button disabling of the original admin table. Rejection is a
// two-step cascade: applications first, then the listing, aborting if
// the application step fails so a listing is never orphaned from
// applications in unknown state. Upstream 404s on either delete are
// treated as success, which keeps a retried rejection idempotent.
type ModerationService struct {
	gateway moderationGateway
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewModerationService constructs the service.
func NewModerationService(gw moderationGateway, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ModerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModerationService{
		gateway:  gw,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		inflight: make(map[string]struct{}),
	}
}

// Approve sets the listing's status to Approved, stamped with the
// acting moderator. The listing stays in the caller's current view
// until a refetch; the catalog cache is invalidated so that refetch is
// fresh.
func (s *ModerationService) Approve(ctx context.Context, listingID string, moderator *models.User) (*ActionResult, error) {
	if moderator == nil || moderator.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "moderator identity required")
	}
	release, err := s.acquire(listingID, models.ModerationActionApprove)
	if err != nil {
		return nil, err
	}
	defer release()

	result := &ActionResult{
		ListingID: listingID,
		Action:    models.ModerationActionApprove,
		Outcome:   models.OutcomeProcessing,
	}

	start := time.Now()
	approveErr := s.gateway.ApproveListing(ctx, listingID, moderator.ID)
	s.metrics.ObserveUpstreamCall("approve_listing", approveErr, time.Since(start))

	if approveErr != nil {
		s.logger.Error("listing approval failed",
			zap.String("listing_id", listingID),
			zap.String("moderator_id", moderator.ID),
			zap.Error(approveErr),
		)
		result.Outcome = models.OutcomeConnectionError
		result.Feedback = connectionErrorFeedback()
		return result, nil
	}

	s.invalidateCatalog(ctx)
	result.Outcome = models.OutcomeApproved
	result.Feedback = models.Feedback{Title: "Dog Approved", Message: "This dog has been approved!"}
	return result, nil
}

// Reject removes a listing and cascades over its pending applications.
// The applications are deleted first; if that step fails the listing
// delete is never issued. If the listing delete fails afterwards the
// inconsistency is surfaced as a connection error and resolved by
// retrying the same action.
func (s *ModerationService) Reject(ctx context.Context, listingID string) (*ActionResult, error) {
	release, err := s.acquire(listingID, models.ModerationActionReject)
	if err != nil {
		return nil, err
	}
	defer release()

	result := &ActionResult{
		ListingID: listingID,
		Action:    models.ModerationActionReject,
		Outcome:   models.OutcomeProcessing,
	}

	start := time.Now()
	cascadeErr := s.gateway.DeleteApplications(ctx, listingID)
	s.metrics.ObserveUpstreamCall("delete_applications", ignoreNotFound(cascadeErr), time.Since(start))
	if cascadeErr != nil && !isNotFound(cascadeErr) {
		s.logger.Error("application cascade delete failed, listing delete skipped",
			zap.String("listing_id", listingID),
			zap.Error(cascadeErr),
		)
		result.Outcome = models.OutcomeConnectionError
		result.Feedback = connectionErrorFeedback()
		return result, nil
	}

	start = time.Now()
	deleteErr := s.gateway.DeleteListing(ctx, listingID)
	s.metrics.ObserveUpstreamCall("delete_listing", ignoreNotFound(deleteErr), time.Since(start))
	if deleteErr != nil && !isNotFound(deleteErr) {
		s.logger.Error("listing delete failed after application cascade",
			zap.String("listing_id", listingID),
			zap.Error(deleteErr),
		)
		result.Outcome = models.OutcomeConnectionError
		result.Feedback = connectionErrorFeedback()
		return result, nil
	}

	s.invalidateCatalog(ctx)
	result.Outcome = models.OutcomeDeleted
	result.Feedback = models.Feedback{Title: "Pet Deleted", Message: "This dog has been successfully deleted."}
	return result, nil
}

func connectionErrorFeedback() models.Feedback {
	return models.Feedback{
		Title:   "Oops!... Connection Error",
		Message: "There was an issue connecting to the server. Please try again later.",
	}
}

func (s *ModerationService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, catalogCacheKey); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *ModerationService) acquire(listingID string, action models.ModerationAction) (func(), error) {
	key := listingID + "|" + string(action)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return nil, appErrors.Clone(appErrors.ErrInProgress, "this action is already being processed for the listing")
	}
	s.inflight[key] = struct{}{}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.inflight, key)
	}, nil
}

func isNotFound(err error) bool {
	var appErr *appErrors.Error
	return errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotFound.Code
}

// ignoreNotFound keeps tolerated 404s out of the error-outcome metrics.
func ignoreNotFound(err error) error {
	if isNotFound(err) {
		return nil
	}
	return err
}
