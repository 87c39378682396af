package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cupid-backend/internal/app"
	"cupid-backend/internal/db"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/repository"
)

// Service covers report filing and the admin moderation toggles.
type Service struct {
	appCtx     *app.AppContext
	userRepo   *repository.UserRepository
	reportRepo *repository.ReportRepository
}

// NewService creates the moderation service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:     appCtx,
		userRepo:   repository.NewUserRepository(appCtx.DB),
		reportRepo: repository.NewReportRepository(appCtx.DB),
	}
}

// FileReport lets a user report another user.
func (s *Service) FileReport(ctx context.Context, reporterID, reportedID uint64, reason string) (*db.Report, error) {
	if reportedID == 0 || reason == "" {
		return nil, svcErr.InvalidInput("reported_id and reason are required")
	}
	if reporterID == reportedID {
		return nil, svcErr.InvalidInput("cannot report yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, reportedID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.UserNotFound("reported user not found")
	} else if err != nil {
		return nil, svcErr.Persistence(err)
	}

	report := &db.Report{
		ReporterID: reporterID,
		ReportedID: reportedID,
		Reason:     reason,
		Status:     db.ReportStatusOpen,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, svcErr.Persistence(err)
	}
	return report, nil
}

// ListOwnReports returns the reports the caller has filed.
func (s *Service) ListOwnReports(ctx context.Context, reporterID uint64) ([]db.Report, error) {
	reports, err := s.reportRepo.ListByReporter(ctx, reporterID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}
	return reports, nil
}

// ListReports returns the moderation queue, optionally filtered by status.
func (s *Service) ListReports(ctx context.Context, status string) ([]db.Report, error) {
	reports, err := s.reportRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}
	return reports, nil
}

// ResolveReport closes a report.
func (s *Service) ResolveReport(ctx context.Context, reportID uint64) error {
	err := s.reportRepo.SetStatus(ctx, reportID, db.ReportStatusResolved)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return svcErr.NotFound("report not found")
	} else if err != nil {
		return svcErr.Persistence(err)
	}
	return nil
}

// SetActive toggles a user's ban flag. Inactive users disappear from
// discovery and cannot log in.
func (s *Service) SetActive(ctx context.Context, userID uint64, active bool) error {
	return s.setFlag(ctx, userID, active, s.userRepo.SetActive)
}

// SetVerified toggles a user's verification badge, which drives the
// discovery ranking.
func (s *Service) SetVerified(ctx context.Context, userID uint64, verified bool) error {
	return s.setFlag(ctx, userID, verified, s.userRepo.SetVerified)
}

func (s *Service) setFlag(ctx context.Context, userID uint64, value bool, set func(context.Context, uint64, bool) error) error {
	err := set(ctx, userID, value)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return svcErr.UserNotFound("user not found")
	} else if err != nil {
		return svcErr.Persistence(err)
	}
	s.appCtx.Logger.Info("moderation flag updated", "user", userID, "value", value)
	return nil
}
