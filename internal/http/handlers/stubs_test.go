package handlers

import (
	"context"
	"time"

	"github.com/kgp-ops/wpr-portal/internal/domain"
	"github.com/kgp-ops/wpr-portal/internal/services"
)

type stubFormService struct {
	boot    *services.FormBootstrap
	bootErr error

	details    *domain.EmployeeDetails
	detailsErr error

	submitted []domain.PermitSubmission
	submitErr error
}

func (s *stubFormService) Bootstrap(ctx context.Context) (*services.FormBootstrap, error) {
	return s.boot, s.bootErr
}

func (s *stubFormService) EmployeeDetails(ctx context.Context, name string) (*domain.EmployeeDetails, error) {
	return s.details, s.detailsErr
}

func (s *stubFormService) Submit(ctx context.Context, sub domain.PermitSubmission) error {
	if s.submitErr != nil {
		return s.submitErr
	}
	s.submitted = append(s.submitted, sub)
	return nil
}

type stubAdminService struct {
	browseQ   services.BrowseQuery
	browse    *services.BrowsePage
	browseErr error

	statsKey string
	stats    *services.StatsResult

	exportQ services.BrowseQuery
	export  *services.ExportResult

	activityLimit int
	activity      *services.ActivityResult
}

func (s *stubAdminService) Browse(ctx context.Context, q services.BrowseQuery) (*services.BrowsePage, error) {
	s.browseQ = q
	return s.browse, s.browseErr
}

func (s *stubAdminService) Stats(ctx context.Context, key string) (*services.StatsResult, error) {
	s.statsKey = key
	return s.stats, nil
}

func (s *stubAdminService) Export(ctx context.Context, q services.BrowseQuery) (*services.ExportResult, error) {
	s.exportQ = q
	return s.export, nil
}

func (s *stubAdminService) Activity(ctx context.Context, limit int) (*services.ActivityResult, error) {
	s.activityLimit = limit
	return s.activity, nil
}

type stubAuthService struct {
	session  *services.Session
	loginErr error
}

func (s *stubAuthService) Login(ctx context.Context, password string) (*services.Session, error) {
	return s.session, s.loginErr
}

func (s *stubAuthService) ValidateToken(tokenString string) error { return nil }

func (s *stubAuthService) SessionTTL() time.Duration { return time.Hour }
