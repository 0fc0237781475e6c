package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/logger"
	"github.com/tradingconf/registration/internal/metrics"
	"github.com/tradingconf/registration/internal/repository"
	"github.com/tradingconf/registration/internal/repository/application"
	"github.com/tradingconf/registration/internal/repository/invite"
	"github.com/tradingconf/registration/internal/repository/team"
	"github.com/tradingconf/registration/internal/repository/user"
	"github.com/tradingconf/registration/internal/storage"
)

// BlobStore stores uploaded files.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	Remove(ctx context.Context, paths ...string) error
}

// ApplicationForm holds the validated fields of an application submission.
type ApplicationForm struct {
	School              string
	Major               string
	GradYear            string
	HowDidYouHear       string
	TravelReimbursement bool
	TradingExperience   bool
	Teammates           []string
}

// SubmitResult is returned by a successful submission.
type SubmitResult struct {
	ApplicationID int64
	ResumePath    string
	TeamID        int64
}

// ApplicationService handles application submission.
type ApplicationService struct {
	db             *sql.DB
	blobs          BlobStore
	maxResumeBytes int64
	log            *logger.Logger
	now            func() time.Time
}

// NewApplicationService creates a new application service.
func NewApplicationService(db *sql.DB, blobs BlobStore, maxResumeBytes int64, log *logger.Logger) *ApplicationService {
	return &ApplicationService{
		db:             db,
		blobs:          blobs,
		maxResumeBytes: maxResumeBytes,
		log:            log,
		now:            time.Now,
	}
}

// Submit persists the application, uploads the resume and makes sure the
// applicant is on a team, all inside one transaction. Listed teammates who
// exist receive a pending invite to that team.
func (s *ApplicationService) Submit(ctx context.Context, id domain.Identity, form ApplicationForm, resume domain.Resume) (result *SubmitResult, err error) {
	defer func() { metrics.ObserveOperation("submit_application", err) }()

	if len(resume.Data) == 0 {
		return nil, ErrInvalidApplication
	}
	if s.maxResumeBytes > 0 && int64(len(resume.Data)) > s.maxResumeBytes {
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrResumeTooLarge, s.maxResumeBytes)
	}
	contentType, err := storage.DetectResumeType(resume.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedResume, err)
	}

	var uploadedPath string
	err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		u, err := user.GetForUpdate(ctx, tx, id.UserID)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrUserNotFound
			}
			return err
		}

		applicationID, err := application.Create(ctx, tx, &domain.Application{
			UserID:              id.UserID,
			UserEmail:           id.ContactEmail(),
			UserName:            id.DisplayName(),
			School:              form.School,
			Major:               form.Major,
			GradYear:            form.GradYear,
			HowDidYouHear:       form.HowDidYouHear,
			TravelReimbursement: form.TravelReimbursement,
			TradingExperience:   form.TradingExperience,
			Teammates:           form.Teammates,
		})
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrApplicationExists
			}
			return err
		}

		// The user row stays locked for the upload; the path needs the application id.
		path := storage.ResumePath(id.UserID, applicationID, resume.Filename, s.now())
		if err := s.blobs.Upload(ctx, path, resume.Data, contentType); err != nil {
			return fmt.Errorf("failed to upload resume: %w", err)
		}
		uploadedPath = path

		if err := application.SetResumePath(ctx, tx, applicationID, path); err != nil {
			return err
		}

		teamID, err := s.ensureTeam(ctx, tx, u)
		if err != nil {
			return err
		}

		if err := s.inviteTeammates(ctx, tx, id.UserID, teamID, form.Teammates); err != nil {
			return err
		}

		result = &SubmitResult{ApplicationID: applicationID, ResumePath: path, TeamID: teamID}
		return nil
	})
	if err != nil {
		if uploadedPath != "" {
			s.removeResume(ctx, uploadedPath)
		}
		return nil, err
	}

	s.log.Infow("application submitted", "user_id", id.UserID, "application_id", result.ApplicationID, "team_id", result.TeamID)
	return result, nil
}

// Status reports whether the user has submitted an application.
func (s *ApplicationService) Status(ctx context.Context, userID string) (bool, error) {
	return application.IsSubmitted(ctx, s.db, userID)
}

// ensureTeam returns the user's team, creating a single-member team if they have none.
func (s *ApplicationService) ensureTeam(ctx context.Context, tx *sql.Tx, u *domain.User) (int64, error) {
	if u.TeamID != nil {
		return *u.TeamID, nil
	}

	teamID, err := team.Create(ctx, tx, []string{u.UserID})
	if err != nil {
		return 0, err
	}
	if err := user.SetTeam(ctx, tx, u.UserID, &teamID); err != nil {
		return 0, err
	}
	return teamID, nil
}

// inviteTeammates sends a pending invite to every listed teammate that exists,
// is not the applicant, is not already on the team and has no pending invite.
func (s *ApplicationService) inviteTeammates(ctx context.Context, tx *sql.Tx, fromUserID string, teamID int64, teammates []string) error {
	candidates := make([]string, 0, len(teammates))
	for _, id := range teammates {
		if id != fromUserID {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	t, err := team.GetForUpdate(ctx, tx, teamID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrTeamNotFound
		}
		return err
	}

	existing, err := user.ListByIDs(ctx, tx, candidates)
	if err != nil {
		return err
	}

	for _, mate := range existing {
		if t.HasMember(mate.UserID) {
			continue
		}
		pending, err := invite.HasPending(ctx, tx, teamID, mate.UserID)
		if err != nil {
			return err
		}
		if pending {
			continue
		}
		if _, err := invite.Create(ctx, tx, fromUserID, mate.UserID, teamID); err != nil {
			return err
		}
	}
	return nil
}

// removeResume deletes an uploaded resume whose transaction did not commit.
func (s *ApplicationService) removeResume(ctx context.Context, path string) {
	if err := s.blobs.Remove(context.WithoutCancel(ctx), path); err != nil {
		s.log.Warnw("failed to remove orphaned resume", "path", path, "error", err)
		return
	}
	s.log.Debugw("removed orphaned resume", "path", path)
}
