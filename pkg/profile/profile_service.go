package profile

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/entities"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"time"
)

type (
	ProfileService interface {
		GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
		UpdateProfile(ctx context.Context, identity domain.Identity, req domain.UpdateProfileRequest) (*domain.Profile, error)
	}

	profileService struct {
		profileRepository ProfileRepository
		log               *zap.Logger
		now               func() time.Time
	}
)

func NewProfileService(profileRepository ProfileRepository, log *zap.Logger) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		log:               log,
		now:               time.Now,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	row, err := s.profileRepository.GetProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return toProfile(row), nil
}

// UpdateProfile upserts the identity's row. The email falls back to the
// identity email and the full name is only written when given.
func (s *profileService) UpdateProfile(ctx context.Context, identity domain.Identity, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	id, err := uuid.Parse(identity.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	email := req.Email
	if email == "" {
		email = identity.Email
	}

	now := s.now()
	row := &entities.UserProfile{
		ID:        id,
		Email:     email,
		Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	columns := []string{"email", "updated_at"}
	if req.FullName != "" {
		fullName := req.FullName
		row.FullName = &fullName
		columns = append(columns, "full_name")
	}

	if err := s.profileRepository.UpsertProfile(ctx, row, columns); err != nil {
		s.log.Error("failed to upsert profile", zap.String("user_id", identity.ID), zap.Error(err))
		return nil, err
	}

	return s.GetProfile(ctx, identity.ID)
}

func toProfile(row *entities.UserProfile) *domain.Profile {
	return &domain.Profile{
		ID:        row.ID.String(),
		Email:     row.Email,
		FullName:  row.FullName,
		AvatarURL: row.AvatarURL,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
