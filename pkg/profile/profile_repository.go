package profile

import (
	"context"
	"github.com/tanmald/plate-check-mvp/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ProfileRepository interface {
		GetProfileByID(ctx context.Context, userID string) (*entities.UserProfile, error)
		// UpsertProfile inserts the row or overwrites the given columns of
		// the row with the same id.
		UpsertProfile(ctx context.Context, profile *entities.UserProfile, columns []string) error
	}

	profileRepository struct {
		db *gorm.DB
	}
)

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

func (r *profileRepository) GetProfileByID(ctx context.Context, userID string) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	if err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpsertProfile(ctx context.Context, profile *entities.UserProfile, columns []string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(profile).Error
}
