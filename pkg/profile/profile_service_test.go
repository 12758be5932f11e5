package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/entities"
)

type fakeProfileRepository struct {
	rows    map[string]*entities.UserProfile
	columns []string
	err     error
}

func (f *fakeProfileRepository) GetProfileByID(_ context.Context, userID string) (*entities.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeProfileRepository) UpsertProfile(_ context.Context, profile *entities.UserProfile, columns []string) error {
	if f.err != nil {
		return f.err
	}
	f.columns = columns
	existing, ok := f.rows[profile.ID.String()]
	if !ok {
		f.rows[profile.ID.String()] = profile
		return nil
	}
	existing.Email = profile.Email
	existing.UpdatedAt = profile.UpdatedAt
	if profile.FullName != nil {
		existing.FullName = profile.FullName
	}
	return nil
}

func newTestService(t *testing.T, repo ProfileRepository) *profileService {
	svc := NewProfileService(repo, zaptest.NewLogger(t)).(*profileService)
	svc.now = func() time.Time { return time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestGetProfile_MissingRowIsError(t *testing.T) {
	svc := newTestService(t, &fakeProfileRepository{rows: map[string]*entities.UserProfile{}})

	_, err := svc.GetProfile(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGetProfile_InvalidID(t *testing.T) {
	svc := newTestService(t, &fakeProfileRepository{})

	_, err := svc.GetProfile(context.Background(), "test-user-id")

	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestUpdateProfile_EmailFallsBackToIdentity(t *testing.T) {
	repo := &fakeProfileRepository{rows: map[string]*entities.UserProfile{}}
	svc := newTestService(t, repo)
	identity := domain.Identity{ID: uuid.NewString(), Email: "sarah@example.com"}

	p, err := svc.UpdateProfile(context.Background(), identity, domain.UpdateProfileRequest{FullName: "Sarah Connor"})

	require.NoError(t, err)
	assert.Equal(t, "sarah@example.com", p.Email)
	assert.Equal(t, "Sarah Connor", *p.FullName)
	assert.Equal(t, []string{"email", "updated_at", "full_name"}, repo.columns)
}

func TestUpdateProfile_KeepsNameWhenNotGiven(t *testing.T) {
	id := uuid.New()
	name := "Sarah"
	repo := &fakeProfileRepository{rows: map[string]*entities.UserProfile{
		id.String(): {ID: id, Email: "old@example.com", FullName: &name},
	}}
	svc := newTestService(t, repo)

	p, err := svc.UpdateProfile(context.Background(), domain.Identity{ID: id.String()}, domain.UpdateProfileRequest{Email: "new@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", p.Email)
	assert.Equal(t, "Sarah", *p.FullName)
	assert.Equal(t, []string{"email", "updated_at"}, repo.columns)
}

func TestUpdateProfile_RepositoryError(t *testing.T) {
	svc := newTestService(t, &fakeProfileRepository{err: errors.New("connection refused")})

	_, err := svc.UpdateProfile(context.Background(), domain.Identity{ID: uuid.NewString()}, domain.UpdateProfileRequest{})

	assert.EqualError(t, err, "connection refused")
}
