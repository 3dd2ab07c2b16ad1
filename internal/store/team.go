package store

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/synergysphere/synergysphere/internal/models"
)

// FindTeamMember returns userID's membership row for projectID.
func (s *Store) FindTeamMember(ctx context.Context, userID, projectID uint) (*models.TeamMember, error) {
	return findOne[models.TeamMember](s.conn(ctx), "user_id = ? AND project_id = ?", userID, projectID)
}

func (s *Store) FindTeamMemberByID(ctx context.Context, id uint) (*models.TeamMember, error) {
	return findOne[models.TeamMember](s.conn(ctx), "id = ?", id)
}

func (s *Store) ListTeamMembers(ctx context.Context, projectID uint) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := s.conn(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&members).Error
	return members, err
}

// CreateTeamMember relies on the (user_id, project_id) unique index, so two
// racing inserts for the same pair leave exactly one row and one ErrDuplicate.
func (s *Store) CreateTeamMember(ctx context.Context, member *models.TeamMember) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(member).Error; err != nil {
		return translate(err)
	}
	return s.conn(ctx).Preload("User").First(member, member.ID).Error
}

func (s *Store) DeleteTeamMember(ctx context.Context, id uint) error {
	return s.conn(ctx).Delete(&models.TeamMember{}, id).Error
}
