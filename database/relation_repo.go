package database

import (
	"context"

	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RelationRepo struct {
	db *gorm.DB
}

func NewRelationRepo(db *gorm.DB) *RelationRepo {
	return &RelationRepo{db}
}

// Exists reports whether the (user, target, kind) row is present.
func (r *RelationRepo) Exists(ctx context.Context, kind models.RelationKind, userID, targetID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserRelation{}).
		Where("user_id = ? AND target_id = ? AND kind = ?", userID, targetID, kind).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new relation row. A concurrent duplicate insert fails on the
// (user, target, kind) unique index; the caller translates that to Conflict.
func (r *RelationRepo) Add(ctx context.Context, relation *models.UserRelation) error {
	return r.db.WithContext(ctx).Create(relation).Error
}

// Remove deletes the (user, target, kind) row and reports how many rows went
// away, so the caller can distinguish a successful delete from a miss.
func (r *RelationRepo) Remove(ctx context.Context, kind models.RelationKind, userID, targetID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ? AND kind = ?", userID, targetID, kind).
		Delete(&models.UserRelation{})
	return result.RowsAffected, result.Error
}

// TargetIDs returns every target the user holds a relation of the given kind
// with. Used to annotate listings in one query instead of one per row.
func (r *RelationRepo) TargetIDs(ctx context.Context, kind models.RelationKind, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.UserRelation{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Pluck("target_id", &ids).Error
	return ids, err
}

// FindFollowedAuthors returns one page of the users the follower subscribes
// to, ordered by username, plus the total count.
func (r *RelationRepo) FindFollowedAuthors(ctx context.Context, followerID uuid.UUID, limit, offset int) ([]*models.User, int64, error) {
	followed := r.db.Model(&models.UserRelation{}).
		Select("target_id").
		Where("user_id = ? AND kind = ?", followerID, models.RelationSubscribe)

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id IN (?)", followed).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var users []*models.User
	err := r.db.WithContext(ctx).
		Where("id IN (?)", followed).
		Order("username").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, count, err
}
