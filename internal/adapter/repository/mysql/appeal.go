package mysql

import (
	"context"
	"errors"

	"loanreview-backend/internal/domain/appeal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AppealRepository struct{ db *gorm.DB }

func NewAppealRepository(db *gorm.DB) *AppealRepository { return &AppealRepository{db: db} }

func (r *AppealRepository) Create(ctx context.Context, a *appeal.Appeal) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *AppealRepository) GetByAppealID(ctx context.Context, appealID string) (*appeal.Appeal, error) {
	var out appeal.Appeal
	if err := r.db.WithContext(ctx).Preload("Application").Where("appeal_id = ?", appealID).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appeal.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *AppealRepository) GetPendingByLoanID(ctx context.Context, loanID uint64) (*appeal.Appeal, error) {
	var out appeal.Appeal
	err := r.db.WithContext(ctx).
		Where("loan_id = ? AND status = ?", loanID, appeal.StatusPending).
		Order("id DESC").
		First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appeal.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// MarkReviewed only touches rows still pending, so of two concurrent reviews
// exactly one sees RowsAffected == 1.
func (r *AppealRepository) MarkReviewed(ctx context.Context, appealID string, rv appeal.Review) (*appeal.Appeal, error) {
	res := r.db.WithContext(ctx).
		Model(&appeal.Appeal{}).
		Where("appeal_id = ? AND status = ?", appealID, appeal.StatusPending).
		Updates(map[string]any{
			"status":         appeal.StatusReviewed,
			"review_comment": rv.Comment,
			"final_decision": rv.FinalDecision,
			"reviewed_by":    rv.ReviewedBy,
			"reviewed_at":    rv.ReviewedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByAppealID(ctx, appealID); err != nil {
			return nil, err
		}
		return nil, appeal.ErrAlreadyReviewed
	}
	return r.GetByAppealID(ctx, appealID)
}

func (r *AppealRepository) ListByUserID(ctx context.Context, userID string) ([]appeal.Appeal, error) {
	var out []appeal.Appeal
	err := r.db.WithContext(ctx).
		Preload("Application").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// ListPending is the review queue, oldest first.
func (r *AppealRepository) ListPending(ctx context.Context) ([]appeal.Appeal, error) {
	var out []appeal.Appeal
	err := r.db.WithContext(ctx).
		Preload("Application").
		Where("status = ?", appeal.StatusPending).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
