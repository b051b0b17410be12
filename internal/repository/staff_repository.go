package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"church-admin-be/internal/domain"
)

type StaffRepository interface {
	ListActiveByUserTypes(ctx context.Context, userTypes []string) ([]domain.StaffUser, error)
}

type staffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) ListActiveByUserTypes(ctx context.Context, userTypes []string) ([]domain.StaffUser, error) {
	var users []domain.StaffUser
	query := `
		SELECT user_id, first_name, last_name, email, user_type, is_active, created_at
		FROM user_profiles
		WHERE user_type = ANY($1)
		  AND is_active = true
		  AND email IS NOT NULL
		ORDER BY last_name, first_name`
	err := r.db.SelectContext(ctx, &users, query, pq.Array(userTypes))
	return users, err
}
