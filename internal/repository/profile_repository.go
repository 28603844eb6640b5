package repository

import (
	"context"

	"admitrag/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProfileRepository(db *pgxpool.Pool, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := squirrel.Select("user_id", "full_name", "grade_level", "gpa", "intended_major", "graduation_year", "updated_at").
		From("profiles").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Profile
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.UserID, &p.FullName, &p.GradeLevel, &p.GPA, &p.IntendedMajor, &p.GraduationYear, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// ListSchools returns the user's most recently updated school-list entries
func (r *ProfileRepository) ListSchools(ctx context.Context, userID uuid.UUID, limit int) ([]*models.SchoolEntry, error) {
	query := squirrel.Select("id", "user_id", "name", "status", "application_type", "updated_at").
		From("school_list").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schools []*models.SchoolEntry
	for rows.Next() {
		var s models.SchoolEntry
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Status, &s.ApplicationType, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schools = append(schools, &s)
	}

	return schools, rows.Err()
}
