package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EntitlementRepository struct {
	DB *pgxpool.Pool
}

func NewEntitlementRepository(db *pgxpool.Pool) *EntitlementRepository {
	return &EntitlementRepository{DB: db}
}

// ExistsAnyOwned returns the first courseid from courseIDs the user already
// owns, or "" when none are owned.
func (r *EntitlementRepository) ExistsAnyOwned(ctx context.Context, userID string, courseIDs []string) (string, error) {
	if len(courseIDs) == 0 {
		return "", nil
	}
	q := `SELECT courseid FROM customer_courses
		WHERE userid = $1 AND courseid = ANY($2)
		LIMIT 1`
	var id string
	err := r.DB.QueryRow(ctx, q, userID, courseIDs).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

// IsOwned reports whether the user is entitled to the course.
func (r *EntitlementRepository) IsOwned(ctx context.Context, userID, courseID string) (bool, error) {
	id, err := r.ExistsAnyOwned(ctx, userID, []string{courseID})
	if err != nil {
		return false, err
	}
	return id != "", nil
}

// GrantTx inserts entitlement records inside the provided tx, one INSERT for
// all courses. Duplicates are absorbed by the unique constraint.
func (r *EntitlementRepository) GrantTx(ctx context.Context, tx pgx.Tx, userID string, courseIDs []string) error {
	if len(courseIDs) == 0 {
		return nil
	}
	var sb strings.Builder
	args := make([]interface{}, 0, len(courseIDs)*3)
	sb.WriteString("INSERT INTO customer_courses (userid, courseid, granted_at) VALUES ")
	for i, cid := range courseIDs {
		if i > 0 {
			sb.WriteString(",")
		}
		pi := i*3 + 1
		sb.WriteString(fmt.Sprintf("($%d,$%d,$%d)", pi, pi+1, pi+2))
		args = append(args, userID, cid, time.Now())
	}
	_, err := tx.Exec(ctx, sb.String()+" ON CONFLICT (userid, courseid) DO NOTHING", args...)
	return err
}

// ListByUser returns the user's owned courses with video progress.
func (r *EntitlementRepository) ListByUser(ctx context.Context, userID string) ([]model.Entitlement, error) {
	query := `
		SELECT userid, courseid, progress_seconds, granted_at, updated_at
		FROM customer_courses
		WHERE userid=$1
		ORDER BY granted_at DESC
	`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Entitlement
	for rows.Next() {
		var e model.Entitlement
		if err := rows.Scan(&e.UserID, &e.CourseID, &e.ProgressSeconds, &e.GrantedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// UpdateProgress upserts the periodic video-progress sync for an owned
// course. Returns an error when the user is not entitled.
func (r *EntitlementRepository) UpdateProgress(ctx context.Context, userID, courseID string, seconds int64) error {
	query := `
		UPDATE customer_courses
		SET progress_seconds=$3, updated_at=NOW()
		WHERE userid=$1 AND courseid=$2
	`
	tag, err := r.DB.Exec(ctx, query, userID, courseID, seconds)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("course not owned")
	}
	return nil
}
