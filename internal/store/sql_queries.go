package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-progress-tracker/models"
)

const (
	createUser = `INSERT INTO users (user_id, username, email, password_hash, created_at)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, username, email, password_hash, created_at;`

	findUserByEmail = `SELECT user_id, username, email, password_hash, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, username, email, password_hash, created_at
    FROM users
    WHERE user_id = $1;`

	updatePasswordHash = `UPDATE users SET password_hash = $1 WHERE user_id = $2;`
)

const progressTable = "progress"

var progressColumns = []string{
	"id", "user_id", "platform", "problems_solved", "total_problems", "last_updated",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func returningProgress() string {
	return "RETURNING id, user_id, platform, problems_solved, total_problems, last_updated"
}

// buildUpsertProgressQuery inserts a record or overwrites the counts of the
// existing (user_id, platform) row. The id of an existing row is kept and
// last_updated never moves backwards.
func buildUpsertProgressQuery(p models.Progress) (string, []any, error) {
	query, args, err := psql.Insert(progressTable).
		Columns(progressColumns...).
		Values(p.ID, p.UserID, p.Platform, p.ProblemsSolved, p.TotalProblems, p.LastUpdated).
		Suffix(`ON CONFLICT (user_id, platform) DO UPDATE SET
			problems_solved = EXCLUDED.problems_solved,
			total_problems = EXCLUDED.total_problems,
			last_updated = GREATEST(progress.last_updated, EXCLUDED.last_updated)`).
		Suffix(returningProgress()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildUpdateProgressQuery(p models.Progress) (string, []any, error) {
	query, args, err := psql.Update(progressTable).
		Set("problems_solved", p.ProblemsSolved).
		Set("total_problems", p.TotalProblems).
		Set("last_updated", sq.Expr("GREATEST(last_updated, ?)", p.LastUpdated)).
		Where(sq.And{sq.Eq{"user_id": p.UserID}, sq.Eq{"platform": p.Platform}}).
		Suffix(returningProgress()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildListProgressQuery(userID string) (string, []any, error) {
	query, args, err := psql.Select(progressColumns...).
		From(progressTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("last_updated DESC", "id DESC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildDeleteProgressQuery(userID, progressID string) (string, []any, error) {
	query, args, err := psql.Delete(progressTable).
		Where(sq.And{sq.Eq{"id": progressID}, sq.Eq{"user_id": userID}}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProgress(row scanner) (models.Progress, error) {
	var p models.Progress
	var lastUpdated time.Time
	if err := row.Scan(&p.ID, &p.UserID, &p.Platform, &p.ProblemsSolved, &p.TotalProblems, &lastUpdated); err != nil {
		return models.Progress{}, err
	}
	p.LastUpdated = lastUpdated.UTC()

	return p, nil
}
