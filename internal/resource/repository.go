package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const columns = `id, course_id, name, intro, type, url, remote_id, id_number, created_at, updated_at`

// Repository handles all resource database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts res and fills in its generated fields.
func (r *Repository) Create(ctx context.Context, res *Resource) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO resources (course_id, name, intro, type, url, remote_id, id_number)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		res.CourseID, res.Name, res.Intro, res.Type, res.URL, res.RemoteID, res.IDNumber,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}

// GetByID fetches a resource by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Resource, error) {
	res, err := scanResource(r.db.QueryRow(ctx,
		`SELECT `+columns+` FROM resources WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get resource by id: %w", err)
	}
	return res, nil
}

// GetByIDNumber fetches the resource of a course carrying idNumber.
func (r *Repository) GetByIDNumber(ctx context.Context, courseID int64, idNumber string) (*Resource, error) {
	res, err := scanResource(r.db.QueryRow(ctx,
		`SELECT `+columns+` FROM resources WHERE course_id = $1 AND id_number = $2`, courseID, idNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get resource by idnumber: %w", err)
	}
	return res, nil
}

// ListByCourse returns the resources of a course, oldest first.
func (r *Repository) ListByCourse(ctx context.Context, courseID int64) ([]*Resource, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+columns+` FROM resources WHERE course_id = $1 ORDER BY id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	list := []*Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return list, nil
}

// Update stores the name and intro of res and refreshes its timestamps.
func (r *Repository) Update(ctx context.Context, res *Resource) error {
	err := r.db.QueryRow(ctx,
		`UPDATE resources SET name = $2, intro = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		res.ID, res.Name, res.Intro,
	).Scan(&res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	return nil
}

// Delete removes a resource by id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanResource(row pgx.Row) (*Resource, error) {
	res := &Resource{}
	err := row.Scan(&res.ID, &res.CourseID, &res.Name, &res.Intro, &res.Type, &res.URL,
		&res.RemoteID, &res.IDNumber, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
