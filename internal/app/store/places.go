package store

import (
	"context"
	"fmt"
	"strings"

	"placerank/internal/app/place"
)

const placeColumns = `p.id, p.owner_id, p.name, p.location, p.category, p.description, p.photo_url,
	COALESCE(AVG(r.stars), 0)::float8 AS rating, COUNT(r.id)::int AS reviews, p.created_at`

const placeFromClause = `FROM places p LEFT JOIN ratings r ON r.place_id = p.id`

// CreatePlace inserts a place row owned by an organization account.
func (s *Store) CreatePlace(ctx context.Context, p place.Place) (place.Place, error) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO places (id, owner_id, name, location, category, description, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.OwnerID, p.Name, p.Location, p.Category, p.Description, p.PhotoURL,
	)
	if err != nil {
		return place.Place{}, err
	}
	return s.GetPlace(ctx, p.ID)
}

// GetPlace fetches a single place with its aggregated rating.
func (s *Store) GetPlace(ctx context.Context, id string) (place.Place, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+placeColumns+` `+placeFromClause+` WHERE p.id = $1 GROUP BY p.id`, id)
	return scanPlace(row)
}

// ListPlaces returns places matching the filter, newest first. Filtering on
// the aggregated average uses HAVING since the average is computed per group.
func (s *Store) ListPlaces(ctx context.Context, f place.Filter) ([]place.Place, error) {
	var conds []string
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+strings.ToLower(f.Query)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(LOWER(p.name) LIKE $%d OR LOWER(p.location) LIKE $%d)", n, n))
	}

	query := `SELECT ` + placeColumns + ` ` + placeFromClause
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` GROUP BY p.id`

	if f.MinRating > 0 {
		args = append(args, f.MinRating)
		query += fmt.Sprintf(` HAVING COALESCE(AVG(r.stars), 0) >= $%d`, len(args))
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []place.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// ListPlacesByOwner returns all places published by one organization.
func (s *Store) ListPlacesByOwner(ctx context.Context, ownerID string) ([]place.Place, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+placeColumns+` `+placeFromClause+` WHERE p.owner_id = $1 GROUP BY p.id ORDER BY p.created_at DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []place.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// UpdatePlace rewrites the editable columns of a place.
func (s *Store) UpdatePlace(ctx context.Context, p place.Place) (place.Place, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE places SET name = $2, location = $3, category = $4, description = $5, photo_url = $6
		WHERE id = $1`,
		p.ID, p.Name, p.Location, p.Category, p.Description, p.PhotoURL,
	)
	if err != nil {
		return place.Place{}, err
	}
	if tag.RowsAffected() == 0 {
		return place.Place{}, ErrNotFound
	}
	return s.GetPlace(ctx, p.ID)
}

// DeletePlace removes a place; ratings and comments go with it via cascade.
func (s *Store) DeletePlace(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertRating records or replaces one account's rating of a place and
// returns the place with its fresh average.
func (s *Store) UpsertRating(ctx context.Context, r place.Rating) (place.Place, error) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ratings (id, place_id, account_id, stars)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (place_id, account_id) DO UPDATE SET stars = EXCLUDED.stars`,
		r.ID, r.PlaceID, r.AccountID, r.Stars,
	)
	if err != nil {
		return place.Place{}, err
	}
	return s.GetPlace(ctx, r.PlaceID)
}

// AddComment stores a new comment on a place.
func (s *Store) AddComment(ctx context.Context, c place.Comment) (place.Comment, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO comments (id, place_id, account_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, place_id, account_id, text, created_at`,
		c.ID, c.PlaceID, c.AccountID, c.Text,
	)
	var out place.Comment
	if err := row.Scan(&out.ID, &out.PlaceID, &out.AccountID, &out.Text, &out.CreatedAt); err != nil {
		return place.Comment{}, mapNoRows(err)
	}
	out.AuthorName = c.AuthorName
	return out, nil
}

// ListComments returns a place's comments with author names, newest first.
func (s *Store) ListComments(ctx context.Context, placeID string) ([]place.Comment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.place_id, c.account_id, a.name, c.text, c.created_at
		FROM comments c JOIN accounts a ON a.id = c.account_id
		WHERE c.place_id = $1 ORDER BY c.created_at DESC`,
		placeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []place.Comment
	for rows.Next() {
		var c place.Comment
		if err := rows.Scan(&c.ID, &c.PlaceID, &c.AccountID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// ListRatingsByAccount returns the ratings one account has given, newest first.
func (s *Store) ListRatingsByAccount(ctx context.Context, accountID string) ([]place.Rating, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, place_id, account_id, stars, created_at
		FROM ratings WHERE account_id = $1 ORDER BY created_at DESC`,
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []place.Rating
	for rows.Next() {
		var r place.Rating
		if err := rows.Scan(&r.ID, &r.PlaceID, &r.AccountID, &r.Stars, &r.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// ListCommentsByAccount returns the comments one account has written, newest first.
func (s *Store) ListCommentsByAccount(ctx context.Context, accountID string) ([]place.Comment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.place_id, c.account_id, a.name, c.text, c.created_at
		FROM comments c JOIN accounts a ON a.id = c.account_id
		WHERE c.account_id = $1 ORDER BY c.created_at DESC`,
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []place.Comment
	for rows.Next() {
		var c place.Comment
		if err := rows.Scan(&c.ID, &c.PlaceID, &c.AccountID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func scanPlace(row rowScanner) (place.Place, error) {
	var p place.Place
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Location, &p.Category,
		&p.Description, &p.PhotoURL, &p.Rating, &p.Reviews, &p.CreatedAt)
	if err != nil {
		return place.Place{}, mapNoRows(err)
	}
	return p, nil
}
