package pereval

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/cache"
	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/db"

	"github.com/jackc/pgx/v5"
)

type Service struct {
	db    db.Querier
	cache *cache.Cache
}

func NewService(q db.Querier, c *cache.Cache) *Service {
	return &Service{db: q, cache: c}
}

func cacheKey(id int64) string {
	return "pass:" + strconv.FormatInt(id, 10)
}

// Submit validates a composite payload and assembles the four-entity
// graph plus images inside one transaction. The submitter is reused by
// email when one already exists; payload fields never overwrite an
// existing submitter row.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (Pass, error) {
	if missing := req.MissingKeys(); len(missing) > 0 {
		return Pass{}, &MissingFieldsError{Fields: missing}
	}
	if invalid := req.InvalidFields(); len(invalid) > 0 {
		return Pass{}, &InvalidDataError{Fields: invalid}
	}

	var pass Pass
	err := db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		user, err := getOrCreateUser(ctx, tx, *req.User)
		if err != nil {
			return err
		}

		coords := Coords{
			Latitude:  *req.Coords.Latitude,
			Longitude: *req.Coords.Longitude,
			Height:    *req.Coords.Height,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO pereval_coords (latitude, longitude, height)
			VALUES ($1,$2,$3)
			RETURNING id
		`, coords.Latitude, coords.Longitude, coords.Height).Scan(&coords.ID)
		if err != nil {
			return err
		}

		level := Level{
			Winter: strOr(req.Level.Winter, ""),
			Summer: strOr(req.Level.Summer, ""),
			Autumn: strOr(req.Level.Autumn, ""),
			Spring: strOr(req.Level.Spring, ""),
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO pereval_level (winter, summer, autumn, spring)
			VALUES ($1,$2,$3,$4)
			RETURNING id
		`, level.Winter, level.Summer, level.Autumn, level.Spring).Scan(&level.ID)
		if err != nil {
			return err
		}

		pass = Pass{
			BeautyTitle: strOr(req.BeautyTitle, ""),
			Title:       *req.Title,
			OtherTitles: strOr(req.OtherTitles, ""),
			Connect:     strOr(req.Connect, ""),
			User:        user,
			Coords:      coords,
			Level:       level,
			Images:      []Image{},
			Status:      StatusNew,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO pereval_added (beauty_title, title, other_titles, connect, user_id, coords_id, level_id, status)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id, add_time
		`, pass.BeautyTitle, pass.Title, pass.OtherTitles, pass.Connect,
			user.ID, coords.ID, level.ID, string(StatusNew)).Scan(&pass.ID, &pass.AddTime)
		if err != nil {
			return err
		}

		for _, img := range req.Images {
			image := Image{Title: img.Title, Data: DecodeImageData(img.Data)}
			err = tx.QueryRow(ctx, `
				INSERT INTO pereval_images (title, data, pass_id)
				VALUES ($1,$2,$3)
				RETURNING id
			`, image.Title, image.Data, pass.ID).Scan(&image.ID)
			if err != nil {
				return err
			}
			pass.Images = append(pass.Images, image)
		}
		return nil
	})
	if err != nil {
		return Pass{}, &StorageError{Err: err}
	}
	return pass, nil
}

func getOrCreateUser(ctx context.Context, tx pgx.Tx, payload UserPayload) (User, error) {
	var user User
	err := tx.QueryRow(ctx, `
		SELECT id, email, fam, name, otc, phone
		FROM pereval_users WHERE email=$1
	`, *payload.Email).Scan(&user.ID, &user.Email, &user.Fam, &user.Name, &user.Otc, &user.Phone)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return User{}, err
	}

	user = User{
		Email: *payload.Email,
		Fam:   *payload.Fam,
		Name:  *payload.Name,
		Otc:   strOr(payload.Otc, ""),
		Phone: *payload.Phone,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO pereval_users (email, fam, name, otc, phone)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, user.Email, user.Fam, user.Name, user.Otc, user.Phone).Scan(&user.ID)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// GetByID returns the fully assembled pass, read-through cached when a
// cache is configured.
func (s *Service) GetByID(ctx context.Context, id int64) (Pass, error) {
	if data, ok := s.cache.Get(ctx, cacheKey(id)); ok {
		var pass Pass
		if json.Unmarshal(data, &pass) == nil {
			return pass, nil
		}
	}

	pass, err := s.loadPass(ctx, id)
	if err != nil {
		return Pass{}, err
	}
	if data, err := json.Marshal(pass); err == nil {
		s.cache.Set(ctx, cacheKey(id), data)
	}
	return pass, nil
}

const passSelect = `
	SELECT p.id, p.beauty_title, p.title, p.other_titles, p.connect, p.add_time, p.status,
	       u.id, u.email, u.fam, u.name, u.otc, u.phone,
	       c.id, c.latitude, c.longitude, c.height,
	       l.id, l.winter, l.summer, l.autumn, l.spring
	FROM pereval_added p
	JOIN pereval_users u ON u.id = p.user_id
	JOIN pereval_coords c ON c.id = p.coords_id
	JOIN pereval_level l ON l.id = p.level_id
`

func scanPass(row pgx.Row) (Pass, error) {
	var p Pass
	err := row.Scan(
		&p.ID, &p.BeautyTitle, &p.Title, &p.OtherTitles, &p.Connect, &p.AddTime, &p.Status,
		&p.User.ID, &p.User.Email, &p.User.Fam, &p.User.Name, &p.User.Otc, &p.User.Phone,
		&p.Coords.ID, &p.Coords.Latitude, &p.Coords.Longitude, &p.Coords.Height,
		&p.Level.ID, &p.Level.Winter, &p.Level.Summer, &p.Level.Autumn, &p.Level.Spring,
	)
	return p, err
}

func (s *Service) loadPass(ctx context.Context, id int64) (Pass, error) {
	pass, err := scanPass(s.db.QueryRow(ctx, passSelect+`WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Pass{}, ErrNotFound
		}
		return Pass{}, &StorageError{Err: err}
	}
	if pass.Images, err = s.loadImages(ctx, id); err != nil {
		return Pass{}, &StorageError{Err: err}
	}
	return pass, nil
}

func (s *Service) loadImages(ctx context.Context, passID int64) ([]Image, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, data FROM pereval_images
		WHERE pass_id=$1 ORDER BY id
	`, passID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.Title, &img.Data); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ListByEmail returns every pass submitted under the email, newest
// first. An unknown email yields an empty slice, not an error.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]Pass, error) {
	rows, err := s.db.Query(ctx, passSelect+`WHERE u.email = $1 ORDER BY p.add_time DESC`, email)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	defer rows.Close()

	passes := []Pass{}
	for rows.Next() {
		pass, err := scanPass(rows)
		if err != nil {
			return nil, &StorageError{Err: err}
		}
		passes = append(passes, pass)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Err: err}
	}
	for i := range passes {
		if passes[i].Images, err = s.loadImages(ctx, passes[i].ID); err != nil {
			return nil, &StorageError{Err: err}
		}
	}
	return passes, nil
}

// Update applies a partial patch to a still-unmoderated pass. The two
// gates run before any write: the status gate first, then the submitter
// field-diff gate. A submitter block that matches the stored row is
// tolerated but never written. All changes land in one transaction.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) error {
	current, err := s.loadPass(ctx, id)
	if err != nil {
		return err
	}
	if !CanEdit(current.Status) {
		return &EditNotAllowedError{Status: current.Status}
	}
	if req.User != nil {
		if diff := DiffUserFields(current.User, *req.User); len(diff) > 0 {
			return &ForbiddenFieldChangeError{Fields: diff}
		}
	}

	err = db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if req.BeautyTitle != nil || req.Title != nil || req.OtherTitles != nil || req.Connect != nil {
			p := current
			if req.BeautyTitle != nil {
				p.BeautyTitle = *req.BeautyTitle
			}
			if req.Title != nil {
				p.Title = *req.Title
			}
			if req.OtherTitles != nil {
				p.OtherTitles = *req.OtherTitles
			}
			if req.Connect != nil {
				p.Connect = *req.Connect
			}
			_, err := tx.Exec(ctx, `
				UPDATE pereval_added
				SET beauty_title=$2, title=$3, other_titles=$4, connect=$5
				WHERE id=$1
			`, p.ID, p.BeautyTitle, p.Title, p.OtherTitles, p.Connect)
			if err != nil {
				return err
			}
		}

		if req.Coords != nil {
			coords := current.Coords
			if req.Coords.Latitude != nil {
				coords.Latitude = *req.Coords.Latitude
			}
			if req.Coords.Longitude != nil {
				coords.Longitude = *req.Coords.Longitude
			}
			if req.Coords.Height != nil {
				coords.Height = *req.Coords.Height
			}
			_, err := tx.Exec(ctx, `
				UPDATE pereval_coords SET latitude=$2, longitude=$3, height=$4 WHERE id=$1
			`, coords.ID, coords.Latitude, coords.Longitude, coords.Height)
			if err != nil {
				return err
			}
		}

		if req.Level != nil {
			level := current.Level
			if req.Level.Winter != nil {
				level.Winter = *req.Level.Winter
			}
			if req.Level.Summer != nil {
				level.Summer = *req.Level.Summer
			}
			if req.Level.Autumn != nil {
				level.Autumn = *req.Level.Autumn
			}
			if req.Level.Spring != nil {
				level.Spring = *req.Level.Spring
			}
			_, err := tx.Exec(ctx, `
				UPDATE pereval_level SET winter=$2, summer=$3, autumn=$4, spring=$5 WHERE id=$1
			`, level.ID, level.Winter, level.Summer, level.Autumn, level.Spring)
			if err != nil {
				return err
			}
		}

		// Full replace, never a merge.
		if req.Images != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM pereval_images WHERE pass_id=$1`, id); err != nil {
				return err
			}
			for _, img := range req.Images {
				_, err := tx.Exec(ctx, `
					INSERT INTO pereval_images (title, data, pass_id) VALUES ($1,$2,$3)
				`, img.Title, DecodeImageData(img.Data), id)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return &StorageError{Err: err}
	}

	s.cache.Delete(ctx, cacheKey(id))
	return nil
}
