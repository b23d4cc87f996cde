package postgres

import (
	"context"
	"database/sql"
	"errors"
	"eventsApi/internal/config"
	"eventsApi/internal/models"
	"eventsApi/internal/storage"
	"fmt"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := &Storage{DB: db}

	if err = s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate creates the schema if it does not exist yet.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgres.Migrate"

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      VARCHAR(80) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id             BIGSERIAL PRIMARY KEY,
			title          VARCHAR(200) NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			date           TIMESTAMPTZ NOT NULL,
			location       VARCHAR(200) NOT NULL DEFAULT '',
			capacity       INTEGER NOT NULL CHECK (capacity > 0),
			is_public      BOOLEAN NOT NULL DEFAULT FALSE,
			requires_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_by     BIGINT REFERENCES users (id) ON DELETE SET NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS rsvps (
			id         BIGSERIAL PRIMARY KEY,
			event_id   BIGINT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
			user_id    BIGINT REFERENCES users (id) ON DELETE CASCADE,
			attending  BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS rsvps_event_user_idx
			ON rsvps (event_id, user_id) WHERE user_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS events_date_idx ON events (date)`,
	}

	for _, stmt := range stmts {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	const op = "storage.postgres.CreateUser"

	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, is_admin, created_at`

	user := models.User{Username: username, PasswordHash: passwordHash}

	err := s.DB.QueryRowContext(ctx, query, username, passwordHash).Scan(&user.ID, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	const op = "storage.postgres.GetUserByUsername"

	query := `
		SELECT id, username, password_hash, is_admin, created_at
		FROM users
		WHERE username = $1`

	user, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	const op = "storage.postgres.GetUserByID"

	query := `
		SELECT id, username, password_hash, is_admin, created_at
		FROM users
		WHERE id = $1`

	user, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	const op = "storage.postgres.SetAdmin"

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET is_admin = $1 WHERE username = $2`, isAdmin, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	return nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrUserNotFound
		}
		return models.User{}, err
	}

	return user, nil
}

func (s *Storage) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	const op = "storage.postgres.CreateEvent"

	query := `
		INSERT INTO events (title, description, date, location, capacity, is_public, requires_admin, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := s.DB.QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.Capacity,
		event.IsPublic,
		event.RequiresAdmin,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	event.ApplyRSVPs(nil)

	return event, nil
}

// eventSelect joins the RSVP aggregates onto each event in one query.
const eventSelect = `
	SELECT e.id, e.title, e.description, e.date, e.location, e.capacity,
	       e.is_public, e.requires_admin, e.created_by, e.created_at,
	       COUNT(r.id),
	       COALESCE(
	           array_agg(r.user_id ORDER BY r.user_id) FILTER (WHERE r.attending AND r.user_id IS NOT NULL),
	           '{}'
	       )
	FROM events e
	LEFT JOIN rsvps r ON r.event_id = e.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		event     models.Event
		createdBy sql.NullInt64
		attendees []int64
	)

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.Capacity,
		&event.IsPublic,
		&event.RequiresAdmin,
		&createdBy,
		&event.CreatedAt,
		&event.RSVPCount,
		pq.Array(&attendees),
	)
	if err != nil {
		return models.Event{}, err
	}

	if createdBy.Valid {
		event.CreatedBy = &createdBy.Int64
	}
	if attendees == nil {
		attendees = []int64{}
	}
	event.Attendees = attendees
	event.AccessTier = event.Tier()

	return event, nil
}

func (s *Storage) GetEvent(ctx context.Context, id int64) (models.Event, error) {
	const op = "storage.postgres.GetEvent"

	query := eventSelect + `
	WHERE e.id = $1
	GROUP BY e.id`

	event, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (s *Storage) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	const op = "storage.postgres.GetAllEvents"

	query := eventSelect + `
	GROUP BY e.id
	ORDER BY e.date ASC, e.id ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan event: %w", op, err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating events: %w", op, err)
	}

	return events, nil
}

// SaveRSVP records an RSVP. A signed-in user has at most one RSVP per event, so
// a second call updates it; anonymous RSVPs always insert. The boolean result
// reports whether a new row was created.
func (s *Storage) SaveRSVP(ctx context.Context, eventID int64, userID *int64, attending bool) (models.RSVP, bool, error) {
	const op = "storage.postgres.SaveRSVP"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.RSVP{}, false, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var capacity int
	err = tx.QueryRowContext(ctx, `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RSVP{}, false, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return models.RSVP{}, false, fmt.Errorf("%s: failed to lock event: %w", op, err)
	}

	var (
		existing models.RSVP
		found    bool
	)
	if userID != nil {
		checkQuery := `
			SELECT id, attending, created_at
			FROM rsvps
			WHERE event_id = $1 AND user_id = $2`

		err = tx.QueryRowContext(ctx, checkQuery, eventID, *userID).Scan(&existing.ID, &existing.Attending, &existing.CreatedAt)
		switch {
		case err == nil:
			found = true
		case errors.Is(err, sql.ErrNoRows):
		default:
			return models.RSVP{}, false, fmt.Errorf("%s: failed to check existing rsvp: %w", op, err)
		}
	}

	if attending && !(found && existing.Attending) {
		var taken int
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM rsvps WHERE event_id = $1 AND attending`, eventID).Scan(&taken)
		if err != nil {
			return models.RSVP{}, false, fmt.Errorf("%s: failed to count attendees: %w", op, err)
		}

		if taken >= capacity {
			return models.RSVP{}, false, fmt.Errorf("%s: %w", op, storage.ErrEventFull)
		}
	}

	rsvp := models.RSVP{EventID: eventID, UserID: userID, Attending: attending}

	if found {
		_, err = tx.ExecContext(ctx, `UPDATE rsvps SET attending = $1 WHERE id = $2`, attending, existing.ID)
		if err != nil {
			return models.RSVP{}, false, fmt.Errorf("%s: failed to update rsvp: %w", op, err)
		}
		rsvp.ID = existing.ID
		rsvp.CreatedAt = existing.CreatedAt
	} else {
		insertQuery := `
			INSERT INTO rsvps (event_id, user_id, attending)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`

		err = tx.QueryRowContext(ctx, insertQuery, eventID, userID, attending).Scan(&rsvp.ID, &rsvp.CreatedAt)
		if err != nil {
			return models.RSVP{}, false, fmt.Errorf("%s: failed to create rsvp: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return models.RSVP{}, false, fmt.Errorf("%s: failed to commit: %w", op, err)
	}

	return rsvp, !found, nil
}

func (s *Storage) GetEventRSVPs(ctx context.Context, eventID int64) ([]models.RSVP, error) {
	const op = "storage.postgres.GetEventRSVPs"

	query := `
		SELECT id, event_id, user_id, attending, created_at
		FROM rsvps
		WHERE event_id = $1
		ORDER BY created_at ASC, id ASC`

	rsvps, err := s.queryRSVPs(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rsvps, nil
}

func (s *Storage) GetUserRSVPs(ctx context.Context, userID int64) ([]models.RSVP, error) {
	const op = "storage.postgres.GetUserRSVPs"

	query := `
		SELECT id, event_id, user_id, attending, created_at
		FROM rsvps
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rsvps, err := s.queryRSVPs(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rsvps, nil
}

func (s *Storage) queryRSVPs(ctx context.Context, query string, arg int64) ([]models.RSVP, error) {
	rows, err := s.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get rsvps: %w", err)
	}
	defer rows.Close()

	rsvps := []models.RSVP{}
	for rows.Next() {
		var (
			rsvp   models.RSVP
			userID sql.NullInt64
		)

		err = rows.Scan(&rsvp.ID, &rsvp.EventID, &userID, &rsvp.Attending, &rsvp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rsvp: %w", err)
		}

		if userID.Valid {
			id := userID.Int64
			rsvp.UserID = &id
		}

		rsvps = append(rsvps, rsvp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rsvps: %w", err)
	}

	return rsvps, nil
}
