package persistence

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhive/events-service/internal/domain/event"
	"github.com/eventhive/events-service/internal/errors"
)

// Schema is the DDL for the event tables. Applied by EnsureSchema; the
// service ships no separate migration tooling.
const Schema = `
CREATE TABLE IF NOT EXISTS events (
	id                     UUID PRIMARY KEY,
	name                   TEXT NOT NULL,
	description            TEXT NOT NULL DEFAULT '',
	category               TEXT NOT NULL,
	event_date             DATE NOT NULL,
	duration_hours         INT NOT NULL,
	duration_minutes       INT NOT NULL,
	status                 TEXT NOT NULL,
	organizer_id           UUID NOT NULL,
	venue_id               UUID NOT NULL,
	publication_fee        DOUBLE PRECISION NOT NULL,
	payment_transaction_id TEXT NOT NULL DEFAULT '',
	created_at             TIMESTAMPTZ NOT NULL,
	published_at           TIMESTAMPTZ,
	version                INT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_status ON events (status);
CREATE INDEX IF NOT EXISTS idx_events_organizer ON events (organizer_id);
CREATE INDEX IF NOT EXISTS idx_events_venue ON events (venue_id);

CREATE TABLE IF NOT EXISTS event_sections (
	id       UUID PRIMARY KEY,
	event_id UUID NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	name     TEXT NOT NULL,
	capacity INT NOT NULL,
	price    DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_sections_event ON event_sections (event_id);
`

// eventColumns defines the columns to select for events.
const eventColumns = `id, name, description, category, event_date,
	duration_hours, duration_minutes, status, organizer_id, venue_id,
	publication_fee, payment_transaction_id, created_at, published_at, version`

// PostgresEventRepository implements event.Repository using PostgreSQL.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository.
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// EnsureSchema creates the event tables if they do not exist.
func (r *PostgresEventRepository) EnsureSchema(ctx context.Context) error {
	const op = "persistence.PostgresEventRepository.EnsureSchema"

	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return classify(err, op, "failed to apply schema")
	}
	return nil
}

// Add persists a newly created event and its sections in one transaction.
func (r *PostgresEventRepository) Add(ctx context.Context, e *event.Event) error {
	const op = "persistence.PostgresEventRepository.Add"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return classify(err, op, "failed to begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	dto := toDTO(e)
	_, err = tx.Exec(ctx, `
		INSERT INTO events (id, name, description, category, event_date,
			duration_hours, duration_minutes, status, organizer_id, venue_id,
			publication_fee, payment_transaction_id, created_at, published_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		dto.ID, dto.Name, dto.Description, dto.Category, dto.Date,
		dto.DurationHours, dto.DurationMinutes, dto.Status, dto.OrganizerID, dto.VenueID,
		dto.PublicationFee, dto.PaymentTransactionID, e.CreatedAt().UTC(), publishedAtParam(e), dto.Version,
	)
	if err != nil {
		return classify(err, op, "failed to insert event")
	}

	if err := insertSections(ctx, tx, dto); err != nil {
		return classify(err, op, "failed to insert sections")
	}

	if err := tx.Commit(ctx); err != nil {
		return classify(err, op, "failed to commit")
	}
	return nil
}

// GetByID loads an event with its sections.
func (r *PostgresEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	const op = "persistence.PostgresEventRepository.GetByID"

	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id.String())
	dto, err := scanEventRow(row)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound(op, "event not found")
		}
		return nil, classify(err, op, "failed to query event")
	}

	if err := r.loadSections(ctx, &dto); err != nil {
		return nil, classify(err, op, "failed to load sections")
	}
	return fromDTO(dto)
}

// Update persists changes to an existing event. The UPDATE is guarded by
// the previous version; zero affected rows means a concurrent writer won.
func (r *PostgresEventRepository) Update(ctx context.Context, e *event.Event) error {
	const op = "persistence.PostgresEventRepository.Update"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return classify(err, op, "failed to begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	dto := toDTO(e)
	tag, err := tx.Exec(ctx, `
		UPDATE events SET
			name = $3, description = $4, category = $5, event_date = $6,
			duration_hours = $7, duration_minutes = $8, status = $9,
			publication_fee = $10, payment_transaction_id = $11,
			published_at = $12, version = $13
		WHERE id = $1 AND version = $2`,
		dto.ID, dto.Version-1,
		dto.Name, dto.Description, dto.Category, dto.Date,
		dto.DurationHours, dto.DurationMinutes, dto.Status,
		dto.PublicationFee, dto.PaymentTransactionID,
		publishedAtParam(e), dto.Version,
	)
	if err != nil {
		return classify(err, op, "failed to update event")
	}
	if tag.RowsAffected() == 0 {
		return errors.Conflict(op, "event was modified concurrently")
	}

	// Sections are replaced wholesale; the aggregate owns the set
	if _, err := tx.Exec(ctx, `DELETE FROM event_sections WHERE event_id = $1`, dto.ID); err != nil {
		return classify(err, op, "failed to clear sections")
	}
	if err := insertSections(ctx, tx, dto); err != nil {
		return classify(err, op, "failed to insert sections")
	}

	if err := tx.Commit(ctx); err != nil {
		return classify(err, op, "failed to commit")
	}
	return nil
}

// ListPublished returns all published events.
func (r *PostgresEventRepository) ListPublished(ctx context.Context) ([]*event.Event, error) {
	const op = "persistence.PostgresEventRepository.ListPublished"
	return r.listWhere(ctx, op, `status = $1`, event.StatusPublished.String())
}

// ListByOrganizer returns all events owned by an organizer.
func (r *PostgresEventRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*event.Event, error) {
	const op = "persistence.PostgresEventRepository.ListByOrganizer"
	return r.listWhere(ctx, op, `organizer_id = $1`, organizerID.String())
}

// ListByVenue returns all events held at a venue.
func (r *PostgresEventRepository) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]*event.Event, error) {
	const op = "persistence.PostgresEventRepository.ListByVenue"
	return r.listWhere(ctx, op, `venue_id = $1`, venueID.String())
}

func (r *PostgresEventRepository) listWhere(ctx context.Context, op, where string, arg any) ([]*event.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE `+where+` ORDER BY created_at`, arg)
	if err != nil {
		return nil, classify(err, op, "failed to query events")
	}
	defer rows.Close()

	var dtos []eventDTO
	for rows.Next() {
		dto, err := scanEventRow(rows)
		if err != nil {
			return nil, classify(err, op, "failed to scan event")
		}
		dtos = append(dtos, dto)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, op, "failed to iterate events")
	}

	events := make([]*event.Event, 0, len(dtos))
	for i := range dtos {
		if err := r.loadSections(ctx, &dtos[i]); err != nil {
			return nil, classify(err, op, "failed to load sections")
		}
		e, err := fromDTO(dtos[i])
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *PostgresEventRepository) loadSections(ctx context.Context, dto *eventDTO) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, capacity, price FROM event_sections WHERE event_id = $1 ORDER BY name`, dto.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var s sectionDTO
		if err := rows.Scan(&s.ID, &s.Name, &s.Capacity, &s.Price); err != nil {
			return err
		}
		dto.Sections = append(dto.Sections, s)
	}
	return rows.Err()
}

// scanEventRow scans one events row into a DTO. Timestamps come back as
// time.Time from pgx and are reformatted to the DTO's string layout.
func scanEventRow(row pgx.Row) (eventDTO, error) {
	var (
		dto         eventDTO
		eventDate   time.Time
		createdAt   time.Time
		publishedAt *time.Time
	)

	err := row.Scan(
		&dto.ID,
		&dto.Name,
		&dto.Description,
		&dto.Category,
		&eventDate,
		&dto.DurationHours,
		&dto.DurationMinutes,
		&dto.Status,
		&dto.OrganizerID,
		&dto.VenueID,
		&dto.PublicationFee,
		&dto.PaymentTransactionID,
		&createdAt,
		&publishedAt,
		&dto.Version,
	)
	if err != nil {
		return dto, err
	}

	dto.Date = eventDate.Format(dateLayout)
	dto.CreatedAt = createdAt.UTC().Format(time.RFC3339Nano)
	if publishedAt != nil {
		formatted := publishedAt.UTC().Format(time.RFC3339Nano)
		dto.PublishedAt = &formatted
	}
	return dto, nil
}

func insertSections(ctx context.Context, tx pgx.Tx, dto eventDTO) error {
	for _, s := range dto.Sections {
		_, err := tx.Exec(ctx, `
			INSERT INTO event_sections (id, event_id, name, capacity, price)
			VALUES ($1, $2, $3, $4, $5)`,
			s.ID, dto.ID, s.Name, s.Capacity, s.Price,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func publishedAtParam(e *event.Event) any {
	if t := e.PublishedAt(); t != nil {
		return t.UTC()
	}
	return nil
}

// classify maps driver errors onto the service error taxonomy so the
// hybrid repository can tell transient failures from permanent ones.
func classify(err error, op, message string) *errors.Error {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.TimeoutWrap(err, op, message)
	case stderrors.Is(err, context.Canceled):
		return errors.Wrap(err, errors.KindCanceled, op, message)
	default:
		return errors.IOWrap(err, op, message)
	}
}
