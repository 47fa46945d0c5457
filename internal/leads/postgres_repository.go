package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(db db) *PostgresRepository {
	if db == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new empty lead row.
func (r *PostgresRepository) Create(ctx context.Context) (*Lead, error) {
	id := uuid.New()
	query := `
		INSERT INTO leads (id)
		VALUES ($1)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query, id).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:        id.String(),
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches a lead with its full conversation history.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	leadID, err := uuid.Parse(id)
	if err != nil {
		// Malformed identifiers behave like unknown ones; the caller
		// creates a fresh lead instead of surfacing a store error.
		return nil, ErrLeadNotFound
	}

	query := `
		SELECT id, name, budget, preferred_location, property_type, created_at
		FROM leads
		WHERE id = $1
	`
	var lead Lead
	if err := r.db.QueryRow(ctx, query, leadID).Scan(
		&lead.ID,
		&lead.Name,
		&lead.Budget,
		&lead.PreferredLocation,
		&lead.PropertyType,
		&lead.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT sender, message, created_at
		FROM lead_turns
		WHERE lead_id = $1
		ORDER BY seq
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("leads: select turns failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var turn Turn
		if err := rows.Scan(&turn.Sender, &turn.Message, &turn.Timestamp); err != nil {
			return nil, fmt.Errorf("leads: scan turn failed: %w", err)
		}
		lead.History = append(lead.History, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leads: read turns failed: %w", err)
	}

	return &lead, nil
}

// Save updates the lead's attributes and appends new history turns.
// Turn inserts are keyed (lead_id, seq) so re-saving an already
// persisted turn is a no-op.
func (r *PostgresRepository) Save(ctx context.Context, lead *Lead) error {
	if lead == nil || lead.ID == "" {
		return ErrMissingID
	}
	leadID, err := uuid.Parse(lead.ID)
	if err != nil {
		return fmt.Errorf("leads: invalid lead id %q: %w", lead.ID, err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE leads
		SET name = $2, budget = $3, preferred_location = $4, property_type = $5
		WHERE id = $1
	`, leadID, lead.Name, lead.Budget, lead.PreferredLocation, lead.PropertyType)
	if err != nil {
		return fmt.Errorf("leads: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}

	for seq, turn := range lead.History {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO lead_turns (lead_id, seq, sender, message, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (lead_id, seq) DO NOTHING
		`, leadID, seq, string(turn.Sender), turn.Message, turn.Timestamp); err != nil {
			return fmt.Errorf("leads: insert turn failed: %w", err)
		}
	}

	return nil
}
