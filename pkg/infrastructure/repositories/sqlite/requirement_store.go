package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/reqplan/reqplan/pkg/domain/entities"
	"github.com/reqplan/reqplan/pkg/domain/repositories"
)

const schema = `
CREATE TABLE IF NOT EXISTS requirements (
	id TEXT PRIMARY KEY,
	product_id TEXT NOT NULL,
	facility_id TEXT NOT NULL,
	req_type TEXT NOT NULL,
	status TEXT NOT NULL,
	quantity TEXT NOT NULL,
	required_by TEXT NOT NULL,
	start_at TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_requirements_product ON requirements(product_id);
`

// RequirementStore persists requirements in SQLite
type RequirementStore struct {
	db *sql.DB
}

// Verify interface compliance
var _ repositories.RequirementRepository = (*RequirementStore)(nil)

// Open opens (creating if needed) the requirement database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*RequirementStore, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open requirement database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize requirement schema: %w", err)
	}
	return &RequirementStore{db: db}, nil
}

// Close releases the underlying database handle
func (s *RequirementStore) Close() error {
	return s.db.Close()
}

// Create stores a new requirement
func (s *RequirementStore) Create(ctx context.Context, requirement *entities.Requirement) error {
	if requirement == nil {
		return fmt.Errorf("requirement cannot be nil")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO requirements (id, product_id, facility_id, req_type, status, quantity, required_by, start_at, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		requirement.ID,
		string(requirement.ProductID),
		string(requirement.FacilityID),
		requirement.Type.String(),
		string(requirement.Status),
		requirement.Quantity.String(),
		requirement.RequiredBy.UTC().Format(time.RFC3339Nano),
		requirement.StartAt.UTC().Format(time.RFC3339Nano),
		requirement.Description,
		requirement.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert requirement %s: %w", requirement.ID, err)
	}
	return nil
}

// GetRequirement returns a requirement by identifier
func (s *RequirementStore) GetRequirement(ctx context.Context, id string) (*entities.Requirement, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, product_id, facility_id, req_type, status, quantity, required_by, start_at, description, created_at
		 FROM requirements WHERE id = ?`, id)
	requirement, err := scanRequirement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repositories.ErrRequirementNotFound, id)
	}
	return requirement, err
}

// ListRequirements returns all requirements in creation order
func (s *RequirementStore) ListRequirements(ctx context.Context) ([]*entities.Requirement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, facility_id, req_type, status, quantity, required_by, start_at, description, created_at
		 FROM requirements ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	defer rows.Close()

	var requirements []*entities.Requirement
	for rows.Next() {
		requirement, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, requirement)
	}
	return requirements, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequirement(row rowScanner) (*entities.Requirement, error) {
	var (
		requirement entities.Requirement
		productID   string
		facilityID  string
		reqType     string
		status      string
		quantity    string
		requiredBy  string
		startAt     string
		createdAt   string
	)
	err := row.Scan(&requirement.ID, &productID, &facilityID, &reqType, &status,
		&quantity, &requiredBy, &startAt, &requirement.Description, &createdAt)
	if err != nil {
		return nil, err
	}

	requirement.ProductID = entities.ProductID(productID)
	requirement.FacilityID = entities.FacilityID(facilityID)
	requirement.Status = entities.RequirementStatus(status)
	switch reqType {
	case entities.ProductRequirement.String():
		requirement.Type = entities.ProductRequirement
	default:
		requirement.Type = entities.InternalRequirement
	}

	if requirement.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return nil, fmt.Errorf("requirement %s: invalid stored quantity %q: %w", requirement.ID, quantity, err)
	}
	if requirement.RequiredBy, err = time.Parse(time.RFC3339Nano, requiredBy); err != nil {
		return nil, fmt.Errorf("requirement %s: invalid stored required_by %q: %w", requirement.ID, requiredBy, err)
	}
	if requirement.StartAt, err = time.Parse(time.RFC3339Nano, startAt); err != nil {
		return nil, fmt.Errorf("requirement %s: invalid stored start_at %q: %w", requirement.ID, startAt, err)
	}
	if requirement.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("requirement %s: invalid stored created_at %q: %w", requirement.ID, createdAt, err)
	}
	return &requirement, nil
}
