package repository

import (
	"context"
	"errors"
	"fmt"

	"meeting-scheduler/internal/data/entity"
	"meeting-scheduler/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Customer, error)
	UpsertByEmail(ctx context.Context, c *entity.Customer) error
	FindByUser(ctx context.Context, userID uuid.UUID, search string, limit, offset int) ([]*entity.Customer, error)
	CountByUser(ctx context.Context, userID uuid.UUID, search string) (int64, error)
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

const customerColumns = `id, user_id, name, email, phone, organization, metadata, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Organization,
		&c.Metadata,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, user_id, name, email, phone, organization, metadata,
		                       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		c.ID,
		c.UserID,
		c.Name,
		c.Email,
		c.Phone,
		c.Organization,
		c.Metadata,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create customer", zap.Error(err), zap.String("user_id", c.UserID.String()))
		return fmt.Errorf("create customer: %w", err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND user_id = $2`

	c, err := scanCustomer(database.Conn(ctx, r.db).QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer", zap.Error(err), zap.String("customer_id", id.String()))
		return nil, fmt.Errorf("find customer %s: %w", id, err)
	}

	return c, nil
}

// UpsertByEmail inserts c or merges it into the host's existing customer
// with the same email: non-empty fields overwrite, metadata keys are merged.
// c.ID and c.CreatedAt are refreshed from the stored row.
func (r *customerRepository) UpsertByEmail(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, user_id, name, email, phone, organization, metadata,
		                       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, LOWER(email)) WHERE email IS NOT NULL
		DO UPDATE SET
		    name = COALESCE(NULLIF(EXCLUDED.name, ''), customers.name),
		    phone = COALESCE(NULLIF(EXCLUDED.phone, ''), customers.phone),
		    organization = COALESCE(NULLIF(EXCLUDED.organization, ''), customers.organization),
		    metadata = customers.metadata || EXCLUDED.metadata,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		c.ID,
		c.UserID,
		c.Name,
		c.Email,
		c.Phone,
		c.Organization,
		c.Metadata,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		r.log.Error("Failed to upsert customer", zap.Error(err), zap.String("user_id", c.UserID.String()))
		return fmt.Errorf("upsert customer: %w", err)
	}

	return nil
}

func (r *customerRepository) FindByUser(ctx context.Context, userID uuid.UUID, search string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE user_id = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userID, search, limit, offset)
	if err != nil {
		r.log.Error("Failed to list customers", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list customers of %s: %w", userID, err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) CountByUser(ctx context.Context, userID uuid.UUID, search string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM customers
		WHERE user_id = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
	`

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, userID, search).Scan(&count); err != nil {
		r.log.Error("Failed to count customers", zap.Error(err))
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}

func (r *customerRepository) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $3, email = $4, phone = $5, organization = $6, metadata = $7,
		    updated_at = $8
		WHERE id = $1 AND user_id = $2
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		c.ID,
		c.UserID,
		c.Name,
		c.Email,
		c.Phone,
		c.Organization,
		c.Metadata,
		c.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update customer", zap.Error(err), zap.String("customer_id", c.ID.String()))
		return fmt.Errorf("update customer %s: %w", c.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", c.ID)
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`DELETE FROM customers WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		r.log.Error("Failed to delete customer", zap.Error(err), zap.String("customer_id", id.String()))
		return fmt.Errorf("delete customer %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", id)
	}

	return nil
}
