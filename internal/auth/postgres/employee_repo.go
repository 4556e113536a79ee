// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

// Package postgres implements the auth persistence ports on
// PostgreSQL. The permission list lives in a JSONB column and is
// decoded through permission.Stored, so the repository never
// interprets stored shapes itself.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/tillhouse/tillhouse/internal/auth"
	"github.com/tillhouse/tillhouse/internal/permission"
)

// poolIface is the subset of pgxpool.Pool the repositories use.
// Satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EmployeeRepository implements auth.EmployeeStore using PostgreSQL.
type EmployeeRepository struct {
	pool poolIface
}

// NewEmployeeRepository creates a new EmployeeRepository.
func NewEmployeeRepository(pool poolIface) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

const employeeColumns = `id, tenant_id, email, name, role, active, pin,
       provider_credential, permissions, created_at, updated_at`

// GetByEmail retrieves an employee by email (case-insensitive).
func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*auth.Employee, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE LOWER(email) = LOWER($1)
	`, email)

	employee, err := r.scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("EMPLOYEE_NOT_FOUND").
			With("email", email).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("EMPLOYEE_GET_BY_EMAIL_FAILED").
			With("operation", "get employee by email").
			Wrap(err)
	}
	return employee, nil
}

// GetByID retrieves an employee by id.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*auth.Employee, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE id = $1
	`, id)

	employee, err := r.scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("EMPLOYEE_NOT_FOUND").
			With("id", id).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("EMPLOYEE_GET_BY_ID_FAILED").
			With("operation", "get employee by id").
			With("id", id).
			Wrap(err)
	}
	return employee, nil
}

// Put stores an employee record, replacing any existing record with
// the same id.
func (r *EmployeeRepository) Put(ctx context.Context, employee *auth.Employee) error {
	permsJSON, err := json.Marshal(employee.StoredPermissions)
	if err != nil {
		return oops.Code("EMPLOYEE_PUT_FAILED").
			With("operation", "marshal permissions").
			Wrap(err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO employees (
			id, tenant_id, email, name, role, active, pin,
			provider_credential, permissions, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			tenant_id = EXCLUDED.tenant_id,
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			active = EXCLUDED.active,
			pin = EXCLUDED.pin,
			provider_credential = EXCLUDED.provider_credential,
			permissions = EXCLUDED.permissions,
			updated_at = EXCLUDED.updated_at
	`,
		employee.ID,
		employee.TenantID,
		employee.Email,
		employee.Name,
		string(employee.Role),
		employee.Active,
		employee.PIN,
		employee.ProviderCredential,
		permsJSON,
		employee.CreatedAt,
		employee.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("EMPLOYEE_EMAIL_TAKEN").
				With("email", employee.Email).
				Wrap(err)
		}
		return oops.Code("EMPLOYEE_PUT_FAILED").
			With("operation", "upsert employee").
			With("id", employee.ID).
			Wrap(err)
	}
	return nil
}

// scanEmployee scans a single row into an Employee.
// Callers are responsible for handling pgx.ErrNoRows.
func (r *EmployeeRepository) scanEmployee(row pgx.Row) (*auth.Employee, error) {
	var (
		e         auth.Employee
		role      string
		permsJSON []byte
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&e.ID,
		&e.TenantID,
		&e.Email,
		&e.Name,
		&role,
		&e.Active,
		&e.PIN,
		&e.ProviderCredential,
		&permsJSON,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("EMPLOYEE_SCAN_FAILED").
			With("operation", "scan employee").
			Wrap(err)
	}

	e.Role = permission.Role(role)
	e.CreatedAt = createdAt
	e.UpdatedAt = updatedAt

	if len(permsJSON) > 0 {
		// Individual elements self-heal inside permission.Stored; a
		// column that isn't a list at all yields no grants, which
		// fails closed downstream.
		if err := json.Unmarshal(permsJSON, &e.StoredPermissions); err != nil {
			slog.Warn("employee permissions column is not a list, treating as empty",
				"employee_id", e.ID,
				"error", err)
			e.StoredPermissions = nil
		}
	}

	return &e, nil
}

// Compile-time interface check.
var _ auth.EmployeeStore = (*EmployeeRepository)(nil)
