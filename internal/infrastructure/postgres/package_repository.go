package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

var _ repository.PackageRepository = (*PackageRepo)(nil)

// PackageRepo implementación del puerto PackageRepository sobre PostgreSQL (usable con pool o tx).
type PackageRepo struct {
	q Querier
}

// NewPackageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackageRepository(q Querier) *PackageRepo {
	return &PackageRepo{q: q}
}

// Create persiste un nuevo paquete de afiliación.
func (r *PackageRepo) Create(pkg *entity.Package) error {
	query := `
		INSERT INTO packages (id, name, amount, registration_fee, is_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		pkg.ID, pkg.Name, pkg.Amount, pkg.RegistrationFee, pkg.IsPaid, pkg.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert package: %w", err)
	}
	return nil
}

// GetByID obtiene un paquete por ID.
func (r *PackageRepo) GetByID(id string) (*entity.Package, error) {
	query := `SELECT id, name, amount, registration_fee, is_paid, created_at FROM packages WHERE id = $1`
	var p entity.Package
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Amount, &p.RegistrationFee, &p.IsPaid, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return &p, nil
}

// Update sobreescribe el paquete.
func (r *PackageRepo) Update(pkg *entity.Package) error {
	query := `UPDATE packages SET name = $2, amount = $3, registration_fee = $4, is_paid = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		pkg.ID, pkg.Name, pkg.Amount, pkg.RegistrationFee, pkg.IsPaid,
	)
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}
	return nil
}

// List lista paquetes con paginación.
func (r *PackageRepo) List(limit, offset int) ([]*entity.Package, error) {
	query := `SELECT id, name, amount, registration_fee, is_paid, created_at
		FROM packages ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Package
	for rows.Next() {
		var p entity.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Amount, &p.RegistrationFee, &p.IsPaid, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un paquete por ID.
func (r *PackageRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	return nil
}
