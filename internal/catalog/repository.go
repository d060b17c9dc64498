package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrPackageNotFound  = errors.New("service package not found")
	ErrInstanceNotFound = errors.New("package instance not found")
	ErrNoSessionsLeft   = errors.New("no sessions left or package expired")
)

const definitionColumns = `id, name, type, duration_days, sessions, price, description, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateDefinition(ctx context.Context, req CreatePackageRequest) (*ServicePackage, error) {
	query := `
		INSERT INTO service_packages (name, type, duration_days, sessions, price, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + definitionColumns

	var sp ServicePackage
	err := r.db.GetContext(ctx, &sp, query,
		req.Name, req.Type, req.DurationDays, req.Sessions, req.Price, req.Description)
	if err != nil {
		return nil, err
	}

	return &sp, nil
}

func (r *repository) UpdateDefinition(ctx context.Context, id int, req UpdatePackageRequest) (*ServicePackage, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := `
		UPDATE service_packages
		SET name = $1, type = $2, duration_days = $3, sessions = $4,
		    price = $5, description = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING ` + definitionColumns

	var sp ServicePackage
	err := r.db.GetContext(ctx, &sp, query,
		req.Name, req.Type, req.DurationDays, req.Sessions, req.Price, req.Description, isActive, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	return &sp, nil
}

// DeactivateDefinition retires a catalog entry. Existing instances keep the
// session counts they copied at purchase time.
func (r *repository) DeactivateDefinition(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE service_packages SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPackageNotFound
	}

	return nil
}

func (r *repository) GetDefinitionByID(ctx context.Context, id int) (*ServicePackage, error) {
	query := `SELECT ` + definitionColumns + ` FROM service_packages WHERE id = $1`

	var sp ServicePackage
	err := r.db.GetContext(ctx, &sp, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	return &sp, nil
}

func (r *repository) ListDefinitions(ctx context.Context, onlyActive bool) ([]ServicePackage, error) {
	query := `SELECT ` + definitionColumns + ` FROM service_packages`
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY created_at DESC`

	var packages []ServicePackage
	err := r.db.SelectContext(ctx, &packages, query)
	if err != nil {
		return nil, err
	}

	return packages, nil
}

// Purchase copies the definition's current sessions and duration into a new
// instance inside one transaction, so a concurrent catalog edit cannot split
// the copy.
func (r *repository) Purchase(ctx context.Context, memberID, packageID int) (*PackageInstance, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var sp ServicePackage
	err = tx.GetContext(ctx, &sp,
		`SELECT `+definitionColumns+` FROM service_packages WHERE id = $1 AND is_active = true`,
		packageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	var inst PackageInstance
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO package_instances (member_id, package_id, remaining_sessions, total_sessions, expiry_date)
		VALUES ($1, $2, $3, $3, NOW() + make_interval(days => $4))
		RETURNING id, member_id, package_id, remaining_sessions, total_sessions, purchase_date, expiry_date
	`, memberID, packageID, sp.Sessions, sp.DurationDays).StructScan(&inst)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &inst, nil
}

func (r *repository) GetInstanceByID(ctx context.Context, id int) (*InstanceWithPackage, error) {
	query := `
		SELECT
			pi.id, pi.member_id, pi.package_id, pi.remaining_sessions,
			pi.total_sessions, pi.purchase_date, pi.expiry_date,
			sp.name AS package_name,
			sp.type AS service_type
		FROM package_instances pi
		JOIN service_packages sp ON pi.package_id = sp.id
		WHERE pi.id = $1
	`

	var inst InstanceWithPackage
	err := r.db.GetContext(ctx, &inst, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInstanceNotFound
		}
		return nil, err
	}

	return &inst, nil
}

func (r *repository) ListActiveInstances(ctx context.Context, memberID int) ([]InstanceWithPackage, error) {
	query := `
		SELECT
			pi.id, pi.member_id, pi.package_id, pi.remaining_sessions,
			pi.total_sessions, pi.purchase_date, pi.expiry_date,
			sp.name AS package_name,
			sp.type AS service_type
		FROM package_instances pi
		JOIN service_packages sp ON pi.package_id = sp.id
		WHERE pi.member_id = $1
		  AND pi.remaining_sessions > 0
		  AND pi.expiry_date >= NOW()
		ORDER BY pi.expiry_date ASC
	`

	var instances []InstanceWithPackage
	err := r.db.SelectContext(ctx, &instances, query, memberID)
	if err != nil {
		return nil, err
	}

	return instances, nil
}

func (r *repository) CountActiveInstances(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM package_instances
		WHERE remaining_sessions > 0 AND expiry_date >= NOW()
	`)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) ConsumeSession(ctx context.Context, instanceID int) error {
	query := `
		UPDATE package_instances
		SET remaining_sessions = remaining_sessions - 1
		WHERE id = $1
		  AND remaining_sessions > 0
		  AND expiry_date >= NOW()
	`

	result, err := r.db.ExecContext(ctx, query, instanceID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNoSessionsLeft
	}

	return nil
}
