// Package repositories implements the registry and hazard-table
// interfaces over postgres, as drop-in replacements for the compiled-in
// curated tables.
package repositories

import (
	"context"
	"database/sql"
	goerrors "errors"

	"github.com/sakhi-health/toxiscan/internal/domain/chemical"
	"github.com/sakhi-health/toxiscan/pkg/errors"
)

// ChemicalRepository is a chemical.Registry backed by the
// chemical_registry table.
type ChemicalRepository struct {
	db *sql.DB
}

// NewChemicalRepository builds a repository over db.
func NewChemicalRepository(db *sql.DB) *ChemicalRepository {
	return &ChemicalRepository{db: db}
}

var _ chemical.Registry = (*ChemicalRepository)(nil)

// Lookup returns the CAS number for an exact normalized-name match.
func (r *ChemicalRepository) Lookup(ctx context.Context, name string) (string, bool, error) {
	var cas string
	err := r.db.QueryRowContext(ctx,
		`SELECT cas_number FROM chemical_registry WHERE name = $1`,
		chemical.NormalizeName(name),
	).Scan(&cas)
	if goerrors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrCodeDatabaseError, "registry lookup failed")
	}
	return cas, true, nil
}

// Entries returns the full name to CAS table for fuzzy scanning.
func (r *ChemicalRepository) Entries(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, cas_number FROM chemical_registry`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "registry scan failed")
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var name, cas string
		if err := rows.Scan(&name, &cas); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "registry row scan failed")
		}
		entries[name] = cas
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "registry iteration failed")
	}
	return entries, nil
}

// Upsert adds or updates one registry entry.  Names are normalized before
// storage so lookups stay consistent.
func (r *ChemicalRepository) Upsert(ctx context.Context, name, casNumber string) error {
	if err := chemical.ValidateCAS(casNumber); err != nil {
		return err
	}
	normalized := chemical.NormalizeName(name)
	if normalized == "" {
		return errors.New(errors.ErrCodeChemicalNameEmpty, "registry entry name is empty after normalization")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chemical_registry (name, cas_number) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET cas_number = EXCLUDED.cas_number`,
		normalized, casNumber,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "registry upsert failed")
	}
	return nil
}
