package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rlhub/datacat/internal/db"
	"github.com/rlhub/datacat/internal/schema"
)

// Store provides CRUD operations for the catalog over SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a new catalog store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// Upsert inserts or replaces a dataset and all of its variants.
func (s *Store) Upsert(ctx context.Context, d *Dataset) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Reuse the existing row ID when the dataset is already present so
	// re-running generate does not churn identifiers.
	var existingID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM datasets WHERE name = ?`, d.Name).Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("looking up dataset %s: %w", d.Name, err)
	}
	if existingID != "" {
		d.ID = existingID
		if _, err := tx.ExecContext(ctx, `DELETE FROM variants WHERE dataset_id = ?`, d.ID); err != nil {
			return fmt.Errorf("clearing variants of %s: %w", d.Name, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO datasets (id, name, description, homepage, citation)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET description=excluded.description,
		     homepage=excluded.homepage, citation=excluded.citation`,
		d.ID, d.Name, d.Description, d.Homepage, d.Citation,
	)
	if err != nil {
		return fmt.Errorf("upserting dataset %s: %w", d.Name, err)
	}

	for i := range d.Variants {
		v := &d.Variants[i]
		if v.ID == "" {
			v.ID = uuid.NewString()
		}

		features, err := schema.MarshalText(v.Features)
		if err != nil {
			return fmt.Errorf("variant %s: %w", v.Name, err)
		}
		splits, err := json.Marshal(v.Splits)
		if err != nil {
			return fmt.Errorf("variant %s: encoding splits: %w", v.Name, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO variants (id, dataset_id, name, version, description, download_size, dataset_size, features, splits, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, d.ID, v.Name, v.Version, v.Description,
			v.DownloadSize, v.DatasetSize, features, string(splits), i,
		)
		if err != nil {
			return fmt.Errorf("inserting variant %s: %w", v.Name, err)
		}
	}

	return tx.Commit()
}

// Get retrieves a dataset with all variants by name. Returns nil, nil
// when the dataset does not exist.
func (s *Store) Get(ctx context.Context, name string) (*Dataset, error) {
	d := &Dataset{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, homepage, citation FROM datasets WHERE name = ?`, name,
	).Scan(&d.ID, &d.Name, &d.Description, &d.Homepage, &d.Citation)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting dataset %s: %w", name, err)
	}

	if d.Variants, err = s.variants(ctx, d.ID); err != nil {
		return nil, err
	}
	return d, nil
}

// List returns all datasets with their variants, ordered by name.
func (s *Store) List(ctx context.Context) ([]Dataset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, homepage, citation FROM datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer rows.Close()

	var datasets []Dataset
	for rows.Next() {
		var d Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Homepage, &d.Citation); err != nil {
			return nil, fmt.Errorf("scanning dataset: %w", err)
		}
		datasets = append(datasets, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range datasets {
		if datasets[i].Variants, err = s.variants(ctx, datasets[i].ID); err != nil {
			return nil, err
		}
	}
	return datasets, nil
}

// Delete removes a dataset and its variants. Returns sql.ErrNoRows when
// the dataset does not exist.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting dataset %s: %w", name, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// variants loads the ordered variants of a dataset.
func (s *Store) variants(ctx context.Context, datasetID string) ([]Variant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, version, description, download_size, dataset_size, features, splits
		 FROM variants WHERE dataset_id = ? ORDER BY position`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("listing variants: %w", err)
	}
	defer rows.Close()

	var variants []Variant
	for rows.Next() {
		var v Variant
		var features, splits string
		if err := rows.Scan(&v.ID, &v.Name, &v.Version, &v.Description,
			&v.DownloadSize, &v.DatasetSize, &features, &splits); err != nil {
			return nil, fmt.Errorf("scanning variant: %w", err)
		}
		if v.Features, err = schema.UnmarshalText(features); err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		if err := json.Unmarshal([]byte(splits), &v.Splits); err != nil {
			return nil, fmt.Errorf("variant %s: decoding splits: %w", v.Name, err)
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
