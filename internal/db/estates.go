package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/model"
)

const estateColumns = "id, name, address, image_url, description, price_in_cents, space_in_meters, created_at, updated_at"

func scanEstate(row interface{ Scan(...any) error }) (model.Estate, error) {
	var e model.Estate
	err := row.Scan(
		&e.ID, &e.Name, &e.Address, &e.ImageURL, &e.Description,
		&e.PriceInCents, &e.SpaceInMeters, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (d *DB) CreateEstate(
	ctx context.Context,
	name, address, imageURL, description string,
	priceInCents int64,
	spaceInMeters int32,
) (model.Estate, error) {
	row := d.QueryRowContext(ctx, `
		INSERT INTO estates (name, address, image_url, description, price_in_cents, space_in_meters)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+estateColumns,
		name, address, imageURL, description, priceInCents, spaceInMeters,
	)
	return scanEstate(row)
}

func (d *DB) GetEstateByID(ctx context.Context, id uuid.UUID) (model.Estate, error) {
	row := d.QueryRowContext(ctx, `
		SELECT `+estateColumns+`
		FROM estates
		WHERE id = $1`,
		id,
	)
	return scanEstate(row)
}

func (d *DB) GetAllEstates(ctx context.Context) ([]model.Estate, error) {
	rows, err := d.QueryContext(ctx, `
		SELECT `+estateColumns+`
		FROM estates
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var estates []model.Estate
	for rows.Next() {
		e, err := scanEstate(rows)
		if err != nil {
			return nil, err
		}
		estates = append(estates, e)
	}
	return estates, rows.Err()
}

func (d *DB) updateEstateColumn(ctx context.Context, id uuid.UUID, column string, value any) error {
	_, err := d.ExecContext(ctx, `
		UPDATE estates
		SET `+column+` = $1, updated_at = NOW()
		WHERE id = $2`,
		value, id,
	)
	return err
}

func (d *DB) UpdateEstateName(ctx context.Context, id uuid.UUID, name string) error {
	return d.updateEstateColumn(ctx, id, "name", name)
}

func (d *DB) UpdateEstateAddress(ctx context.Context, id uuid.UUID, address string) error {
	return d.updateEstateColumn(ctx, id, "address", address)
}

func (d *DB) UpdateEstateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	return d.updateEstateColumn(ctx, id, "image_url", imageURL)
}

func (d *DB) UpdateEstateDescription(ctx context.Context, id uuid.UUID, description string) error {
	return d.updateEstateColumn(ctx, id, "description", description)
}

func (d *DB) UpdateEstatePrice(ctx context.Context, id uuid.UUID, priceInCents int64) error {
	return d.updateEstateColumn(ctx, id, "price_in_cents", priceInCents)
}

func (d *DB) UpdateEstateSpace(ctx context.Context, id uuid.UUID, spaceInMeters int32) error {
	return d.updateEstateColumn(ctx, id, "space_in_meters", spaceInMeters)
}

func (d *DB) DeleteEstate(ctx context.Context, id uuid.UUID) error {
	_, err := d.ExecContext(ctx, `
		DELETE FROM estates
		WHERE id = $1`,
		id,
	)
	return err
}

func (d *DB) CountEstates(ctx context.Context) (int64, error) {
	var count int64
	err := d.QueryRowContext(ctx, `SELECT COUNT(*) FROM estates`).Scan(&count)
	return count, err
}
