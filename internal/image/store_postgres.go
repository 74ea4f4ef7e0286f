// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sophia/internal/platform/apperr"
	"github.com/taibuivan/sophia/internal/platform/database/schema"
	"github.com/taibuivan/sophia/internal/platform/dberr"
	"github.com/taibuivan/sophia/internal/reference"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectImages selects the fields scanned by [scanImage], then any extra columns.
func selectImages(extra ...string) string {
	image := schema.Image
	kind := schema.ImageType

	return fmt.Sprintf(`SELECT
		im.%s, im.%s::text, im.%s, im.%s, im.%s, im.%s, im.%s, im.%s, im.%s,
		vt.%s, vt.%s, vt.%s,
		im.%s, im.%s, im.%s%s
		FROM %s im LEFT JOIN %s vt ON vt.%s = im.%s`,
		image.ID, image.UUID, image.Title, image.IIIFFile, image.Width, image.Height,
		image.PanelOrInscription, image.PanelID, image.InscriptionID,
		kind.ID, kind.Text, kind.TextUkr,
		image.Region, image.CreatedAt, image.UpdatedAt, columnList(extra),
		image.Table, kind.Table, kind.ID, image.TypeOfImageID,
	)
}

// columnList renders extra columns with a leading separator.
func columnList(columns []string) string {
	if len(columns) == 0 {
		return ""
	}
	return ", " + strings.Join(columns, ", ")
}

// scanImage reads a row selected by [selectImages], followed by extra targets.
func scanImage(row pgx.Row, extra ...any) (*Image, error) {
	image := &Image{}

	var typeID *int
	var typeText, typeTextUkr *string

	targets := []any{
		&image.ID, &image.UUID, &image.Title, &image.IIIFFile, &image.Width, &image.Height,
		&image.Owner, &image.PanelID, &image.InscriptionID,
		&typeID, &typeText, &typeTextUkr,
		&image.Region, &image.CreatedAt, &image.UpdatedAt,
	}

	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	if typeID != nil {
		image.TypeOfImage = &reference.Term{ID: *typeID, Text: typeText, TextUkr: typeTextUkr}
	}
	return image, nil
}

/*
List returns a filtered, paginated slice of images and the total count.

Parameters:
  - context: context.Context
  - filter: Filter (PanelID, InscriptionID, TypeOfImageID)
  - limit, offset: int

Returns:
  - []*Image: Images ordered by id
  - int: Total count from COUNT(*) OVER()
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Image, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(selectImages("COUNT(*) OVER() AS total_count"))
	queryBuilder.WriteString(" WHERE TRUE")

	for _, condition := range []struct {
		column string
		value  int
	}{
		{schema.Image.PanelID, filter.PanelID},
		{schema.Image.InscriptionID, filter.InscriptionID},
		{schema.Image.TypeOfImageID, filter.TypeOfImageID},
	} {
		if condition.value <= 0 {
			continue
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND im.%s = $%d", condition.column, argID))
		args = append(args, condition.value)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY im.%s ASC LIMIT $%d OFFSET $%d", schema.Image.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_images")
	}
	defer rows.Close()

	images := make([]*Image, 0, limit)
	var total int

	for rows.Next() {
		image, err := scanImage(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_image")
		}
		images = append(images, image)
	}

	return images, total, dberr.Wrap(rows.Err(), "list_images")
}

// FindByID retrieves an image by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Image, error) {
	query := fmt.Sprintf(`%s WHERE im.%s = $1`, selectImages(), schema.Image.ID)

	image, err := scanImage(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find_image", "Image")
	}
	return image, nil
}

// FindByUUID retrieves an image by its public UUID.
func (repository *PostgresRepository) FindByUUID(context context.Context, uuid string) (*Image, error) {
	query := fmt.Sprintf(`%s WHERE im.%s = $1::uuid`, selectImages(), schema.Image.UUID)

	image, err := scanImage(repository.db.QueryRow(context, query, uuid))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find_image_by_uuid", "Image")
	}
	return image, nil
}

// SetDimensions updates the stored pixel size of an image.
func (repository *PostgresRepository) SetDimensions(context context.Context, id int, dimensions Dimensions) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = now() WHERE %s = $3`,
		schema.Image.Table, schema.Image.Width, schema.Image.Height, schema.Image.UpdatedAt, schema.Image.ID)

	tag, err := repository.db.Exec(context, query, dimensions.Width, dimensions.Height, id)
	if err != nil {
		return dberr.Wrap(err, "set_image_dimensions")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Image")
	}
	return nil
}
