// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sophia/internal/platform/database/schema"
	"github.com/taibuivan/sophia/internal/platform/dberr"
	"github.com/taibuivan/sophia/internal/reference"
)

// # PostgreSQL Repository

// likeEscaper escapes the LIKE metacharacters of a user supplied prefix.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// panelColumns selects the fields scanned by [scanPanel]. The counts are
// correlated sub-queries over published inscriptions and panel images.
func panelColumns() string {
	inscription := schema.Inscription
	kind := schema.InscriptionType

	return fmt.Sprintf(`
		p.%[1]s, p.%[2]s, p.%[3]s,
		vm.%[4]s, vm.%[5]s, vm.%[6]s,
		vx.%[4]s, vx.%[5]s, vx.%[6]s,
		p.%[7]s, p.%[8]s, p.%[9]s,
		COALESCE((
			SELECT json_agg(json_build_object('id', t.%[4]s, 'text', t.%[5]s, 'text_ukr', t.%[6]s) ORDER BY t.%[5]s)
			FROM %[10]s t JOIN %[11]s pt ON pt.%[12]s = t.%[4]s
			WHERE pt.%[13]s = p.%[1]s
		), '[]'),
		(SELECT COUNT(*) FROM %[14]s i WHERE i.%[15]s = p.%[1]s AND i.%[16]s),
		(SELECT COUNT(*) FROM %[17]s im WHERE im.%[18]s = p.%[1]s),
		COALESCE((
			SELECT json_agg(json_build_object('id', c.id, 'text', c.text, 'text_ukr', c.text_ukr, 'count', c.count) ORDER BY c.count DESC, c.text)
			FROM (
				SELECT vt.%[4]s AS id, vt.%[5]s AS text, vt.%[6]s AS text_ukr, COUNT(*) AS count
				FROM %[14]s i JOIN %[19]s vt ON vt.%[4]s = i.%[20]s
				WHERE i.%[15]s = p.%[1]s AND i.%[16]s
				GROUP BY vt.%[4]s, vt.%[5]s, vt.%[6]s
			) c
		), '[]'),
		p.%[21]s, p.%[22]s`,
		schema.Panel.ID, schema.Panel.Title, schema.Panel.Room,
		kind.ID, kind.Text, kind.TextUkr,
		schema.Panel.SpatialPosition, schema.Panel.SpatialDirection, schema.Panel.DataAvailable,
		schema.Tag.Table, schema.PanelTag.Table, schema.PanelTag.TargetID, schema.PanelTag.OwnerID,
		inscription.Table, inscription.PanelID, inscription.Published,
		schema.Image.Table, schema.Image.PanelID,
		kind.Table, inscription.TypeOfInscriptionID,
		schema.Panel.CreatedAt, schema.Panel.UpdatedAt,
	)
}

// panelFrom joins the medium and material vocabularies.
func panelFrom() string {
	return fmt.Sprintf(`%[1]s p
		LEFT JOIN %[2]s vm ON vm.%[4]s = p.%[5]s
		LEFT JOIN %[3]s vx ON vx.%[4]s = p.%[6]s`,
		schema.Panel.Table, schema.Medium.Table, schema.Material.Table,
		schema.Medium.ID, schema.Panel.MediumID, schema.Panel.MaterialID,
	)
}

// scanPanel reads a row selected by [panelColumns], followed by extra targets.
func scanPanel(row pgx.Row, extra ...any) (*Panel, error) {
	panel := &Panel{}

	var mediumID, materialID *int
	var mediumText, mediumTextUkr, materialText, materialTextUkr *string
	var tags, types []byte

	targets := []any{
		&panel.ID, &panel.Title, &panel.Room,
		&mediumID, &mediumText, &mediumTextUkr,
		&materialID, &materialText, &materialTextUkr,
		&panel.SpatialPosition, &panel.SpatialDirection, &panel.DataAvailable,
		&tags, &panel.InscriptionCount, &panel.ImageCount, &types,
		&panel.CreatedAt, &panel.UpdatedAt,
	}

	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	if mediumID != nil {
		panel.Medium = &reference.Term{ID: *mediumID, Text: mediumText, TextUkr: mediumTextUkr}
	}
	if materialID != nil {
		panel.Material = &reference.Term{ID: *materialID, Text: materialText, TextUkr: materialTextUkr}
	}

	if err := json.Unmarshal(tags, &panel.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal panel tags: %w", err)
	}
	if err := json.Unmarshal(types, &panel.InscriptionTypes); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal inscription types: %w", err)
	}

	return panel, nil
}

/*
List returns a filtered, paginated slice of panels and the total count.

Description: Counts are computed by correlated sub-queries per panel and the
total comes from COUNT(*) OVER(), so a page costs a single round-trip.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Panel: Panels ordered by title then id
  - int: Total matching count
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Panel, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE TRUE`, panelColumns(), panelFrom()))

	// Room Filtering
	if filter.Room != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.Panel.Room, argID))
		args = append(args, filter.Room)
		argID++
	}

	// Title Prefix Filtering
	if filter.TitlePrefix != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s LIKE $%d || '%%'", schema.Panel.Title, argID))
		args = append(args, likeEscaper.Replace(filter.TitlePrefix))
		argID++
	}

	// 3D Model Availability
	if filter.DataAvailable != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.Panel.DataAvailable, argID))
		args = append(args, *filter.DataAvailable)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY p.%s ASC NULLS LAST, p.%s ASC", schema.Panel.Title, schema.Panel.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_panels")
	}
	defer rows.Close()

	panels := make([]*Panel, 0, limit)
	var total int

	for rows.Next() {
		panel, err := scanPanel(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_panel")
		}
		panels = append(panels, panel)
	}

	return panels, total, dberr.Wrap(rows.Err(), "list_panels")
}

// mediaColumns aggregates the documentation, RTI captures and meshes of p.
func mediaColumns() string {
	documentation := schema.Documentation
	link := schema.PanelDocumentation

	return fmt.Sprintf(`
		COALESCE((
			SELECT json_agg(json_build_object('id', d.%[1]s, 'short_title', d.%[2]s, 'observation', d.%[3]s) ORDER BY d.%[2]s, d.%[1]s)
			FROM %[4]s d JOIN %[5]s pd ON pd.%[6]s = d.%[1]s
			WHERE pd.%[7]s = p.%[8]s
		), '[]'),
		COALESCE((
			SELECT json_agg(json_build_object('id', r.%[9]s, 'title', r.%[10]s, 'url', r.%[11]s) ORDER BY r.%[9]s)
			FROM %[12]s r WHERE r.%[13]s = p.%[8]s
		), '[]'),
		COALESCE((
			SELECT json_agg(json_build_object('id', m.%[14]s, 'url', m.%[15]s, 'number_of_triangles', m.%[16]s) ORDER BY m.%[14]s)
			FROM %[17]s m WHERE m.%[18]s = p.%[8]s
		), '[]')`,
		documentation.ID, documentation.ShortTitle, documentation.Observation,
		documentation.Table, link.Table, link.TargetID, link.OwnerID, schema.Panel.ID,
		schema.ObjectRTI.ID, schema.ObjectRTI.Title, schema.ObjectRTI.URL,
		schema.ObjectRTI.Table, schema.ObjectRTI.PanelID,
		schema.ObjectMesh.ID, schema.ObjectMesh.URL, schema.ObjectMesh.NumberOfTriangles,
		schema.ObjectMesh.Table, schema.ObjectMesh.PanelID,
	)
}

// FindByID retrieves a single panel with its geometry rendered as GeoJSON,
// its documentation and its RTI and mesh captures.
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Panel, error) {
	query := fmt.Sprintf(`SELECT %s, ST_AsGeoJSON(p.%s), %s FROM %s WHERE p.%s = $1`,
		panelColumns(), schema.Panel.Geometry, mediaColumns(), panelFrom(), schema.Panel.ID)

	var geometry *string
	var documentation, rti, mesh []byte
	panel, err := scanPanel(repository.db.QueryRow(context, query, id), &geometry, &documentation, &rti, &mesh)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find_panel", "Panel")
	}

	if geometry != nil {
		panel.Geometry = json.RawMessage(*geometry)
	}

	if err := decodeMedia(&panel.Media, documentation, rti, mesh); err != nil {
		return nil, dberr.Wrap(err, "find_panel")
	}

	return panel, nil
}

// decodeMedia fills media from the json_agg columns of [mediaColumns].
func decodeMedia(media *Media, documentation, rti, mesh []byte) error {
	if err := json.Unmarshal(documentation, &media.Documentation); err != nil {
		return fmt.Errorf("postgres: failed to unmarshal panel documentation: %w", err)
	}
	if err := json.Unmarshal(rti, &media.RTI); err != nil {
		return fmt.Errorf("postgres: failed to unmarshal panel rti: %w", err)
	}
	if err := json.Unmarshal(mesh, &media.Mesh); err != nil {
		return fmt.Errorf("postgres: failed to unmarshal panel mesh: %w", err)
	}
	return nil
}

// ListRooms aggregates panels by room name.
func (repository *PostgresRepository) ListRooms(context context.Context) ([]Room, error) {
	query := fmt.Sprintf(`SELECT %[1]s, COUNT(*) FROM %[2]s WHERE COALESCE(%[1]s, '') <> '' GROUP BY %[1]s ORDER BY %[1]s`,
		schema.Panel.Room, schema.Panel.Table)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_rooms")
	}
	defer rows.Close()

	rooms := make([]Room, 0)
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.Name, &room.PanelCount); err != nil {
			return nil, dberr.Wrap(err, "scan_room")
		}
		rooms = append(rooms, room)
	}

	return rooms, dberr.Wrap(rows.Err(), "list_rooms")
}
