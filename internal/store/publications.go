// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/pubwatch/pkg/types"
)

const publicationColumns = `remote_id, doi, title, abstract, published,
	journal, volume, issn, eid, tags, authors, author_count,
	collaboration, affiliations, categories, topics, status`

// Publications returns the stored corpus. includeDrafts adds publications
// still pending review; includeCollaborations adds records classified as
// large collaborations. Results are ordered by published date, newest first.
func (s *Store) Publications(ctx context.Context, includeDrafts, includeCollaborations bool) ([]types.Publication, error) {
	query := `SELECT ` + publicationColumns + ` FROM publications WHERE 1=1`
	if !includeDrafts {
		query += ` AND status != '` + string(types.StatusDraft) + `'`
	}
	if !includeCollaborations {
		query += ` AND collaboration != '` + string(types.CollaborationAny) + `'`
	}
	query += ` ORDER BY published DESC, remote_id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	var pubs []types.Publication
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, *p)
	}
	return pubs, rows.Err()
}

// PublicationIDs returns the remote IDs of every stored publication,
// drafts and collaborations included. The reconciler diffs this set
// against the remote source.
func (s *Store) PublicationIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT remote_id FROM publications`)
	if err != nil {
		return nil, fmt.Errorf("querying publication IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning publication ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpsertPublication inserts or updates one publication keyed by its remote
// ID and returns that ID. Repeated upserts of the same record are
// idempotent. Status is written on first insert only, so a re-import never
// regresses a reviewed publication back to draft.
func (s *Store) UpsertPublication(ctx context.Context, p *types.Publication) (string, error) {
	if p.RemoteID == "" {
		return "", fmt.Errorf("publication has no remote ID")
	}
	authorsJSON, err := json.Marshal(p.Authors)
	if err != nil {
		return "", fmt.Errorf("marshaling authors: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO publications (`+publicationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(remote_id) DO UPDATE SET
			doi=excluded.doi, title=excluded.title, abstract=excluded.abstract,
			published=excluded.published, journal=excluded.journal,
			volume=excluded.volume, issn=excluded.issn, eid=excluded.eid,
			tags=excluded.tags, authors=excluded.authors,
			author_count=excluded.author_count,
			collaboration=excluded.collaboration,
			affiliations=excluded.affiliations,
			categories=excluded.categories, topics=excluded.topics`,
		p.RemoteID, p.DOI, p.Title, p.Abstract, p.Published,
		p.Journal, p.Volume, p.ISSN, p.EID,
		marshalJSON(p.Tags), string(authorsJSON), p.AuthorCount,
		string(p.Collaboration), marshalJSON(p.AuthorAffiliations),
		marshalJSON(p.Categories), marshalJSON(p.Topics), string(p.Status))
	if err != nil {
		return "", fmt.Errorf("upserting publication %s: %w", p.RemoteID, err)
	}
	return p.RemoteID, nil
}

// DeleteAllPublications removes the whole imported corpus. Authors and the
// meta-cache are untouched.
func (s *Store) DeleteAllPublications(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM publications`); err != nil {
		return fmt.Errorf("deleting publications: %w", err)
	}
	return nil
}

func scanPublication(rows *sql.Rows) (*types.Publication, error) {
	var p types.Publication
	var tags, categories, topics jsonStrings
	var authorsJSON, affiliationsJSON sql.NullString
	var collaboration, status string

	if err := rows.Scan(&p.RemoteID, &p.DOI, &p.Title, &p.Abstract, &p.Published,
		&p.Journal, &p.Volume, &p.ISSN, &p.EID,
		&tags, &authorsJSON, &p.AuthorCount,
		&collaboration, &affiliationsJSON, &categories, &topics, &status); err != nil {
		return nil, fmt.Errorf("scanning publication: %w", err)
	}

	p.Tags = tags.Strings
	p.Categories = categories.Strings
	p.Topics = topics.Strings
	p.Collaboration = types.Collaboration(collaboration)
	p.Status = types.PublicationStatus(status)

	if authorsJSON.Valid && authorsJSON.String != "" {
		if err := json.Unmarshal([]byte(authorsJSON.String), &p.Authors); err != nil {
			return nil, fmt.Errorf("parsing authors for %s: %w", p.RemoteID, err)
		}
	}
	if affiliationsJSON.Valid && affiliationsJSON.String != "" && affiliationsJSON.String != "null" {
		if err := json.Unmarshal([]byte(affiliationsJSON.String), &p.AuthorAffiliations); err != nil {
			return nil, fmt.Errorf("parsing affiliations for %s: %w", p.RemoteID, err)
		}
	}
	return &p, nil
}
