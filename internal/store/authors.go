// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/pubwatch/pkg/types"
)

// Authors returns all observed authors in stable (last name, first name)
// order. Authors are maintained externally; the ingestion core only reads
// them.
func (s *Store) Authors(ctx context.Context) ([]types.Author, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT first_name, last_name, remote_ids, categories,
		        allowed_affiliations, denied_affiliations
		 FROM authors ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("querying authors: %w", err)
	}
	defer rows.Close()

	var authors []types.Author
	for rows.Next() {
		var a types.Author
		var remoteIDs, categories, allowed, denied jsonStrings
		if err := rows.Scan(&a.FirstName, &a.LastName,
			&remoteIDs, &categories, &allowed, &denied); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		a.RemoteIDs = remoteIDs.Strings
		a.Categories = categories.Strings
		a.AllowedAffiliations = allowed.Strings
		a.DeniedAffiliations = denied.Strings
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// ImportAuthors upserts the given authors, keyed by (last name, first name).
// Used by the seed-file import command; re-importing an updated seed file
// refreshes IDs, categories, and affiliation lists in place.
func (s *Store) ImportAuthors(ctx context.Context, authors []types.Author) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO authors (first_name, last_name, remote_ids, categories,
		                      allowed_affiliations, denied_affiliations)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(last_name, first_name) DO UPDATE SET
			remote_ids=excluded.remote_ids,
			categories=excluded.categories,
			allowed_affiliations=excluded.allowed_affiliations,
			denied_affiliations=excluded.denied_affiliations`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range authors {
		remoteIDs, _ := json.Marshal(a.RemoteIDs)
		categories, _ := json.Marshal(a.Categories)
		allowed, _ := json.Marshal(a.AllowedAffiliations)
		denied, _ := json.Marshal(a.DeniedAffiliations)
		if _, err := stmt.ExecContext(ctx, a.FirstName, a.LastName,
			string(remoteIDs), string(categories), string(allowed), string(denied)); err != nil {
			return fmt.Errorf("upserting author %s: %w", a.CanonicalName(), err)
		}
	}
	return tx.Commit()
}
