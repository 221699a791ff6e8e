package store

import (
	"context"

	"basegraph.app/roster/core/db/sqlc"
	"basegraph.app/roster/internal/model"
)

type organizationStore struct {
	queries *sqlc.Queries
}

func newOrganizationStore(queries *sqlc.Queries) OrganizationStore {
	return &organizationStore{queries: queries}
}

// Create returns ErrAlreadyExists when the slug is taken.
func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row, err := s.queries.CreateOrganization(ctx, sqlc.CreateOrganizationParams{
		ID:      org.ID,
		OwnerID: org.OwnerID,
		Name:    org.Name,
		Slug:    org.Slug,
	})
	if err != nil {
		return mapError(err)
	}
	*org = *toOrganizationModel(row)
	return nil
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row, err := s.queries.GetOrganization(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) Rename(ctx context.Context, id int64, name, slug string) (*model.Organization, error) {
	row, err := s.queries.UpdateOrganizationName(ctx, sqlc.UpdateOrganizationNameParams{
		ID:   id,
		Name: name,
		Slug: slug,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) ListForUser(ctx context.Context, userID int64) ([]model.OrganizationWithRole, error) {
	rows, err := s.queries.ListOrganizationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.OrganizationWithRole, len(rows))
	for i, row := range rows {
		result[i] = model.OrganizationWithRole{
			Organization: model.Organization{
				ID:        row.ID,
				OwnerID:   row.OwnerID,
				Name:      row.Name,
				Slug:      row.Slug,
				IsDeleted: row.IsDeleted,
				CreatedAt: row.CreatedAt.Time,
				UpdatedAt: row.UpdatedAt.Time,
			},
			Role:     model.Role(row.Role),
			JoinedAt: row.JoinedAt.Time,
		}
	}
	return result, nil
}

func toOrganizationModel(row sqlc.Organization) *model.Organization {
	return &model.Organization{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Slug:      row.Slug,
		IsDeleted: row.IsDeleted,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
