package store

import (
	"context"

	"basegraph.app/roster/core/db/sqlc"
	"basegraph.app/roster/internal/model"
)

type membershipStore struct {
	queries *sqlc.Queries
}

func newMembershipStore(queries *sqlc.Queries) MembershipStore {
	return &membershipStore{queries: queries}
}

// Create returns ErrAlreadyExists when (user, org) already has a membership.
func (s *membershipStore) Create(ctx context.Context, m *model.Membership) error {
	row, err := s.queries.CreateMembership(ctx, sqlc.CreateMembershipParams{
		ID:     m.ID,
		UserID: m.UserID,
		OrgID:  m.OrgID,
		Role:   string(m.Role),
	})
	if err != nil {
		return mapError(err)
	}
	*m = *toMembershipModel(row)
	return nil
}

func (s *membershipStore) Get(ctx context.Context, userID, orgID int64) (*model.Membership, error) {
	row, err := s.queries.GetMembership(ctx, sqlc.GetMembershipParams{
		UserID: userID,
		OrgID:  orgID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toMembershipModel(row), nil
}

func (s *membershipStore) GetFirstForUser(ctx context.Context, userID int64) (*model.Membership, error) {
	row, err := s.queries.GetFirstMembership(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return toMembershipModel(row), nil
}

func (s *membershipStore) ListByOrg(ctx context.Context, orgID int64) ([]model.Member, error) {
	rows, err := s.queries.ListMembersByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Member, len(rows))
	for i, row := range rows {
		result[i] = model.Member{
			Membership: model.Membership{
				ID:        row.ID,
				UserID:    row.UserID,
				OrgID:     row.OrgID,
				Role:      model.Role(row.Role),
				CreatedAt: row.CreatedAt.Time,
				UpdatedAt: row.UpdatedAt.Time,
			},
			FullName: row.FullName,
			Email:    row.Email,
		}
	}
	return result, nil
}

func (s *membershipStore) Delete(ctx context.Context, userID, orgID int64) error {
	n, err := s.queries.DeleteMembership(ctx, sqlc.DeleteMembershipParams{
		UserID: userID,
		OrgID:  orgID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toMembershipModel(row sqlc.Membership) *model.Membership {
	return &model.Membership{
		ID:        row.ID,
		UserID:    row.UserID,
		OrgID:     row.OrgID,
		Role:      model.Role(row.Role),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
