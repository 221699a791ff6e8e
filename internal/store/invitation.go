package store

import (
	"context"
	"errors"
	"time"

	"basegraph.app/roster/core/db/sqlc"
	"basegraph.app/roster/internal/model"
	"github.com/jackc/pgx/v5"
)

type invitationStore struct {
	queries *sqlc.Queries
}

func newInvitationStore(queries *sqlc.Queries) InvitationStore {
	return &invitationStore{queries: queries}
}

// Create returns ErrAlreadyExists when (org, email) or the token is already taken.
func (s *invitationStore) Create(ctx context.Context, inv *model.Invitation) error {
	row, err := s.queries.CreateInvitation(ctx, sqlc.CreateInvitationParams{
		ID:        inv.ID,
		OrgID:     inv.OrgID,
		Email:     inv.Email,
		Role:      string(inv.Role),
		Token:     inv.Token,
		InvitedBy: inv.InvitedBy,
		ExpiresAt: timestamptz(inv.ExpiresAt),
	})
	if err != nil {
		return mapError(err)
	}
	*inv = *toInvitationModel(row)
	return nil
}

func (s *invitationStore) GetByID(ctx context.Context, id int64) (*model.Invitation, error) {
	row, err := s.queries.GetInvitation(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	row, err := s.queries.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetByTokenForUpdate(ctx context.Context, token string) (*model.Invitation, error) {
	row, err := s.queries.GetInvitationByTokenForUpdate(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetByOrgAndEmail(ctx context.Context, orgID int64, email string) (*model.Invitation, error) {
	row, err := s.queries.GetInvitationByOrgAndEmail(ctx, sqlc.GetInvitationByOrgAndEmailParams{
		OrgID: orgID,
		Email: email,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetWithOrgByToken(ctx context.Context, token string) (*model.InvitationWithOrg, error) {
	row, err := s.queries.GetInvitationInfoByToken(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	return &model.InvitationWithOrg{
		Invitation: *toInvitationModel(sqlc.Invitation{
			ID:         row.ID,
			OrgID:      row.OrgID,
			Email:      row.Email,
			Role:       row.Role,
			Status:     row.Status,
			Token:      row.Token,
			InvitedBy:  row.InvitedBy,
			AcceptedBy: row.AcceptedBy,
			AcceptedAt: row.AcceptedAt,
			ExpiresAt:  row.ExpiresAt,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		}),
		OrgName: row.OrgName,
	}, nil
}

func (s *invitationStore) ListByOrg(ctx context.Context, orgID int64) ([]model.InvitationWithOrg, error) {
	rows, err := s.queries.ListInvitationsByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	result := make([]model.InvitationWithOrg, len(rows))
	for i, row := range rows {
		result[i] = model.InvitationWithOrg{
			Invitation: *toInvitationModel(sqlc.Invitation{
				ID:         row.ID,
				OrgID:      row.OrgID,
				Email:      row.Email,
				Role:       row.Role,
				Status:     row.Status,
				Token:      row.Token,
				InvitedBy:  row.InvitedBy,
				AcceptedBy: row.AcceptedBy,
				AcceptedAt: row.AcceptedAt,
				ExpiresAt:  row.ExpiresAt,
				CreatedAt:  row.CreatedAt,
				UpdatedAt:  row.UpdatedAt,
			}),
			OrgName: row.OrgName,
		}
	}
	return result, nil
}

func (s *invitationStore) Rotate(ctx context.Context, id int64, token string, role model.Role, expiresAt time.Time) (*model.Invitation, error) {
	row, err := s.queries.RotateInvitation(ctx, sqlc.RotateInvitationParams{
		ID:        id,
		Token:     token,
		Role:      string(role),
		ExpiresAt: timestamptz(expiresAt),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) Reissue(ctx context.Context, id int64, token string, role model.Role, expiresAt time.Time, invitedBy int64) (*model.Invitation, error) {
	row, err := s.queries.ReissueInvitation(ctx, sqlc.ReissueInvitationParams{
		ID:        id,
		Token:     token,
		Role:      string(role),
		ExpiresAt: timestamptz(expiresAt),
		InvitedBy: &invitedBy,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) Accept(ctx context.Context, id, userID int64) (*model.Invitation, error) {
	row, err := s.queries.AcceptInvitation(ctx, sqlc.AcceptInvitationParams{
		ID:         id,
		AcceptedBy: &userID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) DeclineByToken(ctx context.Context, token string) (bool, error) {
	n, err := s.queries.DeclineInvitationByToken(ctx, token)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *invitationStore) Revoke(ctx context.Context, id int64) (*model.Invitation, error) {
	row, err := s.queries.RevokeInvitation(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInvitationModel(row), nil
}

func toInvitationModel(row sqlc.Invitation) *model.Invitation {
	return &model.Invitation{
		ID:         row.ID,
		OrgID:      row.OrgID,
		Email:      row.Email,
		Role:       model.Role(row.Role),
		Token:      row.Token,
		Status:     model.InvitationStatus(row.Status),
		InvitedBy:  row.InvitedBy,
		AcceptedBy: row.AcceptedBy,
		ExpiresAt:  row.ExpiresAt.Time,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
		AcceptedAt: timePtr(row.AcceptedAt),
	}
}
