package userrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/domain"
	querybuilder "gitlab.com/codeprep.net/internal/utils"
)

var _ secondary.RoleStore = &profileRepo{}

type profileRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.RoleStore {
	if schema == "" {
		schema = "public"
	}
	return &profileRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (p profileRepo) GetRole(ctx context.Context, userID string) (string, error) {
	profileTbl := domain.GetProfileTable()
	query, args, err := querybuilder.NewQueryBuilder(p.schema).
		Select(profileTbl.Role).
		From(profileTbl.TableName()).
		Where(fmt.Sprintf("%s = ?", profileTbl.ID), userID).
		Build()
	if err != nil {
		return "", err
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var role sql.NullString
	err = p.db.GetContext(ctx, &role, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		p.logger.Error("Failed to load profile role", "userId", userID, "error", err)
		return "", fmt.Errorf("failed to load profile role: %w", err)
	}

	return role.String, nil
}
