package rowstore

import (
	"context"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

// Users row layout: id, email, first name, last name, birth date,
// gender, role, created at.
const userRowWidth = 8

type UserRepository struct {
	store ports.RowStore
}

func NewUserRepository(store ports.RowStore) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.store.AppendRow(ctx, usersTable, userToRow(user))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	rows, err := r.store.ReadRange(ctx, usersTable)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row[0] == id {
			return userFromRow(row), nil
		}
	}
	return nil, domain.Errorf(domain.KindNotFound, "user %s not found", id)
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.store.UpdateRange(ctx, usersTable, user.ID, userToRow(user))
}

func userToRow(u *domain.User) ports.Row {
	return ports.Row{
		u.ID,
		u.Email,
		u.FirstName,
		u.LastName,
		u.BirthDate,
		u.Gender,
		u.Role,
		u.CreatedAt,
	}
}

func userFromRow(row ports.Row) *domain.User {
	for len(row) < userRowWidth {
		row = append(row, "")
	}

	return &domain.User{
		ID:        row[0],
		Email:     row[1],
		FirstName: row[2],
		LastName:  row[3],
		BirthDate: row[4],
		Gender:    row[5],
		Role:      row[6],
		CreatedAt: row[7],
	}
}
