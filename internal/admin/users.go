package admin

import (
	"context"

	"travel-agency/internal/models"
	"travel-agency/internal/store"
)

// UserInput is the staff user form. A blank password on update keeps the
// stored one.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Password string `json:"password"`
}

func (in UserInput) toUser(id, password string) models.User {
	role := in.Role
	if role == "" {
		role = models.RoleAgent
	}
	status := in.Status
	if status == "" {
		status = models.UserActive
	}
	return models.User{
		ID:       id,
		Name:     in.Name,
		Email:    in.Email,
		Mobile:   in.Mobile,
		Role:     role,
		Status:   status,
		Password: password,
	}
}

type UserService struct {
	users *store.Collection[models.User]
}

func NewUserService(users *store.Collection[models.User]) *UserService {
	return &UserService{users: users}
}

// List returns every user without passwords
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Public()
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, found, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	u = u.Public()
	return &u, nil
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	u, err := s.users.Add(ctx, in.toUser("", in.Password))
	if err != nil {
		return nil, err
	}
	u = u.Public()
	return &u, nil
}

func (s *UserService) Update(ctx context.Context, id string, in UserInput) (*models.User, error) {
	existing, found, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	password := in.Password
	if password == "" {
		password = existing.Password
	}

	u := in.toUser(id, password)
	matched, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrNotFound
	}
	u = u.Public()
	return &u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
