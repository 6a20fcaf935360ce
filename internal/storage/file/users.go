package file

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

type UserStore struct {
	path string
	mu   sync.Mutex
}

func (s *UserStore) Create(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readAll[models.User](s.path)
	if err != nil {
		return models.User{}, errs.Wrap(errs.Unknown, "chargement des utilisateurs", err)
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, u.Email) {
			return models.User{}, errs.Newf(errs.AlreadyExists, "un utilisateur avec l'email %s existe déjà", u.Email)
		}
	}
	u.ID = uuid.NewString()
	users = append(users, u)
	if err := writeAll(s.path, users); err != nil {
		return models.User{}, errs.Wrap(errs.Unknown, "sauvegarde des utilisateurs", err)
	}
	return u, nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readAll[models.User](s.path)
	if err != nil {
		return models.User{}, errs.Wrap(errs.Unknown, "chargement des utilisateurs", err)
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, errs.New(errs.NotFound, "utilisateur introuvable")
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readAll[models.User](s.path)
	if err != nil {
		return models.User{}, errs.Wrap(errs.Unknown, "chargement des utilisateurs", err)
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, errs.New(errs.NotFound, "utilisateur introuvable")
}

func (s *UserStore) GetAll(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readAll[models.User](s.path)
	if err != nil {
		return nil, errs.Wrap(errs.Unknown, "chargement des utilisateurs", err)
	}
	return users, nil
}

func (s *UserStore) Update(_ context.Context, id string, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readAll[models.User](s.path)
	if err != nil {
		return models.User{}, errs.Wrap(errs.Unknown, "chargement des utilisateurs", err)
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		u.ID = id
		users[i] = u
		if err := writeAll(s.path, users); err != nil {
			return models.User{}, errs.Wrap(errs.Unknown, "sauvegarde des utilisateurs", err)
		}
		return u, nil
	}
	return models.User{}, errs.New(errs.NotFound, "utilisateur introuvable")
}

func (s *UserStore) Delete(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readAll[models.User](s.path)
	if err != nil {
		return models.User{}, errs.Wrap(errs.Unknown, "chargement des utilisateurs", err)
	}
	for i, u := range users {
		if u.ID != id {
			continue
		}
		users = append(users[:i], users[i+1:]...)
		if err := writeAll(s.path, users); err != nil {
			return models.User{}, errs.Wrap(errs.Unknown, "sauvegarde des utilisateurs", err)
		}
		return u, nil
	}
	return models.User{}, errs.New(errs.NotFound, "utilisateur introuvable")
}
