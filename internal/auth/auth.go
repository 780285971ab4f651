package auth

// Admin identifies a user allowed to run admin commands and to receive the
// daily digest.
type Admin struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Repository interface {
	LoadAll() ([]Admin, error)
	Upsert(admin Admin) error
	Remove(adminID int64) error
}

// Service holds the admin allow-list merged from the repository and the
// env-configured ids.
type Service struct {
	repo   Repository
	admins map[int64]Admin
}

func NewWithRepo(repo Repository, initial []int64) (*Service, error) {
	s := &Service{repo: repo, admins: make(map[int64]Admin)}
	if repo != nil {
		admins, err := repo.LoadAll()
		if err == nil {
			for _, a := range admins {
				s.admins[a.ID] = a
			}
		}
	}
	// merge env-configured ids without usernames
	for _, id := range initial {
		if _, ok := s.admins[id]; !ok {
			s.admins[id] = Admin{ID: id}
		}
	}
	return s, nil
}

func (s *Service) IsAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}

func (s *Service) Upsert(admin Admin) error {
	s.admins[admin.ID] = admin
	if s.repo != nil {
		return s.repo.Upsert(admin)
	}
	return nil
}

func (s *Service) Remove(adminID int64) error {
	delete(s.admins, adminID)
	if s.repo != nil {
		return s.repo.Remove(adminID)
	}
	return nil
}

func (s *Service) List() []Admin {
	out := make([]Admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, a)
	}
	return out
}
