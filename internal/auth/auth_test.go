package auth

import "testing"

type memRepo struct{ admins []Admin }

func (m *memRepo) LoadAll() ([]Admin, error) { return append([]Admin{}, m.admins...), nil }
func (m *memRepo) Upsert(a Admin) error {
	for i, x := range m.admins {
		if x.ID == a.ID {
			m.admins[i] = a
			return nil
		}
	}
	m.admins = append(m.admins, a)
	return nil
}
func (m *memRepo) Remove(id int64) error {
	out := make([]Admin, 0, len(m.admins))
	for _, x := range m.admins {
		if x.ID != id {
			out = append(out, x)
		}
	}
	m.admins = out
	return nil
}

func TestServiceBasic(t *testing.T) {
	repo := &memRepo{admins: []Admin{{ID: 10, Username: "alice"}}}
	svc, err := NewWithRepo(repo, []int64{20})
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	if !svc.IsAdmin(10) {
		t.Fatalf("repo preload not effective")
	}
	if !svc.IsAdmin(20) {
		t.Fatalf("initial env list not merged")
	}
	if svc.IsAdmin(30) {
		t.Fatalf("unexpected admin")
	}

	if err := svc.Upsert(Admin{ID: 30, Username: "bob"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !svc.IsAdmin(30) {
		t.Fatalf("upsert not effective")
	}

	if err := svc.Remove(10); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if svc.IsAdmin(10) {
		t.Fatalf("remove not effective")
	}

	lst := svc.List()
	if len(lst) != 2 {
		t.Fatalf("want 2 admins, got %d", len(lst))
	}
}
