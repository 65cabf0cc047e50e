package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
)

var errStore = errors.New("store down")

type stubUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	nextID  uint
	findErr error
}

func newStubUsers() *stubUsers {
	return &stubUsers{byEmail: map[string]*models.User{}}
}

func (s *stubUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	u, ok := s.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *stubUsers) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return repositories.ErrDuplicate
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.byEmail[u.Email] = &cp
	return nil
}

func (s *stubUsers) SetAdmin(_ context.Context, email string, admin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byEmail[email]
	if !ok {
		return repositories.ErrNotFound
	}
	u.IsAdmin = admin
	return nil
}

type stubProducts struct {
	rows      map[uint]models.Product
	inUse     map[uint]bool
	createErr error
}

func newStubProducts(ids ...uint) *stubProducts {
	s := &stubProducts{rows: map[uint]models.Product{}, inUse: map[uint]bool{}}
	for _, id := range ids {
		p := models.Product{ProductName: "p", Price: 1}
		p.ID = id
		s.rows[id] = p
	}
	return s
}

func (s *stubProducts) All(context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(s.rows))
	for _, p := range s.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubProducts) ExistingIDs(_ context.Context, ids []uint) (map[uint]bool, error) {
	found := map[uint]bool{}
	for _, id := range ids {
		if _, ok := s.rows[id]; ok {
			found[id] = true
		}
	}
	return found, nil
}

func (s *stubProducts) Count(context.Context) (int64, error) { return int64(len(s.rows)), nil }

func (s *stubProducts) Create(_ context.Context, p *models.Product) error {
	if s.createErr != nil {
		return s.createErr
	}
	p.ID = uint(len(s.rows) + 1)
	s.rows[p.ID] = *p
	return nil
}

func (s *stubProducts) Delete(_ context.Context, id uint) error {
	if s.inUse[id] {
		return repositories.ErrInUse
	}
	if _, ok := s.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

type stubOrders struct {
	rows    []models.Order
	failOn  uint // product id whose create fails
	deleted map[uint]bool
}

func (s *stubOrders) Create(_ context.Context, o *models.Order) error {
	if s.failOn != 0 && o.ProductID == s.failOn {
		return errStore
	}
	o.ID = uint(len(s.rows) + 1)
	if o.Status == "" {
		o.Status = models.DefaultOrderStatus
	}
	s.rows = append(s.rows, *o)
	return nil
}

func (s *stubOrders) ForUser(_ context.Context, userID uint) ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.rows {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrders) AllWithRelations(context.Context) ([]models.Order, error) {
	return s.rows, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id uint, status string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *stubOrders) Delete(_ context.Context, id uint) error {
	if s.deleted == nil {
		s.deleted = map[uint]bool{}
	}
	for _, o := range s.rows {
		if o.ID == id && !s.deleted[id] {
			s.deleted[id] = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

type stubDisk struct {
	files  map[string][]byte
	putErr error
}

func (d *stubDisk) Put(_ context.Context, p string, r io.Reader, _ string) error {
	if d.putErr != nil {
		return d.putErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	if d.files == nil {
		d.files = map[string][]byte{}
	}
	d.files[p] = buf.Bytes()
	return nil
}

func (d *stubDisk) Delete(_ context.Context, p string) error {
	delete(d.files, p)
	return nil
}

func (d *stubDisk) URL(p string) string { return "/storage/" + p }
