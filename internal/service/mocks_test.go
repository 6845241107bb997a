package service

import (
	"context"
	"time"

	"package_features/internal/models"
)

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn     func(u *models.User) error
	ListFn       func(status models.Status) ([]models.User, error)
	GetByIDFn    func(id int) (*models.User, error)
	GetByEmailFn func(email string) (*models.User, error)
	UpdateFn     func(u *models.User) error
	SetStatusFn  func(id int, status models.Status) (*models.User, error)

	created    []models.User
	updated    []models.User
	emailCalls []string
}

func (m *mockUserRepo) Create(_ context.Context, u *models.User) error {
	m.created = append(m.created, *u)
	if m.CreateFn == nil {
		u.ID = len(m.created)
		return nil
	}
	return m.CreateFn(u)
}

func (m *mockUserRepo) List(_ context.Context, status models.Status) ([]models.User, error) {
	return m.ListFn(status)
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	return m.GetByIDFn(id)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.emailCalls = append(m.emailCalls, email)
	if m.GetByEmailFn == nil {
		return nil, nil
	}
	return m.GetByEmailFn(email)
}

func (m *mockUserRepo) Update(_ context.Context, u *models.User) error {
	m.updated = append(m.updated, *u)
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(u)
}

func (m *mockUserRepo) SetStatus(_ context.Context, id int, status models.Status) (*models.User, error) {
	return m.SetStatusFn(id, status)
}

type mockFeatureRepo struct {
	CreateFn    func(f *models.PackageFeature) error
	ListFn      func(status models.Status) ([]models.PackageFeature, error)
	GetByIDFn   func(id int) (*models.PackageFeature, error)
	UpdateFn    func(f *models.PackageFeature) error
	SetStatusFn func(id int, status models.Status) (*models.PackageFeature, error)

	updated []models.PackageFeature
}

func (m *mockFeatureRepo) Create(_ context.Context, f *models.PackageFeature) error {
	return m.CreateFn(f)
}

func (m *mockFeatureRepo) List(_ context.Context, status models.Status) ([]models.PackageFeature, error) {
	return m.ListFn(status)
}

func (m *mockFeatureRepo) GetByID(_ context.Context, id int) (*models.PackageFeature, error) {
	return m.GetByIDFn(id)
}

func (m *mockFeatureRepo) Update(_ context.Context, f *models.PackageFeature) error {
	m.updated = append(m.updated, *f)
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(f)
}

func (m *mockFeatureRepo) SetStatus(_ context.Context, id int, status models.Status) (*models.PackageFeature, error) {
	return m.SetStatusFn(id, status)
}

type mockEventRepo struct {
	appended  []models.AuditEvent
	appendErr error

	listResp []models.AuditEvent
	listErr  error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventRepo) Append(_ context.Context, e models.AuditEvent) error {
	m.appended = append(m.appended, e)
	return m.appendErr
}

func (m *mockEventRepo) List(_ context.Context, from, to time.Time, typ string) ([]models.AuditEvent, error) {
	m.lastFrom, m.lastTo, m.lastType = from, to, typ
	return m.listResp, m.listErr
}

func strPtr(s string) *string { return &s }
