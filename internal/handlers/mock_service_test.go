package handlers

import (
	"context"
	"net/http"
	"sync"

	"package_features/internal/models"
	"package_features/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	loginToken string
	loginID    service.Identity
	loginErr   error
	issueToken string
	issueErr   error
	parseID    service.Identity
	parseErr   error

	lastLoginEmail    string
	lastLoginPassword string
	lastIssued        service.Identity
	lastParseToken    string
	parseCalls        int
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (string, service.Identity, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginToken, m.loginID, m.loginErr
}
func (m *mockAuth) IssueToken(id service.Identity) (string, error) {
	m.lastIssued = id
	return m.issueToken, m.issueErr
}
func (m *mockAuth) ParseToken(token string) (service.Identity, error) {
	m.parseCalls++
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockUsers struct {
	user    *models.User
	users   []models.User
	err     error
	calls   int
	lastIn  service.UserInput
	lastID  int
	lastKey string
	lastP   service.UserPatch
	lastSt  models.Status
}

func (m *mockUsers) Create(ctx context.Context, in service.UserInput) (*models.User, error) {
	m.calls++
	m.lastIn = in
	return m.user, m.err
}
func (m *mockUsers) List(ctx context.Context, status models.Status) ([]models.User, error) {
	m.calls++
	m.lastSt = status
	return m.users, m.err
}
func (m *mockUsers) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.calls++
	m.lastID = id
	return m.user, m.err
}
func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.calls++
	m.lastKey = email
	return m.user, m.err
}
func (m *mockUsers) Update(ctx context.Context, id int, p service.UserPatch) (*models.User, error) {
	m.calls++
	m.lastID = id
	m.lastP = p
	return m.user, m.err
}
func (m *mockUsers) SoftDelete(ctx context.Context, id int) (*models.User, error) {
	m.calls++
	m.lastID = id
	return m.user, m.err
}

type mockFeatures struct {
	feature  *models.PackageFeature
	features []models.PackageFeature
	err      error
	calls    int
	lastIn   service.FeatureInput
	lastID   int
	lastP    service.FeaturePatch
	lastSt   models.Status
}

func (m *mockFeatures) Create(ctx context.Context, in service.FeatureInput) (*models.PackageFeature, error) {
	m.calls++
	m.lastIn = in
	return m.feature, m.err
}
func (m *mockFeatures) List(ctx context.Context, status models.Status) ([]models.PackageFeature, error) {
	m.calls++
	m.lastSt = status
	return m.features, m.err
}
func (m *mockFeatures) GetByID(ctx context.Context, id int) (*models.PackageFeature, error) {
	m.calls++
	m.lastID = id
	return m.feature, m.err
}
func (m *mockFeatures) Update(ctx context.Context, id int, p service.FeaturePatch) (*models.PackageFeature, error) {
	m.calls++
	m.lastID = id
	m.lastP = p
	return m.feature, m.err
}
func (m *mockFeatures) SoftDelete(ctx context.Context, id int) (*models.PackageFeature, error) {
	m.calls++
	m.lastID = id
	return m.feature, m.err
}

// mockEventLog is shared with the websocket goroutine, hence the mutex.
type mockEventLog struct {
	mu        sync.Mutex
	resp      []models.AuditEvent
	err       error
	recordErr error
	recorded  []models.AuditEvent
	lastF     service.LogFilter
	listCalls int
}

func (m *mockEventLog) Record(ctx context.Context, e models.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, e)
	return m.recordErr
}
func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.AuditEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.lastF = f
	return append([]models.AuditEvent(nil), m.resp...), m.err
}

func (m *mockEventLog) setResp(events []models.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resp = events
}

func (m *mockEventLog) recordedTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.recorded))
	for _, e := range m.recorded {
		out = append(out, e.Type)
	}
	return out
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
