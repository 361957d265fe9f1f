package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sanketnagtilak/mern-project/models"
	"github.com/sanketnagtilak/mern-project/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memListings struct {
	mu        sync.Mutex
	docs      map[primitive.ObjectID]models.Listing
	insertErr  error
	replaceErr error
	deleteErr  error
}

func newMemListings() *memListings {
	return &memListings{docs: make(map[primitive.ObjectID]models.Listing)}
}

func (m *memListings) Insert(_ context.Context, l *models.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	m.docs[l.ID] = cloneListing(*l)
	return nil
}

func (m *memListings) FindByID(_ context.Context, id string) (*models.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.docs[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneListing(l)
	return &out, nil
}

func (m *memListings) Find(_ context.Context, q repository.ListingQuery) ([]models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	term := strings.ToLower(q.SearchTerm)
	var matched []models.Listing
	for _, l := range m.docs {
		if !strings.Contains(strings.ToLower(l.Name), term) {
			continue
		}
		if (q.Offer && !l.Offer) || (q.Furnished && !l.Furnished) || (q.Parking && !l.Parking) {
			continue
		}
		if q.Type != "" && l.Type != q.Type {
			continue
		}
		matched = append(matched, cloneListing(l))
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if q.Ascending {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if q.Ascending {
			return a.ID.Hex() < b.ID.Hex()
		}
		return a.ID.Hex() > b.ID.Hex()
	})
	return page(matched, q.StartIndex, q.Limit), nil
}

func (m *memListings) FindByAgent(ctx context.Context, agentID string, limit, skip int64) ([]models.Listing, error) {
	all, _ := m.Find(ctx, repository.ListingQuery{Limit: 1 << 30})
	var out []models.Listing
	for _, l := range all {
		if l.AgentRef == agentID {
			out = append(out, l)
		}
	}
	return page(out, skip, limit), nil
}

func (m *memListings) FindByUser(ctx context.Context, userID string) ([]models.Listing, error) {
	all, _ := m.Find(ctx, repository.ListingQuery{Limit: 1 << 30})
	out := []models.Listing{}
	for _, l := range all {
		if l.UserRef == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memListings) Replace(_ context.Context, l *models.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if _, ok := m.docs[l.ID]; !ok {
		return repository.ErrNotFound
	}
	m.docs[l.ID] = cloneListing(*l)
	return nil
}

func (m *memListings) SetHouseOptions(_ context.Context, id primitive.ObjectID, houseOptions []string) (*models.Listing, error) {
	return m.mutate(id, func(l *models.Listing) { l.HouseOptions = append([]string{}, houseOptions...) })
}

func (m *memListings) PushImage(_ context.Context, id primitive.ObjectID, url string) (*models.Listing, error) {
	return m.mutate(id, func(l *models.Listing) { l.ImageURLs = append(l.ImageURLs, url) })
}

func (m *memListings) mutate(id primitive.ObjectID, fn func(*models.Listing)) (*models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fn(&l)
	m.docs[id] = l
	out := cloneListing(l)
	return &out, nil
}

func (m *memListings) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

func (m *memListings) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

func cloneListing(l models.Listing) models.Listing {
	l.ImageURLs = append([]string(nil), l.ImageURLs...)
	l.HouseOptions = append([]string(nil), l.HouseOptions...)
	return l
}

func page(items []models.Listing, skip, limit int64) []models.Listing {
	out := []models.Listing{}
	if skip >= int64(len(items)) {
		return out
	}
	end := int64(len(items))
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return append(out, items[skip:end]...)
}

type memAgents struct {
	mu   sync.Mutex
	docs map[string]*models.Agent
}

func newMemAgents() *memAgents {
	return &memAgents{docs: make(map[string]*models.Agent)}
}

func (m *memAgents) add(name string, listings int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := &models.Agent{ID: primitive.NewObjectID(), Name: name, Email: strings.ToLower(name) + "@example.com", Listings: listings}
	m.docs[a.ID.Hex()] = a
	return a.ID.Hex()
}

func (m *memAgents) listings(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.docs[id]; ok {
		return a.Listings
	}
	return -1
}

func (m *memAgents) Insert(_ context.Context, a *models.Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.docs {
		if existing.Email == a.Email {
			return repository.ErrDuplicate
		}
	}
	a.ID = primitive.NewObjectID()
	copied := *a
	m.docs[a.ID.Hex()] = &copied
	return nil
}

func (m *memAgents) FindByID(_ context.Context, id string) (*models.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memAgents) FindByEmail(_ context.Context, email string) (*models.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.docs {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memAgents) IncrementListings(_ context.Context, id string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.docs[id]
	if !ok || a.Listings+delta < 0 {
		return repository.ErrNotFound
	}
	a.Listings += delta
	return nil
}

type memUsers struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{docs: make(map[primitive.ObjectID]models.User)}
}

func (m *memUsers) conflicts(u *models.User) bool {
	for id, existing := range m.docs {
		if id != u.ID && (existing.Email == u.Email || existing.Username == u.Username) {
			return true
		}
	}
	return false
}

func (m *memUsers) Insert(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts(u) {
		return repository.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	m.docs[u.ID] = *u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.docs[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.docs {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) Replace(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[u.ID]; !ok {
		return repository.ErrNotFound
	}
	if m.conflicts(u) {
		return repository.ErrDuplicate
	}
	m.docs[u.ID] = *u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

type memImages struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *memImages) Upload(_ context.Context, filename, contentType string, src io.Reader) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	id := primitive.NewObjectID().Hex()
	m.files[id] = data
	return id, nil
}

func (m *memImages) Open(_ context.Context, id string) (*repository.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &repository.Image{
		ReadCloser:  io.NopCloser(strings.NewReader(string(data))),
		Name:        "image",
		ContentType: "image/png",
		Length:      int64(len(data)),
	}, nil
}

// noTx runs units directly, the way MongoTxRunner does when transactions
// are disabled.
type noTx struct{}

func (noTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
func (noTx) Transactional() bool                                                   { return false }

type memCache struct {
	mu       sync.Mutex
	entries  map[string][]models.Listing
	versions map[string]int64
	hits     int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]models.Listing), versions: make(map[string]int64)}
}

func (c *memCache) GetCached(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	out, ok := dest.(*[]models.Listing)
	if !ok {
		return false, errors.New("unexpected cache destination")
	}
	*out = v
	c.hits++
	return true, nil
}

func (c *memCache) SetCached(_ context.Context, key string, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value.([]models.Listing)
	return nil
}

func (c *memCache) Version(_ context.Context, namespace string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[namespace], nil
}

func (c *memCache) BumpVersion(_ context.Context, namespace string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[namespace]++
	return nil
}

type testEnv struct {
	listings *memListings
	agents   *memAgents
	users    *memUsers
	cache    *memCache
	agentSvc *AgentService
	svc      *ListingService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		listings: newMemListings(),
		agents:   newMemAgents(),
		users:    newMemUsers(),
		cache:    newMemCache(),
	}
	tokens := TokenIssuer{Secret: "test-secret", TTL: time.Hour}
	env.agentSvc = NewAgentService(env.agents, tokens)
	env.svc = NewListingService(env.listings, env.agentSvc, &memImages{}, noTx{}, env.cache)
	return env
}
