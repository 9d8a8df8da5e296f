package services

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"user-presence-api/internal/domain/binary_content"
	"user-presence-api/internal/domain/errs"
	"user-presence-api/internal/domain/user"
	"user-presence-api/internal/domain/user_status"
	"user-presence-api/internal/infrastructure/mq"
)

// memDB backs the fake repositories. WithTx on fakeTx snapshots it and
// restores the snapshot on rollback.
type memDB struct {
	mu       sync.Mutex
	users    map[uuid.UUID]user.User
	statuses map[uuid.UUID]user_status.UserStatus
	contents map[uuid.UUID]binary_content.BinaryContent

	failStatusSave error
	failUserSave   error
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[uuid.UUID]user.User{},
		statuses: map[uuid.UUID]user_status.UserStatus{},
		contents: map[uuid.UUID]binary_content.BinaryContent{},
	}
}

type memSnapshot struct {
	users    map[uuid.UUID]user.User
	statuses map[uuid.UUID]user_status.UserStatus
	contents map[uuid.UUID]binary_content.BinaryContent
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	return memSnapshot{users: maps.Clone(db.users), statuses: maps.Clone(db.statuses), contents: maps.Clone(db.contents)}
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users, db.statuses, db.contents = s.users, s.statuses, s.contents
}

type fakeUserRepo struct{ db *memDB }

func (r fakeUserRepo) Save(_ context.Context, u user.User) (*user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failUserSave != nil {
		return nil, r.db.failUserSave
	}
	for id, other := range r.db.users {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email {
			return nil, errs.ErrDuplicateEmail
		}
		if other.Username == u.Username {
			return nil, errs.ErrDuplicateUsername
		}
	}
	r.db.users[u.ID] = u
	return &u, nil
}

func (r fakeUserRepo) FindByID(_ context.Context, id user.UUID) (*user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) FindAll(context.Context) (user.Users, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	us := make(user.Users, 0, len(r.db.users))
	for _, u := range r.db.users {
		u := u
		us = append(us, &u)
	}
	sort.Slice(us, func(i, j int) bool { return us[i].Username < us[j].Username })
	return us, nil
}

func (r fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.FindByUsername(ctx, username)
	return u != nil, err
}

func (r fakeUserRepo) DeleteByID(_ context.Context, id user.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.users, id)
	return nil
}

type fakeStatusRepo struct{ db *memDB }

func (r fakeStatusRepo) Save(_ context.Context, s user_status.UserStatus) (*user_status.UserStatus, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failStatusSave != nil {
		return nil, r.db.failStatusSave
	}
	r.db.statuses[s.ID] = s
	return &s, nil
}

func (r fakeStatusRepo) FindByID(_ context.Context, id uuid.UUID) (*user_status.UserStatus, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.statuses[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r fakeStatusRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*user_status.UserStatus, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.statuses {
		if s.UserID == userID {
			return &s, nil
		}
	}
	return nil, nil
}

func (r fakeStatusRepo) FindAll(context.Context) (user_status.UserStatuses, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ss := make(user_status.UserStatuses, 0, len(r.db.statuses))
	for _, s := range r.db.statuses {
		s := s
		ss = append(ss, &s)
	}
	return ss, nil
}

func (r fakeStatusRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, s := range r.db.statuses {
		if s.UserID == userID {
			delete(r.db.statuses, id)
		}
	}
	return nil
}

func (r fakeStatusRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.statuses, id)
	return nil
}

type fakeContentRepo struct{ db *memDB }

func (r fakeContentRepo) Save(_ context.Context, c binary_content.BinaryContent) (*binary_content.BinaryContent, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.Bytes = nil
	r.db.contents[c.ID] = c
	return &c, nil
}

func (r fakeContentRepo) FindByID(_ context.Context, id uuid.UUID) (*binary_content.BinaryContent, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.contents[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r fakeContentRepo) FindAllByIDIn(_ context.Context, ids []uuid.UUID) (binary_content.BinaryContents, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cs := binary_content.BinaryContents{}
	for _, id := range ids {
		if c, ok := r.db.contents[id]; ok {
			cs = append(cs, &c)
		}
	}
	return cs, nil
}

func (r fakeContentRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.contents[id]
	return ok, nil
}

func (r fakeContentRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.contents, id)
	return nil
}

type fakeTx struct {
	db         *memDB
	inTx       bool
	afterHooks []func(ctx context.Context) error
	rbHooks    []func(ctx context.Context) error
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.inTx {
		return fn(ctx)
	}

	snap := f.db.snapshot()
	f.inTx = true
	err := fn(ctx)
	f.inTx = false

	after, rb := f.afterHooks, f.rbHooks
	f.afterHooks, f.rbHooks = nil, nil
	if err != nil {
		f.db.restore(snap)
		for _, h := range rb {
			_ = h(ctx)
		}
		return err
	}
	for _, h := range after {
		_ = h(ctx)
	}
	return nil
}

func (f *fakeTx) AfterCommit(ctx context.Context, fn func(ctx context.Context) error) {
	if f.inTx {
		f.afterHooks = append(f.afterHooks, fn)
		return
	}
	_ = fn(ctx)
}

func (f *fakeTx) OnRollback(_ context.Context, fn func(ctx context.Context) error) {
	if f.inTx {
		f.rbHooks = append(f.rbHooks, fn)
	}
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) PutObject(_ context.Context, key, _ string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = append([]byte(nil), body...)
	return nil
}

func (f *fakeS3) GetObject(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[key]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return b, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeS3) GetBucket() string { return "uploads" }

type fakeMQ struct{ in chan mq.Event }

func newFakeMQ() *fakeMQ { return &fakeMQ{in: make(chan mq.Event, 16)} }

func (f *fakeMQ) Connect(context.Context, string) error { return nil }
func (f *fakeMQ) Init() error                           { return nil }
func (f *fakeMQ) PublisherWorker(context.Context)       {}
func (f *fakeMQ) GetInputChan() chan mq.Event           { return f.in }
func (f *fakeMQ) GetConn() *amqp091.Connection          { return nil }

func (f *fakeMQ) drain() []mq.Event {
	var es []mq.Event
	for {
		select {
		case e := <-f.in:
			es = append(es, e)
		default:
			return es
		}
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type fixture struct {
	db       *memDB
	s3       *fakeS3
	mq       *fakeMQ
	clock    *clock
	counter  *prometheus.CounterVec
	users    *UserService
	statuses *UserStatusService
	contents *BinaryContentService
}

var errBoom = errors.New("boom")

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		db:      newMemDB(),
		s3:      newFakeS3(),
		mq:      newFakeMQ(),
		clock:   &clock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"}),
	}
	tx := &fakeTx{db: f.db}

	f.statuses = NewUserStatusService(fakeStatusRepo{db: f.db}, 0).(*UserStatusService)
	f.statuses.now = f.clock.now
	f.contents = NewBinaryContentService(f.s3, fakeContentRepo{db: f.db}, tx, f.counter).(*BinaryContentService)
	f.contents.now = f.clock.now
	f.users = NewUserService(
		fakeUserRepo{db: f.db},
		f.statuses,
		f.contents,
		tx,
		f.mq,
		f.counter,
		zap.NewNop(),
		0,
	).(*UserService)
	f.users.now = f.clock.now
	f.users.hashCost = bcrypt.MinCost

	return f
}
