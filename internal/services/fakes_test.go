package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"meetapp/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	createErr error
	updateErr error
	getErr    error
	updated   *domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	u.ID = "user-new"
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = u
	f.byID[u.ID] = u
	return nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct{}

func (fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + "-" + password, nil
}
func (fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+"-"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

// fakeMeetupRepo implements domain.MeetupRepository for tests.
type fakeMeetupRepo struct {
	byID      map[string]*domain.Meetup
	getErr    error
	listErr   error
	createErr error
	updateErr error
	total     int
	filter    domain.MeetupFilter
	patched   *domain.MeetupPatch
	deleted   []string
	ownerArgs struct {
		ownerID string
		after   time.Time
	}
}

func newFakeMeetupRepo(meetups ...*domain.Meetup) *fakeMeetupRepo {
	f := &fakeMeetupRepo{byID: make(map[string]*domain.Meetup)}
	for _, m := range meetups {
		f.byID[m.ID] = m
	}
	return f
}

func (f *fakeMeetupRepo) Create(ctx context.Context, m *domain.Meetup) error {
	if f.createErr != nil {
		return f.createErr
	}
	m.ID = "meetup-new"
	f.byID[m.ID] = m
	return nil
}

func (f *fakeMeetupRepo) GetByID(ctx context.Context, id string) (*domain.Meetup, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if m, ok := f.byID[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMeetupRepo) List(ctx context.Context, filter domain.MeetupFilter) ([]*domain.Meetup, int, error) {
	f.filter = filter
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	out := make([]*domain.Meetup, 0, len(f.byID))
	for _, m := range f.byID {
		copied := *m
		out = append(out, &copied)
	}
	return out, f.total, nil
}

func (f *fakeMeetupRepo) ListUpcomingByOwnerID(ctx context.Context, ownerID string, after time.Time) ([]*domain.Meetup, error) {
	f.ownerArgs.ownerID = ownerID
	f.ownerArgs.after = after
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Meetup, 0)
	for _, m := range f.byID {
		if m.OwnerID == ownerID && m.Date.After(after) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetupRepo) Update(ctx context.Context, id string, patch domain.MeetupPatch) (*domain.Meetup, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.patched = &patch
	m, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *m
	if patch.Title != nil {
		copied.Title = *patch.Title
	}
	if patch.Date != nil {
		copied.Date = *patch.Date
	}
	return &copied, nil
}

func (f *fakeMeetupRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

// fakeSubscriptionRepo implements domain.SubscriptionRepository for tests.
type fakeSubscriptionRepo struct {
	subs      []*domain.Subscription
	slots     map[string][]domain.SubscribedSlot
	upcoming  []*domain.SubscriptionWithMeetup
	createErr error
	slotsErr  error
	deleted   []string
	after     time.Time
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{slots: make(map[string][]domain.SubscribedSlot)}
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	if f.createErr != nil {
		return f.createErr
	}
	sub.ID = "sub-new"
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeSubscriptionRepo) GetByMeetupAndUser(ctx context.Context, meetupID, userID string) (*domain.Subscription, error) {
	for _, s := range f.subs {
		if s.MeetupID == meetupID && s.UserID == userID {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSubscriptionRepo) ListSlotsByUserID(ctx context.Context, userID string) ([]domain.SubscribedSlot, error) {
	if f.slotsErr != nil {
		return nil, f.slotsErr
	}
	return f.slots[userID], nil
}

func (f *fakeSubscriptionRepo) ListUpcomingByUserID(ctx context.Context, userID string, after time.Time) ([]*domain.SubscriptionWithMeetup, error) {
	f.after = after
	return f.upcoming, nil
}

func (f *fakeSubscriptionRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type enqueuedJob struct {
	key     string
	payload any
}

// fakeQueue implements domain.JobQueue for tests.
type fakeQueue struct {
	jobs []enqueuedJob
	err  error
}

func (f *fakeQueue) Enqueue(ctx context.Context, key string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, enqueuedJob{key: key, payload: payload})
	return nil
}

func (f *fakeQueue) Process(ctx context.Context, key string, handler domain.JobHandler) error {
	return errors.New("not implemented")
}

// fakeStorage implements domain.FileStorage for tests.
type fakeStorage struct {
	files   map[string][]byte
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) Save(ctx context.Context, path, contentType string, body io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.files[path] = b
	return nil
}

func (f *fakeStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	b, ok := f.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeStorage) URL(path string) string {
	return "http://localhost:3333/files/" + path
}

// fakeFileRepo implements domain.FileRepository for tests.
type fakeFileRepo struct {
	byPath map[string]*domain.File
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{byPath: make(map[string]*domain.File)}
}

func (f *fakeFileRepo) Create(ctx context.Context, file *domain.File) error {
	file.ID = "file-new"
	f.byPath[file.Path] = file
	return nil
}

func (f *fakeFileRepo) GetByPath(ctx context.Context, path string) (*domain.File, error) {
	if file, ok := f.byPath[path]; ok {
		return file, nil
	}
	return nil, domain.ErrNotFound
}

// fakeMailer implements domain.Mailer for tests.
type fakeMailer struct {
	to, subject string
	err         error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.to, f.subject = to, subject
	return nil
}

// fakeRenderer implements domain.EmailTemplateRenderer for tests.
type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	f.name = templateName
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}
