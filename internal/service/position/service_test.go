package position

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/document"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/position"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/user"
)

// ===== FAKES =====

// memRepo is an in-memory crud.Repository keyed by int64 ids.
type memRepo[T any] struct {
	items   map[int64]T
	order   []int64
	nextID  int64
	getID   func(T) int64
	setID   func(*T, int64)
	nils    int // nil entries FindAll interleaves with real ones
	saveErr error
	saves   int
	deletes int
}

func newMemRepo[T any](getID func(T) int64, setID func(*T, int64)) *memRepo[T] {
	return &memRepo[T]{
		items: make(map[int64]T),
		getID: getID,
		setID: setID,
	}
}

func (r *memRepo[T]) FindAll(ctx context.Context) ([]*T, error) {
	var out []*T
	for i, id := range r.order {
		if i < r.nils {
			out = append(out, nil)
		}
		item := r.items[id]
		out = append(out, &item)
	}
	return out, nil
}

func (r *memRepo[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *memRepo[T]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := r.items[id]
	return ok, nil
}

func (r *memRepo[T]) Save(ctx context.Context, entity T) (T, error) {
	if r.saveErr != nil {
		var zero T
		return zero, r.saveErr
	}
	r.saves++

	id := r.getID(entity)
	if id == 0 {
		r.nextID++
		id = r.nextID
		r.setID(&entity, id)
	}
	if _, exists := r.items[id]; !exists {
		r.order = append(r.order, id)
	}
	r.items[id] = entity
	return entity, nil
}

func (r *memRepo[T]) SaveAll(ctx context.Context, entities []T) ([]T, error) {
	out := make([]T, 0, len(entities))
	for _, e := range entities {
		saved, err := r.Save(ctx, e)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	return out, nil
}

func (r *memRepo[T]) DeleteByID(ctx context.Context, id int64) error {
	r.deletes++
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type memApplicationRepo struct {
	*memRepo[position.Application]
}

func (r memApplicationRepo) FindByViewed(ctx context.Context, viewed bool) ([]position.Application, error) {
	var out []position.Application
	for _, id := range r.order {
		if app := r.items[id]; app.Viewed == viewed {
			out = append(out, app)
		}
	}
	return out, nil
}

type fakeUserService struct {
	user user.User
	err  error
}

func (f fakeUserService) CurrentUser(ctx context.Context) (user.User, error) {
	return f.user, f.err
}

type fakeDocumentService struct {
	docs []document.Document
	err  error
}

func (f fakeDocumentService) FindAllForUser(ctx context.Context) ([]document.Document, error) {
	return f.docs, f.err
}

type recordingLogger struct {
	infos []map[string]any
}

func (l *recordingLogger) Info(msg string, args ...any) {
	fields := map[string]any{"msg": msg}
	for i := 0; i+1 < len(args); i += 2 {
		fields[args[i].(string)] = args[i+1]
	}
	l.infos = append(l.infos, fields)
}
func (l *recordingLogger) Warn(string, ...any)  {}
func (l *recordingLogger) Error(string, ...any) {}

type fixture struct {
	positions    *memRepo[position.Position]
	jobs         *memRepo[position.Job]
	placements   *memRepo[position.Placement]
	interests    *memRepo[position.ExpressionOfInterest]
	applications memApplicationRepo
	users        *fakeUserService
	documents    *fakeDocumentService
	logger       *recordingLogger
	service      position.PositionService
}

func newFixture() *fixture {
	f := &fixture{
		positions: newMemRepo(
			func(p position.Position) int64 { return p.ID },
			func(p *position.Position, id int64) { p.ID = id },
		),
		jobs: newMemRepo(
			func(j position.Job) int64 { return j.ID },
			func(j *position.Job, id int64) { j.ID = id },
		),
		placements: newMemRepo(
			func(p position.Placement) int64 { return p.ID },
			func(p *position.Placement, id int64) { p.ID = id },
		),
		interests: newMemRepo(
			func(e position.ExpressionOfInterest) int64 { return e.ID },
			func(e *position.ExpressionOfInterest, id int64) { e.ID = id },
		),
		applications: memApplicationRepo{newMemRepo(
			func(a position.Application) int64 { return a.ID },
			func(a *position.Application, id int64) { a.ID = id },
		)},
		users:     &fakeUserService{user: user.User{ID: 11, Email: "ada@example.com"}},
		documents: &fakeDocumentService{},
		logger:    &recordingLogger{},
	}

	f.service = NewPositionService(
		f.positions,
		f.jobs,
		f.placements,
		f.interests,
		f.applications,
		f.users,
		f.documents,
		f.logger,
	)
	return f
}

func sampleJobRequest() position.JobRequest {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	return position.JobRequest{
		Partner:      "Acme",
		StartDate:    start,
		EndDate:      start.AddDate(0, 3, 0),
		Period:       "Summer 2026",
		Location:     "Brisbane",
		Description:  "Warehouse assistant",
		Filled:       true,
		Approved:     true,
		PayRate:      31.5,
		PayType:      position.PayTypeHourly,
		PayFrequency: position.PayFrequencyWeekly,
	}
}

func samplePlacementRequest() position.PlacementRequest {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return position.PlacementRequest{
		Partner:     "Globex",
		StartDate:   start,
		EndDate:     start.AddDate(0, 6, 0),
		Period:      "Semester 1",
		Location:    "Sydney",
		Description: "Engineering placement",
		Filled:      true,
		Approved:    true,
		Completed:   true,
	}
}

// ===== JOB TESTS =====

func TestPositionService_CreateJob_ForcesFlagsFalse(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	req := sampleJobRequest()
	req.ID = 99

	created, err := f.service.CreateJob(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID, "id on a create request is ignored")
	assert.False(t, created.Filled)
	assert.False(t, created.Approved)
	assert.Equal(t, position.KindJob, created.Kind)
	assert.Equal(t, "Acme", created.Partner)
	assert.Equal(t, 31.5, created.PayRate)
	assert.Equal(t, position.PayTypeHourly, created.PayType)
	assert.Equal(t, position.PayFrequencyWeekly, created.PayFrequency)

	stored := f.jobs.items[created.ID]
	assert.False(t, stored.Filled)
	assert.False(t, stored.Approved)
}

func TestPositionService_UpdateJob_SetsAllFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	req := sampleJobRequest()
	req.Filled = true
	created, err := f.service.CreateJob(ctx, req)
	require.NoError(t, err)
	require.False(t, created.Filled)

	update := sampleJobRequest()
	update.ID = created.ID
	update.Filled = true
	update.Approved = true
	update.Location = "Perth"

	updated, err := f.service.UpdateJob(ctx, update)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.Filled)
	assert.True(t, updated.Approved)
	assert.Equal(t, "Perth", f.jobs.items[created.ID].Location)
	assert.Len(t, f.jobs.items, 1)
}

func TestPositionService_UpdateJob_UnknownIDUpserts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	req := sampleJobRequest()
	req.ID = 5

	updated, err := f.service.UpdateJob(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(5), updated.ID)
	assert.True(t, f.jobs.items[5].Filled)
	assert.True(t, f.jobs.items[5].Approved)
}

func TestPositionService_UpdateJob_OverwritesOmittedFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.service.CreateJob(ctx, sampleJobRequest())
	require.NoError(t, err)

	_, err = f.service.UpdateJob(ctx, position.JobRequest{ID: created.ID, Partner: "Acme"})
	require.NoError(t, err)

	stored := f.jobs.items[created.ID]
	assert.Empty(t, stored.Location)
	assert.Zero(t, stored.PayRate)
}

func TestPositionService_CreateJob_PropagatesPersistenceError(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	boom := errors.New("connection reset")
	f.jobs.saveErr = boom

	_, err := f.service.CreateJob(ctx, sampleJobRequest())

	assert.ErrorIs(t, err, boom)
}

func TestPositionService_ListJobs_SkipsNilEntries(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for _, partner := range []string{"Acme", "Globex", "Initech"} {
		req := sampleJobRequest()
		req.Partner = partner
		_, err := f.service.CreateJob(ctx, req)
		require.NoError(t, err)
	}
	f.jobs.nils = 2

	jobs, err := f.service.ListJobs(ctx)

	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "Acme", jobs[0].Partner)
	assert.Equal(t, "Globex", jobs[1].Partner)
	assert.Equal(t, "Initech", jobs[2].Partner)
}

func TestPositionService_ListJobs_Empty(t *testing.T) {
	f := newFixture()

	jobs, err := f.service.ListJobs(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

// ===== PLACEMENT TESTS =====

func TestPositionService_CreatePlacement_ForcesFlagsFalse(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.service.CreatePlacement(ctx, samplePlacementRequest())

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.Filled)
	assert.False(t, created.Approved)
	assert.False(t, created.Completed)
	assert.Equal(t, position.KindPlacement, created.Kind)
	assert.Equal(t, "Globex", created.Partner)
}

func TestPositionService_UpdatePlacement_SetsFlags(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.service.CreatePlacement(ctx, samplePlacementRequest())
	require.NoError(t, err)

	req := samplePlacementRequest()
	req.ID = created.ID

	updated, err := f.service.UpdatePlacement(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.Filled)
	assert.True(t, updated.Approved)
	assert.True(t, updated.Completed)
}

func TestPositionService_ListPlacements_SkipsNilEntries(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.service.CreatePlacement(ctx, samplePlacementRequest())
	require.NoError(t, err)
	f.placements.nils = 1

	placements, err := f.service.ListPlacements(ctx)

	require.NoError(t, err)
	assert.Len(t, placements, 1)
}

// ===== EXPRESSION OF INTEREST TESTS =====

func TestPositionService_ExpressionOfInterest_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.service.CreateExpressionOfInterest(ctx, position.ExpressionOfInterest{
		Name:  "Grace",
		Email: "grace@example.com",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := f.service.GetExpressionOfInterest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.Name)

	got.Message = "Keen on data roles"
	updated, err := f.service.UpdateExpressionOfInterest(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Keen on data roles", f.interests.items[created.ID].Message)
}

func TestPositionService_GetExpressionOfInterest_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetExpressionOfInterest(context.Background(), 404)

	assert.ErrorIs(t, err, position.ErrExpressionOfInterestNotFound)
}

func TestPositionService_DeleteExpressionOfInterest(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.service.CreateExpressionOfInterest(ctx, position.ExpressionOfInterest{Name: "Grace", Email: "g@example.com"})
	require.NoError(t, err)

	status, err := f.service.DeleteExpressionOfInterest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, position.StatusDeleted, status)

	status, err = f.service.DeleteExpressionOfInterest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, position.StatusNotDeleted, status)

	assert.Equal(t, 1, f.interests.deletes, "a missing id must not reach the store")
}

func TestPositionService_DeleteExpressionOfInterest_UnknownID(t *testing.T) {
	f := newFixture()
	_, err := f.service.CreateExpressionOfInterest(context.Background(), position.ExpressionOfInterest{Name: "Keep"})
	require.NoError(t, err)

	status, err := f.service.DeleteExpressionOfInterest(context.Background(), 77)

	require.NoError(t, err)
	assert.Equal(t, position.StatusNotDeleted, status)
	assert.Len(t, f.interests.items, 1)
	assert.Zero(t, f.interests.deletes)
}

func TestPositionService_ListExpressionsOfInterest_SkipsNilEntries(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.service.CreateExpressionOfInterest(ctx, position.ExpressionOfInterest{Name: "A"})
	require.NoError(t, err)
	_, err = f.service.CreateExpressionOfInterest(ctx, position.ExpressionOfInterest{Name: "B"})
	require.NoError(t, err)
	f.interests.nils = 2

	eois, err := f.service.ListExpressionsOfInterest(ctx)

	require.NoError(t, err)
	require.Len(t, eois, 2)
	assert.Equal(t, "A", eois[0].Name)
	assert.Equal(t, "B", eois[1].Name)
}

// ===== APPLICATION TESTS =====

func TestPositionService_FilterUserDocuments(t *testing.T) {
	a := document.Document{ID: uuid.New(), Name: "a.pdf"}
	b := document.Document{ID: uuid.New(), Name: "b.pdf"}
	c := document.Document{ID: uuid.New(), Name: "c.pdf"}
	d := uuid.New()

	f := newFixture()
	f.documents.docs = []document.Document{a, b, b, c, b}

	got, err := f.service.FilterUserDocuments(context.Background(), position.ApplicationRequest{
		FileIDs: []uuid.UUID{b.ID, c.ID, d},
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []document.Document{b, c}, got)
}

func TestPositionService_FilterUserDocuments_NoFileIDs(t *testing.T) {
	f := newFixture()
	f.documents.docs = []document.Document{{ID: uuid.New()}}

	got, err := f.service.FilterUserDocuments(context.Background(), position.ApplicationRequest{})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPositionService_FilterUserDocuments_PropagatesError(t *testing.T) {
	f := newFixture()
	boom := errors.New("documents unavailable")
	f.documents.err = boom

	_, err := f.service.FilterUserDocuments(context.Background(), position.ApplicationRequest{})

	assert.ErrorIs(t, err, boom)
}

func TestPositionService_SubmitApplication_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	pos, err := f.positions.Save(ctx, position.Position{Kind: position.KindJob, Partner: "Acme"})
	require.NoError(t, err)

	cv := document.Document{ID: uuid.New(), OwnerID: 11, Name: "cv.pdf"}
	other := document.Document{ID: uuid.New(), OwnerID: 11, Name: "transcript.pdf"}
	f.documents.docs = []document.Document{cv, other}

	app, err := f.service.SubmitApplication(ctx, position.ApplicationRequest{
		PositionID: pos.ID,
		Message:    "I'd love to join",
		FileIDs:    []uuid.UUID{cv.ID},
	})

	require.NoError(t, err)
	assert.NotZero(t, app.ID)
	assert.Equal(t, pos, app.Position)
	assert.Equal(t, int64(11), app.Applicant.ID)
	assert.Equal(t, []document.Document{cv}, app.Documents)
	assert.Equal(t, "I'd love to join", app.Message)
	assert.False(t, app.Viewed)

	require.Len(t, f.logger.infos, 1)
	assert.Equal(t, app.ID, f.logger.infos[0]["application_id"])
	assert.Equal(t, int64(11), f.logger.infos[0]["applicant_id"])
}

func TestPositionService_SubmitApplication_PositionNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.service.SubmitApplication(context.Background(), position.ApplicationRequest{PositionID: 12345})

	assert.ErrorIs(t, err, position.ErrPositionNotFound)
	assert.Zero(t, f.applications.saves)
	assert.Empty(t, f.logger.infos)
}

func TestPositionService_SubmitApplication_NoCurrentUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	pos, err := f.positions.Save(ctx, position.Position{Kind: position.KindPlacement})
	require.NoError(t, err)
	f.users.err = user.ErrInvalidToken

	_, err = f.service.SubmitApplication(ctx, position.ApplicationRequest{PositionID: pos.ID})

	assert.ErrorIs(t, err, user.ErrInvalidToken)
	assert.Zero(t, f.applications.saves)
}

func TestPositionService_UnviewedApplications_AfterBulkUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	pos, err := f.positions.Save(ctx, position.Position{Kind: position.KindJob})
	require.NoError(t, err)

	first, err := f.service.SubmitApplication(ctx, position.ApplicationRequest{PositionID: pos.ID, Message: "one"})
	require.NoError(t, err)
	second, err := f.service.SubmitApplication(ctx, position.ApplicationRequest{PositionID: pos.ID, Message: "two"})
	require.NoError(t, err)

	unviewed, err := f.service.ListUnviewedApplications(ctx)
	require.NoError(t, err)
	assert.Len(t, unviewed, 2)

	first.Viewed = true
	updated, err := f.service.UpdateApplications(ctx, []position.Application{first})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.True(t, updated[0].Viewed)

	unviewed, err = f.service.ListUnviewedApplications(ctx)
	require.NoError(t, err)
	require.Len(t, unviewed, 1)
	assert.Equal(t, second.ID, unviewed[0].ID)
}

func TestPositionService_GetPosition(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	pos, err := f.positions.Save(ctx, position.Position{Kind: position.KindJob, Partner: "Acme"})
	require.NoError(t, err)

	got, err := f.service.GetPosition(ctx, pos.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Partner)

	_, err = f.service.GetPosition(ctx, pos.ID+1)
	assert.ErrorIs(t, err, position.ErrPositionNotFound)
}

func TestNewPositionService_NilLogger(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewPositionService(f.positions, f.jobs, f.placements, f.interests, f.applications, f.users, f.documents, nil)
	pos, err := f.positions.Save(ctx, position.Position{Kind: position.KindJob})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, err := svc.SubmitApplication(ctx, position.ApplicationRequest{PositionID: pos.ID})
		assert.NoError(t, err)
	})
}
