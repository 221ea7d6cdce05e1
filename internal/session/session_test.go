package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/compass/internal/advising"
	"github.com/alexanderramin/compass/internal/db"
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/repository"
	"github.com/alexanderramin/compass/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var catalogNames = []string{"Biology", "Computer Science", "Nursing"}

type stubRecommender struct {
	mu      sync.Mutex
	calls   [][]string
	schools []string
	majors  []string
	err     error
	gate    chan struct{}
	entered chan struct{}
}

func (r *stubRecommender) Recommend(ctx context.Context, interests []string, school string) ([]string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, interests)
	r.schools = append(r.schools, school)
	r.mu.Unlock()
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.gate != nil {
		<-r.gate
	}
	return r.majors, r.err
}

type fixture struct {
	db   *sql.DB
	p    *Persistence
	ob   *OnboardingStore
	dash *DashboardStore
	rec  *stubRecommender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &fixture{db: database, rec: &stubRecommender{}}
	f.p = NewPersistence(database, zap.NewNop())
	f.reload(t)
	return f
}

// reload builds fresh stores over the same database, as a restart would.
func (f *fixture) reload(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	f.ob = NewOnboardingStore(ctx, catalogNames, f.rec, f.p, zap.NewNop())
	f.dash = NewDashboardStore(ctx, f.p, testutil.FixedClock(9), zap.NewNop())
}

func (f *fixture) slot(t *testing.T, key string) *domain.Slot {
	t.Helper()
	s, err := repository.NewSQLiteSlotRepo(f.db).Get(context.Background(), key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	require.NoError(t, err)
	return s
}

func TestOnboardingStore_InitialState(t *testing.T) {
	f := newFixture(t)

	want := domain.OnboardingState{
		Step:            domain.StepWelcome,
		Interests:       []string{},
		SuggestedMajors: []string{},
		AvailableMajors: catalogNames,
	}
	if diff := cmp.Diff(want, f.ob.Get()); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}
}

func TestOnboardingStore_GetReturnsCopy(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ob.ToggleInterest("Robotics"))

	snap := f.ob.Get()
	snap.Interests[0] = "Mutated"
	snap.AvailableMajors[0] = "Mutated"

	assert.Equal(t, []string{"Robotics"}, f.ob.Get().Interests)
	assert.Equal(t, "Biology", f.ob.Get().AvailableMajors[0])
}

func TestOnboardingStore_ToggleInterest(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ob.ToggleInterest("Robotics"))
	require.NoError(t, f.ob.ToggleInterest("Medicine"))
	require.NoError(t, f.ob.ToggleInterest("Robotics"))
	assert.Equal(t, []string{"Medicine"}, f.ob.Get().Interests)

	err := f.ob.ToggleInterest("Underwater Basket Weaving")
	assert.ErrorIs(t, err, ErrUnknownInterest)
	assert.Equal(t, []string{"Medicine"}, f.ob.Get().Interests)
}

func TestOnboardingStore_SetInterestsCollapsesDuplicates(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ob.SetInterests([]string{"Robotics", "Robotics", "Psychology"}))
	assert.Equal(t, []string{"Robotics", "Psychology"}, f.ob.Get().Interests)

	assert.ErrorIs(t, f.ob.SetInterests([]string{"Psychology", "nope"}), ErrUnknownInterest)
	assert.Equal(t, []string{"Robotics", "Psychology"}, f.ob.Get().Interests)
}

func TestOnboardingStore_SetStepRejectsOutOfRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.ob.SetStep(ctx, domain.Step(5)), ErrInvalidStep)
	assert.ErrorIs(t, f.ob.SetStep(ctx, domain.Step(-1)), ErrInvalidStep)
	assert.Equal(t, domain.StepWelcome, f.ob.Get().Step)
}

func TestOnboardingStore_SetStepZeroResetsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ob.SetSchool(ctx, "Test U")
	f.ob.SetKnowsMajor(ctx, domain.KnowsMajorYes)
	f.ob.SetSelectedMajor(ctx, "Nursing")
	require.NoError(t, f.ob.ToggleInterest("Medicine"))
	f.ob.SetSuggestedMajors([]string{"A"})
	f.ob.SetError("boom")
	require.NoError(t, f.ob.SetStep(ctx, domain.StepResults))
	require.NotNil(t, f.slot(t, OnboardingKey))

	require.NoError(t, f.ob.SetStep(ctx, domain.StepWelcome))

	want := domain.NewOnboardingState(catalogNames)
	if diff := cmp.Diff(want, f.ob.Get()); diff != "" {
		t.Errorf("state after reset (-want +got):\n%s", diff)
	}
	assert.Nil(t, f.slot(t, OnboardingKey), "persisted slot should be erased")
}

func TestOnboardingStore_PersistRoundTripNeverRestoresStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ob.SetSchool(ctx, "Test U")
	require.NoError(t, f.ob.SetStep(ctx, domain.StepMajorCheck))

	f.reload(t)

	got := f.ob.Get()
	assert.Equal(t, "Test U", got.School)
	assert.Equal(t, domain.StepWelcome, got.Step)
	assert.Equal(t, domain.KnowsMajorUnknown, got.KnowsMajor)
	assert.Nil(t, got.SelectedMajor)
}

func TestOnboardingStore_PersistsMajorOnlyWhenKnown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ob.SetSchool(ctx, "Test U")
	f.ob.SetKnowsMajor(ctx, domain.KnowsMajorNo)
	f.ob.SetSelectedMajor(ctx, "Nursing")

	var p onboardingPayload
	require.NoError(t, json.Unmarshal(f.slot(t, OnboardingKey).Payload, &p))
	assert.Nil(t, p.SelectedMajor)

	f.ob.SetKnowsMajor(ctx, domain.KnowsMajorYes)
	assert.Nil(t, f.ob.Get().SelectedMajor, "changing the answer drops the selection")
	f.ob.SetSelectedMajor(ctx, "Nursing")
	slot := f.slot(t, OnboardingKey)
	assert.Equal(t, OnboardingVersion, slot.Version)
	require.NoError(t, json.Unmarshal(slot.Payload, &p))
	require.NotNil(t, p.SelectedMajor)
	assert.Equal(t, "Nursing", *p.SelectedMajor)

	f.reload(t)
	assert.Equal(t, "Nursing", f.ob.Get().SelectedMajorName())
	assert.Equal(t, domain.KnowsMajorYes, f.ob.Get().KnowsMajor)
}

func TestOnboardingStore_MigratesVersionZeroSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, repository.NewSQLiteSlotRepo(f.db).Put(ctx, &domain.Slot{
		Key:     OnboardingKey,
		Version: 0,
		Payload: []byte(`{"school_name":"Legacy College"}`),
	}))

	f.reload(t)
	assert.Equal(t, "Legacy College", f.ob.Get().School)
}

func TestOnboardingStore_UnreadableSlotIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, repository.NewSQLiteSlotRepo(f.db).Put(ctx, &domain.Slot{
		Key: OnboardingKey, Version: 7, Payload: []byte(`{}`),
	}))

	f.reload(t)
	assert.Empty(t, f.ob.Get().School)
}

func TestOnboardingStore_FetchSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.rec.majors = []string{"A", "B", "C"}
	f.ob.SetSchool(ctx, "Test U")
	require.NoError(t, f.ob.ToggleInterest("Robotics"))

	require.NoError(t, f.ob.FetchSuggestedMajors(ctx))

	got := f.ob.Get()
	assert.Equal(t, []string{"A", "B", "C"}, got.SuggestedMajors)
	assert.False(t, got.IsLoading)
	assert.Nil(t, got.Error)
	assert.Equal(t, [][]string{{"Robotics"}}, f.rec.calls)
	assert.Equal(t, []string{"Test U"}, f.rec.schools)
}

func TestOnboardingStore_FetchFailureSetsError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ob.SetSuggestedMajors([]string{"Old"})
	f.rec.err = advising.ErrEmptyResult

	err := f.ob.FetchSuggestedMajors(ctx)

	assert.ErrorIs(t, err, advising.ErrEmptyResult)
	got := f.ob.Get()
	assert.Equal(t, "No matching majors found", got.ErrorMessage())
	assert.Equal(t, []string{}, got.SuggestedMajors)
	assert.False(t, got.IsLoading)
}

func TestOnboardingStore_LoadingWhileInFlight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.rec.majors = []string{"A"}
	f.rec.gate = make(chan struct{})
	f.rec.entered = make(chan struct{})
	f.ob.SetError("previous")

	done := make(chan error, 1)
	go func() { done <- f.ob.FetchSuggestedMajors(ctx) }()
	<-f.rec.entered

	mid := f.ob.Get()
	assert.True(t, mid.IsLoading)
	assert.Nil(t, mid.Error)

	close(f.rec.gate)
	require.NoError(t, <-done)
	assert.False(t, f.ob.Get().IsLoading)
}

func TestOnboardingStore_ResetDiscardsInFlightResult(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.rec.majors = []string{"A"}
	f.rec.gate = make(chan struct{})
	f.rec.entered = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- f.ob.FetchSuggestedMajors(ctx) }()
	<-f.rec.entered

	f.ob.Reset(ctx)
	assert.False(t, f.ob.Get().IsLoading)

	close(f.rec.gate)
	assert.ErrorIs(t, <-done, ErrSuperseded)

	got := f.ob.Get()
	assert.Empty(t, got.SuggestedMajors)
	assert.False(t, got.IsLoading)
}

func TestDashboardStore_Defaults(t *testing.T) {
	f := newFixture(t)

	want := domain.DashboardState{
		ActiveYear:    domain.YearFreshman,
		Greeting:      "Good morning",
		SelectedMajor: domain.DefaultMajor,
	}
	if diff := cmp.Diff(want, f.dash.Get()); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}
}

func TestDashboardStore_PersistsFullSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.dash.SetActiveYear(ctx, domain.YearJunior)
	f.dash.SetFunFact(ctx, "I juggle")
	f.dash.SetGreeting(ctx, "Ada")
	f.dash.SetSelectedMajor(ctx, "Nursing")

	f.reload(t)

	want := domain.DashboardState{
		ActiveYear:    domain.YearJunior,
		Greeting:      "Good morning, Ada",
		FunFact:       "I juggle",
		SelectedMajor: "Nursing",
	}
	if diff := cmp.Diff(want, f.dash.Get()); diff != "" {
		t.Errorf("rehydrated (-want +got):\n%s", diff)
	}
	assert.Equal(t, DashboardVersion, f.slot(t, DashboardKey).Version)
}

func TestDashboardStore_BadActiveYearFallsBack(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, repository.NewSQLiteSlotRepo(f.db).Put(context.Background(), &domain.Slot{
		Key:     DashboardKey,
		Payload: []byte(`{"activeYear":"Graduate","greeting":"Hi","funFact":"","selectedMajor":"Music"}`),
	}))

	f.reload(t)
	got := f.dash.Get()
	assert.Equal(t, domain.YearFreshman, got.ActiveYear)
	assert.Equal(t, "Music", got.SelectedMajor)
}

func TestDashboardStore_SaveProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.False(t, f.dash.SaveProfile(ctx, "", "ignored"))
	assert.Empty(t, f.dash.Get().FunFact)

	assert.True(t, f.dash.SaveProfile(ctx, "Grace", "I like compilers"))
	got := f.dash.Get()
	assert.Equal(t, "Good morning, Grace", got.Greeting)
	assert.Equal(t, "I like compilers", got.FunFact)
}

func TestConfirmMajor_UpdatesBothStoresAndSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ob.SetKnowsMajor(ctx, domain.KnowsMajorYes)

	ConfirmMajor(ctx, f.ob, f.dash, "Computer Science")

	assert.Equal(t, "Computer Science", f.ob.Get().SelectedMajorName())
	assert.Equal(t, "Computer Science", f.dash.Get().SelectedMajor)

	f.reload(t)
	assert.Equal(t, "Computer Science", f.ob.Get().SelectedMajorName())
	assert.Equal(t, "Computer Science", f.dash.Get().SelectedMajor)
}

func TestConfirmMajor_NoReaderSeesHalfApplied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stop := make(chan struct{})
	var torn bool
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			// Same lock order as ConfirmMajor.
			f.ob.mu.Lock()
			f.dash.mu.Lock()
			ob := f.ob.state.SelectedMajorName()
			dash := f.dash.state.SelectedMajor
			f.dash.mu.Unlock()
			f.ob.mu.Unlock()
			if ob != "" && ob != dash {
				torn = true
			}
		}
	}()

	for _, m := range []string{"Biology", "Nursing", "Computer Science"} {
		ConfirmMajor(ctx, f.ob, f.dash, m)
	}
	close(stop)
	wg.Wait()
	assert.False(t, torn)
}

func TestConfirmMajor_TransactionFailureKeepsMemoryState(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: assert.AnError}
	p := NewPersistenceWith(repository.NewSQLiteSlotRepo(database), uow, zap.NewNop())
	ob := NewOnboardingStore(ctx, catalogNames, &stubRecommender{}, p, zap.NewNop())
	dash := NewDashboardStore(ctx, p, testutil.FixedClock(15), zap.NewNop())

	ConfirmMajor(ctx, ob, dash, "Nursing")

	assert.Equal(t, "Nursing", ob.Get().SelectedMajorName())
	assert.Equal(t, "Nursing", dash.Get().SelectedMajor)

	keys, err := repository.NewSQLiteSlotRepo(database).ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys, "neither slot should be written when the transaction fails")
}

func TestPersistenceFaultsAreSwallowed(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	p := NewPersistence(database, zap.NewNop())
	ctx := context.Background()
	ob := NewOnboardingStore(ctx, catalogNames, &stubRecommender{}, p, zap.NewNop())
	dash := NewDashboardStore(ctx, p, testutil.FixedClock(20), zap.NewNop())

	require.NoError(t, database.Close())

	ob.SetSchool(ctx, "Test U")
	dash.SetFunFact(ctx, "still works")
	ob.Reset(ctx)
	SignOut(ctx, ob, dash)

	assert.Empty(t, ob.Get().School)
	assert.Equal(t, "Good evening", dash.Get().Greeting)
}

func TestOnboardingStore_SetSchoolTrimsWhitespace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ob.SetSchool(ctx, "  Test U \t")
	assert.Equal(t, "Test U", f.ob.Get().School)

	f.ob.SetSchool(ctx, "   ")
	assert.Empty(t, f.ob.Get().School)
}

func TestConfirmMajor_SeparatePersistenceWritesEachSlot(t *testing.T) {
	ctx := context.Background()
	obDB := testutil.NewTestDB(t)
	dashDB := testutil.NewTestDB(t)
	ob := NewOnboardingStore(ctx, catalogNames, &stubRecommender{}, NewPersistence(obDB, zap.NewNop()), zap.NewNop())
	dash := NewDashboardStore(ctx, NewPersistence(dashDB, zap.NewNop()), testutil.FixedClock(9), zap.NewNop())
	ob.SetKnowsMajor(ctx, domain.KnowsMajorYes)

	ConfirmMajor(ctx, ob, dash, "Nursing")

	obKeys, err := repository.NewSQLiteSlotRepo(obDB).ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{OnboardingKey}, obKeys)

	dashSlot, err := repository.NewSQLiteSlotRepo(dashDB).Get(ctx, DashboardKey)
	require.NoError(t, err)
	var got domain.DashboardState
	require.NoError(t, json.Unmarshal(dashSlot.Payload, &got))
	assert.Equal(t, "Nursing", got.SelectedMajor)
}

func TestConfirmMajor_InMemoryOnboardingStillPersistsDashboard(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	ob := NewOnboardingStore(ctx, catalogNames, &stubRecommender{}, nil, zap.NewNop())
	dash := NewDashboardStore(ctx, NewPersistence(database, zap.NewNop()), testutil.FixedClock(9), zap.NewNop())

	ConfirmMajor(ctx, ob, dash, "Biology")

	reloaded := NewDashboardStore(ctx, NewPersistence(database, zap.NewNop()), testutil.FixedClock(9), zap.NewNop())
	assert.Equal(t, "Biology", reloaded.Get().SelectedMajor)
}

func TestNilPersistenceKeepsStateInMemory(t *testing.T) {
	ctx := context.Background()
	ob := NewOnboardingStore(ctx, catalogNames, &stubRecommender{}, nil, zap.NewNop())
	dash := NewDashboardStore(ctx, nil, testutil.FixedClock(13), zap.NewNop())

	ob.SetSchool(ctx, "Test U")
	ConfirmMajor(ctx, ob, dash, "Biology")

	assert.Equal(t, "Test U", ob.Get().School)
	assert.Equal(t, "Biology", dash.Get().SelectedMajor)
	assert.Equal(t, "Good afternoon", dash.Get().Greeting)
}

func TestSignOut_ClearsSlotsAndResetsGreeting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ob.SetSchool(ctx, "Test U")
	f.dash.SaveProfile(ctx, "Ada", "I juggle")
	f.dash.SetActiveYear(ctx, domain.YearSenior)
	require.NoError(t, f.ob.SetStep(ctx, domain.StepMajorCheck))

	SignOut(ctx, f.ob, f.dash)

	assert.Equal(t, domain.NewOnboardingState(catalogNames), f.ob.Get())
	got := f.dash.Get()
	assert.Equal(t, "Good morning", got.Greeting)
	assert.Empty(t, got.FunFact)
	assert.Equal(t, domain.YearSenior, got.ActiveYear)

	assert.Nil(t, f.slot(t, OnboardingKey))
	var persisted domain.DashboardState
	require.NoError(t, json.Unmarshal(f.slot(t, DashboardKey).Payload, &persisted))
	assert.Empty(t, persisted.FunFact)
	assert.Equal(t, "Good morning", persisted.Greeting)
}
