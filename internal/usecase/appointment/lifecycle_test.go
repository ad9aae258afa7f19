package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meditrack/meditrack/internal/availability"
	"github.com/meditrack/meditrack/internal/billing"
	domain "github.com/meditrack/meditrack/internal/domain/appointment"
	"github.com/meditrack/meditrack/internal/dto"
	"github.com/meditrack/meditrack/internal/httperr"
	"github.com/meditrack/meditrack/internal/models"
	"github.com/meditrack/meditrack/internal/notify"
	"github.com/meditrack/meditrack/internal/payment"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	mu           sync.Mutex
	doctors      map[uint]models.Doctor
	patients     map[uint]models.Patient
	appointments map[uint]models.Appointment
	summaries    []models.BillSummary
	nextID       uint

	failSave error // injected SaveConfirmation failure
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		doctors:      make(map[uint]models.Doctor),
		patients:     make(map[uint]models.Patient),
		appointments: make(map[uint]models.Appointment),
	}
}

func (r *fakeRepo) GetDoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.doctors[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeDoctorNotFound, "Doctor not found.")
	}
	return &doc, nil
}

func (r *fakeRepo) GetPatientByID(ctx context.Context, id uint) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pat, ok := r.patients[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodePatientNotFound, "Patient not found.")
	}
	return &pat, nil
}

func (r *fakeRepo) CreateDoctor(ctx context.Context, doc *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[doc.ID] = *doc
	return nil
}

func (r *fakeRepo) CreatePatient(ctx context.Context, pat *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[pat.ID] = *pat
	return nil
}

func (r *fakeRepo) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Doctor
	for _, d := range r.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeRepo) ListDoctorsBySpecialty(ctx context.Context, s models.Specialty) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Doctor
	for _, d := range r.doctors {
		if d.Specialty == s {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListDoctorAppointmentCounts(ctx context.Context) ([]dto.DoctorAppointmentCount, error) {
	return nil, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ap.ID = r.nextID
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) AssertNoSlotConflict(
	ctx context.Context,
	doctorID uint,
	date time.Time,
	start time.Time,
	end time.Time,
) error {
	existing, _ := r.ListDayAppointments(ctx, doctorID, date)
	if availability.HasConflict(existing, start, end) {
		return httperr.ErrBusiness(httperr.CodeSlotConflict, "Time slot is not available.")
	}
	return nil
}

func (r *fakeRepo) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound, "Appointment not found.")
	}
	ap.Doctor = r.doctors[ap.DoctorID]
	ap.Patient = r.patients[ap.PatientID]
	return &ap, nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[ap.ID]; !ok {
		return errors.New("update of unknown appointment")
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) ListDayAppointments(ctx context.Context, doctorID uint, date time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && ap.Date.Equal(date) && ap.Status != string(domain.StatusCancelled) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) SaveConfirmation(ctx context.Context, ap *models.Appointment, summary *models.BillSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave != nil {
		return r.failSave
	}
	if _, ok := r.appointments[ap.ID]; !ok {
		return errors.New("update of unknown appointment")
	}
	r.appointments[ap.ID] = *ap
	r.summaries = append(r.summaries, *summary)
	return nil
}

func (r *fakeRepo) GetBillSummaryByAppointment(ctx context.Context, appointmentID uint) (*models.BillSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.summaries) - 1; i >= 0; i-- {
		if r.summaries[i].AppointmentID == appointmentID {
			s := r.summaries[i]
			return &s, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeBillNotFound, "No bill recorded.")
}

func (r *fakeRepo) storedAppointment(t *testing.T, id uint) models.Appointment {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	require.True(t, ok, "appointment %d not stored", id)
	return ap
}

var _ domain.Repository = (*fakeRepo)(nil)

// recorder captures deliveries in order.
type recorder struct {
	events     []notify.Event
	broadcasts []string
}

func (r *recorder) AppointmentChanged(ev notify.Event) error {
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Broadcast(message string) error {
	r.broadcasts = append(r.broadcasts, message)
	return nil
}

type fakeStrategy struct {
	mu    sync.Mutex
	fail  bool
	calls int

	entered chan struct{} // signalled per call when set
	release chan struct{} // blocks the call until closed when set
}

func (s *fakeStrategy) Process(ctx context.Context, amount float64) error {
	s.mu.Lock()
	s.calls++
	fail := s.fail
	entered, release := s.entered, s.release
	s.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if fail {
		return errors.New("gateway declined")
	}
	return nil
}

func (s *fakeStrategy) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// ======================================================
// FIXTURE
// ======================================================

type fixture struct {
	repo       *fakeRepo
	locks      *LockTable
	dispatcher *notify.Dispatcher
	recorder   *recorder
	strategy   *fakeStrategy
	settler    *payment.Registry

	book     *BookAppointment
	confirm  *ConfirmAppointment
	complete *CompleteConsultation
	cancel   *CancelAppointment
	get      *GetAppointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()

	repo := newFakeRepo()
	repo.doctors[1] = models.Doctor{
		Person:          models.Person{ID: 1},
		Name:            "Dr. Mehta",
		Specialty:       models.SpecialtyCardiologist,
		ConsultationFee: 800,
		IsAvailable:     true,
	}
	repo.patients[1] = models.Patient{
		Person: models.Person{ID: 1},
		Name:   "Asha",
		Age:    34,
	}

	rec := &recorder{}
	dispatcher := notify.NewDispatcher(logger)
	dispatcher.Register(rec)

	strategy := &fakeStrategy{}
	settler := payment.NewRegistry(logger)
	settler.Register("card", strategy)

	locks := NewLockTable()

	return &fixture{
		repo:       repo,
		locks:      locks,
		dispatcher: dispatcher,
		recorder:   rec,
		strategy:   strategy,
		settler:    settler,
		book:       NewBookAppointment(repo, locks, dispatcher, logger),
		confirm:    NewConfirmAppointment(repo, settler, locks, dispatcher, logger),
		complete:   NewCompleteConsultation(repo, locks, dispatcher, logger),
		cancel:     NewCancelAppointment(repo, locks, dispatcher, logger),
		get:        NewGetAppointment(repo),
	}
}

// drain waits for all queued notifications to be delivered.
func (f *fixture) drain() {
	f.dispatcher.Close()
}

func bookInput() BookInput {
	return BookInput{
		DoctorID:  1,
		PatientID: 1,
		Date:      "2024-06-01",
		Start:     "10:00",
		End:       "10:30",
		Symptoms:  "chest pain",
	}
}

// ======================================================
// BOOK
// ======================================================

func TestBook_CreatesPaymentPendingAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPaymentPending), ap.Status)
	assert.InDelta(t, 800, ap.PaymentAmount, 1e-9)
	assert.Equal(t, "chest pain", ap.PatientSymptoms)
	require.NotNil(t, ap.StartTime)
	require.NotNil(t, ap.EndTime)

	f.drain()
	require.Len(t, f.recorder.events, 1)
	ev := f.recorder.events[0]
	assert.Equal(t, ap.ID, ev.AppointmentID)
	assert.Equal(t, "Dr. Mehta", ev.DoctorName)
	assert.Equal(t, "Asha", ev.PatientName)
	assert.Equal(t, string(domain.StatusPaymentPending), ev.Status)
	assert.Equal(t, "10:00", ev.Start)
}

func TestBook_UnknownDoctor(t *testing.T) {
	f := newFixture(t)

	in := bookInput()
	in.DoctorID = 99

	_, err := f.book.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeDoctorNotFound))

	f.drain()
	assert.Empty(t, f.recorder.events)
}

func TestBook_UnknownPatient(t *testing.T) {
	f := newFixture(t)

	in := bookInput()
	in.PatientID = 99

	_, err := f.book.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodePatientNotFound))
}

func TestBook_InvalidInterval(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		start, end string
	}{
		{"inverted", "11:00", "10:00"},
		{"zero length", "10:00", "10:00"},
		{"garbage time", "not-a-time", "10:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := bookInput()
			in.Start = tt.start
			in.End = tt.end

			_, err := f.book.Execute(context.Background(), in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInterval))
		})
	}
}

func TestBook_OverlapConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	overlapping := bookInput()
	overlapping.Start = "10:15"
	overlapping.End = "10:45"

	_, err = f.book.Execute(ctx, overlapping)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
}

func TestBook_TouchingBoundariesDoNotConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	adjacent := bookInput()
	adjacent.Start = "10:30"
	adjacent.End = "11:00"

	_, err = f.book.Execute(ctx, adjacent)
	assert.NoError(t, err)
}

func TestBook_ConcurrentOverlap_ExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 2
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.book.Execute(ctx, bookInput())
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsBusiness(err, httperr.CodeSlotConflict):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflict)
}

// ======================================================
// CONFIRM
// ======================================================

func TestConfirm_SchedulesAndSnapshotsBill(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	confirmed, err := f.confirm.Execute(ctx, ap.ID, ConfirmInput{
		PaymentMethod: "card",
		Amount:        800,
		BillType:      billing.CategoryFollowUp,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusScheduled), confirmed.Status)
	// base 800, tax 10%, flat discount 100
	assert.InDelta(t, 780, confirmed.PaymentAmount, 1e-9)
	assert.Equal(t, 1, f.strategy.callCount())

	summary, err := f.repo.GetBillSummaryByAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Mehta", summary.DoctorName)
	assert.Equal(t, "Asha", summary.PatientName)
	assert.Equal(t, string(billing.CategoryFollowUp), summary.BillType)
	assert.InDelta(t, 800, summary.BaseAmount, 1e-9)
	assert.InDelta(t, 80, summary.TaxAmount, 1e-9)
	assert.InDelta(t, 780, summary.FinalAmount, 1e-9)
	assert.NotEmpty(t, summary.Reference)

	f.drain()
	require.Len(t, f.recorder.events, 2)
	assert.Equal(t, string(domain.StatusScheduled), f.recorder.events[1].Status)
}

func TestConfirm_LaterFeeChangeDoesNotReprice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	// fee raised after booking; the recorded 800 still prices the bill
	doc := f.repo.doctors[1]
	doc.ConsultationFee = 1200
	f.repo.doctors[1] = doc

	confirmed, err := f.confirm.Execute(ctx, ap.ID, ConfirmInput{
		PaymentMethod: "card",
		Amount:        800,
		BillType:      billing.CategoryConsultation,
	})
	require.NoError(t, err)
	assert.InDelta(t, 944, confirmed.PaymentAmount, 1e-9) // 800 * 1.18
}

func TestConfirm_InsufficientPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	_, err = f.confirm.Execute(ctx, ap.ID, ConfirmInput{
		PaymentMethod: "card",
		Amount:        700,
		BillType:      billing.CategoryConsultation,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInsufficientPayment))

	stored := f.repo.storedAppointment(t, ap.ID)
	assert.Equal(t, string(domain.StatusPaymentPending), stored.Status)
	assert.Equal(t, 0, f.strategy.callCount(), "gateway must not be called")
}

func TestConfirm_SettlementFailureLeavesPriorState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)
	f.strategy.fail = true

	_, err = f.confirm.Execute(ctx, ap.ID, ConfirmInput{
		PaymentMethod: "card",
		Amount:        800,
		BillType:      billing.CategoryConsultation,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodePaymentFailed))

	stored := f.repo.storedAppointment(t, ap.ID)
	assert.Equal(t, string(domain.StatusPaymentPending), stored.Status)

	_, err = f.repo.GetBillSummaryByAppointment(ctx, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBillNotFound), "no summary may be written")

	f.drain()
	assert.Len(t, f.recorder.events, 1, "only the booking event")
}

func TestConfirm_UnknownPaymentMethod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	_, err = f.confirm.Execute(ctx, ap.ID, ConfirmInput{
		PaymentMethod: "cheque",
		Amount:        800,
		BillType:      billing.CategoryConsultation,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidPaymentType))
}

func TestConfirm_Twice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	in := ConfirmInput{PaymentMethod: "card", Amount: 800, BillType: billing.CategoryConsultation}
	_, err = f.confirm.Execute(ctx, ap.ID, in)
	require.NoError(t, err)

	_, err = f.confirm.Execute(ctx, ap.ID, in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestConfirm_ConcurrentDoubleConfirm_ChargesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	// Hold the first caller inside the gateway so the second caller has
	// passed its own entry point before any state is persisted.
	f.strategy.entered = make(chan struct{}, 2)
	f.strategy.release = make(chan struct{})

	in := ConfirmInput{PaymentMethod: "card", Amount: 800, BillType: billing.CategoryConsultation}
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.confirm.Execute(ctx, ap.ID, in)
		}(i)
	}

	// One caller is settling under the doctor lock; give the other time
	// to park at that lock, then let the gateway answer.
	<-f.strategy.entered
	time.Sleep(50 * time.Millisecond)
	close(f.strategy.release)
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsBusiness(err, httperr.CodeInvalidTransition):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 1, f.strategy.callCount(), "patient charged exactly once")

	f.repo.mu.Lock()
	summaries := len(f.repo.summaries)
	f.repo.mu.Unlock()
	assert.Equal(t, 1, summaries, "exactly one summary for one confirmation")

	stored := f.repo.storedAppointment(t, ap.ID)
	assert.Equal(t, string(domain.StatusScheduled), stored.Status)
}

func TestCompleteAndCancel_ConcurrentExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)
	confirmBooked(t, f, ap.ID)

	var completeErr, cancelErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, completeErr = f.complete.Execute(ctx, ap.ID, "all good")
	}()
	go func() {
		defer wg.Done()
		_, cancelErr = f.cancel.Execute(ctx, ap.ID, "changed plans")
	}()
	wg.Wait()

	stored := f.repo.storedAppointment(t, ap.ID)
	switch {
	case completeErr == nil:
		assert.True(t, httperr.IsBusiness(cancelErr, httperr.CodeInvalidTransition))
		assert.Equal(t, string(domain.StatusCompleted), stored.Status)
	case cancelErr == nil:
		assert.True(t, httperr.IsBusiness(completeErr, httperr.CodeInvalidTransition))
		assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	default:
		t.Fatalf("both transitions failed: complete=%v cancel=%v", completeErr, cancelErr)
	}
}

func TestConfirm_PersistFailureLeavesNoSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)
	f.repo.failSave = errors.New("storage down")

	_, err = f.confirm.Execute(ctx, ap.ID, ConfirmInput{
		PaymentMethod: "card",
		Amount:        800,
		BillType:      billing.CategoryConsultation,
	})
	require.Error(t, err)

	stored := f.repo.storedAppointment(t, ap.ID)
	assert.Equal(t, string(domain.StatusPaymentPending), stored.Status)

	f.repo.failSave = nil
	_, err = f.repo.GetBillSummaryByAppointment(ctx, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBillNotFound), "no orphan summary")

	f.drain()
	assert.Len(t, f.recorder.events, 1, "only the booking event")
}

func TestConfirm_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.confirm.Execute(context.Background(), 42, ConfirmInput{
		PaymentMethod: "card",
		Amount:        800,
		BillType:      billing.CategoryConsultation,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

// ======================================================
// COMPLETE
// ======================================================

func confirmBooked(t *testing.T, f *fixture, apID uint) {
	t.Helper()
	_, err := f.confirm.Execute(context.Background(), apID, ConfirmInput{
		PaymentMethod: "card",
		Amount:        800,
		BillType:      billing.CategoryConsultation,
	})
	require.NoError(t, err)
}

func TestComplete_StoresObservationsAndBroadcasts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)
	confirmBooked(t, f, ap.ID)

	done, err := f.complete.Execute(ctx, ap.ID, "follow up in two weeks")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), done.Status)
	assert.Equal(t, "follow up in two weeks", done.DocObservations)

	f.drain()
	require.Len(t, f.recorder.broadcasts, 2)
	assert.Contains(t, f.recorder.broadcasts[0], "Dr. Mehta has completed the consultation")
	assert.Contains(t, f.recorder.broadcasts[1], "available for new appointments from 10:30")
}

func TestComplete_BeforeConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	_, err = f.complete.Execute(ctx, ap.ID, "note")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

// ======================================================
// CANCEL
// ======================================================

func TestCancel_ReleasesSlotForRebooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)
	confirmBooked(t, f, ap.ID)

	cancelled, err := f.cancel.Execute(ctx, ap.ID, "patient request")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.Nil(t, cancelled.StartTime)
	assert.Nil(t, cancelled.EndTime)
	assert.Equal(t, "patient request", cancelled.CancellationReason)

	// the identical interval is bookable again
	rebooked, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)
	assert.NotEqual(t, ap.ID, rebooked.ID)
}

func TestCancel_BroadcastCarriesReleasedWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	_, err = f.cancel.Execute(ctx, ap.ID, "clinic closed")
	require.NoError(t, err)

	f.drain()

	// the snapshot is taken before the window is cleared
	require.Len(t, f.recorder.events, 2)
	ev := f.recorder.events[1]
	assert.Equal(t, string(domain.StatusCancelled), ev.Status)
	assert.Equal(t, "10:00", ev.Start)
	assert.Equal(t, "10:30", ev.End)

	require.Len(t, f.recorder.broadcasts, 1)
	assert.Contains(t, f.recorder.broadcasts[0], "between 10:00 and 10:30")
}

func TestCancel_CompletedFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)
	confirmBooked(t, f, ap.ID)

	_, err = f.complete.Execute(ctx, ap.ID, "all done")
	require.NoError(t, err)

	_, err = f.cancel.Execute(ctx, ap.ID, "changed my mind")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	stored := f.repo.storedAppointment(t, ap.ID)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
}

// ======================================================
// GET
// ======================================================

func TestGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.get.Execute(ctx, 42)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)

	got, err := f.get.Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.ID, got.ID)
	assert.Equal(t, "Dr. Mehta", got.Doctor.Name)
}

// ======================================================
// END TO END
// ======================================================

func TestLifecycle_EndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book.Execute(ctx, bookInput())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPaymentPending), ap.Status)

	confirmed, err := f.confirm.Execute(ctx, ap.ID, ConfirmInput{
		PaymentMethod: "card",
		Amount:        900,
		BillType:      billing.CategoryConsultation,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), confirmed.Status)

	_, err = f.repo.GetBillSummaryByAppointment(ctx, ap.ID)
	require.NoError(t, err)

	done, err := f.complete.Execute(ctx, ap.ID, "healthy")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), done.Status)
	assert.Equal(t, "healthy", done.DocObservations)

	f.drain()
	assert.Len(t, f.recorder.events, 3)
	assert.Len(t, f.recorder.broadcasts, 2)
}
