package service

import (
	"sync"
	"time"

	"github.com/hackdesk/hackdesk/internal/model"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the semantics the gorm
// implementations rely on (not-found sentinels, upsert keys, winner locking)
// closely enough for service-level tests.

type fakeEventRepo struct {
	nextID   uint
	events   map[uint]*model.Event
	regCount map[uint]int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[uint]*model.Event{}, regCount: map[uint]int64{}}
}

func (r *fakeEventRepo) Create(event *model.Event) error {
	r.nextID++
	event.ID = r.nextID
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) Save(event *model.Event) error {
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) FindByID(id uint) (*model.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *event
	return &cp, nil
}

func (r *fakeEventRepo) FindPublished() ([]model.Event, error) {
	var out []model.Event
	for _, event := range r.events {
		if event.IsPublished {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) CountRegistrations(eventID uint) (int64, error) {
	return r.regCount[eventID], nil
}

type fakeRegistrationRepo struct {
	nextID uint
	regs   map[uint]*model.Registration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{regs: map[uint]*model.Registration{}}
}

func (r *fakeRegistrationRepo) Create(reg *model.Registration) error {
	r.nextID++
	reg.ID = r.nextID
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = time.Now()
	}
	if reg.ScreeningStatus == "" {
		reg.ScreeningStatus = model.ScreeningPending
	}
	if reg.PresentationStatus == "" {
		reg.PresentationStatus = model.PresentationPending
	}
	if reg.QualificationStatus == "" {
		reg.QualificationStatus = model.QualificationPending
	}
	cp := *reg
	r.regs[reg.ID] = &cp
	return nil
}

func (r *fakeRegistrationRepo) Save(reg *model.Registration) error {
	if _, ok := r.regs[reg.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *reg
	r.regs[reg.ID] = &cp
	return nil
}

func (r *fakeRegistrationRepo) FindByID(id uint) (*model.Registration, error) {
	reg, ok := r.regs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *reg
	return &cp, nil
}

func (r *fakeRegistrationRepo) FindByUserAndEvent(userID, eventID uint) (*model.Registration, error) {
	for _, reg := range r.regs {
		if reg.UserID == userID && reg.EventID == eventID {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRegistrationRepo) FindByUser(userID uint) ([]model.Registration, error) {
	var out []model.Registration
	for _, reg := range r.regs {
		if reg.UserID == userID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) FindByEvent(eventID uint) ([]model.Registration, error) {
	var out []model.Registration
	for _, reg := range r.regs {
		if reg.EventID == eventID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) FindByIDs(ids []uint) ([]model.Registration, error) {
	var out []model.Registration
	for _, id := range ids {
		if reg, ok := r.regs[id]; ok {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) MarkScreeningSent(eventID uint, ids []uint, testID uint) (int64, error) {
	var count int64
	for _, id := range ids {
		reg, ok := r.regs[id]
		if !ok || reg.EventID != eventID {
			continue
		}
		tid := testID
		reg.ScreeningStatus = model.ScreeningSent
		reg.ScreeningTestID = &tid
		count++
	}
	return count, nil
}

func (r *fakeRegistrationRepo) SkipScreening(ids []uint) (int64, error) {
	var count int64
	for _, id := range ids {
		reg, ok := r.regs[id]
		if !ok {
			continue
		}
		reg.ScreeningStatus = model.ScreeningSkipped
		reg.PresentationStatus = model.PresentationPending
		count++
	}
	return count, nil
}

func (r *fakeRegistrationRepo) SetAttendance(ids []uint, attended bool) (int64, error) {
	var count int64
	for _, id := range ids {
		if reg, ok := r.regs[id]; ok {
			reg.Attended = attended
			count++
		}
	}
	return count, nil
}

func (r *fakeRegistrationRepo) FindAwardedByEvent(eventID uint) ([]model.Registration, error) {
	var out []model.Registration
	for _, reg := range r.regs {
		if reg.EventID == eventID && reg.AwardType != nil {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) AssignAwardExclusive(reg *model.Registration, awardType string, adminID uint, at time.Time) (*model.Registration, error) {
	if awardType == model.AwardWinner {
		for _, other := range r.regs {
			if other.EventID == reg.EventID && other.ID != reg.ID &&
				other.AwardType != nil && *other.AwardType == model.AwardWinner {
				cp := *other
				return &cp, nil
			}
		}
	}
	stored, ok := r.regs[reg.ID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	award := awardType
	admin := adminID
	assignedAt := at
	stored.AwardType = &award
	stored.AwardAssignedAt = &assignedAt
	stored.AwardAssignedBy = &admin
	return nil, nil
}

func (r *fakeRegistrationRepo) ClearAward(id uint) error {
	reg, ok := r.regs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	reg.AwardType = nil
	reg.AwardAssignedAt = nil
	reg.AwardAssignedBy = nil
	return nil
}

type fakeScreeningTestRepo struct {
	nextID uint
	tests  map[uint]*model.ScreeningTest
}

func newFakeScreeningTestRepo() *fakeScreeningTestRepo {
	return &fakeScreeningTestRepo{tests: map[uint]*model.ScreeningTest{}}
}

func (r *fakeScreeningTestRepo) Create(test *model.ScreeningTest) error {
	r.nextID++
	test.ID = r.nextID
	cp := *test
	r.tests[test.ID] = &cp
	return nil
}

func (r *fakeScreeningTestRepo) Save(test *model.ScreeningTest) error {
	if _, ok := r.tests[test.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *test
	r.tests[test.ID] = &cp
	return nil
}

func (r *fakeScreeningTestRepo) FindByID(id uint) (*model.ScreeningTest, error) {
	test, ok := r.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *test
	return &cp, nil
}

func (r *fakeScreeningTestRepo) FindActiveByEvent(eventID uint) (*model.ScreeningTest, error) {
	for _, test := range r.tests {
		if test.EventID == eventID && test.IsActive {
			cp := *test
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAttemptRepo struct {
	nextID   uint
	attempts map[uint]*model.TestAttempt
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{attempts: map[uint]*model.TestAttempt{}}
}

func (r *fakeAttemptRepo) Create(attempt *model.TestAttempt) error {
	r.nextID++
	attempt.ID = r.nextID
	cp := *attempt
	r.attempts[attempt.ID] = &cp
	return nil
}

func (r *fakeAttemptRepo) Upsert(attempt *model.TestAttempt) error {
	for _, existing := range r.attempts {
		if existing.UserID == attempt.UserID && existing.TestID == attempt.TestID {
			attempt.ID = existing.ID
			cp := *attempt
			r.attempts[existing.ID] = &cp
			return nil
		}
	}
	return r.Create(attempt)
}

func (r *fakeAttemptRepo) FindByUserAndTest(userID, testID uint) (*model.TestAttempt, error) {
	for _, attempt := range r.attempts {
		if attempt.UserID == userID && attempt.TestID == testID {
			cp := *attempt
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAttemptRepo) FindByID(id uint) (*model.TestAttempt, error) {
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *attempt
	return &cp, nil
}

type trackingRecord struct {
	screeningSentAt         *time.Time
	screeningSubmittedAt    *time.Time
	presentationSubmittedAt *time.Time
}

// fakeTrackingRepo must be safe for concurrent use: the send-batch mirror
// writes fan out one goroutine per pair.
type fakeTrackingRepo struct {
	mu      sync.Mutex
	records map[[2]uint]*trackingRecord
	failAll bool
}

func newFakeTrackingRepo() *fakeTrackingRepo {
	return &fakeTrackingRepo{records: map[[2]uint]*trackingRecord{}}
}

func (r *fakeTrackingRepo) get(userID, eventID uint) *trackingRecord {
	key := [2]uint{userID, eventID}
	if _, ok := r.records[key]; !ok {
		r.records[key] = &trackingRecord{}
	}
	return r.records[key]
}

func (r *fakeTrackingRepo) TouchScreeningSent(userID, eventID uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return gorm.ErrInvalidDB
	}
	r.get(userID, eventID).screeningSentAt = &at
	return nil
}

func (r *fakeTrackingRepo) TouchScreeningSubmitted(userID, eventID uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return gorm.ErrInvalidDB
	}
	r.get(userID, eventID).screeningSubmittedAt = &at
	return nil
}

func (r *fakeTrackingRepo) TouchPresentationSubmitted(userID, eventID uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return gorm.ErrInvalidDB
	}
	r.get(userID, eventID).presentationSubmittedAt = &at
	return nil
}

func (r *fakeTrackingRepo) FindByUserAndEvent(userID, eventID uint) (*model.WorkflowTracking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[[2]uint{userID, eventID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.WorkflowTracking{
		UserID:                  userID,
		EventID:                 eventID,
		ScreeningSentAt:         rec.screeningSentAt,
		ScreeningSubmittedAt:    rec.screeningSubmittedAt,
		PresentationSubmittedAt: rec.presentationSubmittedAt,
	}, nil
}

type fakePaymentOrderRepo struct {
	nextID uint
	orders map[string]*model.PaymentOrder
}

func newFakePaymentOrderRepo() *fakePaymentOrderRepo {
	return &fakePaymentOrderRepo{orders: map[string]*model.PaymentOrder{}}
}

func (r *fakePaymentOrderRepo) Create(order *model.PaymentOrder) error {
	r.nextID++
	order.ID = r.nextID
	cp := *order
	r.orders[order.OrderID] = &cp
	return nil
}

func (r *fakePaymentOrderRepo) Save(order *model.PaymentOrder) error {
	if _, ok := r.orders[order.OrderID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *order
	r.orders[order.OrderID] = &cp
	return nil
}

func (r *fakePaymentOrderRepo) FindByOrderID(orderID string) (*model.PaymentOrder, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *order
	return &cp, nil
}

func (r *fakePaymentOrderRepo) FindPendingByUserAndEvent(userID, eventID uint) (*model.PaymentOrder, error) {
	for _, order := range r.orders {
		if order.UserID == userID && order.EventID == eventID && order.Status == model.PaymentPending {
			cp := *order
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeProfileRepo struct {
	profiles map[uint]model.Profile
	err      error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uint]model.Profile{}}
}

func (r *fakeProfileRepo) FindByUserIDs(userIDs []uint) (map[uint]model.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := map[uint]model.Profile{}
	for _, id := range userIDs {
		if p, ok := r.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeGateway struct {
	calls  int
	lastID string
	err    error
}

func (g *fakeGateway) CreateTransaction(orderID string, amount int64, cust CustomerDetails) (string, string, error) {
	g.calls++
	g.lastID = orderID
	if g.err != nil {
		return "", "", g.err
	}
	return "token-" + orderID, "https://pay.example/" + orderID, nil
}
