package service

import (
	"context"
	"sort"
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/scheduling"
	"go.uber.org/zap"
)

// In-memory stores. Every getter hands out copies so services cannot mutate
// stored state without calling Create/Update.

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeTerms struct {
	nextID int64
	terms  map[int64]model.SchoolTerm
	locked int
}

func newFakeTerms() *fakeTerms {
	return &fakeTerms{terms: make(map[int64]model.SchoolTerm)}
}

func (f *fakeTerms) Create(_ context.Context, term *model.SchoolTerm) error {
	f.nextID++
	term.ID = f.nextID
	f.terms[term.ID] = *term
	return nil
}

func (f *fakeTerms) GetByID(_ context.Context, id int64) (*model.SchoolTerm, error) {
	t, ok := f.terms[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeTerms) List(_ context.Context) ([]*model.SchoolTerm, error) {
	var out []*model.SchoolTerm
	for _, t := range f.terms {
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (f *fakeTerms) Update(_ context.Context, term *model.SchoolTerm) error {
	f.terms[term.ID] = *term
	return nil
}

func (f *fakeTerms) Delete(_ context.Context, id int64) error {
	delete(f.terms, id)
	return nil
}

func (f *fakeTerms) LockAll(_ context.Context) error {
	f.locked++
	return nil
}

type fakeBookings struct {
	nextID   int64
	bookings map[int64]model.LessonBooking
	terms    *fakeTerms
	requests *fakeRequests
}

func (f *fakeBookings) load(b model.LessonBooking) *model.LessonBooking {
	if t, ok := f.terms.terms[b.TermID]; ok {
		b.Term = &t
	}
	if r, ok := f.requests.requests[b.LessonRequestID]; ok {
		b.StudentID = r.StudentID
	}
	b.Request = nil
	return &b
}

func (f *fakeBookings) Create(_ context.Context, booking *model.LessonBooking) error {
	f.nextID++
	booking.ID = f.nextID
	f.bookings[booking.ID] = *booking
	return nil
}

func (f *fakeBookings) Update(_ context.Context, booking *model.LessonBooking) error {
	f.bookings[booking.ID] = *booking
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*model.LessonBooking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	return f.load(b), nil
}

func (f *fakeBookings) GetByRequestID(_ context.Context, requestID int64) (*model.LessonBooking, error) {
	for _, b := range f.bookings {
		if b.LessonRequestID == requestID {
			return f.load(b), nil
		}
	}
	return nil, nil
}

func (f *fakeBookings) filter(keep func(b *model.LessonBooking) bool) []*model.LessonBooking {
	var out []*model.LessonBooking
	for _, b := range f.bookings {
		loaded := f.load(b)
		if keep(loaded) {
			out = append(out, loaded)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeBookings) GetByTeacherID(_ context.Context, teacherID int64) ([]*model.LessonBooking, error) {
	return f.filter(func(b *model.LessonBooking) bool { return b.TeacherID == teacherID }), nil
}

func (f *fakeBookings) GetByStudentIDs(_ context.Context, studentIDs []int64) ([]*model.LessonBooking, error) {
	return f.filter(func(b *model.LessonBooking) bool { return containsID(studentIDs, b.StudentID) }), nil
}

func (f *fakeBookings) GetAll(_ context.Context) ([]*model.LessonBooking, error) {
	return f.filter(func(*model.LessonBooking) bool { return true }), nil
}

func (f *fakeBookings) Delete(_ context.Context, id int64) error {
	delete(f.bookings, id)
	return nil
}

type fakeRequests struct {
	nextID   int64
	requests map[int64]model.LessonRequest
	bookings *fakeBookings
}

func (f *fakeRequests) load(r model.LessonRequest) *model.LessonRequest {
	r.BookingID = nil
	for _, b := range f.bookings.bookings {
		if b.LessonRequestID == r.ID {
			id := b.ID
			r.BookingID = &id
		}
	}
	r.Availability = append([]model.Weekday(nil), r.Availability...)
	return &r
}

func (f *fakeRequests) Create(_ context.Context, req *model.LessonRequest) error {
	f.nextID++
	req.ID = f.nextID
	req.CreatedAt = time.Now()
	f.requests[req.ID] = *req
	return nil
}

func (f *fakeRequests) GetByID(_ context.Context, id int64) (*model.LessonRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	return f.load(r), nil
}

func (f *fakeRequests) GetByStudentIDs(_ context.Context, studentIDs []int64) ([]*model.LessonRequest, error) {
	var out []*model.LessonRequest
	for _, r := range f.requests {
		if containsID(studentIDs, r.StudentID) {
			out = append(out, f.load(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRequests) GetAll(ctx context.Context) ([]*model.LessonRequest, error) {
	var out []*model.LessonRequest
	for _, r := range f.requests {
		out = append(out, f.load(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRequests) Update(_ context.Context, req *model.LessonRequest) error {
	f.requests[req.ID] = *req
	return nil
}

func (f *fakeRequests) Delete(_ context.Context, id int64) error {
	delete(f.requests, id)
	return nil
}

type fakeTransfers struct {
	nextID    int64
	transfers []model.Transfer
}

func (f *fakeTransfers) Create(_ context.Context, transfer *model.Transfer) error {
	f.nextID++
	transfer.ID = f.nextID
	f.transfers = append(f.transfers, *transfer)
	return nil
}

func (f *fakeTransfers) GetByStudentIDs(_ context.Context, studentIDs []int64) ([]*model.Transfer, error) {
	var out []*model.Transfer
	for _, t := range f.transfers {
		if containsID(studentIDs, t.StudentID) {
			t := t
			out = append(out, &t)
		}
	}
	return out, nil
}

func (f *fakeTransfers) GetAll(_ context.Context) ([]*model.Transfer, error) {
	var out []*model.Transfer
	for _, t := range f.transfers {
		t := t
		out = append(out, &t)
	}
	return out, nil
}

type fakeUsers struct {
	students map[int64]model.StudentProfile
	teachers map[int64]model.TeacherProfile
	admins   map[int64]model.AdminProfile
	locks    []int64
}

func (f *fakeUsers) GetStudentByID(_ context.Context, id int64) (*model.StudentProfile, error) {
	p, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeUsers) GetChildIDs(_ context.Context, parentID int64) ([]int64, error) {
	var ids []int64
	for _, p := range f.students {
		if p.ParentID != nil && *p.ParentID == parentID {
			ids = append(ids, p.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeUsers) GetTeacherByID(_ context.Context, id int64) (*model.TeacherProfile, error) {
	p, ok := f.teachers[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeUsers) LockTeacher(ctx context.Context, id int64) (*model.TeacherProfile, error) {
	f.locks = append(f.locks, id)
	return f.GetTeacherByID(ctx, id)
}

func (f *fakeUsers) GetAdminByID(_ context.Context, id int64) (*model.AdminProfile, error) {
	p, ok := f.admins[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Fixture ids
const (
	parentID  int64 = 1
	childID   int64 = 2
	otherID   int64 = 3
	teacherID int64 = 10
	adminID   int64 = 20
)

type fixture struct {
	tx        *fakeTx
	terms     *fakeTerms
	bookings  *fakeBookings
	requests  *fakeRequests
	transfers *fakeTransfers
	users     *fakeUsers
	now       scheduling.Clock
	logger    *zap.Logger
}

func newFixture() *fixture {
	terms := newFakeTerms()
	bookings := &fakeBookings{bookings: make(map[int64]model.LessonBooking), terms: terms}
	requests := &fakeRequests{requests: make(map[int64]model.LessonRequest), bookings: bookings}
	bookings.requests = requests

	parent := parentID
	users := &fakeUsers{
		students: map[int64]model.StudentProfile{
			parentID: {ID: parentID, UserID: 101},
			childID:  {ID: childID, UserID: 102, ParentID: &parent},
			otherID:  {ID: otherID, UserID: 103},
		},
		teachers: map[int64]model.TeacherProfile{teacherID: {ID: teacherID, UserID: 110}},
		admins:   map[int64]model.AdminProfile{adminID: {ID: adminID, UserID: 120}},
	}

	return &fixture{
		tx:        &fakeTx{},
		terms:     terms,
		bookings:  bookings,
		requests:  requests,
		transfers: &fakeTransfers{},
		users:     users,
		now: func() time.Time {
			return time.Date(2022, 8, 1, 9, 0, 0, 0, time.UTC)
		},
		logger: zap.NewNop(),
	}
}

func (f *fixture) termService() *TermService {
	return NewTermService(f.tx, f.terms, f.now, f.logger)
}

func (f *fixture) requestService() *RequestService {
	return NewRequestService(f.requests, f.bookings, f.users, f.logger)
}

func (f *fixture) bookingService() *BookingService {
	return NewBookingService(f.tx, f.bookings, f.requests, f.terms, f.users, f.now, f.logger)
}

func (f *fixture) transferService() *TransferService {
	return NewTransferService(f.transfers, f.bookings, f.now, f.logger)
}

// addAutumnTerm stores a ninety day term: 2022-09-01 .. 2022-11-30.
func (f *fixture) addAutumnTerm() *model.SchoolTerm {
	start := calendar.Date(2022, 9, 1)
	term := &model.SchoolTerm{Label: "Autumn", StartDate: start, EndDate: start.AddDate(0, 0, 90)}
	_ = f.terms.Create(context.Background(), term)
	return term
}

func (f *fixture) addRequest(studentID int64) *model.LessonRequest {
	req := &model.LessonRequest{
		StudentID:    studentID,
		Duration:     60,
		Quantity:     2,
		Interval:     1,
		Availability: []model.Weekday{model.Monday, model.Tuesday},
	}
	_ = f.requests.Create(context.Background(), req)
	return req
}

func mondayInput(termID int64) BookingInput {
	return BookingInput{
		TermID:    termID,
		TeacherID: teacherID,
		Day:       model.Monday,
		StartTime: calendar.Clock(10, 0),
		Duration:  60,
		Quantity:  2,
		Interval:  1,
	}
}
