package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
)

type fakeRepo struct {
	mu      sync.Mutex
	seq     int
	records []attendance.Record
	locks   int
	failOn  map[string]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{failOn: map[string]error{}}
}

func (f *fakeRepo) LockStaff(ctx context.Context, staffID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locks++
	return nil
}

func (f *fakeRepo) Create(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn["create"]; err != nil {
		return attendance.Record{}, err
	}
	f.seq++
	if r.ID == "" {
		r.ID = fmt.Sprintf("rec-%d", f.seq)
	}
	r.CreatedAt = r.ClockIn
	r.UpdatedAt = r.ClockIn
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeRepo) ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Record
	for _, r := range f.records {
		if r.StaffID != staffID || !r.ClockIn.Before(to) {
			continue
		}
		if r.ClockOut != nil && r.ClockOut.Before(from) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ClockIn.Before(out[j].ClockIn) })
	return out, nil
}

func (f *fakeRepo) ListOpen(ctx context.Context, staffID string) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Record
	for _, r := range f.records {
		if r.StaffID == staffID && r.ClockOut == nil {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ClockIn.After(out[j].ClockIn) })
	return out, nil
}

func (f *fakeRepo) update(id string, fn func(r *attendance.Record)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			fn(&f.records[i])
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeRepo) SetClockOut(ctx context.Context, id string, t time.Time) error {
	return f.update(id, func(r *attendance.Record) { r.ClockOut = &t })
}

func (f *fakeRepo) SetBreakStart(ctx context.Context, id string, t time.Time) error {
	return f.update(id, func(r *attendance.Record) { r.BreakStart = &t })
}

func (f *fakeRepo) SetBreakEnd(ctx context.Context, id string, t time.Time) error {
	return f.update(id, func(r *attendance.Record) { r.BreakEnd = &t })
}

func (f *fakeRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	var kept []attendance.Record
	var n int64
	for _, r := range f.records {
		if drop[r.ID] {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return n, nil
}

func (f *fakeRepo) ListStaffIDs(ctx context.Context, from, to time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, r := range f.records {
		if seen[r.StaffID] || !r.ClockIn.Before(to) || (r.ClockOut != nil && r.ClockOut.Before(from)) {
			continue
		}
		seen[r.StaffID] = true
		out = append(out, r.StaffID)
	}
	sort.Strings(out)
	return out, nil
}

// seed stores a record as-is, bypassing the clock-in rules.
func (f *fakeRepo) seed(r attendance.Record) attendance.Record {
	created, _ := f.Create(context.Background(), r)
	return created
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Set(s string) {
	c.now = ts(s)
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsPtr(s string) *time.Time {
	t := ts(s)
	return &t
}
