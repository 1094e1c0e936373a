package employee

import (
	"context"
	"testing"
)

type fakeEmployeeStore struct {
	employees map[int64]*Employee
	nextID    int64
	lookups   int
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{employees: map[int64]*Employee{}, nextID: 1}
}

func (f *fakeEmployeeStore) add(e Employee) *Employee {
	e.ID = f.nextID
	f.nextID++
	f.employees[e.ID] = &e
	return &e
}

func (f *fakeEmployeeStore) FindByIdentifier(_ context.Context, identifier string) (*Employee, error) {
	f.lookups++
	var best *Employee
	for _, e := range f.employees {
		if e.Code == identifier || e.PhoneNumber == identifier {
			if best == nil || e.ID < best.ID {
				best = e
			}
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakeEmployeeStore) GetByID(_ context.Context, id int64) (*Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEmployeeStore) ExistsCodeOrPhone(_ context.Context, code, phone string, excludeID int64) (bool, error) {
	for _, e := range f.employees {
		if e.ID == excludeID {
			continue
		}
		if e.Code == code || e.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployeeStore) List(_ context.Context, limit, offset int) ([]Employee, int64, error) {
	var out []Employee
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeStore) Create(_ context.Context, e *Employee) (int64, error) {
	created := f.add(*e)
	return created.ID, nil
}

func (f *fakeEmployeeStore) Update(_ context.Context, e *Employee) (int64, error) {
	if _, ok := f.employees[e.ID]; !ok {
		return 0, nil
	}
	cp := *e
	f.employees[e.ID] = &cp
	return 1, nil
}

func (f *fakeEmployeeStore) ClearDevice(_ context.Context, id int64) error {
	if e, ok := f.employees[id]; ok {
		e.WebFingerprint = nil
		e.DeviceToken = nil
	}
	return nil
}

func (f *fakeEmployeeStore) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := f.employees[id]; !ok {
		return 0, nil
	}
	delete(f.employees, id)
	return 1, nil
}

func newTestService(store EmployeeStore) *Service {
	return &Service{store: store}
}

func TestResolveByCodeAndPhone(t *testing.T) {
	store := newFakeEmployeeStore()
	store.add(Employee{Code: "EMP-001", Name: "Ahmed", PhoneNumber: "01001234567", Status: StatusActive})
	svc := newTestService(store)
	ctx := context.Background()

	byCode, err := svc.Resolve(ctx, "EMP-001")
	if err != nil || byCode == nil {
		t.Fatalf("resolve by code: %v %v", byCode, err)
	}
	byPhone, err := svc.Resolve(ctx, "01001234567")
	if err != nil || byPhone == nil {
		t.Fatalf("resolve by phone: %v %v", byPhone, err)
	}
	if byCode.ID != byPhone.ID {
		t.Fatalf("expected the same employee")
	}
}

func TestResolveTrimsInput(t *testing.T) {
	store := newFakeEmployeeStore()
	store.add(Employee{Code: "EMP-001", Name: "Ahmed", PhoneNumber: "01001234567", Status: StatusActive})
	svc := newTestService(store)

	e, err := svc.Resolve(context.Background(), "  EMP-001  ")
	if err != nil || e == nil {
		t.Fatalf("expected trimmed identifier to resolve, got %v %v", e, err)
	}
}

func TestResolveShortIdentifierSkipsLookup(t *testing.T) {
	store := newFakeEmployeeStore()
	store.add(Employee{Code: "EMP", Name: "X", PhoneNumber: "123", Status: StatusActive})
	svc := newTestService(store)

	e, err := svc.Resolve(context.Background(), " ab ")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if e != nil {
		t.Fatalf("expected not-found for short identifier")
	}
	if store.lookups != 0 {
		t.Fatalf("expected no storage lookup, got %d", store.lookups)
	}
}

func TestResolveUnknownIsNotFoundNotError(t *testing.T) {
	svc := newTestService(newFakeEmployeeStore())
	e, err := svc.Resolve(context.Background(), "EMP-404")
	if err != nil {
		t.Fatalf("not-found must not be an error: %v", err)
	}
	if e != nil {
		t.Fatalf("expected nil employee")
	}
}

func TestResolveInactiveEmployeeHidden(t *testing.T) {
	store := newFakeEmployeeStore()
	store.add(Employee{Code: "EMP-002", Name: "Mona", PhoneNumber: "01009876543", Status: StatusInactive})
	svc := newTestService(store)

	e, err := svc.Resolve(context.Background(), "EMP-002")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if e != nil {
		t.Fatalf("inactive employee must resolve as not found")
	}
}

func TestCreateRejectsDuplicates(t *testing.T) {
	store := newFakeEmployeeStore()
	store.add(Employee{Code: "EMP-001", Name: "Ahmed", PhoneNumber: "01001234567", Status: StatusActive})
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Code: "EMP-001", Name: "Other", PhoneNumber: "01112223334",
	})
	if err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUpdateResetDeviceClearsBinding(t *testing.T) {
	store := newFakeEmployeeStore()
	fp, tok := "fp-1", "tok-1"
	created := store.add(Employee{
		Code: "EMP-003", Name: "Sara", PhoneNumber: "01055556666",
		Status: StatusActive, WebFingerprint: &fp, DeviceToken: &tok,
	})
	svc := newTestService(store)

	updated, err := svc.Update(context.Background(), created.ID, UpdateEmployeeRequest{ResetDevice: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Bound() {
		t.Fatalf("expected device binding cleared")
	}
	if store.employees[created.ID].DeviceToken != nil {
		t.Fatalf("expected stored token cleared")
	}
}
