package patient

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) Update(ctx context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	var out []*Patient
	for _, p := range m.patients {
		out = append(out, p)
	}
	return out, len(out), nil
}

func TestServiceCreate(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	p := &Patient{FirstName: "Jean", LastName: "Dupont", Gender: "M", Age: 45}
	if err := svc.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		p    Patient
	}{
		{"missing first name", Patient{LastName: "Dupont"}},
		{"missing last name", Patient{FirstName: "Jean"}},
		{"bad gender", Patient{FirstName: "Jean", LastName: "Dupont", Gender: "X"}},
		{"bad age", Patient{FirstName: "Jean", LastName: "Dupont", Age: 200}},
		{"negative weight", Patient{FirstName: "Jean", LastName: "Dupont", WeightKg: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Create(ctx, &tc.p); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestServiceUpdateAndGet(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p := &Patient{FirstName: "Jean", LastName: "Dupont", Gender: "M"}
	if err := svc.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	p.Age = 46
	if err := svc.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Age != 46 {
		t.Errorf("age = %d", got.Age)
	}
}
