package query

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeSource struct {
	mu       sync.Mutex
	rows     []row
	total    int64
	findErr  error
	countErr error

	findSpec  Spec
	countSpec Spec
}

func (f *fakeSource) Find(_ context.Context, spec Spec) ([]row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findSpec = spec
	return f.rows, f.findErr
}

func (f *fakeSource) Count(_ context.Context, spec Spec) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countSpec = spec
	return f.total, f.countErr
}

func buildAll(src Source[row], raw string) *Builder[row] {
	p, _ := ParseQuery(raw)
	return New(src, Base{Collection: "students"}, p).
		Search(SearchableFields{"email"}).Filter().Sort().Paginate().Fields()
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  int64
	}{
		{"empty", 1, 10, 0, 0},
		{"exact", 1, 10, 20, 2},
		{"remainder", 1, 10, 21, 3},
		{"spec example", 2, 5, 12, 3},
		{"zero limit", 1, 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeta(tt.page, tt.limit, tt.total)
			if m.TotalPage != tt.want {
				t.Errorf("TotalPage = %d, want %d", m.TotalPage, tt.want)
			}
			if m.Page != tt.page || m.Limit != tt.limit || m.Total != tt.total {
				t.Errorf("meta = %+v", m)
			}
		})
	}
}

func TestExecute_EmptyIsNotNil(t *testing.T) {
	rows, err := Execute(context.Background(), buildAll(&fakeSource{}, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %#v, want empty non-nil slice", rows)
	}
}

func TestExecute_WrapsError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Execute(context.Background(), buildAll(&fakeSource{findErr: boom}, ""))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapping boom", err)
	}
}

func TestCountTotal_IgnoresWindowAndSort(t *testing.T) {
	src := &fakeSource{total: 12}
	meta, err := CountTotal(context.Background(), buildAll(src, "searchTerm=ali&role=student&page=2&limit=5&sort=name&fields=email"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Meta{Page: 2, Limit: 5, Total: 12, TotalPage: 3}
	if meta != want {
		t.Errorf("meta = %+v, want %+v", meta, want)
	}
	if src.countSpec.Window != nil || src.countSpec.Sort != nil || !src.countSpec.Projection.IsZero() {
		t.Errorf("count spec carries shaping: %+v", src.countSpec)
	}
	if len(src.countSpec.Search) != 1 || len(src.countSpec.Match) != 1 {
		t.Errorf("count spec lost predicates: %+v", src.countSpec)
	}
}

func TestCountTotal_WrapsError(t *testing.T) {
	boom := errors.New("count failed")
	_, err := CountTotal(context.Background(), buildAll(&fakeSource{countErr: boom}, ""))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapping %v", err, boom)
	}
}

func TestMaterialize(t *testing.T) {
	src := &fakeSource{rows: []row{{}, {}}, total: 7}
	res, err := Materialize(context.Background(), buildAll(src, "limit=2&page=1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Data) != 2 {
		t.Errorf("len(data) = %d, want 2", len(res.Data))
	}
	if res.Meta.Total != 7 || res.Meta.TotalPage != 4 {
		t.Errorf("meta = %+v", res.Meta)
	}
	if src.findSpec.Window == nil || src.findSpec.Window.Limit != 2 {
		t.Errorf("find spec window = %+v", src.findSpec.Window)
	}
}

func TestMaterialize_PropagatesEitherError(t *testing.T) {
	boom := errors.New("boom")

	if _, err := Materialize(context.Background(), buildAll(&fakeSource{findErr: boom}, "")); !errors.Is(err, boom) {
		t.Errorf("find failure: err = %v", err)
	}
	if _, err := Materialize(context.Background(), buildAll(&fakeSource{countErr: boom}, "")); !errors.Is(err, boom) {
		t.Errorf("count failure: err = %v", err)
	}
}
