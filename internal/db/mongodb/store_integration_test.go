//go:build integration

package mongodb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

type person struct {
	ID        string     `bson:"_id,omitempty"`
	Name      string     `bson:"name,omitempty"`
	Email     string     `bson:"email,omitempty"`
	Role      string     `bson:"role,omitempty"`
	Dept      *dept      `bson:"dept,omitempty"`
	CreatedAt *time.Time `bson:"createdAt,omitempty"`
}

type dept struct {
	ID   string `bson:"_id,omitempty"`
	Name string `bson:"name,omitempty"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcmongo.Run(ctx, "mongo:7", testcontainers.WithLogger(testcontainers.TestLogger(t)))
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}
	t.Cleanup(func() {
		if err := ctr.Terminate(context.Background()); err != nil {
			t.Logf("terminate mongo: %v", err)
		}
	})

	uri, err := ctr.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	s, err := NewStore(Config{URI: uri, Database: "campus_test"})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	if err := s.WaitForReady(ctx, 30*time.Second); err != nil {
		t.Fatalf("wait: %v", err)
	}
	return s
}

func TestIntegration_ListScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	deptID := "65f1c0ffee00000000000001"
	if _, err := s.InsertMany(ctx, "depts", []db.Document{{"_id": query.ID(deptID), "name": "CSE"}}); err != nil {
		t.Fatalf("insert depts: %v", err)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var docs []db.Document
	for i := 1; i <= 12; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		docs = append(docs,
			db.Document{
				"name": fmt.Sprintf("Ali %02d", i), "email": fmt.Sprintf("s%02d@campus.edu", i),
				"role": "student", "dept": query.ID(deptID), "createdAt": at, "__v": 0,
			},
			db.Document{"name": "Alia", "role": "admin", "createdAt": at.Add(time.Minute)},
		)
	}
	if _, err := s.InsertMany(ctx, "users", docs); err != nil {
		t.Fatalf("insert users: %v", err)
	}

	params := query.Params{
		"searchTerm": query.String("ALI"),
		"role":       query.String("student"),
		"page":       query.String("2"),
		"limit":      query.String("5"),
		"fields":     query.String("name,email,dept"),
	}
	b := query.New[person](NewCollection[person](s), query.Base{
		Collection: "users",
		Scope:      []query.Condition{query.Ne("isDeleted", true)},
		Lookups:    []query.Lookup{{Field: "dept", From: "depts"}},
	}, params).
		Search(query.SearchableFields{"email", "name"}).Filter().Sort().Paginate().Fields()

	res, err := query.Materialize(ctx, b)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if res.Meta.Total != 12 || res.Meta.TotalPage != 3 {
		t.Errorf("meta = %+v", res.Meta)
	}
	if len(res.Data) != 5 {
		t.Fatalf("len = %d, want 5", len(res.Data))
	}
	if res.Data[0].Name != "Ali 07" || res.Data[4].Name != "Ali 03" {
		t.Errorf("page = %s..%s, want Ali 07..Ali 03", res.Data[0].Name, res.Data[4].Name)
	}
	for _, p := range res.Data {
		if len(p.ID) != 24 {
			t.Errorf("_id = %q, want hex string", p.ID)
		}
		if p.Dept == nil || p.Dept.Name != "CSE" {
			t.Errorf("dept = %+v, want expanded", p.Dept)
		}
		if p.Role != "" || p.CreatedAt != nil {
			t.Errorf("unselected fields present: %+v", p)
		}
	}
}

func TestIntegration_FindByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := "65f1c0ffee00000000000009"
	if _, err := s.InsertMany(ctx, "users", []db.Document{{"_id": query.ID(id), "name": "Ali"}}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := NewCollection[person](s).Find(ctx, query.Spec{
		Collection: "users",
		Match:      []query.Condition{query.Eq("_id", query.ID(id))},
		Window:     &query.Window{Limit: 1},
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].ID != id {
		t.Errorf("got %+v", got)
	}
}
