package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
	"github.com/enayetsyl/industry-grade-project-format/internal/metrics"
)

func TestInstrumentedSource_Success(t *testing.T) {
	inner := &mockSource[string]{
		findFn:  func(context.Context, query.Spec) ([]string, error) { return []string{"a", "b"}, nil },
		countFn: func(context.Context, query.Spec) (int64, error) { return 7, nil },
	}
	s := NewInstrumentedSource[string](inner, zap.NewNop())
	spec := query.Spec{Collection: "instr-ok"}

	rows, err := s.Find(context.Background(), spec)
	if err != nil || len(rows) != 2 {
		t.Fatalf("find = %v, %v", rows, err)
	}
	n, err := s.Count(context.Background(), spec)
	if err != nil || n != 7 {
		t.Fatalf("count = %d, %v", n, err)
	}

	if got := testutil.ToFloat64(metrics.QueryExecutionsTotal.WithLabelValues("instr-ok", opFind, statusOK)); got != 1 {
		t.Errorf("find executions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.QueryExecutionsTotal.WithLabelValues("instr-ok", opCount, statusOK)); got != 1 {
		t.Errorf("count executions = %v, want 1", got)
	}
}

func TestInstrumentedSource_Error(t *testing.T) {
	boom := errors.New("boom")
	inner := &mockSource[string]{
		findFn: func(context.Context, query.Spec) ([]string, error) { return nil, boom },
	}
	s := NewInstrumentedSource[string](inner, zap.NewNop())

	_, err := s.Find(context.Background(), query.Spec{Collection: "instr-err"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if got := testutil.ToFloat64(metrics.QueryExecutionsTotal.WithLabelValues("instr-err", opFind, statusError)); got != 1 {
		t.Errorf("error executions = %v, want 1", got)
	}
}
