package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
)

func newMockStore(t *testing.T) (*Store, *mock.Client) {
	t.Helper()
	c := mock.NewClient(gomock.NewController(t))
	return NewStoreForTest(c), c
}

func isDBError(err error, op string) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr) && dbErr.Op == op
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); !errors.Is(err, ErrNoAddrs) {
		t.Fatalf("err = %v, want ErrNoAddrs", err)
	}
}

func TestClientOption(t *testing.T) {
	opt, err := clientOption(Config{Addrs: []string{"cache:6379"}, Password: "pw", DB: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.ClientName != "campus" || opt.Dialer.Timeout != defaultDialTimeout {
		t.Errorf("defaults not applied: name=%q timeout=%v", opt.ClientName, opt.Dialer.Timeout)
	}
	if opt.SelectDB != 2 || opt.Password != "pw" || !opt.DisableCache {
		t.Errorf("opt = %+v", opt)
	}

	opt, _ = clientOption(Config{Addrs: []string{"a:1"}, ClientName: "worker", DialTimeout: time.Second})
	if opt.ClientName != "worker" || opt.Dialer.Timeout != time.Second {
		t.Errorf("overrides lost: name=%q timeout=%v", opt.ClientName, opt.Dialer.Timeout)
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name    string
		result  rueidis.RedisResult
		wantErr bool
	}{
		{"pong", mock.Result(mock.RedisString("PONG")), false},
		{"timeout", mock.ErrorResult(context.DeadlineExceeded), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, c := newMockStore(t)
			c.EXPECT().Do(gomock.Any(), mock.Match("PING")).Return(tt.result)

			err := s.Ping(context.Background())
			if tt.wantErr != (err != nil) {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !isDBError(err, db.OpPing) {
				t.Errorf("expected db.Error{ping}, got %T", err)
			}
		})
	}
}

func TestWaitForReady(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		s, c := newMockStore(t)
		c.EXPECT().Do(gomock.Any(), mock.Match("PING")).
			Return(mock.Result(mock.RedisString("PONG"))).AnyTimes()

		if err := s.WaitForReady(context.Background(), time.Second); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	t.Run("timeout", func(t *testing.T) {
		s, c := newMockStore(t)
		c.EXPECT().Do(gomock.Any(), mock.Match("PING")).
			Return(mock.ErrorResult(errors.New("connection refused"))).AnyTimes()

		err := s.WaitForReady(context.Background(), 250*time.Millisecond)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("err = %v, want deadline exceeded", err)
		}
	})
}

func TestClose_Once(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().Close().Times(1)

	s.Close()
	s.Close()
}

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		result    rueidis.RedisResult
		want      string
		wantErr   error
		wantDBErr bool
	}{
		{name: "hit", result: mock.Result(mock.RedisBlobString("12")), want: "12"},
		{name: "miss", result: mock.Result(mock.RedisNil()), wantErr: db.ErrKeyNotFound},
		{name: "network", result: mock.ErrorResult(context.DeadlineExceeded), wantErr: context.DeadlineExceeded, wantDBErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, c := newMockStore(t)
			c.EXPECT().Do(gomock.Any(), mock.Match("GET", "campus:count:students:1")).Return(tt.result)

			data, err := s.Get(context.Background(), "campus:count:students:1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantDBErr && !isDBError(err, db.OpGet) {
				t.Errorf("expected db.Error{GET}, got %T", err)
			}
			if string(data) != tt.want {
				t.Errorf("data = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestSetWithTTL(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "campus:count:courses:9", "42", "EX", "30")).
		Return(mock.Result(mock.RedisString("OK")))

	if err := s.SetWithTTL(context.Background(), "campus:count:courses:9", []byte("42"), 30*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetWithTTL_Error(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "SET" })).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	err := s.SetWithTTL(context.Background(), "k", []byte("1"), time.Minute)
	if !isDBError(err, db.OpSet) {
		t.Errorf("expected db.Error{SET}, got %v", err)
	}
}

func TestDeleteByPrefix_MultiplePages(t *testing.T) {
	s, c := newMockStore(t)
	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match("SCAN", "0", "MATCH", "campus:count:students:*", "COUNT", "100")).
			Return(mock.Result(mock.RedisArray(
				mock.RedisBlobString("17"),
				mock.RedisArray(mock.RedisBlobString("campus:count:students:a"), mock.RedisBlobString("campus:count:students:b")),
			))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("UNLINK", "campus:count:students:a", "campus:count:students:b")).
			Return(mock.Result(mock.RedisInt64(2))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("SCAN", "17", "MATCH", "campus:count:students:*", "COUNT", "100")).
			Return(mock.Result(mock.RedisArray(mock.RedisBlobString("0"), mock.RedisArray()))),
	)

	n, err := s.DeleteByPrefix(context.Background(), "campus:count:students:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
}

func TestDeleteByPrefix_ScanError(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "SCAN" })).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	if _, err := s.DeleteByPrefix(context.Background(), "campus:count:"); !isDBError(err, db.OpScan) {
		t.Errorf("expected db.Error{SCAN}, got %v", err)
	}
}

func TestDeleteByPrefix_UnlinkError(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "SCAN" })).
		Return(mock.Result(mock.RedisArray(
			mock.RedisBlobString("0"),
			mock.RedisArray(mock.RedisBlobString("campus:count:courses:a")),
		)))
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "UNLINK" })).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	if _, err := s.DeleteByPrefix(context.Background(), "campus:count:courses:"); !isDBError(err, db.OpUnlink) {
		t.Errorf("expected db.Error{UNLINK}, got %v", err)
	}
}
