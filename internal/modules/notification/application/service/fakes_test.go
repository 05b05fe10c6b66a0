package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/repository"
)

type fakeStore struct {
	mu       sync.Mutex
	rows     []*entity.Notification
	nextID   int64
	failOn   int // 第 n 次插入报错，0 表示不报错
	inserts  int
	raceKeys map[string]bool // Exists 返回 false 但插入撞唯一键
}

func newFakeStore() *fakeStore {
	return &fakeStore{raceKeys: map[string]bool{}}
}

func key(userID int64, typ, payload string) string {
	return fmt.Sprintf("%d|%s|%s", userID, typ, payload)
}

func (s *fakeStore) Transaction(ctx context.Context, fn func(repo repository.NotificationRepository) error) error {
	s.mu.Lock()
	snapshot := append([]*entity.Notification(nil), s.rows...)
	next := s.nextID
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.rows = snapshot
		s.nextID = next
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *fakeStore) find(userID int64, typ, payload string) *entity.Notification {
	for _, r := range s.rows {
		if r.UserID == userID && r.Type == typ && r.PayloadKey() == payload && r.PayloadJSON != nil {
			return r
		}
	}
	return nil
}

func (s *fakeStore) Exists(ctx context.Context, userID int64, typ string, payloadKey string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(userID, typ, payloadKey) != nil, nil
}

func (s *fakeStore) InsertIfAbsent(ctx context.Context, n *entity.Notification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	if s.failOn > 0 && s.inserts == s.failOn {
		return false, errors.New("db down")
	}
	if s.raceKeys[key(n.UserID, n.Type, n.PayloadKey())] {
		return false, nil
	}
	if n.PayloadJSON != nil && s.find(n.UserID, n.Type, n.PayloadKey()) != nil {
		return false, nil
	}
	s.nextID++
	n.ID = s.nextID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.rows = append(s.rows, n)
	return true, nil
}

func (s *fakeStore) ListByUser(ctx context.Context, userID int64, limit int) ([]entity.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Notification, 0)
	for _, r := range s.rows {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) GetByIDAndUser(ctx context.Context, id int64, userID int64) (*entity.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.ID == id && r.UserID == userID {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) MarkRead(ctx context.Context, id int64, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.ID == id && r.UserID == userID {
			r.IsRead = true
		}
	}
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id int64, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if r.ID == id && r.UserID == userID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) CountUnread(ctx context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.rows {
		if r.UserID == userID && !r.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) count(typ string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rows {
		if r.Type == typ {
			n++
		}
	}
	return n
}

type fakeWorld struct {
	openAlarms   []entity.Edge
	favorites    []entity.Edge
	artistFans   map[int64][]int64
	performances map[int64]*entity.PerformanceSnapshot
	artists      map[int64][]int64
	targets      map[int64]string
	gets         int
	since        time.Time
	scanErr      error
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		artistFans:   map[int64][]int64{},
		performances: map[int64]*entity.PerformanceSnapshot{},
		artists:      map[int64][]int64{},
		targets:      map[int64]string{},
	}
}

func (w *fakeWorld) ListTicketOpenAlarms(ctx context.Context) ([]entity.Edge, error) {
	return w.openAlarms, w.scanErr
}

func (w *fakeWorld) ListFavoritePerformances(ctx context.Context) ([]entity.Edge, error) {
	return w.favorites, w.scanErr
}

func (w *fakeWorld) ListArtistFollowers(ctx context.Context, artistIDs []int64) ([]int64, error) {
	seen := map[int64]bool{}
	out := make([]int64, 0)
	for _, a := range artistIDs {
		for _, u := range w.artistFans[a] {
			if !seen[u] {
				seen[u] = true
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (w *fakeWorld) GetPerformance(ctx context.Context, id int64) (*entity.PerformanceSnapshot, error) {
	w.gets++
	return w.performances[id], nil
}

func (w *fakeWorld) ListPerformanceIDsCreatedSince(ctx context.Context, since time.Time) ([]int64, error) {
	w.since = since
	ids := make([]int64, 0)
	for id, p := range w.performances {
		if !p.CreatedAt.Before(since) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (w *fakeWorld) ListArtistIDs(ctx context.Context, performanceID int64) ([]int64, error) {
	return w.artists[performanceID], nil
}

func (w *fakeWorld) ListPushTargets(ctx context.Context, userIDs []int64) ([]entity.PushTarget, error) {
	out := make([]entity.PushTarget, 0)
	for _, id := range userIDs {
		if tok, ok := w.targets[id]; ok {
			out = append(out, entity.PushTarget{UserID: id, Token: tok})
		}
	}
	return out, nil
}

type fakeQueue struct {
	mu   sync.Mutex
	msgs []entity.PushMessage
	err  error
}

func (q *fakeQueue) Enqueue(ctx context.Context, msg entity.PushMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.msgs = append(q.msgs, msg)
	return nil
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent []int64
	err  error
}

func (b *fakeBroadcaster) Broadcast(ctx context.Context, n *entity.Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.sent = append(b.sent, n.UserID)
	return nil
}

func date(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}
