// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"fmt"
	"time"

	assetdom "framecraft/internal/domain/asset"
	orderdom "framecraft/internal/domain/order"
)

// fakeTierStore serves as both asset.Repository and asset.MemoryStore
// (the method sets are identical). It records every call so tests can
// assert which tiers were consulted.
type fakeTierStore struct {
	rec *assetdom.Record
	err error

	getCalls []string
	puts     map[string]assetdom.Record
	deletes  []string
	putErr   error
}

func newFakeTierStore() *fakeTierStore {
	return &fakeTierStore{puts: map[string]assetdom.Record{}}
}

func (s *fakeTierStore) Get(_ context.Context, itemID string) (*assetdom.Record, error) {
	s.getCalls = append(s.getCalls, itemID)
	if s.err != nil {
		return nil, s.err
	}
	if s.rec == nil {
		return nil, nil
	}
	cp := *s.rec
	return &cp, nil
}

func (s *fakeTierStore) Put(_ context.Context, itemID string, rec assetdom.Record) error {
	if s.putErr != nil {
		return s.putErr
	}
	if s.puts == nil {
		s.puts = map[string]assetdom.Record{}
	}
	s.puts[itemID] = rec
	return nil
}

func (s *fakeTierStore) Delete(_ context.Context, itemID string) error {
	s.deletes = append(s.deletes, itemID)
	return nil
}

// fakeSessionStore implements asset.SessionStore over a plain map.
type fakeSessionStore struct {
	data map[string]string
	err  error

	getCalls []string
	putErr   error
	deletes  []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{data: map[string]string{}}
}

func (s *fakeSessionStore) Get(_ context.Context, key string) (string, error) {
	s.getCalls = append(s.getCalls, key)
	if s.err != nil {
		return "", s.err
	}
	return s.data[key], nil
}

func (s *fakeSessionStore) Put(_ context.Context, key, payload string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.data[key] = payload
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	delete(s.data, key)
	return nil
}

// fakeUploader records uploads and can fail per destination index.
type fakeUploader struct {
	calls   []fakeUploadCall
	failAll error
	failOn  map[int]error // by call index
}

type fakeUploadCall struct {
	ImageData     string
	DestinationID string
}

func (u *fakeUploader) Upload(_ context.Context, imageData, destinationID string) (string, string, error) {
	idx := len(u.calls)
	u.calls = append(u.calls, fakeUploadCall{ImageData: imageData, DestinationID: destinationID})

	if u.failAll != nil {
		return "", "", u.failAll
	}
	if err, ok := u.failOn[idx]; ok {
		return "", "", err
	}
	return fmt.Sprintf("https://cdn.example.com/%s", destinationID), destinationID, nil
}

// fakeSubmitter records the submitted order.
type fakeSubmitter struct {
	order    *orderdom.Order
	remoteID string
	err      error
}

func (s *fakeSubmitter) Submit(_ context.Context, o *orderdom.Order) (string, error) {
	s.order = o
	if s.err != nil {
		return "", s.err
	}
	if s.remoteID == "" {
		s.remoteID = "remote-1"
	}
	return s.remoteID, nil
}

// fakeMail records the last confirmation mail.
type fakeMail struct {
	from, to, subject, body string
	sent                    int
}

func (m *fakeMail) Send(_ context.Context, from, to, subject, body string) error {
	m.from, m.to, m.subject, m.body = from, to, subject, body
	m.sent++
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixedRand struct{ n int }

func (r fixedRand) IntN(int) int { return r.n }
