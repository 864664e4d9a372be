// Package handoff keeps payloads passed from one view to another until the
// destination reads them. Each payload is read at most once.
package handoff

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"assetdesk/internal/core/apperror"
)

// Config controls retention and compression.
type Config struct {
	TTL time.Duration
	// CompressThreshold is the payload size in bytes above which payloads are stored zstd-compressed.
	CompressThreshold int
}

type entry struct {
	data       []byte
	compressed bool
	expires    time.Time
}

// Store is an in-memory, consume-once payload store keyed by session and slot.
type Store struct {
	mu    sync.Mutex
	slots map[string]entry

	cfg     Config
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	now     func() time.Time
}

// New creates a Store.
func New(cfg Config) (*Store, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	if cfg.CompressThreshold <= 0 {
		cfg.CompressThreshold = 10 * 1024 // 10KB
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &Store{
		slots:   make(map[string]entry),
		cfg:     cfg,
		encoder: encoder,
		decoder: decoder,
		now:     time.Now,
	}, nil
}

func key(sessionID, slot string) string {
	return sessionID + "\x00" + slot
}

// Put stores payload for the session, replacing any unread payload in the same slot.
func (s *Store) Put(_ context.Context, sessionID, slot string, payload []byte) error {
	if sessionID == "" {
		return apperror.NewValidation("session id is required")
	}

	e := entry{expires: s.now().Add(s.cfg.TTL)}
	if len(payload) > s.cfg.CompressThreshold {
		e.data = s.encoder.EncodeAll(payload, nil)
		e.compressed = true
	} else {
		e.data = append([]byte(nil), payload...)
	}

	s.mu.Lock()
	s.slots[key(sessionID, slot)] = e
	s.mu.Unlock()
	return nil
}

// Take returns and removes the payload. A missing or expired payload is HANDOFF_EMPTY.
func (s *Store) Take(_ context.Context, sessionID, slot string) ([]byte, error) {
	k := key(sessionID, slot)

	s.mu.Lock()
	e, ok := s.slots[k]
	delete(s.slots, k)
	s.mu.Unlock()

	if !ok || !s.now().Before(e.expires) {
		return nil, apperror.NewHandoffEmpty(slot)
	}

	if !e.compressed {
		return e.data, nil
	}
	data, err := s.decoder.DecodeAll(e.data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress handoff payload: %w", err)
	}
	return data, nil
}

// Sweep drops expired payloads and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.slots {
		if !now.Before(e.expires) {
			delete(s.slots, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored payloads, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// Close releases the codec resources.
func (s *Store) Close() {
	s.encoder.Close()
	s.decoder.Close()
}
