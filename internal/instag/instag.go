// Package instag keeps the table of our own instance tags, one per
// (account, protocol) pair, and generates new ones.
package instag

import (
	"cmp"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"otrctx/internal/domain"
)

// ErrNoTag is returned by Forget when the account has no tag.
var ErrNoTag = errors.New("instag: no instance tag for account")

type key struct {
	account  domain.AccountName
	protocol domain.Protocol
}

// Store maps accounts to our instance tags. A nil persister keeps the table
// in memory only.
type Store struct {
	mu      sync.Mutex
	tags    map[key]domain.InstanceTag
	persist domain.InstanceTagPersister
	rand    io.Reader
}

// Option configures a Store.
type Option func(*Store)

// WithRand sets the entropy source used by Generate.
func WithRand(r io.Reader) Option {
	return func(s *Store) { s.rand = r }
}

// New returns an empty Store.
func New(p domain.InstanceTagPersister, opts ...Option) *Store {
	s := &Store{
		tags:    make(map[key]domain.InstanceTag),
		persist: p,
		rand:    rand.Reader,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory table with the persisted one. Records with
// reserved tags are skipped.
func (s *Store) Load() error {
	if s.persist == nil {
		return nil
	}
	recs, err := s.persist.LoadInstanceTags()
	if err != nil {
		return fmt.Errorf("load instance tags: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = make(map[key]domain.InstanceTag, len(recs))
	for _, r := range recs {
		if !r.Tag.IsValid() {
			continue
		}
		s.tags[key{r.Account, r.Protocol}] = r.Tag
	}
	return nil
}

// Lookup returns our instance tag for the account.
func (s *Store) Lookup(account domain.AccountName, protocol domain.Protocol) (domain.InstanceTag, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tags[key{account, protocol}]
	return t, ok
}

// Generate creates a fresh random tag for the account, replacing any
// existing one, and persists the table.
func (s *Store) Generate(account domain.AccountName, protocol domain.Protocol) (domain.InstanceTag, error) {
	var buf [4]byte
	var tag domain.InstanceTag
	for !tag.IsValid() {
		if _, err := io.ReadFull(s.rand, buf[:]); err != nil {
			return 0, fmt.Errorf("generate instance tag: %w", err)
		}
		tag = domain.InstanceTag(binary.BigEndian.Uint32(buf[:]))
	}
	if err := s.Set(account, protocol, tag); err != nil {
		return 0, err
	}
	return tag, nil
}

// Set records tag for the account and persists the table.
func (s *Store) Set(account domain.AccountName, protocol domain.Protocol, tag domain.InstanceTag) error {
	if !tag.IsValid() {
		return fmt.Errorf("instag: tag %s is reserved", tag)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[key{account, protocol}] = tag
	return s.saveLocked()
}

// Forget drops the account's tag and persists the table.
func (s *Store) Forget(account domain.AccountName, protocol domain.Protocol) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{account, protocol}
	if _, ok := s.tags[k]; !ok {
		return ErrNoTag
	}
	delete(s.tags, k)
	return s.saveLocked()
}

// All returns the table ordered by account, then protocol.
func (s *Store) All() []domain.InstanceTagRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordsLocked()
}

func (s *Store) recordsLocked() []domain.InstanceTagRecord {
	out := make([]domain.InstanceTagRecord, 0, len(s.tags))
	for k, t := range s.tags {
		out = append(out, domain.InstanceTagRecord{Account: k.account, Protocol: k.protocol, Tag: t})
	}
	slices.SortFunc(out, func(a, b domain.InstanceTagRecord) int {
		if c := cmp.Compare(a.Account, b.Account); c != 0 {
			return c
		}
		return cmp.Compare(a.Protocol, b.Protocol)
	})
	return out
}

func (s *Store) saveLocked() error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveInstanceTags(s.recordsLocked()); err != nil {
		return fmt.Errorf("save instance tags: %w", err)
	}
	return nil
}

// Compile-time assertion that Store implements domain.InstanceTagStore.
var _ domain.InstanceTagStore = (*Store)(nil)
