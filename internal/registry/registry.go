package registry

import (
	"cmp"
	"errors"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"otrctx/internal/domain"
	"otrctx/internal/logging"
)

var (
	// ErrInvalidArgument is returned for empty names or an unknown meta
	// instance selector.
	ErrInvalidArgument = errors.New("registry: invalid argument")
	// ErrNotPlaintext is returned when forgetting a context, or a family,
	// that is not entirely PLAINTEXT.
	ErrNotPlaintext = errors.New("registry: context is not plaintext")
	// ErrActiveFingerprint is returned when forgetting the fingerprint an
	// encrypted context is using.
	ErrActiveFingerprint = errors.New("registry: fingerprint is in use by an active session")
	// ErrDetached is returned for contexts or fingerprints that are not, or
	// no longer, part of this registry.
	ErrDetached = errors.New("registry: context is not in this registry")
)

// Registry owns every conversation context of one user.
type Registry struct {
	id       string
	contexts []*Context
	instags  domain.InstanceTagStore
	log      logging.Logger
	now      func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithInstanceTags sets the store our own instance tags are read from.
func WithInstanceTags(s domain.InstanceTagStore) Option {
	return func(r *Registry) { r.instags = s }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithClock sets the time source for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		id:  uuid.NewString(),
		log: logging.NoOpLogger{},
		now: time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	r.log = logging.With(r.log, "registry", r.id)
	return r
}

// ID identifies the registry in log output.
func (r *Registry) ID() string { return r.id }

// Len returns the number of contexts.
func (r *Registry) Len() int { return len(r.contexts) }

// Contexts returns all contexts in key order.
func (r *Registry) Contexts() []*Context { return slices.Clone(r.contexts) }

// Find looks up a context without creating one. their may be a concrete
// instance tag or one of the meta-selectors. It returns nil when nothing
// matches or the arguments are invalid.
func (r *Registry) Find(user domain.Username, account domain.AccountName, protocol domain.Protocol, their domain.InstanceTag) *Context {
	if !validSelector(user, account, protocol, their) {
		return nil
	}
	i := r.search(user, account, protocol, their)
	if i == len(r.contexts) {
		return nil
	}
	c := r.contexts[i]
	if c.username != user || c.accountName != account || c.protocol != protocol {
		return nil
	}
	if their.IsValid() {
		if c.theirInstance != their {
			return nil
		}
		return c
	}
	return r.resolveMeta(c, their)
}

// FindOrCreate looks up a context and creates it when missing. A new
// instance context gets its master created first if needed. addAppData, if
// non-nil, is called once for each context created. added reports whether
// anything was created.
func (r *Registry) FindOrCreate(
	user domain.Username,
	account domain.AccountName,
	protocol domain.Protocol,
	their domain.InstanceTag,
	addAppData AppDataFunc,
) (ctx *Context, added bool, err error) {
	if !validSelector(user, account, protocol, their) {
		return nil, false, ErrInvalidArgument
	}
	if c := r.Find(user, account, protocol, their); c != nil {
		return c, false, nil
	}

	if !their.IsValid() {
		m := r.insert(user, account, protocol, domain.InstanceMaster, nil, addAppData)
		if their == domain.InstanceMaster {
			return m, true, nil
		}
		return r.resolveMeta(m, their), true, nil
	}

	master, _, err := r.FindOrCreate(user, account, protocol, domain.InstanceMaster, addAppData)
	if err != nil {
		return nil, false, err
	}
	// The app-data callback may already have created this instance.
	if c := r.Find(user, account, protocol, their); c != nil {
		return c, true, nil
	}
	return r.insert(user, account, protocol, their, master, addAppData), true, nil
}

// insert creates a context, splices it in, then runs the callback. A nil
// master makes the new context a master of its own family.
func (r *Registry) insert(
	user domain.Username,
	account domain.AccountName,
	protocol domain.Protocol,
	their domain.InstanceTag,
	master *Context,
	addAppData AppDataFunc,
) *Context {
	var our domain.InstanceTag
	if r.instags != nil {
		our, _ = r.instags.Lookup(account, protocol)
	}
	c := newContext(user, account, protocol, our)
	c.theirInstance = their
	c.registry = r
	if master != nil {
		c.master = master
	} else {
		c.recentChild, c.recentRcvdChild, c.recentSentChild = c, c, c
	}

	i := r.search(user, account, protocol, their)
	r.contexts = slices.Insert(r.contexts, i, c)
	r.log.Debug("context created", "context", c.String(), "our_instance", our.String())

	if addAppData != nil {
		addAppData(c)
	}
	return c
}

// remove unlinks c from the sorted list.
func (r *Registry) remove(c *Context) {
	if i := r.index(c); i >= 0 {
		r.contexts = slices.Delete(r.contexts, i, i+1)
	}
}

// Family returns the master of c followed by all its instances.
func (r *Registry) Family(c *Context) []*Context {
	if c == nil || c.registry != r {
		return nil
	}
	m := c.master
	start := r.index(m)
	if start < 0 {
		return nil
	}
	end := start
	for end < len(r.contexts) && r.contexts[end].master == m {
		end++
	}
	return slices.Clone(r.contexts[start:end])
}

// search returns the position of the first context whose key is not less
// than the target. Meta-selectors search for the master position, which is
// the first of the triple.
func (r *Registry) search(user domain.Username, account domain.AccountName, protocol domain.Protocol, their domain.InstanceTag) int {
	if !their.IsValid() {
		their = domain.InstanceMaster
	}
	return sort.Search(len(r.contexts), func(i int) bool {
		return compareKey(r.contexts[i], user, account, protocol, their) >= 0
	})
}

func (r *Registry) index(c *Context) int {
	for i := r.search(c.username, c.accountName, c.protocol, c.theirInstance); i < len(r.contexts); i++ {
		if r.contexts[i] == c {
			return i
		}
		if compareKey(r.contexts[i], c.username, c.accountName, c.protocol, c.theirInstance) != 0 {
			break
		}
	}
	return -1
}

func compareKey(c *Context, user domain.Username, account domain.AccountName, protocol domain.Protocol, their domain.InstanceTag) int {
	if n := cmp.Compare(c.username, user); n != 0 {
		return n
	}
	if n := cmp.Compare(c.accountName, account); n != 0 {
		return n
	}
	if n := cmp.Compare(c.protocol, protocol); n != 0 {
		return n
	}
	return cmp.Compare(c.theirInstance, their)
}

func validSelector(user domain.Username, account domain.AccountName, protocol domain.Protocol, their domain.InstanceTag) bool {
	if user == "" || account == "" || protocol == "" {
		return false
	}
	return their.IsValid() || their.IsMeta()
}
