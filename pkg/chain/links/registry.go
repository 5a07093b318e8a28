package links

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/askiada/go-cichain/pkg/chain"
)

var (
	ErrUnknownLink    = errors.New("unknown link")
	ErrLinkRegistered = errors.New("link already registered")
)

// Factory creates a link.
type Factory func() chain.Link

var registry = struct {
	mu        sync.RWMutex
	factories map[string]Factory
}{
	factories: map[string]Factory{
		SkipName:                   func() chain.Link { return NewSkip() },
		ParseName:                  func() chain.Link { return NewParse() },
		RemoveUnwantedChatJobsName: func() chain.Link { return NewRemoveUnwantedChatJobs() },
		PopulateName:               func() chain.Link { return NewPopulate() },
	},
}

// DefaultNames is the order of the default chain.
var DefaultNames = []string{SkipName, ParseName, RemoveUnwantedChatJobsName, PopulateName}

// Register adds a link factory under name.
func Register(name string, factory Factory) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, ok := registry.factories[name]; ok {
		return errors.Wrap(ErrLinkRegistered, name)
	}

	registry.factories[name] = factory

	return nil
}

// Lookup creates the link registered under name.
func Lookup(name string) (chain.Link, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	factory, ok := registry.factories[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownLink, name)
	}

	return factory(), nil
}

// Names returns the registered link names, sorted.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Build creates the links registered under names, in order.
func Build(names ...string) ([]chain.Link, error) {
	res := make([]chain.Link, 0, len(names))
	for _, name := range names {
		link, err := Lookup(name)
		if err != nil {
			return nil, err
		}

		res = append(res, link)
	}

	return res, nil
}

// Default returns the links of the default chain.
func Default() []chain.Link {
	res, err := Build(DefaultNames...)
	if err != nil {
		panic(err)
	}

	return res
}

var (
	_ chain.Link = (*Skip)(nil)
	_ chain.Link = (*Parse)(nil)
	_ chain.Link = (*RemoveUnwantedChatJobs)(nil)
	_ chain.Link = (*Populate)(nil)
)
