package pages

import (
	"context"
	"errors"
	"sort"

	"github.com/storefront-qa/pageflow/internal/wait"
)

// RetailHeader is the header bar of the retail site
type RetailHeader struct {
	*page
}

// Entries returns the known header entry names, sorted
func (r *RetailHeader) Entries() []string {
	names := make([]string, 0, len(r.flow.loc.Retail.Entries))
	for name := range r.flow.loc.Retail.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasEntry reports whether name is a known header entry and is displayed
func (r *RetailHeader) HasEntry(ctx context.Context, name string) (bool, error) {
	if err := r.check(); err != nil {
		return false, err
	}
	loc, ok := r.flow.loc.Retail.Entries[name]
	if !ok {
		return false, nil
	}
	if err := r.flow.waiter.Appear(ctx, r.flow.sess, loc); err != nil {
		if errors.Is(err, wait.ErrTimeout) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
