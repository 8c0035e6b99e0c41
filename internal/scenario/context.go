package scenario

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/pages"
	"github.com/storefront-qa/pageflow/internal/session"
)

// Context is the state of one scenario attempt. The runner creates it,
// hands it to the scenario function and then to every listener.
type Context struct {
	RunID     uuid.UUID
	ID        uuid.UUID
	Name      string
	Attempt   int
	StartedAt time.Time

	Log  *logrus.Entry
	Flow *pages.Flow

	// Screenshot is the reference to a failure screenshot, set by the listener that took it
	Screenshot string

	sess session.Session
}

// Session returns the attempt's session, nil when it could not be opened
func (c *Context) Session() session.Session {
	return c.sess
}

// LastPage returns the page object active when the attempt ended
func (c *Context) LastPage() pages.Page {
	if c.Flow == nil {
		return nil
	}
	return c.Flow.Current()
}

// LastScreen returns the screen of LastPage, or pages.ScreenNone
func (c *Context) LastScreen() pages.Screen {
	if p := c.LastPage(); p != nil {
		return p.Screen()
	}
	return pages.ScreenNone
}
