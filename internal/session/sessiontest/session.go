// Package sessiontest provides an in-memory session.Session whose document is
// scripted by the test. It stands in for a browser in unit tests of the wait
// engine, page objects and scenario runner.
package sessiontest

import (
	"context"
	"fmt"
	"sync"

	"github.com/storefront-qa/pageflow/internal/locator"
	"github.com/storefront-qa/pageflow/internal/session"
)

// Node is one element of the scripted document.
// Build nodes before handing the session to the code under test; after that,
// change them only through Session methods.
type Node struct {
	Text     string
	Visible  bool
	Value    string
	Children map[locator.Locator][]*Node

	// OnClick runs after the click is recorded, without the session lock held
	OnClick func()
	// OnType runs with the field's full value after each Type call
	OnType func(value string)

	clicks int
}

// NewNode creates a visible node with the given text
func NewNode(text string) *Node {
	return &Node{Text: text, Visible: true, Children: map[locator.Locator][]*Node{}}
}

// With attaches children reachable from this node through loc
func (n *Node) With(loc locator.Locator, children ...*Node) *Node {
	if n.Children == nil {
		n.Children = map[locator.Locator][]*Node{}
	}
	n.Children[loc] = append(n.Children[loc], children...)
	return n
}

// Session is a scripted, goroutine-safe session.Session
type Session struct {
	mu          sync.Mutex
	nodes       map[locator.Locator][]*Node
	url         string
	navigations []string
	closed      bool
	screenshots int
	findErrs    []error

	// OnNavigate runs after each successful Navigate, without the lock held
	OnNavigate func(url string)
}

var _ session.Session = (*Session)(nil)

// New creates an empty document
func New() *Session {
	return &Session{nodes: map[locator.Locator][]*Node{}}
}

// Put replaces the nodes matched by loc at document level
func (s *Session) Put(loc locator.Locator, nodes ...*Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[loc] = nodes
}

// Remove detaches every node matched by loc at document level
func (s *Session) Remove(loc locator.Locator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, loc)
}

// Clear empties the whole document
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = map[locator.Locator][]*Node{}
}

// SetVisible changes a node's visibility
func (s *Session) SetVisible(n *Node, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.Visible = visible
}

// FailFinds makes the next len(errs) FindAll calls return these errors in order
func (s *Session) FailFinds(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findErrs = append(s.findErrs, errs...)
}

// Clicks returns how many times n was clicked
func (s *Session) Clicks(n *Node) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return n.clicks
}

// ValueOf returns the text typed into n so far
func (s *Session) ValueOf(n *Node) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return n.Value
}

// Navigations returns every URL passed to Navigate
func (s *Session) Navigations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.navigations...)
}

// Screenshots returns how many screenshots were taken
func (s *Session) Screenshots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screenshots
}

// Closed reports whether Close was called
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Navigate records url as the current address
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return session.ErrClosed
	}
	s.url = url
	s.navigations = append(s.navigations, url)
	hook := s.OnNavigate
	s.mu.Unlock()

	if hook != nil {
		hook(url)
	}
	return nil
}

// URL returns the last navigated address
func (s *Session) URL(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", session.ErrClosed
	}
	return s.url, nil
}

// Screenshot returns a fixed PNG signature
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, session.ErrClosed
	}
	s.screenshots++
	return []byte("\x89PNG\r\n\x1a\n"), nil
}

// Close marks the session closed; later calls fail with session.ErrClosed
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// FindAll returns the document-level nodes registered for loc
func (s *Session) FindAll(ctx context.Context, loc locator.Locator) ([]session.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, session.ErrClosed
	}
	if len(s.findErrs) > 0 {
		err := s.findErrs[0]
		s.findErrs = s.findErrs[1:]
		return nil, err
	}
	return s.wrap(s.nodes[loc]), nil
}

func (s *Session) wrap(nodes []*Node) []session.Element {
	elements := make([]session.Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &element{s: s, n: n})
	}
	return elements
}

type element struct {
	s *Session
	n *Node
}

func (e *element) FindAll(ctx context.Context, loc locator.Locator) ([]session.Element, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if e.s.closed {
		return nil, session.ErrClosed
	}
	return e.s.wrap(e.n.Children[loc]), nil
}

func (e *element) Click(ctx context.Context) error {
	e.s.mu.Lock()
	if e.s.closed {
		e.s.mu.Unlock()
		return session.ErrClosed
	}
	if !e.n.Visible {
		e.s.mu.Unlock()
		return fmt.Errorf("element %q is not visible", e.n.Text)
	}
	e.n.clicks++
	hook := e.n.OnClick
	e.s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

func (e *element) Type(ctx context.Context, text string) error {
	e.s.mu.Lock()
	if e.s.closed {
		e.s.mu.Unlock()
		return session.ErrClosed
	}
	e.n.Value += text
	value := e.n.Value
	hook := e.n.OnType
	e.s.mu.Unlock()

	if hook != nil {
		hook(value)
	}
	return nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if e.s.closed {
		return "", session.ErrClosed
	}
	return e.n.Text, nil
}

func (e *element) IsVisible(ctx context.Context) (bool, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if e.s.closed {
		return false, session.ErrClosed
	}
	return e.n.Visible, nil
}
