package browser

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Session is one logged-in browsing context. Every lookup waits up to the
// step timeout for its target to appear.
type Session struct {
	context *rod.Browser
	page    *rod.Page
	timeout time.Duration
}

func (s *Session) step() *rod.Page {
	return s.page.Timeout(s.timeout)
}

// Navigate opens url and waits for the load event.
func (s *Session) Navigate(url string) error {
	p := s.step()
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}
	return nil
}

// WaitLoad waits for the current document's load event.
func (s *Session) WaitLoad() error {
	if err := s.step().WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}
	return nil
}

// ByLabel finds the form control whose <label> (or aria-label) contains text.
func (s *Session) ByLabel(text string) (*rod.Element, error) {
	el, err := s.step().ElementByJS(rod.Eval(jsByLabel, text))
	if err != nil {
		return nil, fmt.Errorf("no control labelled %q: %w", text, err)
	}
	return el, nil
}

// ByPlaceholder finds the input whose placeholder contains text.
func (s *Session) ByPlaceholder(text string) (*rod.Element, error) {
	el, err := s.step().ElementByJS(rod.Eval(jsByAttr, "placeholder", text))
	if err != nil {
		return nil, fmt.Errorf("no input with placeholder %q: %w", text, err)
	}
	return el, nil
}

// ByTitle finds the element whose title attribute contains text.
func (s *Session) ByTitle(text string) (*rod.Element, error) {
	el, err := s.step().ElementByJS(rod.Eval(jsByAttr, "title", text))
	if err != nil {
		return nil, fmt.Errorf("no element titled %q: %w", text, err)
	}
	return el, nil
}

// ByRole finds a visible link, button or textbox whose accessible name
// contains name.
func (s *Session) ByRole(role, name string) (*rod.Element, error) {
	return s.ByRoleIn("", role, name)
}

// ByRoleIn is ByRole restricted to descendants of the first element matching
// scope. Landmark roles such as "banner" are accepted as scope.
func (s *Session) ByRoleIn(scope, role, name string) (*rod.Element, error) {
	el, err := s.step().ElementByJS(rod.Eval(jsByRole, scope, role, name))
	if err != nil {
		return nil, fmt.Errorf("no %s named %q: %w", role, name, err)
	}
	return el, nil
}

// Fill replaces the value of an input.
func (s *Session) Fill(el *rod.Element, value string) error {
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("failed to focus input: %w", err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("failed to type into input: %w", err)
	}
	return nil
}

// Click clicks el without waiting for a navigation (tabs, menus).
func (s *Session) Click(el *rod.Element) error {
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}
	return nil
}

// ClickAndWait clicks el and waits for the navigation it starts to load.
func (s *Session) ClickAndWait(el *rod.Element) error {
	wait := s.step().WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}
	wait()
	return nil
}

// Element waits for the first element matching selector.
func (s *Session) Element(selector string) (*rod.Element, error) {
	el, err := s.step().Element(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q never appeared: %w", selector, err)
	}
	return el, nil
}

// WaitSelector waits until an element matching selector exists.
func (s *Session) WaitSelector(selector string) error {
	if _, err := s.step().Element(selector); err != nil {
		return fmt.Errorf("selector %q never appeared: %w", selector, err)
	}
	return nil
}

// InnerTexts returns the innerText of every element matching selector, in
// document order. It does not wait for matches, so a list page without
// rows yields an empty slice.
func (s *Session) InnerTexts(selector string) ([]string, error) {
	// Evaluated in one round trip: rod's per-element Text() is unreliable
	// for elements outside the viewport.
	val, err := s.step().Eval(jsInnerTexts, selector)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", selector, err)
	}

	var texts []string
	raw, _ := val.Value.MarshalJSON()
	if err := json.Unmarshal(raw, &texts); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", selector, err)
	}
	return texts, nil
}

// OuterHTML returns the outerHTML of the first element matching selector.
func (s *Session) OuterHTML(selector string) (string, error) {
	el, err := s.step().Element(selector)
	if err != nil {
		return "", fmt.Errorf("selector %q never appeared: %w", selector, err)
	}
	html, err := el.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read html of %q: %w", selector, err)
	}
	return html, nil
}

// HasVisible reports whether some element matching selector is rendered.
func (s *Session) HasVisible(selector string) (bool, error) {
	val, err := s.step().Eval(jsHasVisible, selector)
	if err != nil {
		return false, fmt.Errorf("failed to query %q: %w", selector, err)
	}
	return val.Value.Bool(), nil
}

// Close closes the page and discards the incognito context.
func (s *Session) Close() error {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.context == nil {
		return nil
	}
	return s.context.Close()
}
