// Package ui models the board page: which elements are shown, which dialog
// is open, form values, the rendered ad grid and the notice to display.
//
// Operations on element ids the page does not have are ignored.
package ui

import (
	"html/template"
	"sync"
	"time"
)

// Element ids.
const (
	LoginButton  = "openSigninBtn"
	Profile      = "profile"
	UserName     = "userName"
	SellButton   = "sellBtn"
	AdsContainer = "adsContainer"

	SignupForm = "signupForm"
	SigninForm = "signinForm"
	PostAdForm = "postAdForm"

	SigninModal = "signinModal"
	SignupModal = "signupModal"
	PostAdModal = "postAdModal"
)

// Form field ids.
const (
	SignupFirstName = "signupFirstName"
	SignupLastName  = "signupLastName"
	SignupEmail     = "signupEmail"
	SignupPassword  = "signupPassword"
	SigninEmail     = "signinEmail"
	SigninPassword  = "signinPassword"
	FieldCategory   = "category"
	FieldTitle      = "title"
	FieldDesc       = "description"
	FieldPrice      = "price"
	FieldImageFile  = "imageFile"
)

// Display values.
const (
	DisplayNone        = "none"
	DisplayFlex        = "flex"
	DisplayInlineBlock = "inline-block"
)

var formFields = map[string][]string{
	SignupForm: {SignupFirstName, SignupLastName, SignupEmail, SignupPassword},
	SigninForm: {SigninEmail, SigninPassword},
	PostAdForm: {FieldCategory, FieldTitle, FieldDesc, FieldPrice, FieldImageFile},
}

// focusTarget is the field focused after a dialog opens.
var focusTarget = map[string]string{
	SignupModal: SignupFirstName,
	SigninModal: SigninEmail,
}

// FocusField returns the field a dialog focuses when opened, or "".
func FocusField(modal string) string {
	return focusTarget[modal]
}

// DefaultElements lists every element the board page has.
func DefaultElements() []string {
	return []string{
		LoginButton, Profile, UserName, SellButton, AdsContainer,
		SignupForm, SigninForm, PostAdForm,
		SignupFirstName, SignupLastName, SignupEmail, SignupPassword,
		SigninEmail, SigninPassword,
		FieldCategory, FieldTitle, FieldDesc, FieldPrice, FieldImageFile,
		SigninModal, SignupModal, PostAdModal,
	}
}

type element struct {
	display string
	text    string
	value   string
	html    template.HTML
	open    bool
}

// Page is safe for concurrent use.
type Page struct {
	mu       sync.Mutex
	elements map[string]*element
	focused  string
	flash    *Notice

	focusDelay time.Duration
	afterFunc  func(d time.Duration, f func())
}

type PageOption func(*Page)

// WithElements replaces the default element set.
func WithElements(ids ...string) PageOption {
	return func(p *Page) {
		p.elements = make(map[string]*element, len(ids))
		for _, id := range ids {
			p.elements[id] = &element{}
		}
	}
}

func WithFocusDelay(d time.Duration) PageOption {
	return func(p *Page) { p.focusDelay = d }
}

// WithAfterFunc replaces time.AfterFunc for deferred actions.
func WithAfterFunc(fn func(d time.Duration, f func())) PageOption {
	return func(p *Page) { p.afterFunc = fn }
}

func NewPage(opts ...PageOption) *Page {
	p := &Page{
		focusDelay: 100 * time.Millisecond,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	WithElements(DefaultElements()...)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Has reports whether the page has an element with id.
func (p *Page) Has(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.elements[id]
	return ok
}

// UpdateUser reflects the session in the header. An empty name means nobody
// is signed in. The sell button stays visible either way; posting checks the
// session.
func (p *Page) UpdateUser(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if name != "" {
		p.setDisplay(LoginButton, DisplayNone)
		p.setDisplay(Profile, DisplayFlex)
		p.setText(UserName, name)
		p.setDisplay(SellButton, DisplayFlex)
		return
	}
	p.setDisplay(LoginButton, DisplayInlineBlock)
	p.setDisplay(Profile, DisplayNone)
	p.setText(UserName, "")
	p.setDisplay(SellButton, DisplayFlex)
}

// Open shows a dialog and, after the focus delay, focuses its first field.
func (p *Page) Open(id string) {
	p.mu.Lock()
	field := p.open(id)
	p.mu.Unlock()
	p.focusLater(field)
}

func (p *Page) Close(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.close(id)
}

// Switch closes current and opens target.
func (p *Page) Switch(current, target string) {
	p.mu.Lock()
	p.close(current)
	field := p.open(target)
	p.mu.Unlock()
	p.focusLater(field)
}

// open shows the dialog and returns the field to focus, if any.
func (p *Page) open(id string) string {
	el, ok := p.elements[id]
	if !ok {
		return ""
	}
	el.open = true
	el.display = DisplayFlex
	return focusTarget[id]
}

func (p *Page) focusLater(field string) {
	if field == "" {
		return
	}
	p.afterFunc(p.focusDelay, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if _, ok := p.elements[field]; ok {
			p.focused = field
		}
	})
}

func (p *Page) close(id string) {
	el, ok := p.elements[id]
	if !ok {
		return
	}
	el.open = false
	el.display = DisplayNone
}

// IsOpen reports whether the dialog id is shown.
func (p *Page) IsOpen(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.elements[id]
	return ok && el.open
}

// Focused returns the id of the focused field, if any.
func (p *Page) Focused() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.focused
}

// SetValue sets a form field.
func (p *Page) SetValue(field, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.elements[field]; ok {
		el.value = value
	}
}

func (p *Page) Value(field string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.elements[field]; ok {
		return el.value
	}
	return ""
}

// ClearForm resets every field of the form. A missing form is ignored.
func (p *Page) ClearForm(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.elements[id]; !ok {
		return
	}
	for _, field := range formFields[id] {
		if el, ok := p.elements[field]; ok {
			el.value = ""
		}
	}
}

// SetHTML replaces the content of a container element.
func (p *Page) SetHTML(id string, html template.HTML) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.elements[id]
	if !ok {
		return false
	}
	el.html = html
	return true
}

// Flash stores a notice to show on the next render.
func (p *Page) Flash(n Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flash = &n
}

// TakeFlash returns and clears the stored notice.
func (p *Page) TakeFlash() *Notice {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.flash
	p.flash = nil
	return n
}

func (p *Page) setDisplay(id, display string) {
	if el, ok := p.elements[id]; ok {
		el.display = display
	}
}

func (p *Page) setText(id, text string) {
	if el, ok := p.elements[id]; ok {
		el.text = text
	}
}

// State is a point-in-time copy of the page, for templates.
type State struct {
	Display map[string]string
	Text    map[string]string
	Values  map[string]string
	Open    map[string]bool
	Ads     template.HTML
	Focused string
}

// Snapshot copies the page state.
func (p *Page) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := State{
		Display: make(map[string]string, len(p.elements)),
		Text:    make(map[string]string),
		Values:  make(map[string]string),
		Open:    make(map[string]bool),
		Focused: p.focused,
	}
	for id, el := range p.elements {
		s.Display[id] = el.display
		if el.text != "" {
			s.Text[id] = el.text
		}
		if el.value != "" {
			s.Values[id] = el.value
		}
		if el.open {
			s.Open[id] = true
		}
	}
	if el, ok := p.elements[AdsContainer]; ok {
		s.Ads = el.html
	}
	return s
}
