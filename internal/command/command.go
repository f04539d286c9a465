// Package command holds the actions the menus and toolbar invoke. Each
// command carries its own label and icon so the shell can render it without
// knowing what it does.
package command

import (
	"fmt"
	"net/url"

	"fyne.io/fyne/v2"
)

// Command is an invokable UI action.
type Command interface {
	Label() string
	Icon() fyne.Resource
	Execute() error
}

// URLOpener hands a URL to the operating system's default handler.
// fyne.App satisfies it.
type URLOpener interface {
	OpenURL(u *url.URL) error
}

// ShowURLCommand opens a fixed URL.
type ShowURLCommand struct {
	opener URLOpener
	label  string
	target *url.URL
	icon   fyne.Resource
}

// NewShowURLCommand builds a command that opens rawURL with opener.
func NewShowURLCommand(opener URLOpener, label, rawURL string, icon fyne.Resource) (*ShowURLCommand, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse command url: %w", err)
	}
	return &ShowURLCommand{
		opener: opener,
		label:  label,
		target: target,
		icon:   icon,
	}, nil
}

func (c *ShowURLCommand) Label() string       { return c.label }
func (c *ShowURLCommand) Icon() fyne.Resource { return c.icon }

// URL returns a copy of the target.
func (c *ShowURLCommand) URL() *url.URL {
	u := *c.target
	return &u
}

// Execute opens the URL. A failure to launch a handler is returned as is.
func (c *ShowURLCommand) Execute() error {
	return c.opener.OpenURL(c.URL())
}

// Func adapts a plain function to Command.
type Func struct {
	label string
	icon  fyne.Resource
	fn    func() error
}

// NewFunc returns a command running fn. icon may be nil.
func NewFunc(label string, icon fyne.Resource, fn func() error) *Func {
	return &Func{label: label, icon: icon, fn: fn}
}

func (f *Func) Label() string       { return f.label }
func (f *Func) Icon() fyne.Resource { return f.icon }

func (f *Func) Execute() error {
	if f.fn == nil {
		return nil
	}
	return f.fn()
}
