// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package detail

import (
	"github.com/danielhkuo/ideaboard/models"
	"github.com/danielhkuo/ideaboard/render"
)

// Controller tracks whether a single idea is expanded. The zero value is
// not usable; create one with New.
type Controller struct {
	renderer *render.Renderer
	open     bool
	id       models.ID
	view     render.DetailView
}

func New(r *render.Renderer) *Controller {
	return &Controller{renderer: r}
}

// Open shows idea, replacing any idea already open
func (c *Controller) Open(idea models.Idea) {
	c.open = true
	c.id = idea.ID
	c.view = c.renderer.Detail(idea)
}

func (c *Controller) Close() {
	c.open = false
	c.id = ""
	c.view = render.DetailView{}
}

// Current returns the id of the open idea
func (c *Controller) Current() (models.ID, bool) {
	return c.id, c.open
}

// IsOpen reports whether id is the idea being shown
func (c *Controller) IsOpen(id models.ID) bool {
	return c.open && c.id == id
}

// Refresh re-projects idea when it is the one being shown. Any other idea,
// or a closed controller, is left alone.
func (c *Controller) Refresh(idea models.Idea) bool {
	if !c.IsOpen(idea.ID) {
		return false
	}
	c.view = c.renderer.Detail(idea)
	return true
}

// View returns the projection of the open idea
func (c *Controller) View() (render.DetailView, bool) {
	return c.view, c.open
}
