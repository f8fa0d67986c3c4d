// Package nav tracks which tab, and therefore which view, is active. The
// tab set and the tab-to-view mapping are fixed.
package nav

import (
	"fmt"

	"github.com/Iron-Ham/workorders/internal/errors"
	"github.com/Iron-Ham/workorders/internal/render"
)

// Tab names a tab control.
type Tab string

const (
	TabOrders   Tab = "orders"
	TabOrder    Tab = "order"
	TabProperty Tab = "property"
	TabProfile  Tab = "profile"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabOrders, TabOrder, TabProperty, TabProfile}

var views = map[Tab]render.ViewID{
	TabOrders:   render.ViewOrders,
	TabOrder:    render.ViewOrder,
	TabProperty: render.ViewProperty,
	TabProfile:  render.ViewProfile,
}

var labels = map[Tab]string{
	TabOrders:   "Orders",
	TabOrder:    "Order",
	TabProperty: "Property",
	TabProfile:  "Profile",
}

// ViewFor returns the view shown by tab.
func ViewFor(tab Tab) (render.ViewID, bool) {
	id, ok := views[tab]
	return id, ok
}

// Label returns the tab caption.
func (t Tab) Label() string {
	return labels[t]
}

// Parse validates a tab name.
func Parse(name string) (Tab, error) {
	tab := Tab(name)
	if _, ok := views[tab]; !ok {
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownTab, name)
	}
	return tab, nil
}

// Controller holds the active tab. The zero value has no active tab.
type Controller struct {
	active Tab
}

// Active returns the active tab, or "" before the first activation.
func (c *Controller) Active() Tab {
	return c.active
}

// ActiveView returns the view of the active tab.
func (c *Controller) ActiveView() render.ViewID {
	return views[c.active]
}

// IsActive reports whether tab is the active tab.
func (c *Controller) IsActive(tab Tab) bool {
	return c.active == tab
}

// Activate makes tab the single active tab and returns its view. Unknown
// tabs are rejected and the active tab is left unchanged. Callers re-render
// the returned view on every activation, including re-activation of the
// tab that is already active.
func (c *Controller) Activate(tab Tab) (render.ViewID, error) {
	id, ok := views[tab]
	if !ok {
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownTab, tab)
	}
	c.active = tab
	return id, nil
}

// Next returns the tab after the active one, wrapping around.
func (c *Controller) Next() Tab {
	return c.step(1)
}

// Prev returns the tab before the active one, wrapping around.
func (c *Controller) Prev() Tab {
	return c.step(-1)
}

func (c *Controller) step(delta int) Tab {
	idx := 0
	for i, t := range Tabs {
		if t == c.active {
			idx = i
			break
		}
	}
	n := len(Tabs)
	return Tabs[((idx+delta)%n+n)%n]
}

// PageTabs describes the tab controls for the markup adapter.
func (c *Controller) PageTabs() []render.PageTab {
	out := make([]render.PageTab, 0, len(Tabs))
	for _, t := range Tabs {
		out = append(out, render.PageTab{Name: string(t), Label: t.Label(), Active: t == c.active})
	}
	return out
}
