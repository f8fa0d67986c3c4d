// Package view draws render.View values in the terminal with lipgloss.
//
// It is the terminal counterpart of render.Markup: the render package
// decides what a view contains, this package decides how it looks. Nothing
// here holds state; the tui model passes the selection and the widgets it
// owns.
//
// # Targets
//
// Links and actions in a view are selectable. [Targets] lists them in
// document order, and [Content] highlights the one at the selected index,
// so both must walk a view the same way.
package view
