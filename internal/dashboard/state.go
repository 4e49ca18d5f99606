// Package dashboard holds the client-side query state machinery: a pure
// reducer over the search/filter/pagination state, a debouncer for
// search-as-you-type, and a sequencer that guarantees the view only ever
// reflects the most recently issued request.
//
// Nothing here renders; the package is framework-agnostic on purpose so any
// frontend (or a TUI, or tests) can drive it.
package dashboard

import (
	"github.com/XinhoGOD/ARCHVTEL/internal/api/shared/constants"
)

// QueryState is the complete input state of the player list view
type QueryState struct {
	Player    string
	Team      string
	Position  string
	Semana    int
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// NewQueryState returns the initial view state
func NewQueryState() QueryState {
	return QueryState{
		Page:      constants.DEFAULT_PAGE,
		Limit:     constants.DEFAULT_PAGE_LIMIT,
		SortBy:    "percent_started_change",
		SortOrder: "desc",
	}
}

// Action is a state transition input for Reduce
type Action interface {
	isAction()
}

// SetPlayerFilter updates the player-name substring filter
type SetPlayerFilter struct{ Player string }

// SetTeamFilter updates the team substring filter
type SetTeamFilter struct{ Team string }

// SetPositionFilter updates the exact position filter
type SetPositionFilter struct{ Position string }

// SetWeek updates the week filter (0 clears it)
type SetWeek struct{ Semana int }

// SetPage moves the pagination cursor
type SetPage struct{ Page int }

// SetSort updates the sort column and direction
type SetSort struct {
	SortBy    string
	SortOrder string
}

// ResetFilters clears every filter and returns to the first page
type ResetFilters struct{}

func (SetPlayerFilter) isAction()   {}
func (SetTeamFilter) isAction()     {}
func (SetPositionFilter) isAction() {}
func (SetWeek) isAction()           {}
func (SetPage) isAction()           {}
func (SetSort) isAction()           {}
func (ResetFilters) isAction()      {}

// Reduce applies one action to the state and returns the next state.
// It is pure: the input state is never mutated. Changing any filter or the
// sort resets the page cursor, since the old cursor points into a result set
// that no longer exists.
func Reduce(state QueryState, action Action) QueryState {
	next := state

	switch a := action.(type) {
	case SetPlayerFilter:
		next.Player = a.Player
		next.Page = constants.DEFAULT_PAGE
	case SetTeamFilter:
		next.Team = a.Team
		next.Page = constants.DEFAULT_PAGE
	case SetPositionFilter:
		next.Position = a.Position
		next.Page = constants.DEFAULT_PAGE
	case SetWeek:
		next.Semana = a.Semana
		next.Page = constants.DEFAULT_PAGE
	case SetSort:
		next.SortBy = a.SortBy
		next.SortOrder = a.SortOrder
		next.Page = constants.DEFAULT_PAGE
	case SetPage:
		if a.Page >= 1 {
			next.Page = a.Page
		}
	case ResetFilters:
		next = NewQueryState()
		next.Limit = state.Limit
	}

	return next
}
