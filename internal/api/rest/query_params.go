package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/XinhoGOD/ARCHVTEL/internal/api/shared/constants"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

func (o Order) Desc() bool {
	return o == OrderDesc
}

func (o Order) Asc() bool {
	return o == OrderAsc
}

// allowedSortColumns whitelists sortBy values; the value doubles as the
// column the store orders by
var allowedSortColumns = map[string]struct{}{
	"percent_started_change":  {},
	"percent_rostered_change": {},
	"percent_rostered":        {},
	"percent_started":         {},
	"adds":                    {},
	"drops":                   {},
	"player_name":             {},
	"semana":                  {},
	"timestamp":               {},
}

// ListPlayersQueryParams holds query parameters for GET /players
type ListPlayersQueryParams struct {
	// Pagination
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`

	// Sorting (applied server-side before deduplication)
	SortBy    string `form:"sortBy,default=percent_started_change"`
	SortOrder Order  `form:"sortOrder,default=desc"`

	// Filters
	Player   string `form:"player"`
	Team     string `form:"team"`
	Position string `form:"position"`
	Semana   int    `form:"semana"`
}

// ParseListPlayersQuery parses and validates query parameters for GET /players
func ParseListPlayersQuery(c *gin.Context) (*ListPlayersQueryParams, error) {
	var params ListPlayersQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Page < 1 {
		return nil, fmt.Errorf("page must be >= 1")
	}
	if params.Limit < 1 {
		return nil, fmt.Errorf("limit must be >= 1")
	}
	if params.Limit > constants.MAX_PAGE_LIMIT {
		params.Limit = constants.MAX_PAGE_LIMIT
	}
	if params.Semana < 0 {
		return nil, fmt.Errorf("semana must be >= 0")
	}

	if _, ok := allowedSortColumns[params.SortBy]; !ok {
		return nil, fmt.Errorf("unsupported sortBy value %q", params.SortBy)
	}
	if !params.SortOrder.Asc() && !params.SortOrder.Desc() {
		return nil, fmt.Errorf("sortOrder must be asc or desc")
	}

	return &params, nil
}
