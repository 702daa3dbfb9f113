package httputil

import (
	"fmt"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// Page selects a window of an ordered listing.
type Page struct {
	Offset int `form:"offset" json:"offset"`
	Limit  int `form:"limit"  json:"limit"`
}

// Validate requires a non-negative offset and a limit between 1 and MaxPageLimit.
func (p Page) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Offset, validation.Min(0)),
		validation.Field(&p.Limit, validation.Required, validation.Min(1), validation.Max(MaxPageLimit)),
	)
}

// ParsePage reads offset and limit from the query string. Missing values default
// to offset 0 and DefaultPageLimit.
func ParsePage(c *gin.Context) (Page, error) {
	page := Page{Limit: DefaultPageLimit}
	if err := c.ShouldBindQuery(&page); err != nil {
		return Page{}, fmt.Errorf("invalid pagination parameters: %w", err)
	}
	if err := page.Validate(); err != nil {
		return Page{}, err
	}
	return page, nil
}
