package catalogs

import (
	"encoding/json"
	"strings"

	"github.com/agentstation/boorusync/pkg/constants"
)

// Category is a tag category in the target catalog.
type Category struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Order int    `json:"order" yaml:"order"`
}

// Key returns the category's canonical identity.
func (c Category) Key() CanonicalKey {
	return Key(c.Name)
}

// OriginCategory is the metadata the origin catalog holds for a category.
// It is only used to seed display name, color and order on creation.
type OriginCategory struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// UnmarshalJSON accepts null or missing color and order and substitutes the
// neutral defaults, so every decoded OriginCategory is usable as-is.
func (c *OriginCategory) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  any      `json:"name"`
		Color *string  `json:"color"`
		Order *float64 `json:"order"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = OriginCategory{
		Name:  strings.TrimSpace(scalarString(raw.Name)),
		Color: constants.DefaultCategoryColor,
		Order: constants.DefaultCategoryOrder,
	}
	if raw.Color != nil && *raw.Color != "" {
		c.Color = *raw.Color
	}
	if raw.Order != nil {
		c.Order = int(*raw.Order)
	}
	return nil
}
