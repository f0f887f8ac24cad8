package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

const (
	defaultItemWeight = 1
	defaultItemType   = "misc"
)

// ItemTemplate is an immutable catalog entry loaded from content. Instances
// are stamped from it with NewItemInstance; mutating an instance never
// touches the template.
type ItemTemplate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Weight      int    `json:"weight"`
	Type        string `json:"type"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
}

// itemAttributes mirrors ItemTemplate with pointer fields so absent
// attributes can be told apart from zero values when applying defaults.
type itemAttributes struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Weight      *int    `json:"weight"`
	Type        *string `json:"type"`
	Attack      *int    `json:"attack"`
	Defense     *int    `json:"defense"`
}

// UnmarshalJSON accepts either a flat attribute object or the legacy content
// form, an ordered list of single-entry attribute maps. Unspecified
// attributes take their documented defaults (weight=1, type="misc",
// attack=0, defense=0).
func (t *ItemTemplate) UnmarshalJSON(b []byte) error {
	var attrs itemAttributes
	if err := json.Unmarshal(b, &attrs); err != nil {
		var entries []map[string]json.RawMessage
		if listErr := json.Unmarshal(b, &entries); listErr != nil {
			return err
		}
		merged := map[string]json.RawMessage{}
		for _, entry := range entries {
			for k, v := range entry {
				merged[k] = v
			}
		}
		data, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &attrs); err != nil {
			return err
		}
	}

	*t = ItemTemplate{
		Weight: defaultItemWeight,
		Type:   defaultItemType,
	}
	if attrs.Name != nil {
		t.Name = *attrs.Name
	}
	if attrs.Description != nil {
		t.Description = *attrs.Description
	}
	if attrs.Weight != nil {
		t.Weight = *attrs.Weight
	}
	if attrs.Type != nil {
		t.Type = *attrs.Type
	}
	if attrs.Attack != nil {
		t.Attack = *attrs.Attack
	}
	if attrs.Defense != nil {
		t.Defense = *attrs.Defense
	}
	return nil
}

// Validate satisfies storage.ValidatingSpec.
func (t *ItemTemplate) Validate() error {
	el := errors.NewErrorList()

	if t.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if t.Description == "" {
		el.Add(fmt.Errorf("item description is required"))
	}
	if t.Weight < 0 {
		el.Add(fmt.Errorf("item weight cannot be negative"))
	}

	return el.Err()
}

// ItemInstance is a per-room or per-inventory copy of a template.
type ItemInstance struct {
	TemplateId  string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Weight      int    `json:"weight"`
	Type        string `json:"type"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
}

func NewItemInstance(templateId string, t *ItemTemplate) *ItemInstance {
	return &ItemInstance{
		TemplateId:  templateId,
		Name:        t.Name,
		Description: t.Description,
		Weight:      t.Weight,
		Type:        t.Type,
		Attack:      t.Attack,
		Defense:     t.Defense,
	}
}

// MatchName reports whether name matches this item (case-insensitive, exact).
func (i *ItemInstance) MatchName(name string) bool {
	return strings.EqualFold(i.Name, name)
}
