package game

import (
	"encoding/json"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestItemTemplateUnmarshal(t *testing.T) {
	tests := map[string]struct {
		input      string
		expErr     bool
		expName    string
		expWeight  int
		expType    string
		expAttack  int
		expDefense int
	}{
		"flat object": {
			input:     `{"name":"Sword","description":"Sharp.","weight":3,"type":"weapon","attack":5}`,
			expName:   "Sword",
			expWeight: 3,
			expType:   "weapon",
			expAttack: 5,
		},
		"attribute list": {
			input:      `[{"name":"Shield"},{"description":"Sturdy."},{"weight":4},{"type":"armor"},{"defense":2}]`,
			expName:    "Shield",
			expWeight:  4,
			expType:    "armor",
			expDefense: 2,
		},
		"defaults applied": {
			input:     `{"name":"Pebble","description":"Small."}`,
			expName:   "Pebble",
			expWeight: 1,
			expType:   "misc",
		},
		"explicit zero weight kept": {
			input:     `{"name":"Feather","description":"Light.","weight":0}`,
			expName:   "Feather",
			expWeight: 0,
			expType:   "misc",
		},
		"not an item": {
			input:  `"just a string"`,
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var tmpl ItemTemplate
			err := json.Unmarshal([]byte(tt.input), &tmpl)
			if tt.expErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "name", tmpl.Name, tt.expName)
			testutil.AssertEqual(t, "weight", tmpl.Weight, tt.expWeight)
			testutil.AssertEqual(t, "type", tmpl.Type, tt.expType)
			testutil.AssertEqual(t, "attack", tmpl.Attack, tt.expAttack)
			testutil.AssertEqual(t, "defense", tmpl.Defense, tt.expDefense)
		})
	}
}

func TestItemTemplateValidate(t *testing.T) {
	tests := map[string]struct {
		tmpl   ItemTemplate
		expErr bool
	}{
		"valid": {
			tmpl: ItemTemplate{Name: "Sword", Description: "Sharp.", Weight: 3},
		},
		"missing name": {
			tmpl:   ItemTemplate{Description: "Sharp."},
			expErr: true,
		},
		"missing description": {
			tmpl:   ItemTemplate{Name: "Sword"},
			expErr: true,
		},
		"negative weight": {
			tmpl:   ItemTemplate{Name: "Sword", Description: "Sharp.", Weight: -1},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.tmpl.Validate()
			if tt.expErr && err == nil {
				t.Error("expected error")
			}
			if !tt.expErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestItemInstanceMatchName(t *testing.T) {
	item := NewItemInstance("sword", &ItemTemplate{Name: "Sword", Description: "Sharp.", Weight: 3})

	testutil.AssertEqual(t, "exact", item.MatchName("Sword"), true)
	testutil.AssertEqual(t, "case-insensitive", item.MatchName("sWoRd"), true)
	testutil.AssertEqual(t, "substring rejected", item.MatchName("Swo"), false)
	testutil.AssertEqual(t, "template id copied", item.TemplateId, "sword")
}
