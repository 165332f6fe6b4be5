package plugin

import (
	"reflect"
	"testing"
)

func TestEditApply(t *testing.T) {
	tests := []struct {
		name  string
		edit  Edit
		words []string
		want  []string
	}{
		{
			name:  "no edits",
			words: []string{"elif", "else"},
			want:  []string{"elif", "else"},
		},
		{
			name:  "append",
			edit:  Edit{Add: []string{"elsewise"}},
			words: []string{"elif", "else"},
			want:  []string{"elif", "else", "elsewise"},
		},
		{
			name:  "remove",
			edit:  Edit{Remove: []string{"of"}},
			words: []string{"elif", "of", "else"},
			want:  []string{"elif", "else"},
		},
		{
			name:  "add existing word once",
			edit:  Edit{Add: []string{"else", "new"}},
			words: []string{"elif", "else"},
			want:  []string{"elif", "else", "new"},
		},
		{
			name:  "remove wins over add",
			edit:  Edit{Add: []string{"x"}, Remove: []string{"x"}},
			words: []string{"elif"},
			want:  []string{"elif"},
		},
		{
			name:  "duplicate input collapsed",
			edit:  Edit{},
			words: []string{"a", "a", "b"},
			want:  []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.edit.Apply(tt.words)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply(%v) = %v, want %v", tt.words, got, tt.want)
			}
		})
	}
}

func TestChangesEmpty(t *testing.T) {
	if !(Changes{}).Empty() {
		t.Error("zero Changes should be empty")
	}

	c := Changes{Operators: Edit{Remove: []string{"->"}}}
	if c.Empty() {
		t.Error("Changes with a removal should not be empty")
	}
}
