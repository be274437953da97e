package dotenv

import (
	"reflect"
	"slices"
	"testing"
)

func pairList(kv ...*string) []Pair {
	var out []Pair
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, Pair{Key: *kv[i], Value: kv[i+1]})
	}
	return out
}

func TestResolveVariables(t *testing.T) {
	base := EnvFromMap(map[string]string{"A": "env", "HOME": "/home/me"})

	tests := []struct {
		name     string
		input    []Pair
		override bool
		want     map[string]string
	}{
		{
			name:     "file wins with override",
			input:    pairList(Ptr("A"), Ptr("file"), Ptr("B"), Ptr("${A}")),
			override: true,
			want:     map[string]string{"A": "file", "B": "file"},
		},
		{
			name:     "environment wins without override",
			input:    pairList(Ptr("A"), Ptr("file"), Ptr("B"), Ptr("${A}")),
			override: false,
			want:     map[string]string{"A": "file", "B": "env"},
		},
		{
			name:     "self reference with override",
			input:    pairList(Ptr("A"), Ptr("${A}-x"), Ptr("A"), Ptr("${A}+y")),
			override: true,
			want:     map[string]string{"A": "env-x+y"},
		},
		{
			name:     "self reference without override",
			input:    pairList(Ptr("A"), Ptr("${A}-x"), Ptr("A"), Ptr("${A}+y")),
			override: false,
			want:     map[string]string{"A": "env+y"},
		},
		{
			name:     "earlier keys visible",
			input:    pairList(Ptr("DIR"), Ptr("${HOME}/app"), Ptr("LOG"), Ptr("${DIR}/log")),
			override: false,
			want:     map[string]string{"DIR": "/home/me/app", "LOG": "/home/me/app/log"},
		},
		{
			name:     "later keys invisible",
			input:    pairList(Ptr("X"), Ptr("${Y:-none}"), Ptr("Y"), Ptr("y")),
			override: true,
			want:     map[string]string{"X": "none", "Y": "y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveVariables(slices.Values(tt.input), tt.override, base)
			if !reflect.DeepEqual(got.StringMap(), tt.want) {
				t.Errorf("ResolveVariables() = %v, want %v", got.StringMap(), tt.want)
			}
		})
	}
}

func TestResolveVariablesNilValues(t *testing.T) {
	input := pairList(Ptr("A"), nil, Ptr("B"), Ptr("${A:-default}"), Ptr("C"), Ptr("${Z:-default}"))
	for _, override := range []bool{true, false} {
		got := ResolveVariables(slices.Values(input), override, MapEnv{})
		if v, ok := got.Get("A"); !ok || v != nil {
			t.Errorf("override=%v: A = %v, %v; want nil, true", override, v, ok)
		}
		if v, _ := got.Get("B"); deref(v) != "" {
			t.Errorf("override=%v: B = %q, want empty", override, deref(v))
		}
		if v, _ := got.Get("C"); deref(v) != "default" {
			t.Errorf("override=%v: C = %q, want default", override, deref(v))
		}
	}
}

func TestResolveVariablesKeepsFirstPosition(t *testing.T) {
	input := pairList(Ptr("A"), Ptr("1"), Ptr("B"), Ptr("2"), Ptr("A"), Ptr("3"))
	got := ResolveVariables(slices.Values(input), true, MapEnv{})

	if keys := got.Keys(); !slices.Equal(keys, []string{"A", "B"}) {
		t.Errorf("keys = %v, want [A B]", keys)
	}
	if v, _ := got.Get("A"); deref(v) != "3" {
		t.Errorf("A = %q, want 3", deref(v))
	}
}

func TestValuesMergeAndClone(t *testing.T) {
	a := NewValues()
	a.Set("X", Ptr("1"))
	a.Set("Y", Ptr("2"))

	b := a.Clone()
	b.Set("Y", Ptr("changed"))
	b.Set("Z", nil)

	if v, _ := a.Get("Y"); deref(v) != "2" {
		t.Errorf("clone shares storage: a.Y = %q", deref(v))
	}

	a.Merge(b)
	if keys := a.Keys(); !slices.Equal(keys, []string{"X", "Y", "Z"}) {
		t.Errorf("keys after merge = %v", keys)
	}
	if m := a.StringMap(); len(m) != 2 || m["Y"] != "changed" {
		t.Errorf("StringMap() = %v", m)
	}

	var nilValues *Values
	if nilValues.Len() != 0 || nilValues.Keys() != nil {
		t.Errorf("nil Values should be empty")
	}
}
