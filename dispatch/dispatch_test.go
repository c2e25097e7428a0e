// Package dispatch_test contains unit tests for registry lookup and
// invocation capture.
package dispatch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/matcli/dispatch"
	"github.com/katalvlaran/matcli/schema"
)

func entry(name string, kind dispatch.Kind, fn dispatch.Callable) *dispatch.Entry {
	return &dispatch.Entry{
		Name:   name,
		Schema: &schema.CallSchema{Name: name},
		Kind:   kind,
		Fn:     fn,
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg := dispatch.Registry{
		"a.one": entry("a.one", dispatch.KindStandard, func([]any, map[string]any) (any, error) { return 1, nil }),
	}

	e, err := reg.Resolve("a.one")
	require.NoError(t, err)
	require.Equal(t, "a.one", e.Name)

	_, err = reg.Resolve("a.two")
	require.ErrorIs(t, err, dispatch.ErrFunctionNotFound)
}

func TestInvoke_Standard(t *testing.T) {
	e := entry("t.add", dispatch.KindStandard, func(pos []any, kw map[string]any) (any, error) {
		return pos[0].(int) + pos[1].(int), nil
	})

	got, err := dispatch.Invoke(e, &schema.Resolved{Pos: []any{2, 3}}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 5, got)
}

func TestInvoke_DirectReceivesWholeList(t *testing.T) {
	e := entry("t.stack", dispatch.KindDirect, func(pos []any, kw map[string]any) (any, error) {
		list := pos[0].([]any)
		return len(list), nil
	})

	got, err := dispatch.Invoke(e, &schema.Resolved{Pos: []any{"a", "b", "c"}}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 3, got)
}

func TestInvoke_ErrorBecomesInvocation(t *testing.T) {
	boom := errors.New("singular matrix")
	e := entry("t.fail", dispatch.KindStandard, func([]any, map[string]any) (any, error) {
		return nil, boom
	})

	_, err := dispatch.Invoke(e, &schema.Resolved{}, zap.NewNop())
	require.ErrorIs(t, err, dispatch.ErrInvocation)
	require.Contains(t, err.Error(), "singular matrix")
}

func TestInvoke_PanicBecomesInvocation(t *testing.T) {
	e := entry("t.panic", dispatch.KindStandard, func([]any, map[string]any) (any, error) {
		panic("mat: dimension mismatch")
	})

	_, err := dispatch.Invoke(e, &schema.Resolved{}, zap.NewNop())
	require.ErrorIs(t, err, dispatch.ErrInvocation)
	require.Contains(t, err.Error(), "dimension mismatch")
}

func TestInvoke_VoidReturnRendersFirstArgument(t *testing.T) {
	buf := []int{3, 1, 2}
	e := entry("t.sortinplace", dispatch.KindStandard, func(pos []any, _ map[string]any) (any, error) {
		s := pos[0].([]int)
		s[0], s[1], s[2] = 1, 2, 3 // mutate in place, return nothing
		return nil, nil
	})

	got, err := dispatch.Invoke(e, &schema.Resolved{Pos: []any{buf}}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestInvoke_VoidReturnNoArgsStaysNil(t *testing.T) {
	e := entry("t.noop", dispatch.KindStandard, func([]any, map[string]any) (any, error) {
		return nil, nil
	})

	got, err := dispatch.Invoke(e, &schema.Resolved{}, zap.NewNop())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRegistry_Validate(t *testing.T) {
	reg := dispatch.Registry{
		"bad": {Name: "bad", Schema: &schema.CallSchema{Name: "bad"}},
	}
	require.ErrorIs(t, reg.Validate(), schema.ErrBadSchema)
}
