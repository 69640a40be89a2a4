package combiner

import (
	"strings"
	"testing"

	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/Drolfothesgnir/hintstack/wire"
	"github.com/stretchr/testify/require"
)

func TestParameterHandler(t *testing.T) {
	w := wire.NewWriter(0)
	w.WriteUint16(HintMessageID)

	var h ParameterHandler
	h.Setup(w)

	base, err := h.SetElementParameters([]param.Parameter{param.String{Value: "a"}, param.Item{ItemType: 5}})
	require.NoError(t, err)
	require.Zero(t, base)
	require.Equal(t, 1, h.Mapped(1))

	id, err := h.AddString([]byte("chunk"))
	require.NoError(t, err)
	require.Equal(t, 2, id)

	base, err = h.SetElementParameters([]param.Parameter{param.NewKeybind(3)})
	require.NoError(t, err)
	require.Equal(t, 3, base)
	require.Equal(t, 3, h.Mapped(0))

	v, err := param.Linear(0, 1, 1)
	require.NoError(t, err)
	id, err = h.AddAnimated(&param.Animated{Value: v}, 2, 1)
	require.NoError(t, err)
	require.Equal(t, 4, id)

	require.NoError(t, h.Finish())

	r := wire.NewReader(w.Bytes())
	msg, err := r.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, HintMessageID, msg)

	count, err := r.ReadInt32()
	require.NoError(t, err)
	require.EqualValues(t, 5, count)

	var types []param.Type
	for range count {
		p, err := param.Decode(r)
		require.NoError(t, err)
		types = append(types, p.Type())
	}
	require.Equal(t, []param.Type{
		param.TypeText, param.TypeItem, param.TypeText, param.TypeKeybind, param.TypeAnimationCurve,
	}, types)
	require.Zero(t, r.Remaining())
}

func TestParameterHandler_FailedElementWritesNothing(t *testing.T) {
	w := wire.NewWriter(0)

	var h ParameterHandler
	h.Setup(w)
	before := w.Len()

	_, err := h.SetElementParameters([]param.Parameter{
		param.String{Value: "ok"},
		param.String{Value: strings.Repeat("x", wire.MaxStringLength+1)},
	})
	require.ErrorIs(t, err, wire.ErrStringTooLong)
	require.Equal(t, before, w.Len())
	require.Zero(t, h.Count())
}

func TestParameterHandler_EmptyGetsPlaceholder(t *testing.T) {
	w := wire.NewWriter(0)

	var h ParameterHandler
	h.Setup(w)
	_, err := h.SetElementParameters(nil)
	require.NoError(t, err)
	require.NoError(t, h.Finish())

	r := wire.NewReader(w.Bytes())
	count, err := r.ReadInt32()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	p, err := param.Decode(r)
	require.NoError(t, err)
	require.Equal(t, param.String{}, p)
}
