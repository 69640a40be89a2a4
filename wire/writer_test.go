package wire

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_Primitives(t *testing.T) {
	w := NewWriter(0)
	w.WriteUint8(7)
	w.WriteBool(true)
	w.WriteUint16(0x0102)
	w.WriteInt32(-2)
	w.WriteFloat32(1.5)
	w.WriteFloat64(-0.25)

	r := NewReader(w.Bytes())

	b, err := r.ReadUint8()
	require.NoError(t, err)
	require.Equal(t, byte(7), b)

	ok, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, ok)

	u, err := r.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0102), u)

	i, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-2), i)

	f, err := r.ReadFloat32()
	require.NoError(t, err)
	require.Equal(t, float32(1.5), f)

	d, err := r.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, -0.25, d)

	require.Zero(t, r.Remaining())

	_, err = r.ReadUint8()
	require.ErrorIs(t, err, ErrShortBuffer)
}

func TestWriter_LittleEndianLayout(t *testing.T) {
	w := NewWriter(0)
	w.WriteUint16(0x0102)
	w.WriteInt32(1)
	require.Equal(t, []byte{0x02, 0x01, 0x01, 0x00, 0x00, 0x00}, w.Bytes())
}

func TestWriter_String(t *testing.T) {
	w := NewWriter(0)
	require.NoError(t, w.WriteString("abc"))
	require.NoError(t, w.WriteNullableString(nil))
	require.NoError(t, w.WriteString(""))

	require.Equal(t, []byte{4, 0, 'a', 'b', 'c', 0, 0, 1, 0}, w.Bytes())

	r := NewReader(w.Bytes())
	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "abc", s)

	null, err := r.ReadNullableString()
	require.NoError(t, err)
	require.Nil(t, null)

	empty, err := r.ReadNullableString()
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Equal(t, "", *empty)
}

func TestWriter_StringTooLong(t *testing.T) {
	w := NewWriter(0)
	require.NoError(t, w.WriteString(strings.Repeat("x", MaxStringLength)))

	err := w.WriteString(strings.Repeat("x", MaxStringLength+1))
	require.ErrorIs(t, err, ErrStringTooLong)

	err = w.WriteBytes(make([]byte, MaxStringLength+1))
	require.ErrorIs(t, err, ErrStringTooLong)
}

func TestWriter_PutInt32At(t *testing.T) {
	w := NewWriter(0)
	w.WriteUint8(9)
	pos := w.Len()
	w.WriteInt32(0)
	w.WriteUint8(9)

	w.PutInt32At(pos, 258)
	require.Equal(t, []byte{9, 2, 1, 0, 0, 9}, w.Bytes())
}

func TestWriter_FloatAsString(t *testing.T) {
	testCases := []struct {
		name string
		in   float32
		want string
	}{
		{"Integer", 10, "10"},
		{"Fraction", 1.5, "1.5"},
		{"Negative", -20.25, "-20.25"},
		{"NegativeZero", float32(math.Copysign(0, -1)), "0"},
		{"NaN", float32(math.NaN()), "0"},
		{"Large", 32768, "32768"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWriter(0)
			w.WriteFloatAsString(tc.in)
			require.Equal(t, tc.want, string(w.Bytes()))
		})
	}
}

func TestWriter_FormatItemNoBreak(t *testing.T) {
	var zones NoBreaks
	w := NewWriter(0)
	w.WriteRaw("ab")
	w.WriteFormatItemNoBreak(12, &zones)
	w.WriteRune('é')
	w.WriteFormatItem(3)

	require.Equal(t, "ab{12}é{3}", string(w.Bytes()))
	require.Equal(t, NoBreaks{{Start: 2, Length: 4}}, zones)
	require.Equal(t, 4, FormatItemLength(12))
	require.Equal(t, 3, FormatItemLength(0))
	require.Equal(t, 12, FormatItemLength(2147483647))
}

func TestNoBreaks_Add(t *testing.T) {
	var zones NoBreaks
	zones.Add(0, 2)
	zones.Add(5, 0)
	zones.Add(4, 3)
	zones.Add(6, 4)

	require.Equal(t, NoBreaks{{0, 2}, {4, 6}}, zones)
	require.Equal(t, 8, zones.Bytes())

	zones.Shift(10)
	require.Equal(t, 10, zones[0].Start)
	require.Equal(t, 20, zones[1].End())
}
