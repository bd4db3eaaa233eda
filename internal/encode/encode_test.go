package encode

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randSeq(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = Bases[rng.Intn(len(Bases))]
	}
	return string(b)
}

func column(m Matrix, c int) []int8 {
	rows, _ := m.Dims()
	out := make([]int8, rows)
	for r := 0; r < rows; r++ {
		out[r] = m.At(r, c)
	}
	return out
}

func TestOneHot(t *testing.T) {
	m := OneHot("ATGCN")
	rows, cols := m.Dims()
	require.Equal(t, 4, rows)
	require.Equal(t, 5, cols)

	assert.Equal(t, []int8{1, 0, 0, 0}, column(m, 0))
	assert.Equal(t, []int8{0, 1, 0, 0}, column(m, 1))
	assert.Equal(t, []int8{0, 0, 1, 0}, column(m, 2))
	assert.Equal(t, []int8{0, 0, 0, 1}, column(m, 3))
	assert.Equal(t, []int8{0, 0, 0, 0}, column(m, 4), "unrecognized base")

	lower := OneHot("a")
	assert.Equal(t, []int8{0, 0, 0, 0}, column(lower, 0))
}

func TestOneHot_ColumnsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 40; n++ {
		m := OneHot(randSeq(rng, n))
		_, cols := m.Dims()
		require.Equal(t, n, cols)
		for c := 0; c < cols; c++ {
			var sum int
			for _, v := range column(m, c) {
				sum += int(v)
			}
			assert.Equal(t, 1, sum)
		}
	}
}

func TestOneHot_Empty(t *testing.T) {
	m := OneHot("")
	rows, cols := m.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 0, cols)
	assert.Empty(t, m.Flatten())
}

func TestOR_MatchesDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for k := 0; k < 50; k++ {
		dna, rna := randSeq(rng, 20), randSeq(rng, 20)
		m, err := OR(dna, rna)
		require.NoError(t, err)
		d, r := OneHot(dna), OneHot(rna)
		for b := 0; b < 4; b++ {
			for i := 0; i < 20; i++ {
				want := int8(0)
				if d.At(b, i) == 1 || r.At(b, i) == 1 {
					want = 1
				}
				assert.Equal(t, want, m.At(b, i))
			}
		}
	}
}

func TestStacked_RowsAreOneHots(t *testing.T) {
	dna, rna := "ATGCA", "CCGTA"
	m, err := Stacked(dna, rna)
	require.NoError(t, err)

	rows, cols := m.Dims()
	require.Equal(t, 8, rows)
	require.Equal(t, 5, cols)

	d, r := OneHot(dna), OneHot(rna)
	for b := 0; b < 4; b++ {
		assert.Equal(t, d.Row(b), m.Row(b))
		assert.Equal(t, r.Row(b), m.Row(b+4))
	}
}

func TestSevenChannels_SingleMismatch(t *testing.T) {
	m, err := SevenChannels("ATGC", "ATGA", PAMWindow{Location: PAMLast, Length: 3})
	require.NoError(t, err)

	rows, cols := m.Dims()
	require.Equal(t, 7, rows)
	require.Equal(t, 4, cols)

	assert.Equal(t, []int8{-1, 0, 0, 1}, m.Row(ChannelA))
	assert.Equal(t, []int8{0, -1, 0, 0}, m.Row(ChannelT))
	assert.Equal(t, []int8{0, 0, -1, 0}, m.Row(ChannelG))
	assert.Equal(t, []int8{0, 0, 0, 1}, m.Row(ChannelC))
	assert.Equal(t, []int8{0, 0, 0, 1}, m.Row(ChannelR), "priority(C)=3 > priority(A)=0")
	assert.Equal(t, []int8{0, 0, 0, 0}, m.Row(ChannelD))
	assert.Equal(t, []int8{0, 1, 1, 1}, m.Row(ChannelF))
}

func TestSevenChannels_Direction(t *testing.T) {
	// dna A vs rna C: priority 0 < 3 sets D.
	m, err := SevenChannels("A", "C", PAMWindow{})
	require.NoError(t, err)
	assert.Equal(t, int8(0), m.At(ChannelR, 0))
	assert.Equal(t, int8(1), m.At(ChannelD, 0))

	rng := rand.New(rand.NewSource(3))
	for k := 0; k < 50; k++ {
		dna, rna := randSeq(rng, 16), randSeq(rng, 16)
		m, err := SevenChannels(dna, rna, DefaultPAM)
		require.NoError(t, err)
		for i := 0; i < 16; i++ {
			r, d := m.At(ChannelR, i), m.At(ChannelD, i)
			if dna[i] == rna[i] {
				assert.Zero(t, r+d)
				continue
			}
			assert.Equal(t, int8(1), r+d, "exactly one direction")
			assert.Equal(t, BaseIndex(dna[i]) < BaseIndex(rna[i]), d == 1)
		}
	}
}

func TestSevenChannels_PAMWindow(t *testing.T) {
	cases := []struct {
		name string
		win  PAMWindow
		want []int8
	}{
		{"last", PAMWindow{PAMLast, 2}, []int8{0, 0, 0, 1, 1}},
		{"first", PAMWindow{PAMFirst, 2}, []int8{1, 1, 0, 0, 0}},
		{"none", PAMWindow{PAMNone, 2}, []int8{0, 0, 0, 0, 0}},
		{"clamps", PAMWindow{PAMLast, 9}, []int8{1, 1, 1, 1, 1}},
		{"zero length", PAMWindow{PAMFirst, 0}, []int8{0, 0, 0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := SevenChannels("ATGCA", "ATGCA", tc.win)
			require.NoError(t, err)
			assert.Equal(t, tc.want, m.Row(ChannelF))
		})
	}
}

func TestSevenChannels_UnknownBase(t *testing.T) {
	_, err := SevenChannels("ATN", "ATG", DefaultPAM)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBase)

	m, err := SevenChannels("ATN", "ATN", DefaultPAM)
	require.NoError(t, err)
	assert.Equal(t, []int8{0, 0, 0}, m.Row(ChannelR))
}

func TestEncoders_LengthMismatch(t *testing.T) {
	_, err := OR("ATG", "ATGC")
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = Stacked("ATG", "ATGC")
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = SevenChannels("ATG", "ATGC", DefaultPAM)
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.True(t, strings.Contains(err.Error(), "got 3 and 4"))
}

func TestMatrix_FlattenRowMajor(t *testing.T) {
	m, err := Stacked("AC", "GT")
	require.NoError(t, err)
	assert.Equal(t, []int8{
		1, 0, // A
		0, 0, // T
		0, 0, // G
		0, 1, // C
		0, 0,
		0, 1,
		1, 0,
		0, 0,
	}, m.Flatten())

	flat := m.Flatten()
	flat[0] = 9
	assert.Equal(t, int8(1), m.At(0, 0), "Flatten returns a copy")
}

func TestMatrix_String(t *testing.T) {
	m, err := SevenChannels("A", "T", PAMWindow{})
	require.NoError(t, err)
	assert.Equal(t, " 1\n 1\n 0\n 0\n 0\n 1\n 0\n", m.String())
}

func TestParsePAMLocation(t *testing.T) {
	l, err := ParsePAMLocation("Last")
	require.NoError(t, err)
	assert.Equal(t, PAMLast, l)
	assert.Equal(t, "last", l.String())

	_, err = ParsePAMLocation("middle")
	assert.Error(t, err)
}
