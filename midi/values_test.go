package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewU7(t *testing.T) {
	t.Run("accepts the full 0..127 domain", func(t *testing.T) {
		for b := 0; b <= 127; b++ {
			v, err := NewU7(uint8(b))
			require.NoError(t, err)
			assert.Equal(t, uint8(b), v.Value())
		}
	})

	t.Run("rejects any byte with the high bit set", func(t *testing.T) {
		for b := 128; b <= 255; b++ {
			_, err := NewU7(uint8(b))
			assert.Error(t, err)
		}
	})
}

func TestNewU14(t *testing.T) {
	t.Run("assembles LSB-first wire order", func(t *testing.T) {
		v, err := NewU14(0x00, 0x40)
		require.NoError(t, err)
		assert.Equal(t, uint16(0x2000), v.Value())
	})

	t.Run("rejects a high-bit LSB or MSB", func(t *testing.T) {
		_, err := NewU14(0x80, 0x00)
		assert.Error(t, err)
		_, err = NewU14(0x00, 0x80)
		assert.Error(t, err)
	})

	t.Run("round-trips every value in the 14-bit domain", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			n := rapid.IntRange(0, 16383).Draw(t, "n")
			lsb := uint8(n & 0x7f)
			msb := uint8((n >> 7) & 0x7f)
			v, err := NewU14(lsb, msb)
			require.NoError(t, err)
			assert.Equal(t, uint16(n), v.Value())
		})
	})
}

func TestNewChannelId(t *testing.T) {
	for b := 0; b <= 15; b++ {
		v, err := NewChannelId(uint8(b))
		require.NoError(t, err)
		assert.Equal(t, uint8(b), v.Value())
	}
	for b := 16; b < 256; b++ {
		_, err := NewChannelId(uint8(b))
		assert.Error(t, err)
	}
}
