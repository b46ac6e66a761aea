/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	kf := NewKeyFactory("Player")

	t.Run("IncompleteKey", func(t *testing.T) {
		e := NewBuilder(kf.NewIncompleteKey()).Build()
		assert.False(t, e.Key().IsComplete())
		assert.Equal(t, "Player", e.Key().Kind())
		assert.Zero(t, e.Key().ID())
	})

	t.Run("OrderAndOverwrite", func(t *testing.T) {
		b := NewBuilder(kf.NewKey(7))
		b.Set("b", StringValue("x")).Set("a", Int64Value(1)).SetNull("c")
		b.Set("b", StringValue("y"))

		e := b.Build()
		assert.Equal(t, []string{"b", "a", "c"}, e.Names())
		v, ok := e.Value("b")
		require.True(t, ok)
		s, _ := v.AsString()
		assert.Equal(t, "y", s)

		assert.True(t, e.Contains("c"))
		nv, _ := e.Value("c")
		assert.True(t, nv.IsNull())
		assert.False(t, e.Contains("missing"))
	})

	t.Run("BuildIsDetached", func(t *testing.T) {
		b := NewBuilder(kf.NewKey(1))
		b.Set("a", BooleanValue(true))
		e := b.Build()
		b.Set("later", DoubleValue(1.5))
		assert.False(t, e.Contains("later"))
		assert.Equal(t, 1, e.Len())
	})
}

func TestValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.FixedZone("X", 3600))
	v := TimestampValue(ts)
	got, ok := v.AsTimestamp()
	require.True(t, ok)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(ts.Truncate(time.Microsecond)))

	l := ListValue(StringValue("a"), Int64Value(2))
	assert.Equal(t, []any{"a", int64(2)}, l.Interface())
	assert.True(t, l.Equal(ListValue(StringValue("a"), Int64Value(2))))
	assert.False(t, l.Equal(ListValue(StringValue("a"))))

	assert.True(t, Value{}.IsNull())
	_, ok = Int64Value(3).AsString()
	assert.False(t, ok)

	k, ok := ParseKind("timestamp")
	require.True(t, ok)
	assert.Equal(t, KindTimestamp, k)
	_, ok = ParseKind("map")
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	kf := NewKeyFactory("Note")
	k := kf.NewIncompleteKey()
	assert.Equal(t, "Note#?", k.String())
	k = k.WithID(42)
	assert.True(t, k.IsComplete())
	assert.Equal(t, "Note#42", k.String())
	assert.Equal(t, kf.NewKey(42), k)
}
