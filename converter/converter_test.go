/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package converter

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/entitymapper/entity"
	"github.com/suparena/entitymapper/errors"
)

func TestIntegerConversions(t *testing.T) {
	assert.Nil(t, WidenInt32(nil))
	assert.Nil(t, NarrowInt64(nil))

	v := int32(42)
	w := WidenInt32(&v)
	require.NotNil(t, w)
	assert.Equal(t, int64(42), *w)
	assert.Equal(t, int32(42), *NarrowInt64(w))

	t.Run("NarrowingTruncates", func(t *testing.T) {
		big := int64(3000000000)
		n := NarrowInt64(&big)
		require.NotNil(t, n)
		assert.Equal(t, int32(-1294967296), *n)
		assert.True(t, Int32Overflows(big))
		assert.False(t, Int32Overflows(-2147483648))
	})
}

func TestTimestampConversions(t *testing.T) {
	assert.True(t, DateToTimestamp(nil).IsNull())
	assert.Nil(t, TimestampToDate(entity.NullValue()))
	assert.Nil(t, TimestampToDateTime(entity.NullValue()))

	ts := time.Date(2018, 12, 13, 9, 30, 0, 0, time.UTC)
	got := TimestampToDate(DateToTimestamp(&ts))
	require.NotNil(t, got)
	assert.True(t, ts.Equal(*got))

	dt := strfmt.DateTime(ts)
	gotDT := TimestampToDateTime(DateTimeToTimestamp(&dt))
	require.NotNil(t, gotDT)
	assert.True(t, time.Time(dt).Equal(time.Time(*gotDT)))

	var dst time.Time
	require.NoError(t, SetTimestamp(reflect.ValueOf(&dst).Elem(), entity.TimestampValue(ts)))
	assert.True(t, dst.Equal(ts))
	assert.Error(t, SetTimestamp(reflect.ValueOf(&dst).Elem(), entity.StringValue("x")))
}

func TestListConversions(t *testing.T) {
	t.Run("Strings", func(t *testing.T) {
		vals := FromList([]string{"a", "b"})
		require.Len(t, vals, 2)
		assert.True(t, vals[0].Equal(entity.StringValue("a")))

		back, err := ToList[string](vals)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, back)
	})

	t.Run("Int64s", func(t *testing.T) {
		back, err := ToList[int64](FromList([]int64{3, 1, 2}))
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 1, 2}, back)
	})

	t.Run("NamedElement", func(t *testing.T) {
		type tag string
		back, err := ToList[tag](FromList([]tag{"x"}))
		require.NoError(t, err)
		assert.Equal(t, []tag{"x"}, back)
	})

	t.Run("EmptyIsNil", func(t *testing.T) {
		assert.Nil(t, FromList([]string{}))
		back, err := ToList[string](nil)
		require.NoError(t, err)
		assert.Nil(t, back)
	})

	t.Run("UnsupportedElement", func(t *testing.T) {
		_, err := ListToValues(reflect.ValueOf([]float64{1.5}))
		assert.True(t, errors.IsUnsupportedType(err))

		_, err = ValuesToList([]entity.Value{entity.BooleanValue(true)}, reflect.TypeOf([]bool(nil)))
		assert.True(t, errors.IsUnsupportedType(err))
	})

	t.Run("ElementMismatch", func(t *testing.T) {
		_, err := ToList[string]([]entity.Value{entity.StringValue("a"), entity.Int64Value(1)})
		assert.Error(t, err)
	})
}
