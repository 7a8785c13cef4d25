package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValue(t *testing.T) {
	t.Run("EmptyRawIsEmptyForEveryType", func(t *testing.T) {
		for _, ft := range []FieldType{FieldTypeText, FieldTypeNumber, FieldTypeSwitch, FieldTypeMultiselect, FieldTypeFile} {
			v, err := DecodeValue(ft, "")
			require.NoError(t, err)
			assert.True(t, v.IsEmpty())
		}
	})

	t.Run("TextLike", func(t *testing.T) {
		for _, ft := range []FieldType{FieldTypeText, FieldTypeTextarea, FieldTypeDropdown, FieldTypeDate, FieldTypeTime, FieldTypeLink} {
			v, err := DecodeValue(ft, `"hello"`)
			require.NoError(t, err)
			assert.Equal(t, ValueString, v.Kind)
			assert.Equal(t, "hello", v.Str)
		}
	})

	t.Run("Number", func(t *testing.T) {
		v, err := DecodeValue(FieldTypeNumber, "12.5")
		require.NoError(t, err)
		assert.Equal(t, 12.5, v.Num)

		_, err = DecodeValue(FieldTypeNumber, `"twelve"`)
		assert.Error(t, err)
	})

	t.Run("Switch", func(t *testing.T) {
		v, err := DecodeValue(FieldTypeSwitch, "true")
		require.NoError(t, err)
		assert.True(t, v.Bool)
	})

	t.Run("Multiselect", func(t *testing.T) {
		v, err := DecodeValue(FieldTypeMultiselect, `["a","b"]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, v.List)

		_, err = DecodeValue(FieldTypeMultiselect, `"a"`)
		assert.Error(t, err)
	})

	t.Run("File", func(t *testing.T) {
		v, err := DecodeValue(FieldTypeFile, `{"name":"po.pdf","url":"https://files/po.pdf"}`)
		require.NoError(t, err)
		assert.Equal(t, "po.pdf", v.File.Name)
	})

	t.Run("UnknownFieldType", func(t *testing.T) {
		_, err := DecodeValue(FieldType("hologram"), `"x"`)
		assert.Error(t, err)
	})
}

func TestEncodeValueRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		value FieldValue
		ft    FieldType
	}{
		{"String", StringValue("Cement"), FieldTypeText},
		{"Number", NumberValue(42), FieldTypeNumber},
		{"Bool", BoolValue(true), FieldTypeSwitch},
		{"List", ListValue([]string{"x", "y"}), FieldTypeMultiselect},
		{"File", FileValue(FileReference{Name: "a.png", URL: "u"}), FieldTypeFile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := EncodeValue(tc.value)
			require.NoError(t, err)
			got, err := DecodeValue(tc.ft, raw)
			require.NoError(t, err)
			assert.Equal(t, tc.value, got)
		})
	}

	t.Run("EmptyEncodesToEmptyString", func(t *testing.T) {
		raw, err := EncodeValue(FieldValue{Kind: ValueEmpty})
		require.NoError(t, err)
		assert.Equal(t, "", raw)
	})
}

func TestDecodedValue(t *testing.T) {
	f := Field{Name: "Quantity", Type: FieldTypeNumber}

	v, err := f.DecodedValue()
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())

	f.Responses = []Response{{Value: "7"}}
	v, err = f.DecodedValue()
	require.NoError(t, err)
	assert.Equal(t, 7.0, v.Num)
}
