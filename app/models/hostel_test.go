package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	empty, err := StringList{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	v, err := StringList{"WiFi", "Laundry"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["WiFi","Laundry"]`, v)
}

func TestStringListScan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["WiFi","Security"]`)))
	assert.Equal(t, StringList{"WiFi", "Security"}, l)

	var fromString StringList
	require.NoError(t, fromString.Scan(`["Kitchen"]`))
	assert.Equal(t, StringList{"Kitchen"}, fromString)

	var fromNil StringList
	require.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil)

	var invalid StringList
	assert.Error(t, invalid.Scan(42))
}

func TestHostelValidate(t *testing.T) {
	h := &Hostel{
		Name:    "Sunrise Hostel",
		Country: "Ghana",
		Address: "12 Osu Lane, Accra",
	}
	assert.NoError(t, h.Validate())

	missing := &Hostel{Name: "X"}
	assert.Error(t, missing.Validate())

	badEmail := &Hostel{
		Name:    "Sunrise Hostel",
		Country: "Ghana",
		Address: "12 Osu Lane, Accra",
		Email:   "not-an-email",
	}
	assert.Error(t, badEmail.Validate())

	badWebsite := &Hostel{
		Name:    "Sunrise Hostel",
		Country: "Ghana",
		Address: "12 Osu Lane, Accra",
		Website: "not a url",
	}
	assert.Error(t, badWebsite.Validate())
}
