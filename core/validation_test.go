package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCompany() *Company {
	return &Company{
		Id:                    42,
		Name:                  "Nordwind Energie",
		OperatingJurisdiction: "DE",
		Sector:                "Energy",
		LastLogin:             time.Now().Add(-time.Hour),
	}
}

func validPolicy() *Policy {
	return &Policy{
		Id:          IDFromContent("https://example.org/p/1"),
		Name:        "Renewable Expansion Act",
		Geography:   "DE",
		Sector:      "Energy",
		UpdatedDate: time.Now().Add(-24 * time.Hour),
		Active:      true,
		Description: "Targets for renewable generation capacity.",
		SourceURL:   "https://example.org/p/1",
	}
}

func TestValidateCompany(t *testing.T) {
	t.Run("valid company", func(t *testing.T) {
		require.NoError(t, ValidateCompany(validCompany()))
	})

	t.Run("nil company", func(t *testing.T) {
		err := ValidateCompany(nil)
		assert.ErrorIs(t, err, ErrInvalidCompany)
	})

	t.Run("empty name", func(t *testing.T) {
		c := validCompany()
		c.Name = ""
		err := ValidateCompany(c)
		assert.ErrorIs(t, err, ErrInvalidCompany)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("unnormalized jurisdiction", func(t *testing.T) {
		for _, code := range []string{"", "Germany", "de", "DEU", "D1"} {
			c := validCompany()
			c.OperatingJurisdiction = code
			err := ValidateCompany(c)
			assert.ErrorIs(t, err, ErrInvalidRegionCode, "code %q", code)
		}
	})

	t.Run("empty sector", func(t *testing.T) {
		c := validCompany()
		c.Sector = ""
		err := ValidateCompany(c)
		assert.ErrorIs(t, err, ErrEmptySector)
	})

	t.Run("future last login", func(t *testing.T) {
		c := validCompany()
		c.LastLogin = time.Now().Add(time.Hour)
		err := ValidateCompany(c)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})
}

func TestValidatePolicy(t *testing.T) {
	t.Run("valid policy", func(t *testing.T) {
		require.NoError(t, ValidatePolicy(validPolicy()))
	})

	t.Run("nil policy", func(t *testing.T) {
		err := ValidatePolicy(nil)
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})

	t.Run("empty geography is storable", func(t *testing.T) {
		p := validPolicy()
		p.Geography = ""
		require.NoError(t, ValidatePolicy(p))
	})

	t.Run("malformed geography", func(t *testing.T) {
		p := validPolicy()
		p.Geography = "Germany"
		err := ValidatePolicy(p)
		assert.ErrorIs(t, err, ErrInvalidRegionCode)
	})

	t.Run("empty description is storable", func(t *testing.T) {
		p := validPolicy()
		p.Description = ""
		require.NoError(t, ValidatePolicy(p))
	})

	t.Run("empty sector", func(t *testing.T) {
		p := validPolicy()
		p.Sector = ""
		err := ValidatePolicy(p)
		assert.ErrorIs(t, err, ErrEmptySector)
	})
}

func TestIsRegionCode(t *testing.T) {
	assert.True(t, IsRegionCode("DE"))
	assert.True(t, IsRegionCode("TR"))
	assert.False(t, IsRegionCode("de"))
	assert.False(t, IsRegionCode("D"))
	assert.False(t, IsRegionCode("DEU"))
	assert.False(t, IsRegionCode("D3"))
	assert.False(t, IsRegionCode(""))
}
