package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServices_CatalogComplete(t *testing.T) {
	svcs := Services()
	require.Len(t, svcs, 5)

	for _, s := range svcs {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.ShortDescription)
		assert.NotEmpty(t, s.Features)
	}
}

func TestServiceByID(t *testing.T) {
	s, ok := ServiceByID("production")
	require.True(t, ok)
	assert.Equal(t, "Production Shoot", s.Title)

	_, ok = ServiceByID("nope")
	assert.False(t, ok)
}

func TestCaseStudyByID(t *testing.T) {
	c, ok := CaseStudyByID(2)
	require.True(t, ok)
	assert.Equal(t, "Aero Tech", c.Client)
	assert.NotEmpty(t, c.Results)

	_, ok = CaseStudyByID(99)
	assert.False(t, ok)
}
