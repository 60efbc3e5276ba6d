package sessionlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	assert.True(t, INF.Valid())
	assert.True(t, WAR.Valid())
	assert.True(t, ERR.Valid())
	assert.False(t, Category("DBG").Valid())
	assert.False(t, Category("").Valid())
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		want      Category
		shouldErr bool
	}{
		{"exact INF", "INF", INF, false},
		{"exact WAR", "WAR", WAR, false},
		{"exact ERR", "ERR", ERR, false},
		{"lowercase", "inf", INF, false},
		{"padded", " war ", WAR, false},
		{"unknown", "DEBUG", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.shouldErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "INF", INF.String())
	assert.Equal(t, "WAR", WAR.String())
	assert.Equal(t, "ERR", ERR.String())
}
