package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"zero value gets default limit", Page{}, Page{Skip: 0, Limit: DefaultLimit}},
		{"negative skip clamped", Page{Skip: -5, Limit: 10}, Page{Skip: 0, Limit: 10}},
		{"limit capped", Page{Skip: 3, Limit: MaxLimit + 1}, Page{Skip: 3, Limit: MaxLimit}},
		{"in range untouched", Page{Skip: 20, Limit: 50}, Page{Skip: 20, Limit: 50}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}
