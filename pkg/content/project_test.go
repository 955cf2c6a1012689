package content

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRatio(t *testing.T) {
	tests := []struct {
		name string
		p    Project
		want float64
	}{
		{"explicit", Project{AspectRatio: 1.25, Image: Image{Width: 100, Height: 100}}, 1.25},
		{"image dimensions", Project{Image: Image{Width: 300, Height: 200}}, 1.5},
		{"fallback", Project{}, 1},
		{"nan falls through", Project{AspectRatio: math.NaN()}, 1},
		{"negative falls through", Project{AspectRatio: -2, Image: Image{Width: 2, Height: 1}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Ratio(1))
		})
	}
}

func TestProjectMeta(t *testing.T) {
	assert.Equal(t, "Nike ~ 5/1/2024", Project{Client: "Nike", Date: NewDate(2024, 5, 1)}.Meta())
	assert.Equal(t, "Nike", Project{Client: "Nike"}.Meta())
	assert.Equal(t, "12/31/2023", Project{Date: NewDate(2023, 12, 31)}.Meta())
	assert.Equal(t, "", Project{}.Meta())
}

func TestLinksList(t *testing.T) {
	l := Links{Site: "https://a.example", Awards: "https://b.example"}
	assert.Equal(t, []LabeledLink{
		{"Website", "https://a.example"},
		{"Awards", "https://b.example"},
	}, l.List())
	assert.Empty(t, Links{}.List())
}

func TestDateJSON(t *testing.T) {
	var p struct {
		Date Date `json:"date"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-05-01"}`), &p))
	assert.True(t, p.Date.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-05-01"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-05-01T12:30:00Z"}`), &p))
	assert.Equal(t, 12, p.Date.Hour())

	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &p))
	assert.True(t, p.Date.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"May 1st"}`), &p))
}

func TestDateOrEpoch(t *testing.T) {
	assert.Equal(t, 1970, Date{}.OrEpoch().Year())
	assert.Equal(t, 2020, NewDate(2020, 2, 2).OrEpoch().Year())
}
