package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextProjectID(t *testing.T) {
	assert.Equal(t, int64(1), NextProjectID(nil))
	assert.Equal(t, int64(8), NextProjectID([]Project{{ID: 3}, {ID: 7}, {ID: 2}}))
}

func TestFormDataToProjectCreate(t *testing.T) {
	now := time.UnixMilli(testNow)
	existing := []Project{{ID: 4, Name: "Other"}}

	p := FormDataToProject(FormData{
		Name:     "  LayerZero ",
		Code:     "zro",
		TaskType: []string{"bridge", "swap"},
		TaskCost: "10",
	}, 0, existing, now)

	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, "LayerZero", p.Name)
	assert.Equal(t, "ZRO", p.Code)
	assert.Equal(t, "L", p.Initial)
	assert.False(t, p.Favorite)
	assert.Equal(t, DefaultStatus, p.Status)
	assert.Equal(t, 10.0, p.TaskCost)
	assert.Equal(t, float64(DefaultTaskTime), p.TaskTime)
	assert.Equal(t, testNow, p.LastEdited)
	assert.NotNil(t, p.Logos)
}

func TestFormDataToProjectEditPreservesFavoriteAndLogos(t *testing.T) {
	now := time.UnixMilli(testNow)
	existing := []Project{{ID: 2, Name: "Scroll", Favorite: true}}

	p := FormDataToProject(FormData{Name: "Scroll L2"}, 2, existing, now)

	assert.Equal(t, int64(2), p.ID)
	assert.True(t, p.Favorite)
	assert.Equal(t, "Scroll L2", p.Name)
}

func TestFormNumberFallbacks(t *testing.T) {
	now := time.UnixMilli(testNow)

	p := FormDataToProject(FormData{Name: "A", TaskCost: "abc", TaskTime: "-2"}, 0, nil, now)
	assert.Equal(t, 0.0, p.TaskCost)
	assert.Equal(t, float64(DefaultTaskTime), p.TaskTime)

	p = FormDataToProject(FormData{Name: "A", TaskTime: "0.5"}, 0, nil, now)
	assert.Equal(t, 0.5, p.TaskTime)
}

func TestFormRoundTrip(t *testing.T) {
	now := time.UnixMilli(testNow)
	orig := FormDataToProject(FormData{
		Name:        "Eigen",
		Code:        "EIG",
		Link:        "https://eigen.example",
		Note:        "restaking",
		TaskType:    []string{"stake"},
		ConnectType: []string{"wallet"},
		RewardType:  []string{"token"},
		TaskCost:    "2.5",
		TaskTime:    "1",
		Status:      "confirmed",
		StatusDate:  "until May",
	}, 0, nil, now)

	data := ProjectToFormData(orig)
	back := FormDataToProject(data, orig.ID, []Project{orig}, now)

	require.Equal(t, orig, back)
}

func TestProjectToFormDataCopiesSlices(t *testing.T) {
	p := Project{ID: 1, Name: "A", TaskType: []string{"bridge"}}
	data := ProjectToFormData(p)
	data.TaskType[0] = "changed"

	assert.Equal(t, "bridge", p.TaskType[0])
}
