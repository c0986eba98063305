package impl

import (
	"testing"

	"moducare/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDiagnosis_FullRecord(t *testing.T) {
	record := &entity.DiagnosisRecord{
		Result:     []int{3, 0, 1, 2, 0, 1},
		HeadType:   7,
		Comparison: 1,
	}

	projected := ProjectDiagnosis(record)

	require.Len(t, projected.ChartSeries, entity.ScoreCount)
	assert.Equal(t, "탈모", projected.ChartSeries[0].Label)
	assert.Equal(t, 3, projected.ChartSeries[0].Value)
	assert.Equal(t, "각질", projected.ChartSeries[5].Label)
	assert.Equal(t, 1, projected.ChartSeries[5].Value)
	assert.Equal(t, "탈모성 두피", projected.HeadTypeLabel)
	assert.Equal(t, "좋아지고 있어요", projected.ComparisonLabel)
}

func TestProjectDiagnosis_NilRecord(t *testing.T) {
	projected := ProjectDiagnosis(nil)

	require.Len(t, projected.ChartSeries, entity.ScoreCount)
	for _, point := range projected.ChartSeries {
		assert.Zero(t, point.Value)
		assert.NotEmpty(t, point.Label)
	}
	assert.Equal(t, "분류되지 않은 두피", projected.HeadTypeLabel)
	assert.Equal(t, "비교할 이전 검사가 없어요", projected.ComparisonLabel)
}

func TestProjectDiagnosis_ShortScoreVector(t *testing.T) {
	record := &entity.DiagnosisRecord{Result: []int{2, 1}}

	projected := ProjectDiagnosis(record)

	require.Len(t, projected.ChartSeries, entity.ScoreCount)
	assert.Equal(t, 2, projected.ChartSeries[0].Value)
	assert.Equal(t, 1, projected.ChartSeries[1].Value)
	for _, point := range projected.ChartSeries[2:] {
		assert.Zero(t, point.Value)
	}
}

func TestProjectDiagnosis_UnknownCodesFallBack(t *testing.T) {
	record := &entity.DiagnosisRecord{
		Result:     []int{0, 0, 0, 0, 0, 0},
		HeadType:   42,
		Comparison: -1,
	}

	projected := ProjectDiagnosis(record)

	assert.Equal(t, "분류되지 않은 두피", projected.HeadTypeLabel)
	assert.Equal(t, "비교할 이전 검사가 없어요", projected.ComparisonLabel)
}
