package impl

import "moducare/internal/domain/entity"

// chartLabels is the fixed semantic order of the severity channels as the
// AI model emits them.
var chartLabels = [entity.ScoreCount]string{"탈모", "비듬", "염증", "홍반", "피지", "각질"}

// headTypeLabels maps the AI's scalp classification codes to display labels.
var headTypeLabels = map[int]string{
	0: "양호한 두피",
	1: "건성 두피",
	2: "지성 두피",
	3: "민감성 두피",
	4: "지루성 두피",
	5: "염증성 두피",
	6: "비듬성 두피",
	7: "탈모성 두피",
}

const headTypeFallback = "분류되지 않은 두피"

// comparisonLabels maps the trend code against the previous diagnosis.
var comparisonLabels = map[int]string{
	0: "이전과 비슷해요",
	1: "좋아지고 있어요",
	2: "나빠지고 있어요",
}

const comparisonFallback = "비교할 이전 검사가 없어요"

// ProjectDiagnosis derives the UI-ready view of a diagnosis record. It is a
// pure function: no I/O, no side effects. A nil record yields an all-zero
// series with fallback labels so the UI can render before a fetch resolves;
// unknown codes map to fallbacks, never panic.
func ProjectDiagnosis(record *entity.DiagnosisRecord) entity.ProjectedResult {
	series := make([]entity.ChartPoint, entity.ScoreCount)
	for i := range series {
		series[i] = entity.ChartPoint{
			Label: chartLabels[i],
			Value: record.Score(i),
		}
	}

	headTypeLabel := headTypeFallback
	comparisonLabel := comparisonFallback
	if record != nil {
		if label, ok := headTypeLabels[record.HeadType]; ok {
			headTypeLabel = label
		}
		if label, ok := comparisonLabels[record.Comparison]; ok {
			comparisonLabel = label
		}
	}

	return entity.ProjectedResult{
		ChartSeries:     series,
		HeadTypeLabel:   headTypeLabel,
		ComparisonLabel: comparisonLabel,
	}
}
