package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEstimateResponseExtractsJSON(t *testing.T) {
	raw := "Here is my analysis:\n{\n  \"EstTime\": 45,\n  \"Urgency\": 7,\n  \"Importance\": 6,\n  \"Energy\": \"medium\",\n  \"Context\": \"email\"\n}\nHope this helps."

	result, err := parseEstimateResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, 45, result.EstTime)
	assert.Equal(t, 7, result.Urgency)
	assert.Equal(t, 6, result.Importance)
	assert.Equal(t, "email", result.Context)
}

func TestParseEstimateResponseDefaults(t *testing.T) {
	result, err := parseEstimateResponse(`{"EstTime": 30, "Urgency": 5, "Importance": 5}`)
	require.NoError(t, err)
	assert.Equal(t, "medium", result.Energy)
	assert.Equal(t, "none", result.Context)
}

func TestParseEstimateResponseMissingFieldsFatal(t *testing.T) {
	cases := map[string]string{
		"no json":         "抱歉，我无法处理这个请求",
		"missing esttime": `{"Urgency": 5, "Importance": 5}`,
		"zero urgency":    `{"EstTime": 30, "Urgency": 0, "Importance": 5}`,
		"broken json":     `{"EstTime": 30,`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseEstimateResponse(raw)
			assert.Error(t, err)
		})
	}
}

func TestSanitizeDependenciesDropsUnknownTitles(t *testing.T) {
	subtasks := []SubtaskEstimate{
		{Title: "写初稿", EstTime: 60, Sequence: 1},
		{Title: "审校", EstTime: 30, Sequence: 2, DependsOn: []string{"写初稿", "不存在的步骤"}},
	}

	cleaned := sanitizeDependencies(subtasks)
	require.Len(t, cleaned, 2)
	assert.Equal(t, []string{"写初稿"}, cleaned[1].DependsOn)
}

func TestParseEstimateResponseSanitizesSubtasks(t *testing.T) {
	raw := `{
  "EstTime": 180,
  "Urgency": 8,
  "Importance": 9,
  "Energy": "high",
  "Context": "project",
  "subtasks": [
    { "title": "A", "estTime": 60, "sequence": 1 },
    { "title": "B", "estTime": 120, "sequence": 2, "dependsOn": ["A", "C"] }
  ]
}`

	result, err := parseEstimateResponse(raw)
	require.NoError(t, err)
	require.Len(t, result.Subtasks, 2)
	assert.Equal(t, []string{"A"}, result.Subtasks[1].DependsOn)
}
