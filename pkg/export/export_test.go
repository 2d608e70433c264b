package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Course", "Room", "Students"},
		Rows: []map[string]string{
			{"Course": "MATH 101", "Room": "A-101", "Students": "30"},
			{"Course": "PHYS 201", "Room": "B-202", "Students": "25"},
		},
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := RenderCSV(sampleDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Course,Room,Students", lines[0])
	assert.Equal(t, "MATH 101,A-101,30", lines[1])
}

func TestRenderCSVMissingCellsAreEmpty(t *testing.T) {
	data := Dataset{
		Headers: []string{"Course", "Room"},
		Rows:    []map[string]string{{"Course": "MATH 101"}},
	}

	out, err := RenderCSV(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "MATH 101,\n")
}

func TestRenderCSVRequiresHeaders(t *testing.T) {
	_, err := RenderCSV(Dataset{})
	require.Error(t, err)
}

func TestRenderPDF(t *testing.T) {
	out, err := RenderPDF(sampleDataset(), "Exam Schedule")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestRenderPDFRequiresHeaders(t *testing.T) {
	_, err := RenderPDF(Dataset{}, "")
	require.Error(t, err)
}
