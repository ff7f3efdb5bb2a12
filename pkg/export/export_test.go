package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Calendar fall2025",
		Headers: []string{"Date", "Lesson", "Word of the Day"},
		Rows: []map[string]string{
			{"Date": "2025-09-01", "Lesson": "Swift Basics", "Word of the Day": "Idempotent"},
			{"Date": "2025-09-02", "Lesson": "Control Flow, part 1"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Lesson,Word of the Day", lines[0])
	assert.Equal(t, `2025-09-02,"Control Flow, part 1",`, lines[2])
}

func TestPDFExporterRender(t *testing.T) {
	data := sampleDataset()
	data.Rows = append(data.Rows, map[string]string{"Lesson": strings.Repeat("very long lesson name ", 20)})

	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}
