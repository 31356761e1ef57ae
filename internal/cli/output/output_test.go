package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputMode
		wantErr bool
	}{
		{in: "", want: ModeAuto},
		{in: "auto", want: ModeAuto},
		{in: "TEXT", want: ModeText},
		{in: "md", want: ModeMarkdown},
		{in: "markdown", want: ModeMarkdown},
		{in: "json", want: ModeJSON},
		{in: "csv", want: ModeCSV},
		{in: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{name: "auto on tty", mode: ModeAuto, isTTY: true, want: ModeText},
		{name: "auto piped", mode: ModeAuto, isTTY: false, want: ModeMarkdown},
		{name: "explicit json", mode: ModeJSON, isTTY: true, want: ModeJSON},
		{name: "explicit text piped", mode: ModeText, isTTY: false, want: ModeText},
		{name: "invalid falls back to auto", mode: "bogus", isTTY: false, want: ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_NonTerminalWriter(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRenderer_Header(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown, false)
	r.Header(2, "Campaigns")
	assert.Equal(t, "## Campaigns\n\n", out.String())

	r, out, _ = newTestRenderer(ModeText, false)
	r.Header(1, "Campaigns")
	assert.Equal(t, "Campaigns\n", out.String(), "no escape codes without a tty")
}

func TestRenderer_Messages(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText, false)

	r.Success("saved")
	r.Warning("careful")
	r.Error("broken")

	assert.Contains(t, out.String(), "saved")
	assert.Contains(t, errOut.String(), "warning: careful")
	assert.Contains(t, errOut.String(), "error: broken")
	assert.NotContains(t, out.String()+errOut.String(), "\x1b[")
}

func TestRenderer_Table(t *testing.T) {
	data := TableData{
		Headers: []string{"Name", "Spend"},
		Numeric: []bool{false, true},
		Rows: [][]string{
			{"Spring sale", "50.00"},
			{"Awareness", "0.00"},
		},
		Footer: []string{"Total", "50.00"},
	}

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		r.Table(data)
		s := out.String()
		assert.Contains(t, s, "Name")
		assert.Contains(t, s, "Spring sale")
		assert.Contains(t, s, "Total")
		assert.Less(t, strings.Index(s, "Spring sale"), strings.Index(s, "Awareness"))
	})

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.Table(data)
		s := out.String()
		assert.True(t, strings.HasPrefix(s, "| Name"), s)
		assert.Contains(t, s, "| Spring sale |")
		assert.Contains(t, s, "| Total |")
		assert.Contains(t, s, "---")
	})

	t.Run("csv", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeCSV, false)
		r.Table(data)
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "Name,Spend", lines[0])
		assert.Equal(t, "Spring sale,50.00", lines[1])
	})
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]int{"count": 2}))
	assert.JSONEq(t, `{"count": 2}`, out.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "- **edit_mode:** true", FormatKeyValue("edit_mode", true))
}
