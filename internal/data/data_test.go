package data

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinceanalytics/pdnsview/internal/options"
)

func TestDecode(t *testing.T) {
	type Case struct {
		name string
		src  string
		want Series
	}
	cases := []Case{
		{name: "json", src: `{"labels": ["A", "MX"], "datasets": [{"data": [1, 2.5]}]}`, want: Series{1, 2.5}},
		{name: "yaml", src: "labels: [A, MX]\ndatasets:\n  - data: [3, 4]\n", want: Series{3, 4}},
		{name: "strings", src: `{"datasets": [{"data": ["7", " 8 "]}]}`, want: Series{7, 8}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Decode([]byte(c.src))
			require.NoError(t, err)
			require.Len(t, p.Datasets, 1)
			require.Equal(t, c.want, p.Datasets[0].Data)
		})
	}
}

func TestMissing(t *testing.T) {
	p, err := Decode([]byte(`{"datasets": [{"data": [1, null, "", 4]}]}`))
	require.NoError(t, err)
	d := p.Datasets[0].Data
	require.Len(t, d, 4)
	require.False(t, IsMissing(d[0]))
	require.True(t, IsMissing(d[1]))
	require.True(t, IsMissing(d[2]))
	require.Equal(t, 4.0, d[3])

	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.JSONEq(t, `[1, null, null, 4]`, string(b))

	_, err = Decode([]byte(`{"datasets": [{"data": ["abc"]}]}`))
	require.Error(t, err)
}

func TestSegments(t *testing.T) {
	p, err := Decode([]byte(`[{"value": 3, "label": "A", "color": "red"}, {"value": null, "label": "MX"}]`))
	require.NoError(t, err)
	require.Len(t, p.Segments, 2)
	require.Equal(t, 3.0, p.Segments[0].Value)
	require.True(t, IsMissing(p.Segments[1].Value))

	line := p.Clone()
	line.Normalize(options.Line)
	require.Equal(t, []string{"A", "MX"}, line.Labels)
	require.Len(t, line.Datasets, 1)
	require.Equal(t, 2, line.Datasets[0].FillColor.Len())

	pie := p.Clone()
	pie.Normalize(options.Pie)
	require.Empty(t, pie.Datasets)
	require.Len(t, pie.Segments, 2)
}

func TestNormalize(t *testing.T) {
	p := &Payload{
		Labels: []string{"A"},
		Datasets: []Dataset{
			{Data: Series{1, 2, 3}},
			{Data: Series{4}},
		},
	}
	p.Normalize(options.Bar)
	require.Equal(t, []string{"A", "", ""}, p.Labels)
	require.Len(t, p.Datasets[1].Data, 3)
	require.True(t, IsMissing(p.Datasets[1].Data[2]))
	require.Equal(t, 3, p.Len())

	q := &Payload{
		Labels:   []string{"A", "MX"},
		Datasets: []Dataset{{Data: Series{5, 6}, FillColor: options.List("red", "blue")}},
	}
	q.Normalize(options.Doughnut)
	require.Len(t, q.Segments, 2)
	require.Equal(t, "MX", q.Segments[1].Label)
	require.Equal(t, "blue", q.Segments[1].Color.String())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payload.yaml")
	require.NoError(t, os.WriteFile(path, []byte("labels: [A]\ndatasets:\n  - label: queries\n    data: [9]\n"), 0600))
	p, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "queries", p.Datasets[0].Label)

	require.NoError(t, os.WriteFile(path, []byte("datasets: [{data: [x]}]"), 0600))
	_, err = LoadFile(path)
	require.ErrorContains(t, err, "invalid payload")
}
