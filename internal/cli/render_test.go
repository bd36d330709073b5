package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output   string
		format   string
		nFormats int
		want     string
	}{
		{"", "svg", 1, "tree.svg"},
		{"", "json", 2, "tree.json"},
		{"out/bst.svg", "svg", 1, "out/bst.svg"},
		{"out/bst.png", "png", 1, "out/bst.png"},
		{"out/bst.svg", "json", 2, "out/bst.json"},
		{"out/bst", "yaml", 2, "out/bst.yaml"},
		{"out/bst.v2", "dot", 2, "out/bst.v2.dot"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.format, tt.nFormats); got != tt.want {
			t.Errorf("outputPath(%q, %q, %d) = %q, want %q", tt.output, tt.format, tt.nFormats, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	require.Equal(t, []string{"svg"}, parseFormats(""))
	require.Equal(t, []string{"svg", "json"}, parseFormats("svg, json"))
	require.Equal(t, []string{"png"}, parseFormats(",png,"))
}

func TestInputFromArgs(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"5", "3", "8"}, "5, 3, 8"},
		{[]string{"5, 3, 8"}, "5, 3, 8"},
		{[]string{"5,", "3,", "8"}, "5, 3, 8"},
		{[]string{" ", "apple"}, "apple"},
	}
	for _, tt := range tests {
		if got := inputFromArgs(tt.args); got != tt.want {
			t.Errorf("inputFromArgs(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestWriteFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "tree.svg")
	require.NoError(t, writeFile(path, []byte("<svg/>")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<svg/>", string(data))
}

func TestStatsLine(t *testing.T) {
	line := statsLine(5, 3, 2, true)
	require.Contains(t, line, "5 nodes")
	require.Contains(t, line, "depth 3")
	require.Contains(t, line, "2 dropped")

	require.NotContains(t, statsLine(5, 3, 0, false), "dropped")
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()

	for _, name := range []string{"render", "traverse", "step", "random", "serve", "cache", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		require.Equal(t, name, cmd.Name())
	}
	for _, name := range []string{"clear", "stats", "path"} {
		cmd, _, err := root.Find([]string{"cache", name})
		require.NoError(t, err, name)
		require.Equal(t, name, cmd.Name())
	}
}

func TestSaveAndLoadLayout(t *testing.T) {
	for _, name := range []string{"tree.json", "tree.yaml"} {
		t.Run(name, func(t *testing.T) {
			s := newTestStepper("50", "30", "70", "20", "40")
			s.Finish()

			path := filepath.Join(t.TempDir(), name)
			opts := pipeline.Options{Width: 800, Height: 600, Radius: 20, Style: "outlined"}
			require.NoError(t, saveLayout(s, opts, path))

			var loaded pipeline.Options
			loaded.Input = "1, 2, 3"
			require.NoError(t, loadLayoutFile(&loaded, path))
			require.Equal(t, "integer", loaded.Category)
			require.Equal(t, []string{"50", "30", "20", "40", "70"}, loaded.Values)
			require.Empty(t, loaded.Input)
			require.Equal(t, "outlined", loaded.Style)

			tree, _, _, err := pipeline.Build(loaded)
			require.NoError(t, err)
			require.Equal(t, s.Tree().Strings(bst.PreOrder), tree.Strings(bst.PreOrder))
		})
	}
}

func TestLoadLayoutFileErrors(t *testing.T) {
	var opts pipeline.Options
	require.Error(t, loadLayoutFile(&opts, filepath.Join(t.TempDir(), "missing.json")))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"category":"shapes","nodes":[]}`), 0o644))
	require.Error(t, loadLayoutFile(&opts, bad))
}

func TestFlagCompletions(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"render", "--category", ""}, []string{"integer", "mixed"}},
		{[]string{"traverse", "--order", ""}, []string{"in-order", "post-order"}},
		{[]string{"render", "--style", ""}, []string{"graphviz"}},
		{[]string{"random", "--category", ""}, []string{"word"}},
	}
	for _, tt := range tests {
		root := New(os.Stderr, LogInfo).RootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, tt.args...))
		require.NoError(t, root.Execute())
		for _, w := range tt.want {
			require.Contains(t, out.String(), w, tt.args)
		}
	}
}
