package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDetectVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		files   map[string]string
		pattern string
		want    string
		wantErr string
	}{
		"nested gem version file": {
			files: map[string]string{
				"lib/kettle/dev/version.rb": "module Kettle\n  module Dev\n    module Version\n      VERSION = \"1.1.19\"\n    end\n  end\nend\n",
			},
			want: "1.1.19",
		},
		"single quotes and frozen literal": {
			files: map[string]string{
				"lib/widget/version.rb": "# frozen_string_literal: true\n\nmodule Widget\n  VERSION = '2.0.0.pre1'.freeze\nend\n",
			},
			want: "2.0.0.pre1",
		},
		"same version in two files": {
			files: map[string]string{
				"lib/a/version.rb": "VERSION = \"1.0.0\"\n",
				"lib/b/version.rb": "VERSION = \"1.0.0\"\n",
			},
			want: "1.0.0",
		},
		"custom pattern": {
			files: map[string]string{
				"VERSION.rb": "VERSION = \"3.2.1\"\n",
			},
			pattern: "*.rb",
			want:    "3.2.1",
		},
		"files without a constant are skipped": {
			files: map[string]string{
				"lib/a/version.rb": "# nothing here\n",
				"lib/b/version.rb": "  VERSION = \"0.9.0\"\n",
			},
			want: "0.9.0",
		},
		"no files": {
			files:   map[string]string{"README.md": "hi\n"},
			wantErr: "no VERSION constant found",
		},
		"conflicting versions": {
			files: map[string]string{
				"lib/a/version.rb": "VERSION = \"1.0.0\"\n",
				"lib/b/version.rb": "VERSION = \"1.1.0\"\n",
			},
			wantErr: "ambiguous version",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			for rel, content := range tt.files {
				writeFile(t, root, rel, content)
			}

			got, err := DetectVersion(root, tt.pattern)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToday(t *testing.T) {
	t.Parallel()

	fixed := func() time.Time { return time.Date(2025, time.March, 7, 23, 59, 0, 0, time.UTC) }
	assert.Equal(t, "2025-03-07", Today(fixed))
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, Today(nil))
}
