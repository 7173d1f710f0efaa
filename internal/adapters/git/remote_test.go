package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramos/internal/domain"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    domain.RepoRef
		wantErr bool
	}{
		{
			name: "https with .git",
			url:  "https://github.com/charmbracelet/bubbletea.git",
			want: domain.RepoRef{Owner: "charmbracelet", Name: "bubbletea"},
		},
		{
			name: "https without .git",
			url:  "https://github.com/charmbracelet/bubbletea",
			want: domain.RepoRef{Owner: "charmbracelet", Name: "bubbletea"},
		},
		{
			name: "scp-like ssh",
			url:  "git@github.com:charmbracelet/bubbletea.git",
			want: domain.RepoRef{Owner: "charmbracelet", Name: "bubbletea"},
		},
		{
			name: "ssh scheme",
			url:  "ssh://git@github.com/charmbracelet/bubbletea.git",
			want: domain.RepoRef{Owner: "charmbracelet", Name: "bubbletea"},
		},
		{
			name: "trailing slash",
			url:  "https://github.com/owner/repo/",
			want: domain.RepoRef{Owner: "owner", Name: "repo"},
		},
		{
			name: "surrounding whitespace",
			url:  "  https://github.com/owner/repo.git\n",
			want: domain.RepoRef{Owner: "owner", Name: "repo"},
		},
		{
			name:    "empty",
			url:     "",
			wantErr: true,
		},
		{
			name:    "no path",
			url:     "https://github.com",
			wantErr: true,
		},
		{
			name:    "owner only",
			url:     "https://github.com/owner",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRemoteURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRepoArg(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    domain.RepoRef
		wantErr bool
	}{
		{
			name: "owner slash repo",
			arg:  "golang/go",
			want: domain.RepoRef{Owner: "golang", Name: "go"},
		},
		{
			name: "full https url",
			arg:  "https://github.com/golang/go",
			want: domain.RepoRef{Owner: "golang", Name: "go"},
		},
		{
			name: "scp-like url",
			arg:  "git@github.com:golang/go.git",
			want: domain.RepoRef{Owner: "golang", Name: "go"},
		},
		{
			name:    "empty",
			arg:     "",
			wantErr: true,
		},
		{
			name:    "bare name",
			arg:     "go",
			wantErr: true,
		},
		{
			name:    "too many segments",
			arg:     "a/b/c",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRepoArg(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
