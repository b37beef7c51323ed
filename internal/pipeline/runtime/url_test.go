package runtime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elskow/seabuild/internal/pipeline/types"
)

func TestDownloadURL(t *testing.T) {
	const dist = "https://nodejs.org/dist"

	for _, version := range []string{"19.9.0", "20.11.1", "22.12.0"} {
		for _, p := range types.Platforms() {
			t.Run(p.ID+"-"+version, func(t *testing.T) {
				url, err := DownloadURL(dist, version, p)
				require.NoError(t, err)

				assert.Contains(t, url, "v"+version)
				assert.Contains(t, url, "-"+p.DistToken+"-x64")
				if p.ID == types.Windows.ID {
					assert.True(t, strings.HasSuffix(url, ".zip"), url)
				} else {
					assert.True(t, strings.HasSuffix(url, ".tar.gz"), url)
				}
			})
		}
	}

	url, err := DownloadURL(dist+"/", "v20.11.1", types.Linux)
	require.NoError(t, err)
	assert.Equal(t, "https://nodejs.org/dist/v20.11.1/node-v20.11.1-linux-x64.tar.gz", url)

	_, err = DownloadURL(dist, "20.11.1", types.Platform{ID: "aix"})
	assert.ErrorIs(t, err, types.ErrUnsupportedPlatform)
}
