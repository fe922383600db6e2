package cam

import "embed"

//go:embed templates static cam.yml
var appFS embed.FS
