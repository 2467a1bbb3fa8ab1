// Package banner renders the ASCII-art banner and version line the CLI
// shows before its first real command runs, unless silenced.
package banner

import "fmt"

const art = `
 _    _               _
| | _| |__   ___  ___| |_
| |/ / '_ \ / _ \/ __| __|
|   <| |_) |  __/\__ \ |_
|_|\_\_.__/ \___||___/\__|
`

// Banner renders the ASCII art plus the running version.
func Banner(version string) string {
	return fmt.Sprintf("%s lazy k-best derivation extractor %s\n\n", art, version)
}
