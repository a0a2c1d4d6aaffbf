package constant

import _ "embed"

// AsciiArtLogo is the banner shown on top of the root help.
//
//go:embed ascii.txt
var AsciiArtLogo string
