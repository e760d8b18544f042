// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the interactive terminal surface for nscmd.
package cli

import (
	"fmt"
	"time"
)

// bannerArt is the startup block art.
const bannerArt = `
███╗   ██╗███████╗ ██████╗███╗   ███╗██████╗
████╗  ██║██╔════╝██╔════╝████╗ ████║██╔══██╗
██╔██╗ ██║███████╗██║     ██╔████╔██║██║  ██║
██║╚██╗██║╚════██║██║     ██║╚██╔╝██║██║  ██║
██║ ╚████║███████║╚██████╗██║ ╚═╝ ██║██████╔╝
╚═╝  ╚═══╝╚══════╝ ╚═════╝╚═╝     ╚═╝╚═════╝`

// Banner renders the greeting banner for the given application title.
func Banner(s Styles, title string) string {
	return fmt.Sprintf("%s\n\nWelcome to %s\n%s\n",
		s.Banner.Render(bannerArt),
		title,
		time.Now().Format("2006-01-02 15:04:05"),
	)
}
