package version

import (
	"fmt"
	"log"
	"strings"

	"github.com/thushan/ollaview/theme"
)

var (
	Name        = "ollaview"
	ShortName   = "ollaview"
	Authors     = "Thushan Fernando"
	Description = "Lists the models installed in your local Ollama"
	Version     = "v0.0.1"
	Commit      = "none"
	Date        = "nowish"
	User        = "local"
)

const (
	GithubHomeText  = "github.com/thushan/ollaview"
	GithubHomeUri   = "https://github.com/thushan/ollaview"
	GithubLatestUri = "https://github.com/thushan/ollaview/releases/latest"
)

// UserAgent is sent with every request to the service
func UserAgent() string {
	return fmt.Sprintf("%s/%s", ShortName, Version)
}

func PrintVersionInfo(extendedInfo bool, vlog *log.Logger) {
	githubUri := theme.Hyperlink(GithubHomeUri, GithubHomeText)
	latestUri := theme.Hyperlink(GithubLatestUri, Version)

	var b strings.Builder

	b.WriteString(theme.ColourSplash("╭─ " + Name + " ─ " + Description + "\n"))
	b.WriteString(theme.ColourSplash("╰─ "))
	b.WriteString(theme.StyleUrl(githubUri))
	b.WriteString(" ")
	b.WriteString(theme.ColourVersion(latestUri))

	if extendedInfo {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(" Commit: %s\n", Commit))
		b.WriteString(fmt.Sprintf("  Built: %s\n", Date))
		b.WriteString(fmt.Sprintf("  Using: %s\n", User))
	}

	vlog.Println(b.String())
}
