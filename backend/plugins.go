package backend

import (
	"fmt"
	"strconv"
	"strings"
)

// PublicPlugin is one entry of the unauthenticated download catalog rendered
// on the marketing site. The URL points at the backend's public download
// endpoint, which answers 404 when the build does not exist.
type PublicPlugin struct {
	Key   string // "Plugin2026"
	Year  int
	Label string // "Revit 2026"
	URL   string
}

// supportedPluginKeys lists the known backend keys, newest first.
var supportedPluginKeys = []string{
	"Plugin2026",
	"Plugin2025",
	"Plugin2024",
	"Plugin2023",
	"Plugin2022",
}

// PublicPluginList builds the public catalog for a given service root. Pure;
// no network calls.
func PublicPluginList(baseURL string) []PublicPlugin {
	baseURL = strings.TrimRight(baseURL, "/")

	list := make([]PublicPlugin, 0, len(supportedPluginKeys))
	for _, key := range supportedPluginKeys {
		year := pluginKeyYear(key)
		label := fmt.Sprintf("Revit %d", year)
		if year == 0 {
			label = "Revit " + strings.TrimPrefix(key, "Plugin")
		}
		list = append(list, PublicPlugin{
			Key:   key,
			Year:  year,
			Label: label,
			URL:   baseURL + "/api/plugin/download/" + key,
		})
	}
	return list
}

// LatestPublicPlugin returns the newest catalog entry.
func LatestPublicPlugin(baseURL string) PublicPlugin {
	return PublicPluginList(baseURL)[0]
}

func pluginKeyYear(key string) int {
	if len(key) < 4 {
		return 0
	}
	year, err := strconv.Atoi(key[len(key)-4:])
	if err != nil {
		return 0
	}
	return year
}
