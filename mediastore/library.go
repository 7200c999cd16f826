package mediastore

import (
	"fmt"
	"strings"
)

// Search keeps assets whose original name contains query, ignoring case.
func Search(assets []Asset, query string) []Asset {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return assets
	}

	var out []Asset
	for _, asset := range assets {
		if strings.Contains(strings.ToLower(asset.OriginalName), query) {
			out = append(out, asset)
		}
	}
	return out
}

// FormatSize renders a byte count as B, KB or MB.
func FormatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}
