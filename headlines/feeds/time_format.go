package feeds

import "time"

func publishedISO8601(published *time.Time) string {
	if published == nil || published.IsZero() {
		return ""
	}
	// Feeds without a real date sometimes report the unix epoch.
	if published.Unix() <= 0 {
		return ""
	}
	return published.UTC().Format(time.RFC3339)
}
