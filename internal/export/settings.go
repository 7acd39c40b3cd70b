package export

import "strconv"

// Setting keys consulted by the exporter.
const (
	SettingReportMode         = "report_mode"
	SettingRankThreshold      = "rank_threshold"
	SettingSortByPopularity   = "sort_by_popularity"
	SettingMaxNewsPerKeyword  = "max_news_per_keyword"
	SettingEnableCrawler      = "enable_crawler"
	SettingEnableNotification = "enable_notification"
	SettingPushWindowEnabled  = "push_window_enabled"
	SettingPushWindowStart    = "push_window_start"
	SettingPushWindowEnd      = "push_window_end"
	SettingRankWeight         = "rank_weight"
	SettingFrequencyWeight    = "frequency_weight"
	SettingHotnessWeight      = "hotness_weight"
)

// settingDefaults is the explicit defaults table substituted for any key
// missing from storage.
var settingDefaults = map[string]string{
	SettingReportMode:         "incremental",
	SettingRankThreshold:      "5",
	SettingSortByPopularity:   "true",
	SettingMaxNewsPerKeyword:  "0",
	SettingEnableCrawler:      "true",
	SettingEnableNotification: "true",
	SettingPushWindowEnabled:  "false",
	SettingPushWindowStart:    "08:00",
	SettingPushWindowEnd:      "22:00",
	SettingRankWeight:         "0.6",
	SettingFrequencyWeight:    "0.3",
	SettingHotnessWeight:      "0.1",
}

// MergedSettings returns the raw settings map with defaults substituted for
// every missing key. The input map is not modified.
func MergedSettings(raw map[string]string) map[string]string {
	merged := make(map[string]string, len(settingDefaults))
	for key, fallback := range settingDefaults {
		merged[key] = fallback
	}
	for key, value := range raw {
		merged[key] = value
	}
	return merged
}

// DefaultSettings returns a copy of the defaults table, used to seed new
// configurations.
func DefaultSettings() map[string]string {
	return MergedSettings(nil)
}

// settingString reads a string setting with its default applied.
func settingString(raw map[string]string, key string) string {
	if value, ok := raw[key]; ok {
		return value
	}
	return settingDefaults[key]
}

// settingBool reads a boolean setting; the stored string is compared
// literally to "true".
func settingBool(raw map[string]string, key string) bool {
	return settingString(raw, key) == "true"
}

// settingInt reads an integer setting, falling back to the default on a
// malformed stored value.
func settingInt(raw map[string]string, key string) int {
	value, errParse := strconv.Atoi(settingString(raw, key))
	if errParse != nil {
		value, _ = strconv.Atoi(settingDefaults[key])
	}
	return value
}

// settingFloat reads a float setting, falling back to the default on a
// malformed stored value.
func settingFloat(raw map[string]string, key string) float64 {
	value, errParse := strconv.ParseFloat(settingString(raw, key), 64)
	if errParse != nil {
		value, _ = strconv.ParseFloat(settingDefaults[key], 64)
	}
	return value
}
