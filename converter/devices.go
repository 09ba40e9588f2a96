package converter

import (
	"regexp"

	"github.com/theoremus-urban-solutions/location-history-converter/location"
)

// ignoredPlatforms lists, per platform type, the platforms of emulators and
// test devices whose locations are not real.
var ignoredPlatforms = map[string][]*regexp.Regexp{
	"ANDROID": {
		regexp.MustCompile(`^android/google/sdk_.*`),
	},
}

func validPlatform(rec *location.Record) bool {
	if rec.PlatformType == "" || rec.Platform == "" {
		return true
	}
	for _, re := range ignoredPlatforms[rec.PlatformType] {
		if re.MatchString(rec.Platform) {
			return false
		}
	}
	return true
}

// detectIgnoredDevices returns the tags of every device that reported an
// ignored platform at least once.
func detectIgnoredDevices(records []*location.Record) map[int64]bool {
	devices := make(map[int64]bool)
	for _, rec := range records {
		if rec.DeviceTag != nil && !validPlatform(rec) {
			devices[*rec.DeviceTag] = true
		}
	}
	return devices
}

func deviceSet(tags []int64) map[int64]bool {
	if len(tags) == 0 {
		return nil
	}
	devices := make(map[int64]bool, len(tags))
	for _, tag := range tags {
		devices[tag] = true
	}
	return devices
}
