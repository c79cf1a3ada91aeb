package media

import (
	"fmt"
	"strconv"
	"strings"
)

// ImageSize is one registered image size definition. This is configuration
// echoed to callers, not logic: thumbnail generation itself lives in the
// media storage subsystem.
type ImageSize struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Crop   bool `json:"crop"`
}

// DefaultSizes returns the built-in size registry.
func DefaultSizes() map[string]ImageSize {
	return map[string]ImageSize{
		"thumbnail":    {Width: 150, Height: 150, Crop: true},
		"medium":       {Width: 300, Height: 300},
		"medium_large": {Width: 768, Height: 0},
		"large":        {Width: 1024, Height: 1024},
	}
}

// ParseSizes parses additional size declarations from configuration.
// Format: "name=WxH" entries separated by commas, with an optional ":crop"
// suffix, e.g. "banner=1200x400,hero=1920x600:crop".
func ParseSizes(value string) (map[string]ImageSize, error) {
	sizes := make(map[string]ImageSize)
	if strings.TrimSpace(value) == "" {
		return sizes, nil
	}

	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, dims, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid size entry %q", entry)
		}

		crop := false
		if rest, found := strings.CutSuffix(dims, ":crop"); found {
			crop = true
			dims = rest
		}

		wStr, hStr, ok := strings.Cut(dims, "x")
		if !ok {
			return nil, fmt.Errorf("invalid dimensions in size entry %q", entry)
		}
		width, err := strconv.Atoi(wStr)
		if err != nil {
			return nil, fmt.Errorf("invalid width in size entry %q", entry)
		}
		height, err := strconv.Atoi(hStr)
		if err != nil {
			return nil, fmt.Errorf("invalid height in size entry %q", entry)
		}

		sizes[strings.TrimSpace(name)] = ImageSize{Width: width, Height: height, Crop: crop}
	}

	return sizes, nil
}
